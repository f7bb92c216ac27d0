// Package settlement abstracts the telecom provider that fulfils a
// purchase. Production wiring would place a real provider API client here;
// the mock provider stands in for it during development and carries the
// simulated outcome distribution.
package settlement

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Settlement outcomes as reported by the provider
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// Request describes one purchase to settle
type Request struct {
	Type        string
	Network     string
	PhoneNumber string
	Amount      float64
	Reference   string
}

// Result is the provider's verdict for a settled purchase
type Result struct {
	Status string
}

// Provider settles purchases against a telecom backend. A transport error
// means the attempt was rejected outright and nothing is authoritative.
type Provider interface {
	Settle(ctx context.Context, req Request) (Result, error)
}

// MockProvider simulates a settlement backend: a fraction of attempts fail
// at the transport level, and settled attempts come back pending rather
// than completed a fraction of the time.
type MockProvider struct {
	FailureRate float64
	PendingRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockProvider creates a MockProvider with the given outcome rates,
// seeded from the clock
func NewMockProvider(failureRate, pendingRate float64) *MockProvider {
	return &MockProvider{
		FailureRate: failureRate,
		PendingRate: pendingRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededMockProvider creates a MockProvider with a fixed seed so tests
// can pin the outcome sequence
func NewSeededMockProvider(failureRate, pendingRate float64, seed int64) *MockProvider {
	return &MockProvider{
		FailureRate: failureRate,
		PendingRate: pendingRate,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Settle simulates provider settlement for a purchase
func (p *MockProvider) Settle(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	p.mu.Lock()
	roll := p.rng.Float64()
	pendingRoll := p.rng.Float64()
	p.mu.Unlock()

	if roll < p.FailureRate {
		return Result{}, fmt.Errorf("settlement rejected for %s: provider transport error", req.Reference)
	}
	if pendingRoll < p.PendingRate {
		return Result{Status: StatusPending}, nil
	}
	return Result{Status: StatusCompleted}, nil
}

// StaticProvider always returns the configured outcome. Tests use it to
// force a specific settlement path.
type StaticProvider struct {
	Status string
	Err    error
}

// Settle returns the fixed outcome
func (p *StaticProvider) Settle(ctx context.Context, req Request) (Result, error) {
	if p.Err != nil {
		return Result{}, p.Err
	}
	return Result{Status: p.Status}, nil
}
