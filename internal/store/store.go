// Package store keeps the current session's transaction history and
// running savings total in memory, mirroring what the storefront shows
// without a round trip. The persistence layer remains authoritative; this
// store is rebuilt per process.
package store

import (
	"sync"

	"github.com/nebulanet/topup-backend/internal/models"
)

// SessionStore holds submitted transactions newest-first plus the session
// savings accumulator. Appends from concurrent in-flight submissions are
// serialized by the mutex so no update is lost.
type SessionStore struct {
	mu           sync.Mutex
	transactions []models.Transaction
	totalSavings float64
}

// New creates an empty SessionStore
func New() *SessionStore {
	return &SessionStore{}
}

// Append records a submitted transaction. Completed transactions also
// accrue their savings to the session total; pending and failed ones do
// not.
func (s *SessionStore) Append(tx models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = append(s.transactions, tx)
	if tx.Status == models.StatusCompleted {
		s.totalSavings += tx.Savings()
	}
}

// List returns the session transactions most-recent-first. The returned
// slice is a copy.
func (s *SessionStore) List() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Transaction, len(s.transactions))
	for i, tx := range s.transactions {
		out[len(s.transactions)-1-i] = tx
	}
	return out
}

// CurrentSavings returns the savings accrued by completed transactions in
// this session
func (s *SessionStore) CurrentSavings() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalSavings
}

// Reset clears the session history and savings
func (s *SessionStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = nil
	s.totalSavings = 0
}
