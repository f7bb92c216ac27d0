package store

import (
	"math"
	"sync"
	"testing"

	"github.com/nebulanet/topup-backend/internal/models"
)

func completedTx(ref string, original, amount float64) models.Transaction {
	return models.Transaction{
		Type:           models.TypeAirtime,
		Reference:      ref,
		OriginalAmount: original,
		Amount:         amount,
		Status:         models.StatusCompleted,
	}
}

func TestListNewestFirst(t *testing.T) {
	s := New()
	s.Append(completedTx("AIR1", 100, 98))
	s.Append(completedTx("AIR2", 200, 196))
	s.Append(completedTx("AIR3", 300, 294))

	got := s.List()
	if len(got) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(got))
	}
	for i, want := range []string{"AIR3", "AIR2", "AIR1"} {
		if got[i].Reference != want {
			t.Errorf("List()[%d].Reference = %s, want %s", i, got[i].Reference, want)
		}
	}
}

func TestListStableAcrossReads(t *testing.T) {
	s := New()
	s.Append(completedTx("AIR1", 100, 98))
	s.Append(completedTx("AIR2", 200, 196))

	first := s.List()
	second := s.List()
	if len(first) != len(second) {
		t.Fatalf("list lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Reference != second[i].Reference {
			t.Errorf("read %d: reference %s vs %s", i, first[i].Reference, second[i].Reference)
		}
	}
}

func TestConcurrentAppendsNoLostSavings(t *testing.T) {
	const n = 100
	s := New()

	var wg sync.WaitGroup
	want := 0.0
	for i := 1; i <= n; i++ {
		want += float64(i)
	}
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(savings float64) {
			defer wg.Done()
			s.Append(completedTx("AIR", savings*2, savings))
		}(float64(i))
	}
	wg.Wait()

	if got := s.CurrentSavings(); math.Abs(got-want) > 1e-6 {
		t.Errorf("CurrentSavings() = %v, want %v", got, want)
	}
	if got := len(s.List()); got != n {
		t.Errorf("len(List()) = %d, want %d", got, n)
	}
}

func TestPendingAndFailedDoNotAccrue(t *testing.T) {
	s := New()

	pending := completedTx("AIR1", 100, 95)
	pending.Status = models.StatusPending
	failed := completedTx("AIR2", 100, 95)
	failed.Status = models.StatusFailed

	s.Append(pending)
	s.Append(failed)

	if got := s.CurrentSavings(); got != 0 {
		t.Errorf("CurrentSavings() = %v, want 0", got)
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.Append(completedTx("AIR1", 1000, 950))
	s.Reset()

	if got := s.CurrentSavings(); got != 0 {
		t.Errorf("CurrentSavings() after reset = %v, want 0", got)
	}
	if got := len(s.List()); got != 0 {
		t.Errorf("len(List()) after reset = %d, want 0", got)
	}
}
