package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nebulanet/topup-backend/internal/models"
)

// Compile-time check to ensure InMemoryNotificationService implements NotificationService
var _ NotificationService = (*InMemoryNotificationService)(nil)

// InMemoryNotificationService holds ephemeral user-facing notifications.
// Entries expire after the configured TTL; expired entries are pruned on
// read, the in-process analogue of the storefront's auto-dismissed toasts.
type InMemoryNotificationService struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries []models.Notification
}

// NewNotificationService creates an InMemoryNotificationService with the
// given time-to-live
func NewNotificationService(ttl time.Duration) *InMemoryNotificationService {
	return &InMemoryNotificationService{
		ttl: ttl,
		now: time.Now,
	}
}

// Notify records a notification. Fire-and-forget: it never fails.
func (s *InMemoryNotificationService) Notify(kind, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, models.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Timestamp: s.now(),
	})
}

// Active returns the notifications that have not yet expired, oldest first
func (s *InMemoryNotificationService) Active() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	live := s.entries[:0]
	for _, n := range s.entries {
		if n.Timestamp.After(cutoff) {
			live = append(live, n)
		}
	}
	s.entries = live

	out := make([]models.Notification, len(live))
	copy(out, live)
	return out
}
