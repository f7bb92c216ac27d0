package models

import "time"

// Notification kinds
const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyInfo    = "info"
)

// Notification is an ephemeral user-facing event. Notifications are held
// in memory and expire after a configured TTL; they are never persisted.
type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
