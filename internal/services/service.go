package services

import (
	"context"

	"github.com/nebulanet/topup-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AirtimePurchaseRequest is a purchase intent for discounted airtime
type AirtimePurchaseRequest struct {
	Network     string  `json:"network"`
	PhoneNumber string  `json:"phoneNumber"`
	Amount      float64 `json:"amount"`
	Tier        string  `json:"tier"`
}

// BundlePurchaseRequest is a purchase intent for a data bundle
type BundlePurchaseRequest struct {
	Network     string `json:"network"`
	PhoneNumber string `json:"phoneNumber"`
	BundleID    string `json:"bundleId"`
}

// PurchaseService runs the transaction submission flow
type PurchaseService interface {
	// SubmitAirtime submits an airtime purchase. On an AccrualError the
	// returned transaction is still valid and persisted.
	SubmitAirtime(ctx context.Context, userID primitive.ObjectID, req AirtimePurchaseRequest) (*models.Transaction, error)

	// SubmitBundle submits a bundle purchase, same contract as SubmitAirtime
	SubmitBundle(ctx context.Context, userID primitive.ObjectID, req BundlePurchaseRequest) (*models.Transaction, error)
}

// TransactionService exposes the read side of the transaction history and
// the savings counter
type TransactionService interface {
	History(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.Transaction, error)
	TotalSavings(ctx context.Context, userID primitive.ObjectID) (float64, error)
	ResetSavings(ctx context.Context, userID primitive.ObjectID) error
}

// NotificationService is the fire-and-forget sink for user-facing events
type NotificationService interface {
	Notify(kind, message string)
	Active() []models.Notification
}
