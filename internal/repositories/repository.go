package repositories

import (
	"context"

	"github.com/nebulanet/topup-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	FindByReference(ctx context.Context, reference string) (*models.Transaction, error)
	// FindByUserID returns transactions newest-first
	FindByUserID(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.Transaction, error)
	// MarkSavingsAccrued claims the savings accrual for a reference. It
	// returns true exactly once per transaction: the first claim flips the
	// flag, later claims find nothing to flip.
	MarkSavingsAccrued(ctx context.Context, reference string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// EnsureDemoUser upserts and returns the storefront demo user. Auth is
	// out of scope, so every request acts as this user.
	EnsureDemoUser(ctx context.Context) (*models.User, error)
	// IncrementSavings adds amount to the user's savings counter as a
	// single server-side increment, never a read-modify-write.
	IncrementSavings(ctx context.Context, userID primitive.ObjectID, amount float64) error
	ResetSavings(ctx context.Context, userID primitive.ObjectID) error
}
