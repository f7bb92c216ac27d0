package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nebulanet/topup-backend/internal/models"
	"github.com/nebulanet/topup-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure TransactionServiceImpl implements TransactionService
var _ TransactionService = (*TransactionServiceImpl)(nil)

const defaultHistoryLimit = 50

// TransactionServiceImpl serves the authoritative transaction history and
// savings counter from the persistence backend
type TransactionServiceImpl struct {
	transactionRepo repositories.TransactionRepository
	userRepo        repositories.UserRepository
	logger          *slog.Logger
}

// NewTransactionService creates a new TransactionServiceImpl
func NewTransactionService(
	transactionRepo repositories.TransactionRepository,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		logger:          logger,
	}
}

// History returns the user's transactions newest-first. A non-positive or
// oversized limit falls back to the default.
func (s *TransactionServiceImpl) History(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.Transaction, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	txs, err := s.transactionRepo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction history: %w", err)
	}
	return txs, nil
}

// TotalSavings returns the user's current savings counter
func (s *TransactionServiceImpl) TotalSavings(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load user: %w", err)
	}
	return user.TotalSavings, nil
}

// ResetSavings zeroes the user's savings counter
func (s *TransactionServiceImpl) ResetSavings(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.userRepo.ResetSavings(ctx, userID); err != nil {
		return fmt.Errorf("failed to reset savings: %w", err)
	}
	s.logger.Info("savings counter reset", "userId", userID.Hex())
	return nil
}
