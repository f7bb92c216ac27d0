package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nebulanet/topup-backend/internal/models"
	"github.com/nebulanet/topup-backend/internal/phone"
	"github.com/nebulanet/topup-backend/internal/pricing"
	"github.com/nebulanet/topup-backend/internal/refdata"
	"github.com/nebulanet/topup-backend/internal/repositories"
	"github.com/nebulanet/topup-backend/internal/store"
	"github.com/nebulanet/topup-backend/internal/utils"
	"github.com/nebulanet/topup-backend/pkg/settlement"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure PurchaseServiceImpl implements PurchaseService
var _ PurchaseService = (*PurchaseServiceImpl)(nil)

// PurchaseServiceImpl runs the transaction submission flow: validate,
// price, mint a reference, settle, persist, accrue savings, mirror into
// the session store and notify.
type PurchaseServiceImpl struct {
	transactionRepo repositories.TransactionRepository
	userRepo        repositories.UserRepository
	provider        settlement.Provider
	sessionStore    *store.SessionStore
	notifications   NotificationService
	logger          *slog.Logger
}

// NewPurchaseService creates a new PurchaseServiceImpl
func NewPurchaseService(
	transactionRepo repositories.TransactionRepository,
	userRepo repositories.UserRepository,
	provider settlement.Provider,
	sessionStore *store.SessionStore,
	notifications NotificationService,
	logger *slog.Logger,
) *PurchaseServiceImpl {
	return &PurchaseServiceImpl{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		provider:        provider,
		sessionStore:    sessionStore,
		notifications:   notifications,
		logger:          logger,
	}
}

// SubmitAirtime submits an airtime purchase
func (s *PurchaseServiceImpl) SubmitAirtime(ctx context.Context, userID primitive.ObjectID, req AirtimePurchaseRequest) (*models.Transaction, error) {
	if err := validatePhoneAndNetwork(req.Network, req.PhoneNumber); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	tier, err := refdata.TierByID(req.Tier)
	if err != nil {
		return nil, &UnknownReferenceError{Kind: "tier", ID: req.Tier, Err: err}
	}
	if req.Amount < tier.MinAmount {
		return nil, &ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("below the %s tier minimum of %.0f", tier.Name, tier.MinAmount),
		}
	}

	quote := pricing.Airtime(req.Amount, tier)
	tx := &models.Transaction{
		UserID:             userID,
		Type:               models.TypeAirtime,
		Network:            req.Network,
		PhoneNumber:        req.PhoneNumber,
		Amount:             quote.Payable,
		OriginalAmount:     req.Amount,
		DiscountPercentage: tier.Discount,
		Tier:               tier.ID,
	}
	return s.submit(ctx, tx, utils.AirtimeRefPrefix)
}

// SubmitBundle submits a data bundle purchase
func (s *PurchaseServiceImpl) SubmitBundle(ctx context.Context, userID primitive.ObjectID, req BundlePurchaseRequest) (*models.Transaction, error) {
	if err := validatePhoneAndNetwork(req.Network, req.PhoneNumber); err != nil {
		return nil, err
	}
	if req.BundleID == "" {
		return nil, &ValidationError{Field: "bundleId", Reason: "is required"}
	}
	bundle, err := refdata.BundleByID(req.BundleID)
	if err != nil {
		return nil, &UnknownReferenceError{Kind: "bundle", ID: req.BundleID, Err: err}
	}

	quote, err := pricing.Bundle(bundle.ID)
	if err != nil {
		return nil, &UnknownReferenceError{Kind: "bundle", ID: req.BundleID, Err: err}
	}
	tx := &models.Transaction{
		UserID:             userID,
		Type:               models.TypeBundle,
		Network:            req.Network,
		PhoneNumber:        req.PhoneNumber,
		Amount:             quote.Payable,
		OriginalAmount:     quote.OriginalPrice,
		DiscountPercentage: pricing.DiscountPercent(quote.OriginalPrice, quote.Payable),
		BundleID:           bundle.ID,
		BundleSize:         bundle.Size,
	}
	return s.submit(ctx, tx, utils.BundleRefPrefix)
}

// submit settles and persists a priced transaction, then accrues savings
// and mirrors the result into the session state.
func (s *PurchaseServiceImpl) submit(ctx context.Context, tx *models.Transaction, refPrefix string) (*models.Transaction, error) {
	reference, err := utils.GenerateReference(refPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference: %w", err)
	}
	tx.Reference = reference

	result, err := s.provider.Settle(ctx, settlement.Request{
		Type:        tx.Type,
		Network:     tx.Network,
		PhoneNumber: tx.PhoneNumber,
		Amount:      tx.Amount,
		Reference:   tx.Reference,
	})
	if err != nil {
		s.logger.Error("settlement rejected", "reference", tx.Reference, "error", err)
		s.notifications.Notify(models.NotifyError, "Transaction failed: unable to reach provider")
		return nil, &SettlementError{Reference: tx.Reference, Err: err}
	}
	tx.Status = result.Status

	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		s.logger.Error("failed to persist transaction", "reference", tx.Reference, "error", err)
		s.notifications.Notify(models.NotifyError, "Transaction failed: could not be recorded")
		return nil, &SettlementError{Reference: tx.Reference, Err: err}
	}

	if tx.Status == models.StatusCompleted {
		if err := s.accrueSavings(ctx, tx); err != nil {
			s.sessionStore.Append(*tx)
			s.notifications.Notify(models.NotifyInfo, "Purchase recorded; savings update is delayed")
			return tx, err
		}
	}

	s.sessionStore.Append(*tx)
	s.notifications.Notify(notificationFor(tx))
	s.logger.Info("purchase submitted",
		"reference", tx.Reference,
		"type", tx.Type,
		"network", tx.Network,
		"amount", tx.Amount,
		"status", tx.Status,
	)
	return tx, nil
}

// accrueSavings adds the transaction's savings to the user counter at most
// once. The accrual is claimed on the transaction record first; only a
// successful claim performs the increment, so a retried flow cannot
// double-accrue the same reference.
func (s *PurchaseServiceImpl) accrueSavings(ctx context.Context, tx *models.Transaction) error {
	savings := tx.Savings()
	if savings <= 0 {
		return nil
	}

	claimed, err := s.transactionRepo.MarkSavingsAccrued(ctx, tx.Reference)
	if err != nil {
		return &AccrualError{Reference: tx.Reference, Amount: savings, Err: err}
	}
	if !claimed {
		return nil
	}
	if err := s.userRepo.IncrementSavings(ctx, tx.UserID, savings); err != nil {
		return &AccrualError{Reference: tx.Reference, Amount: savings, Err: err}
	}
	tx.SavingsAccrued = true
	return nil
}

func validatePhoneAndNetwork(network, phoneNumber string) error {
	if network == "" {
		return &ValidationError{Field: "network", Reason: "is required"}
	}
	if phoneNumber == "" {
		return &ValidationError{Field: "phoneNumber", Reason: "is required"}
	}
	if _, err := refdata.NetworkByID(network); err != nil {
		return &UnknownReferenceError{Kind: "network", ID: network, Err: err}
	}
	if !phone.ValidFormat(phoneNumber) {
		return &ValidationError{Field: "phoneNumber", Reason: "not a valid 11-digit number"}
	}
	return nil
}

func notificationFor(tx *models.Transaction) (kind, message string) {
	product := "Airtime"
	if tx.Type == models.TypeBundle {
		product = "Data bundle"
	}
	switch tx.Status {
	case models.StatusCompleted:
		return models.NotifySuccess, fmt.Sprintf("%s purchase successful", product)
	case models.StatusPending:
		return models.NotifyInfo, fmt.Sprintf("%s purchase is being processed", product)
	default:
		return models.NotifyError, fmt.Sprintf("%s purchase failed", product)
	}
}
