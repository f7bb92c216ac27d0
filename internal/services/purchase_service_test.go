package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/nebulanet/topup-backend/internal/models"
	"github.com/nebulanet/topup-backend/internal/store"
	"github.com/nebulanet/topup-backend/pkg/settlement"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const tolerance = 1e-6

type fakeTransactionRepo struct {
	mu         sync.Mutex
	byRef      map[string]*models.Transaction
	order      []string
	failCreate error
	failClaim  error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{byRef: map[string]*models.Transaction{}}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	tx.CreatedAt = time.Now()
	cp := *tx
	r.byRef[tx.Reference] = &cp
	r.order = append(r.order, tx.Reference)
	return nil
}

func (r *fakeTransactionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.byRef {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeTransactionRepo) FindByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.byRef[reference]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *tx
	return &cp, nil
}

func (r *fakeTransactionRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Transaction
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		tx := r.byRef[r.order[i]]
		if tx.UserID == userID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) MarkSavingsAccrued(ctx context.Context, reference string) (bool, error) {
	if r.failClaim != nil {
		return false, r.failClaim
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.byRef[reference]
	if !ok || tx.Status != models.StatusCompleted || tx.SavingsAccrued {
		return false, nil
	}
	tx.SavingsAccrued = true
	return true, nil
}

func (r *fakeTransactionRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byRef)), nil
}

type fakeUserRepo struct {
	mu            sync.Mutex
	user          models.User
	failIncrement error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{user: models.User{
		ID:    primitive.NewObjectID(),
		Email: "demo@nebulanet.com",
		Tier:  "basic",
	}}
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != r.user.ID {
		return nil, mongo.ErrNoDocuments
	}
	cp := r.user
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := r.user
	return &cp, nil
}

func (r *fakeUserRepo) EnsureDemoUser(ctx context.Context) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := r.user
	return &cp, nil
}

func (r *fakeUserRepo) IncrementSavings(ctx context.Context, userID primitive.ObjectID, amount float64) error {
	if r.failIncrement != nil {
		return r.failIncrement
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user.TotalSavings += amount
	return nil
}

func (r *fakeUserRepo) ResetSavings(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user.TotalSavings = 0
	return nil
}

func (r *fakeUserRepo) savings() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user.TotalSavings
}

type fixture struct {
	service  *PurchaseServiceImpl
	txRepo   *fakeTransactionRepo
	userRepo *fakeUserRepo
	session  *store.SessionStore
	notify   *InMemoryNotificationService
}

func newFixture(provider settlement.Provider) *fixture {
	txRepo := newFakeTransactionRepo()
	userRepo := newFakeUserRepo()
	session := store.New()
	notify := NewNotificationService(5 * time.Second)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		service:  NewPurchaseService(txRepo, userRepo, provider, session, notify, logger),
		txRepo:   txRepo,
		userRepo: userRepo,
		session:  session,
		notify:   notify,
	}
}

func completedProvider() settlement.Provider {
	return &settlement.StaticProvider{Status: settlement.StatusCompleted}
}

func TestSubmitAirtimeCompleted(t *testing.T) {
	f := newFixture(completedProvider())

	tx, err := f.service.SubmitAirtime(context.Background(), f.userRepo.user.ID, AirtimePurchaseRequest{
		Network:     "mtn",
		PhoneNumber: "08031234567",
		Amount:      1000,
		Tier:        "premium",
	})
	if err != nil {
		t.Fatalf("SubmitAirtime: %v", err)
	}

	if math.Abs(tx.Amount-950) > tolerance {
		t.Errorf("Amount = %v, want 950", tx.Amount)
	}
	if math.Abs(tx.OriginalAmount-1000) > tolerance {
		t.Errorf("OriginalAmount = %v, want 1000", tx.OriginalAmount)
	}
	if math.Abs(tx.DiscountPercentage-5) > tolerance {
		t.Errorf("DiscountPercentage = %v, want 5", tx.DiscountPercentage)
	}
	if tx.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want completed", tx.Status)
	}
	if !regexp.MustCompile(`^AIR\d+[A-Z0-9]+$`).MatchString(tx.Reference) {
		t.Errorf("Reference %q does not match AIR format", tx.Reference)
	}
	if got := f.userRepo.savings(); math.Abs(got-50) > tolerance {
		t.Errorf("savings counter = %v, want 50", got)
	}
	if got := f.session.CurrentSavings(); math.Abs(got-50) > tolerance {
		t.Errorf("session savings = %v, want 50", got)
	}

	// invariant: amount = original * (1 - pct/100)
	want := tx.OriginalAmount * (1 - tx.DiscountPercentage/100)
	if math.Abs(tx.Amount-want) > tolerance {
		t.Errorf("amount %v violates discount invariant, want %v", tx.Amount, want)
	}
}

func TestSubmitBundleCompleted(t *testing.T) {
	f := newFixture(completedProvider())

	tx, err := f.service.SubmitBundle(context.Background(), f.userRepo.user.ID, BundlePurchaseRequest{
		Network:     "mtn",
		PhoneNumber: "08031234567",
		BundleID:    "2gb",
	})
	if err != nil {
		t.Fatalf("SubmitBundle: %v", err)
	}

	if math.Abs(tx.Amount-850) > tolerance || math.Abs(tx.OriginalAmount-1000) > tolerance {
		t.Errorf("amounts = %v/%v, want 850/1000", tx.Amount, tx.OriginalAmount)
	}
	if tx.BundleSize != "2GB" {
		t.Errorf("BundleSize = %q, want 2GB", tx.BundleSize)
	}
	if math.Abs(tx.DiscountPercentage-15) > tolerance {
		t.Errorf("DiscountPercentage = %v, want 15", tx.DiscountPercentage)
	}
	if !regexp.MustCompile(`^BUN\d+[A-Z0-9]+$`).MatchString(tx.Reference) {
		t.Errorf("Reference %q does not match BUN format", tx.Reference)
	}
	if got := f.userRepo.savings(); math.Abs(got-150) > tolerance {
		t.Errorf("savings counter = %v, want 150", got)
	}
}

func TestSubmitPendingDoesNotAccrue(t *testing.T) {
	f := newFixture(&settlement.StaticProvider{Status: settlement.StatusPending})

	tx, err := f.service.SubmitAirtime(context.Background(), f.userRepo.user.ID, AirtimePurchaseRequest{
		Network:     "mtn",
		PhoneNumber: "08031234567",
		Amount:      1000,
		Tier:        "premium",
	})
	if err != nil {
		t.Fatalf("SubmitAirtime: %v", err)
	}
	if tx.Status != models.StatusPending {
		t.Fatalf("Status = %q, want pending", tx.Status)
	}
	if got := f.userRepo.savings(); got != 0 {
		t.Errorf("savings counter = %v, want 0 for pending", got)
	}
	// the pending record is still submitted successfully and visible
	if got := len(f.session.List()); got != 1 {
		t.Errorf("session list len = %d, want 1", got)
	}
}

func TestSettlementFailureLeavesNoTrace(t *testing.T) {
	f := newFixture(&settlement.StaticProvider{Err: errors.New("provider unreachable")})

	_, err := f.service.SubmitAirtime(context.Background(), f.userRepo.user.ID, AirtimePurchaseRequest{
		Network:     "mtn",
		PhoneNumber: "08031234567",
		Amount:      1000,
		Tier:        "premium",
	})
	var settlementErr *SettlementError
	if !errors.As(err, &settlementErr) {
		t.Fatalf("err = %v, want *SettlementError", err)
	}

	if count, _ := f.txRepo.Count(context.Background()); count != 0 {
		t.Errorf("transaction count = %d, want 0", count)
	}
	if got := f.userRepo.savings(); got != 0 {
		t.Errorf("savings counter = %v, want 0", got)
	}
	if got := len(f.session.List()); got != 0 {
		t.Errorf("session list len = %d, want 0", got)
	}
}

func TestPersistenceFailureIsSettlementError(t *testing.T) {
	f := newFixture(completedProvider())
	f.txRepo.failCreate = errors.New("write concern failed")

	_, err := f.service.SubmitAirtime(context.Background(), f.userRepo.user.ID, AirtimePurchaseRequest{
		Network:     "mtn",
		PhoneNumber: "08031234567",
		Amount:      1000,
		Tier:        "premium",
	})
	var settlementErr *SettlementError
	if !errors.As(err, &settlementErr) {
		t.Fatalf("err = %v, want *SettlementError", err)
	}
	if got := f.userRepo.savings(); got != 0 {
		t.Errorf("savings counter = %v, want 0", got)
	}
}

func TestAccrualFailureKeepsTransaction(t *testing.T) {
	f := newFixture(completedProvider())
	f.userRepo.failIncrement = errors.New("counter update timed out")

	tx, err := f.service.SubmitAirtime(context.Background(), f.userRepo.user.ID, AirtimePurchaseRequest{
		Network:     "mtn",
		PhoneNumber: "08031234567",
		Amount:      1000,
		Tier:        "premium",
	})
	var accrualErr *AccrualError
	if !errors.As(err, &accrualErr) {
		t.Fatalf("err = %v, want *AccrualError", err)
	}
	if tx == nil {
		t.Fatal("transaction dropped on accrual failure; the purchase happened")
	}
	if math.Abs(accrualErr.Amount-50) > tolerance {
		t.Errorf("AccrualError.Amount = %v, want 50", accrualErr.Amount)
	}
	if _, ferr := f.txRepo.FindByReference(context.Background(), tx.Reference); ferr != nil {
		t.Errorf("transaction not persisted: %v", ferr)
	}
	if got := len(f.session.List()); got != 1 {
		t.Errorf("session list len = %d, want 1", got)
	}
}

func TestAccrualIsAtMostOncePerReference(t *testing.T) {
	f := newFixture(completedProvider())

	tx, err := f.service.SubmitAirtime(context.Background(), f.userRepo.user.ID, AirtimePurchaseRequest{
		Network:     "mtn",
		PhoneNumber: "08031234567",
		Amount:      1000,
		Tier:        "premium",
	})
	if err != nil {
		t.Fatalf("SubmitAirtime: %v", err)
	}

	// re-running accrual for the same reference must be a no-op
	for i := 0; i < 3; i++ {
		if err := f.service.accrueSavings(context.Background(), tx); err != nil {
			t.Fatalf("accrueSavings retry %d: %v", i, err)
		}
	}
	if got := f.userRepo.savings(); math.Abs(got-50) > tolerance {
		t.Errorf("savings counter = %v after retries, want 50", got)
	}
}

func TestConcurrentSubmissionsNoLostSavings(t *testing.T) {
	f := newFixture(completedProvider())
	userID := f.userRepo.user.ID

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	want := 0.0
	for i := 0; i < n; i++ {
		amount := float64(1000 + i*100)
		want += amount * 0.05
		wg.Add(1)
		go func(amount float64) {
			defer wg.Done()
			_, err := f.service.SubmitAirtime(context.Background(), userID, AirtimePurchaseRequest{
				Network:     "mtn",
				PhoneNumber: "08031234567",
				Amount:      amount,
				Tier:        "premium",
			})
			errs <- err
		}(amount)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent SubmitAirtime: %v", err)
		}
	}

	if got := f.userRepo.savings(); math.Abs(got-want) > tolerance {
		t.Errorf("savings counter = %v, want %v", got, want)
	}
	if got := f.session.CurrentSavings(); math.Abs(got-want) > tolerance {
		t.Errorf("session savings = %v, want %v", got, want)
	}
	history, err := f.txRepo.FindByUserID(context.Background(), userID, n)
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if len(history) != n {
		t.Errorf("history len = %d, want %d", len(history), n)
	}
}

func TestValidationFailuresHaveNoSideEffects(t *testing.T) {
	tests := []struct {
		name    string
		req     AirtimePurchaseRequest
		wantErr any
	}{
		{"missing network", AirtimePurchaseRequest{PhoneNumber: "08031234567", Amount: 1000, Tier: "premium"}, &ValidationError{}},
		{"missing phone", AirtimePurchaseRequest{Network: "mtn", Amount: 1000, Tier: "premium"}, &ValidationError{}},
		{"zero amount", AirtimePurchaseRequest{Network: "mtn", PhoneNumber: "08031234567", Tier: "premium"}, &ValidationError{}},
		{"below tier minimum", AirtimePurchaseRequest{Network: "mtn", PhoneNumber: "08031234567", Amount: 100, Tier: "premium"}, &ValidationError{}},
		{"malformed phone", AirtimePurchaseRequest{Network: "mtn", PhoneNumber: "0803", Amount: 1000, Tier: "premium"}, &ValidationError{}},
		{"unknown network", AirtimePurchaseRequest{Network: "vodafone", PhoneNumber: "08031234567", Amount: 1000, Tier: "premium"}, &UnknownReferenceError{}},
		{"unknown tier", AirtimePurchaseRequest{Network: "mtn", PhoneNumber: "08031234567", Amount: 1000, Tier: "gold"}, &UnknownReferenceError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(completedProvider())
			_, err := f.service.SubmitAirtime(context.Background(), f.userRepo.user.ID, tt.req)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			switch tt.wantErr.(type) {
			case *ValidationError:
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("err = %v (%T), want *ValidationError", err, err)
				}
			case *UnknownReferenceError:
				var ue *UnknownReferenceError
				if !errors.As(err, &ue) {
					t.Errorf("err = %v (%T), want *UnknownReferenceError", err, err)
				}
			}
			if count, _ := f.txRepo.Count(context.Background()); count != 0 {
				t.Errorf("transaction count = %d, want 0", count)
			}
			if got := f.userRepo.savings(); got != 0 {
				t.Errorf("savings counter = %v, want 0", got)
			}
		})
	}
}

func TestSubmitBundleUnknownBundle(t *testing.T) {
	f := newFixture(completedProvider())
	_, err := f.service.SubmitBundle(context.Background(), f.userRepo.user.ID, BundlePurchaseRequest{
		Network:     "mtn",
		PhoneNumber: "08031234567",
		BundleID:    "100gb",
	})
	var ue *UnknownReferenceError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want *UnknownReferenceError", err)
	}
}

func TestSubmitWithMockProviderDistribution(t *testing.T) {
	// a seeded mock must only ever produce completed/pending records or a
	// SettlementError; nothing else leaks out of the flow
	f := newFixture(settlement.NewSeededMockProvider(0.1, 0.05, 42))

	for i := 0; i < 40; i++ {
		tx, err := f.service.SubmitAirtime(context.Background(), f.userRepo.user.ID, AirtimePurchaseRequest{
			Network:     "mtn",
			PhoneNumber: "08031234567",
			Amount:      1000,
			Tier:        "premium",
		})
		if err != nil {
			var settlementErr *SettlementError
			if !errors.As(err, &settlementErr) {
				t.Fatalf("attempt %d: err = %v, want *SettlementError", i, err)
			}
			continue
		}
		if tx.Status != models.StatusCompleted && tx.Status != models.StatusPending {
			t.Fatalf("attempt %d: status %q", i, tx.Status)
		}
	}

	// counter equals the sum over completed transactions only
	want := 0.0
	for _, tx := range f.session.List() {
		if tx.Status == models.StatusCompleted {
			want += tx.Savings()
		}
	}
	if got := f.userRepo.savings(); math.Abs(got-want) > tolerance {
		t.Errorf("savings counter = %v, want %v", got, want)
	}
}
