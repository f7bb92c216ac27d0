package mongodb

import (
	"context"
	"time"

	"github.com/nebulanet/topup-backend/internal/models"
	"github.com/nebulanet/topup-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure TransactionRepository implements the interface
var _ repositories.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository implements repositories.TransactionRepository
// against the transactions collection
type TransactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection("transactions"),
	}
}

// Create inserts a new transaction
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	tx.CreatedAt = time.Now()
	tx.UpdatedAt = tx.CreatedAt
	_, err := r.collection.InsertOne(ctx, tx)
	return err
}

// FindByID finds a transaction by ID
func (r *TransactionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tx)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// FindByReference finds a transaction by its presentable reference
func (r *TransactionRepository) FindByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.collection.FindOne(ctx, bson.M{"reference": reference}).Decode(&tx)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// FindByUserID finds a user's transactions, newest first
func (r *TransactionRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, limit int) ([]*models.Transaction, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txs []*models.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// MarkSavingsAccrued claims the accrual for a reference. The filter only
// matches while savingsAccrued is false, so concurrent or repeated claims
// for the same reference succeed at most once.
func (r *TransactionRepository) MarkSavingsAccrued(ctx context.Context, reference string) (bool, error) {
	filter := bson.M{
		"reference":      reference,
		"status":         models.StatusCompleted,
		"savingsAccrued": false,
	}
	update := bson.M{"$set": bson.M{
		"savingsAccrued": true,
		"updatedAt":      time.Now(),
	}}

	err := r.collection.FindOneAndUpdate(ctx, filter, update).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count counts all transactions
func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
