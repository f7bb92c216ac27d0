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

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

const demoUserEmail = "demo@nebulanet.com"

// UserRepository implements repositories.UserRepository against the users
// collection
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureDemoUser upserts the demo user and returns it
func (r *UserRepository) EnsureDemoUser(ctx context.Context) (*models.User, error) {
	now := time.Now()
	filter := bson.M{"email": demoUserEmail}
	update := bson.M{
		"$setOnInsert": bson.M{
			"email":        demoUserEmail,
			"name":         "Demo User",
			"phoneNumber":  "08012345678",
			"balance":      10000.0,
			"tier":         "basic",
			"totalSavings": 0.0,
			"createdAt":    now,
		},
		"$set": bson.M{"updatedAt": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user models.User
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// IncrementSavings adds amount to the user's savings counter atomically
// on the server. Two racing increments both land; neither is lost.
func (r *UserRepository) IncrementSavings(ctx context.Context, userID primitive.ObjectID, amount float64) error {
	update := bson.M{
		"$inc": bson.M{"totalSavings": amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ResetSavings zeroes the user's savings counter
func (r *UserRepository) ResetSavings(ctx context.Context, userID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"totalSavings": 0.0,
		"updatedAt":    time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}
