package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a storefront user and carries the running savings counter.
// TotalSavings is only ever mutated through the repository's atomic
// increment; it is never written back from a client-side read.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	PhoneNumber  string             `bson:"phoneNumber" json:"phoneNumber"`
	Balance      float64            `bson:"balance" json:"balance"`
	Tier         string             `bson:"tier" json:"tier"`
	TotalSavings float64            `bson:"totalSavings" json:"totalSavings"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
