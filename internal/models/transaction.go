package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction types
const (
	TypeAirtime = "airtime"
	TypeBundle  = "bundle"
)

// Transaction statuses. A record is created with the status the settlement
// provider reported; the only permitted later transition is
// pending -> completed|failed.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"
)

// Transaction represents a single airtime or bundle purchase attempt.
// Tier and BundleID/BundleSize are mutually exclusive by Type.
// DiscountPercentage is recorded at submission time and never recomputed;
// tiers may change after the fact.
type Transaction struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	Type               string             `bson:"type" json:"type"`
	Network            string             `bson:"network" json:"network"`
	PhoneNumber        string             `bson:"phoneNumber" json:"phoneNumber"`
	Amount             float64            `bson:"amount" json:"amount"`
	OriginalAmount     float64            `bson:"originalAmount" json:"originalAmount"`
	DiscountPercentage float64            `bson:"discountPercentage" json:"discountPercentage"`
	Tier               string             `bson:"tier,omitempty" json:"tier,omitempty"`
	BundleID           string             `bson:"bundleId,omitempty" json:"bundleId,omitempty"`
	BundleSize         string             `bson:"bundleSize,omitempty" json:"bundleSize,omitempty"`
	Reference          string             `bson:"reference" json:"reference"`
	Status             string             `bson:"status" json:"status"`
	SavingsAccrued     bool               `bson:"savingsAccrued" json:"-"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Savings returns the discount captured by this transaction
func (t *Transaction) Savings() float64 {
	return t.OriginalAmount - t.Amount
}
