// Package pricing is the single source of discount arithmetic. Amounts are
// kept at full float precision; rounding to 2 decimal places is a
// presentation concern and never happens before a value is recorded.
package pricing

import (
	"github.com/nebulanet/topup-backend/internal/models"
	"github.com/nebulanet/topup-backend/internal/refdata"
)

// AirtimeQuote is the priced form of an airtime purchase
type AirtimeQuote struct {
	Payable        float64
	DiscountAmount float64
}

// BundleQuote is the priced form of a bundle purchase
type BundleQuote struct {
	Payable       float64
	OriginalPrice float64
	Savings       float64
}

// Airtime prices a base amount against a discount tier. Enforcing
// tier.MinAmount is the caller's validation, not done here.
func Airtime(baseAmount float64, tier models.AirtimeTier) AirtimeQuote {
	discount := baseAmount * tier.Discount / 100
	return AirtimeQuote{
		Payable:        baseAmount - discount,
		DiscountAmount: discount,
	}
}

// Bundle prices a bundle by catalog lookup. An unknown id returns
// refdata.ErrUnknownBundle.
func Bundle(bundleID string) (BundleQuote, error) {
	bundle, err := refdata.BundleByID(bundleID)
	if err != nil {
		return BundleQuote{}, err
	}
	return BundleQuote{
		Payable:       bundle.DiscountedPrice,
		OriginalPrice: bundle.OriginalPrice,
		Savings:       bundle.OriginalPrice - bundle.DiscountedPrice,
	}, nil
}

// DiscountPercent derives the effective discount percentage from a price
// pair, for recording on the transaction at submission time.
func DiscountPercent(original, discounted float64) float64 {
	if original <= 0 {
		return 0
	}
	return (original - discounted) / original * 100
}
