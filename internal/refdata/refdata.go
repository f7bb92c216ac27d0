// Package refdata holds the static storefront catalog: network providers,
// airtime discount tiers and data bundle options. The tables are read-only;
// lookups are by id and never mutate.
package refdata

import (
	"errors"

	"github.com/nebulanet/topup-backend/internal/models"
)

var (
	ErrUnknownNetwork = errors.New("unknown network provider")
	ErrUnknownTier    = errors.New("unknown airtime tier")
	ErrUnknownBundle  = errors.New("unknown bundle")
)

// Networks returns all supported network providers
func Networks() []models.NetworkProvider {
	out := make([]models.NetworkProvider, len(networkProviders))
	copy(out, networkProviders)
	return out
}

// Tiers returns all airtime discount tiers
func Tiers() []models.AirtimeTier {
	out := make([]models.AirtimeTier, len(airtimeTiers))
	copy(out, airtimeTiers)
	return out
}

// Bundles returns the full bundle catalog
func Bundles() []models.BundleOption {
	out := make([]models.BundleOption, len(bundleOptions))
	copy(out, bundleOptions)
	return out
}

// NetworkByID looks up a network provider by id
func NetworkByID(id string) (models.NetworkProvider, error) {
	for _, n := range networkProviders {
		if n.ID == id {
			return n, nil
		}
	}
	return models.NetworkProvider{}, ErrUnknownNetwork
}

// TierByID looks up an airtime tier by id
func TierByID(id string) (models.AirtimeTier, error) {
	for _, t := range airtimeTiers {
		if t.ID == id {
			return t, nil
		}
	}
	return models.AirtimeTier{}, ErrUnknownTier
}

// BundleByID looks up a bundle catalog entry by id
func BundleByID(id string) (models.BundleOption, error) {
	for _, b := range bundleOptions {
		if b.ID == id {
			return b, nil
		}
	}
	return models.BundleOption{}, ErrUnknownBundle
}
