package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Reference prefixes by transaction type
const (
	AirtimeRefPrefix = "AIR"
	BundleRefPrefix  = "BUN"
)

const refSuffixLength = 8

const refAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReference mints a presentable transaction reference of the form
// {PREFIX}{unix millis}{random upper alphanumeric suffix}. Uniqueness is
// probabilistic; collisions are not checked.
func GenerateReference(prefix string) (string, error) {
	suffix, err := GenerateRandomString(refSuffixLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d%s", prefix, time.Now().UnixMilli(), suffix), nil
}

// GenerateRandomString generates a random upper-alphanumeric string of the
// specified length
func GenerateRandomString(length int) (string, error) {
	b := make([]byte, length)
	max := big.NewInt(int64(len(refAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = refAlphabet[n.Int64()]
	}
	return string(b), nil
}
