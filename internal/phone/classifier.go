// Package phone classifies Nigerian phone numbers against a static
// carrier prefix table. The table is illustrative, not authoritative.
package phone

import "strings"

// carrierPrefixes maps the 4-digit leading prefix of an 11-digit number to
// a network id from the refdata catalog.
var carrierPrefixes = map[string][]string{
	"mtn":     {"0803", "0806", "0813", "0816", "0903", "0906", "0913", "0916"},
	"airtel":  {"0802", "0808", "0812", "0901", "0902", "0907", "0912"},
	"glo":     {"0805", "0807", "0815", "0811", "0905", "0915"},
	"9mobile": {"0809", "0817", "0818", "0908", "0909"},
}

// Result is the outcome of classifying a phone number. Carrier is empty
// when the number is invalid or the prefix is unknown.
type Result struct {
	Valid   bool   `json:"valid"`
	Carrier string `json:"carrier,omitempty"`
}

// ValidFormat reports whether a phone number is exactly 11 ASCII digits
// with a leading zero. Format is all that submission requires; carrier
// resolution is a separate concern.
func ValidFormat(phoneNumber string) bool {
	if len(phoneNumber) != 11 || phoneNumber[0] != '0' {
		return false
	}
	for i := 0; i < len(phoneNumber); i++ {
		if phoneNumber[i] < '0' || phoneNumber[i] > '9' {
			return false
		}
	}
	return true
}

// Classify validates a phone number and resolves its carrier. Validity
// requires a well-formed number and a known 4-digit prefix. Malformed
// input degrades to an invalid result; it never errors. Checking the
// carrier against a user-selected network is the caller's concern.
func Classify(phoneNumber string) Result {
	if !ValidFormat(phoneNumber) {
		return Result{}
	}

	prefix := phoneNumber[:4]
	for carrier, prefixes := range carrierPrefixes {
		for _, p := range prefixes {
			if p == prefix {
				return Result{Valid: true, Carrier: strings.ToUpper(carrier)}
			}
		}
	}
	return Result{}
}

// KnownPrefixes returns prefix -> carrier id for every table entry
func KnownPrefixes() map[string]string {
	out := make(map[string]string)
	for carrier, prefixes := range carrierPrefixes {
		for _, p := range prefixes {
			out[p] = carrier
		}
	}
	return out
}
