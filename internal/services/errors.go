package services

import "fmt"

// ValidationError reports missing or malformed purchase input. It is
// detected locally and nothing is submitted to the backend.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnknownReferenceError reports a reference-data lookup miss (bad network,
// tier or bundle id). Treated like a validation failure: no side effects.
type UnknownReferenceError struct {
	Kind string
	ID   string
	Err  error
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}

func (e *UnknownReferenceError) Unwrap() error { return e.Err }

// SettlementError reports that the settlement or persistence call failed.
// The transaction is not authoritative and nothing was accrued; the caller
// may re-invoke the whole flow, which mints a fresh reference.
type SettlementError struct {
	Reference string
	Err       error
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement failed for %s: %v", e.Reference, e.Err)
}

func (e *SettlementError) Unwrap() error { return e.Err }

// AccrualError reports that the transaction persisted but the savings
// increment did not. The transaction record stands; the counter has to be
// reconciled out-of-band (see cmd/scripts).
type AccrualError struct {
	Reference string
	Amount    float64
	Err       error
}

func (e *AccrualError) Error() string {
	return fmt.Sprintf("savings accrual of %.2f failed for %s: %v", e.Amount, e.Reference, e.Err)
}

func (e *AccrualError) Unwrap() error { return e.Err }
