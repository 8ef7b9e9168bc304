package receipt

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Store.Lookup when no record exists for an id.
var ErrNotFound = errors.New("receipt not found")

// ErrorKind identifies which validation check a submission failed.
type ErrorKind int

const (
	KindMalformedPayload ErrorKind = iota
	KindMissingField
	KindEmptyItems
	KindInvalidDateOrTime
	KindInvalidTotal
	KindTotalMismatch
)

// String returns a stable name for the kind, used as a metrics label.
func (k ErrorKind) String() string {
	switch k {
	case KindMalformedPayload:
		return "malformed_payload"
	case KindMissingField:
		return "missing_field"
	case KindEmptyItems:
		return "empty_items"
	case KindInvalidDateOrTime:
		return "invalid_date_or_time"
	case KindInvalidTotal:
		return "invalid_total"
	case KindTotalMismatch:
		return "total_mismatch"
	default:
		return "unknown"
	}
}

// ValidationError is a submission rejection with a fixed user-facing message.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func errMalformedPayload() *ValidationError {
	return &ValidationError{
		Kind:    KindMalformedPayload,
		Message: "Invalid JSON format..",
	}
}

func errMissingField(field string) *ValidationError {
	return &ValidationError{
		Kind:    KindMissingField,
		Message: fmt.Sprintf("Missing required field: %s", field),
	}
}

func errEmptyItems() *ValidationError {
	return &ValidationError{
		Kind:    KindEmptyItems,
		Message: "At least one item is required in the receipt.",
	}
}

func errInvalidDateOrTime() *ValidationError {
	return &ValidationError{
		Kind:    KindInvalidDateOrTime,
		Message: "Invalid date or time format. Expected 'YYYY-MM-DD' for date and 'HH:MM' for time.",
	}
}

func errInvalidTotal() *ValidationError {
	return &ValidationError{
		Kind:    KindInvalidTotal,
		Message: "The 'total' should be a valid numeric value.",
	}
}

// errTotalMismatch reports the computed sum and the total exactly as it
// appeared on the wire, not a reformatted value.
func errTotalMismatch(sum, rawTotal string) *ValidationError {
	return &ValidationError{
		Kind:    KindTotalMismatch,
		Message: fmt.Sprintf("Total does not match the sum of item prices. Expected %s, but got %s. Check the receipt.", sum, rawTotal),
	}
}
