package services

import "fmt"

// ValidationError rejects malformed input before any row is written.
// Field names the offending input in the request shape (e.g. "items.2.productId").
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// OverpaymentError rejects a payment that would push total_paid past the
// order total. Remaining is surfaced so the caller can self-correct.
type OverpaymentError struct {
	Remaining float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment amount cannot exceed the order total; remaining balance: %.2f", e.Remaining)
}
