// internal/core/domain/errors.go
package domain

import "fmt"

// ValidationError reports bad user input to a ledger mutation: empty identity
// fields, non-positive piece counts, or a separator inside a SKU component.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnknownSKUError reports a scanned code that is not present in the inventory.
type UnknownSKUError struct {
	SKU SKU
}

func (e *UnknownSKUError) Error() string {
	return fmt.Sprintf("unknown sku: %s", e.SKU)
}

// OutOfStockError reports a sale against a SKU whose stock is already zero.
// The decrement is refused, never clamped.
type OutOfStockError struct {
	SKU SKU
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("no stock for sku: %s", e.SKU)
}

// PersistenceError reports a failed store write. The in-memory ledger state
// that triggered the write remains authoritative for the session.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// DecodeError reports a SKU string that does not split into exactly four
// non-empty components.
type DecodeError struct {
	SKU    string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed sku %q: %s", e.SKU, e.Reason)
}
