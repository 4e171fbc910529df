package calc

import (
	"fmt"
	"strings"
)

// DivisionByZeroError reports a division or remainder with a zero divisor.
type DivisionByZeroError struct {
	Message string
}

func (e *DivisionByZeroError) Error() string { return e.Message }

// NegativeRootError reports an even root of a negative number.
type NegativeRootError struct {
	Message string
}

func (e *NegativeRootError) Error() string { return e.Message }

// InvalidExponentError reports an exponent whose result cannot be
// represented.
type InvalidExponentError struct {
	Message string
}

func (e *InvalidExponentError) Error() string { return e.Message }

// InvalidOperationError reports an operation name the dispatcher does
// not know.
type InvalidOperationError struct {
	Operation string
	Supported []string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("Invalid operation: %s. Supported operations: %s", e.Operation, strings.Join(e.Supported, ", "))
}

// UnsupportedOperationError reports an operation type the factory has no
// strategy for.
type UnsupportedOperationError struct {
	Type string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("Unsupported operation type: %s", e.Type)
}
