package apperrors

import (
	"errors"
	"fmt"
)

// OutOfMemoryError reports that a limb buffer could not be grown, either
// because the allocator refused the request or because it exceeds the
// configured bit-count cap.
type OutOfMemoryError struct {
	// RequestedDigits is the limb count the operation needed.
	RequestedDigits int
	// LimitDigits is the configured limb-count ceiling.
	LimitDigits int
}

// Error returns a formatted message describing the failed growth.
func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("out of memory: requested %d digits (limit %d)", e.RequestedDigits, e.LimitDigits)
}

// DivisionByZeroError reports a zero divisor.
type DivisionByZeroError struct {
	// Operation is the name of the routine that detected the zero divisor.
	Operation string
}

// Error returns a formatted message naming the failing operation.
func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s: division by zero", e.Operation)
}

// InvalidArgumentError reports an out-of-range or otherwise unusable
// argument, such as a negative shift count or a non-finite operand.
type InvalidArgumentError struct {
	// Operation is the name of the rejecting routine.
	Operation string
	// Message explains which argument was rejected and why.
	Message string
}

// Error returns a formatted message describing the rejected argument.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument: %s", e.Operation, e.Message)
}

// MathDomainError reports an operation applied outside its mathematical
// domain, such as the logarithm of a non-positive value or a negative
// power of zero.
type MathDomainError struct {
	// Operation is the name of the rejecting routine.
	Operation string
	// Message explains the domain violation.
	Message string
}

// Error returns a formatted message describing the domain violation.
func (e *MathDomainError) Error() string {
	return fmt.Sprintf("%s: domain error: %s", e.Operation, e.Message)
}

// ImmutableTargetError reports an assignment to an Immutable-flagged
// destination, such as one of the sentinel constants.
type ImmutableTargetError struct {
	// Operation is the name of the routine that was asked to write.
	Operation string
}

// Error returns a formatted message naming the refused write.
func (e *ImmutableTargetError) Error() string {
	return fmt.Sprintf("%s: assignment to immutable value", e.Operation)
}

// IterationLimitError reports that a bounded iterative method did not
// converge within its limit.
type IterationLimitError struct {
	// Operation is the name of the iterative routine.
	Operation string
	// Limit is the iteration bound that was exhausted.
	Limit int
}

// Error returns a formatted message describing the exhausted bound.
func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("%s: no convergence within %d iterations", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w,
// so the wrapped error stays visible to errors.Is and errors.As.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsOutOfMemory reports whether err is (or wraps) an OutOfMemoryError.
func IsOutOfMemory(err error) bool {
	var e *OutOfMemoryError
	return errors.As(err, &e)
}

// IsDivisionByZero reports whether err is (or wraps) a DivisionByZeroError.
func IsDivisionByZero(err error) bool {
	var e *DivisionByZeroError
	return errors.As(err, &e)
}

// IsInvalidArgument reports whether err is (or wraps) an
// InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var e *InvalidArgumentError
	return errors.As(err, &e)
}

// IsMathDomain reports whether err is (or wraps) a MathDomainError.
func IsMathDomain(err error) bool {
	var e *MathDomainError
	return errors.As(err, &e)
}

// IsImmutableTarget reports whether err is (or wraps) an
// ImmutableTargetError.
func IsImmutableTarget(err error) bool {
	var e *ImmutableTargetError
	return errors.As(err, &e)
}

// IsIterationLimit reports whether err is (or wraps) an
// IterationLimitError.
func IsIterationLimit(err error) bool {
	var e *IterationLimitError
	return errors.As(err, &e)
}
