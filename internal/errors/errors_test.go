package apperrors

import (
	"errors"
	"strings"
	"testing"
)

// TestErrorMessages verifies every error type renders its context.
func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{"out of memory", &OutOfMemoryError{RequestedDigits: 100, LimitDigits: 50}, []string{"out of memory", "100", "50"}},
		{"division by zero", &DivisionByZeroError{Operation: "divmod"}, []string{"divmod", "division by zero"}},
		{"invalid argument", &InvalidArgumentError{Operation: "shl", Message: "negative bit count"}, []string{"shl", "negative bit count"}},
		{"math domain", &MathDomainError{Operation: "log", Message: "non-positive"}, []string{"log", "domain", "non-positive"}},
		{"immutable target", &ImmutableTargetError{Operation: "copy"}, []string{"copy", "immutable"}},
		{"iteration limit", &IterationLimitError{Operation: "root_n", Limit: 500}, []string{"root_n", "500"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("message %q should contain %q", msg, want)
				}
			}
		})
	}
}

// TestPredicateHelpers verifies the As-based helpers see through wrapping.
func TestPredicateHelpers(t *testing.T) {
	wrapped := WrapError(&DivisionByZeroError{Operation: "mod"}, "reducing")
	if !IsDivisionByZero(wrapped) {
		t.Error("IsDivisionByZero should see through WrapError")
	}
	if IsOutOfMemory(wrapped) {
		t.Error("IsOutOfMemory should not match a division error")
	}

	checks := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"out of memory", &OutOfMemoryError{}, IsOutOfMemory},
		{"invalid argument", &InvalidArgumentError{}, IsInvalidArgument},
		{"math domain", &MathDomainError{}, IsMathDomain},
		{"immutable target", &ImmutableTargetError{}, IsImmutableTarget},
		{"iteration limit", &IterationLimitError{}, IsIterationLimit},
	}
	for _, c := range checks {
		if !c.pred(c.err) {
			t.Errorf("%s predicate should match its own type", c.name)
		}
		if c.pred(errors.New("other")) {
			t.Errorf("%s predicate should not match foreign errors", c.name)
		}
	}
}

// TestWrapErrorNil verifies wrapping nil stays nil.
func TestWrapErrorNil(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should be nil")
	}
}
