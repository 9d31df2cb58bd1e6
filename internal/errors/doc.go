// Package apperrors defines the structured error types surfaced by the
// integer kernel, allowing for a clear distinction between error classes
// (allocation, domain, argument validation) and for carrying diagnostic
// context on each.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf
// with %w, so wrapped errors stay visible to errors.Is() and errors.As().
package apperrors
