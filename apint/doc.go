// Package apint implements the low-level kernel of an arbitrary-precision
// signed integer library: a sign-magnitude limb representation together with
// the primitive routines (addition, subtraction, multiplication, division,
// shifts, bitwise operations, roots, powers, logarithms and modular helpers)
// that a validating high-level API is built on.
//
// The routines in this package trust their callers: operands are expected to
// be initialized, non-nil and in canonical form. In exchange, every routine
// guarantees that the canonical form holds again on exit, that all operand
// aliasing patterns (dest == a, dest == b, a == b) are tolerated, and that
// any scratch storage is released on every exit path.
//
// The package is strictly synchronous. An Int is exclusively owned by its
// caller for the duration of a mutating call; concurrent reads of an Int
// that is not being mutated are safe, concurrent mutation is not.
package apint
