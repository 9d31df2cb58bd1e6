package apint

import (
	apperrors "github.com/agbru/apcalc/internal/errors"
)

// Digit is a single limb. Only the low DigitBits bits are significant; the
// upper bits of a canonical limb are always zero.
type Digit uint64

// Word is the double-width accumulator type for multiplicative
// intermediates. With 28-bit digits a uint64 leaves 8 bits of carry
// headroom on top of a full digit product.
type Word uint64

// Sign is the sign of an Int. Zero always carries NonNegative.
type Sign uint8

const (
	// NonNegative marks zero and positive values.
	NonNegative Sign = iota
	// Negative marks values below zero.
	Negative
)

// negate returns the opposite sign.
func (s Sign) negate() Sign {
	if s == Negative {
		return NonNegative
	}
	return Negative
}

// Flags is a small bitset of modal markers attached to an Int.
type Flags uint8

const (
	// FlagImmutable marks an Int that must never be used as a destination.
	FlagImmutable Flags = 1 << iota
	// FlagInf marks positive infinity.
	FlagInf
	// FlagNegInf marks negative infinity.
	FlagNegInf
	// FlagNaN marks not-a-number.
	FlagNaN
)

// flagSpecial selects the non-finite markers.
const flagSpecial = FlagInf | FlagNegInf | FlagNaN

// Int is a signed arbitrary-precision integer in sign-magnitude form.
//
// The zero value is a canonical zero and ready to use; the first mutating
// operation allocates its limb buffer. The invariants maintained across
// every kernel routine:
//
//  1. used == 0 implies sign == NonNegative.
//  2. used > 0 implies dig[used-1] != 0.
//  3. dig[i] == 0 for all i in [used, cap).
//  4. dig[i] <= Mask for all i in [0, used).
//  5. cap >= MinDigitCount once the buffer exists.
type Int struct {
	used  int
	sign  Sign
	flags Flags
	dig   []Digit
	alloc Allocator
}

// Allocator supplies limb buffers. Alloc must return a zeroed slice of
// exactly n digits, or nil when the request cannot be satisfied. Free
// releases a buffer previously returned by Alloc; the kernel zeroes limbs
// before handing them back.
type Allocator interface {
	Alloc(n int) []Digit
	Free(buf []Digit)
}

// heapAllocator is the default Allocator: plain garbage-collected slices.
type heapAllocator struct{}

func (heapAllocator) Alloc(n int) []Digit { return make([]Digit, n) }
func (heapAllocator) Free(buf []Digit)    {}

// defaultAllocator is shared by every Int that was not given an explicit
// allocator. It is stateless, so sharing is safe.
var defaultAllocator Allocator = heapAllocator{}

// ─────────────────────────────────────────────────────────────────────────────
// Sentinel Constants
// ─────────────────────────────────────────────────────────────────────────────

// Immutable singletons. They are legal only as sources (for Copy and
// comparisons); any attempt to use one as a destination fails with
// AssignmentToImmutable.
var (
	IntZero     = &Int{flags: FlagImmutable}
	IntOne      = &Int{used: 1, dig: []Digit{1, 0, 0, 0}, flags: FlagImmutable}
	IntMinusOne = &Int{used: 1, sign: Negative, dig: []Digit{1, 0, 0, 0}, flags: FlagImmutable}
	IntInf      = &Int{flags: FlagImmutable | FlagInf}
	IntMinusInf = &Int{sign: Negative, flags: FlagImmutable | FlagNegInf}
	IntNaN      = &Int{flags: FlagImmutable | FlagNaN}
)

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

// New returns a fresh zero-valued Int using the default allocator.
func New() *Int { return new(Int) }

// NewInt returns a fresh Int holding v.
func NewInt(v int64) *Int {
	z := new(Int)
	// SetInt64 on a fresh heap-backed Int cannot fail: the first growth is
	// a small fixed size well under any MaxBitCount.
	_ = z.SetInt64(v)
	return z
}

// NewWithAllocator returns a fresh zero-valued Int whose limb buffers come
// from alloc.
func NewWithAllocator(alloc Allocator) *Int { return &Int{alloc: alloc} }

// ─────────────────────────────────────────────────────────────────────────────
// Entry Guards
// ─────────────────────────────────────────────────────────────────────────────

// checkDest rejects destinations that must not be written.
func (z *Int) checkDest(op string) error {
	if z.flags&FlagImmutable != 0 {
		return &apperrors.ImmutableTargetError{Operation: op}
	}
	return nil
}

// checkOperands rejects non-finite operands.
//
// TODO: Inf/NegInf/NaN operands are rejected wholesale here; defining
// propagation rules (Inf+Inf, Inf*0, NaN contagion) would let the flags
// flow through arithmetic instead.
func checkOperands(op string, args ...*Int) error {
	for _, a := range args {
		if a.flags&flagSpecial != 0 {
			return &apperrors.InvalidArgumentError{Operation: op, Message: "non-finite operand"}
		}
	}
	return nil
}

// guard combines the destination and operand checks shared by almost every
// kernel entry point.
func (z *Int) guard(op string, args ...*Int) error {
	if err := z.checkDest(op); err != nil {
		return err
	}
	return checkOperands(op, args...)
}

// ─────────────────────────────────────────────────────────────────────────────
// Storage Layer
// ─────────────────────────────────────────────────────────────────────────────

// allocator returns the Int's allocator, defaulting to the shared heap one.
func (a *Int) allocator() Allocator {
	if a.alloc == nil {
		return defaultAllocator
	}
	return a.alloc
}

// maxDigitCount converts the live MaxBitCount cap into limbs.
func maxDigitCount() int { return MaxBitCount / DigitBits }

// grow ensures the limb buffer holds at least size digits, never shrinking.
// Newly exposed positions are zero. The capacity floor is MinDigitCount, or
// DefaultDigitCount on the very first growth.
func (a *Int) grow(size int) error {
	return a.growShrink(size, false)
}

// growShrink is the single reallocation path shared by grow and Shrink.
func (a *Int) growShrink(size int, allowShrink bool) error {
	if size < a.used {
		size = a.used
	}
	if size < MinDigitCount {
		size = MinDigitCount
	}
	if a.dig == nil && size < DefaultDigitCount {
		size = DefaultDigitCount
	}
	if size > maxDigitCount() {
		return &apperrors.OutOfMemoryError{RequestedDigits: size, LimitDigits: maxDigitCount()}
	}
	if len(a.dig) >= size && !allowShrink {
		return nil
	}
	if len(a.dig) == size {
		return nil
	}
	buf := a.allocator().Alloc(size)
	if buf == nil {
		return &apperrors.OutOfMemoryError{RequestedDigits: size, LimitDigits: maxDigitCount()}
	}
	copy(buf, a.dig[:a.used])
	a.releaseBuffer()
	a.dig = buf
	return nil
}

// Shrink reduces the capacity to the smallest legal size for the current
// value.
func (a *Int) Shrink() error {
	if err := a.checkDest("shrink"); err != nil {
		return err
	}
	if a.dig == nil {
		return nil
	}
	return a.growShrink(a.used, true)
}

// clamp trims trailing zero limbs and normalizes the zero representation.
// Idempotent.
func (a *Int) clamp() {
	for a.used > 0 && a.dig[a.used-1] == 0 {
		a.used--
	}
	if a.used == 0 {
		a.sign = NonNegative
	}
}

// zeroUnused zeroes limbs in [a.used, oldUsed). Pass a negative oldUsed to
// zero everything above used.
func (a *Int) zeroUnused(oldUsed int) {
	if oldUsed < 0 || oldUsed > len(a.dig) {
		oldUsed = len(a.dig)
	}
	for i := a.used; i < oldUsed; i++ {
		a.dig[i] = 0
	}
}

// normalizeZero re-establishes invariant 1 after a sign assignment.
func (a *Int) normalizeZero() {
	if a.used == 0 {
		a.sign = NonNegative
	}
}

// digitAt reads limb i, treating positions outside [0, used) as zero.
func (a *Int) digitAt(i int) Digit {
	if i >= 0 && i < a.used {
		return a.dig[i]
	}
	return 0
}

// Swap exchanges the full contents of a and b, including buffer ownership
// and allocator identity.
func (a *Int) Swap(b *Int) error {
	if err := a.checkDest("swap"); err != nil {
		return err
	}
	if err := b.checkDest("swap"); err != nil {
		return err
	}
	a.used, b.used = b.used, a.used
	a.sign, b.sign = b.sign, a.sign
	a.flags, b.flags = b.flags, a.flags
	a.dig, b.dig = b.dig, a.dig
	a.alloc, b.alloc = b.alloc, a.alloc
	return nil
}

// Copy sets z to the value of src. A self-copy is a no-op. The Immutable
// flag never transfers; the non-finite flags do.
func (z *Int) Copy(src *Int) error {
	if z == src {
		return nil
	}
	if err := z.checkDest("copy"); err != nil {
		return err
	}
	if err := z.grow(src.used); err != nil {
		return err
	}
	oldUsed := z.used
	copy(z.dig, src.dig[:src.used])
	z.used = src.used
	z.sign = src.sign
	z.flags = src.flags &^ FlagImmutable
	z.zeroUnused(oldUsed)
	return nil
}

// Zero sets z to canonical zero without releasing its buffer.
func (z *Int) Zero() error {
	if err := z.checkDest("zero"); err != nil {
		return err
	}
	oldUsed := z.used
	z.used = 0
	z.sign = NonNegative
	z.flags &^= flagSpecial
	z.zeroUnused(oldUsed)
	return nil
}

// releaseBuffer zeroes and frees the current limb buffer.
func (a *Int) releaseBuffer() {
	if a.dig == nil {
		return
	}
	for i := range a.dig {
		a.dig[i] = 0
	}
	a.allocator().Free(a.dig)
	a.dig = nil
}

// Destroy zeroes the limbs of each given Int and releases its buffer. The
// Ints remain usable afterwards as fresh zeros.
func Destroy(ints ...*Int) {
	for _, a := range ints {
		if a == nil || a.flags&FlagImmutable != 0 {
			continue
		}
		a.releaseBuffer()
		a.used = 0
		a.sign = NonNegative
		a.flags &^= flagSpecial
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Small Setters
// ─────────────────────────────────────────────────────────────────────────────

// SetDigit sets z to the single-limb value d. Bits above DigitBits are
// discarded.
func (z *Int) SetDigit(d Digit) error {
	if err := z.checkDest("set_digit"); err != nil {
		return err
	}
	if err := z.grow(1); err != nil {
		return err
	}
	oldUsed := z.used
	d &= Mask
	z.dig[0] = d
	z.used = 1
	if d == 0 {
		z.used = 0
	}
	z.sign = NonNegative
	z.flags &^= flagSpecial
	z.zeroUnused(oldUsed)
	return nil
}

// Neg sets z to -a. Negating zero yields zero.
func (z *Int) Neg(a *Int) error {
	if err := z.guard("neg", a); err != nil {
		return err
	}
	if err := z.Copy(a); err != nil {
		return err
	}
	if z.used != 0 {
		z.sign = a.sign.negate()
	}
	return nil
}

// Abs sets z to |a|.
func (z *Int) Abs(a *Int) error {
	if err := z.guard("abs", a); err != nil {
		return err
	}
	if err := z.Copy(a); err != nil {
		return err
	}
	z.sign = NonNegative
	return nil
}
