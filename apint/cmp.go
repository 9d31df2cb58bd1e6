package apint

import "math/bits"

// ─────────────────────────────────────────────────────────────────────────────
// Predicates
// ─────────────────────────────────────────────────────────────────────────────

// IsZero reports whether a is zero.
func (a *Int) IsZero() bool { return a.used == 0 }

// IsPositive reports whether a's sign is NonNegative. Zero qualifies.
func (a *Int) IsPositive() bool { return a.sign == NonNegative }

// IsNegative reports whether a is below zero.
func (a *Int) IsNegative() bool { return a.sign == Negative }

// IsEven reports whether a is even. Zero is even.
func (a *Int) IsEven() bool { return a.used == 0 || a.dig[0]&1 == 0 }

// IsOdd reports whether a is odd.
func (a *Int) IsOdd() bool { return !a.IsEven() }

// IsPowerOfTwo reports whether the magnitude of a is a power of two. It is
// true for zero, and otherwise requires the top limb to be a power of two
// with every lower limb zero.
func (a *Int) IsPowerOfTwo() bool {
	if a.used == 0 {
		return true
	}
	top := a.dig[a.used-1]
	if top&(top-1) != 0 {
		return false
	}
	for i := 0; i < a.used-1; i++ {
		if a.dig[i] != 0 {
			return false
		}
	}
	return true
}

// isPowerOfTwoDigit reports whether d is a nonzero power of two and, if so,
// which bit is set.
func isPowerOfTwoDigit(d Digit) (int, bool) {
	if d == 0 || d&(d-1) != 0 {
		return 0, false
	}
	return bits.TrailingZeros64(uint64(d)), true
}

// ─────────────────────────────────────────────────────────────────────────────
// Comparison
// ─────────────────────────────────────────────────────────────────────────────

// CmpMag compares |a| and |b|, returning -1, 0 or +1.
func (a *Int) CmpMag(b *Int) int {
	if a.used != b.used {
		if a.used < b.used {
			return -1
		}
		return 1
	}
	for i := a.used - 1; i >= 0; i-- {
		if a.dig[i] != b.dig[i] {
			if a.dig[i] < b.dig[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Cmp compares a and b as signed values, returning -1, 0 or +1.
func (a *Int) Cmp(b *Int) int {
	if a.sign != b.sign {
		if a.sign == Negative {
			return -1
		}
		return 1
	}
	if a.sign == Negative {
		// Both negative: the larger magnitude is the smaller value.
		return b.CmpMag(a)
	}
	return a.CmpMag(b)
}

// CmpDigit compares a against the single unsigned limb d, returning -1, 0
// or +1.
func (a *Int) CmpDigit(d Digit) int {
	d &= Mask
	if a.sign == Negative {
		return -1
	}
	if a.used > 1 {
		return 1
	}
	if a.used == 0 {
		if d == 0 {
			return 0
		}
		return -1
	}
	if a.dig[0] != d {
		if a.dig[0] < d {
			return -1
		}
		return 1
	}
	return 0
}

// ─────────────────────────────────────────────────────────────────────────────
// Bit Counting
// ─────────────────────────────────────────────────────────────────────────────

// CountBits returns the number of significant bits in |a|. Zero has zero
// bits.
func (a *Int) CountBits() int {
	if a.used == 0 {
		return 0
	}
	return (a.used-1)*DigitBits + bits.Len64(uint64(a.dig[a.used-1]))
}

// CountLSB returns the number of trailing zero bits in |a|, i.e. the index
// of the lowest set bit. Zero reports zero.
func (a *Int) CountLSB() int {
	if a.used == 0 {
		return 0
	}
	i := 0
	for a.dig[i] == 0 {
		i++
	}
	return i*DigitBits + bits.TrailingZeros64(uint64(a.dig[i]))
}
