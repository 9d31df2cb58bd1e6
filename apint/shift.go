package apint

import (
	apperrors "github.com/agbru/apcalc/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Single-Bit Shifts
// ─────────────────────────────────────────────────────────────────────────────

// Shl1 sets z to a doubled. The sign is preserved.
func (z *Int) Shl1(a *Int) error {
	if err := z.guard("shl1", a); err != nil {
		return err
	}
	if err := z.grow(a.used + 1); err != nil {
		return err
	}
	oldUsed := z.used
	carry := Digit(0)
	for i := 0; i < a.used; i++ {
		d := a.dig[i]
		z.dig[i] = ((d << 1) | carry) & Mask
		carry = d >> (DigitBits - 1)
	}
	z.used = a.used
	if carry != 0 {
		z.dig[a.used] = carry
		z.used = a.used + 1
	}
	z.sign = a.sign
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// Shr1 sets z to a halved, dropping the low bit. The sign is preserved
// (except for the zero normalization).
func (z *Int) Shr1(a *Int) error {
	if err := z.guard("shr1", a); err != nil {
		return err
	}
	if err := z.grow(a.used); err != nil {
		return err
	}
	oldUsed := z.used
	carry := Digit(0)
	for i := a.used - 1; i >= 0; i-- {
		d := a.dig[i]
		z.dig[i] = (d >> 1) | (carry << (DigitBits - 1))
		carry = d & 1
	}
	z.used = a.used
	z.sign = a.sign
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Whole-Limb Shifts
// ─────────────────────────────────────────────────────────────────────────────

// ShlDigits shifts a left by n whole limbs in place.
func (a *Int) ShlDigits(n int) error {
	if n < 0 {
		return &apperrors.InvalidArgumentError{Operation: "shl_digits", Message: "negative limb count"}
	}
	if err := a.checkDest("shl_digits"); err != nil {
		return err
	}
	if n == 0 || a.used == 0 {
		return nil
	}
	if err := a.grow(a.used + n); err != nil {
		return err
	}
	// Slide the window from the top so the source is never clobbered
	// before it is read.
	for i := a.used + n - 1; i >= n; i-- {
		a.dig[i] = a.dig[i-n]
	}
	for i := 0; i < n; i++ {
		a.dig[i] = 0
	}
	a.used += n
	return nil
}

// ShrDigits shifts a right by n whole limbs in place. Shifting by at least
// a.used limbs yields zero.
func (a *Int) ShrDigits(n int) error {
	if n < 0 {
		return &apperrors.InvalidArgumentError{Operation: "shr_digits", Message: "negative limb count"}
	}
	if err := a.checkDest("shr_digits"); err != nil {
		return err
	}
	if n == 0 || a.used == 0 {
		return nil
	}
	if n >= a.used {
		return a.Zero()
	}
	oldUsed := a.used
	for i := 0; i < a.used-n; i++ {
		a.dig[i] = a.dig[i+n]
	}
	a.used -= n
	a.zeroUnused(oldUsed)
	a.clamp()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Arbitrary Bit Shifts
// ─────────────────────────────────────────────────────────────────────────────

// Shl sets z to a shifted left by the given number of bits. A carry past
// the current top limb becomes a new high limb.
func (z *Int) Shl(a *Int, bitCount int) error {
	if bitCount < 0 {
		return &apperrors.InvalidArgumentError{Operation: "shl", Message: "negative bit count"}
	}
	if err := z.guard("shl", a); err != nil {
		return err
	}
	if err := z.Copy(a); err != nil {
		return err
	}
	if z.used == 0 || bitCount == 0 {
		return nil
	}
	if err := z.grow(z.used + bitCount/DigitBits + 1); err != nil {
		return err
	}
	if err := z.ShlDigits(bitCount / DigitBits); err != nil {
		return err
	}
	sub := uint(bitCount % DigitBits)
	if sub == 0 {
		return nil
	}
	carry := Digit(0)
	for i := 0; i < z.used; i++ {
		d := z.dig[i]
		z.dig[i] = ((d << sub) | carry) & Mask
		carry = d >> (DigitBits - sub)
	}
	if carry != 0 {
		z.dig[z.used] = carry
		z.used++
	}
	return nil
}

// ShrMod sets q to a shifted right by the given number of bits. When r is
// non-nil it additionally receives the shifted-out low bits, i.e.
// a mod 2^bitCount.
func ShrMod(q, r *Int, a *Int, bitCount int) error {
	if bitCount < 0 {
		return &apperrors.InvalidArgumentError{Operation: "shrmod", Message: "negative bit count"}
	}
	if err := q.guard("shrmod", a); err != nil {
		return err
	}
	if r != nil {
		if err := r.checkDest("shrmod"); err != nil {
			return err
		}
	}
	// The remainder is taken first: writing q may clobber a when they
	// alias.
	var rem *Int
	if r != nil {
		t, err := acquireScratch(a.used)
		if err != nil {
			return err
		}
		rem = t
		if err := rem.ModBits(a, bitCount); err != nil {
			releaseScratch(rem)
			return err
		}
	}
	if err := q.shrInto(a, bitCount); err != nil {
		releaseScratch(rem)
		return err
	}
	if r != nil {
		err := r.Swap(rem)
		releaseScratch(rem)
		return err
	}
	return nil
}

// Shr sets z to a shifted right by the given number of bits, discarding the
// shifted-out low bits. The sign is preserved.
func (z *Int) Shr(a *Int, bitCount int) error {
	if bitCount < 0 {
		return &apperrors.InvalidArgumentError{Operation: "shr", Message: "negative bit count"}
	}
	if err := z.guard("shr", a); err != nil {
		return err
	}
	return z.shrInto(a, bitCount)
}

// shrInto performs the magnitude right shift shared by Shr and ShrMod.
func (z *Int) shrInto(a *Int, bitCount int) error {
	if err := z.Copy(a); err != nil {
		return err
	}
	if bitCount == 0 || z.used == 0 {
		return nil
	}
	if err := z.ShrDigits(bitCount / DigitBits); err != nil {
		return err
	}
	sub := uint(bitCount % DigitBits)
	if sub == 0 || z.used == 0 {
		return nil
	}
	carry := Digit(0)
	for i := z.used - 1; i >= 0; i-- {
		d := z.dig[i]
		z.dig[i] = (d >> sub) | (carry << (DigitBits - sub))
		carry = d & ((1 << sub) - 1)
	}
	z.clamp()
	return nil
}

// ShrSigned sets z to a shifted right arithmetically, matching the
// two's-complement semantics of a signed shift: the result rounds toward
// negative infinity. For non-negative a it is identical to Shr; for
// negative a it computes -((-a - 1) >> bits) - 1 on the magnitude path.
func (z *Int) ShrSigned(a *Int, bitCount int) error {
	if bitCount < 0 {
		return &apperrors.InvalidArgumentError{Operation: "shr_signed", Message: "negative bit count"}
	}
	if err := z.guard("shr_signed", a); err != nil {
		return err
	}
	if a.sign == NonNegative {
		return z.shrInto(a, bitCount)
	}
	t, err := acquireScratch(a.used)
	if err != nil {
		return err
	}
	defer releaseScratch(t)
	if err := t.AddDigit(a, 1); err != nil {
		return err
	}
	if err := t.shrInto(t, bitCount); err != nil {
		return err
	}
	return z.SubDigit(t, 1)
}
