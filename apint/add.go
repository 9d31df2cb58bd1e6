package apint

// ─────────────────────────────────────────────────────────────────────────────
// Magnitude Add / Sub
// ─────────────────────────────────────────────────────────────────────────────

// addMag sets z's magnitude to |a| + |b|. The caller assigns the sign.
func (z *Int) addMag(a, b *Int) error {
	// Order the operands so x is the one with more limbs.
	x, y := a, b
	if x.used < y.used {
		x, y = y, x
	}
	if err := z.grow(x.used + 1); err != nil {
		return err
	}
	oldUsed := z.used
	carry := Digit(0)
	i := 0
	for ; i < y.used; i++ {
		t := x.dig[i] + y.dig[i] + carry
		z.dig[i] = t & Mask
		carry = t >> DigitBits
	}
	for ; i < x.used; i++ {
		t := x.dig[i] + carry
		z.dig[i] = t & Mask
		carry = t >> DigitBits
	}
	z.dig[i] = carry
	z.used = x.used + 1
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// subMag sets z's magnitude to |a| - |b|. Requires |a| >= |b|; the caller
// assigns the sign. The borrow is the top bit of the wrapped difference.
func (z *Int) subMag(a, b *Int) error {
	if err := z.grow(a.used); err != nil {
		return err
	}
	oldUsed := z.used
	borrow := Digit(0)
	i := 0
	for ; i < b.used; i++ {
		t := a.dig[i] - b.dig[i] - borrow
		borrow = t >> (64 - 1)
		z.dig[i] = t & Mask
	}
	for ; i < a.used; i++ {
		t := a.dig[i] - borrow
		borrow = t >> (64 - 1)
		z.dig[i] = t & Mask
	}
	z.used = a.used
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Signed Add / Sub
// ─────────────────────────────────────────────────────────────────────────────

// Add sets z to a + b.
func (z *Int) Add(a, b *Int) error {
	if err := z.guard("add", a, b); err != nil {
		return err
	}
	if a.sign == b.sign {
		sign := a.sign
		if err := z.addMag(a, b); err != nil {
			return err
		}
		z.sign = sign
		z.normalizeZero()
		return nil
	}
	// Opposite signs: subtract the smaller magnitude from the larger and
	// keep the larger's sign.
	if a.CmpMag(b) < 0 {
		a, b = b, a
	}
	sign := a.sign
	if err := z.subMag(a, b); err != nil {
		return err
	}
	z.sign = sign
	z.normalizeZero()
	return nil
}

// Sub sets z to a - b.
func (z *Int) Sub(a, b *Int) error {
	if err := z.guard("sub", a, b); err != nil {
		return err
	}
	if a.sign != b.sign {
		// a - (-|b|) or (-|a|) - b: magnitudes add, a's sign wins.
		sign := a.sign
		if err := z.addMag(a, b); err != nil {
			return err
		}
		z.sign = sign
		z.normalizeZero()
		return nil
	}
	if a.CmpMag(b) >= 0 {
		sign := a.sign
		if err := z.subMag(a, b); err != nil {
			return err
		}
		z.sign = sign
		z.normalizeZero()
		return nil
	}
	sign := a.sign.negate()
	if err := z.subMag(b, a); err != nil {
		return err
	}
	z.sign = sign
	z.normalizeZero()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Single-Digit Add / Sub
// ─────────────────────────────────────────────────────────────────────────────

// AddDigit sets z to a + d for an unsigned single limb d.
func (z *Int) AddDigit(a *Int, d Digit) error {
	if err := z.guard("add_digit", a); err != nil {
		return err
	}
	d &= Mask
	// In-place fast path: no limb-0 overflow means no carry walk.
	if z == a && a.sign == NonNegative && a.used > 0 && a.dig[0]+d <= Mask {
		a.dig[0] += d
		return nil
	}
	if a.sign == Negative && (a.used > 1 || a.digitAt(0) >= d) {
		// |a| >= d: the result stays at or below zero.
		if err := z.subDigitMag(a, d); err != nil {
			return err
		}
		z.sign = Negative
		z.normalizeZero()
		return nil
	}
	if a.sign == Negative {
		// Single small negative limb crossing zero: z = d - |a|.
		low := a.digitAt(0)
		if err := z.grow(1); err != nil {
			return err
		}
		oldUsed := z.used
		z.dig[0] = d - low
		z.used = 1
		z.sign = NonNegative
		z.zeroUnused(oldUsed)
		z.clamp()
		return nil
	}
	return z.addDigitMag(a, d)
}

// SubDigit sets z to a - d for an unsigned single limb d.
func (z *Int) SubDigit(a *Int, d Digit) error {
	if err := z.guard("sub_digit", a); err != nil {
		return err
	}
	d &= Mask
	// In-place fast path: no limb-0 underflow means no borrow walk.
	if z == a && a.sign == NonNegative && a.used > 0 && a.dig[0] >= d &&
		(a.used > 1 || a.dig[0] > d || d == 0) {
		a.dig[0] -= d
		return nil
	}
	if a.sign == Negative {
		// Moving further from zero: magnitudes add.
		if err := z.addDigitMag(a, d); err != nil {
			return err
		}
		z.sign = Negative
		z.normalizeZero()
		return nil
	}
	if a.used > 1 || a.digitAt(0) >= d {
		if err := z.subDigitMag(a, d); err != nil {
			return err
		}
		z.sign = NonNegative
		return nil
	}
	// Crossing zero: z = -(d - |a|).
	low := a.digitAt(0)
	if err := z.grow(1); err != nil {
		return err
	}
	oldUsed := z.used
	z.dig[0] = d - low
	z.used = 1
	z.sign = Negative
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// addDigitMag sets z to |a| + d with a NonNegative sign.
func (z *Int) addDigitMag(a *Int, d Digit) error {
	if err := z.grow(a.used + 1); err != nil {
		return err
	}
	oldUsed := z.used
	carry := d
	for i := 0; i < a.used; i++ {
		t := a.dig[i] + carry
		z.dig[i] = t & Mask
		carry = t >> DigitBits
	}
	z.dig[a.used] = carry
	z.used = a.used + 1
	z.sign = NonNegative
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// subDigitMag sets z's magnitude to |a| - d. Requires |a| >= d; the caller
// assigns the sign.
func (z *Int) subDigitMag(a *Int, d Digit) error {
	if err := z.grow(a.used); err != nil {
		return err
	}
	oldUsed := z.used
	borrow := d
	for i := 0; i < a.used; i++ {
		t := a.dig[i] - borrow
		borrow = t >> (64 - 1)
		z.dig[i] = t & Mask
	}
	z.used = a.used
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}
