package apint

import (
	apperrors "github.com/agbru/apcalc/internal/errors"
	"github.com/agbru/apcalc/internal/metrics"
)

// ─────────────────────────────────────────────────────────────────────────────
// Signed Divide With Remainder
// ─────────────────────────────────────────────────────────────────────────────

// DivMod computes the truncated quotient and remainder of a / b. Either
// output may be nil. The quotient is negative iff the operand signs differ
// and it is non-zero; the remainder carries the numerator's sign.
func DivMod(q, r *Int, a, b *Int) error {
	if q != nil {
		if err := q.checkDest("divmod"); err != nil {
			return err
		}
	}
	if r != nil {
		if err := r.checkDest("divmod"); err != nil {
			return err
		}
	}
	if err := checkOperands("divmod", a, b); err != nil {
		return err
	}
	if b.used == 0 {
		return &apperrors.DivisionByZeroError{Operation: "divmod"}
	}
	if a.CmpMag(b) < 0 {
		// The remainder is written first in case q aliases a.
		if r != nil {
			if err := r.Copy(a); err != nil {
				return err
			}
		}
		if q != nil {
			return q.Zero()
		}
		return nil
	}
	asign, bsign := a.sign, b.sign

	qq, err := acquireScratch(a.used - b.used + 2)
	if err != nil {
		return err
	}
	rr, err := acquireScratch(b.used + 1)
	if err != nil {
		releaseScratch(qq)
		return err
	}
	defer releaseScratch(qq, rr)

	// A very large divisor that is not dwarfed by the numerator pays for
	// the divide-and-conquer path; everything else goes to schoolbook.
	if b.used > 2*MulKaratsubaCutoff && b.used > (a.used/3)*2 {
		metrics.ObserveDivDispatch("recursive")
		err = divRecursiveMag(qq, rr, a, b)
	} else {
		metrics.ObserveDivDispatch("schoolbook")
		err = divSchoolMag(qq, rr, a, b)
	}
	if err != nil {
		return err
	}

	qq.sign = NonNegative
	if asign != bsign {
		qq.sign = Negative
	}
	qq.normalizeZero()
	rr.sign = asign
	rr.normalizeZero()

	if q != nil {
		if err := q.Swap(qq); err != nil {
			return err
		}
	}
	if r != nil {
		return r.Swap(rr)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Schoolbook Long Division
// ─────────────────────────────────────────────────────────────────────────────

// divSchoolMag computes q, r = |a| div |b|, |a| mod |b| by schoolbook long
// division: normalize the divisor so its top bit is set, estimate each
// quotient digit from the top two limbs, refine by at most two corrections,
// then multiply-subtract.
func divSchoolMag(q, r *Int, a, b *Int) error {
	x, err := acquireScratch(a.used + 1)
	if err != nil {
		return err
	}
	y, err := acquireScratch(b.used + 1)
	if err != nil {
		releaseScratch(x)
		return err
	}
	t1, err := acquireScratch(b.used + 2)
	if err != nil {
		releaseScratch(x, y)
		return err
	}
	t2, err := acquireScratch(4)
	if err != nil {
		releaseScratch(x, y, t1)
		return err
	}
	defer releaseScratch(x, y, t1, t2)

	if err := x.Abs(a); err != nil {
		return err
	}
	if err := y.Abs(b); err != nil {
		return err
	}

	norm := y.CountBits() % DigitBits
	if norm < DigitBits-1 {
		norm = DigitBits - 1 - norm
		if err := x.Shl(x, norm); err != nil {
			return err
		}
		if err := y.Shl(y, norm); err != nil {
			return err
		}
	} else {
		norm = 0
	}

	n := x.used - 1
	t := y.used - 1

	if err := q.grow(x.used + 2); err != nil {
		return err
	}
	q.used = x.used + 2

	if err := y.ShlDigits(n - t); err != nil {
		return err
	}
	for x.CmpMag(y) >= 0 {
		q.dig[n-t]++
		if err := x.subMag(x, y); err != nil {
			return err
		}
	}
	if err := y.ShrDigits(n - t); err != nil {
		return err
	}

	for i := n; i >= t+1; i-- {
		if i > x.used {
			continue
		}
		qi := i - t - 1

		// Estimate the quotient digit from the top two limbs.
		var qd Digit
		if x.digitAt(i) == y.dig[t] {
			qd = Mask
		} else {
			w := (Word(x.digitAt(i)) << DigitBits) | Word(x.digitAt(i - 1))
			w /= Word(y.dig[t])
			if w > Word(Mask) {
				w = Word(Mask)
			}
			qd = Digit(w)
		}

		// Refine: decrease qd until qd·{y[t-1],y[t]} <= {x[i-2..i]}.
		qd = (qd + 1) & Mask
		for {
			qd = (qd - 1) & Mask
			var ylow Digit
			if t > 0 {
				ylow = y.dig[t-1]
			}
			if err := t1.setTwoDigits(ylow, y.dig[t]); err != nil {
				return err
			}
			if err := t1.MulDigit(t1, qd); err != nil {
				return err
			}
			if err := t2.setThreeDigits(x.digitAt(i-2), x.digitAt(i-1), x.digitAt(i)); err != nil {
				return err
			}
			if t1.CmpMag(t2) <= 0 {
				break
			}
		}
		q.dig[qi] = qd

		// x -= qd·y·β^qi, correcting a one-off overshoot.
		if err := t1.MulDigit(y, qd); err != nil {
			return err
		}
		if err := t1.ShlDigits(qi); err != nil {
			return err
		}
		if err := x.Sub(x, t1); err != nil {
			return err
		}
		if x.sign == Negative {
			if err := t1.Copy(y); err != nil {
				return err
			}
			if err := t1.ShlDigits(qi); err != nil {
				return err
			}
			if err := x.Add(x, t1); err != nil {
				return err
			}
			q.dig[qi] = (q.dig[qi] - 1) & Mask
		}
	}
	q.clamp()
	return r.shrInto(x, norm)
}

// setTwoDigits loads z with the two-limb magnitude {hi, lo}.
func (z *Int) setTwoDigits(lo, hi Digit) error {
	if err := z.grow(2); err != nil {
		return err
	}
	oldUsed := z.used
	z.dig[0] = lo
	z.dig[1] = hi
	z.used = 2
	z.sign = NonNegative
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// setThreeDigits loads z with the three-limb magnitude {hi, mid, lo}.
func (z *Int) setThreeDigits(lo, mid, hi Digit) error {
	if err := z.grow(3); err != nil {
		return err
	}
	oldUsed := z.used
	z.dig[0] = lo
	z.dig[1] = mid
	z.dig[2] = hi
	z.used = 3
	z.sign = NonNegative
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Recursive Long Division
// ─────────────────────────────────────────────────────────────────────────────

// divRecursiveMag computes q, r = |a| div |b|, |a| mod |b| by
// divide-and-conquer. The divisor is shifted so its top limb bit is set,
// which bounds every quotient estimate to at most two corrections.
func divRecursiveMag(q, r *Int, a, b *Int) error {
	x, err := acquireScratch(a.used + 1)
	if err != nil {
		return err
	}
	y, err := acquireScratch(b.used + 1)
	if err != nil {
		releaseScratch(x)
		return err
	}
	defer releaseScratch(x, y)

	if err := x.Abs(a); err != nil {
		return err
	}
	if err := y.Abs(b); err != nil {
		return err
	}
	sigma := DigitBits - y.CountBits()%DigitBits
	if sigma == DigitBits {
		sigma = 0
	}
	if err := x.Shl(x, sigma); err != nil {
		return err
	}
	if err := y.Shl(y, sigma); err != nil {
		return err
	}
	if err := divRecursionStep(q, r, x, y); err != nil {
		return err
	}
	return r.shrInto(r, sigma)
}

// divRecursionStep divides the non-negative a by the normalized
// non-negative b. It splits the divisor k = (a.used-b.used)/2 limbs from the
// bottom, divides by the high part twice, and repairs each estimate with the
// low part:
//
//	q = Q1·β^k + Q0,  0 <= r < b
func divRecursionStep(q, r, a, b *Int) error {
	if a.CmpMag(b) < 0 {
		if err := q.Zero(); err != nil {
			return err
		}
		return r.Copy(a)
	}
	m := a.used - b.used
	if m < MulKaratsubaCutoff {
		return divSchoolMag(q, r, a, b)
	}
	k := m / 2

	scratch := make([]*Int, 0, 10)
	get := func(hint int) (*Int, error) {
		t, err := acquireScratch(hint)
		if err != nil {
			return nil, err
		}
		scratch = append(scratch, t)
		return t, nil
	}
	defer func() { releaseScratch(scratch...) }()

	b1, err := get(b.used - k)
	if err != nil {
		return err
	}
	b0, err := get(k)
	if err != nil {
		return err
	}
	if err := highDigits(b1, b, k); err != nil {
		return err
	}
	if err := lowDigits(b0, b, k); err != nil {
		return err
	}

	hi, err := get(a.used)
	if err != nil {
		return err
	}
	lo, err := get(2 * k)
	if err != nil {
		return err
	}
	q1, err := get(a.used)
	if err != nil {
		return err
	}
	rem, err := get(a.used + 1)
	if err != nil {
		return err
	}
	tmp, err := get(a.used + 1)
	if err != nil {
		return err
	}
	bk, err := get(b.used + k)
	if err != nil {
		return err
	}

	// First half: divide the top of a by b1, then repair with b0.
	if err := highDigits(hi, a, 2*k); err != nil {
		return err
	}
	if err := lowDigits(lo, a, 2*k); err != nil {
		return err
	}
	if err := divRecursionStep(q1, rem, hi, b1); err != nil {
		return err
	}
	// rem = rem·β^2k + lo − q1·b0·β^k
	if err := rem.ShlDigits(2 * k); err != nil {
		return err
	}
	if err := rem.Add(rem, lo); err != nil {
		return err
	}
	if err := tmp.Mul(q1, b0); err != nil {
		return err
	}
	if err := tmp.ShlDigits(k); err != nil {
		return err
	}
	if err := rem.Sub(rem, tmp); err != nil {
		return err
	}
	if err := bk.Copy(b); err != nil {
		return err
	}
	if err := bk.ShlDigits(k); err != nil {
		return err
	}
	for rem.sign == Negative {
		if err := q1.SubDigit(q1, 1); err != nil {
			return err
		}
		if err := rem.Add(rem, bk); err != nil {
			return err
		}
	}
	for rem.CmpMag(bk) >= 0 {
		if err := q1.AddDigit(q1, 1); err != nil {
			return err
		}
		if err := rem.Sub(rem, bk); err != nil {
			return err
		}
	}

	// Second half: same step one block lower.
	q0, err := get(a.used)
	if err != nil {
		return err
	}
	r0, err := get(b.used + 1)
	if err != nil {
		return err
	}
	if err := highDigits(hi, rem, k); err != nil {
		return err
	}
	if err := lowDigits(lo, rem, k); err != nil {
		return err
	}
	if err := divRecursionStep(q0, r0, hi, b1); err != nil {
		return err
	}
	if err := r0.ShlDigits(k); err != nil {
		return err
	}
	if err := r0.Add(r0, lo); err != nil {
		return err
	}
	if err := tmp.Mul(q0, b0); err != nil {
		return err
	}
	if err := r0.Sub(r0, tmp); err != nil {
		return err
	}
	for r0.sign == Negative {
		if err := q0.SubDigit(q0, 1); err != nil {
			return err
		}
		if err := r0.Add(r0, b); err != nil {
			return err
		}
	}
	for r0.CmpMag(b) >= 0 {
		if err := q0.AddDigit(q0, 1); err != nil {
			return err
		}
		if err := r0.Sub(r0, b); err != nil {
			return err
		}
	}

	if err := q1.ShlDigits(k); err != nil {
		return err
	}
	if err := q.Add(q1, q0); err != nil {
		return err
	}
	return r.Copy(r0)
}

// ─────────────────────────────────────────────────────────────────────────────
// Single-Digit Divide
// ─────────────────────────────────────────────────────────────────────────────

// DivModDigit divides a by the unsigned single limb d, returning the
// remainder of the magnitude computation. When q is non-nil it receives the
// quotient, carrying a's sign. Division by 1, 2, powers of two and 3 each
// take a dedicated fast path.
func DivModDigit(q *Int, a *Int, d Digit) (Digit, error) {
	if q != nil {
		if err := q.checkDest("divmod_digit"); err != nil {
			return 0, err
		}
	}
	if err := checkOperands("divmod_digit", a); err != nil {
		return 0, err
	}
	d &= Mask
	if d == 0 {
		return 0, &apperrors.DivisionByZeroError{Operation: "divmod_digit"}
	}
	if d == 1 || a.used == 0 {
		if q != nil {
			if err := q.Copy(a); err != nil {
				return 0, err
			}
		}
		return 0, nil
	}
	if d == 2 {
		rem := a.dig[0] & 1
		if q != nil {
			if err := q.Shr1(a); err != nil {
				return 0, err
			}
		}
		return rem, nil
	}
	if k, ok := isPowerOfTwoDigit(d); ok {
		rem := a.dig[0] & (d - 1)
		if q != nil {
			if err := q.Shr(a, k); err != nil {
				return 0, err
			}
		}
		return rem, nil
	}
	if d == 3 {
		return divModDigitThree(q, a)
	}
	return divModDigitInto(q, a, d)
}

// divModDigitInto is the general limb-by-limb long division by a single
// digit, accumulating the running remainder in a Word.
func divModDigitInto(q *Int, a *Int, d Digit) (Digit, error) {
	if q == nil {
		w := Word(0)
		for i := a.used - 1; i >= 0; i-- {
			w = (w<<DigitBits | Word(a.dig[i])) % Word(d)
		}
		return Digit(w), nil
	}
	t, err := acquireScratch(a.used)
	if err != nil {
		return 0, err
	}
	defer releaseScratch(t)
	if err := t.grow(a.used); err != nil {
		return 0, err
	}
	t.used = a.used
	w := Word(0)
	for i := a.used - 1; i >= 0; i-- {
		w = w<<DigitBits | Word(a.dig[i])
		var td Digit
		if w >= Word(d) {
			td = Digit(w / Word(d))
			w -= Word(td) * Word(d)
		}
		t.dig[i] = td
	}
	t.sign = a.sign
	t.clamp()
	if err := q.Swap(t); err != nil {
		return 0, err
	}
	return Digit(w), nil
}

// divModDigitThree divides a by three. Each quotient limb comes from a
// reciprocal estimate instead of a hardware divide; the remainder-only form
// (q == nil) reduces with a plain modulo.
func divModDigitThree(q *Int, a *Int) (Digit, error) {
	const recip = Word(1<<DigitBits) / 3
	if q == nil {
		w := Word(0)
		for i := a.used - 1; i >= 0; i-- {
			w = (w<<DigitBits | Word(a.dig[i])) % 3
		}
		return Digit(w), nil
	}
	t, err := acquireScratch(a.used)
	if err != nil {
		return 0, err
	}
	defer releaseScratch(t)
	if err := t.grow(a.used); err != nil {
		return 0, err
	}
	t.used = a.used
	w := Word(0)
	for i := a.used - 1; i >= 0; i-- {
		w = w<<DigitBits | Word(a.dig[i])
		var td Digit
		if w >= 3 {
			td = Digit((w * recip) >> DigitBits)
			w -= Word(td) * 3
			for w >= 3 {
				td++
				w -= 3
			}
		}
		t.dig[i] = td
	}
	t.sign = a.sign
	t.clamp()
	if err := q.Swap(t); err != nil {
		return 0, err
	}
	return Digit(w), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Modular Reduction
// ─────────────────────────────────────────────────────────────────────────────

// Mod sets z to the remainder of a / b, then folds it toward b's sign: a
// non-zero remainder whose sign differs from b's gets the numerator added
// once.
func (z *Int) Mod(a, b *Int) error {
	if err := z.guard("mod", a, b); err != nil {
		return err
	}
	bsign := b.sign
	// The fold reads the numerator after the division may have clobbered
	// it through aliasing, so keep a copy when z overlaps a.
	n := a
	var keep *Int
	if z == a {
		t, err := acquireScratch(a.used)
		if err != nil {
			return err
		}
		if err := t.Copy(a); err != nil {
			releaseScratch(t)
			return err
		}
		keep = t
		n = t
	}
	err := DivMod(nil, z, a, b)
	if err == nil && z.used != 0 && z.sign != bsign {
		err = z.Add(z, n)
	}
	releaseScratch(keep)
	return err
}

// ModBits sets z to a mod 2^bitCount by masking: whole limbs above the bit
// position are cleared and the partial limb is masked. The sign of a is
// kept on a non-zero result.
func (z *Int) ModBits(a *Int, bitCount int) error {
	if bitCount < 0 {
		return &apperrors.InvalidArgumentError{Operation: "mod_bits", Message: "negative bit count"}
	}
	if err := z.guard("mod_bits", a); err != nil {
		return err
	}
	if bitCount == 0 {
		return z.Zero()
	}
	if err := z.Copy(a); err != nil {
		return err
	}
	if bitCount >= z.used*DigitBits {
		return nil
	}
	limbs := bitCount / DigitBits
	part := uint(bitCount % DigitBits)
	newUsed := limbs
	if part > 0 {
		newUsed++
	}
	if newUsed < z.used {
		oldUsed := z.used
		z.used = newUsed
		z.zeroUnused(oldUsed)
	}
	if part > 0 && limbs < z.used {
		z.dig[limbs] &= (1 << part) - 1
	}
	z.clamp()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Modular Composites
// ─────────────────────────────────────────────────────────────────────────────

// AddMod sets z to (a + b) mod m.
func (z *Int) AddMod(a, b, m *Int) error {
	return z.composeMod(m, func(t *Int) error { return t.Add(a, b) })
}

// SubMod sets z to (a - b) mod m.
func (z *Int) SubMod(a, b, m *Int) error {
	return z.composeMod(m, func(t *Int) error { return t.Sub(a, b) })
}

// MulMod sets z to (a * b) mod m.
func (z *Int) MulMod(a, b, m *Int) error {
	return z.composeMod(m, func(t *Int) error { return t.Mul(a, b) })
}

// SqrMod sets z to a² mod m.
func (z *Int) SqrMod(a, m *Int) error {
	return z.composeMod(m, func(t *Int) error { return t.Sqr(a) })
}

// composeMod runs the primitive into a scratch and reduces it modulo m.
func (z *Int) composeMod(m *Int, primitive func(*Int) error) error {
	t, err := acquireScratch(m.used * 2)
	if err != nil {
		return err
	}
	defer releaseScratch(t)
	if err := primitive(t); err != nil {
		return err
	}
	return z.Mod(t, m)
}
