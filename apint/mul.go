package apint

import (
	apperrors "github.com/agbru/apcalc/internal/errors"
	"github.com/agbru/apcalc/internal/metrics"
)

// ─────────────────────────────────────────────────────────────────────────────
// Digit Multiply
// ─────────────────────────────────────────────────────────────────────────────

// MulDigit sets z to a * m for an unsigned single limb m. Multiplication by
// 0, 1 and powers of two short-circuits to the cheaper primitive.
func (z *Int) MulDigit(a *Int, m Digit) error {
	if err := z.guard("mul_digit", a); err != nil {
		return err
	}
	m &= Mask
	switch m {
	case 0:
		return z.Zero()
	case 1:
		return z.Copy(a)
	case 2:
		return z.Shl1(a)
	}
	if k, ok := isPowerOfTwoDigit(m); ok {
		return z.Shl(a, k)
	}
	if err := z.grow(a.used + 1); err != nil {
		return err
	}
	oldUsed := z.used
	carry := Word(0)
	for i := 0; i < a.used; i++ {
		w := Word(a.dig[i])*Word(m) + carry
		z.dig[i] = Digit(w) & Mask
		carry = w >> DigitBits
	}
	z.dig[a.used] = Digit(carry)
	z.used = a.used + 1
	z.sign = a.sign
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// General Multiply Dispatch
// ─────────────────────────────────────────────────────────────────────────────

// Mul sets z to a * b, dispatching among the squaring chain (when a and b
// are the same Int), balance, Toom-Cook, Karatsuba, Comba and schoolbook
// kernels by operand size. The result is negative iff exactly one operand
// is negative and the product is non-zero.
func (z *Int) Mul(a, b *Int) error {
	if err := z.guard("mul", a, b); err != nil {
		return err
	}
	if a == b {
		return z.Sqr(a)
	}
	if a.used == 0 || b.used == 0 {
		return z.Zero()
	}
	neg := a.sign != b.sign

	minU, maxU := a.used, b.used
	if minU > maxU {
		minU, maxU = maxU, minU
	}

	var err error
	switch {
	case minU >= MulKaratsubaCutoff && maxU >= 2*minU:
		metrics.ObserveMulDispatch("balance")
		err = z.mulBalance(a, b)
	case minU >= MulToomCutoff:
		metrics.ObserveMulDispatch("toom")
		err = z.mulToom(a, b)
	case minU >= MulKaratsubaCutoff:
		metrics.ObserveMulDispatch("karatsuba")
		err = z.mulKaratsuba(a, b)
	case a.used+b.used+1 < WArray && minU <= MaxComba:
		metrics.ObserveMulDispatch("comba")
		err = z.mulComba(a, b)
	default:
		metrics.ObserveMulDispatch("schoolbook")
		err = z.mulSchoolbook(a, b)
	}
	if err != nil {
		return err
	}
	z.sign = NonNegative
	if neg && z.used > 0 {
		z.sign = Negative
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Forced-Kernel Entry Points
// ─────────────────────────────────────────────────────────────────────────────
//
// Each forced entry point applies the same zero and sign handling as Mul
// but pins the kernel. They exist for the cross-check harness, calibration
// and targeted tests; sizes below a kernel's viable minimum fall back to
// the schoolbook kernel rather than failing.

// MulSchoolbook multiplies with the quadratic schoolbook kernel.
func (z *Int) MulSchoolbook(a, b *Int) error {
	return z.mulForced(a, b, (*Int).mulSchoolbook)
}

// MulComba multiplies with the Comba column kernel. Operands whose product
// exceeds the Comba work-array bound are rejected with InvalidArgument.
func (z *Int) MulComba(a, b *Int) error {
	minU := a.used
	if b.used < minU {
		minU = b.used
	}
	if a.used+b.used+1 >= WArray || minU > MaxComba {
		return &apperrors.InvalidArgumentError{Operation: "mul_comba", Message: "operands exceed comba work array"}
	}
	return z.mulForced(a, b, (*Int).mulComba)
}

// MulKaratsuba multiplies with the Karatsuba kernel.
func (z *Int) MulKaratsuba(a, b *Int) error {
	if a.used < 2 || b.used < 2 {
		return z.mulForced(a, b, (*Int).mulSchoolbook)
	}
	return z.mulForced(a, b, (*Int).mulKaratsuba)
}

// MulToomCook multiplies with the 3-way Toom-Cook kernel.
func (z *Int) MulToomCook(a, b *Int) error {
	if a.used < 3 || b.used < 3 {
		return z.mulForced(a, b, (*Int).mulSchoolbook)
	}
	return z.mulForced(a, b, (*Int).mulToom)
}

// mulForced shares the guard, zero and sign handling of the forced entry
// points.
func (z *Int) mulForced(a, b *Int, kernel func(*Int, *Int, *Int) error) error {
	if err := z.guard("mul", a, b); err != nil {
		return err
	}
	if a.used == 0 || b.used == 0 {
		return z.Zero()
	}
	neg := a.sign != b.sign
	if err := kernel(z, a, b); err != nil {
		return err
	}
	z.sign = NonNegative
	if neg && z.used > 0 {
		z.sign = Negative
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Schoolbook Kernel
// ─────────────────────────────────────────────────────────────────────────────

// mulSchoolbook computes the magnitude product limb by limb through a
// scratch, so any aliasing between z and the operands is harmless.
func (z *Int) mulSchoolbook(a, b *Int) error {
	digs := a.used + b.used
	t, err := acquireScratch(digs)
	if err != nil {
		return err
	}
	defer releaseScratch(t)
	if err := t.grow(digs); err != nil {
		return err
	}
	t.used = digs
	for ix := 0; ix < a.used; ix++ {
		carry := Word(0)
		ad := Word(a.dig[ix])
		for iy := 0; iy < b.used; iy++ {
			w := Word(t.dig[ix+iy]) + ad*Word(b.dig[iy]) + carry
			t.dig[ix+iy] = Digit(w) & Mask
			carry = w >> DigitBits
		}
		t.dig[ix+b.used] = Digit(carry)
	}
	t.clamp()
	return z.Swap(t)
}

// ─────────────────────────────────────────────────────────────────────────────
// Comba Kernel
// ─────────────────────────────────────────────────────────────────────────────

// mulComba computes the magnitude product by column summation, deferring
// all carries to one pass per column. The work array lives on the stack.
// Callers guarantee a.used+b.used+1 < WArray and min(used) <= MaxComba, so
// a column sum cannot overflow the Word accumulator.
func (z *Int) mulComba(a, b *Int) error {
	digs := a.used + b.used
	var w [WArray]Digit
	acc := Word(0)
	for ix := 0; ix < digs; ix++ {
		ty := b.used - 1
		if ix < ty {
			ty = ix
		}
		tx := ix - ty
		iy := a.used - tx
		if ty+1 < iy {
			iy = ty + 1
		}
		for iz := 0; iz < iy; iz++ {
			acc += Word(a.dig[tx+iz]) * Word(b.dig[ty-iz])
		}
		w[ix] = Digit(acc) & Mask
		acc >>= DigitBits
	}
	if err := z.grow(digs); err != nil {
		return err
	}
	oldUsed := z.used
	copy(z.dig[:digs], w[:digs])
	z.used = digs
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Karatsuba Kernel
// ─────────────────────────────────────────────────────────────────────────────

// mulKaratsuba splits both operands at half the smaller length and
// recombines three recursive products:
//
//	x1y1·β^2B + ((x1+x0)(y1+y0) − x1y1 − x0y0)·β^B + x0y0
//
// Sub-products go back through Mul so each level re-dispatches by size.
func (z *Int) mulKaratsuba(a, b *Int) error {
	min := a.used
	if b.used < min {
		min = b.used
	}
	split := min / 2

	x0, err := acquireScratch(split)
	if err != nil {
		return err
	}
	x1, err := acquireScratch(a.used - split)
	if err != nil {
		releaseScratch(x0)
		return err
	}
	y0, err := acquireScratch(split)
	if err != nil {
		releaseScratch(x0, x1)
		return err
	}
	y1, err := acquireScratch(b.used - split)
	if err != nil {
		releaseScratch(x0, x1, y0)
		return err
	}
	t1, err := acquireScratch(a.used + b.used)
	if err != nil {
		releaseScratch(x0, x1, y0, y1)
		return err
	}
	t2, err := acquireScratch(a.used + b.used)
	if err != nil {
		releaseScratch(x0, x1, y0, y1, t1)
		return err
	}
	x0y0, err := acquireScratch(2 * split)
	if err != nil {
		releaseScratch(x0, x1, y0, y1, t1, t2)
		return err
	}
	defer releaseScratch(x0, x1, y0, y1, t1, t2, x0y0)

	if err := lowDigits(x0, a, split); err != nil {
		return err
	}
	if err := highDigits(x1, a, split); err != nil {
		return err
	}
	if err := lowDigits(y0, b, split); err != nil {
		return err
	}
	if err := highDigits(y1, b, split); err != nil {
		return err
	}

	// t1 = (x1+x0)(y1+y0)
	if err := t1.addMag(x1, x0); err != nil {
		return err
	}
	if err := t2.addMag(y1, y0); err != nil {
		return err
	}
	if err := t1.Mul(t1, t2); err != nil {
		return err
	}
	// t2 = x1y1, x0y0 = x0y0
	if err := t2.Mul(x1, y1); err != nil {
		return err
	}
	if err := x0y0.Mul(x0, y0); err != nil {
		return err
	}
	// t1 -= x1y1 + x0y0
	if err := t1.Sub(t1, t2); err != nil {
		return err
	}
	if err := t1.Sub(t1, x0y0); err != nil {
		return err
	}
	// Recombine into t2 = x1y1·β^2B + t1·β^B + x0y0.
	if err := t2.ShlDigits(split); err != nil {
		return err
	}
	if err := t2.Add(t2, t1); err != nil {
		return err
	}
	if err := t2.ShlDigits(split); err != nil {
		return err
	}
	if err := t2.Add(t2, x0y0); err != nil {
		return err
	}
	return z.Swap(t2)
}

// lowDigits sets z to the low count limbs of a.
func lowDigits(z, a *Int, count int) error {
	if count > a.used {
		count = a.used
	}
	if err := z.grow(count); err != nil {
		return err
	}
	oldUsed := z.used
	copy(z.dig[:count], a.dig[:count])
	z.used = count
	z.sign = NonNegative
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// highDigits sets z to a with its low from limbs removed.
func highDigits(z, a *Int, from int) error {
	if from >= a.used {
		return z.Zero()
	}
	count := a.used - from
	if err := z.grow(count); err != nil {
		return err
	}
	oldUsed := z.used
	copy(z.dig[:count], a.dig[from:a.used])
	z.used = count
	z.sign = NonNegative
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Toom-Cook Kernel
// ─────────────────────────────────────────────────────────────────────────────

// mulToom is 3-way Toom-Cook over the evaluation points 0, 1, −1, 2 and
// infinity. Both operands split into thirds of the smaller length:
//
//	w0  = a0·b0
//	w1  = (a0+a1+a2)(b0+b1+b2)
//	wm1 = (a0−a1+a2)(b0−b1+b2)
//	w2  = (a0+2a1+4a2)(b0+2b1+4b2)
//	wi  = a2·b2
//
// and interpolation recovers the five result coefficients with exact
// divisions by 2 and 3 only.
func (z *Int) mulToom(a, b *Int) error {
	min := a.used
	if b.used < min {
		min = b.used
	}
	split := min / 3

	scratch := make([]*Int, 0, 12)
	get := func(hint int) (*Int, error) {
		t, err := acquireScratch(hint)
		if err != nil {
			return nil, err
		}
		scratch = append(scratch, t)
		return t, nil
	}
	defer func() { releaseScratch(scratch...) }()

	a0, err := get(split)
	if err != nil {
		return err
	}
	a1, err := get(split)
	if err != nil {
		return err
	}
	a2, err := get(a.used - 2*split)
	if err != nil {
		return err
	}
	b0, err := get(split)
	if err != nil {
		return err
	}
	b1, err := get(split)
	if err != nil {
		return err
	}
	b2, err := get(b.used - 2*split)
	if err != nil {
		return err
	}
	if err := splitThirds(a0, a1, a2, a, split); err != nil {
		return err
	}
	if err := splitThirds(b0, b1, b2, b, split); err != nil {
		return err
	}

	w0, err := get(2 * split)
	if err != nil {
		return err
	}
	w1, err := get(a.used + b.used)
	if err != nil {
		return err
	}
	wm1, err := get(a.used + b.used)
	if err != nil {
		return err
	}
	w2, err := get(a.used + b.used)
	if err != nil {
		return err
	}
	wi, err := get(a.used + b.used)
	if err != nil {
		return err
	}
	ta, err := get(a.used)
	if err != nil {
		return err
	}
	tb, err := get(b.used)
	if err != nil {
		return err
	}

	// w0 and wi: the endpoints.
	if err := w0.Mul(a0, b0); err != nil {
		return err
	}
	if err := wi.Mul(a2, b2); err != nil {
		return err
	}
	// w1: evaluation at 1.
	if err := ta.Add(a0, a1); err != nil {
		return err
	}
	if err := ta.Add(ta, a2); err != nil {
		return err
	}
	if err := tb.Add(b0, b1); err != nil {
		return err
	}
	if err := tb.Add(tb, b2); err != nil {
		return err
	}
	if err := w1.Mul(ta, tb); err != nil {
		return err
	}
	// wm1: evaluation at −1.
	if err := ta.Add(a0, a2); err != nil {
		return err
	}
	if err := ta.Sub(ta, a1); err != nil {
		return err
	}
	if err := tb.Add(b0, b2); err != nil {
		return err
	}
	if err := tb.Sub(tb, b1); err != nil {
		return err
	}
	if err := wm1.Mul(ta, tb); err != nil {
		return err
	}
	// w2: evaluation at 2.
	if err := evalAtTwo(ta, a0, a1, a2); err != nil {
		return err
	}
	if err := evalAtTwo(tb, b0, b1, b2); err != nil {
		return err
	}
	if err := w2.Mul(ta, tb); err != nil {
		return err
	}

	if err := toomInterpolate(w0, w1, wm1, w2, wi); err != nil {
		return err
	}
	return z.toomRecompose(w0, w1, wm1, w2, wi, split)
}

// splitThirds fills p0, p1, p2 with the base-β^split thirds of a; p2 takes
// the remaining high limbs.
func splitThirds(p0, p1, p2, a *Int, split int) error {
	if err := lowDigits(p0, a, split); err != nil {
		return err
	}
	if err := midDigits(p1, a, split, split); err != nil {
		return err
	}
	return highDigits(p2, a, 2*split)
}

// midDigits sets z to count limbs of a starting at from.
func midDigits(z, a *Int, from, count int) error {
	if from >= a.used {
		return z.Zero()
	}
	if from+count > a.used {
		count = a.used - from
	}
	if err := z.grow(count); err != nil {
		return err
	}
	oldUsed := z.used
	copy(z.dig[:count], a.dig[from:from+count])
	z.used = count
	z.sign = NonNegative
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// evalAtTwo sets z to p0 + 2·p1 + 4·p2.
func evalAtTwo(z, p0, p1, p2 *Int) error {
	if err := z.Shl1(p2); err != nil {
		return err
	}
	if err := z.Add(z, p1); err != nil {
		return err
	}
	if err := z.Shl1(z); err != nil {
		return err
	}
	return z.Add(z, p0)
}

// toomInterpolate solves for the result coefficients in place:
//
//	w1  ← c1, wm1 ← c2, w2 ← c3
//
// with c0 staying in w0 and c4 in wi. All divisions are exact.
func toomInterpolate(w0, w1, wm1, w2, wi *Int) error {
	// c2 = (w1 + wm1)/2 − w0 − wi
	c2 := wm1
	if err := c2.Add(w1, wm1); err != nil {
		return err
	}
	if err := c2.Shr1(c2); err != nil {
		return err
	}
	if err := c2.Sub(c2, w0); err != nil {
		return err
	}
	if err := c2.Sub(c2, wi); err != nil {
		return err
	}
	// w1 ← t2 = c1 + c3, via w1 − c2 − w0 − wi; this avoids needing the
	// original wm1, which c2 just overwrote.
	if err := w1.Sub(w1, c2); err != nil {
		return err
	}
	if err := w1.Sub(w1, w0); err != nil {
		return err
	}
	if err := w1.Sub(w1, wi); err != nil {
		return err
	}
	// w2 ← c3 = ((w2 − w0 − 4c2 − 16wi)/2 − t2) / 3
	if err := w2.Sub(w2, w0); err != nil {
		return err
	}
	if err := subShifted(w2, c2, 2); err != nil {
		return err
	}
	if err := subShifted(w2, wi, 4); err != nil {
		return err
	}
	if err := w2.Shr1(w2); err != nil {
		return err
	}
	if err := w2.Sub(w2, w1); err != nil {
		return err
	}
	if _, err := divModDigitInto(w2, w2, 3); err != nil {
		return err
	}
	// w1 ← c1 = t2 − c3
	return w1.Sub(w1, w2)
}

// subShifted subtracts x·2^k from acc using a pooled scratch.
func subShifted(acc, x *Int, k int) error {
	t, err := acquireScratch(x.used + 1)
	if err != nil {
		return err
	}
	defer releaseScratch(t)
	if err := t.Shl(x, k); err != nil {
		return err
	}
	return acc.Sub(acc, t)
}

// toomRecompose assembles c4..c0 into z via Horner steps on β^split.
func (z *Int) toomRecompose(c0, c1, c2, c3, c4 *Int, split int) error {
	res, err := acquireScratch(c4.used + 4*split + 2)
	if err != nil {
		return err
	}
	defer releaseScratch(res)
	if err := res.Copy(c4); err != nil {
		return err
	}
	for _, c := range []*Int{c3, c2, c1, c0} {
		if err := res.ShlDigits(split); err != nil {
			return err
		}
		if err := res.Add(res, c); err != nil {
			return err
		}
	}
	return z.Swap(res)
}

// ─────────────────────────────────────────────────────────────────────────────
// Balance Kernel
// ─────────────────────────────────────────────────────────────────────────────

// mulBalance multiplies a long operand by a much shorter one by slicing the
// long operand into short-sized blocks, multiplying each block separately
// and accumulating the shifted partial products. This keeps the recursive
// kernels operating on balanced inputs.
func (z *Int) mulBalance(a, b *Int) error {
	long, short := a, b
	if long.used < short.used {
		long, short = short, long
	}
	block := short.used

	acc, err := acquireScratch(a.used + b.used + 1)
	if err != nil {
		return err
	}
	chunk, err := acquireScratch(block)
	if err != nil {
		releaseScratch(acc)
		return err
	}
	part, err := acquireScratch(2*block + 1)
	if err != nil {
		releaseScratch(acc, chunk)
		return err
	}
	defer releaseScratch(acc, chunk, part)

	for from := 0; from < long.used; from += block {
		count := block
		if from+count > long.used {
			count = long.used - from
		}
		if err := midDigits(chunk, long, from, count); err != nil {
			return err
		}
		if err := part.Mul(chunk, short); err != nil {
			return err
		}
		if err := part.ShlDigits(from); err != nil {
			return err
		}
		if err := acc.Add(acc, part); err != nil {
			return err
		}
	}
	return z.Swap(acc)
}
