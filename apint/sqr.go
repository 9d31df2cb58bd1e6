package apint

import (
	"github.com/agbru/apcalc/internal/metrics"
)

// Sqr sets z to a squared, dispatching among the Toom-Cook, Karatsuba,
// Comba and plain squaring kernels by operand size. The result is always
// non-negative.
func (z *Int) Sqr(a *Int) error {
	if err := z.guard("sqr", a); err != nil {
		return err
	}
	if a.used == 0 {
		return z.Zero()
	}

	var err error
	switch {
	case a.used >= SqrToomCutoff:
		metrics.ObserveSqrDispatch("toom")
		err = z.sqrToom(a)
	case a.used >= SqrKaratsubaCutoff:
		metrics.ObserveSqrDispatch("karatsuba")
		err = z.sqrKaratsuba(a)
	case 2*a.used+1 < WArray && a.used < MaxComba/2:
		metrics.ObserveSqrDispatch("comba")
		err = z.sqrComba(a)
	default:
		metrics.ObserveSqrDispatch("base")
		err = z.sqrBase(a)
	}
	if err != nil {
		return err
	}
	z.sign = NonNegative
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Plain Squaring
// ─────────────────────────────────────────────────────────────────────────────

// sqrBase is the O(n²/2) schoolbook squaring: one square term per limb plus
// doubled cross products, accumulated in a Word with immediate carry
// propagation. Works through a scratch so z may alias a.
func (z *Int) sqrBase(a *Int) error {
	digs := 2*a.used + 1
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
		// Square term on the diagonal.
		w := Word(t.dig[2*ix]) + Word(a.dig[ix])*Word(a.dig[ix])
		t.dig[2*ix] = Digit(w) & Mask
		carry := w >> DigitBits
		// Doubled cross products for the rest of the row.
		for iy := ix + 1; iy < a.used; iy++ {
			p := Word(a.dig[ix]) * Word(a.dig[iy])
			w = Word(t.dig[ix+iy]) + 2*p + carry
			t.dig[ix+iy] = Digit(w) & Mask
			carry = w >> DigitBits
		}
		// Flush the carry into the high limbs of the row.
		for iy := ix + a.used; carry != 0; iy++ {
			w = Word(t.dig[iy]) + carry
			t.dig[iy] = Digit(w) & Mask
			carry = w >> DigitBits
		}
	}
	t.clamp()
	return z.Swap(t)
}

// ─────────────────────────────────────────────────────────────────────────────
// Comba Squaring
// ─────────────────────────────────────────────────────────────────────────────

// sqrComba is the column-summation squaring kernel. Each column sums the
// distinct limb pairs once, doubles the partial sum, and adds the diagonal
// square for even columns. The used < MaxComba/2 precondition keeps the
// doubled column sums inside the Word accumulator.
func (z *Int) sqrComba(a *Int) error {
	digs := 2 * a.used
	var w [WArray]Digit
	carry := Word(0)
	for ix := 0; ix < digs; ix++ {
		ty := a.used - 1
		if ix < ty {
			ty = ix
		}
		tx := ix - ty
		iy := a.used - tx
		if ty+1 < iy {
			iy = ty + 1
		}
		// Only distinct pairs: (tx+iz, ty-iz) with tx+iz < ty-iz.
		if half := (ty - tx + 1) >> 1; half < iy {
			iy = half
		}
		acc := Word(0)
		for iz := 0; iz < iy; iz++ {
			acc += Word(a.dig[tx+iz]) * Word(a.dig[ty-iz])
		}
		acc += acc
		if ix&1 == 0 {
			sq := Word(a.dig[ix>>1])
			acc += sq * sq
		}
		acc += carry
		w[ix] = Digit(acc) & Mask
		carry = acc >> DigitBits
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
// Karatsuba Squaring
// ─────────────────────────────────────────────────────────────────────────────

// sqrKaratsuba splits a at half its length and recombines three recursive
// squares:
//
//	x1²·β^2B + ((x0+x1)² − x1² − x0²)·β^B + x0²
func (z *Int) sqrKaratsuba(a *Int) error {
	split := a.used / 2

	x0, err := acquireScratch(split)
	if err != nil {
		return err
	}
	x1, err := acquireScratch(a.used - split)
	if err != nil {
		releaseScratch(x0)
		return err
	}
	t1, err := acquireScratch(2 * a.used)
	if err != nil {
		releaseScratch(x0, x1)
		return err
	}
	x0sq, err := acquireScratch(2 * split)
	if err != nil {
		releaseScratch(x0, x1, t1)
		return err
	}
	x1sq, err := acquireScratch(2 * (a.used - split))
	if err != nil {
		releaseScratch(x0, x1, t1, x0sq)
		return err
	}
	defer releaseScratch(x0, x1, t1, x0sq, x1sq)

	if err := lowDigits(x0, a, split); err != nil {
		return err
	}
	if err := highDigits(x1, a, split); err != nil {
		return err
	}
	// t1 = (x0+x1)²
	if err := t1.addMag(x0, x1); err != nil {
		return err
	}
	if err := t1.Sqr(t1); err != nil {
		return err
	}
	if err := x0sq.Sqr(x0); err != nil {
		return err
	}
	if err := x1sq.Sqr(x1); err != nil {
		return err
	}
	if err := t1.Sub(t1, x0sq); err != nil {
		return err
	}
	if err := t1.Sub(t1, x1sq); err != nil {
		return err
	}
	// Recombine into x1sq = x1²·β^2B + t1·β^B + x0².
	if err := x1sq.ShlDigits(split); err != nil {
		return err
	}
	if err := x1sq.Add(x1sq, t1); err != nil {
		return err
	}
	if err := x1sq.ShlDigits(split); err != nil {
		return err
	}
	if err := x1sq.Add(x1sq, x0sq); err != nil {
		return err
	}
	return z.Swap(x1sq)
}

// ─────────────────────────────────────────────────────────────────────────────
// Toom-Cook Squaring
// ─────────────────────────────────────────────────────────────────────────────

// sqrToom is the squaring form of the 3-way Toom-Cook kernel: the five
// evaluations become squares and the interpolation is identical to the
// multiplication case.
func (z *Int) sqrToom(a *Int) error {
	split := a.used / 3

	scratch := make([]*Int, 0, 9)
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
	if err := splitThirds(a0, a1, a2, a, split); err != nil {
		return err
	}

	w0, err := get(2 * split)
	if err != nil {
		return err
	}
	w1, err := get(2 * a.used)
	if err != nil {
		return err
	}
	wm1, err := get(2 * a.used)
	if err != nil {
		return err
	}
	w2, err := get(2 * a.used)
	if err != nil {
		return err
	}
	wi, err := get(2 * a.used)
	if err != nil {
		return err
	}
	ta, err := get(a.used + 1)
	if err != nil {
		return err
	}

	if err := w0.Sqr(a0); err != nil {
		return err
	}
	if err := wi.Sqr(a2); err != nil {
		return err
	}
	// w1: evaluation at 1.
	if err := ta.Add(a0, a1); err != nil {
		return err
	}
	if err := ta.Add(ta, a2); err != nil {
		return err
	}
	if err := w1.Sqr(ta); err != nil {
		return err
	}
	// wm1: evaluation at −1.
	if err := ta.Add(a0, a2); err != nil {
		return err
	}
	if err := ta.Sub(ta, a1); err != nil {
		return err
	}
	if err := wm1.Sqr(ta); err != nil {
		return err
	}
	// w2: evaluation at 2.
	if err := evalAtTwo(ta, a0, a1, a2); err != nil {
		return err
	}
	if err := w2.Sqr(ta); err != nil {
		return err
	}

	if err := toomInterpolate(w0, w1, wm1, w2, wi); err != nil {
		return err
	}
	return z.toomRecompose(w0, w1, wm1, w2, wi, split)
}
