package apint

import (
	apperrors "github.com/agbru/apcalc/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Integer Square Root
// ─────────────────────────────────────────────────────────────────────────────

// Sqrt sets z to the integer square root of a, the largest x with x² <= a.
// Negative a is rejected.
func (z *Int) Sqrt(a *Int) error {
	if err := z.guard("sqrt", a); err != nil {
		return err
	}
	if a.sign == Negative {
		return &apperrors.MathDomainError{Operation: "sqrt", Message: "square root of a negative value"}
	}
	if a.used == 0 {
		return z.Zero()
	}

	x, err := acquireScratch(a.used/2 + 2)
	if err != nil {
		return err
	}
	y, err := acquireScratch(a.used/2 + 2)
	if err != nil {
		releaseScratch(x)
		return err
	}
	t, err := acquireScratch(a.used + 1)
	if err != nil {
		releaseScratch(x, y)
		return err
	}
	defer releaseScratch(x, y, t)

	// Newton iteration from above: x0 = 2^ceil(bits/2) >= sqrt(a), then
	// y = (x + a/x)/2 strictly decreases until it crosses the root.
	if err := x.PowerOfTwo((a.CountBits() + 1) / 2); err != nil {
		return err
	}
	for {
		if err := DivMod(t, nil, a, x); err != nil {
			return err
		}
		if err := y.Add(x, t); err != nil {
			return err
		}
		if err := y.Shr1(y); err != nil {
			return err
		}
		if y.CmpMag(x) >= 0 {
			break
		}
		if err := x.Swap(y); err != nil {
			return err
		}
	}
	return z.Swap(x)
}

// ─────────────────────────────────────────────────────────────────────────────
// Integer Nth Root
// ─────────────────────────────────────────────────────────────────────────────

// RootN sets z to the integer n-th root of a: the largest x with x^n <= |a|
// in magnitude, carrying a's sign for odd n. n below 1 or above DigitMax is
// rejected, as is an even root of a negative value. The Newton iteration is
// bounded by MaxIterationsRootN.
func (z *Int) RootN(a *Int, n int) error {
	if err := z.guard("root_n", a); err != nil {
		return err
	}
	if n < 1 || Digit(n) > DigitMax {
		return &apperrors.InvalidArgumentError{Operation: "root_n", Message: "root degree out of range"}
	}
	if n%2 == 0 && a.sign == Negative {
		return &apperrors.MathDomainError{Operation: "root_n", Message: "even root of a negative value"}
	}
	if n == 1 {
		return z.Copy(a)
	}
	if n == 2 {
		return z.Sqrt(a)
	}
	if a.used == 0 {
		return z.Zero()
	}
	sign := a.sign

	aa, err := acquireScratch(a.used)
	if err != nil {
		return err
	}
	x, err := acquireScratch(a.used)
	if err != nil {
		releaseScratch(aa)
		return err
	}
	t1, err := acquireScratch(a.used + 1)
	if err != nil {
		releaseScratch(aa, x)
		return err
	}
	t2, err := acquireScratch(a.used + 1)
	if err != nil {
		releaseScratch(aa, x, t1)
		return err
	}
	t3, err := acquireScratch(a.used + 1)
	if err != nil {
		releaseScratch(aa, x, t1, t2)
		return err
	}
	defer releaseScratch(aa, x, t1, t2, t3)

	if err := aa.Abs(a); err != nil {
		return err
	}
	// Start above the root and walk down:
	//
	//	x' = ((n-1)x + a/x^(n-1)) / n
	if err := x.PowerOfTwo(aa.CountBits()/n + 2); err != nil {
		return err
	}
	converged := false
	for iter := 0; iter < MaxIterationsRootN; iter++ {
		if err := t1.Pow(x, int64(n-1)); err != nil {
			return err
		}
		if err := DivMod(t2, nil, aa, t1); err != nil {
			return err
		}
		if err := t3.MulDigit(x, Digit(n-1)); err != nil {
			return err
		}
		if err := t3.Add(t3, t2); err != nil {
			return err
		}
		if _, err := DivModDigit(t3, t3, Digit(n)); err != nil {
			return err
		}
		if t3.CmpMag(x) >= 0 {
			converged = true
			break
		}
		if err := x.Swap(t3); err != nil {
			return err
		}
	}
	if !converged {
		return &apperrors.IterationLimitError{Operation: "root_n", Limit: MaxIterationsRootN}
	}

	// One-direction corrections cover a one-off under- or overshoot.
	for {
		if err := t1.AddDigit(x, 1); err != nil {
			return err
		}
		if err := t2.Pow(t1, int64(n)); err != nil {
			return err
		}
		if t2.CmpMag(aa) > 0 {
			break
		}
		if err := x.Swap(t1); err != nil {
			return err
		}
	}
	for {
		if err := t2.Pow(x, int64(n)); err != nil {
			return err
		}
		if t2.CmpMag(aa) <= 0 {
			break
		}
		if err := x.SubDigit(x, 1); err != nil {
			return err
		}
	}

	if err := z.Swap(x); err != nil {
		return err
	}
	z.sign = sign
	z.normalizeZero()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Integer Power
// ─────────────────────────────────────────────────────────────────────────────

// Pow sets z to base^p by right-to-left square-and-multiply. A negative p
// truncates to zero (the result is a fraction), except for base zero which
// is a domain error; p of 0 yields 1.
func (z *Int) Pow(base *Int, p int64) error {
	if err := z.guard("pow", base); err != nil {
		return err
	}
	if base.used == 0 && p < 0 {
		// Zero the destination so a caller that ignores the error does
		// not keep a stale value.
		if err := z.Zero(); err != nil {
			return err
		}
		return &apperrors.MathDomainError{Operation: "pow", Message: "negative power of zero"}
	}
	switch {
	case p == 0:
		return z.SetDigit(1)
	case p < 0:
		return z.Zero()
	case p == 1:
		return z.Copy(base)
	case p == 2:
		return z.Sqr(base)
	}

	g, err := acquireScratch(base.used)
	if err != nil {
		return err
	}
	res, err := acquireScratch(base.used)
	if err != nil {
		releaseScratch(g)
		return err
	}
	defer releaseScratch(g, res)

	if err := g.Copy(base); err != nil {
		return err
	}
	if err := res.SetDigit(1); err != nil {
		return err
	}
	for e := p; e > 0; {
		if e&1 == 1 {
			if err := res.Mul(res, g); err != nil {
				return err
			}
		}
		e >>= 1
		if e > 0 {
			if err := g.Sqr(g); err != nil {
				return err
			}
		}
	}
	return z.Swap(res)
}

// ─────────────────────────────────────────────────────────────────────────────
// Integer Logarithm
// ─────────────────────────────────────────────────────────────────────────────

// Log returns the integer logarithm of a in the given base: the largest k
// with base^k <= a. The base must be at least 2 and a strictly positive.
func Log(a *Int, base Digit) (int, error) {
	if base < 2 || base > DigitMax {
		return 0, &apperrors.InvalidArgumentError{Operation: "log", Message: "base out of range"}
	}
	if err := checkOperands("log", a); err != nil {
		return 0, err
	}
	if a.used == 0 || a.sign == Negative {
		return 0, &apperrors.MathDomainError{Operation: "log", Message: "logarithm of a non-positive value"}
	}
	if k, ok := isPowerOfTwoDigit(base); ok {
		return (a.CountBits() - 1) / k, nil
	}
	if a.used == 1 {
		count := 0
		for v := Word(a.dig[0]); v >= Word(base); v /= Word(base) {
			count++
		}
		return count, nil
	}
	return logBisect(a, base)
}

// logBisect brackets the exponent by repeated squaring, then narrows the
// bracket by bisection. The running bracket values are kept as Ints so
// each probe is one small power and one multiply.
func logBisect(a *Int, base Digit) (int, error) {
	low, high := 0, 1

	bracketLow, err := acquireScratch(a.used)
	if err != nil {
		return 0, err
	}
	bracketHigh, err := acquireScratch(a.used)
	if err != nil {
		releaseScratch(bracketLow)
		return 0, err
	}
	baseInt, err := acquireScratch(1)
	if err != nil {
		releaseScratch(bracketLow, bracketHigh)
		return 0, err
	}
	t, err := acquireScratch(a.used)
	if err != nil {
		releaseScratch(bracketLow, bracketHigh, baseInt)
		return 0, err
	}
	defer releaseScratch(bracketLow, bracketHigh, baseInt, t)

	if err := bracketLow.SetDigit(1); err != nil {
		return 0, err
	}
	if err := baseInt.SetDigit(base); err != nil {
		return 0, err
	}
	if err := bracketHigh.SetDigit(base); err != nil {
		return 0, err
	}

	for bracketHigh.CmpMag(a) < 0 {
		low = high
		if err := bracketLow.Copy(bracketHigh); err != nil {
			return 0, err
		}
		high *= 2
		if err := bracketHigh.Sqr(bracketHigh); err != nil {
			return 0, err
		}
	}
	for high-low > 1 {
		mid := low + (high-low)/2
		if err := t.Pow(baseInt, int64(mid-low)); err != nil {
			return 0, err
		}
		if err := t.Mul(t, bracketLow); err != nil {
			return 0, err
		}
		if t.CmpMag(a) > 0 {
			high = mid
			if err := bracketHigh.Swap(t); err != nil {
				return 0, err
			}
		} else {
			low = mid
			if err := bracketLow.Swap(t); err != nil {
				return 0, err
			}
		}
	}
	if bracketHigh.CmpMag(a) == 0 {
		return high, nil
	}
	return low, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GCD / LCM
// ─────────────────────────────────────────────────────────────────────────────

// GcdLcm computes the greatest common divisor and least common multiple of
// a and b. Either output may be nil. Both results are non-negative;
// gcd(0, 0) is 0 and the lcm with a zero operand is 0.
func GcdLcm(g, l *Int, a, b *Int) error {
	if g == nil && l == nil {
		return nil
	}
	if g != nil {
		if err := g.checkDest("gcd_lcm"); err != nil {
			return err
		}
	}
	if l != nil {
		if err := l.checkDest("gcd_lcm"); err != nil {
			return err
		}
	}
	if err := checkOperands("gcd_lcm", a, b); err != nil {
		return err
	}

	gg, err := acquireScratch(a.used + b.used)
	if err != nil {
		return err
	}
	defer releaseScratch(gg)
	if err := gcdMag(gg, a, b); err != nil {
		return err
	}

	if l != nil {
		if gg.used == 0 {
			if err := l.Zero(); err != nil {
				return err
			}
		} else {
			// lcm = |a/g · b|
			t, err := acquireScratch(a.used + b.used)
			if err != nil {
				return err
			}
			if err := DivMod(t, nil, a, gg); err != nil {
				releaseScratch(t)
				return err
			}
			if err := t.Mul(t, b); err != nil {
				releaseScratch(t)
				return err
			}
			t.sign = NonNegative
			if err := l.Swap(t); err != nil {
				releaseScratch(t)
				return err
			}
			releaseScratch(t)
		}
	}
	if g != nil {
		return g.Swap(gg)
	}
	return nil
}

// gcdMag computes gcd(|a|, |b|) with the binary algorithm: strip the common
// power of two, then repeatedly subtract the smaller odd value from the
// larger and re-strip.
func gcdMag(g, a, b *Int) error {
	if a.used == 0 {
		return g.Abs(b)
	}
	if b.used == 0 {
		return g.Abs(a)
	}

	u, err := acquireScratch(a.used)
	if err != nil {
		return err
	}
	v, err := acquireScratch(b.used)
	if err != nil {
		releaseScratch(u)
		return err
	}
	defer releaseScratch(u, v)

	if err := u.Abs(a); err != nil {
		return err
	}
	if err := v.Abs(b); err != nil {
		return err
	}
	k := u.CountLSB()
	if vk := v.CountLSB(); vk < k {
		k = vk
	}
	if err := u.shrInto(u, u.CountLSB()); err != nil {
		return err
	}
	if err := v.shrInto(v, v.CountLSB()); err != nil {
		return err
	}
	for v.used != 0 {
		if u.CmpMag(v) > 0 {
			if err := u.Swap(v); err != nil {
				return err
			}
		}
		if err := v.subMag(v, u); err != nil {
			return err
		}
		if v.used != 0 {
			if err := v.shrInto(v, v.CountLSB()); err != nil {
				return err
			}
		}
	}
	return g.Shl(u, k)
}
