package apint

// Two's-complement bitwise operations over the sign-magnitude
// representation. Negative operands are converted limb by limb on the fly
// with a running carry, the operation is applied, and a negative result is
// converted back the same way.

type bitOp uint8

const (
	opAnd bitOp = iota
	opOr
	opXor
)

// And sets z to a & b with two's-complement semantics. The result is
// negative iff both operands are negative.
func (z *Int) And(a, b *Int) error {
	if err := z.guard("and", a, b); err != nil {
		return err
	}
	return z.bitwise(a, b, opAnd, a.sign == Negative && b.sign == Negative)
}

// Or sets z to a | b with two's-complement semantics. The result is
// negative iff either operand is negative.
func (z *Int) Or(a, b *Int) error {
	if err := z.guard("or", a, b); err != nil {
		return err
	}
	return z.bitwise(a, b, opOr, a.sign == Negative || b.sign == Negative)
}

// Xor sets z to a ^ b with two's-complement semantics. The result is
// negative iff the operand signs differ.
func (z *Int) Xor(a, b *Int) error {
	if err := z.guard("xor", a, b); err != nil {
		return err
	}
	return z.bitwise(a, b, opXor, a.sign != b.sign)
}

// bitwise is the shared two's-complement loop. One limb beyond the longer
// operand is processed so the sign extension of a negative operand reaches
// the result.
func (z *Int) bitwise(a, b *Int, op bitOp, neg bool) error {
	used := a.used
	if b.used > used {
		used = b.used
	}
	used++

	aneg := a.sign == Negative
	bneg := b.sign == Negative

	if err := z.grow(used); err != nil {
		return err
	}
	oldUsed := z.used

	ac, bc, cc := Digit(1), Digit(1), Digit(1)
	for i := 0; i < used; i++ {
		x := a.digitAt(i)
		if aneg {
			x = ac + (x ^ Mask)
			ac = x >> DigitBits
			x &= Mask
		}
		y := b.digitAt(i)
		if bneg {
			y = bc + (y ^ Mask)
			bc = y >> DigitBits
			y &= Mask
		}

		var w Digit
		switch op {
		case opAnd:
			w = x & y
		case opOr:
			w = x | y
		case opXor:
			w = x ^ y
		}

		if neg {
			w = cc + (w ^ Mask)
			cc = w >> DigitBits
			w &= Mask
		}
		z.dig[i] = w
	}

	z.used = used
	z.sign = NonNegative
	if neg {
		z.sign = Negative
	}
	z.zeroUnused(oldUsed)
	z.clamp()
	return nil
}

// Complement sets z to ^a, i.e. -a - 1.
func (z *Int) Complement(a *Int) error {
	if err := z.guard("complement", a); err != nil {
		return err
	}
	if err := z.Neg(a); err != nil {
		return err
	}
	return z.SubDigit(z, 1)
}
