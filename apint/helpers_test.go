package apint

import (
	"math/big"
	"math/rand"
	"testing"
)

// toBig converts a to a math/big value for oracle comparison.
func toBig(a *Int) *big.Int {
	v := new(big.Int)
	for i := a.used - 1; i >= 0; i-- {
		v.Lsh(v, DigitBits)
		v.Or(v, big.NewInt(int64(a.dig[i])))
	}
	if a.sign == Negative {
		v.Neg(v)
	}
	return v
}

// fromBig loads v into a fresh Int.
func fromBig(t *testing.T, v *big.Int) *Int {
	t.Helper()
	z := New()
	mag := new(big.Int).Abs(v)
	limbs := (mag.BitLen() + DigitBits - 1) / DigitBits
	if err := z.grow(limbs); err != nil {
		t.Fatalf("grow(%d): %v", limbs, err)
	}
	mask := big.NewInt(int64(Mask))
	chunk := new(big.Int)
	for i := 0; i < limbs; i++ {
		chunk.And(mag, mask)
		z.dig[i] = Digit(chunk.Uint64())
		mag.Rsh(mag, DigitBits)
	}
	z.used = limbs
	if v.Sign() < 0 {
		z.sign = Negative
	}
	z.clamp()
	return z
}

// checkCanonical fails the test when a violates the canonical-form
// invariants.
func checkCanonical(t *testing.T, a *Int, context string) {
	t.Helper()
	if a.used < 0 {
		t.Fatalf("%s: used is negative: %d", context, a.used)
	}
	if a.used == 0 && a.sign != NonNegative {
		t.Errorf("%s: zero with Negative sign", context)
	}
	if a.used > 0 && a.dig[a.used-1] == 0 {
		t.Errorf("%s: top limb is zero (used=%d)", context, a.used)
	}
	for i := a.used; i < len(a.dig); i++ {
		if a.dig[i] != 0 {
			t.Errorf("%s: unused limb %d is %d", context, i, a.dig[i])
			break
		}
	}
	for i := 0; i < a.used; i++ {
		if a.dig[i] > Mask {
			t.Errorf("%s: limb %d overflows the mask: %x", context, i, a.dig[i])
			break
		}
	}
	if len(a.dig) > 0 && len(a.dig) < MinDigitCount {
		t.Errorf("%s: capacity %d below minimum", context, len(a.dig))
	}
}

// randBig returns a uniformly random value with up to bits magnitude bits,
// negated half the time.
func randBig(rnd *rand.Rand, bits int) *big.Int {
	if bits <= 0 {
		return new(big.Int)
	}
	v := new(big.Int).Rand(rnd, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
	if rnd.Intn(2) == 1 {
		v.Neg(v)
	}
	return v
}

// withCutoffs lowers the dispatch cutoffs for the duration of a test so
// the sub-quadratic kernels engage on small operands.
func withCutoffs(t *testing.T, mulKaratsuba, mulToom, sqrKaratsuba, sqrToom int) {
	t.Helper()
	origMK, origMT := MulKaratsubaCutoff, MulToomCutoff
	origSK, origST := SqrKaratsubaCutoff, SqrToomCutoff
	MulKaratsubaCutoff, MulToomCutoff = mulKaratsuba, mulToom
	SqrKaratsubaCutoff, SqrToomCutoff = sqrKaratsuba, sqrToom
	t.Cleanup(func() {
		MulKaratsubaCutoff, MulToomCutoff = origMK, origMT
		SqrKaratsubaCutoff, SqrToomCutoff = origSK, origST
	})
}

// eqBig fails the test when got does not equal want.
func eqBig(t *testing.T, got *Int, want *big.Int, context string) {
	t.Helper()
	if g := toBig(got); g.Cmp(want) != 0 {
		t.Errorf("%s: got %s, want %s", context, g, want)
	}
}
