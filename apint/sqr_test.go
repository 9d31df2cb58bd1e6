package apint

import (
	"math/big"
	"math/rand"
	"testing"
)

// TestSqrAgainstOracle cross-checks squaring with math/big across the
// dispatch bands, using lowered cutoffs so the Comba, Karatsuba and
// Toom-Cook kernels run at test size. The plain kernel needs at least
// MaxComba/2 limbs below the Karatsuba cutoff; TestSqrCombaBand covers it.
func TestSqrAgainstOracle(t *testing.T) {
	withCutoffs(t, 8, 24, 10, 30)
	rnd := rand.New(rand.NewSource(10))
	// Sizes picked per band: comba, karatsuba, toom.
	for _, bits := range []int{1, 20, 100, 8 * DigitBits, 15 * DigitBits, 40 * DigitBits, 200 * DigitBits} {
		for i := 0; i < 6; i++ {
			x := randBig(rnd, bits)
			z := New()
			if err := z.Sqr(fromBig(t, x)); err != nil {
				t.Fatalf("Sqr(%d bits): %v", bits, err)
			}
			eqBig(t, z, new(big.Int).Mul(x, x), "Sqr")
			checkCanonical(t, z, "Sqr")
			if z.IsNegative() {
				t.Error("square must be non-negative")
			}
		}
	}
}

// TestSqrCombaBand verifies the Comba squaring admission bound is honored:
// just below MaxComba/2 uses Comba, at the bound falls back to plain. The
// Karatsuba cutoff is raised so the fallback really is the plain kernel.
func TestSqrCombaBand(t *testing.T) {
	withCutoffs(t, 80, 350, 200, 400)
	rnd := rand.New(rand.NewSource(11))
	for _, limbs := range []int{MaxComba/2 - 1, MaxComba / 2, MaxComba/2 + 1} {
		x := randBig(rnd, limbs * DigitBits)
		x.Abs(x)
		x.SetBit(x, limbs*DigitBits-1, 1) // pin the limb count
		z := New()
		if err := z.Sqr(fromBig(t, x)); err != nil {
			t.Fatalf("Sqr(%d limbs): %v", limbs, err)
		}
		eqBig(t, z, new(big.Int).Mul(x, x), "Sqr comba band")
	}
}

// TestSqrAliased verifies squaring into the operand itself.
func TestSqrAliased(t *testing.T) {
	rnd := rand.New(rand.NewSource(12))
	x := randBig(rnd, 600)
	a := fromBig(t, x)
	if err := a.Sqr(a); err != nil {
		t.Fatalf("Sqr: %v", err)
	}
	eqBig(t, a, new(big.Int).Mul(x, x), "aliased Sqr")
	checkCanonical(t, a, "aliased Sqr")
}

// TestSqrZero verifies the zero fast path.
func TestSqrZero(t *testing.T) {
	z := NewInt(-3)
	if err := z.Sqr(New()); err != nil {
		t.Fatalf("Sqr: %v", err)
	}
	if !z.IsZero() || !z.IsPositive() {
		t.Error("Sqr(0) should be canonical zero")
	}
}
