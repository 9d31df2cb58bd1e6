package apint

import (
	"math/big"
	"math/rand"
	"testing"
)

// TestAddSub cross-checks signed addition and subtraction against math/big
// across sign and size combinations.
func TestAddSub(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		x := randBig(rnd, rnd.Intn(300))
		y := randBig(rnd, rnd.Intn(300))
		a, b := fromBig(t, x), fromBig(t, y)

		sum := New()
		if err := sum.Add(a, b); err != nil {
			t.Fatalf("Add: %v", err)
		}
		eqBig(t, sum, new(big.Int).Add(x, y), "Add")
		checkCanonical(t, sum, "Add")

		diff := New()
		if err := diff.Sub(a, b); err != nil {
			t.Fatalf("Sub: %v", err)
		}
		eqBig(t, diff, new(big.Int).Sub(x, y), "Sub")
		checkCanonical(t, diff, "Sub")
	}
}

// TestAddCarryChain verifies the carry extends through a run of full limbs
// into a new top limb.
func TestAddCarryChain(t *testing.T) {
	a := New()
	if err := a.PowerOfTwo(5 * DigitBits); err != nil {
		t.Fatalf("PowerOfTwo: %v", err)
	}
	if err := a.SubDigit(a, 1); err != nil {
		t.Fatalf("SubDigit: %v", err)
	}
	// a = β^5 - 1: all five limbs saturated.
	z := New()
	if err := z.AddDigit(a, 1); err != nil {
		t.Fatalf("AddDigit: %v", err)
	}
	if z.used != 6 || !z.IsPowerOfTwo() {
		t.Errorf("carry chain result: used=%d, IsPowerOfTwo=%v", z.used, z.IsPowerOfTwo())
	}
	checkCanonical(t, z, "carry chain")
}

// TestAddOppositeEqualMagnitudes pins the boundary: x + (-x) is exactly
// zero with a NonNegative sign.
func TestAddOppositeEqualMagnitudes(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		x := randBig(rnd, 200)
		a := fromBig(t, x)
		na := fromBig(t, new(big.Int).Neg(x))
		z := New()
		if err := z.Add(a, na); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if !z.IsZero() || z.IsNegative() {
			t.Fatalf("x + (-x): got %s, want canonical zero", toBig(z))
		}
	}

	a := NewInt(7)
	z := New()
	if err := z.Sub(a, a); err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if !z.IsZero() || !z.IsPositive() {
		t.Error("a - a should be canonical zero")
	}
}

// TestAddSubDigit cross-checks the single-limb variants, with attention to
// the zero crossings.
func TestAddSubDigit(t *testing.T) {
	values := []int64{0, 1, 2, 100, -1, -2, -100, 1 << 40, -(1 << 40), int64(Mask), int64(Mask) + 1}
	digits := []Digit{0, 1, 2, 9, Mask}
	for _, v := range values {
		for _, d := range digits {
			a := NewInt(v)
			z := New()
			if err := z.AddDigit(a, d); err != nil {
				t.Fatalf("AddDigit(%d, %d): %v", v, d, err)
			}
			want := new(big.Int).Add(big.NewInt(v), big.NewInt(int64(d)))
			eqBig(t, z, want, "AddDigit")
			checkCanonical(t, z, "AddDigit")

			if err := z.SubDigit(a, d); err != nil {
				t.Fatalf("SubDigit(%d, %d): %v", v, d, err)
			}
			want = new(big.Int).Sub(big.NewInt(v), big.NewInt(int64(d)))
			eqBig(t, z, want, "SubDigit")
			checkCanonical(t, z, "SubDigit")
		}
	}
}

// TestAddSubDigitInPlace exercises the dest == a fast paths.
func TestAddSubDigitInPlace(t *testing.T) {
	a := NewInt(10)
	if err := a.AddDigit(a, 5); err != nil {
		t.Fatalf("AddDigit: %v", err)
	}
	if got := a.GetInt64(); got != 15 {
		t.Errorf("in-place AddDigit = %d, want 15", got)
	}
	if err := a.SubDigit(a, 6); err != nil {
		t.Fatalf("SubDigit: %v", err)
	}
	if got := a.GetInt64(); got != 9 {
		t.Errorf("in-place SubDigit = %d, want 9", got)
	}

	// Limb-0 overflow forces the slow path.
	b := NewInt(int64(Mask))
	if err := b.AddDigit(b, Mask); err != nil {
		t.Fatalf("AddDigit: %v", err)
	}
	if got := b.GetInt64(); got != 2*int64(Mask) {
		t.Errorf("overflowing AddDigit = %d, want %d", got, 2*int64(Mask))
	}
	checkCanonical(t, b, "overflowing AddDigit")
}

// TestAddAliasing walks every dest/operand aliasing pattern.
func TestAddAliasing(t *testing.T) {
	t.Run("dest aliases a", func(t *testing.T) {
		a, b := NewInt(100), NewInt(23)
		if err := a.Add(a, b); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if got := a.GetInt64(); got != 123 {
			t.Errorf("got %d, want 123", got)
		}
	})
	t.Run("dest aliases b", func(t *testing.T) {
		a, b := NewInt(100), NewInt(23)
		if err := b.Add(a, b); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if got := b.GetInt64(); got != 123 {
			t.Errorf("got %d, want 123", got)
		}
	})
	t.Run("a aliases b", func(t *testing.T) {
		a := NewInt(11)
		z := New()
		if err := z.Add(a, a); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if got := z.GetInt64(); got != 22 {
			t.Errorf("got %d, want 22", got)
		}
	})
	t.Run("all aliased", func(t *testing.T) {
		a := NewInt(11)
		if err := a.Add(a, a); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if got := a.GetInt64(); got != 22 {
			t.Errorf("got %d, want 22", got)
		}
	})
	t.Run("sub with dest aliasing both", func(t *testing.T) {
		a := NewInt(11)
		if err := a.Sub(a, a); err != nil {
			t.Fatalf("Sub: %v", err)
		}
		if !a.IsZero() || !a.IsPositive() {
			t.Error("a - a should be canonical zero")
		}
	})
}
