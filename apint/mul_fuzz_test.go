package apint

import (
	"math/big"
	"testing"
)

// intFromBytes builds an operand from raw fuzz bytes: the first byte picks
// the sign, the rest become magnitude.
func intFromBytes(data []byte) *Int {
	z := New()
	if len(data) == 0 {
		return z
	}
	neg := data[0]&1 == 1
	for _, b := range data[1:] {
		// z = z·256 + b
		if err := z.MulDigit(z, 256); err != nil {
			return z
		}
		if err := z.AddDigit(z, Digit(b)); err != nil {
			return z
		}
	}
	if neg && !z.IsZero() {
		_ = z.Neg(z)
	}
	return z
}

// FuzzMulKernelsConsistency verifies that the dispatcher and the
// schoolbook, Karatsuba and Toom-Cook kernels produce the same product, and
// that the product matches math/big. This
// catches carry and recombination bugs the fixed-seed tests might miss.
func FuzzMulKernelsConsistency(f *testing.F) {
	f.Add([]byte{0}, []byte{0})
	f.Add([]byte{0, 1}, []byte{1, 1})
	f.Add([]byte{0, 0xFF, 0xFF, 0xFF, 0xFF}, []byte{1, 0xFF, 0xFF})
	f.Add([]byte{1, 9, 9, 9, 9, 9, 9, 9, 9, 9}, []byte{0, 1, 0, 0, 0, 0, 1})

	f.Fuzz(func(t *testing.T, rawA, rawB []byte) {
		// Bound the operand size so fuzzing iterates quickly.
		if len(rawA) > 512 || len(rawB) > 512 {
			return
		}
		a := intFromBytes(rawA)
		b := intFromBytes(rawB)
		want := new(big.Int).Mul(toBig(a), toBig(b))

		kernels := []struct {
			name string
			mul  func(z *Int) error
		}{
			{"dispatch", func(z *Int) error { return z.Mul(a, b) }},
			{"schoolbook", func(z *Int) error { return z.MulSchoolbook(a, b) }},
			{"karatsuba", func(z *Int) error { return z.MulKaratsuba(a, b) }},
			{"toom", func(z *Int) error { return z.MulToomCook(a, b) }},
		}
		for _, k := range kernels {
			z := New()
			if err := k.mul(z); err != nil {
				t.Fatalf("%s failed: %v", k.name, err)
			}
			if got := toBig(z); got.Cmp(want) != 0 {
				t.Fatalf("%s: got %s, want %s", k.name, got, want)
			}
		}
	})
}

// FuzzDivModIdentity verifies n == q·d + r with |r| < |d| for arbitrary
// operands.
func FuzzDivModIdentity(f *testing.F) {
	f.Add([]byte{0, 100}, []byte{0, 7})
	f.Add([]byte{1, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, []byte{0, 3})

	f.Fuzz(func(t *testing.T, rawN, rawD []byte) {
		if len(rawN) > 512 || len(rawD) > 512 {
			return
		}
		n := intFromBytes(rawN)
		d := intFromBytes(rawD)
		if d.IsZero() {
			return
		}
		q, r := New(), New()
		if err := DivMod(q, r, n, d); err != nil {
			t.Fatalf("DivMod: %v", err)
		}
		back := New()
		if err := back.Mul(q, d); err != nil {
			t.Fatalf("Mul: %v", err)
		}
		if err := back.Add(back, r); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if back.Cmp(n) != 0 {
			t.Fatalf("q·d + r = %s, want %s", toBig(back), toBig(n))
		}
		if r.CmpMag(d) >= 0 {
			t.Fatalf("|r| = %s not below |d| = %s", toBig(r), toBig(d))
		}
	})
}
