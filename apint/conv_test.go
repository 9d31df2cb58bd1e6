package apint

import (
	"errors"
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/apcalc/internal/errors"
)

// TestSetGetRoundTrip verifies SetInt64/SetUint64 against the oracle
// bridge.
func TestSetGetRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 255, -255, 1 << 27, 1 << 28, -(1 << 28),
		math.MaxInt64, math.MinInt64 + 1}
	for _, v := range values {
		a := New()
		if err := a.SetInt64(v); err != nil {
			t.Fatalf("SetInt64(%d): %v", v, err)
		}
		eqBig(t, a, big.NewInt(v), "SetInt64")
		checkCanonical(t, a, "SetInt64")
	}

	uvals := []uint64{0, 1, math.MaxUint64, 1 << 56, 1<<56 - 1}
	for _, v := range uvals {
		a := New()
		if err := a.SetUint64(v); err != nil {
			t.Fatalf("SetUint64(%d): %v", v, err)
		}
		eqBig(t, a, new(big.Int).SetUint64(v), "SetUint64")
		if got := a.GetUint64(); got != v {
			t.Errorf("GetUint64 round trip = %d, want %d", got, v)
		}
	}

	t.Run("MinInt64 negates cleanly", func(t *testing.T) {
		a := New()
		if err := a.SetInt64(math.MinInt64); err != nil {
			t.Fatalf("SetInt64: %v", err)
		}
		eqBig(t, a, big.NewInt(math.MinInt64), "SetInt64(MinInt64)")
	})
}

// TestGetUint64Truncates verifies only the low 64 magnitude bits survive.
func TestGetUint64Truncates(t *testing.T) {
	a := New()
	if err := a.PowerOfTwo(100); err != nil {
		t.Fatalf("PowerOfTwo: %v", err)
	}
	if err := a.AddDigit(a, 5); err != nil {
		t.Fatalf("AddDigit: %v", err)
	}
	if got := a.GetUint64(); got != 5 {
		t.Errorf("GetUint64(2^100 + 5) = %d, want 5", got)
	}
}

// TestGetInt64TopBitMask pins the quirk: bit 63 of the collected magnitude
// is cleared unconditionally before the sign is applied.
func TestGetInt64TopBitMask(t *testing.T) {
	tests := []struct {
		name string
		mag  *big.Int
		neg  bool
		want int64
	}{
		{"small positive", big.NewInt(42), false, 42},
		{"small negative", big.NewInt(42), true, -42},
		{"bit 62 survives", new(big.Int).Lsh(big.NewInt(1), 62), false, 1 << 62},
		{"bit 63 is stripped", new(big.Int).Lsh(big.NewInt(1), 63), false, 0},
		{"bit 63 stripped, low bits kept", new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 63), big.NewInt(9)), false, 9},
		{"negative with bit 63 stripped", new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 63), big.NewInt(9)), true, -9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := new(big.Int).Set(tt.mag)
			if tt.neg {
				v.Neg(v)
			}
			a := fromBig(t, v)
			if got := a.GetInt64(); got != tt.want {
				t.Errorf("GetInt64 = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestGetFloat64 verifies the coarse conversion on exactly representable
// and large values.
func TestGetFloat64(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 1 << 52, -(1 << 52), 123456789} {
		a := NewInt(v)
		if got := a.GetFloat64(); got != float64(v) {
			t.Errorf("GetFloat64(%d) = %g, want %g", v, got, float64(v))
		}
	}

	a := New()
	if err := a.PowerOfTwo(300); err != nil {
		t.Fatalf("PowerOfTwo: %v", err)
	}
	got := a.GetFloat64()
	want := math.Ldexp(1, 300)
	if math.Abs(got-want)/want > 1e-12 {
		t.Errorf("GetFloat64(2^300) = %g, want about %g", got, want)
	}
}

// TestBitfieldExtract covers windows spanning one to four limbs and the
// argument validation.
func TestBitfieldExtract(t *testing.T) {
	rnd := rand.New(rand.NewSource(22))
	for i := 0; i < 100; i++ {
		x := new(big.Int).Abs(randBig(rnd, 300))
		a := fromBig(t, x)
		for _, tc := range []struct{ offset, count int }{
			{0, 1}, {0, 28}, {5, 10}, {20, 28}, {25, 64}, {27, 64}, {250, 64}, {290, 64},
		} {
			got, err := a.BitfieldExtract(tc.offset, tc.count)
			if err != nil {
				t.Fatalf("BitfieldExtract(%d, %d): %v", tc.offset, tc.count, err)
			}
			want := new(big.Int).Rsh(x, uint(tc.offset))
			mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(tc.count)), big.NewInt(1))
			want.And(want, mask)
			if got != want.Uint64() {
				t.Errorf("BitfieldExtract(%d, %d) = %#x, want %#x", tc.offset, tc.count, got, want)
			}
		}
	}

	t.Run("rejections", func(t *testing.T) {
		a := NewInt(1)
		if _, err := a.BitfieldExtract(0, 0); !apperrors.IsInvalidArgument(err) {
			t.Errorf("count 0: got %v, want InvalidArgumentError", err)
		}
		if _, err := a.BitfieldExtract(0, 65); !apperrors.IsInvalidArgument(err) {
			t.Errorf("count 65: got %v, want InvalidArgumentError", err)
		}
		if _, err := a.BitfieldExtract(-1, 8); !apperrors.IsInvalidArgument(err) {
			t.Errorf("negative offset: got %v, want InvalidArgumentError", err)
		}
	})
}

// TestPowerOfTwo verifies the single-bit constructor across limb
// boundaries.
func TestPowerOfTwo(t *testing.T) {
	for _, k := range []int{0, 1, 27, 28, 29, 56, 1000} {
		a := New()
		if err := a.PowerOfTwo(k); err != nil {
			t.Fatalf("PowerOfTwo(%d): %v", k, err)
		}
		want := new(big.Int).Lsh(big.NewInt(1), uint(k))
		eqBig(t, a, want, "PowerOfTwo")
		checkCanonical(t, a, "PowerOfTwo")
	}
	a := New()
	if err := a.PowerOfTwo(-1); !apperrors.IsInvalidArgument(err) {
		t.Errorf("PowerOfTwo(-1): got %v, want InvalidArgumentError", err)
	}
}

// TestRand verifies limb filling and top-limb masking with a mocked
// source.
func TestRand(t *testing.T) {
	t.Run("masks to the requested bits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		src := NewMockSource(ctrl)
		// 60 bits needs three limbs; saturated draws expose the mask.
		src.EXPECT().RandomDigit().Return(Mask, nil).Times(3)

		z := New()
		if err := z.Rand(60, src); err != nil {
			t.Fatalf("Rand: %v", err)
		}
		if got := z.CountBits(); got != 60 {
			t.Errorf("CountBits = %d, want 60", got)
		}
		checkCanonical(t, z, "Rand")
	})

	t.Run("zero bits yields zero", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		src := NewMockSource(ctrl)

		z := NewInt(7)
		if err := z.Rand(0, src); err != nil {
			t.Fatalf("Rand: %v", err)
		}
		if !z.IsZero() {
			t.Error("Rand(0 bits) should be zero")
		}
	})

	t.Run("source failure propagates and zeroes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		src := NewMockSource(ctrl)
		boom := errors.New("entropy exhausted")
		src.EXPECT().RandomDigit().Return(Digit(0), boom)

		z := New()
		err := z.Rand(100, src)
		if !errors.Is(err, boom) {
			t.Errorf("Rand error = %v, want wrapped source failure", err)
		}
		checkCanonical(t, z, "Rand after failure")
	})

	t.Run("negative bit count rejected", func(t *testing.T) {
		z := New()
		if err := z.Rand(-1, CryptoSource{}); !apperrors.IsInvalidArgument(err) {
			t.Errorf("Rand(-1): got %v, want InvalidArgumentError", err)
		}
	})
}

// TestCryptoSource smoke-tests the OS-entropy source.
func TestCryptoSource(t *testing.T) {
	var src CryptoSource
	for i := 0; i < 10; i++ {
		d, err := src.RandomDigit()
		if err != nil {
			t.Fatalf("RandomDigit: %v", err)
		}
		if d > Mask {
			t.Fatalf("digit %#x exceeds the mask", d)
		}
	}
	z := New()
	if err := z.Rand(257, src); err != nil {
		t.Fatalf("Rand: %v", err)
	}
	if z.CountBits() > 257 {
		t.Errorf("Rand produced %d bits, want <= 257", z.CountBits())
	}
}
