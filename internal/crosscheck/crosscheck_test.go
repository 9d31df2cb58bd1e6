package crosscheck

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/agbru/apcalc/apint"
	"github.com/agbru/apcalc/internal/logging"
)

// testSource adapts math/rand to the kernel's digit source.
type testSource struct{ rnd *rand.Rand }

func (s testSource) RandomDigit() (apint.Digit, error) {
	return apint.Digit(s.rnd.Uint64()) & apint.Mask, nil
}

// randInt draws a random operand of roughly the given bit size.
func randInt(t *testing.T, rnd *rand.Rand, bits int) *apint.Int {
	t.Helper()
	z := apint.New()
	if err := z.Rand(bits, testSource{rnd}); err != nil {
		t.Fatalf("Rand: %v", err)
	}
	return z
}

// TestRunKernelsAgree verifies all kernels produce one product and Analyze
// accepts it.
func TestRunKernelsAgree(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, bits := range []int{100, 3000, 20000} {
		a := randInt(t, rnd, bits)
		b := randInt(t, rnd, bits)

		kernels := Kernels(a, b)
		results := Run(context.Background(), a, b, kernels)
		if len(results) != len(kernels) {
			t.Fatalf("got %d results for %d kernels", len(results), len(kernels))
		}
		for _, r := range results {
			if r.Err != nil {
				t.Fatalf("kernel %s failed: %v", r.Name, r.Err)
			}
			if r.Product == nil {
				t.Fatalf("kernel %s returned no product", r.Name)
			}
		}

		var buf bytes.Buffer
		if err := Analyze(results, logging.NewLogger(&buf, "crosscheck")); err != nil {
			t.Fatalf("Analyze: %v", err)
		}
	}
}

// TestKernelsExcludeCombaWhenOversize verifies the Comba kernel drops out
// beyond its work-array bound.
func TestKernelsExcludeCombaWhenOversize(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	small := randInt(t, rnd, 100)
	huge := randInt(t, rnd, (apint.WArray/2+8)*apint.DigitBits)

	for _, k := range Kernels(huge, huge) {
		if k.Name() == "comba" {
			t.Error("comba should be excluded for oversize operands")
		}
	}
	found := false
	for _, k := range Kernels(small, small) {
		if k.Name() == "comba" {
			found = true
		}
	}
	if !found {
		t.Error("comba should be included for small operands")
	}
}

// badKernel returns a wrong product to exercise mismatch detection.
type badKernel struct{}

func (badKernel) Name() string { return "bad" }
func (badKernel) Multiply(z, a, b *apint.Int) error {
	if err := z.Mul(a, b); err != nil {
		return err
	}
	return z.AddDigit(z, 1)
}

// failingKernel always errors.
type failingKernel struct{}

func (failingKernel) Name() string                         { return "failing" }
func (failingKernel) Multiply(z, a, b *apint.Int) error { return errors.New("boom") }

// TestAnalyzeDetectsMismatch verifies a deviating kernel is reported.
func TestAnalyzeDetectsMismatch(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	a := randInt(t, rnd, 200)
	b := randInt(t, rnd, 200)

	kernels := append(Kernels(a, b), badKernel{})
	results := Run(context.Background(), a, b, kernels)

	var buf bytes.Buffer
	err := Analyze(results, logging.NewLogger(&buf, "crosscheck"))
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("Analyze: got %v, want ErrMismatch", err)
	}
}

// TestAnalyzeAllFailed verifies the first kernel error surfaces when
// nothing succeeded.
func TestAnalyzeAllFailed(t *testing.T) {
	a, b := apint.NewInt(3), apint.NewInt(4)
	results := Run(context.Background(), a, b, []Kernel{failingKernel{}})

	var buf bytes.Buffer
	err := Analyze(results, logging.NewLogger(&buf, "crosscheck"))
	if err == nil || errors.Is(err, ErrMismatch) {
		t.Errorf("Analyze: got %v, want the kernel failure", err)
	}
}
