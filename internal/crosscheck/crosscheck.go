// Package crosscheck runs one product through several multiplication
// kernels concurrently and verifies that the results agree. A disagreement
// means a kernel bug and is reported as an error rather than a value.
package crosscheck

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/apcalc/apint"
	"github.com/agbru/apcalc/internal/logging"
)

// ErrMismatch is returned by Analyze when two kernels disagree on a
// product.
var ErrMismatch = errors.New("kernel results are inconsistent")

// Kernel is one multiplication implementation under test.
type Kernel interface {
	// Name identifies the kernel in reports.
	Name() string
	// Multiply sets z to a * b.
	Multiply(z, a, b *apint.Int) error
}

// Result captures one kernel's outcome.
type Result struct {
	// Name is the kernel's identifier.
	Name string
	// Product is the computed value; nil when Err is set.
	Product *apint.Int
	// Duration is the time the kernel took.
	Duration time.Duration
	// Err is the kernel's failure, if any.
	Err error
}

// ─────────────────────────────────────────────────────────────────────────────
// Kernel Wrappers
// ─────────────────────────────────────────────────────────────────────────────

type kernelFunc struct {
	name string
	mul  func(z, a, b *apint.Int) error
}

func (k kernelFunc) Name() string                    { return k.name }
func (k kernelFunc) Multiply(z, a, b *apint.Int) error { return k.mul(z, a, b) }

// Kernels returns every forced multiplication kernel plus the size
// dispatcher. Comba is excluded automatically for operands beyond its
// work-array bound.
func Kernels(a, b *apint.Int) []Kernel {
	ks := []Kernel{
		kernelFunc{"dispatch", func(z, x, y *apint.Int) error { return z.Mul(x, y) }},
		kernelFunc{"schoolbook", func(z, x, y *apint.Int) error { return z.MulSchoolbook(x, y) }},
		kernelFunc{"karatsuba", func(z, x, y *apint.Int) error { return z.MulKaratsuba(x, y) }},
		kernelFunc{"toom", func(z, x, y *apint.Int) error { return z.MulToomCook(x, y) }},
	}
	if fitsComba(a, b) {
		ks = append(ks, kernelFunc{"comba", func(z, x, y *apint.Int) error { return z.MulComba(x, y) }})
	}
	return ks
}

// fitsComba mirrors the Comba admission bound.
func fitsComba(a, b *apint.Int) bool {
	ba, bb := a.CountBits(), b.CountBits()
	la := (ba + apint.DigitBits - 1) / apint.DigitBits
	lb := (bb + apint.DigitBits - 1) / apint.DigitBits
	min := la
	if lb < min {
		min = lb
	}
	return la+lb+1 < apint.WArray && min <= apint.MaxComba
}

// ─────────────────────────────────────────────────────────────────────────────
// Execution
// ─────────────────────────────────────────────────────────────────────────────

// Run executes every kernel on a and b concurrently and collects the
// results in kernel order. The operands are only read, which is safe to do
// from several goroutines; each kernel writes into its own destination.
func Run(ctx context.Context, a, b *apint.Int, kernels []Kernel) []Result {
	g, _ := errgroup.WithContext(ctx)
	results := make([]Result, len(kernels))

	for i, k := range kernels {
		idx, kernel := i, k
		g.Go(func() error {
			z := apint.New()
			start := time.Now()
			err := kernel.Multiply(z, a, b)
			results[idx] = Result{
				Name: kernel.Name(), Product: z, Duration: time.Since(start), Err: err,
			}
			if err != nil {
				results[idx].Product = nil
			}
			return nil
		})
	}
	g.Wait()
	return results
}

// Analyze validates consistency across the successful results. The first
// error encountered is returned when no kernel succeeded; a disagreement
// between successful kernels returns ErrMismatch.
func Analyze(results []Result, logger logging.Logger) error {
	var reference *Result
	var firstErr error
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			logger.Error("kernel failed", r.Err, logging.String("kernel", r.Name))
			continue
		}
		if reference == nil {
			reference = r
			continue
		}
		if r.Product.Cmp(reference.Product) != 0 {
			logger.Error("kernel mismatch", ErrMismatch,
				logging.String("kernel", r.Name),
				logging.String("reference", reference.Name))
			return ErrMismatch
		}
	}
	if reference == nil {
		return firstErr
	}
	logger.Debug("kernels agree",
		logging.Int("kernels", len(results)),
		logging.String("reference", reference.Name))
	return nil
}
