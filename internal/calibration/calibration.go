// Package calibration measures the crossover points between the kernel's
// multiplication algorithms on the current host and persists them as a
// profile that Apply layers onto a config.Tuning.
package calibration

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/apcalc/apint"
	"github.com/agbru/apcalc/internal/config"
	apperrors "github.com/agbru/apcalc/internal/errors"
	"github.com/agbru/apcalc/internal/logging"
)

// tracerName identifies this package's spans.
const tracerName = "github.com/agbru/apcalc/internal/calibration"

// measureRepeats is how many times each candidate size is timed; the
// fastest run wins, which filters scheduler noise.
const measureRepeats = 3

// Options configures a calibration run.
type Options struct {
	// Quick halves the candidate grid for fast startup calibration.
	Quick bool
}

// Runner performs calibration measurements with a deterministic operand
// source; each measurement allocates its own operands.
type Runner struct {
	logger logging.Logger
	tracer trace.Tracer
	rng    *splitMixSource
}

// NewRunner creates a calibration runner.
func NewRunner(logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Runner{
		logger: logger,
		tracer: otel.Tracer(tracerName),
		rng:    newSplitMixSource(0x9e3779b97f4a7c15),
	}
}

// Run measures the multiplication and squaring crossovers and returns the
// resulting profile.
func (r *Runner) Run(ctx context.Context, opts Options) (Profile, error) {
	ctx, span := r.tracer.Start(ctx, "calibration.run")
	defer span.End()

	grid := candidateKaratsubaCutoffs(opts.Quick)
	mulCutoff, err := r.pickCutoff(ctx, "mul", grid, func(z, a, b *apint.Int, cutover bool) error {
		if cutover {
			return z.MulKaratsuba(a, b)
		}
		return z.MulSchoolbook(a, b)
	})
	if err != nil {
		return Profile{}, err
	}
	sqrCutoff, err := r.pickCutoff(ctx, "sqr", candidateSqrCutoffs(opts.Quick), func(z, a, b *apint.Int, cutover bool) error {
		if cutover {
			return z.MulKaratsuba(a, a)
		}
		return z.MulSchoolbook(a, a)
	})
	if err != nil {
		return Profile{}, err
	}

	p := Profile{
		MulKaratsubaCutoff: mulCutoff,
		MulToomCutoff:      mulCutoff * 4,
		SqrKaratsubaCutoff: sqrCutoff,
		SqrToomCutoff:      sqrCutoff * 4,
		CreatedAt:          time.Now().UTC(),
	}
	span.SetAttributes(
		attribute.Int("mul_karatsuba_cutoff", p.MulKaratsubaCutoff),
		attribute.Int("sqr_karatsuba_cutoff", p.SqrKaratsubaCutoff),
	)
	r.logger.Info("calibration complete",
		logging.Int("mul_karatsuba_cutoff", p.MulKaratsubaCutoff),
		logging.Int("sqr_karatsuba_cutoff", p.SqrKaratsubaCutoff))
	return p, nil
}

// pickCutoff returns the smallest candidate limb count at which the
// recursive kernel beats the quadratic one, or the largest candidate when
// it never does.
func (r *Runner) pickCutoff(ctx context.Context, kind string, candidates []int, mul func(z, a, b *apint.Int, cutover bool) error) (int, error) {
	_, span := r.tracer.Start(ctx, "calibration.pick_cutoff",
		trace.WithAttributes(attribute.String("kind", kind)))
	defer span.End()

	best := candidates[len(candidates)-1]
	for _, size := range candidates {
		quad, err := r.measure(size, func(z, a, b *apint.Int) error { return mul(z, a, b, false) })
		if err != nil {
			return 0, err
		}
		rec, err := r.measure(size, func(z, a, b *apint.Int) error { return mul(z, a, b, true) })
		if err != nil {
			return 0, err
		}
		r.logger.Debug("measured candidate",
			logging.String("kind", kind),
			logging.Int("limbs", size),
			logging.Float64("quadratic_ms", float64(quad.Microseconds())/1000),
			logging.Float64("recursive_ms", float64(rec.Microseconds())/1000))
		if rec < quad {
			best = size
			break
		}
	}
	span.SetAttributes(attribute.Int("cutoff", best))
	return best, nil
}

// measure times one multiplication of two fresh random operands of the
// given limb count, keeping the fastest of measureRepeats runs.
func (r *Runner) measure(limbs int, mul func(z, a, b *apint.Int) error) (time.Duration, error) {
	a, b, z := apint.New(), apint.New(), apint.New()
	defer apint.Destroy(a, b, z)
	if err := a.Rand(limbs*apint.DigitBits, r.rng); err != nil {
		return 0, apperrors.WrapError(err, "generating operand")
	}
	if err := b.Rand(limbs*apint.DigitBits, r.rng); err != nil {
		return 0, apperrors.WrapError(err, "generating operand")
	}
	best := time.Duration(0)
	for i := 0; i < measureRepeats; i++ {
		start := time.Now()
		if err := mul(z, a, b); err != nil {
			return 0, err
		}
		if d := time.Since(start); best == 0 || d < best {
			best = d
		}
	}
	return best, nil
}

// Apply layers a profile onto a tuning, leaving zero profile fields alone.
func Apply(p Profile, t config.Tuning) config.Tuning {
	if p.MulKaratsubaCutoff > 0 {
		t.MulKaratsubaCutoff = p.MulKaratsubaCutoff
	}
	if p.MulToomCutoff > 0 {
		t.MulToomCutoff = p.MulToomCutoff
	}
	if p.SqrKaratsubaCutoff > 0 {
		t.SqrKaratsubaCutoff = p.SqrKaratsubaCutoff
	}
	if p.SqrToomCutoff > 0 {
		t.SqrToomCutoff = p.SqrToomCutoff
	}
	return t
}

// splitMixSource is a small deterministic digit source for reproducible
// calibration operands.
type splitMixSource struct {
	state uint64
}

func newSplitMixSource(seed uint64) *splitMixSource {
	return &splitMixSource{state: seed}
}

// RandomDigit steps the splitmix64 generator once.
func (s *splitMixSource) RandomDigit() (apint.Digit, error) {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return apint.Digit(z) & apint.Mask, nil
}
