// Package config resolves the kernel's tuning values. The resolution chain,
// highest priority first:
//
//  1. Environment variables (APCALC_*)
//  2. Adaptive hardware estimation (this package)
//  3. Static defaults in the kernel package
//
// Resolve does not read a calibration profile. A profile layered onto its
// result with calibration.Apply overrides all three, environment values
// included.
package config

import (
	"github.com/agbru/apcalc/apint"
)

// EnvPrefix is prepended to every environment variable this package reads.
const EnvPrefix = "APCALC_"

// Tuning collects every retunable kernel constant.
type Tuning struct {
	// MulKaratsubaCutoff is the smaller-operand limb count at which
	// multiplication switches to Karatsuba.
	MulKaratsubaCutoff int
	// MulToomCutoff is the smaller-operand limb count at which
	// multiplication switches to Toom-Cook.
	MulToomCutoff int
	// SqrKaratsubaCutoff is the limb count at which squaring switches to
	// Karatsuba.
	SqrKaratsubaCutoff int
	// SqrToomCutoff is the limb count at which squaring switches to
	// Toom-Cook.
	SqrToomCutoff int
	// FactorialBinarySplitCutoff is the n at which Factorial switches to
	// binary-split range products.
	FactorialBinarySplitCutoff int
	// MaxIterationsRootN bounds the Newton iteration inside RootN.
	MaxIterationsRootN int
	// MaxBitCount caps how many bits a single Int may grow to.
	MaxBitCount int
}

// Defaults returns the kernel's built-in tuning.
func Defaults() Tuning {
	return Tuning{
		MulKaratsubaCutoff:         apint.MulKaratsubaCutoff,
		MulToomCutoff:              apint.MulToomCutoff,
		SqrKaratsubaCutoff:         apint.SqrKaratsubaCutoff,
		SqrToomCutoff:              apint.SqrToomCutoff,
		FactorialBinarySplitCutoff: apint.FactorialBinarySplitCutoff,
		MaxIterationsRootN:         apint.MaxIterationsRootN,
		MaxBitCount:                apint.DefaultMaxBitCount,
	}
}

// Apply installs the tuning into the kernel package.
func Apply(t Tuning) {
	apint.MulKaratsubaCutoff = t.MulKaratsubaCutoff
	apint.MulToomCutoff = t.MulToomCutoff
	apint.SqrKaratsubaCutoff = t.SqrKaratsubaCutoff
	apint.SqrToomCutoff = t.SqrToomCutoff
	apint.FactorialBinarySplitCutoff = t.FactorialBinarySplitCutoff
	apint.MaxIterationsRootN = t.MaxIterationsRootN
	apint.MaxBitCount = t.MaxBitCount
}

// Resolve builds the effective tuning from defaults, adaptive hardware
// estimation and environment overrides, in that order. It does not read a
// calibration profile.
func Resolve() Tuning {
	t := ApplyAdaptiveTuning(Defaults())
	return applyEnvOverrides(t)
}
