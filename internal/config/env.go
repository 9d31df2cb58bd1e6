// This file contains environment variable utilities for configuration
// override.

package config

import (
	"os"
	"strconv"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvInt returns the value of the environment variable with the given
// key (prefixed with EnvPrefix) parsed as int, or the default value if not
// set or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// envOverride declares a single environment variable override. Each entry
// maps an env key (without the APCALC_ prefix) to a function that applies
// the parsed value.
type envOverride struct {
	envKey string
	apply  func(*Tuning, int)
}

// envOverrides is the declarative table of all environment variable
// overrides. Non-positive values are rejected by the guard in
// applyEnvOverrides rather than per entry.
var envOverrides = []envOverride{
	{"MUL_KARATSUBA_CUTOFF", func(t *Tuning, v int) { t.MulKaratsubaCutoff = v }},
	{"MUL_TOOM_CUTOFF", func(t *Tuning, v int) { t.MulToomCutoff = v }},
	{"SQR_KARATSUBA_CUTOFF", func(t *Tuning, v int) { t.SqrKaratsubaCutoff = v }},
	{"SQR_TOOM_CUTOFF", func(t *Tuning, v int) { t.SqrToomCutoff = v }},
	{"FACTORIAL_BINARY_SPLIT_CUTOFF", func(t *Tuning, v int) { t.FactorialBinarySplitCutoff = v }},
	{"MAX_ITERATIONS_ROOT_N", func(t *Tuning, v int) { t.MaxIterationsRootN = v }},
	{"MAX_BIT_COUNT", func(t *Tuning, v int) { t.MaxBitCount = v }},
}

// applyEnvOverrides applies environment variable values on top of t.
//
// Supported environment variables (all prefixed with APCALC_):
//   - MUL_KARATSUBA_CUTOFF, MUL_TOOM_CUTOFF, SQR_KARATSUBA_CUTOFF,
//     SQR_TOOM_CUTOFF, FACTORIAL_BINARY_SPLIT_CUTOFF,
//     MAX_ITERATIONS_ROOT_N, MAX_BIT_COUNT
func applyEnvOverrides(t Tuning) Tuning {
	for _, o := range envOverrides {
		if v := getEnvInt(o.envKey, 0); v > 0 {
			o.apply(&t, v)
		}
	}
	return t
}
