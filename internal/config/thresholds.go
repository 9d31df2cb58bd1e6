package config

import (
	"runtime"

	"github.com/agbru/apcalc/internal/sysmon"
)

// ApplyAdaptiveTuning adjusts tuning values from hardware characteristics
// when they are still at their static defaults. This gives reasonable
// behavior on unusual hosts without requiring explicit calibration.
func ApplyAdaptiveTuning(t Tuning) Tuning {
	d := Defaults()
	if t.MulKaratsubaCutoff == d.MulKaratsubaCutoff {
		t.MulKaratsubaCutoff = estimateKaratsubaCutoff(d.MulKaratsubaCutoff)
	}
	if t.SqrKaratsubaCutoff == d.SqrKaratsubaCutoff {
		t.SqrKaratsubaCutoff = estimateKaratsubaCutoff(d.SqrKaratsubaCutoff)
	}
	if t.MaxBitCount == d.MaxBitCount {
		t.MaxBitCount = estimateMaxBitCount(d.MaxBitCount)
	}
	return t
}

// estimateKaratsubaCutoff nudges a Karatsuba cutoff for the host CPU. The
// split/recombine overhead is mostly allocation, which scales with cache
// size; core count is the cheap available proxy.
func estimateKaratsubaCutoff(base int) int {
	switch numCPU := runtime.NumCPU(); {
	case numCPU <= 2:
		// Small hosts tend to have small caches: delay the recursive
		// kernels a little.
		return base + base/4
	case numCPU >= 16:
		return base - base/4
	default:
		return base
	}
}

// estimateMaxBitCount bounds single-Int growth to a fraction of physical
// memory, so a runaway size computation fails fast instead of swapping the
// host to death. Hosts whose memory cannot be probed keep the default.
func estimateMaxBitCount(base int) int {
	total := sysmon.Sample().TotalBytes
	if total == 0 {
		return base
	}
	// An Int of n bits costs n/28 limbs of 8 bytes, so n/2 payload bits
	// occupy about a seventh of physical memory once scratch is counted.
	bits := total / 2
	if bits >= uint64(base) {
		return base
	}
	if bits < 1<<20 {
		bits = 1 << 20
	}
	return int(bits)
}
