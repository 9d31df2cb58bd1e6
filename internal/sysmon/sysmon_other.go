//go:build !linux

// This file provides the portable fallback for platforms without a memory
// probe. On linux, sample is defined in sysmon_linux.go via sysinfo(2).

package sysmon

func sample() Stats { return Stats{} }
