//go:build linux

package sysmon

import "golang.org/x/sys/unix"

// sample reads physical memory figures via sysinfo(2). Errors degrade to
// zero values rather than failing the caller.
func sample() Stats {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return Stats{}
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return Stats{
		TotalBytes: uint64(info.Totalram) * unit,
		FreeBytes:  uint64(info.Freeram) * unit,
	}
}
