// Package sysmon provides a snapshot of the host's physical memory, used by
// the adaptive tuning layer to bound allocation ceilings.
package sysmon

// Stats holds a single snapshot of system memory.
type Stats struct {
	// TotalBytes is the physical memory size, or 0 when unknown.
	TotalBytes uint64
	// FreeBytes is the currently free physical memory, or 0 when unknown.
	FreeBytes uint64
}

// Sample collects a memory snapshot. On platforms without a probe it
// returns zero values, which callers treat as "unknown".
func Sample() Stats {
	return sample()
}
