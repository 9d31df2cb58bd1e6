package apint

// DigitArena is an Allocator that hands out limb buffers from one
// contiguous pre-allocated block. This removes per-buffer GC tracking for
// computations with many short-lived temporaries and allows O(1) bulk
// release via Reset.
//
// Allocation is bump-pointer: each Alloc advances an offset. When the block
// is exhausted the arena falls back to ordinary heap allocation, so it is
// always safe to use, merely slower once full.
type DigitArena struct {
	buf    []Digit
	offset int
}

// NewDigitArena creates an arena holding the given number of limbs.
func NewDigitArena(capacity int) *DigitArena {
	if capacity <= 0 {
		return &DigitArena{}
	}
	return &DigitArena{buf: make([]Digit, capacity)}
}

// Alloc returns a zeroed slice of n limbs from the arena, falling back to
// the heap when the block cannot satisfy the request.
func (a *DigitArena) Alloc(n int) []Digit {
	if n <= 0 {
		return nil
	}
	if a.buf == nil || a.offset+n > len(a.buf) {
		return make([]Digit, n)
	}
	s := a.buf[a.offset : a.offset+n : a.offset+n]
	a.offset += n
	// The region may hold limbs from before a Reset.
	for i := range s {
		s[i] = 0
	}
	return s
}

// Free is a no-op for arena-backed buffers; the block is reclaimed in bulk
// by Reset. Heap-fallback buffers are left to the garbage collector.
func (a *DigitArena) Free(buf []Digit) {}

// Reset rewinds the arena for reuse without releasing the backing block.
// Every Int still holding arena memory becomes invalid.
func (a *DigitArena) Reset() { a.offset = 0 }

// UsedDigits returns the number of limbs currently handed out.
func (a *DigitArena) UsedDigits() int { return a.offset }

// CapacityDigits returns the total capacity of the arena in limbs.
func (a *DigitArena) CapacityDigits() int { return len(a.buf) }
