// This file provides pooling of scratch Ints to reduce GC pressure inside
// the kernels that cannot work in place.

package apint

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Scratch Int Pools
// ─────────────────────────────────────────────────────────────────────────────

// scratchSizes defines the limb-capacity size classes for pooled scratch
// Ints. Powers of four keep the class count small while bounding waste at
// 4x; requests above the top class bypass the pool.
var scratchSizes = [...]int{64, 256, 1024, 4096, 16384, 65536}

// scratchPools holds one sync.Pool per size class. Pooled Ints are always
// canonical zeros with a zeroed buffer of exactly the class capacity.
var scratchPools = [len(scratchSizes)]sync.Pool{}

// scratchPoolIndex returns the pool index for a capacity hint, or -1 when
// the hint is too large for pooling.
func scratchPoolIndex(hint int) int {
	if hint <= scratchSizes[0] {
		return 0
	}
	if hint > scratchSizes[len(scratchSizes)-1] {
		return -1
	}
	// Classes are 4^(i+3); two bits of length per class.
	idx := (bits.Len(uint(hint-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireScratch returns a zero-valued scratch Int whose buffer holds at
// least hint limbs. The caller must hand it back with releaseScratch.
func acquireScratch(hint int) (*Int, error) {
	idx := scratchPoolIndex(hint)
	if idx < 0 {
		t := new(Int)
		if err := t.grow(hint); err != nil {
			return nil, err
		}
		return t, nil
	}
	if v := scratchPools[idx].Get(); v != nil {
		return v.(*Int), nil
	}
	t := new(Int)
	if err := t.grow(scratchSizes[idx]); err != nil {
		return nil, err
	}
	return t, nil
}

// releaseScratch zeroes a scratch Int and returns it to its size-class
// pool. Oversized scratches are left to the garbage collector.
func releaseScratch(ts ...*Int) {
	for _, t := range ts {
		if t == nil {
			continue
		}
		t.used = 0
		t.sign = NonNegative
		t.flags = 0
		t.zeroUnused(-1)
		// A Swap may have traded buffers with a caller's Int. A buffer
		// owned by a caller's allocator (an arena, say) must not enter
		// the shared pool: the caller can reclaim that memory at any
		// time.
		if t.alloc != nil {
			t.alloc = nil
			t.dig = nil
			continue
		}
		idx := scratchPoolIndex(len(t.dig))
		if idx < 0 || len(t.dig) != scratchSizes[idx] {
			continue
		}
		scratchPools[idx].Put(t)
	}
}
