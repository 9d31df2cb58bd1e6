package apint

import "testing"

// TestScratchPoolIndex verifies the size-class mapping at the boundaries.
func TestScratchPoolIndex(t *testing.T) {
	tests := []struct {
		hint, want int
	}{
		{1, 0},
		{64, 0},
		{65, 1},
		{256, 1},
		{257, 2},
		{1024, 2},
		{65536, 5},
		{65537, -1},
	}
	for _, tt := range tests {
		if got := scratchPoolIndex(tt.hint); got != tt.want {
			t.Errorf("scratchPoolIndex(%d) = %d, want %d", tt.hint, got, tt.want)
		}
	}
}

// TestScratchRoundTrip verifies reacquired scratches come back as canonical
// zeros regardless of what the previous user left in them.
func TestScratchRoundTrip(t *testing.T) {
	s, err := acquireScratch(100)
	if err != nil {
		t.Fatalf("acquireScratch: %v", err)
	}
	if err := s.SetInt64(-123456789); err != nil {
		t.Fatalf("SetInt64: %v", err)
	}
	releaseScratch(s)

	s2, err := acquireScratch(100)
	if err != nil {
		t.Fatalf("acquireScratch: %v", err)
	}
	defer releaseScratch(s2)
	if !s2.IsZero() || !s2.IsPositive() {
		t.Error("pooled scratch should be a canonical zero")
	}
	checkCanonical(t, s2, "pooled scratch")
	if len(s2.dig) < 100 {
		t.Errorf("pooled scratch capacity = %d, want >= 100", len(s2.dig))
	}
}

// TestScratchOversize verifies requests beyond the top size class bypass
// the pool but still work.
func TestScratchOversize(t *testing.T) {
	s, err := acquireScratch(scratchSizes[len(scratchSizes)-1] + 1)
	if err != nil {
		t.Fatalf("acquireScratch: %v", err)
	}
	if len(s.dig) <= scratchSizes[len(scratchSizes)-1] {
		t.Errorf("oversize scratch capacity = %d", len(s.dig))
	}
	releaseScratch(s)
}
