// This file generates the candidate grids the calibration measurements
// walk.

package calibration

// candidateKaratsubaCutoffs returns the limb counts to probe for the
// multiplication crossover, smallest first. The quick grid keeps startup
// calibration under a second on typical hosts.
func candidateKaratsubaCutoffs(quick bool) []int {
	if quick {
		return []int{48, 80, 128, 256}
	}
	return []int{32, 48, 64, 80, 96, 128, 192, 256, 384}
}

// candidateSqrCutoffs returns the limb counts to probe for the squaring
// crossover. Squaring crosses over later than multiplication, so the grid
// starts higher.
func candidateSqrCutoffs(quick bool) []int {
	if quick {
		return []int{64, 120, 192, 320}
	}
	return []int{48, 64, 96, 120, 160, 224, 320, 448}
}
