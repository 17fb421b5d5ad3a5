package nn

import "math"

// bceEpsilon clamps probabilities away from 0 and 1 so the log terms stay
// finite.
const bceEpsilon = 1e-7

// BCELoss computes mean binary cross-entropy over a batch of probabilities
// against 0/1 targets.
func BCELoss(probs []float64, targets []float64) float64 {
	if len(probs) == 0 {
		return 0
	}

	total := 0.0
	for i, p := range probs {
		p = clampProb(p)
		y := targets[i]
		total += -(y*math.Log(p) + (1-y)*math.Log(1-p))
	}

	return total / float64(len(probs))
}

func clampProb(p float64) float64 {
	if p < bceEpsilon {
		return bceEpsilon
	}
	if p > 1-bceEpsilon {
		return 1 - bceEpsilon
	}
	return p
}
