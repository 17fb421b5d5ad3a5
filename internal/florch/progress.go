package florch

import "math"

// FlProgress tracks per-round federated metrics across a training run.
type FlProgress struct {
	globalRound          int32
	accuracies           []float64
	losses               []float64
	accuracyHasConverged bool
	currentCost          float64
	costPerGlobalRound   float64
}

func movingAverage(values []float64, windowSize int) []float64 {
	if len(values) < windowSize {
		return nil // Not enough data for the window size
	}
	averages := make([]float64, len(values)-windowSize+1)
	for i := 0; i <= len(values)-windowSize; i++ {
		sum := 0.0
		for j := i; j < i+windowSize; j++ {
			sum += values[j]
		}
		averages[i] = sum / float64(windowSize)
	}
	return averages
}

// hasConverged reports whether the moving-averaged accuracy has plateaued:
// every improvement over the last `patience` windows stays below the
// threshold. Convergence is informational only; the round loop always runs
// its configured length.
func hasConverged(accuracies []float64, threshold float64, patience int, windowSize int) bool {
	averages := movingAverage(accuracies, windowSize)
	if len(averages) < patience+1 {
		return false // Not enough data to determine convergence
	}

	for i := len(averages) - patience; i < len(averages); i++ {
		improvement := averages[i] - averages[i-1]
		if math.Abs(improvement) > threshold {
			return false
		}
	}
	return true
}
