package performance

import (
	"math"
)

const LogarithmicRegression_PredictionType = "log-reg"

// PerformancePrediction extrapolates the accuracy and loss trajectories of a
// federated run to future rounds.
type PerformancePrediction struct {
	regressionFunctionAccuracies Regression
	regressionFunctionLosses     Regression
}

func NewPerformancePrediction(accuracies []float64, losses []float64, predictionType string, offset int) *PerformancePrediction {
	pp := &PerformancePrediction{}

	accXs, accYs := prepareXAndY(accuracies, offset)
	lossXs, lossYs := prepareXAndY(losses, offset)

	if predictionType == LogarithmicRegression_PredictionType {
		pp.regressionFunctionAccuracies = NewLogarithmicRegression(accXs, accYs)
		pp.regressionFunctionLosses = NewLogarithmicRegression(lossXs, lossYs)
	}

	return pp
}

func (pp *PerformancePrediction) PredictAccuracy(round int32) float64 {
	return pp.regressionFunctionAccuracies.PredictY(float64(round))
}

func (pp *PerformancePrediction) PredictRoundForAccuracy(accuracy float64) int32 {
	return int32(math.Ceil(pp.regressionFunctionAccuracies.PredictX(accuracy)))
}

func (pp *PerformancePrediction) PredictLoss(round int32) float64 {
	return pp.regressionFunctionLosses.PredictY(float64(round))
}

func (pp *PerformancePrediction) PredictRoundForLoss(loss float64) int32 {
	return int32(math.Ceil(pp.regressionFunctionLosses.PredictX(loss)))
}

func (pp *PerformancePrediction) PrintPrediction() string {
	return pp.regressionFunctionAccuracies.PrintFunction()
}

func prepareXAndY(values []float64, offset int) ([]float64, []float64) {
	xs := make([]float64, len(values))
	ys := make([]float64, len(values))

	for i, value := range values {
		xs[i] = float64(i + 1 + offset)
		ys[i] = value
	}

	return xs, ys
}
