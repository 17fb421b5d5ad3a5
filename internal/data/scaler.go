package data

import (
	"math"

	"github.com/mysticalseeker24/SuperPage/internal/model"
	"gonum.org/v1/gonum/mat"
)

// Scaler standardizes features to zero mean and unit variance, column by
// column. It is fit once on the full training dataset and travels with the
// trained model into the artifact; serving never refits it.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// FitScaler computes per-column mean and standard deviation. Constant
// columns get scale 1 so transforming them yields 0 instead of NaN.
func FitScaler(x *mat.Dense) *Scaler {
	rows, cols := x.Dims()
	scaler := &Scaler{
		Mean:  make([]float64, cols),
		Scale: make([]float64, cols),
	}

	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += x.At(i, j)
		}
		mean := sum / float64(rows)

		variance := 0.0
		for i := 0; i < rows; i++ {
			d := x.At(i, j) - mean
			variance += d * d
		}
		variance /= float64(rows)

		scaler.Mean[j] = mean
		if variance > 0 {
			scaler.Scale[j] = math.Sqrt(variance)
		} else {
			scaler.Scale[j] = 1
		}
	}

	return scaler
}

// Transform returns a standardized copy of the matrix.
func (s *Scaler) Transform(x *mat.Dense) (*mat.Dense, error) {
	rows, cols := x.Dims()
	if cols != len(s.Mean) {
		return nil, model.NewValidationError("scaler fitted on %d features, got %d", len(s.Mean), cols)
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, (x.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}

	return out, nil
}

// TransformVector standardizes a single feature vector.
func (s *Scaler) TransformVector(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) {
		return nil, model.NewValidationError("scaler fitted on %d features, got %d", len(s.Mean), len(features))
	}

	out := make([]float64, len(features))
	for j, v := range features {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}

	return out, nil
}

// NumFeatures returns the number of columns the scaler was fitted on.
func (s *Scaler) NumFeatures() int {
	return len(s.Mean)
}
