package data

import (
	"math"
	"strconv"

	"github.com/mysticalseeker24/SuperPage/internal/common"
	"github.com/mysticalseeker24/SuperPage/internal/model"
	"gonum.org/v1/gonum/mat"
)

// Dataset is a standardized feature matrix with its binary labels.
type Dataset struct {
	Features *mat.Dense
	Labels   []float64
}

func (d *Dataset) NumSamples() int {
	rows, _ := d.Features.Dims()
	return rows
}

// LoadAndStandardize reads a labeled CSV dataset, selects the canonical
// feature columns plus the label column, fits a standard scaler on the full
// dataset, and returns the standardized dataset together with the fitted
// scaler.
func LoadAndStandardize(path string) (*Dataset, *Scaler, error) {
	records, err := common.ReadCsvFile(path)
	if err != nil {
		return nil, nil, model.NewDataError("reading dataset %s: %s", path, err.Error())
	}
	if len(records) < 2 {
		return nil, nil, model.NewDataError("dataset %s has no sample rows", path)
	}

	header := records[0]
	columnIndex := make(map[string]int, len(header))
	for i, name := range header {
		columnIndex[name] = i
	}

	featureIdx := make([]int, len(common.FeatureColumns))
	for i, name := range common.FeatureColumns {
		idx, ok := columnIndex[name]
		if !ok {
			return nil, nil, model.NewDataError("dataset %s is missing feature column %q", path, name)
		}
		featureIdx[i] = idx
	}

	labelIdx, ok := columnIndex[common.LabelColumn]
	if !ok {
		return nil, nil, model.NewDataError("dataset %s is missing label column %q", path, common.LabelColumn)
	}

	numSamples := len(records) - 1
	numFeatures := len(featureIdx)
	raw := mat.NewDense(numSamples, numFeatures, nil)
	labels := make([]float64, numSamples)

	for i, record := range records[1:] {
		for j, idx := range featureIdx {
			if idx >= len(record) {
				return nil, nil, model.NewDataError("dataset %s row %d is short", path, i+1)
			}
			value, err := strconv.ParseFloat(record[idx], 64)
			if err != nil {
				return nil, nil, model.NewDataError("dataset %s row %d column %q: %s",
					path, i+1, common.FeatureColumns[j], err.Error())
			}
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return nil, nil, model.NewDataError("dataset %s row %d column %q is not finite",
					path, i+1, common.FeatureColumns[j])
			}
			raw.Set(i, j, value)
		}

		label, err := strconv.ParseFloat(record[labelIdx], 64)
		if err != nil {
			return nil, nil, model.NewDataError("dataset %s row %d label: %s", path, i+1, err.Error())
		}
		if label != 0 && label != 1 {
			return nil, nil, model.NewDataError("dataset %s row %d has non-binary label %v", path, i+1, label)
		}
		labels[i] = label
	}

	scaler := FitScaler(raw)
	features, err := scaler.Transform(raw)
	if err != nil {
		return nil, nil, err
	}

	return &Dataset{Features: features, Labels: labels}, scaler, nil
}
