package florch

import (
	"github.com/mysticalseeker24/SuperPage/internal/model"
)

// Aggregate computes the FedAvg sample-weighted average of client updates:
// for every parameter position, sum_i (n_i / total_n) * params_i. Any
// structural mismatch between client updates is fatal, since averaging over
// mismatched shapes would silently corrupt the global model.
func Aggregate(updates []*model.FitResult) (model.Parameters, error) {
	if len(updates) == 0 {
		return nil, model.NewConfigError("no client updates to aggregate")
	}

	reference := updates[0].Params
	totalSamples := 0
	for _, update := range updates {
		if err := model.CheckShapes(reference, update.Params); err != nil {
			return nil, err
		}
		totalSamples += update.NumSamples
	}
	if totalSamples == 0 {
		return nil, model.NewConfigError("cannot aggregate: total sample count is zero")
	}

	aggregated := make(model.Parameters, len(reference))
	for t := range reference {
		shape := make([]int, len(reference[t].Shape))
		copy(shape, reference[t].Shape)
		sum := make([]float64, len(reference[t].Data))

		for _, update := range updates {
			weight := float64(update.NumSamples) / float64(totalSamples)
			for j, value := range update.Params[t].Data {
				sum[j] += weight * value
			}
		}

		aggregated[t] = model.ParamTensor{Shape: shape, Data: sum}
	}

	return aggregated, nil
}
