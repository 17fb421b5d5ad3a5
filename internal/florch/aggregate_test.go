package florch

import (
	"errors"
	"testing"

	"github.com/mysticalseeker24/SuperPage/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fitResult(clientId string, numSamples int, tensors ...model.ParamTensor) *model.FitResult {
	return &model.FitResult{
		ClientId:   clientId,
		Params:     model.Parameters(tensors),
		NumSamples: numSamples,
	}
}

func constantTensor(shape []int, value float64) model.ParamTensor {
	size := 1
	for _, dim := range shape {
		size *= dim
	}
	data := make([]float64, size)
	for i := range data {
		data[i] = value
	}
	return model.ParamTensor{Shape: shape, Data: data}
}

func TestAggregateWeightedAverage(t *testing.T) {
	// 30 samples at 1.0 and 70 samples at 2.0 average to 1.7
	updates := []*model.FitResult{
		fitResult("client-1", 30, constantTensor([]int{2, 3}, 1.0), constantTensor([]int{3}, 1.0)),
		fitResult("client-2", 70, constantTensor([]int{2, 3}, 2.0), constantTensor([]int{3}, 2.0)),
	}

	aggregated, err := Aggregate(updates)
	require.NoError(t, err)
	require.Len(t, aggregated, 2)

	for _, tensor := range aggregated {
		for _, value := range tensor.Data {
			assert.InDelta(t, 1.7, value, 1e-12)
		}
	}
	assert.Equal(t, []int{2, 3}, aggregated[0].Shape)
	assert.Equal(t, []int{3}, aggregated[1].Shape)
}

func TestAggregateEqualWeights(t *testing.T) {
	updates := []*model.FitResult{
		fitResult("client-1", 10, constantTensor([]int{2}, 4.0)),
		fitResult("client-2", 10, constantTensor([]int{2}, 8.0)),
	}

	aggregated, err := Aggregate(updates)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, aggregated[0].Data[0], 1e-12)
}

func TestAggregateEmptyUpdates(t *testing.T) {
	_, err := Aggregate(nil)
	require.Error(t, err)

	var configErr *model.ConfigError
	assert.True(t, errors.As(err, &configErr))
}

func TestAggregateShapeMismatch(t *testing.T) {
	updates := []*model.FitResult{
		fitResult("client-1", 10, constantTensor([]int{2, 3}, 1.0)),
		fitResult("client-2", 10, constantTensor([]int{3, 2}, 1.0)),
	}

	_, err := Aggregate(updates)
	require.Error(t, err)

	var configErr *model.ConfigError
	assert.True(t, errors.As(err, &configErr))
}

func TestAggregateTensorCountMismatch(t *testing.T) {
	updates := []*model.FitResult{
		fitResult("client-1", 10, constantTensor([]int{2}, 1.0), constantTensor([]int{2}, 1.0)),
		fitResult("client-2", 10, constantTensor([]int{2}, 1.0)),
	}

	_, err := Aggregate(updates)
	require.Error(t, err)

	var configErr *model.ConfigError
	assert.True(t, errors.As(err, &configErr))
}

func TestAggregateZeroTotalSamples(t *testing.T) {
	updates := []*model.FitResult{
		fitResult("client-1", 0, constantTensor([]int{2}, 1.0)),
		fitResult("client-2", 0, constantTensor([]int{2}, 2.0)),
	}

	_, err := Aggregate(updates)
	require.Error(t, err)

	var configErr *model.ConfigError
	assert.True(t, errors.As(err, &configErr))
}

func TestAggregateDoesNotMutateUpdates(t *testing.T) {
	updates := []*model.FitResult{
		fitResult("client-1", 1, constantTensor([]int{2}, 1.0)),
		fitResult("client-2", 3, constantTensor([]int{2}, 5.0)),
	}

	aggregated, err := Aggregate(updates)
	require.NoError(t, err)

	aggregated[0].Data[0] = -100
	assert.Equal(t, 1.0, updates[0].Params[0].Data[0])
	assert.Equal(t, 5.0, updates[1].Params[0].Data[0])
}
