package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamTensorNumElements(t *testing.T) {
	assert.Equal(t, 6, ParamTensor{Shape: []int{2, 3}}.NumElements())
	assert.Equal(t, 4, ParamTensor{Shape: []int{4}}.NumElements())
	assert.Equal(t, 0, ParamTensor{}.NumElements())
}

func TestParamTensorSameShape(t *testing.T) {
	a := ParamTensor{Shape: []int{2, 3}}
	assert.True(t, a.SameShape(ParamTensor{Shape: []int{2, 3}}))
	assert.False(t, a.SameShape(ParamTensor{Shape: []int{3, 2}}))
	assert.False(t, a.SameShape(ParamTensor{Shape: []int{2, 3, 1}}))
}

func TestParametersCloneIsDeep(t *testing.T) {
	original := Parameters{
		{Shape: []int{2}, Data: []float64{1, 2}},
		{Shape: []int{1}, Data: []float64{3}},
	}

	clone := original.Clone()
	clone[0].Data[0] = -100
	clone[0].Shape[0] = 99

	assert.Equal(t, 1.0, original[0].Data[0])
	assert.Equal(t, 2, original[0].Shape[0])
}

func TestCheckShapes(t *testing.T) {
	reference := Parameters{
		{Shape: []int{2, 3}, Data: make([]float64, 6)},
		{Shape: []int{3}, Data: make([]float64, 3)},
	}

	require.NoError(t, CheckShapes(reference, reference.Clone()))

	shapeMismatch := reference.Clone()
	shapeMismatch[1].Shape = []int{4}
	err := CheckShapes(reference, shapeMismatch)
	require.Error(t, err)

	var configErr *ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Contains(t, err.Error(), "tensor 1")

	countMismatch := reference.Clone()[:1]
	err = CheckShapes(reference, countMismatch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count mismatch")
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "config error: bad value 3", NewConfigError("bad value %d", 3).Error())
	assert.Equal(t, "data error: missing column", NewDataError("missing column").Error())
	assert.Equal(t, "load error: corrupt file", NewLoadError("corrupt file").Error())
	assert.Equal(t, "validation error: too short", NewValidationError("too short").Error())
}
