package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCsvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n3,4\n"), 0644))

	records, err := ReadCsvFile(path)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"a", "b"}, records[0])
	assert.Equal(t, []string{"3", "4"}, records[2])
}

func TestReadCsvFileMissing(t *testing.T) {
	_, err := ReadCsvFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestCalculateAverageFloat64(t *testing.T) {
	assert.Equal(t, 2.0, CalculateAverageFloat64([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, CalculateAverageFloat64(nil))
}

func TestWeightedAverageFloat64(t *testing.T) {
	// 30 samples at 1.0 and 70 samples at 2.0 average to 1.7
	assert.InDelta(t, 1.7, WeightedAverageFloat64([]float64{1, 2}, []float64{30, 70}), 1e-12)

	assert.Equal(t, 0.0, WeightedAverageFloat64(nil, nil))
	assert.Equal(t, 0.0, WeightedAverageFloat64([]float64{1}, []float64{1, 2}))
	assert.Equal(t, 0.0, WeightedAverageFloat64([]float64{1, 2}, []float64{0, 0}))
}
