package data

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mysticalseeker24/SuperPage/internal/common"
	"github.com/mysticalseeker24/SuperPage/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// writeTestDataset writes a CSV with the canonical feature columns plus the
// label column. Feature 0 holds the row index so tests can track samples
// across shuffles; labels alternate between the classes.
func writeTestDataset(t *testing.T, numSamples int) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(common.FeatureColumns, ","))
	b.WriteString("," + common.LabelColumn + "\n")
	for i := 0; i < numSamples; i++ {
		for j := 0; j < len(common.FeatureColumns); j++ {
			if j == 0 {
				fmt.Fprintf(&b, "%d,", i)
			} else {
				fmt.Fprintf(&b, "%.4f,", float64(i*j)*0.137)
			}
		}
		fmt.Fprintf(&b, "%d\n", i%2)
	}

	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func TestLoadAndStandardize(t *testing.T) {
	path := writeTestDataset(t, 10)

	dataset, scaler, err := LoadAndStandardize(path)
	require.NoError(t, err)

	rows, cols := dataset.Features.Dims()
	assert.Equal(t, 10, rows)
	assert.Equal(t, len(common.FeatureColumns), cols)
	assert.Len(t, dataset.Labels, 10)
	assert.Equal(t, len(common.FeatureColumns), scaler.NumFeatures())

	// each standardized column has zero mean and unit variance
	for j := 0; j < cols; j++ {
		sum := 0.0
		sumSq := 0.0
		for i := 0; i < rows; i++ {
			v := dataset.Features.At(i, j)
			sum += v
			sumSq += v * v
		}
		assert.InDelta(t, 0, sum/float64(rows), 1e-9)
		assert.InDelta(t, 1, sumSq/float64(rows), 1e-9)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := LoadAndStandardize(filepath.Join(t.TempDir(), "does_not_exist.csv"))
	require.Error(t, err)

	var dataErr *model.DataError
	assert.True(t, errors.As(err, &dataErr))
}

func TestLoadMissingFeatureColumn(t *testing.T) {
	var b strings.Builder
	b.WriteString(strings.Join(common.FeatureColumns[1:], ","))
	b.WriteString("," + common.LabelColumn + "\n")
	b.WriteString(strings.Repeat("1,", len(common.FeatureColumns)-1) + "0\n")

	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))

	_, _, err := LoadAndStandardize(path)
	require.Error(t, err)

	var dataErr *model.DataError
	require.True(t, errors.As(err, &dataErr))
	assert.Contains(t, err.Error(), common.FeatureColumns[0])
}

func TestLoadNonBinaryLabel(t *testing.T) {
	var b strings.Builder
	b.WriteString(strings.Join(common.FeatureColumns, ","))
	b.WriteString("," + common.LabelColumn + "\n")
	b.WriteString(strings.Repeat("1,", len(common.FeatureColumns)) + "2\n")
	b.WriteString(strings.Repeat("2,", len(common.FeatureColumns)) + "0\n")

	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))

	_, _, err := LoadAndStandardize(path)
	require.Error(t, err)

	var dataErr *model.DataError
	assert.True(t, errors.As(err, &dataErr))
}

func TestPartitionDisjointAndExhaustive(t *testing.T) {
	path := writeTestDataset(t, 10)
	dataset, _, err := LoadAndStandardize(path)
	require.NoError(t, err)

	shards, err := Partition(dataset, 3, 42)
	require.NoError(t, err)
	require.Len(t, shards, 3)

	// 10 samples across 3 clients: two shards of 3, the last absorbs the rest
	assert.Equal(t, 3, shards[0].NumSamples())
	assert.Equal(t, 3, shards[1].NumSamples())
	assert.Equal(t, 4, shards[2].NumSamples())

	// feature 0 is unique per sample, so the standardized values must cover
	// every sample exactly once across the shards
	seen := make(map[float64]int)
	for _, shard := range shards {
		for i := 0; i < shard.NumSamples(); i++ {
			seen[shard.Features.At(i, 0)]++
		}
	}
	assert.Len(t, seen, 10)
	for _, count := range seen {
		assert.Equal(t, 1, count)
	}
}

func TestPartitionDeterministicPerSeed(t *testing.T) {
	path := writeTestDataset(t, 12)
	dataset, _, err := LoadAndStandardize(path)
	require.NoError(t, err)

	first, err := Partition(dataset, 3, 7)
	require.NoError(t, err)
	second, err := Partition(dataset, 3, 7)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].Labels, second[i].Labels)
		assert.True(t, mat.EqualApprox(first[i].Features, second[i].Features, 1e-12))
	}
}

func TestPartitionInvalidClientCount(t *testing.T) {
	path := writeTestDataset(t, 5)
	dataset, _, err := LoadAndStandardize(path)
	require.NoError(t, err)

	for _, numClients := range []int{0, -1, 6} {
		_, err := Partition(dataset, numClients, 42)
		require.Error(t, err)

		var configErr *model.ConfigError
		assert.True(t, errors.As(err, &configErr))
	}
}

func TestTrainValSplitStratified(t *testing.T) {
	features := mat.NewDense(20, 2, nil)
	labels := make([]float64, 20)
	for i := 0; i < 20; i++ {
		features.Set(i, 0, float64(i))
		if i < 10 {
			labels[i] = 1
		}
	}
	shard := &Shard{Features: features, Labels: labels}

	train, val := TrainValSplit(shard, 0.2, 42)

	assert.Equal(t, 16, train.NumSamples())
	assert.Equal(t, 4, val.NumSamples())
	assert.Equal(t, 8, train.NumPositive())
	assert.Equal(t, 2, val.NumPositive())
}

func TestTrainValSplitTinyShard(t *testing.T) {
	shard := &Shard{
		Features: mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
		Labels:   []float64{0, 1},
	}

	train, val := TrainValSplit(shard, 0.2, 42)

	// too small for a real split: train keeps everything and validation
	// falls back to the training samples
	assert.Equal(t, 2, train.NumSamples())
	assert.Equal(t, 2, val.NumSamples())
}

func TestBatchesCoverShard(t *testing.T) {
	features := mat.NewDense(10, 2, nil)
	labels := make([]float64, 10)
	for i := 0; i < 10; i++ {
		features.Set(i, 0, float64(i))
	}
	shard := &Shard{Features: features, Labels: labels}

	batches := Batches(shard, 4, rand.New(rand.NewSource(1)))
	require.Len(t, batches, 3)

	sizes := []int{}
	seen := make(map[float64]bool)
	for _, batch := range batches {
		rows, _ := batch.X.Dims()
		sizes = append(sizes, rows)
		for i := 0; i < rows; i++ {
			seen[batch.X.At(i, 0)] = true
		}
	}
	assert.Equal(t, []int{4, 4, 2}, sizes)
	assert.Len(t, seen, 10)
}

func TestFitScalerConstantColumn(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		5, 1,
		5, 2,
		5, 3,
		5, 4,
	})

	scaler := FitScaler(x)
	assert.Equal(t, 1.0, scaler.Scale[0])

	out, err := scaler.Transform(x)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.Equal(t, 0.0, out.At(i, 0))
	}
}

func TestTransformVectorLengthMismatch(t *testing.T) {
	scaler := &Scaler{Mean: []float64{0, 0}, Scale: []float64{1, 1}}

	_, err := scaler.TransformVector([]float64{1, 2, 3})
	require.Error(t, err)

	var validationErr *model.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}
