package data

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Batch is one mini-batch of training samples.
type Batch struct {
	X *mat.Dense
	Y []float64
}

// Batches shuffles the shard with the given rng and slices it into
// mini-batches. The last batch may be short. Called once per epoch so each
// epoch sees a fresh sample order.
func Batches(shard *Shard, batchSize int, rng *rand.Rand) []Batch {
	numSamples := shard.NumSamples()
	if batchSize > numSamples {
		batchSize = numSamples
	}

	indices := rng.Perm(numSamples)

	batches := make([]Batch, 0, (numSamples+batchSize-1)/batchSize)
	for start := 0; start < numSamples; start += batchSize {
		end := start + batchSize
		if end > numSamples {
			end = numSamples
		}
		batchShard := takeShardRows(shard, indices[start:end])
		batches = append(batches, Batch{X: batchShard.Features, Y: batchShard.Labels})
	}

	return batches
}
