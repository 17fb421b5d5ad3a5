package data

import (
	"math/rand"

	"github.com/mysticalseeker24/SuperPage/internal/model"
	"gonum.org/v1/gonum/mat"
)

// Shard is an owned, disjoint partition of the dataset assigned to one
// simulated federated participant.
type Shard struct {
	Features *mat.Dense
	Labels   []float64
}

func (s *Shard) NumSamples() int {
	return len(s.Labels)
}

func (s *Shard) NumPositive() int {
	count := 0
	for _, label := range s.Labels {
		if label == 1 {
			count++
		}
	}
	return count
}

// Partition shuffles the sample indices with the given seed and slices them
// into numClients contiguous blocks of size len/numClients, the final block
// absorbing the remainder. The shards are pairwise disjoint and collectively
// cover the dataset exactly once.
func Partition(dataset *Dataset, numClients int, seed int64) ([]*Shard, error) {
	numSamples := dataset.NumSamples()
	if numClients < 1 {
		return nil, model.NewConfigError("number of clients must be at least 1, got %d", numClients)
	}
	if numClients > numSamples {
		return nil, model.NewConfigError("cannot partition %d samples across %d clients", numSamples, numClients)
	}

	rng := rand.New(rand.NewSource(seed))
	indices := rng.Perm(numSamples)

	shardSize := numSamples / numClients
	shards := make([]*Shard, 0, numClients)
	for i := 0; i < numClients; i++ {
		start := i * shardSize
		end := start + shardSize
		if i == numClients-1 {
			end = numSamples
		}
		shards = append(shards, takeRows(dataset, indices[start:end]))
	}

	return shards, nil
}

func takeRows(dataset *Dataset, indices []int) *Shard {
	_, cols := dataset.Features.Dims()
	features := mat.NewDense(len(indices), cols, nil)
	labels := make([]float64, len(indices))

	for i, idx := range indices {
		features.SetRow(i, mat.Row(nil, idx, dataset.Features))
		labels[i] = dataset.Labels[idx]
	}

	return &Shard{Features: features, Labels: labels}
}
