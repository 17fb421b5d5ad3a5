package data

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// TrainValSplit splits a shard into train and validation parts, stratified by
// label so both classes appear in the validation split when the shard has
// them. Every shard keeps at least one training sample.
func TrainValSplit(shard *Shard, valFraction float64, seed int64) (*Shard, *Shard) {
	rng := rand.New(rand.NewSource(seed))

	var positives, negatives []int
	for i, label := range shard.Labels {
		if label == 1 {
			positives = append(positives, i)
		} else {
			negatives = append(negatives, i)
		}
	}

	trainIdx := make([]int, 0, shard.NumSamples())
	valIdx := make([]int, 0, shard.NumSamples())
	for _, class := range [][]int{negatives, positives} {
		rng.Shuffle(len(class), func(i, j int) {
			class[i], class[j] = class[j], class[i]
		})
		split := int(float64(len(class)) * valFraction)
		valIdx = append(valIdx, class[:split]...)
		trainIdx = append(trainIdx, class[split:]...)
	}

	if len(trainIdx) == 0 {
		trainIdx, valIdx = valIdx, trainIdx
	}
	if len(valIdx) == 0 {
		// tiny shard: evaluate on the training samples rather than nothing
		valIdx = trainIdx
	}

	return takeShardRows(shard, trainIdx), takeShardRows(shard, valIdx)
}

func takeShardRows(shard *Shard, indices []int) *Shard {
	_, cols := shard.Features.Dims()
	features := mat.NewDense(len(indices), cols, nil)
	labels := make([]float64, len(indices))

	for i, idx := range indices {
		features.SetRow(i, mat.Row(nil, idx, shard.Features))
		labels[i] = shard.Labels[idx]
	}

	return &Shard{Features: features, Labels: labels}
}
