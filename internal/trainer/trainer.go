// Package trainer runs single-epoch supervised training passes and full-pass
// evaluation for one model on one data shard.
package trainer

import (
	"math/rand"

	"github.com/mysticalseeker24/SuperPage/internal/data"
	"github.com/mysticalseeker24/SuperPage/internal/model"
	"github.com/mysticalseeker24/SuperPage/internal/nn"
)

// TrainEpoch iterates every batch once, backpropagating BCE loss and stepping
// the optimizer. The model is put in training mode (dropout active) for the
// duration and its parameters are mutated in place. Returns the loss averaged
// over batches.
func TrainEpoch(clf *nn.TabularClassifier, shard *data.Shard, batchSize int, optimizer *nn.Adam, rng *rand.Rand) float64 {
	clf.SetTraining(true)

	batches := data.Batches(shard, batchSize, rng)
	totalLoss := 0.0
	for _, batch := range batches {
		totalLoss += clf.TrainBatch(batch.X, batch.Y, optimizer)
	}

	return totalLoss / float64(len(batches))
}

// Evaluate runs the model over the full shard in inference mode (dropout
// disabled), thresholds predictions at 0.5, and computes binary
// classification metrics. Metrics cover the whole shard at once, so the
// result is independent of any batch size. Division by zero in a metric is
// reported as 0, not an error.
func Evaluate(clf *nn.TabularClassifier, shard *data.Shard) model.Metrics {
	clf.SetTraining(false)

	probs := clf.Forward(shard.Features)
	loss := nn.BCELoss(probs, shard.Labels)

	var truePos, falsePos, falseNeg, correct int
	for i, p := range probs {
		predicted := 0.0
		if p > 0.5 {
			predicted = 1.0
		}

		actual := shard.Labels[i]
		if predicted == actual {
			correct++
		}
		if predicted == 1 && actual == 1 {
			truePos++
		}
		if predicted == 1 && actual == 0 {
			falsePos++
		}
		if predicted == 0 && actual == 1 {
			falseNeg++
		}
	}

	metrics := model.Metrics{Loss: loss}
	if len(probs) > 0 {
		metrics.Accuracy = float64(correct) / float64(len(probs))
	}
	if truePos+falsePos > 0 {
		metrics.Precision = float64(truePos) / float64(truePos+falsePos)
	}
	if truePos+falseNeg > 0 {
		metrics.Recall = float64(truePos) / float64(truePos+falseNeg)
	}
	if metrics.Precision+metrics.Recall > 0 {
		metrics.F1 = 2 * metrics.Precision * metrics.Recall / (metrics.Precision + metrics.Recall)
	}

	return metrics
}
