// Package flclient implements the federated-learning protocol surface of one
// simulated participant: parameter get/set plus the fit/evaluate protocol.
package flclient

import (
	"fmt"
	"math/rand"

	"github.com/hashicorp/go-hclog"
	"github.com/mysticalseeker24/SuperPage/internal/data"
	"github.com/mysticalseeker24/SuperPage/internal/model"
	"github.com/mysticalseeker24/SuperPage/internal/nn"
	"github.com/mysticalseeker24/SuperPage/internal/trainer"
)

// Client owns one model instance and its private train/validation shards.
// Shards are never shared between clients; the only information a client
// exposes is its parameter updates, sample counts, and metrics.
type Client struct {
	id        string
	clf       *nn.TabularClassifier
	trainData *data.Shard
	valData   *data.Shard
	batchSize int
	optimizer *nn.Adam
	rng       *rand.Rand
	logger    hclog.Logger
}

func New(id string, modelConfig model.ModelConfig, trainData *data.Shard, valData *data.Shard,
	batchSize int32, learningRate float64, seed int64, logger hclog.Logger) (*Client, error) {
	clf, err := nn.New(modelConfig, seed)
	if err != nil {
		return nil, err
	}

	return &Client{
		id:        id,
		clf:       clf,
		trainData: trainData,
		valData:   valData,
		batchSize: int(batchSize),
		optimizer: nn.NewAdam(learningRate),
		rng:       rand.New(rand.NewSource(seed)),
		logger:    logger,
	}, nil
}

func (c *Client) Id() string {
	return c.id
}

func (c *Client) NumTrainSamples() int {
	return c.trainData.NumSamples()
}

// GetParameters returns a snapshot of the client's current model weights,
// detached from the model.
func (c *Client) GetParameters() model.Parameters {
	return c.clf.Parameters()
}

// SetParameters overwrites the client's model weights in place. Fails if the
// shapes mismatch the model's own parameter shapes.
func (c *Client) SetParameters(params model.Parameters) error {
	return c.clf.SetParameters(params)
}

// Fit adopts the broadcast global parameters, trains exactly one epoch on the
// client's private shard, evaluates on its validation split, and returns the
// updated parameters with the training sample count used for aggregation
// weighting.
func (c *Client) Fit(globalParams model.Parameters) (*model.FitResult, error) {
	if err := c.clf.SetParameters(globalParams); err != nil {
		return nil, err
	}

	trainLoss := trainer.TrainEpoch(c.clf, c.trainData, c.batchSize, c.optimizer, c.rng)
	valMetrics := trainer.Evaluate(c.clf, c.valData)

	c.logger.Info(fmt.Sprintf("Client %s training - Loss: %.4f, Val Accuracy: %.4f",
		c.id, trainLoss, valMetrics.Accuracy))

	return &model.FitResult{
		ClientId:   c.id,
		Params:     c.clf.Parameters(),
		NumSamples: c.trainData.NumSamples(),
		TrainLoss:  trainLoss,
		Val:        valMetrics,
	}, nil
}

// Evaluate adopts the given parameters without training and evaluates them on
// the client's validation split.
func (c *Client) Evaluate(globalParams model.Parameters) (*model.EvalResult, error) {
	if err := c.clf.SetParameters(globalParams); err != nil {
		return nil, err
	}

	valMetrics := trainer.Evaluate(c.clf, c.valData)

	return &model.EvalResult{
		ClientId:   c.id,
		Loss:       valMetrics.Loss,
		NumSamples: c.valData.NumSamples(),
		Val:        valMetrics,
	}, nil
}
