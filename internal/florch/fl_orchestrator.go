package florch

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mysticalseeker24/SuperPage/internal/common"
	"github.com/mysticalseeker24/SuperPage/internal/data"
	"github.com/mysticalseeker24/SuperPage/internal/events"
	"github.com/mysticalseeker24/SuperPage/internal/flclient"
	"github.com/mysticalseeker24/SuperPage/internal/florch/performance"
	"github.com/mysticalseeker24/SuperPage/internal/model"
	"github.com/mysticalseeker24/SuperPage/internal/nn"
	"github.com/mysticalseeker24/SuperPage/internal/store"
)

// FlOrchestrator drives the federated averaging protocol: it broadcasts
// global parameters to every simulated client, collects their updates,
// aggregates them weighted by sample count, and persists the final global
// model with the fitted scaler. Clients run sequentially within a round; a
// round is a synchronization barrier.
type FlOrchestrator struct {
	eventBus        *events.EventBus
	logger          hclog.Logger
	trainingConfig  model.TrainingConfig
	modelConfig     model.ModelConfig
	clients         []*flclient.Client
	globalModel     *nn.TabularClassifier
	scaler          *data.Scaler
	progress        *FlProgress
	resultsFileName string
}

func NewFlOrchestrator(trainingConfig model.TrainingConfig, modelConfig model.ModelConfig,
	eventBus *events.EventBus, logger hclog.Logger) (*FlOrchestrator, error) {
	if err := modelConfig.Validate(); err != nil {
		return nil, err
	}
	if err := trainingConfig.Validate(); err != nil {
		return nil, err
	}

	dataset, scaler, err := data.LoadAndStandardize(trainingConfig.DataPath)
	if err != nil {
		return nil, err
	}

	positives := 0
	for _, label := range dataset.Labels {
		if label == 1 {
			positives++
		}
	}
	logger.Info(fmt.Sprintf("Loaded dataset with %d samples, %d positive (%.1f%%)",
		dataset.NumSamples(), positives, 100*float64(positives)/float64(dataset.NumSamples())))

	shards, err := data.Partition(dataset, int(trainingConfig.NumClients), trainingConfig.Seed)
	if err != nil {
		return nil, err
	}

	clients := make([]*flclient.Client, 0, len(shards))
	for i, shard := range shards {
		clientSeed := trainingConfig.Seed + int64(i) + 1
		trainShard, valShard := data.TrainValSplit(shard, trainingConfig.ValFraction, clientSeed)

		client, err := flclient.New(fmt.Sprintf("client-%d", i+1), modelConfig, trainShard, valShard,
			trainingConfig.BatchSize, trainingConfig.LearningRate, clientSeed, logger)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)

		logger.Info(fmt.Sprintf("Created client %s with %d samples (%d train, %d val, %d positive)",
			client.Id(), shard.NumSamples(), trainShard.NumSamples(), valShard.NumSamples(), shard.NumPositive()))
	}

	globalModel, err := nn.New(modelConfig, trainingConfig.Seed)
	if err != nil {
		return nil, err
	}

	return &FlOrchestrator{
		eventBus:       eventBus,
		logger:         logger,
		trainingConfig: trainingConfig,
		modelConfig:    modelConfig,
		clients:        clients,
		globalModel:    globalModel,
		scaler:         scaler,
	}, nil
}

// Run executes the configured number of rounds and persists the final global
// model and scaler as an artifact. Errors abort the run without touching any
// previously saved artifact.
func (orch *FlOrchestrator) Run() error {
	orch.printConfiguration()

	orch.progress = &FlProgress{
		globalRound: 1,
		accuracies:  []float64{},
		losses:      []float64{},
		currentCost: 0.0,
	}
	orch.progress.costPerGlobalRound = RoundCost(orch.globalModel.NumParameters(), len(orch.clients))
	orch.logger.Info(fmt.Sprintf("Cost per global round: %.2f MB", orch.progress.costPerGlobalRound))

	if orch.trainingConfig.ResultsDir != "" {
		orch.resultsFileName = getResultsFileName(orch.trainingConfig.ResultsDir)
	}

	globalParams := orch.globalModel.Parameters()

	for round := int32(1); round <= orch.trainingConfig.Rounds; round++ {
		orch.logger.Info(fmt.Sprintf("--- Round %d/%d ---", round, orch.trainingConfig.Rounds))

		updates := make([]*model.FitResult, 0, len(orch.clients))
		for _, client := range orch.clients {
			update, err := client.Fit(globalParams.Clone())
			if err != nil {
				return fmt.Errorf("round %d: client %s fit: %w", round, client.Id(), err)
			}
			updates = append(updates, update)
		}

		aggregated, err := Aggregate(updates)
		if err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}

		if err := orch.globalModel.SetParameters(aggregated); err != nil {
			return fmt.Errorf("round %d: installing aggregated parameters: %w", round, err)
		}
		globalParams = aggregated

		loss, accuracy, err := orch.federatedEvaluate(globalParams)
		if err != nil {
			return fmt.Errorf("round %d: federated evaluation: %w", round, err)
		}

		orch.progress.accuracies = append(orch.progress.accuracies, accuracy)
		orch.progress.losses = append(orch.progress.losses, loss)
		orch.progress.currentCost += orch.progress.costPerGlobalRound
		orch.progress.globalRound = round

		orch.logger.Info(fmt.Sprintf("Round %d completed - loss: %.4f, accuracy: %.4f, total cost: %.2f MB",
			round, loss, accuracy, orch.progress.currentCost))

		orch.progress.accuracyHasConverged = hasConverged(orch.progress.accuracies, 0.01, 3, 2)
		if orch.progress.accuracyHasConverged {
			orch.logger.Info("Accuracy has converged!")
		}

		if orch.resultsFileName != "" {
			writeResultsToFile(orch.resultsFileName, round, accuracy, loss, orch.progress.currentCost)
		}
	}

	orch.logPredictedTrajectory()

	info, err := store.Save(orch.globalModel, orch.scaler, orch.trainingConfig.ModelPath, orch.trainingConfig.ScalerPath)
	if err != nil {
		return fmt.Errorf("saving artifact: %w", err)
	}

	orch.logger.Info(fmt.Sprintf("Model saved to %s", info.ModelPath))
	orch.logger.Info(fmt.Sprintf("Scaler saved to %s", info.ScalerPath))

	finalRound := len(orch.progress.accuracies) - 1
	orch.eventBus.Publish(events.Event{
		Type:      common.TRAINING_FINISHED_EVENT_TYPE,
		Timestamp: time.Now(),
		Data: events.TrainingFinishedEvent{
			Rounds:        orch.trainingConfig.Rounds,
			FinalAccuracy: orch.progress.accuracies[finalRound],
			FinalLoss:     orch.progress.losses[finalRound],
			ArtifactId:    info.ArtifactId,
		},
	})

	return nil
}

// federatedEvaluate runs the aggregated parameters through every client's
// validation split and averages the results weighted by validation sample
// count.
func (orch *FlOrchestrator) federatedEvaluate(globalParams model.Parameters) (float64, float64, error) {
	losses := make([]float64, 0, len(orch.clients))
	accuracies := make([]float64, 0, len(orch.clients))
	weights := make([]float64, 0, len(orch.clients))

	for _, client := range orch.clients {
		result, err := client.Evaluate(globalParams.Clone())
		if err != nil {
			return 0, 0, err
		}
		losses = append(losses, result.Loss)
		accuracies = append(accuracies, result.Val.Accuracy)
		weights = append(weights, float64(result.NumSamples))
	}

	return common.WeightedAverageFloat64(losses, weights),
		common.WeightedAverageFloat64(accuracies, weights), nil
}

func (orch *FlOrchestrator) logPredictedTrajectory() {
	if len(orch.progress.accuracies) < 3 {
		return
	}

	pp := performance.NewPerformancePrediction(orch.progress.accuracies, orch.progress.losses,
		performance.LogarithmicRegression_PredictionType, 0)

	nextRound := orch.progress.globalRound + 5
	orch.logger.Info(fmt.Sprintf("Predicted accuracy at round %d: %.4f (%s)",
		nextRound, pp.PredictAccuracy(nextRound), pp.PrintPrediction()))
}

func (orch *FlOrchestrator) printConfiguration() {
	configToPrint := ""

	configToPrint += fmt.Sprintln("Federated training configuration ::")
	configToPrint += fmt.Sprintf("\tRounds:%d\t| Clients:%d\n", orch.trainingConfig.Rounds, len(orch.clients))
	configToPrint += fmt.Sprintf("\tBatch size:%d\t| Learning rate:%g\n",
		orch.trainingConfig.BatchSize, orch.trainingConfig.LearningRate)
	configToPrint += fmt.Sprintln("Clients ::")
	for _, c := range orch.clients {
		configToPrint += fmt.Sprintf("\tId:%s\t| Train samples:%d\n", c.Id(), c.NumTrainSamples())
	}
	configToPrint += fmt.Sprintf("Model: %d -> %v -> 1 (dropout %.2f, %d parameters)\n",
		orch.modelConfig.InputSize, orch.modelConfig.HiddenSizes, orch.modelConfig.DropoutRate,
		orch.globalModel.NumParameters())

	orch.logger.Info(configToPrint)
}
