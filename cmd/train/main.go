package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mysticalseeker24/SuperPage/internal/common"
	"github.com/mysticalseeker24/SuperPage/internal/events"
	"github.com/mysticalseeker24/SuperPage/internal/florch"
	"github.com/mysticalseeker24/SuperPage/internal/model"
)

func main() {
	trainingConfig := model.DefaultTrainingConfig()

	rounds := flag.Int("rounds", common.DEFAULT_ROUNDS, "number of federated learning rounds")
	learningRate := flag.Float64("lr", common.DEFAULT_LEARNING_RATE, "learning rate")
	batchSize := flag.Int("batch-size", common.DEFAULT_BATCH_SIZE, "batch size for training")
	numClients := flag.Int("clients", common.DEFAULT_NUM_CLIENTS, "number of federated clients to simulate")
	dataPath := flag.String("data-path", "Dataset/dummy_dataset_aligned.csv", "path to training dataset")
	modelPath := flag.String("model-path", common.DEFAULT_MODEL_PATH, "path for the saved model")
	scalerPath := flag.String("scaler-path", common.DEFAULT_SCALER_PATH, "path for the saved scaler")
	resultsDir := flag.String("results-dir", "", "directory for per-round results CSV (empty disables)")
	seed := flag.Int64("seed", common.DEFAULT_SEED, "random seed for partitioning and initialization")
	flag.Parse()

	trainingConfig.Rounds = int32(*rounds)
	trainingConfig.LearningRate = *learningRate
	trainingConfig.BatchSize = int32(*batchSize)
	trainingConfig.NumClients = int32(*numClients)
	trainingConfig.DataPath = *dataPath
	trainingConfig.ModelPath = *modelPath
	trainingConfig.ScalerPath = *scalerPath
	trainingConfig.ResultsDir = *resultsDir
	trainingConfig.Seed = *seed

	_ = os.Mkdir("log", 0777)
	logFile, err := os.OpenFile("log/training.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0777)
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			panic(err)
		}
	}()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "fl-train",
		Level:  hclog.LevelFromString("DEBUG"),
		Output: io.MultiWriter(os.Stdout, logFile),
	})

	logger.Info("SuperPage Federated Learning Training")
	logger.Info(fmt.Sprintf("Rounds: %d | Learning rate: %g | Batch size: %d | Clients: %d",
		trainingConfig.Rounds, trainingConfig.LearningRate, trainingConfig.BatchSize, trainingConfig.NumClients))
	logger.Info(fmt.Sprintf("Data path: %s", trainingConfig.DataPath))

	eventBus := events.NewEventBus()

	trainingFinishedChan := make(chan events.Event, 1)
	eventBus.Subscribe(common.TRAINING_FINISHED_EVENT_TYPE, trainingFinishedChan)

	flOrchestrator, err := florch.NewFlOrchestrator(trainingConfig, model.DefaultModelConfig(), eventBus, logger)
	if err != nil {
		logger.Error("Error creating orchestrator", "error", err)
		os.Exit(1)
	}

	if err := flOrchestrator.Run(); err != nil {
		logger.Error("Training failed", "error", err)
		os.Exit(1)
	}

	select {
	case event := <-trainingFinishedChan:
		if finished, ok := event.Data.(events.TrainingFinishedEvent); ok {
			logger.Info(fmt.Sprintf("Federated learning completed! Final accuracy: %.4f, artifact: %s",
				finished.FinalAccuracy, finished.ArtifactId))
		}
	default:
	}
}
