package model

import "github.com/mysticalseeker24/SuperPage/internal/common"

// ModelConfig describes the classifier architecture. It is persisted with the
// trained parameters so a serving process can reconstruct the exact network.
type ModelConfig struct {
	InputSize   int     `json:"input_size"`
	HiddenSizes []int   `json:"hidden_sizes"`
	DropoutRate float64 `json:"dropout_rate"`
}

func DefaultModelConfig() ModelConfig {
	hidden := make([]int, len(common.DefaultHiddenSizes))
	copy(hidden, common.DefaultHiddenSizes)

	return ModelConfig{
		InputSize:   common.DEFAULT_INPUT_SIZE,
		HiddenSizes: hidden,
		DropoutRate: common.DEFAULT_DROPOUT_RATE,
	}
}

func (config ModelConfig) Validate() error {
	if config.InputSize <= 0 {
		return NewConfigError("input size must be positive, got %d", config.InputSize)
	}
	if len(config.HiddenSizes) == 0 {
		return NewConfigError("at least one hidden layer is required")
	}
	for _, size := range config.HiddenSizes {
		if size <= 0 {
			return NewConfigError("hidden layer sizes must be positive, got %v", config.HiddenSizes)
		}
	}
	if config.DropoutRate < 0 || config.DropoutRate >= 1 {
		return NewConfigError("dropout rate must be in [0, 1), got %f", config.DropoutRate)
	}

	return nil
}

// TrainingConfig holds the parameters of one federated training run.
type TrainingConfig struct {
	Rounds       int32
	NumClients   int32
	BatchSize    int32
	LearningRate float64
	ValFraction  float64
	Seed         int64
	DataPath     string
	ModelPath    string
	ScalerPath   string
	ResultsDir   string
}

func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Rounds:       common.DEFAULT_ROUNDS,
		NumClients:   common.DEFAULT_NUM_CLIENTS,
		BatchSize:    common.DEFAULT_BATCH_SIZE,
		LearningRate: common.DEFAULT_LEARNING_RATE,
		ValFraction:  common.DEFAULT_VAL_FRACTION,
		Seed:         common.DEFAULT_SEED,
		ModelPath:    common.DEFAULT_MODEL_PATH,
		ScalerPath:   common.DEFAULT_SCALER_PATH,
	}
}

func (config TrainingConfig) Validate() error {
	if config.Rounds < 1 {
		return NewConfigError("rounds must be at least 1, got %d", config.Rounds)
	}
	if config.NumClients < 1 {
		return NewConfigError("number of clients must be at least 1, got %d", config.NumClients)
	}
	if config.BatchSize < 1 {
		return NewConfigError("batch size must be at least 1, got %d", config.BatchSize)
	}
	if config.LearningRate <= 0 {
		return NewConfigError("learning rate must be positive, got %f", config.LearningRate)
	}
	if config.ValFraction <= 0 || config.ValFraction >= 1 {
		return NewConfigError("validation fraction must be in (0, 1), got %f", config.ValFraction)
	}

	return nil
}
