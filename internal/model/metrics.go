package model

import "time"

// Metrics holds binary classification metrics from one evaluation pass.
type Metrics struct {
	Loss      float64 `json:"loss"`
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// FitResult is what a federated client returns from one fit call: its updated
// parameters, the number of training samples used (the aggregation weight),
// and training/validation metrics.
type FitResult struct {
	ClientId   string
	Params     Parameters
	NumSamples int
	TrainLoss  float64
	Val        Metrics
}

// EvalResult is what a federated client returns from an evaluate-only call.
type EvalResult struct {
	ClientId   string
	Loss       float64
	NumSamples int
	Val        Metrics
}

// ArtifactInfo describes a persisted model artifact.
type ArtifactInfo struct {
	ArtifactId string      `json:"artifact_id"`
	SavedAt    time.Time   `json:"saved_at"`
	ModelPath  string      `json:"model_path"`
	ScalerPath string      `json:"scaler_path"`
	Config     ModelConfig `json:"config"`
}

// PredictionMetadata travels with every prediction score. Created fresh per
// request, never persisted here.
type PredictionMetadata struct {
	ModelVersion   string    `json:"model_version"`
	LoadedAt       time.Time `json:"loaded_at"`
	Device         string    `json:"device"`
	RawFeatures    []float64 `json:"raw_features"`
	ScaledFeatures []float64 `json:"scaled_features"`
}
