// Package predictor serves predictions from one loaded model artifact shared
// across concurrent requests. The runtime is constructed explicitly and
// passed to its callers by reference; there is no process-wide singleton.
package predictor

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mysticalseeker24/SuperPage/internal/common"
	"github.com/mysticalseeker24/SuperPage/internal/data"
	"github.com/mysticalseeker24/SuperPage/internal/model"
	"github.com/mysticalseeker24/SuperPage/internal/nn"
	"github.com/mysticalseeker24/SuperPage/internal/store"
	"gonum.org/v1/gonum/mat"
)

// Runtime holds the currently loaded model, scaler, and artifact metadata
// behind a reader-writer lock: predictions share read access, a reload takes
// exclusive access. A failed reload leaves the previous state untouched.
type Runtime struct {
	mu       sync.RWMutex
	clf      *nn.TabularClassifier
	scaler   *data.Scaler
	info     *model.ArtifactInfo
	loadedAt time.Time

	device string
	logger hclog.Logger
}

func NewRuntime(logger hclog.Logger) *Runtime {
	return &Runtime{
		device: common.DEVICE_CPU,
		logger: logger,
	}
}

// Load reads the artifact pair and atomically swaps it in. On any failure it
// logs, returns false, and keeps whatever was loaded before, so the service
// can keep answering (or keep reporting not-ready) instead of crashing.
func (r *Runtime) Load(modelPath string, scalerPath string) bool {
	clf, scaler, info, err := store.Load(modelPath, scalerPath)
	if err != nil {
		r.logger.Error(fmt.Sprintf("Failed to load model: %s", err.Error()))
		return false
	}

	clf.SetTraining(false)

	r.mu.Lock()
	r.clf = clf
	r.scaler = scaler
	r.info = info
	r.loadedAt = time.Now().UTC()
	r.mu.Unlock()

	r.logger.Info(fmt.Sprintf("Model loaded from: %s", modelPath))
	r.logger.Info(fmt.Sprintf("Model architecture: %d -> %v -> 1",
		info.Config.InputSize, info.Config.HiddenSizes))

	return true
}

// IsReady reports whether a model and scaler are currently loaded.
func (r *Runtime) IsReady() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clf != nil && r.scaler != nil
}

// Predict scales a single raw feature vector with the loaded scaler and runs
// the model in inference mode. Concurrent predictions share the read lock; a
// reload is serialized against them.
func (r *Runtime) Predict(features []float64) (float64, *model.PredictionMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.clf == nil || r.scaler == nil {
		return 0, nil, model.NewValidationError("model not loaded")
	}

	if err := r.validateVector(features); err != nil {
		return 0, nil, err
	}

	scaled, err := r.scaler.TransformVector(features)
	if err != nil {
		return 0, nil, err
	}

	probs := r.clf.Forward(mat.NewDense(1, len(scaled), scaled))

	raw := make([]float64, len(features))
	copy(raw, features)

	metadata := &model.PredictionMetadata{
		ModelVersion:   r.info.ArtifactId,
		LoadedAt:       r.loadedAt,
		Device:         r.device,
		RawFeatures:    raw,
		ScaledFeatures: scaled,
	}

	return probs[0], metadata, nil
}

// PredictBatch runs inference on a batch of raw feature vectors. The
// explanation layer uses this to probe the model as a black box.
func (r *Runtime) PredictBatch(instances [][]float64) ([]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.clf == nil || r.scaler == nil {
		return nil, model.NewValidationError("model not loaded")
	}
	if len(instances) == 0 {
		return nil, model.NewValidationError("empty batch")
	}

	inputSize := r.info.Config.InputSize
	x := mat.NewDense(len(instances), inputSize, nil)
	for i, features := range instances {
		if err := r.validateVector(features); err != nil {
			return nil, model.NewValidationError("instance %d: %s", i, err.Error())
		}
		scaled, err := r.scaler.TransformVector(features)
		if err != nil {
			return nil, err
		}
		x.SetRow(i, scaled)
	}

	return r.clf.Forward(x), nil
}

func (r *Runtime) validateVector(features []float64) error {
	inputSize := r.info.Config.InputSize
	if len(features) != inputSize {
		return model.NewValidationError("expected %d features, got %d", inputSize, len(features))
	}
	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.NewValidationError("feature %q is not finite", common.FeatureColumns[i])
		}
	}
	return nil
}

// Info describes the runtime's current state for the model-info surface.
type Info struct {
	Status        string              `json:"status"`
	Artifact      *model.ArtifactInfo `json:"artifact,omitempty"`
	LoadedAt      *time.Time          `json:"loaded_at,omitempty"`
	Device        string              `json:"device"`
	FeatureNames  []string            `json:"feature_names"`
	NumParameters int                 `json:"num_parameters,omitempty"`
}

func (r *Runtime) Info() Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info := Info{
		Status:       "not_loaded",
		Device:       r.device,
		FeatureNames: common.FeatureColumns,
	}
	if r.clf != nil && r.scaler != nil {
		loadedAt := r.loadedAt
		info.Status = "loaded"
		info.Artifact = r.info
		info.LoadedAt = &loadedAt
		info.NumParameters = r.clf.NumParameters()
	}

	return info
}
