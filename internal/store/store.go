// Package store persists and reloads trained model artifacts: the
// architecture config and parameter state in one file, the fitted feature
// scaler in a sibling file. The two are always written and read as a pair.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mysticalseeker24/SuperPage/internal/data"
	"github.com/mysticalseeker24/SuperPage/internal/model"
	"github.com/mysticalseeker24/SuperPage/internal/nn"
)

// ModelFormatV1 identifies the artifact encoding. Readers reject anything
// else.
const ModelFormatV1 = "superpage.model.v1"

type modelFile struct {
	Format     string           `json:"format"`
	ArtifactId string           `json:"artifact_id"`
	SavedAt    time.Time        `json:"saved_at"`
	Config     model.ModelConfig `json:"config"`
	Params     model.Parameters  `json:"params"`
}

type scalerFile struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Save writes the model's architecture config and parameter state to
// modelPath and the fitted scaler to scalerPath, creating parent directories
// as needed. Returns the metadata of the written artifact.
func Save(clf *nn.TabularClassifier, scaler *data.Scaler, modelPath string, scalerPath string) (*model.ArtifactInfo, error) {
	info := &model.ArtifactInfo{
		ArtifactId: uuid.New().String(),
		SavedAt:    time.Now().UTC(),
		ModelPath:  modelPath,
		ScalerPath: scalerPath,
		Config:     clf.Config(),
	}

	modelData, err := json.Marshal(modelFile{
		Format:     ModelFormatV1,
		ArtifactId: info.ArtifactId,
		SavedAt:    info.SavedAt,
		Config:     clf.Config(),
		Params:     clf.Parameters(),
	})
	if err != nil {
		return nil, err
	}

	scalerData, err := json.Marshal(scalerFile{Mean: scaler.Mean, Scale: scaler.Scale})
	if err != nil {
		return nil, err
	}

	if err := writeFile(modelPath, modelData); err != nil {
		return nil, err
	}
	if err := writeFile(scalerPath, scalerData); err != nil {
		return nil, err
	}

	return info, nil
}

// Load reconstructs a classifier from the persisted architecture config,
// installs the persisted parameter state, and deserializes the scaler. Any
// missing file, corrupt content, or state/architecture mismatch is a
// LoadError.
func Load(modelPath string, scalerPath string) (*nn.TabularClassifier, *data.Scaler, *model.ArtifactInfo, error) {
	modelData, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, nil, nil, model.NewLoadError("reading model file %s: %s", modelPath, err.Error())
	}

	var mf modelFile
	if err := json.Unmarshal(modelData, &mf); err != nil {
		return nil, nil, nil, model.NewLoadError("decoding model file %s: %s", modelPath, err.Error())
	}
	if mf.Format != ModelFormatV1 {
		return nil, nil, nil, model.NewLoadError("model file %s has unsupported format %q", modelPath, mf.Format)
	}

	clf, err := nn.New(mf.Config, 0)
	if err != nil {
		return nil, nil, nil, model.NewLoadError("model file %s has invalid config: %s", modelPath, err.Error())
	}
	if err := clf.SetParameters(mf.Params); err != nil {
		return nil, nil, nil, model.NewLoadError("model file %s parameter state does not match its architecture: %s",
			modelPath, err.Error())
	}

	scalerData, err := os.ReadFile(scalerPath)
	if err != nil {
		return nil, nil, nil, model.NewLoadError("reading scaler file %s: %s", scalerPath, err.Error())
	}

	var sf scalerFile
	if err := json.Unmarshal(scalerData, &sf); err != nil {
		return nil, nil, nil, model.NewLoadError("decoding scaler file %s: %s", scalerPath, err.Error())
	}
	if len(sf.Mean) != mf.Config.InputSize || len(sf.Scale) != mf.Config.InputSize {
		return nil, nil, nil, model.NewLoadError("scaler file %s covers %d features, model expects %d",
			scalerPath, len(sf.Mean), mf.Config.InputSize)
	}

	info := &model.ArtifactInfo{
		ArtifactId: mf.ArtifactId,
		SavedAt:    mf.SavedAt,
		ModelPath:  modelPath,
		ScalerPath: scalerPath,
		Config:     mf.Config,
	}

	return clf, &data.Scaler{Mean: sf.Mean, Scale: sf.Scale}, info, nil
}

func writeFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, content, 0644)
}
