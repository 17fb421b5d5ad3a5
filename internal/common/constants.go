package common

// Canonical feature columns, in model input order. Trained weights are
// positional, so this order is part of the artifact contract.
var FeatureColumns = []string{
	"TeamExperience",
	"PitchQuality",
	"TokenomicsScore",
	"Traction",
	"CommunityEngagement",
	"PreviousFunding",
	"RaiseSuccessProb",
}

const LabelColumn = "SuccessLabel"

// Architecture defaults
const DEFAULT_INPUT_SIZE = 7
const DEFAULT_DROPOUT_RATE = 0.2

var DefaultHiddenSizes = []int{64, 32, 16}

// Training defaults
const DEFAULT_ROUNDS = 3
const DEFAULT_NUM_CLIENTS = 3
const DEFAULT_BATCH_SIZE = 32
const DEFAULT_LEARNING_RATE = 0.001
const DEFAULT_VAL_FRACTION = 0.2
const DEFAULT_SEED = 42

// Artifact defaults
const DEFAULT_MODEL_PATH = "models/latest/fundraising_model.json"
const DEFAULT_SCALER_PATH = "models/latest/scaler.json"

// Serving
const PREDICTION_SERVER_PORT = 8080
const DEVICE_CPU = "cpu"

// Events
const TRAINING_FINISHED_EVENT_TYPE = "TrainingFinished"
const ARTIFACT_RELOADED_EVENT_TYPE = "ArtifactReloaded"
