package server

import (
	"encoding/json"
	"io"

	"github.com/mysticalseeker24/SuperPage/internal/model"
)

func toJSON(i interface{}, w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(i)
}

func fromJSON(i interface{}, r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(i)
}

type PredictRequest struct {
	Features []float64 `json:"features"`
}

type PredictResponse struct {
	RequestId string                    `json:"requestId"`
	Score     float64                   `json:"score"`
	Metadata  *model.PredictionMetadata `json:"metadata"`
}

type BatchPredictRequest struct {
	Instances [][]float64 `json:"instances"`
}

type BatchPredictResponse struct {
	RequestId string    `json:"requestId"`
	Scores    []float64 `json:"scores"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	ModelReady bool   `json:"modelReady"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
