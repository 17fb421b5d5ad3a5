package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/mysticalseeker24/SuperPage/internal/model"
	"github.com/mysticalseeker24/SuperPage/internal/predictor"
)

type Handler struct {
	logger     hclog.Logger
	runtime    *predictor.Runtime
	modelPath  string
	scalerPath string
}

func NewHandler(logger hclog.Logger, runtime *predictor.Runtime, modelPath string, scalerPath string) *Handler {
	return &Handler{
		logger:     logger,
		runtime:    runtime,
		modelPath:  modelPath,
		scalerPath: scalerPath,
	}
}

func (handler *Handler) Predict(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")

	requestId := uuid.New().String()

	request := &PredictRequest{}
	if err := fromJSON(request, r.Body); err != nil {
		rw.WriteHeader(http.StatusBadRequest)
		toJSON(ErrorResponse{Error: "invalid request body"}, rw)
		return
	}

	if !handler.runtime.IsReady() {
		rw.WriteHeader(http.StatusServiceUnavailable)
		toJSON(ErrorResponse{Error: "model not loaded"}, rw)
		return
	}

	score, metadata, err := handler.runtime.Predict(request.Features)
	if err != nil {
		handler.writePredictionError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
	toJSON(PredictResponse{RequestId: requestId, Score: score, Metadata: metadata}, rw)
}

func (handler *Handler) PredictBatch(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")

	requestId := uuid.New().String()

	request := &BatchPredictRequest{}
	if err := fromJSON(request, r.Body); err != nil {
		rw.WriteHeader(http.StatusBadRequest)
		toJSON(ErrorResponse{Error: "invalid request body"}, rw)
		return
	}

	if !handler.runtime.IsReady() {
		rw.WriteHeader(http.StatusServiceUnavailable)
		toJSON(ErrorResponse{Error: "model not loaded"}, rw)
		return
	}

	scores, err := handler.runtime.PredictBatch(request.Instances)
	if err != nil {
		handler.writePredictionError(rw, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
	toJSON(BatchPredictResponse{RequestId: requestId, Scores: scores}, rw)
}

func (handler *Handler) Health(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")

	if !handler.runtime.IsReady() {
		rw.WriteHeader(http.StatusServiceUnavailable)
		toJSON(HealthResponse{Status: "degraded", ModelReady: false}, rw)
		return
	}

	rw.WriteHeader(http.StatusOK)
	toJSON(HealthResponse{Status: "ok", ModelReady: true}, rw)
}

func (handler *Handler) ModelInfo(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")

	rw.WriteHeader(http.StatusOK)
	toJSON(handler.runtime.Info(), rw)
}

func (handler *Handler) Reload(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Add("Content-Type", "application/json")

	handler.logger.Info(fmt.Sprintf("Reload requested for %s", handler.modelPath))

	if !handler.runtime.Load(handler.modelPath, handler.scalerPath) {
		rw.WriteHeader(http.StatusServiceUnavailable)
		toJSON(ErrorResponse{Error: "failed to load model artifact"}, rw)
		return
	}

	rw.WriteHeader(http.StatusOK)
	toJSON(handler.runtime.Info(), rw)
}

func (handler *Handler) writePredictionError(rw http.ResponseWriter, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		rw.WriteHeader(http.StatusBadRequest)
		toJSON(ErrorResponse{Error: err.Error()}, rw)
		return
	}

	handler.logger.Error("prediction failed", "error", err)
	rw.WriteHeader(http.StatusInternalServerError)
	toJSON(ErrorResponse{Error: "prediction failed"}, rw)
}
