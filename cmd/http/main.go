package main

import (
	"flag"
	"os"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/mysticalseeker24/SuperPage/internal/common"
	"github.com/mysticalseeker24/SuperPage/internal/events"
	"github.com/mysticalseeker24/SuperPage/internal/predictor"
	"github.com/mysticalseeker24/SuperPage/internal/server"
)

func main() {
	modelPath := flag.String("model-path", common.DEFAULT_MODEL_PATH, "path to the model artifact")
	scalerPath := flag.String("scaler-path", common.DEFAULT_SCALER_PATH, "path to the scaler artifact")
	port := flag.Int("port", common.PREDICTION_SERVER_PORT, "HTTP listen port")
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "fl-predict",
		Level:  hclog.LevelFromString("DEBUG"),
		Output: os.Stdout,
	})

	eventBus := events.NewEventBus()

	runtime := predictor.NewRuntime(logger)
	if !runtime.Load(*modelPath, *scalerPath) {
		// degraded start: the watcher retries until an artifact appears
		logger.Warn("No model artifact loaded, starting in degraded mode")
	}

	watcher := predictor.NewWatcher(runtime, *modelPath, *scalerPath, eventBus, logger)
	watcher.Start()
	defer watcher.Stop()

	reloadedChan := make(chan events.Event, 8)
	eventBus.Subscribe(common.ARTIFACT_RELOADED_EVENT_TYPE, reloadedChan)
	go func() {
		for event := range reloadedChan {
			if reloaded, ok := event.Data.(events.ArtifactReloadedEvent); ok {
				logger.Info("Serving new artifact", "artifactId", reloaded.ArtifactId)
			}
		}
	}()

	handler := server.NewHandler(logger, runtime, *modelPath, *scalerPath)

	defaultRouter := mux.NewRouter()
	defaultRouter.HandleFunc("/predict", handler.Predict).Methods("POST")
	defaultRouter.HandleFunc("/predict/batch", handler.PredictBatch).Methods("POST")
	defaultRouter.HandleFunc("/health", handler.Health).Methods("GET")
	defaultRouter.HandleFunc("/model/info", handler.ModelInfo).Methods("GET")
	defaultRouter.HandleFunc("/model/reload", handler.Reload).Methods("POST")

	server.StartHttpServer(logger, defaultRouter, *port)
}
