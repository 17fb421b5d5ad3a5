package predictor

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mysticalseeker24/SuperPage/internal/common"
	"github.com/mysticalseeker24/SuperPage/internal/events"
	"github.com/robfig/cron/v3"
)

// Watcher periodically stats the artifact pair and reloads the runtime when a
// newer pair appears, or when the runtime started degraded and the files show
// up later. Reloads are announced on the event bus.
type Watcher struct {
	runtime       *Runtime
	modelPath     string
	scalerPath    string
	eventBus      *events.EventBus
	logger        hclog.Logger
	cronScheduler *cron.Cron

	mu          sync.Mutex
	lastModTime time.Time
}

func NewWatcher(runtime *Runtime, modelPath string, scalerPath string,
	eventBus *events.EventBus, logger hclog.Logger) *Watcher {
	return &Watcher{
		runtime:       runtime,
		modelPath:     modelPath,
		scalerPath:    scalerPath,
		eventBus:      eventBus,
		logger:        logger,
		cronScheduler: cron.New(cron.WithSeconds()),
	}
}

func (w *Watcher) Start() {
	if w.runtime.IsReady() {
		if modTime, ok := w.artifactModTime(); ok {
			w.lastModTime = modTime
		}
	}

	w.cronScheduler.AddFunc("@every 30s", w.checkArtifact)
	w.cronScheduler.Start()
}

func (w *Watcher) Stop() {
	w.cronScheduler.Stop()
}

func (w *Watcher) artifactModTime() (time.Time, bool) {
	modelStat, err := os.Stat(w.modelPath)
	if err != nil {
		return time.Time{}, false
	}
	scalerStat, err := os.Stat(w.scalerPath)
	if err != nil {
		return time.Time{}, false
	}

	modTime := modelStat.ModTime()
	if scalerStat.ModTime().After(modTime) {
		modTime = scalerStat.ModTime()
	}
	return modTime, true
}

func (w *Watcher) checkArtifact() {
	modTime, ok := w.artifactModTime()
	if !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.runtime.IsReady() && !modTime.After(w.lastModTime) {
		return
	}

	w.logger.Info(fmt.Sprintf("Artifact change detected, reloading from %s", w.modelPath))
	if !w.runtime.Load(w.modelPath, w.scalerPath) {
		return
	}
	w.lastModTime = modTime

	w.eventBus.Publish(events.Event{
		Type:      common.ARTIFACT_RELOADED_EVENT_TYPE,
		Timestamp: time.Now(),
		Data: events.ArtifactReloadedEvent{
			ArtifactId: w.runtime.Info().Artifact.ArtifactId,
			ModelPath:  w.modelPath,
			ScalerPath: w.scalerPath,
		},
	})
}
