package predictor

import (
	"os"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mysticalseeker24/SuperPage/internal/common"
	"github.com/mysticalseeker24/SuperPage/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherLoadsLateArtifact(t *testing.T) {
	modelPath, scalerPath := saveTestArtifact(t)

	// runtime starts degraded: the files exist but were never loaded
	runtime := NewRuntime(hclog.NewNullLogger())
	require.False(t, runtime.IsReady())

	eventBus := events.NewEventBus()
	reloaded := make(chan events.Event, 1)
	eventBus.Subscribe(common.ARTIFACT_RELOADED_EVENT_TYPE, reloaded)

	watcher := NewWatcher(runtime, modelPath, scalerPath, eventBus, hclog.NewNullLogger())
	watcher.checkArtifact()

	assert.True(t, runtime.IsReady())

	select {
	case event := <-reloaded:
		reloadedEvent, ok := event.Data.(events.ArtifactReloadedEvent)
		require.True(t, ok)
		assert.Equal(t, modelPath, reloadedEvent.ModelPath)
		assert.Equal(t, runtime.Info().Artifact.ArtifactId, reloadedEvent.ArtifactId)
	default:
		t.Fatal("expected an artifact reloaded event")
	}
}

func TestWatcherIgnoresUnchangedArtifact(t *testing.T) {
	modelPath, scalerPath := saveTestArtifact(t)

	runtime := NewRuntime(hclog.NewNullLogger())
	require.True(t, runtime.Load(modelPath, scalerPath))
	firstLoad := runtime.Info().Artifact.ArtifactId

	eventBus := events.NewEventBus()
	reloaded := make(chan events.Event, 1)
	eventBus.Subscribe(common.ARTIFACT_RELOADED_EVENT_TYPE, reloaded)

	watcher := NewWatcher(runtime, modelPath, scalerPath, eventBus, hclog.NewNullLogger())
	watcher.Start()
	defer watcher.Stop()

	watcher.checkArtifact()

	assert.Equal(t, firstLoad, runtime.Info().Artifact.ArtifactId)
	select {
	case <-reloaded:
		t.Fatal("unchanged artifact must not trigger a reload event")
	default:
	}
}

func TestWatcherReloadsNewerArtifact(t *testing.T) {
	modelPath, scalerPath := saveTestArtifact(t)

	runtime := NewRuntime(hclog.NewNullLogger())
	require.True(t, runtime.Load(modelPath, scalerPath))

	eventBus := events.NewEventBus()
	reloaded := make(chan events.Event, 1)
	eventBus.Subscribe(common.ARTIFACT_RELOADED_EVENT_TYPE, reloaded)

	watcher := NewWatcher(runtime, modelPath, scalerPath, eventBus, hclog.NewNullLogger())
	watcher.Start()
	defer watcher.Stop()

	// simulate a fresh training run replacing the artifact pair
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(modelPath, future, future))

	watcher.checkArtifact()

	select {
	case <-reloaded:
	default:
		t.Fatal("expected a reload after the artifact changed on disk")
	}
}

func TestWatcherMissingArtifactIsQuiet(t *testing.T) {
	runtime := NewRuntime(hclog.NewNullLogger())
	eventBus := events.NewEventBus()

	watcher := NewWatcher(runtime, "missing_model.json", "missing_scaler.json", eventBus, hclog.NewNullLogger())
	watcher.checkArtifact()

	assert.False(t, runtime.IsReady())
}
