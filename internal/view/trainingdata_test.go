package view

import (
	"context"
	"testing"
	"time"

	"github.com/agentdojo/swarmdeck/internal/appstate"
	"github.com/agentdojo/swarmdeck/internal/config"
	"github.com/agentdojo/swarmdeck/internal/mockdata"
)

func TestTrainingDataUploadLifecycle(t *testing.T) {
	svc := mockdata.New(config.MockConfig{
		LatencyScale:       0,
		MaxDecisions:       50,
		ArtifactReadyDelay: 5 * time.Millisecond,
	}, nil)
	state := appstate.New(0, nil)
	screen := NewTrainingDataScreen(svc, state, 5*time.Millisecond, testLogger())

	screen.Activate(context.Background())
	defer screen.Deactivate()
	waitFor(t, time.Second, func() bool { return len(screen.Artifacts()) == 2 })

	uploaded, err := screen.Upload(context.Background(), "leads_q1.json", mockdata.ArtifactDataset, 2048)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if uploaded.Status != mockdata.ArtifactProcessing {
		t.Errorf("fresh upload must be processing, got %s", uploaded.Status)
	}
	if len(screen.Artifacts()) != 3 {
		t.Errorf("expected 3 artifacts, got %d", len(screen.Artifacts()))
	}

	// Polling picks up the ready flip without any explicit reload.
	waitFor(t, time.Second, func() bool {
		for _, a := range screen.Artifacts() {
			if a.ID == uploaded.ID && a.Status == mockdata.ArtifactReady {
				return true
			}
		}
		return false
	})

	if err := screen.Delete(context.Background(), uploaded.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	waitFor(t, time.Second, func() bool {
		for _, a := range screen.Artifacts() {
			if a.ID == uploaded.ID {
				return false
			}
		}
		return true
	})
}
