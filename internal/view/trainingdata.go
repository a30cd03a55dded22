package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/agentdojo/swarmdeck/internal/appstate"
	"github.com/agentdojo/swarmdeck/internal/mockdata"
)

const loadingTrainingData = "trainingData"

// TrainingDataScreen lists uploaded artifacts. Polling keeps the status
// column live while uploads move from processing to ready.
type TrainingDataScreen struct {
	svc    *mockdata.Service
	state  *appstate.Store
	logger *slog.Logger
	poller *Poller[[]mockdata.Artifact]

	mu        sync.Mutex
	artifacts []mockdata.Artifact
}

func NewTrainingDataScreen(svc *mockdata.Service, state *appstate.Store, interval time.Duration, logger *slog.Logger) *TrainingDataScreen {
	s := &TrainingDataScreen{
		svc:    svc,
		state:  state,
		logger: logger,
	}
	s.poller = NewPoller("trainingData", interval, logger, s.fetch, s.apply, s.fetchFailed)
	return s
}

func (s *TrainingDataScreen) Activate(ctx context.Context) {
	s.state.SetLoading(loadingTrainingData, true)
	s.poller.Start(ctx)
}

func (s *TrainingDataScreen) Deactivate() {
	s.poller.Stop()
}

func (s *TrainingDataScreen) fetch(ctx context.Context) ([]mockdata.Artifact, error) {
	return s.svc.GetTrainingData(ctx)
}

func (s *TrainingDataScreen) apply(artifacts []mockdata.Artifact) {
	s.mu.Lock()
	s.artifacts = artifacts
	s.mu.Unlock()
	s.state.SetLoading(loadingTrainingData, false)
}

func (s *TrainingDataScreen) fetchFailed(err error) {
	s.state.SetLoading(loadingTrainingData, false)
	s.state.AddNotification(appstate.NotifyError, "Failed to load training data")
	s.logger.Error("training data fetch failed", "error", err)
}

func (s *TrainingDataScreen) Artifacts() []mockdata.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mockdata.Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}

// Upload registers a new artifact and adds it to the snapshot in its
// processing state; polling picks up the ready flip.
func (s *TrainingDataScreen) Upload(ctx context.Context, name string, kind mockdata.ArtifactType, size int64) (*mockdata.Artifact, error) {
	s.state.SetLoading(loadingTrainingData, true)
	defer s.state.SetLoading(loadingTrainingData, false)

	a, err := s.svc.UploadTrainingData(ctx, name, kind, size)
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to upload training data")
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}

	s.mu.Lock()
	s.artifacts = append(s.artifacts, *a)
	s.mu.Unlock()
	s.state.AddNotification(appstate.NotifySuccess, fmt.Sprintf("%s uploaded successfully", name))
	return a, nil
}

func (s *TrainingDataScreen) Delete(ctx context.Context, id string) error {
	s.state.SetLoading(loadingTrainingData, true)
	defer s.state.SetLoading(loadingTrainingData, false)

	if err := s.svc.DeleteTrainingData(ctx, id); err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to delete training data")
		return fmt.Errorf("delete artifact %s: %w", id, err)
	}

	s.mu.Lock()
	for i, a := range s.artifacts {
		if a.ID == id {
			s.artifacts = append(s.artifacts[:i], s.artifacts[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.state.AddNotification(appstate.NotifySuccess, "Training data deleted")
	return nil
}
