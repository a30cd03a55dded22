package mockdata

import (
	"context"
	"fmt"
	"time"

	"github.com/agentdojo/swarmdeck/internal/natsbus"
	"github.com/google/uuid"
)

type ArtifactType string

const (
	ArtifactDataset ArtifactType = "dataset"
	ArtifactModel   ArtifactType = "model"
	ArtifactConfig  ArtifactType = "config"
)

type ArtifactStatus string

const (
	ArtifactReady      ArtifactStatus = "ready"
	ArtifactProcessing ArtifactStatus = "processing"
	ArtifactError      ArtifactStatus = "error"
)

// Artifact is an uploaded training file. New uploads start in the
// processing state and flip to ready after a short delay.
type Artifact struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       ArtifactType   `json:"type"`
	Size       int64          `json:"size"`
	Status     ArtifactStatus `json:"status"`
	UploadedAt time.Time      `json:"uploadedAt"`
	Version    string         `json:"version"`
}

func (s *Service) GetTrainingData(ctx context.Context) ([]Artifact, error) {
	if err := s.delay(ctx, 400*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("get training data"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out, nil
}

// UploadTrainingData registers a new artifact in the processing state.
// The artifact flips to ready in the background after the configured
// delay, and an event is published when it does.
func (s *Service) UploadTrainingData(ctx context.Context, name string, kind ArtifactType, size int64) (*Artifact, error) {
	if err := s.delay(ctx, 800*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("upload training data"); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("artifact name is required")
	}

	a := Artifact{
		ID:         uuid.New().String(),
		Name:       name,
		Type:       kind,
		Size:       size,
		Status:     ArtifactProcessing,
		UploadedAt: s.now(),
		Version:    "1.0.0",
	}

	s.mu.Lock()
	s.artifacts = append(s.artifacts, a)
	s.mu.Unlock()

	go s.finishProcessing(a.ID)

	out := a
	return &out, nil
}

func (s *Service) finishProcessing(id string) {
	if s.artifactReadyDelay > 0 {
		time.Sleep(s.artifactReadyDelay)
	}

	s.mu.Lock()
	var ready *Artifact
	for i := range s.artifacts {
		if s.artifacts[i].ID == id && s.artifacts[i].Status == ArtifactProcessing {
			s.artifacts[i].Status = ArtifactReady
			a := s.artifacts[i]
			ready = &a
			break
		}
	}
	s.mu.Unlock()

	if ready != nil {
		s.publish(natsbus.TopicEventsArtifact, ready)
	}
}

func (s *Service) DeleteTrainingData(ctx context.Context, id string) error {
	if err := s.delay(ctx, 300*time.Millisecond); err != nil {
		return err
	}
	if err := s.maybeFail("delete training data"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.artifacts {
		if a.ID == id {
			s.artifacts = append(s.artifacts[:i], s.artifacts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
