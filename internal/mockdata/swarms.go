package mockdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agentdojo/swarmdeck/internal/natsbus"
	"github.com/agentdojo/swarmdeck/internal/swarm"
	"github.com/google/uuid"
)

// ErrTrainingActive is returned when a swarm already has a running
// training session.
var ErrTrainingActive = errors.New("training already in progress")

// ErrInvalidTransition is returned for status changes the lifecycle does
// not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

func (s *Service) GetSwarms(ctx context.Context) ([]swarm.Swarm, error) {
	if err := s.delay(ctx, 500*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("get swarms"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]swarm.Swarm, len(s.swarms))
	for i := range s.swarms {
		out[i] = s.swarms[i].Clone()
	}
	return out, nil
}

func (s *Service) GetSwarmByID(ctx context.Context, id string) (*swarm.Swarm, error) {
	if err := s.delay(ctx, 300*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("get swarm"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sw, _, err := s.findSwarm(id)
	if err != nil {
		return nil, err
	}
	out := sw.Clone()
	return &out, nil
}

// findSwarm must be called with the lock held.
func (s *Service) findSwarm(id string) (*swarm.Swarm, int, error) {
	for i := range s.swarms {
		if s.swarms[i].ID == id {
			return &s.swarms[i], i, nil
		}
	}
	return nil, -1, ErrNotFound
}

// CreateSwarm registers a new swarm in the ready state with a generated
// id and creation timestamp.
func (s *Service) CreateSwarm(ctx context.Context, in swarm.Swarm) (*swarm.Swarm, error) {
	if err := s.delay(ctx, 600*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("create swarm"); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("swarm name is required")
	}
	for _, tr := range in.EventTriggers {
		if err := tr.Validate(); err != nil {
			return nil, err
		}
	}

	now := s.now()
	in.ID = uuid.New().String()
	in.Status = swarm.StatusReady
	in.Created = now
	in.Modified = now
	if in.Deployment.Environment == "" {
		in.Deployment.Environment = "development"
	}
	if in.Deployment.Resources == "" {
		in.Deployment.Resources = "2 vCPU, 4GB RAM"
	}

	s.mu.Lock()
	s.swarms = append(s.swarms, in.Clone())
	s.mu.Unlock()

	out := in
	return &out, nil
}

// UpdateSwarm applies a partial update and returns the merged swarm.
func (s *Service) UpdateSwarm(ctx context.Context, id string, p swarm.Patch) (*swarm.Swarm, error) {
	if err := s.delay(ctx, 400*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("update swarm"); err != nil {
		return nil, err
	}
	for _, tr := range p.EventTriggers {
		if err := tr.Validate(); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sw, i, err := s.findSwarm(id)
	if err != nil {
		return nil, err
	}
	s.swarms[i] = p.Apply(*sw, s.now()).Clone()
	out := s.swarms[i].Clone()
	return &out, nil
}

func (s *Service) DeleteSwarm(ctx context.Context, id string) error {
	if err := s.delay(ctx, 400*time.Millisecond); err != nil {
		return err
	}
	if err := s.maybeFail("delete swarm"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, i, err := s.findSwarm(id)
	if err != nil {
		return err
	}
	s.swarms = append(s.swarms[:i], s.swarms[i+1:]...)
	return nil
}

// UpdateSwarmStatus moves a swarm through the deploy/pause lifecycle,
// rejecting transitions the lifecycle does not allow.
func (s *Service) UpdateSwarmStatus(ctx context.Context, id string, to swarm.Status) (*swarm.Swarm, error) {
	if err := s.delay(ctx, 300*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("update swarm status"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	sw, _, err := s.findSwarm(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if !swarm.CanTransition(sw.Status, to) {
		from := sw.Status
		s.mu.Unlock()
		return nil, fmt.Errorf("%s -> %s: %w", from, to, ErrInvalidTransition)
	}
	sw.Status = to
	sw.Modified = s.now()
	if to == swarm.StatusDeployed {
		t := s.now()
		sw.Deployment.LastDeployed = &t
	}
	out := sw.Clone()
	s.mu.Unlock()

	s.publish(natsbus.TopicSwarmLifecycle(id), out)
	return &out, nil
}

// StartTraining begins a simulated training run for the swarm. Only one
// session may run per swarm at a time. Progress advances in the
// background and each tick is published to the event bus; on completion
// the session becomes a new active version and the swarm returns to the
// ready state.
func (s *Service) StartTraining(ctx context.Context, id string) (*swarm.TrainingSession, error) {
	if err := s.delay(ctx, 500*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("start training"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	sw, _, err := s.findSwarm(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if sw.CurrentTraining != nil && sw.CurrentTraining.Status == swarm.TrainingRunning {
		s.mu.Unlock()
		return nil, ErrTrainingActive
	}

	session := &swarm.TrainingSession{
		ID:          uuid.New().String(),
		StartedAt:   s.now(),
		Status:      swarm.TrainingRunning,
		Progress:    0,
		CurrentStep: swarm.TrainingInitialStep,
	}
	sw.CurrentTraining = session
	sw.Status = swarm.StatusTraining
	sw.Modified = s.now()
	out := *session
	s.mu.Unlock()

	go s.runTraining(id, session.ID)

	return &out, nil
}

// runTraining advances the session by ten percent per tick until it
// completes. The session may disappear underneath us if the swarm is
// deleted; the loop just stops in that case.
func (s *Service) runTraining(swarmID, sessionID string) {
	ticker := time.NewTicker(s.trainingTick)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		sw, _, err := s.findSwarm(swarmID)
		if err != nil || sw.CurrentTraining == nil || sw.CurrentTraining.ID != sessionID {
			s.mu.Unlock()
			return
		}

		session := sw.CurrentTraining
		session.Progress += 10
		if session.Progress >= 100 {
			session.Progress = 100
			session.Status = swarm.TrainingCompleted
			t := s.now()
			session.CompletedAt = &t
			session.Metrics = &swarm.TrainingMetrics{
				Accuracy:   0.90 + s.rng.Float64()*0.08,
				Loss:       0.02 + s.rng.Float64()*0.05,
				Validation: 0.88 + s.rng.Float64()*0.08,
			}
			s.completeTraining(sw, session)
		}
		session.CurrentStep = swarm.TrainingStep(session.Progress)
		snapshot := *session
		s.mu.Unlock()

		s.publish(natsbus.TopicTrainingProgress(swarmID), snapshot)

		if snapshot.Status != swarm.TrainingRunning {
			s.discardSession(swarmID, sessionID)
			return
		}
	}
}

// discardSession drops a finished training session; it only lives while
// the run is in flight, the durable outcome is the Version it produced.
func (s *Service) discardSession(swarmID, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sw, _, err := s.findSwarm(swarmID)
	if err != nil {
		return
	}
	if sw.CurrentTraining != nil && sw.CurrentTraining.ID == sessionID {
		sw.CurrentTraining = nil
	}
}

// completeTraining turns a finished session into a new active version,
// prepended so the newest revision lists first, and points the swarm's
// current version label at it. Must be called with the lock held.
func (s *Service) completeTraining(sw *swarm.Swarm, session *swarm.TrainingSession) {
	label := fmt.Sprintf("v%d.0.0", len(sw.Versions)+1)
	v := swarm.Version{
		ID:               uuid.New().String(),
		Label:            label,
		CreatedAt:        s.now(),
		TrainingDuration: s.now().Sub(session.StartedAt).Round(time.Second).String(),
		Accuracy:         session.Metrics.Accuracy * 100,
		Performance:      sw.Performance,
		Status:           swarm.VersionActive,
		Dataset:          sw.Dataset,
	}
	sw.Versions = append([]swarm.Version{v}, sw.Versions...)
	sw.CurrentVersion = v.Label
	sw.Status = swarm.StatusReady
	sw.Modified = s.now()
}

// GetTrainingStatus returns the swarm's current training session, or
// ErrNotFound when none is active.
func (s *Service) GetTrainingStatus(ctx context.Context, id string) (*swarm.TrainingSession, error) {
	if err := s.delay(ctx, 100*time.Millisecond); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sw, _, err := s.findSwarm(id)
	if err != nil {
		return nil, err
	}
	if sw.CurrentTraining == nil {
		return nil, ErrNotFound
	}
	out := *sw.CurrentTraining
	return &out, nil
}

// DeployVersion makes the target version the swarm's live one. The
// previously deployed version is archived, the live deployment record is
// replaced with fresh zeroed metrics, and the swarm's current version
// label is updated. All four changes land atomically under the lock.
func (s *Service) DeployVersion(ctx context.Context, swarmID, versionID string) (*swarm.Swarm, error) {
	if err := s.delay(ctx, 700*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("deploy version"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	sw, _, err := s.findSwarm(swarmID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	target := -1
	for i := range sw.Versions {
		if sw.Versions[i].ID == versionID {
			target = i
			break
		}
	}
	if target < 0 {
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	now := s.now()
	// Rebuild the slice so snapshots handed out earlier keep their
	// own view of the version history.
	versions := make([]swarm.Version, len(sw.Versions))
	for i, v := range sw.Versions {
		switch {
		case i == target:
			v.Status = swarm.VersionDeployed
		case v.Status == swarm.VersionDeployed:
			v.Status = swarm.VersionArchived
		}
		versions[i] = v
	}
	sw.Versions = versions
	sw.CurrentVersion = sw.Versions[target].Label
	sw.ActiveDeploy = &swarm.Deployment{
		Version:    sw.Versions[target].Label,
		DeployedAt: now,
		DeployedBy: "admin@example.com",
		Status:     swarm.DeploymentActive,
		Metrics:    swarm.LiveMetrics{Uptime: "0m"},
	}
	sw.Deployment.LastDeployed = &now
	sw.Modified = now
	out := sw.Clone()
	s.mu.Unlock()

	s.publish(natsbus.TopicSwarmLifecycle(swarmID), out)
	return &out, nil
}

// SetDeploymentStatus pauses, resumes or stops the swarm's live
// deployment.
func (s *Service) SetDeploymentStatus(ctx context.Context, swarmID string, status swarm.DeploymentStatus) (*swarm.Swarm, error) {
	if err := s.delay(ctx, 300*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("set deployment status"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	sw, _, err := s.findSwarm(swarmID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if sw.ActiveDeploy == nil {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	sw.ActiveDeploy.Status = status
	if status == swarm.DeploymentStopped {
		sw.ActiveDeploy = nil
	}
	sw.Modified = s.now()
	out := sw.Clone()
	s.mu.Unlock()

	s.publish(natsbus.TopicSwarmLifecycle(swarmID), out)
	return &out, nil
}
