package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/agentdojo/swarmdeck/internal/appstate"
	"github.com/agentdojo/swarmdeck/internal/mockdata"
	"github.com/agentdojo/swarmdeck/internal/swarm"
)

const loadingDetail = "swarmDetail"

// DetailScreen is the single-swarm drill-down: inline field editing,
// version history with deploy, live deployment controls and the
// training runner.
type DetailScreen struct {
	svc    *mockdata.Service
	state  *appstate.Store
	logger *slog.Logger

	// trainingPoll is how often a running training session is
	// re-checked while watching for completion.
	trainingPoll time.Duration

	mu          sync.Mutex
	swarm       *swarm.Swarm
	watchCancel context.CancelFunc
}

func NewDetailScreen(svc *mockdata.Service, state *appstate.Store, logger *slog.Logger) *DetailScreen {
	return &DetailScreen{
		svc:          svc,
		state:        state,
		logger:       logger,
		trainingPoll: time.Second,
	}
}

func (s *DetailScreen) Load(ctx context.Context, id string) error {
	s.state.SetLoading(loadingDetail, true)
	defer s.state.SetLoading(loadingDetail, false)

	sw, err := s.svc.GetSwarmByID(ctx, id)
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to load swarm details")
		return fmt.Errorf("load swarm %s: %w", id, err)
	}

	s.mu.Lock()
	// Switching swarms orphans any watch on the previous one.
	if s.swarm != nil && s.swarm.ID != id && s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	s.swarm = sw
	s.mu.Unlock()
	return nil
}

// Deactivate stops any training watch. Safe to call repeatedly.
func (s *DetailScreen) Deactivate() {
	s.mu.Lock()
	cancel := s.watchCancel
	s.watchCancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *DetailScreen) Swarm() *swarm.Swarm {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.swarm == nil {
		return nil
	}
	out := *s.swarm
	return &out
}

// SaveField persists one edited field through a typed patch. fieldName
// is only used in the result notification.
func (s *DetailScreen) SaveField(ctx context.Context, fieldName string, p swarm.Patch) error {
	s.mu.Lock()
	if s.swarm == nil {
		s.mu.Unlock()
		return fmt.Errorf("no swarm loaded")
	}
	id := s.swarm.ID
	s.mu.Unlock()

	updated, err := s.svc.UpdateSwarm(ctx, id, p)
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, fmt.Sprintf("Failed to update %s", fieldName))
		return fmt.Errorf("save %s: %w", fieldName, err)
	}

	s.mu.Lock()
	s.swarm = updated
	s.mu.Unlock()
	s.state.AddNotification(appstate.NotifySuccess, fmt.Sprintf("%s updated successfully", fieldName))
	return nil
}

// DeployVersion makes the chosen version live. The swap is atomic on
// the service side; the screen replaces its snapshot with the result.
func (s *DetailScreen) DeployVersion(ctx context.Context, versionID string) error {
	s.mu.Lock()
	if s.swarm == nil {
		s.mu.Unlock()
		return fmt.Errorf("no swarm loaded")
	}
	id := s.swarm.ID
	var label string
	for _, v := range s.swarm.Versions {
		if v.ID == versionID {
			label = v.Label
		}
	}
	s.mu.Unlock()

	updated, err := s.svc.DeployVersion(ctx, id, versionID)
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to deploy version")
		return fmt.Errorf("deploy version %s: %w", versionID, err)
	}

	s.mu.Lock()
	s.swarm = updated
	s.mu.Unlock()
	s.state.AddNotification(appstate.NotifySuccess,
		fmt.Sprintf("Successfully deployed %s to production", label))
	return nil
}

// PauseDeployment and ResumeDeployment toggle the live deployment;
// StopDeployment removes it.
func (s *DetailScreen) PauseDeployment(ctx context.Context) error {
	return s.setDeployment(ctx, swarm.DeploymentPaused, "Deployment paused")
}

func (s *DetailScreen) ResumeDeployment(ctx context.Context) error {
	return s.setDeployment(ctx, swarm.DeploymentActive, "Deployment resumed")
}

func (s *DetailScreen) StopDeployment(ctx context.Context) error {
	return s.setDeployment(ctx, swarm.DeploymentStopped, "Deployment stopped successfully")
}

func (s *DetailScreen) setDeployment(ctx context.Context, status swarm.DeploymentStatus, okMsg string) error {
	s.mu.Lock()
	if s.swarm == nil {
		s.mu.Unlock()
		return fmt.Errorf("no swarm loaded")
	}
	id := s.swarm.ID
	s.mu.Unlock()

	updated, err := s.svc.SetDeploymentStatus(ctx, id, status)
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to update deployment")
		return fmt.Errorf("set deployment %s: %w", status, err)
	}

	s.mu.Lock()
	s.swarm = updated
	s.mu.Unlock()
	s.state.AddNotification(appstate.NotifySuccess, okMsg)
	return nil
}

// StartTraining kicks off a training run and watches it to completion
// in the background. A run already in progress is reported as a warning
// and left alone.
func (s *DetailScreen) StartTraining(ctx context.Context) error {
	s.mu.Lock()
	if s.swarm == nil {
		s.mu.Unlock()
		return fmt.Errorf("no swarm loaded")
	}
	id := s.swarm.ID
	s.mu.Unlock()

	session, err := s.svc.StartTraining(ctx, id)
	if err != nil {
		if errors.Is(err, mockdata.ErrTrainingActive) {
			s.state.AddNotification(appstate.NotifyWarning, "Training is already in progress")
		} else {
			s.state.AddNotification(appstate.NotifyError, "Failed to start training")
		}
		return fmt.Errorf("start training: %w", err)
	}

	s.mu.Lock()
	if s.swarm != nil {
		s.swarm.Status = swarm.StatusTraining
		s.swarm.CurrentTraining = session
	}
	if s.watchCancel != nil {
		s.watchCancel()
	}
	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.watchCancel = cancel
	s.mu.Unlock()

	s.state.AddNotification(appstate.NotifyInfo,
		"Training started. A new version will be created upon completion.")
	go s.watchTraining(watchCtx, id)
	return nil
}

// watchTraining polls the session until it leaves the running state or
// disappears, then resolves the outcome from the swarm itself. The
// service discards a finished session, so a missing one is terminal,
// not transient.
func (s *DetailScreen) watchTraining(ctx context.Context, id string) {
	ticker := time.NewTicker(s.trainingPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		session, err := s.svc.GetTrainingStatus(ctx, id)
		if err != nil {
			if errors.Is(err, mockdata.ErrNotFound) {
				s.resolveTraining(ctx, id, nil)
				return
			}
			s.logger.Warn("training status check failed", "id", id, "error", err)
			continue
		}

		if session.Status == swarm.TrainingRunning {
			s.mu.Lock()
			if s.swarm != nil && s.swarm.ID == id {
				s.swarm.CurrentTraining = session
			}
			s.mu.Unlock()
			continue
		}

		s.resolveTraining(ctx, id, session)
		return
	}
}

// resolveTraining refreshes the swarm after a run ends and reports the
// outcome. session is nil when the run's terminal tick was missed; the
// refreshed swarm decides then.
func (s *DetailScreen) resolveTraining(ctx context.Context, id string, session *swarm.TrainingSession) {
	s.mu.Lock()
	s.watchCancel = nil
	s.mu.Unlock()

	sw, err := s.svc.GetSwarmByID(ctx, id)
	if err != nil {
		// Swarm deleted mid-training; nothing left to report on.
		s.logger.Warn("swarm gone after training", "id", id, "error", err)
		return
	}
	sw.CurrentTraining = nil

	completed := sw.Status != swarm.StatusTraining && sw.CurrentVersion != ""
	if session != nil {
		completed = session.Status == swarm.TrainingCompleted
	}

	s.mu.Lock()
	if s.swarm != nil && s.swarm.ID == id {
		s.swarm = sw
	}
	s.mu.Unlock()

	if completed {
		s.state.AddNotification(appstate.NotifySuccess,
			fmt.Sprintf("Training completed! New version %s created.", sw.CurrentVersion))
	} else {
		s.state.AddNotification(appstate.NotifyError, "Training failed")
	}
}
