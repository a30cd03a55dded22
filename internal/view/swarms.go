package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/agentdojo/swarmdeck/internal/appstate"
	"github.com/agentdojo/swarmdeck/internal/swarm"
)

const loadingSwarms = "swarms"

// SwarmAPI is the remote lifecycle surface the management screen needs.
// *gateway.Client satisfies it.
type SwarmAPI interface {
	ListSwarms(ctx context.Context, status string) ([]swarm.Swarm, error)
	CreateSwarm(ctx context.Context, s swarm.Swarm) (*swarm.Swarm, error)
	UpdateSwarm(ctx context.Context, id string, s swarm.Swarm) (*swarm.Swarm, error)
	DeleteSwarm(ctx context.Context, id string) error
	DeploySwarm(ctx context.Context, id string) (*swarm.Swarm, error)
	PauseSwarm(ctx context.Context, id string) (*swarm.Swarm, error)
}

// SwarmsScreen is the management view. Deploy and pause update the
// local snapshot first so the screen reacts instantly, then roll back
// with an error notification if the backend refuses.
type SwarmsScreen struct {
	api    SwarmAPI
	state  *appstate.Store
	logger *slog.Logger

	mu     sync.Mutex
	swarms []swarm.Swarm
	query  SwarmQuery
}

func NewSwarmsScreen(api SwarmAPI, state *appstate.Store, logger *slog.Logger) *SwarmsScreen {
	return &SwarmsScreen{api: api, state: state, logger: logger}
}

func (s *SwarmsScreen) Load(ctx context.Context) error {
	s.state.SetLoading(loadingSwarms, true)
	defer s.state.SetLoading(loadingSwarms, false)

	swarms, err := s.api.ListSwarms(ctx, "")
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to load agent swarms")
		return fmt.Errorf("load swarms: %w", err)
	}

	s.mu.Lock()
	s.swarms = swarms
	s.mu.Unlock()
	return nil
}

func (s *SwarmsScreen) SetQuery(q SwarmQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

func (s *SwarmsScreen) Swarms() []swarm.Swarm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilterSwarms(s.swarms, s.query)
}

// Deploy moves a swarm to deployed. The transition is validated and
// applied locally before the backend call; a backend failure restores
// the previous state.
func (s *SwarmsScreen) Deploy(ctx context.Context, id string) error {
	return s.transition(ctx, id, swarm.StatusDeployed, s.api.DeploySwarm,
		"Agent swarm deployed successfully", "Failed to deploy agent swarm")
}

// Pause moves a deployed swarm to inactive, optimistically like Deploy.
func (s *SwarmsScreen) Pause(ctx context.Context, id string) error {
	return s.transition(ctx, id, swarm.StatusInactive, s.api.PauseSwarm,
		"Agent swarm paused", "Failed to pause agent swarm")
}

func (s *SwarmsScreen) transition(ctx context.Context, id string, to swarm.Status,
	call func(context.Context, string) (*swarm.Swarm, error), okMsg, failMsg string) error {

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("swarm %s not loaded", id)
	}
	prev := s.swarms[idx]
	if !swarm.CanTransition(prev.Status, to) {
		s.mu.Unlock()
		s.state.AddNotification(appstate.NotifyError,
			fmt.Sprintf("Cannot move swarm from %s to %s", prev.Status, to))
		return fmt.Errorf("transition %s -> %s not allowed", prev.Status, to)
	}
	s.swarms[idx].Status = to
	s.mu.Unlock()

	updated, err := call(ctx, id)
	if err != nil {
		// Roll back the optimistic update
		s.mu.Lock()
		if idx := s.indexOf(id); idx >= 0 {
			s.swarms[idx] = prev
		}
		s.mu.Unlock()
		s.state.AddNotification(appstate.NotifyError, failMsg)
		s.logger.Error("swarm transition failed", "id", id, "to", to, "error", err)
		return err
	}

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.swarms[idx] = *updated
	}
	s.mu.Unlock()
	s.state.AddNotification(appstate.NotifySuccess, okMsg)
	return nil
}

// indexOf must be called with the lock held.
func (s *SwarmsScreen) indexOf(id string) int {
	for i := range s.swarms {
		if s.swarms[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *SwarmsScreen) Create(ctx context.Context, in swarm.Swarm) (*swarm.Swarm, error) {
	s.state.SetLoading(loadingSwarms, true)
	defer s.state.SetLoading(loadingSwarms, false)

	if in.Name == "" || in.Goal == "" {
		s.state.AddNotification(appstate.NotifyError, "Please fill in all required fields")
		return nil, fmt.Errorf("swarm name and goal are required")
	}

	created, err := s.api.CreateSwarm(ctx, in)
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to create agent swarm")
		return nil, fmt.Errorf("create swarm: %w", err)
	}

	s.mu.Lock()
	s.swarms = append(s.swarms, *created)
	s.mu.Unlock()
	s.state.AddNotification(appstate.NotifySuccess, "Agent swarm created successfully")
	return created, nil
}

func (s *SwarmsScreen) Update(ctx context.Context, id string, in swarm.Swarm) error {
	s.state.SetLoading(loadingSwarms, true)
	defer s.state.SetLoading(loadingSwarms, false)

	updated, err := s.api.UpdateSwarm(ctx, id, in)
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to update agent swarm")
		return fmt.Errorf("update swarm: %w", err)
	}

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.swarms[idx] = *updated
	}
	s.mu.Unlock()
	s.state.AddNotification(appstate.NotifySuccess, "Agent swarm updated successfully")
	return nil
}

func (s *SwarmsScreen) Delete(ctx context.Context, id string) error {
	s.state.SetLoading(loadingSwarms, true)
	defer s.state.SetLoading(loadingSwarms, false)

	if err := s.api.DeleteSwarm(ctx, id); err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to delete agent swarm")
		return fmt.Errorf("delete swarm: %w", err)
	}

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.swarms = append(s.swarms[:idx], s.swarms[idx+1:]...)
	}
	s.mu.Unlock()
	s.state.AddNotification(appstate.NotifySuccess, "Agent swarm deleted successfully")
	return nil
}
