package mockdata

import (
	"context"
	"time"

	"github.com/agentdojo/swarmdeck/internal/swarm"
	"github.com/google/uuid"
)

func (s *Service) GetEventTriggers(ctx context.Context) ([]swarm.EventTrigger, error) {
	if err := s.delay(ctx, 300*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("get triggers"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]swarm.EventTrigger, len(s.triggers))
	copy(out, s.triggers)
	return out, nil
}

func (s *Service) CreateEventTrigger(ctx context.Context, t swarm.EventTrigger) (*swarm.EventTrigger, error) {
	if err := s.delay(ctx, 400*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("create trigger"); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	t.ID = uuid.New().String()
	s.mu.Lock()
	s.triggers = append(s.triggers, t)
	s.mu.Unlock()

	out := t
	return &out, nil
}

func (s *Service) UpdateEventTrigger(ctx context.Context, t swarm.EventTrigger) (*swarm.EventTrigger, error) {
	if err := s.delay(ctx, 400*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("update trigger"); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.triggers {
		if s.triggers[i].ID == t.ID {
			s.triggers[i] = t
			out := t
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Service) DeleteEventTrigger(ctx context.Context, id string) error {
	if err := s.delay(ctx, 300*time.Millisecond); err != nil {
		return err
	}
	if err := s.maybeFail("delete trigger"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.triggers {
		if t.ID == id {
			s.triggers = append(s.triggers[:i], s.triggers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
