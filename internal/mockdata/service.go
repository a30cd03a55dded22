// Package mockdata is the in-memory stand-in for the real backend. It
// reproduces realistic asynchronous latency and, through an explicit
// background Generator, occasional autonomous data drift, so polling
// controllers can be exercised without a live server.
package mockdata

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/agentdojo/swarmdeck/internal/config"
	"github.com/agentdojo/swarmdeck/internal/natsbus"
	"github.com/agentdojo/swarmdeck/internal/swarm"
)

// ErrNotFound is returned when an id does not match any record.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is the injected failure for fault-injection testing.
var ErrUnavailable = errors.New("mock backend unavailable")

const maxLogEntries = 100

// Service holds the mutable collections. All reads return defensive
// copies; all writes mutate in place under the lock and stamp the
// record's modification time.
type Service struct {
	mu        sync.Mutex
	swarms    []swarm.Swarm
	artifacts []Artifact
	triggers  []swarm.EventTrigger
	decisions []AgentDecision
	logs      []SystemLog

	cfg config.MockConfig
	bus *natsbus.Client
	rng *rand.Rand
	now func() time.Time

	// artifactReadyDelay is how long an uploaded artifact stays in the
	// processing state.
	artifactReadyDelay time.Duration

	// trainingTick is the interval between training progress updates.
	trainingTick time.Duration
}

// New seeds the service with its demo collections. bus may be nil.
func New(cfg config.MockConfig, bus *natsbus.Client) *Service {
	s := &Service{
		cfg:                cfg,
		bus:                bus,
		rng:                rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:                time.Now,
		artifactReadyDelay: 5 * time.Second,
		trainingTick:       2 * time.Second,
	}
	if cfg.ArtifactReadyDelay > 0 {
		s.artifactReadyDelay = cfg.ArtifactReadyDelay
	}
	if cfg.TrainingTick > 0 {
		s.trainingTick = cfg.TrainingTick
	}
	s.seed()
	return s
}

// delay simulates backend latency, scaled by the configured factor.
// It returns early if the context is cancelled.
func (s *Service) delay(ctx context.Context, base time.Duration) error {
	d := time.Duration(float64(base) * s.cfg.LatencyScale)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// maybeFail rolls the configured failure rate.
func (s *Service) maybeFail(op string) error {
	if s.cfg.FailureRate <= 0 {
		return nil
	}
	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()
	if roll < s.cfg.FailureRate {
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	return nil
}

func (s *Service) publish(topic string, v any) {
	if s.bus == nil {
		return
	}
	_ = s.bus.PublishJSON(topic, v)
}
