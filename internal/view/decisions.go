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

const (
	// Refresh interval bounds exposed to the user on the decisions
	// screen.
	MinRefreshInterval = 5 * time.Second
	MaxRefreshInterval = 60 * time.Second
)

const loadingDecisions = "decisions"

type decisionsPayload struct {
	decisions []mockdata.AgentDecision
	stats     *mockdata.DecisionStats
}

// DecisionsScreen shows the agent decision feed with aggregate stats.
// Filtering is a pure recompute over the latest snapshot; the compare
// selection holds at most two decisions.
type DecisionsScreen struct {
	svc    *mockdata.Service
	state  *appstate.Store
	logger *slog.Logger
	poller *Poller[decisionsPayload]

	mu        sync.Mutex
	decisions []mockdata.AgentDecision
	stats     *mockdata.DecisionStats
	query     DecisionQuery
	compare   []string
}

func NewDecisionsScreen(svc *mockdata.Service, state *appstate.Store, interval time.Duration, logger *slog.Logger) *DecisionsScreen {
	s := &DecisionsScreen{
		svc:    svc,
		state:  state,
		logger: logger,
	}
	s.poller = NewPoller("decisions", clampRefresh(interval), logger, s.fetch, s.applyPayload, s.fetchFailed)
	return s
}

func (s *DecisionsScreen) Activate(ctx context.Context) {
	s.state.SetLoading(loadingDecisions, true)
	s.poller.Start(ctx)
}

func (s *DecisionsScreen) Deactivate() {
	s.poller.Stop()
}

// SetRefreshInterval clamps the requested interval to the allowed range
// and restarts the poll timer.
func (s *DecisionsScreen) SetRefreshInterval(d time.Duration) time.Duration {
	d = clampRefresh(d)
	s.poller.SetInterval(d)
	return d
}

func clampRefresh(d time.Duration) time.Duration {
	if d < MinRefreshInterval {
		return MinRefreshInterval
	}
	if d > MaxRefreshInterval {
		return MaxRefreshInterval
	}
	return d
}

func (s *DecisionsScreen) fetch(ctx context.Context) (decisionsPayload, error) {
	decisions, err := s.svc.GetAgentDecisions(ctx, mockdata.DecisionFilter{})
	if err != nil {
		return decisionsPayload{}, fmt.Errorf("fetch decisions: %w", err)
	}
	stats, err := s.svc.GetDecisionStats(ctx)
	if err != nil {
		return decisionsPayload{}, fmt.Errorf("fetch decision stats: %w", err)
	}
	return decisionsPayload{decisions: decisions, stats: stats}, nil
}

func (s *DecisionsScreen) applyPayload(p decisionsPayload) {
	s.mu.Lock()
	s.decisions = p.decisions
	s.stats = p.stats
	s.mu.Unlock()
	s.state.SetLoading(loadingDecisions, false)
}

func (s *DecisionsScreen) fetchFailed(err error) {
	s.state.SetLoading(loadingDecisions, false)
	s.state.AddNotification(appstate.NotifyError, "Failed to load agent decisions")
	s.logger.Error("decisions fetch failed", "error", err)
}

// SetQuery replaces the filter state. The visible set is recomputed on
// the next Decisions call; no refetch happens.
func (s *DecisionsScreen) SetQuery(q DecisionQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// Decisions returns the filtered view of the latest snapshot.
func (s *DecisionsScreen) Decisions() []mockdata.AgentDecision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilterDecisions(s.decisions, s.query)
}

func (s *DecisionsScreen) Stats() *mockdata.DecisionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return nil
	}
	out := *s.stats
	return &out
}

// ToggleCompare adds or removes a decision from the compare selection.
// A third selection is rejected with a warning.
func (s *DecisionsScreen) ToggleCompare(id string) bool {
	s.mu.Lock()
	for i, existing := range s.compare {
		if existing == id {
			s.compare = append(s.compare[:i], s.compare[i+1:]...)
			s.mu.Unlock()
			return false
		}
	}
	if len(s.compare) >= 2 {
		s.mu.Unlock()
		s.state.AddNotification(appstate.NotifyWarning, "You can compare at most two decisions")
		return false
	}
	s.compare = append(s.compare, id)
	s.mu.Unlock()
	return true
}

func (s *DecisionsScreen) CompareSelection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.compare))
	copy(out, s.compare)
	return out
}

// Detail fetches a single decision for the drill-down drawer.
func (s *DecisionsScreen) Detail(ctx context.Context, id string) (*mockdata.AgentDecision, error) {
	d, err := s.svc.GetDecisionByID(ctx, id)
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to load decision details")
		return nil, err
	}
	return d, nil
}
