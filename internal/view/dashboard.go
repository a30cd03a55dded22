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

const loadingDashboard = "dashboard"

type dashboardPayload struct {
	metrics  *mockdata.DashboardMetrics
	business *mockdata.BusinessMetrics
}

// DashboardScreen is the landing view: operational and business metric
// snapshots plus the recent activity feed, refreshed on a fixed
// interval.
type DashboardScreen struct {
	svc    *mockdata.Service
	state  *appstate.Store
	logger *slog.Logger
	poller *Poller[dashboardPayload]

	mu       sync.Mutex
	metrics  *mockdata.DashboardMetrics
	business *mockdata.BusinessMetrics
}

func NewDashboardScreen(svc *mockdata.Service, state *appstate.Store, interval time.Duration, logger *slog.Logger) *DashboardScreen {
	s := &DashboardScreen{
		svc:    svc,
		state:  state,
		logger: logger,
	}
	s.poller = NewPoller("dashboard", interval, logger, s.fetch, s.applyPayload, s.fetchFailed)
	return s
}

func (s *DashboardScreen) Activate(ctx context.Context) {
	s.state.SetLoading(loadingDashboard, true)
	s.poller.Start(ctx)
}

func (s *DashboardScreen) Deactivate() {
	s.poller.Stop()
}

func (s *DashboardScreen) fetch(ctx context.Context) (dashboardPayload, error) {
	metrics, err := s.svc.GetDashboardMetrics(ctx)
	if err != nil {
		return dashboardPayload{}, fmt.Errorf("fetch dashboard metrics: %w", err)
	}
	business, err := s.svc.GetBusinessMetrics(ctx)
	if err != nil {
		return dashboardPayload{}, fmt.Errorf("fetch business metrics: %w", err)
	}
	return dashboardPayload{metrics: metrics, business: business}, nil
}

func (s *DashboardScreen) applyPayload(p dashboardPayload) {
	s.mu.Lock()
	s.metrics = p.metrics
	s.business = p.business
	s.mu.Unlock()
	s.state.SetLoading(loadingDashboard, false)
}

func (s *DashboardScreen) fetchFailed(err error) {
	s.state.SetLoading(loadingDashboard, false)
	s.state.AddNotification(appstate.NotifyError, "Failed to load dashboard metrics")
	s.logger.Error("dashboard fetch failed", "error", err)
}

func (s *DashboardScreen) Metrics() *mockdata.DashboardMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metrics == nil {
		return nil
	}
	out := *s.metrics
	return &out
}

func (s *DashboardScreen) Business() *mockdata.BusinessMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.business == nil {
		return nil
	}
	out := *s.business
	return &out
}
