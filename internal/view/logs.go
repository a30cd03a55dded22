package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/agentdojo/swarmdeck/internal/appstate"
	"github.com/agentdojo/swarmdeck/internal/mockdata"
)

const loadingLogs = "logs"

// LogsScreen is the system log viewer with level and source filters.
type LogsScreen struct {
	svc    *mockdata.Service
	state  *appstate.Store
	logger *slog.Logger

	mu     sync.Mutex
	logs   []mockdata.SystemLog
	filter mockdata.LogFilter
}

func NewLogsScreen(svc *mockdata.Service, state *appstate.Store, logger *slog.Logger) *LogsScreen {
	return &LogsScreen{svc: svc, state: state, logger: logger}
}

// SetFilter changes the server-side filter; Load must be called to take
// effect.
func (s *LogsScreen) SetFilter(f mockdata.LogFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

func (s *LogsScreen) Load(ctx context.Context) error {
	s.state.SetLoading(loadingLogs, true)
	defer s.state.SetLoading(loadingLogs, false)

	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()

	logs, err := s.svc.GetSystemLogs(ctx, filter)
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to load system logs")
		return fmt.Errorf("load logs: %w", err)
	}

	s.mu.Lock()
	s.logs = logs
	s.mu.Unlock()
	return nil
}

func (s *LogsScreen) Logs() []mockdata.SystemLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mockdata.SystemLog, len(s.logs))
	copy(out, s.logs)
	return out
}
