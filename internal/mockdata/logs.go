package mockdata

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type LogLevel string

const (
	LogInfo    LogLevel = "info"
	LogWarning LogLevel = "warning"
	LogError   LogLevel = "error"
	LogDebug   LogLevel = "debug"
)

type SystemLog struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Level     LogLevel       `json:"level"`
	Source    string         `json:"source"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}

// LogFilter narrows GetSystemLogs results. A zero Limit means no limit.
type LogFilter struct {
	Level  LogLevel
	Source string
	Limit  int
}

// GetSystemLogs returns logs newest first. The collection is already
// kept in that order by AppendLog.
func (s *Service) GetSystemLogs(ctx context.Context, f LogFilter) ([]SystemLog, error) {
	if err := s.delay(ctx, 300*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("get system logs"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SystemLog, 0, len(s.logs))
	for _, l := range s.logs {
		if f.Level != "" && l.Level != f.Level {
			continue
		}
		if f.Source != "" && l.Source != f.Source {
			continue
		}
		out = append(out, l)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// AppendLog prepends a log entry and trims the collection to its cap,
// evicting the oldest entries.
func (s *Service) AppendLog(level LogLevel, source, message string, details map[string]any) SystemLog {
	l := SystemLog{
		ID:        uuid.New().String(),
		Timestamp: s.now(),
		Level:     level,
		Source:    source,
		Message:   message,
		Details:   details,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append([]SystemLog{l}, s.logs...)
	if len(s.logs) > maxLogEntries {
		s.logs = s.logs[:maxLogEntries]
	}
	return l
}
