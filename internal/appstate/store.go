// Package appstate holds process-wide dashboard state: the current user,
// theme, sidebar flag, the transient notification queue and per-screen
// loading flags. A single Store is created at startup and injected into
// every controller; there are no package-level singletons.
package appstate

import (
	"context"
	"sync"
	"time"

	"github.com/agentdojo/swarmdeck/internal/natsbus"
	"github.com/google/uuid"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyInfo    NotificationType = "info"
	NotifyWarning NotificationType = "warning"
)

type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
}

// Store is safe for concurrent use. Every mutation replaces a single key
// under the lock, so readers never observe a torn state; the last writer
// to a key wins.
type Store struct {
	mu            sync.RWMutex
	user          *User
	theme         Theme
	sidebarClosed bool
	notifications []Notification
	loading       map[string]bool

	ttl time.Duration
	bus *natsbus.Client
	now func() time.Time
}

// New creates a store with the given notification TTL. A zero TTL keeps
// notifications until they are removed explicitly. bus may be nil.
func New(ttl time.Duration, bus *natsbus.Client) *Store {
	return &Store{
		theme:   ThemeLight,
		loading: make(map[string]bool),
		ttl:     ttl,
		bus:     bus,
		now:     time.Now,
	}
}

func (s *Store) SetUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == ThemeLight {
		s.theme = ThemeDark
	} else {
		s.theme = ThemeLight
	}
	return s.theme
}

func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *Store) ToggleSidebar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarClosed = !s.sidebarClosed
	return s.sidebarClosed
}

func (s *Store) SidebarCollapsed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarClosed
}

// AddNotification queues a notification with a generated id and current
// timestamp and returns it.
func (s *Store) AddNotification(kind NotificationType, message string) Notification {
	n := Notification{
		ID:        uuid.New().String(),
		Type:      kind,
		Message:   message,
		Timestamp: s.now(),
	}

	s.mu.Lock()
	s.notifications = append(s.notifications, n)
	s.mu.Unlock()

	if s.bus != nil {
		_ = s.bus.PublishJSON(natsbus.TopicEventsNotify, n)
	}
	return n
}

func (s *Store) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

func (s *Store) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Store) SetLoading(key string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading[key] = value
}

func (s *Store) Loading(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading[key]
}

// StartJanitor expires notifications older than the TTL. It returns
// immediately when no TTL is configured.
func (s *Store) StartJanitor(ctx context.Context) {
	if s.ttl == 0 {
		return
	}

	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.expire()
		}
	}
}

func (s *Store) expire() {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.Timestamp.After(cutoff) {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
}
