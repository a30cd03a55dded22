// Package web is the development backend: a small REST service over the
// sqlite store that speaks the same wire protocol as the production
// swarm platform, so the dashboard's gateway can be pointed at it.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/agentdojo/swarmdeck/internal/config"
	"github.com/agentdojo/swarmdeck/internal/natsbus"
	"github.com/agentdojo/swarmdeck/internal/store"
)

type Server struct {
	store     *store.Store
	bus       *natsbus.Bus
	nats      *natsbus.Client
	hub       *Hub
	cfg       config.BackendConfig
	version   string
	startedAt time.Time
}

// NewServer wires the backend together. bus may be nil; events are then
// simply not pushed to websocket clients.
func NewServer(s *store.Store, bus *natsbus.Bus, cfg config.BackendConfig, version string) *Server {
	return &Server{
		store:     s,
		bus:       bus,
		hub:       NewHub(),
		cfg:       cfg,
		version:   version,
		startedAt: time.Now(),
	}
}

func (s *Server) Start(ctx context.Context) error {
	go s.hub.Run(ctx)
	s.subscribeEvents()

	mux := http.NewServeMux()
	s.registerAPI(mux)
	mux.HandleFunc("/api/ws", s.handleWebSocket)

	handler := s.withMiddleware(mux)
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	server := &http.Server{Addr: addr, Handler: handler}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	slog.Info("backend listening", "addr", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS: the dashboard dev server runs on a different port
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) subscribeEvents() {
	if s.bus == nil {
		return
	}
	client, err := natsbus.NewClient(s.bus)
	if err != nil {
		slog.Error("backend nats client failed", "error", err)
		return
	}
	s.nats = client

	// Forward all event topics to WebSocket clients
	_, _ = client.Subscribe(natsbus.TopicEventsAll, func(subject string, data []byte) {
		var payload any
		if err := json.Unmarshal(data, &payload); err != nil {
			slog.Warn("invalid event payload", "error", err)
			return
		}
		s.hub.Broadcast(Event{Type: subject, Payload: payload})
	})
}
