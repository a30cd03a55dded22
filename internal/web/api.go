package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agentdojo/swarmdeck/internal/natsbus"
	"github.com/agentdojo/swarmdeck/internal/store"
	"github.com/google/uuid"
)

func (s *Server) registerAPI(mux *http.ServeMux) {
	// Swarms
	mux.HandleFunc("GET /api/swarms", s.listSwarms)
	mux.HandleFunc("POST /api/swarms", s.createSwarm)
	mux.HandleFunc("GET /api/swarms/{id}", s.getSwarm)
	mux.HandleFunc("PUT /api/swarms/{id}", s.updateSwarm)
	mux.HandleFunc("DELETE /api/swarms/{id}", s.deleteSwarm)
	mux.HandleFunc("PATCH /api/swarms/{id}/status", s.updateSwarmStatus)
	mux.HandleFunc("POST /api/swarms/{id}/train", s.trainSwarm)
	mux.HandleFunc("POST /api/swarms/{id}/deploy", s.deploySwarm)
	mux.HandleFunc("POST /api/swarms/{id}/pause", s.pauseSwarm)

	// Tools
	mux.HandleFunc("GET /api/tools", s.listTools)
	mux.HandleFunc("POST /api/tools", s.createTool)
	mux.HandleFunc("GET /api/tools/{id}", s.getTool)
	mux.HandleFunc("PUT /api/tools/{id}", s.updateTool)
	mux.HandleFunc("DELETE /api/tools/{id}", s.deleteTool)

	// System
	mux.HandleFunc("GET /api/status", s.getStatus)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func (s *Server) listSwarms(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListSwarms(r.URL.Query().Get("status"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []store.SwarmRecord{}
	}
	jsonResponse(w, records)
}

func (s *Server) createSwarm(w http.ResponseWriter, r *http.Request) {
	var rec store.SwarmRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if rec.Name == "" {
		jsonError(w, "name is required", http.StatusUnprocessableEntity)
		return
	}

	created, err := s.store.CreateSwarm(&rec)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.publishSwarmEvent(created)
	jsonResponse(w, created)
}

func (s *Server) getSwarm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, "invalid swarm id", http.StatusBadRequest)
		return
	}

	rec, err := s.store.GetSwarm(id)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonError(w, "Swarm not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, rec)
}

func (s *Server) updateSwarm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, "invalid swarm id", http.StatusBadRequest)
		return
	}

	var rec store.SwarmRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := s.store.UpdateSwarm(id, &rec)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if updated == nil {
		jsonError(w, "Swarm not found", http.StatusNotFound)
		return
	}
	s.publishSwarmEvent(updated)
	jsonResponse(w, updated)
}

func (s *Server) deleteSwarm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, "invalid swarm id", http.StatusBadRequest)
		return
	}

	deleted, err := s.store.DeleteSwarm(id)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		jsonError(w, "Swarm not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, map[string]string{"message": "Swarm deleted"})
}

func (s *Server) updateSwarmStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, "invalid swarm id", http.StatusBadRequest)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		jsonError(w, "status is required", http.StatusUnprocessableEntity)
		return
	}

	s.setStatus(w, id, body.Status)
}

func (s *Server) deploySwarm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, "invalid swarm id", http.StatusBadRequest)
		return
	}
	s.setStatus(w, id, "deployed")
}

func (s *Server) pauseSwarm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, "invalid swarm id", http.StatusBadRequest)
		return
	}
	s.setStatus(w, id, "inactive")
}

func (s *Server) setStatus(w http.ResponseWriter, id int64, status string) {
	updated, err := s.store.UpdateSwarmStatus(id, status)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if updated == nil {
		jsonError(w, "Swarm not found", http.StatusNotFound)
		return
	}
	s.publishSwarmEvent(updated)
	jsonResponse(w, updated)
}

func (s *Server) trainSwarm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, "invalid swarm id", http.StatusBadRequest)
		return
	}

	rec, err := s.store.UpdateSwarmStatus(id, "training")
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonError(w, "Swarm not found", http.StatusNotFound)
		return
	}
	s.publishSwarmEvent(rec)

	jsonResponse(w, map[string]any{
		"swarm_id":                  id,
		"status":                    "training",
		"message":                   fmt.Sprintf("Training started for swarm %d", id),
		"training_job_id":           uuid.New().String(),
		"estimated_completion_time": time.Now().Add(5 * time.Minute).UTC().Format(time.RFC3339),
	})
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListTools(r.URL.Query().Get("category"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []store.ToolRecord{}
	}
	jsonResponse(w, records)
}

func (s *Server) createTool(w http.ResponseWriter, r *http.Request) {
	var rec store.ToolRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if rec.Name == "" {
		jsonError(w, "name is required", http.StatusUnprocessableEntity)
		return
	}
	if len(rec.Parameters) > 0 && !json.Valid(rec.Parameters) {
		jsonError(w, "parameters must be valid JSON", http.StatusUnprocessableEntity)
		return
	}

	created, err := s.store.CreateTool(&rec)
	if err != nil {
		jsonError(w, err.Error(), http.StatusConflict)
		return
	}
	jsonResponse(w, created)
}

func (s *Server) getTool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, "invalid tool id", http.StatusBadRequest)
		return
	}

	rec, err := s.store.GetTool(id)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonError(w, "Tool not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, rec)
}

func (s *Server) updateTool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, "invalid tool id", http.StatusBadRequest)
		return
	}

	var rec store.ToolRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := s.store.UpdateTool(id, &rec)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if updated == nil {
		jsonError(w, "Tool not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, updated)
}

func (s *Server) deleteTool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, "invalid tool id", http.StatusBadRequest)
		return
	}

	deleted, err := s.store.DeleteTool(id)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		jsonError(w, "Tool not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, map[string]string{"message": "Tool deleted"})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]any{
		"version":    s.version,
		"uptime":     time.Since(s.startedAt).Round(time.Second).String(),
		"ws_clients": s.hub.Count(),
	})
}

func (s *Server) publishSwarmEvent(rec *store.SwarmRecord) {
	if s.nats == nil {
		return
	}
	id := strconv.FormatInt(rec.ID, 10)
	_ = s.nats.PublishJSON(natsbus.TopicSwarmLifecycle(id), rec)
}

func jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// jsonError matches the platform's error envelope, which clients read
// from the detail field.
func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"detail": msg})
}
