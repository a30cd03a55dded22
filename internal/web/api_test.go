package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/agentdojo/swarmdeck/internal/config"
	"github.com/agentdojo/swarmdeck/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.New(config.BackendConfig{
		StorePath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	srv := NewServer(st, nil, config.BackendConfig{}, "test")
	mux := http.NewServeMux()
	srv.registerAPI(mux)

	ts := httptest.NewServer(srv.withMiddleware(mux))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func TestSwarmEndpoints(t *testing.T) {
	ts := newTestServer(t)

	var created store.SwarmRecord
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/swarms", map[string]any{
		"name":        "Lead Qualification",
		"description": "Qualifies inbound leads",
		"config":      map[string]any{"goal": "qualify leads"},
	}, &created)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status %d", resp.StatusCode)
	}
	if created.ID == 0 || created.Status != "draft" {
		t.Fatalf("unexpected created record: %+v", created)
	}

	var listed []store.SwarmRecord
	doJSON(t, http.MethodGet, ts.URL+"/api/swarms", nil, &listed)
	if len(listed) != 1 {
		t.Fatalf("expected 1 swarm, got %d", len(listed))
	}

	var updated store.SwarmRecord
	resp = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/swarms/%d/status", ts.URL, created.ID),
		map[string]string{"status": "deployed"}, &updated)
	if resp.StatusCode != http.StatusOK || updated.Status != "deployed" {
		t.Fatalf("status update failed: %d %+v", resp.StatusCode, updated)
	}

	var filtered []store.SwarmRecord
	doJSON(t, http.MethodGet, ts.URL+"/api/swarms?status=deployed", nil, &filtered)
	if len(filtered) != 1 {
		t.Fatalf("expected 1 deployed swarm, got %d", len(filtered))
	}

	var paused store.SwarmRecord
	doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/swarms/%d/pause", ts.URL, created.ID), nil, &paused)
	if paused.Status != "inactive" {
		t.Errorf("expected inactive after pause, got %q", paused.Status)
	}

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/swarms/%d", ts.URL, created.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status %d", resp.StatusCode)
	}
}

func TestErrorEnvelope(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/swarms/999", nil, &body)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body["detail"] != "Swarm not found" {
		t.Errorf("expected detail field, got %v", body)
	}
}

func TestCreateSwarmRequiresName(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/swarms", map[string]any{"description": "no name"}, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestTrainEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var created store.SwarmRecord
	doJSON(t, http.MethodPost, ts.URL+"/api/swarms", map[string]any{"name": "Trainee"}, &created)

	var train map[string]any
	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/swarms/%d/train", ts.URL, created.ID),
		map[string]any{"epochs": 5}, &train)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("train status %d", resp.StatusCode)
	}
	if train["training_job_id"] == "" {
		t.Error("expected training job id")
	}
	if train["status"] != "training" {
		t.Errorf("expected training status, got %v", train["status"])
	}

	var got store.SwarmRecord
	doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/swarms/%d", ts.URL, created.ID), nil, &got)
	if got.Status != "training" {
		t.Errorf("expected swarm training, got %q", got.Status)
	}
}

func TestToolEndpoints(t *testing.T) {
	ts := newTestServer(t)

	var created store.ToolRecord
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/tools", map[string]any{
		"name":        "crm_integration",
		"description": "Reads and writes CRM records",
		"category":    "crm",
	}, &created)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status %d", resp.StatusCode)
	}

	// Duplicate name conflicts
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/tools", map[string]any{"name": "crm_integration"}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate, got %d", resp.StatusCode)
	}

	var byCat []store.ToolRecord
	doJSON(t, http.MethodGet, ts.URL+"/api/tools?category=crm", nil, &byCat)
	if len(byCat) != 1 {
		t.Fatalf("expected 1 tool in category, got %d", len(byCat))
	}

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/tools/%d", ts.URL, created.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status %d", resp.StatusCode)
	}
}
