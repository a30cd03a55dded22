package store

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/agentdojo/swarmdeck/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(config.BackendConfig{
		StorePath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSwarmCRUD(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateSwarm(&SwarmRecord{
		Name:        "Lead Qualification",
		Description: "Qualifies inbound leads",
		Config:      json.RawMessage(`{"goal":"qualify leads"}`),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected assigned id")
	}
	if created.Status != "draft" {
		t.Errorf("expected default status draft, got %q", created.Status)
	}
	if string(created.Agents) != `[]` {
		t.Errorf("expected default agents [], got %s", created.Agents)
	}

	got, err := s.GetSwarm(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != "Lead Qualification" {
		t.Fatalf("unexpected record: %+v", got)
	}

	got.Status = "deployed"
	updated, err := s.UpdateSwarm(created.ID, got)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != "deployed" {
		t.Errorf("expected deployed, got %q", updated.Status)
	}

	deleted, err := s.DeleteSwarm(created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Error("expected delete to report a removed row")
	}

	got, err = s.GetSwarm(created.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestListSwarmsStatusFilter(t *testing.T) {
	s := newTestStore(t)

	for _, rec := range []SwarmRecord{
		{Name: "A", Status: "deployed"},
		{Name: "B", Status: "draft"},
		{Name: "C", Status: "deployed"},
	} {
		if _, err := s.CreateSwarm(&rec); err != nil {
			t.Fatalf("create %s: %v", rec.Name, err)
		}
	}

	all, err := s.ListSwarms("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 swarms, got %d", len(all))
	}

	deployed, err := s.ListSwarms("deployed")
	if err != nil {
		t.Fatalf("list deployed: %v", err)
	}
	if len(deployed) != 2 {
		t.Fatalf("expected 2 deployed swarms, got %d", len(deployed))
	}
}

func TestUpdateSwarmStatus(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateSwarm(&SwarmRecord{Name: "A"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := s.UpdateSwarmStatus(created.ID, "deployed")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != "deployed" {
		t.Errorf("expected deployed, got %q", updated.Status)
	}

	missing, err := s.UpdateSwarmStatus(9999, "deployed")
	if err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestToolCRUD(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateTool(&ToolRecord{
		Name:        "lead_scorer",
		Description: "Scores leads against the qualification model",
		Category:    "scoring",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if string(created.Parameters) != `{}` {
		t.Errorf("expected default parameters {}, got %s", created.Parameters)
	}

	// Duplicate names are rejected by the schema.
	if _, err := s.CreateTool(&ToolRecord{Name: "lead_scorer"}); err == nil {
		t.Error("expected unique constraint error")
	}

	byCat, err := s.ListTools("scoring")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byCat) != 1 || byCat[0].Name != "lead_scorer" {
		t.Fatalf("unexpected tools: %+v", byCat)
	}

	desc := "updated"
	created.Description = desc
	updated, err := s.UpdateTool(created.ID, created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != desc {
		t.Errorf("expected updated description, got %q", updated.Description)
	}

	deleted, err := s.DeleteTool(created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Error("expected delete to report a removed row")
	}
}
