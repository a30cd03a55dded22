package swarm

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusReady, StatusDeployed, true},
		{StatusDeployed, StatusInactive, true},
		{StatusInactive, StatusDeployed, true},
		{StatusTraining, StatusDeployed, false},
		{StatusError, StatusReady, false},
		{StatusDeployed, StatusReady, false},
		{StatusReady, StatusInactive, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestPatchApply(t *testing.T) {
	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	s := Swarm{
		ID:          "s1",
		Name:        "Lead Qualifier",
		Goal:        "qualify leads",
		Description: "original",
		Status:      StatusReady,
		Tools:       []string{"crm_integration"},
		Created:     created,
		Modified:    created,
	}

	name := "Enterprise Qualifier"
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	got := Patch{Name: &name, Tools: []string{"crm_integration", "lead_scorer"}}.Apply(s, now)

	if got.Name != "Enterprise Qualifier" {
		t.Errorf("expected patched name, got %s", got.Name)
	}
	if len(got.Tools) != 2 {
		t.Errorf("expected 2 tools, got %d", len(got.Tools))
	}
	if got.Description != "original" {
		t.Errorf("nil fields must be untouched, got %s", got.Description)
	}
	if !got.Modified.Equal(now) {
		t.Errorf("expected modified stamp %v, got %v", now, got.Modified)
	}
	// Source value is unchanged
	if s.Name != "Lead Qualifier" {
		t.Errorf("patch must not mutate its input, got %s", s.Name)
	}
}

func TestDeployedVersionCount(t *testing.T) {
	s := Swarm{Versions: []Version{
		{ID: "v1", Status: VersionDeployed},
		{ID: "v2", Status: VersionArchived},
		{ID: "v3", Status: VersionActive},
	}}
	if got := s.DeployedVersionCount(); got != 1 {
		t.Errorf("expected 1 deployed version, got %d", got)
	}
}
