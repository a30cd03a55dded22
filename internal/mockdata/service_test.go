package mockdata

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/agentdojo/swarmdeck/internal/config"
)

// newTestService returns a seeded service with latency and drift
// disabled so tests run fast and deterministically.
func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(config.MockConfig{LatencyScale: 0, MaxDecisions: 50}, nil)
}

func TestGetAgentDecisionsSortedNewestFirst(t *testing.T) {
	s := newTestService(t)

	got, err := s.GetAgentDecisions(context.Background(), DecisionFilter{})
	if err != nil {
		t.Fatalf("get decisions: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 seeded decisions, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Errorf("decisions out of order at %d: %v after %v",
				i, got[i].Timestamp, got[i-1].Timestamp)
		}
	}
}

func TestGetAgentDecisionsFilterByAgent(t *testing.T) {
	s := newTestService(t)

	got, err := s.GetAgentDecisions(context.Background(), DecisionFilter{AgentID: "agent-002"})
	if err != nil {
		t.Fatalf("get decisions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 decisions for agent-002, got %d", len(got))
	}
	// Newest first: id 5 then id 2
	if got[0].ID != "5" || got[1].ID != "2" {
		t.Errorf("expected ids [5 2], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestGetAgentDecisionsDateRange(t *testing.T) {
	s := newTestService(t)

	start := time.Date(2024, 1, 20, 15, 31, 0, 0, time.UTC)
	end := time.Date(2024, 1, 20, 15, 33, 0, 0, time.UTC)
	got, err := s.GetAgentDecisions(context.Background(), DecisionFilter{Start: start, End: end})
	if err != nil {
		t.Fatalf("get decisions: %v", err)
	}
	// Range is inclusive on both ends: ids 2, 3 and 4
	if len(got) != 3 {
		t.Fatalf("expected 3 decisions in range, got %d", len(got))
	}
}

func TestGetDecisionByID(t *testing.T) {
	s := newTestService(t)

	d, err := s.GetDecisionByID(context.Background(), "3")
	if err != nil {
		t.Fatalf("get decision: %v", err)
	}
	if d.Decision != DecisionEscalate {
		t.Errorf("expected escalate, got %s", d.Decision)
	}

	if _, err := s.GetDecisionByID(context.Background(), "999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDecisionStatsIdentity(t *testing.T) {
	s := newTestService(t)

	stats, err := s.GetDecisionStats(context.Background())
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.Total != 5 {
		t.Errorf("expected total 5, got %d", stats.Total)
	}
	if stats.Approved != 2 || stats.Rejected != 1 || stats.Escalated != 1 || stats.Deferred != 1 {
		t.Errorf("unexpected outcome counts: %+v", stats)
	}
	if sum := stats.Approved + stats.Rejected + stats.Escalated + stats.Deferred; sum != stats.Total {
		t.Errorf("outcome counts sum to %d, total is %d", sum, stats.Total)
	}

	as, ok := stats.AgentStats["agent-002"]
	if !ok {
		t.Fatal("expected agent-002 in agent stats")
	}
	if as.Total != 2 {
		t.Errorf("expected 2 decisions for agent-002, got %d", as.Total)
	}
	want := (0.88 + 0.75) / 2
	if diff := as.AvgConfidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected avg confidence %v, got %v", want, as.AvgConfidence)
	}

	if len(stats.HourlyDistribution) != 24 {
		t.Errorf("expected 24 hourly buckets, got %d", len(stats.HourlyDistribution))
	}
	if len(stats.ConfidenceDistribution) != 5 {
		t.Errorf("expected 5 confidence buckets, got %d", len(stats.ConfidenceDistribution))
	}
}

func TestDecisionStatsRealHistograms(t *testing.T) {
	s := New(config.MockConfig{LatencyScale: 0, RealHistograms: true}, nil)

	stats, err := s.GetDecisionStats(context.Background())
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	var counted int
	for _, b := range stats.ConfidenceDistribution {
		counted += b.Count
	}
	if counted != stats.Total {
		t.Errorf("histogram counts %d decisions, total is %d", counted, stats.Total)
	}
}

func TestReadsDoNotMutate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	before, err := s.GetAgentDecisions(ctx, DecisionFilter{})
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := s.GetDecisionStats(ctx); err != nil {
		t.Fatalf("stats read: %v", err)
	}
	if _, err := s.GetDashboardMetrics(ctx); err != nil {
		t.Fatalf("dashboard read: %v", err)
	}
	after, err := s.GetAgentDecisions(ctx, DecisionFilter{})
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	if len(before) != len(after) {
		t.Fatalf("reads changed the collection: %d != %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID {
			t.Errorf("decision %d changed id: %s != %s", i, before[i].ID, after[i].ID)
		}
	}
}

func TestFailureInjection(t *testing.T) {
	s := New(config.MockConfig{LatencyScale: 0, FailureRate: 1}, nil)

	_, err := s.GetAgentDecisions(context.Background(), DecisionFilter{})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestDriftDecision(t *testing.T) {
	s := New(config.MockConfig{LatencyScale: 0, DriftRate: 1, MaxDecisions: 7}, nil)

	d, ok := s.driftDecision()
	if !ok {
		t.Fatal("expected drift at rate 1")
	}
	if d.Confidence < 0.5 || d.Confidence >= 1.0 {
		t.Errorf("confidence %v outside [0.5, 1.0)", d.Confidence)
	}
	roster := map[string]bool{"agent-001": true, "agent-002": true, "agent-003": true, "agent-004": true}
	if !roster[d.AgentID] {
		t.Errorf("agent %s not in roster", d.AgentID)
	}

	got, err := s.GetAgentDecisions(context.Background(), DecisionFilter{})
	if err != nil {
		t.Fatalf("get decisions: %v", err)
	}
	if got[0].ID != d.ID {
		t.Errorf("expected drifted decision newest, got %s", got[0].ID)
	}

	// Grow to the cap, then verify no further growth.
	for s.decisionCount() < 7 {
		if _, ok := s.driftDecision(); !ok {
			t.Fatal("expected drift below cap")
		}
	}
	if _, ok := s.driftDecision(); ok {
		t.Error("expected no drift at cap")
	}
}

func TestDriftDisabledAtZeroRate(t *testing.T) {
	s := newTestService(t)
	if _, ok := s.driftDecision(); ok {
		t.Error("expected no drift at rate 0")
	}
}

func TestUploadTrainingDataLifecycle(t *testing.T) {
	s := newTestService(t)
	s.artifactReadyDelay = 10 * time.Millisecond
	ctx := context.Background()

	a, err := s.UploadTrainingData(ctx, "leads_q1.json", ArtifactDataset, 2048)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if a.Status != ArtifactProcessing {
		t.Errorf("expected processing immediately after upload, got %s", a.Status)
	}

	deadline := time.After(2 * time.Second)
	for {
		all, err := s.GetTrainingData(ctx)
		if err != nil {
			t.Fatalf("get training data: %v", err)
		}
		var found *Artifact
		for i := range all {
			if all[i].ID == a.ID {
				found = &all[i]
			}
		}
		if found == nil {
			t.Fatal("uploaded artifact missing")
		}
		if found.Status == ArtifactReady {
			break
		}
		select {
		case <-deadline:
			t.Fatal("artifact never became ready")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := s.DeleteTrainingData(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteTrainingData(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestSystemLogsCapAndOrder(t *testing.T) {
	s := newTestService(t)

	for i := 0; i < maxLogEntries+10; i++ {
		s.AppendLog(LogInfo, "Test", fmt.Sprintf("entry %d", i), nil)
	}

	got, err := s.GetSystemLogs(context.Background(), LogFilter{})
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	if len(got) != maxLogEntries {
		t.Fatalf("expected cap of %d entries, got %d", maxLogEntries, len(got))
	}
	if got[0].Message != fmt.Sprintf("entry %d", maxLogEntries+9) {
		t.Errorf("expected newest entry first, got %q", got[0].Message)
	}
}

func TestSystemLogsFilter(t *testing.T) {
	s := newTestService(t)

	got, err := s.GetSystemLogs(context.Background(), LogFilter{Level: LogWarning})
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	if len(got) != 1 || got[0].Source != "AgentMonitor" {
		t.Fatalf("expected single seeded warning, got %+v", got)
	}

	got, err = s.GetSystemLogs(context.Background(), LogFilter{Limit: 1})
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected limit of 1 entry, got %d", len(got))
	}
}

func TestDashboardMetrics(t *testing.T) {
	s := newTestService(t)

	m, err := s.GetDashboardMetrics(context.Background())
	if err != nil {
		t.Fatalf("get dashboard metrics: %v", err)
	}
	if m.ActiveSwarms != 1 {
		t.Errorf("expected 1 deployed swarm, got %d", m.ActiveSwarms)
	}
	if m.TotalAgents != 2 {
		t.Errorf("expected 2 agents, got %d", m.TotalAgents)
	}
	if m.DecisionsToday != 5 {
		t.Errorf("expected 5 decisions, got %d", m.DecisionsToday)
	}
	if m.AvgConfidence <= 0 {
		t.Error("expected positive average confidence")
	}
}

func TestBusinessMetrics(t *testing.T) {
	s := newTestService(t)

	m, err := s.GetBusinessMetrics(context.Background())
	if err != nil {
		t.Fatalf("get business metrics: %v", err)
	}
	if m.TotalLeadsProcessed != 45280 {
		t.Errorf("expected 45280 leads processed, got %d", m.TotalLeadsProcessed)
	}
	if m.ConversionRate != 38.5 {
		t.Errorf("expected conversion rate 38.5, got %v", m.ConversionRate)
	}
}
