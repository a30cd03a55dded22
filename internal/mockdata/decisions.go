package mockdata

import (
	"context"
	"sort"
	"time"
)

type DecisionKind string

const (
	DecisionApprove  DecisionKind = "APPROVE"
	DecisionReject   DecisionKind = "REJECT"
	DecisionEscalate DecisionKind = "ESCALATE"
	DecisionDefer    DecisionKind = "DEFER"
)

// AgentDecision is immutable once created; the service synthesizes new
// ones but never mutates existing records.
type AgentDecision struct {
	ID         string         `json:"id"`
	AgentID    string         `json:"agentId"`
	Timestamp  time.Time      `json:"timestamp"`
	Decision   DecisionKind   `json:"decision"`
	Confidence float64        `json:"confidence"`
	Reasoning  string         `json:"reasoning"`
	Input      map[string]any `json:"input"`
	Output     map[string]any `json:"output"`
}

// DecisionFilter narrows GetAgentDecisions results. Zero values match
// everything; the time range is inclusive on both ends to mirror the
// backend contract.
type DecisionFilter struct {
	AgentID string
	Start   time.Time
	End     time.Time
}

// GetAgentDecisions returns the filtered collection sorted newest first.
// Each response is an authoritative full replacement: the generator may
// have grown and reordered the underlying set between polls.
func (s *Service) GetAgentDecisions(ctx context.Context, f DecisionFilter) ([]AgentDecision, error) {
	if err := s.delay(ctx, 400*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("get decisions"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	results := make([]AgentDecision, 0, len(s.decisions))
	for _, d := range s.decisions {
		if f.AgentID != "" && d.AgentID != f.AgentID {
			continue
		}
		if !f.Start.IsZero() && d.Timestamp.Before(f.Start) {
			continue
		}
		if !f.End.IsZero() && d.Timestamp.After(f.End) {
			continue
		}
		results = append(results, d)
	}
	s.mu.Unlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.After(results[j].Timestamp)
	})
	return results, nil
}

func (s *Service) GetDecisionByID(ctx context.Context, id string) (*AgentDecision, error) {
	if err := s.delay(ctx, 200*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("get decision"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.decisions {
		if d.ID == id {
			out := d
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// insertDecision prepends a decision; used by the drift generator.
func (s *Service) insertDecision(d AgentDecision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = append([]AgentDecision{d}, s.decisions...)
}

func (s *Service) decisionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decisions)
}

type AgentStat struct {
	Total         int                  `json:"total"`
	AvgConfidence float64              `json:"avgConfidence"`
	Decisions     map[DecisionKind]int `json:"decisions"`
}

type HourBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type ConfidenceBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type DecisionStats struct {
	Total         int                  `json:"total"`
	Approved      int                  `json:"approved"`
	Rejected      int                  `json:"rejected"`
	Escalated     int                  `json:"escalated"`
	Deferred      int                  `json:"deferred"`
	AvgConfidence float64              `json:"avgConfidence"`
	AgentStats    map[string]AgentStat `json:"agentStats"`
	// HourlyDistribution and ConfidenceDistribution are synthetic demo
	// data unless real histograms are enabled; see syntheticHourly.
	HourlyDistribution     []HourBucket       `json:"hourlyDistribution"`
	ConfidenceDistribution []ConfidenceBucket `json:"confidenceDistribution"`
}

// GetDecisionStats computes aggregates fresh over the current full
// decision collection. The identity approved+rejected+escalated+deferred
// == total always holds for a frozen collection.
func (s *Service) GetDecisionStats(ctx context.Context) (*DecisionStats, error) {
	if err := s.delay(ctx, 300*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("get decision stats"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	decisions := make([]AgentDecision, len(s.decisions))
	copy(decisions, s.decisions)
	s.mu.Unlock()

	stats := &DecisionStats{
		Total:      len(decisions),
		AgentStats: make(map[string]AgentStat),
	}

	var confidenceSum float64
	for _, d := range decisions {
		switch d.Decision {
		case DecisionApprove:
			stats.Approved++
		case DecisionReject:
			stats.Rejected++
		case DecisionEscalate:
			stats.Escalated++
		case DecisionDefer:
			stats.Deferred++
		}
		confidenceSum += d.Confidence

		as := stats.AgentStats[d.AgentID]
		if as.Decisions == nil {
			as.Decisions = make(map[DecisionKind]int)
		}
		as.Total++
		as.AvgConfidence += d.Confidence
		as.Decisions[d.Decision]++
		stats.AgentStats[d.AgentID] = as
	}

	if stats.Total > 0 {
		stats.AvgConfidence = confidenceSum / float64(stats.Total)
	}
	for id, as := range stats.AgentStats {
		as.AvgConfidence /= float64(as.Total)
		stats.AgentStats[id] = as
	}

	stats.HourlyDistribution = s.syntheticHourly()
	if s.cfg.RealHistograms {
		stats.ConfidenceDistribution = confidenceHistogram(decisions)
	} else {
		stats.ConfidenceDistribution = syntheticConfidenceBuckets()
	}

	return stats, nil
}

// syntheticHourly fabricates a 24-bucket distribution for the demo
// charts; it is deliberately independent of the real decision set.
func (s *Service) syntheticHourly() []HourBucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	buckets := make([]HourBucket, 24)
	for h := range buckets {
		buckets[h] = HourBucket{Hour: h, Count: s.rng.IntN(20) + 5}
	}
	return buckets
}

func syntheticConfidenceBuckets() []ConfidenceBucket {
	return []ConfidenceBucket{
		{Range: "0-20%", Count: 2},
		{Range: "20-40%", Count: 5},
		{Range: "40-60%", Count: 8},
		{Range: "60-80%", Count: 15},
		{Range: "80-100%", Count: 25},
	}
}

func confidenceHistogram(decisions []AgentDecision) []ConfidenceBucket {
	buckets := []ConfidenceBucket{
		{Range: "0-20%"}, {Range: "20-40%"}, {Range: "40-60%"},
		{Range: "60-80%"}, {Range: "80-100%"},
	}
	for _, d := range decisions {
		idx := int(d.Confidence * 5)
		if idx > 4 {
			idx = 4
		}
		if idx < 0 {
			idx = 0
		}
		buckets[idx].Count++
	}
	return buckets
}
