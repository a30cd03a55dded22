package mockdata

import (
	"context"
	"time"

	"github.com/agentdojo/swarmdeck/internal/swarm"
)

// BusinessMetrics summarizes lead-pipeline outcomes across all swarms.
type BusinessMetrics struct {
	TotalLeadsProcessed  int     `json:"totalLeadsProcessed"`
	QualifiedLeads       int     `json:"qualifiedLeads"`
	ConversionRate       float64 `json:"conversionRate"`
	AvgResponseTime      float64 `json:"avgResponseTime"`
	CustomerSatisfaction float64 `json:"customerSatisfaction"`
	RevenueImpact        float64 `json:"revenueImpact"`
}

// DashboardMetrics is the landing-screen snapshot.
type DashboardMetrics struct {
	ActiveSwarms   int         `json:"activeSwarms"`
	TotalAgents    int         `json:"totalAgents"`
	DecisionsToday int         `json:"decisionsToday"`
	AvgConfidence  float64     `json:"avgConfidence"`
	RecentLogs     []SystemLog `json:"recentLogs"`
}

func (s *Service) GetBusinessMetrics(ctx context.Context) (*BusinessMetrics, error) {
	if err := s.delay(ctx, 400*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("get business metrics"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := &BusinessMetrics{}
	var satSum, respSum, convSum float64
	var counted int
	for _, sw := range s.swarms {
		m.TotalLeadsProcessed += sw.Performance.TotalProcessed
		if sw.Performance.TotalProcessed > 0 {
			satSum += sw.Performance.CustomerSatisfaction
			respSum += sw.Performance.AvgResponseTime
			convSum += sw.Performance.LeadConversion
			counted++
		}
	}
	if counted > 0 {
		m.CustomerSatisfaction = satSum / float64(counted)
		m.AvgResponseTime = respSum / float64(counted)
		m.ConversionRate = convSum / float64(counted)
	}
	m.QualifiedLeads = int(float64(m.TotalLeadsProcessed) * m.ConversionRate / 100)
	m.RevenueImpact = float64(m.QualifiedLeads) * 1250
	return m, nil
}

// GetDashboardMetrics aggregates the landing-screen numbers. Each call
// has a chance of appending a synthetic log entry, so a polling
// dashboard sees the activity feed move.
func (s *Service) GetDashboardMetrics(ctx context.Context) (*DashboardMetrics, error) {
	if err := s.delay(ctx, 500*time.Millisecond); err != nil {
		return nil, err
	}
	if err := s.maybeFail("get dashboard metrics"); err != nil {
		return nil, err
	}

	s.maybeInjectLog()

	s.mu.Lock()
	defer s.mu.Unlock()

	m := &DashboardMetrics{
		DecisionsToday: len(s.decisions),
	}
	for _, sw := range s.swarms {
		if sw.Status == swarm.StatusDeployed {
			m.ActiveSwarms++
		}
		m.TotalAgents += len(sw.Agents)
	}
	var confSum float64
	for _, d := range s.decisions {
		confSum += d.Confidence
	}
	if len(s.decisions) > 0 {
		m.AvgConfidence = confSum / float64(len(s.decisions))
	}

	limit := 10
	if len(s.logs) < limit {
		limit = len(s.logs)
	}
	m.RecentLogs = make([]SystemLog, limit)
	copy(m.RecentLogs, s.logs[:limit])
	return m, nil
}

var injectedLogs = []struct {
	level   LogLevel
	source  string
	message string
}{
	{LogInfo, "SwarmManager", "Health check passed for all deployed swarms"},
	{LogInfo, "DecisionEngine", "Decision batch processed"},
	{LogDebug, "AgentMonitor", "Heartbeat received from all agents"},
	{LogWarning, "RateLimiter", "Approaching API rate limit for enrichment provider"},
}

// maybeInjectLog occasionally fabricates a log entry to keep the feed
// alive. Disabled along with drift when the drift rate is zero.
func (s *Service) maybeInjectLog() {
	s.mu.Lock()
	rate := s.cfg.DriftRate
	var pick int
	var roll float64
	if rate > 0 {
		roll = s.rng.Float64()
		pick = s.rng.IntN(len(injectedLogs))
	}
	s.mu.Unlock()

	if rate <= 0 || roll >= rate {
		return
	}
	entry := injectedLogs[pick]
	s.AppendLog(entry.level, entry.source, entry.message, nil)
}
