package mockdata

import (
	"context"
	"log/slog"
	"time"

	"github.com/agentdojo/swarmdeck/internal/natsbus"
	"github.com/google/uuid"
)

// Generator is the only source of autonomous change in the mock data:
// read operations never mutate collections, so two polls with no
// generator running return identical data. Each tick rolls the drift
// rate and, on success, synthesizes one new agent decision.
type Generator struct {
	svc      *Service
	logger   *slog.Logger
	interval time.Duration
	reloadCh chan struct{}
}

func NewGenerator(svc *Service, logger *slog.Logger) *Generator {
	return &Generator{
		svc:      svc,
		logger:   logger,
		interval: svc.cfg.DriftInterval,
		reloadCh: make(chan struct{}, 1),
	}
}

// Reload signals the generator to pick up a changed interval.
func (g *Generator) Reload(interval time.Duration) {
	g.interval = interval
	select {
	case g.reloadCh <- struct{}{}:
	default:
	}
}

// Run ticks until the context is cancelled. Safe to skip entirely when
// the drift rate is zero.
func (g *Generator) Run(ctx context.Context) {
	if g.interval <= 0 {
		g.logger.Info("drift generator disabled")
		return
	}

	g.logger.Info("drift generator started", "interval", g.interval)
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.logger.Info("drift generator stopped")
			return
		case <-g.reloadCh:
			ticker.Reset(g.interval)
			g.logger.Info("drift generator reloaded", "interval", g.interval)
		case <-ticker.C:
			g.tick()
		}
	}
}

func (g *Generator) tick() {
	if d, ok := g.svc.driftDecision(); ok {
		g.logger.Debug("synthesized decision",
			"id", d.ID, "agent", d.AgentID, "decision", d.Decision)
	}
}

// driftAgents is the fixed roster new decisions are attributed to.
var driftAgents = []string{"agent-001", "agent-002", "agent-003", "agent-004"}

var driftReasonings = map[DecisionKind]string{
	DecisionApprove:  "Automated checks passed within tolerance.",
	DecisionReject:   "Input failed one or more validation rules.",
	DecisionEscalate: "Confidence below autonomy threshold. Human review required.",
	DecisionDefer:    "Waiting on upstream data before deciding.",
}

// driftDecision rolls the drift rate and, on success, prepends one new
// decision. The collection is capped; beyond the cap no new decisions
// are created so aggregates stay stable.
func (s *Service) driftDecision() (AgentDecision, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.DriftRate <= 0 || s.rng.Float64() >= s.cfg.DriftRate {
		return AgentDecision{}, false
	}
	if s.cfg.MaxDecisions > 0 && len(s.decisions) >= s.cfg.MaxDecisions {
		return AgentDecision{}, false
	}

	kinds := []DecisionKind{DecisionApprove, DecisionReject, DecisionEscalate, DecisionDefer}
	kind := kinds[s.rng.IntN(len(kinds))]
	d := AgentDecision{
		ID:         uuid.New().String(),
		AgentID:    driftAgents[s.rng.IntN(len(driftAgents))],
		Timestamp:  s.now(),
		Decision:   kind,
		Confidence: 0.5 + s.rng.Float64()*0.5,
		Reasoning:  driftReasonings[kind],
		Input:      map[string]any{"request": "process_lead", "leadScore": s.rng.IntN(100)},
		Output:     map[string]any{"status": string(kind)},
	}
	s.decisions = append([]AgentDecision{d}, s.decisions...)

	if s.bus != nil {
		_ = s.bus.PublishJSON(natsbus.TopicEventsDecision, d)
	}
	return d, true
}
