package view

import (
	"strings"
	"time"

	"github.com/agentdojo/swarmdeck/internal/gateway"
	"github.com/agentdojo/swarmdeck/internal/mockdata"
	"github.com/agentdojo/swarmdeck/internal/swarm"
)

// DecisionQuery is the decisions screen's filter state. Search matches
// case-insensitively across id, agent, outcome and reasoning; the other
// fields are exact; all set criteria must hold. The time range is
// half-open [Start, End).
type DecisionQuery struct {
	Search   string
	AgentID  string
	Decision mockdata.DecisionKind
	Start    time.Time
	End      time.Time
}

// FilterDecisions recomputes the visible decisions from the full
// snapshot. It never mutates its input.
func FilterDecisions(decisions []mockdata.AgentDecision, q DecisionQuery) []mockdata.AgentDecision {
	search := strings.ToLower(q.Search)
	out := make([]mockdata.AgentDecision, 0, len(decisions))
	for _, d := range decisions {
		if search != "" && !matchesSearch(search,
			d.ID, d.AgentID, string(d.Decision), d.Reasoning) {
			continue
		}
		if q.AgentID != "" && d.AgentID != q.AgentID {
			continue
		}
		if q.Decision != "" && d.Decision != q.Decision {
			continue
		}
		if !q.Start.IsZero() && d.Timestamp.Before(q.Start) {
			continue
		}
		if !q.End.IsZero() && !d.Timestamp.Before(q.End) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// SwarmQuery is the management screen's filter state.
type SwarmQuery struct {
	Search string
	Status swarm.Status
}

func FilterSwarms(swarms []swarm.Swarm, q SwarmQuery) []swarm.Swarm {
	search := strings.ToLower(q.Search)
	out := make([]swarm.Swarm, 0, len(swarms))
	for _, s := range swarms {
		if search != "" && !matchesSearch(search, s.Name, s.Goal, s.Description) {
			continue
		}
		if q.Status != "" && s.Status != q.Status {
			continue
		}
		out = append(out, s)
	}
	return out
}

func FilterTools(tools []gateway.Tool, search string) []gateway.Tool {
	search = strings.ToLower(search)
	out := make([]gateway.Tool, 0, len(tools))
	for _, t := range tools {
		if search != "" && !matchesSearch(search, t.Name, t.Description, t.Category) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// matchesSearch reports whether any field contains the lowercased term.
func matchesSearch(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
