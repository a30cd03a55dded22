package mockdata

import (
	"time"

	"github.com/agentdojo/swarmdeck/internal/swarm"
)

func ts(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// seed installs the demo collections the dashboard starts from.
func (s *Service) seed() {
	s.swarms = []swarm.Swarm{
		{
			ID:          "1",
			Name:        "Enterprise Lead Qualification",
			Goal:        "Qualify and prioritize enterprise leads for sales team engagement",
			Description: "Multi-agent swarm that researches, scores, and qualifies enterprise leads",
			Status:      swarm.StatusDeployed,
			Tools:       []string{"crm_integration", "lead_scorer", "data_enrichment", "sentiment_analyzer"},
			Dataset: swarm.TrainingDataset{
				ID:          "ds_001",
				Name:        "Enterprise Sales Dataset v2.3",
				Size:        52000,
				LastUpdated: ts("2024-01-20T10:00:00Z"),
			},
			EventTriggers: []swarm.EventTrigger{
				{
					ID:      "tr_001",
					Name:    "Enterprise Form Submitted",
					Type:    swarm.TriggerProspectAction,
					SubType: "form_submitted",
					Conditions: map[string]any{
						"formType": "enterprise_quote",
						"minValue": 50000,
					},
					Enabled: true,
				},
			},
			Agents: []swarm.Agent{
				{
					ID:           "ag_001",
					Name:         "Lead Researcher",
					Role:         "Research Analyst",
					Model:        "GPT-4",
					Instructions: "Research company background, industry position, and growth potential.",
					Tools:        []string{"data_enrichment", "sentiment_analyzer"},
					Capabilities: []string{"Company research", "Industry analysis"},
				},
				{
					ID:           "ag_002",
					Name:         "Qualification Expert",
					Role:         "Lead Qualifier",
					Model:        "Claude-3",
					Instructions: "Evaluate lead quality based on BANT criteria.",
					Tools:        []string{"crm_integration", "lead_scorer"},
					Capabilities: []string{"Score calculation", "BANT qualification"},
				},
			},
			Performance: swarm.Performance{
				TotalProcessed:       45280,
				SuccessRate:          92.5,
				AvgResponseTime:      1.8,
				LeadConversion:       38.5,
				CustomerSatisfaction: 4.7,
			},
			Deployment: swarm.DeploymentInfo{
				Environment:  "production",
				Resources:    "2 vCPU, 4GB RAM",
				LastDeployed: ptr(ts("2024-01-25T15:30:00Z")),
			},
			Created:  ts("2024-01-10T08:00:00Z"),
			Modified: ts("2024-01-25T15:30:00Z"),
		},
		{
			ID:          "2",
			Name:        "Renewal Outreach",
			Goal:        "Contact customers ahead of policy renewal dates",
			Description: "Development swarm for renewal reminder workflows",
			Status:      swarm.StatusReady,
			Tools:       []string{"email_sender", "calendar_scheduler"},
			Dataset: swarm.TrainingDataset{
				ID:          "ds_002",
				Name:        "Renewal History 2023",
				Size:        18000,
				LastUpdated: ts("2024-01-15T09:00:00Z"),
			},
			Agents: []swarm.Agent{},
			Deployment: swarm.DeploymentInfo{
				Environment: "development",
				Resources:   "2 vCPU, 4GB RAM",
			},
			Created:  ts("2024-01-12T11:00:00Z"),
			Modified: ts("2024-01-18T12:00:00Z"),
		},
	}

	s.artifacts = []Artifact{
		{
			ID:         "1",
			Name:       "dataset_v1.json",
			Type:       ArtifactDataset,
			Size:       1024000,
			Status:     ArtifactReady,
			UploadedAt: ts("2024-01-20T10:00:00Z"),
			Version:    "1.0.0",
		},
		{
			ID:         "2",
			Name:       "model_weights.pkl",
			Type:       ArtifactModel,
			Size:       5242880,
			Status:     ArtifactProcessing,
			UploadedAt: ts("2024-01-19T14:30:00Z"),
			Version:    "2.1.0",
		},
	}

	s.triggers = []swarm.EventTrigger{
		{
			ID:      "1",
			Name:    "High Score Lead",
			Type:    swarm.TriggerDataChange,
			SubType: "score_increase",
			Conditions: map[string]any{
				"scoreThreshold": 70,
			},
			Enabled: true,
		},
	}

	s.decisions = []AgentDecision{
		{
			ID:         "1",
			AgentID:    "agent-001",
			Timestamp:  ts("2024-01-20T15:30:00Z"),
			Decision:   DecisionApprove,
			Confidence: 0.95,
			Reasoning:  "All validation checks passed. Risk score below threshold.",
			Input:      map[string]any{"request": "process_data", "riskScore": 0.2, "dataSize": 1024},
			Output:     map[string]any{"status": "approved", "processingTime": 234},
		},
		{
			ID:         "2",
			AgentID:    "agent-002",
			Timestamp:  ts("2024-01-20T15:31:00Z"),
			Decision:   DecisionReject,
			Confidence: 0.88,
			Reasoning:  "Insufficient data quality. Missing required fields.",
			Input:      map[string]any{"request": "validate_input", "dataQuality": 0.4},
			Output:     map[string]any{"status": "rejected", "errors": []string{"missing_field_x", "invalid_format_y"}},
		},
		{
			ID:         "3",
			AgentID:    "agent-001",
			Timestamp:  ts("2024-01-20T15:32:00Z"),
			Decision:   DecisionEscalate,
			Confidence: 0.67,
			Reasoning:  "Confidence below threshold. Human review required.",
			Input:      map[string]any{"request": "complex_analysis", "complexity": 0.9},
			Output:     map[string]any{"status": "escalated", "escalationReason": "low_confidence"},
		},
		{
			ID:         "4",
			AgentID:    "agent-003",
			Timestamp:  ts("2024-01-20T15:33:00Z"),
			Decision:   DecisionApprove,
			Confidence: 0.92,
			Reasoning:  "Pattern matches historical approvals.",
			Input:      map[string]any{"request": "classify_document", "documentType": "invoice"},
			Output:     map[string]any{"status": "approved", "category": "financial"},
		},
		{
			ID:         "5",
			AgentID:    "agent-002",
			Timestamp:  ts("2024-01-20T15:34:00Z"),
			Decision:   DecisionDefer,
			Confidence: 0.75,
			Reasoning:  "Awaiting additional context from dependent service.",
			Input:      map[string]any{"request": "process_transaction", "amount": 5000},
			Output:     map[string]any{"status": "deferred", "retryAfter": 300},
		},
	}

	s.logs = []SystemLog{
		{
			ID:        "1",
			Timestamp: ts("2024-01-20T16:00:00Z"),
			Level:     LogInfo,
			Source:    "SwarmManager",
			Message:   "Swarm initialized successfully",
		},
		{
			ID:        "2",
			Timestamp: ts("2024-01-20T16:01:00Z"),
			Level:     LogWarning,
			Source:    "AgentMonitor",
			Message:   "Agent response time exceeding threshold",
			Details:   map[string]any{"agentId": "agent-003", "responseTime": 5000},
		},
	}
}

func ptr[T any](v T) *T { return &v }
