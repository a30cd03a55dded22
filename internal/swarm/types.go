package swarm

import (
	"maps"
	"time"
)

// Status is a swarm's lifecycle state. Transitions are one-directional
// except for the explicit deploy/pause pair; training and error states
// are driven by the external training pipeline, not by dashboard actions.
type Status string

const (
	StatusTraining Status = "training"
	StatusReady    Status = "ready"
	StatusDeployed Status = "deployed"
	StatusInactive Status = "inactive"
	StatusError    Status = "error"
)

// CanTransition reports whether a dashboard action may move a swarm from
// one status to another.
func CanTransition(from, to Status) bool {
	switch {
	case from == StatusReady && to == StatusDeployed:
		return true
	case from == StatusDeployed && to == StatusInactive:
		return true
	case from == StatusInactive && to == StatusDeployed:
		return true
	default:
		return false
	}
}

type Agent struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Model        string   `json:"model"`
	Instructions string   `json:"instructions"`
	Tools        []string `json:"tools"`
	Capabilities []string `json:"capabilities"`
}

type TrainingDataset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int       `json:"size"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type Performance struct {
	TotalProcessed       int     `json:"totalProcessed"`
	SuccessRate          float64 `json:"successRate"`
	AvgResponseTime      float64 `json:"avgResponseTime"`
	LeadConversion       float64 `json:"leadConversion"`
	CustomerSatisfaction float64 `json:"customerSatisfaction"`
}

type DeploymentInfo struct {
	Environment  string     `json:"environment"`
	Resources    string     `json:"resources"`
	LastDeployed *time.Time `json:"lastDeployed,omitempty"`
	Endpoint     string     `json:"endpoint,omitempty"`
	Version      string     `json:"version,omitempty"`
}

// VersionStatus is a trained revision's state. At most one version per
// swarm may be deployed at a time.
type VersionStatus string

const (
	VersionActive   VersionStatus = "active"
	VersionArchived VersionStatus = "archived"
	VersionDeployed VersionStatus = "deployed"
)

// Version is an immutable snapshot of a swarm's trained state.
type Version struct {
	ID                   string          `json:"id"`
	Label                string          `json:"version"`
	CreatedAt            time.Time       `json:"createdAt"`
	TrainingDuration     string          `json:"trainingDuration"`
	Accuracy             float64         `json:"accuracy"`
	Performance          Performance     `json:"performance"`
	Status               VersionStatus   `json:"status"`
	DeployedEnvironments []string        `json:"deployedEnvironments"`
	Dataset              TrainingDataset `json:"trainingDataset"`
	Notes                string          `json:"notes,omitempty"`
}

type DeploymentStatus string

const (
	DeploymentActive  DeploymentStatus = "active"
	DeploymentPaused  DeploymentStatus = "paused"
	DeploymentStopped DeploymentStatus = "stopped"
)

type LiveMetrics struct {
	Uptime            string  `json:"uptime"`
	RequestsProcessed int     `json:"requestsProcessed"`
	AvgLatency        float64 `json:"avgLatency"`
	ErrorRate         float64 `json:"errorRate"`
}

// Deployment is the currently live version of a swarm plus its runtime
// metrics. At most one deployment is current per swarm.
type Deployment struct {
	Version    string           `json:"version"`
	DeployedAt time.Time        `json:"deployedAt"`
	DeployedBy string           `json:"deployedBy"`
	Status     DeploymentStatus `json:"status"`
	Metrics    LiveMetrics      `json:"metrics"`
}

type TrainingStatus string

const (
	TrainingRunning   TrainingStatus = "running"
	TrainingCompleted TrainingStatus = "completed"
	TrainingFailed    TrainingStatus = "failed"
)

type TrainingMetrics struct {
	Accuracy   float64 `json:"accuracy"`
	Loss       float64 `json:"loss"`
	Validation float64 `json:"validation"`
}

// TrainingSession is a transient child of a swarm: created when training
// starts, mutated on every progress tick and discarded once it produces
// a Version.
type TrainingSession struct {
	ID          string           `json:"id"`
	StartedAt   time.Time        `json:"startedAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	Status      TrainingStatus   `json:"status"`
	Progress    int              `json:"progress"`
	CurrentStep string           `json:"currentStep"`
	Metrics     *TrainingMetrics `json:"metrics,omitempty"`
}

// Swarm is the dashboard-facing flat shape. The wire format nests most of
// these fields inside a config map; see the gateway package.
type Swarm struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Goal            string          `json:"goal"`
	Description     string          `json:"description"`
	Status          Status          `json:"status"`
	Tools           []string        `json:"tools"`
	Dataset         TrainingDataset `json:"trainingDataset"`
	EventTriggers   []EventTrigger  `json:"eventTriggers"`
	Agents          []Agent         `json:"agents"`
	Performance     Performance     `json:"performance"`
	Deployment      DeploymentInfo  `json:"deployment"`
	CurrentVersion  string          `json:"currentVersion,omitempty"`
	Versions        []Version       `json:"versions,omitempty"`
	ActiveDeploy    *Deployment     `json:"activeDeployment,omitempty"`
	CurrentTraining *TrainingSession `json:"currentTraining,omitempty"`
	Created         time.Time       `json:"created"`
	Modified        time.Time       `json:"modified"`
}

// Patch is a typed partial update. Nil fields are left untouched; slices
// replace the whole list.
type Patch struct {
	Name          *string
	Goal          *string
	Description   *string
	Tools         []string
	Dataset       *TrainingDataset
	EventTriggers []EventTrigger
	Deployment    *DeploymentInfo
}

// Apply merges the patch into a copy of s and stamps Modified.
func (p Patch) Apply(s Swarm, now time.Time) Swarm {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Goal != nil {
		s.Goal = *p.Goal
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Tools != nil {
		s.Tools = p.Tools
	}
	if p.Dataset != nil {
		s.Dataset = *p.Dataset
	}
	if p.EventTriggers != nil {
		s.EventTriggers = p.EventTriggers
	}
	if p.Deployment != nil {
		s.Deployment = *p.Deployment
	}
	s.Modified = now
	return s
}

// Clone returns a deep copy: every slice gets a fresh backing array and
// the live deployment and training session are copied by value, so a
// snapshot stays stable while the original keeps changing.
func (s Swarm) Clone() Swarm {
	out := s
	out.Tools = cloneStrings(s.Tools)
	if s.Agents != nil {
		out.Agents = make([]Agent, len(s.Agents))
		for i, a := range s.Agents {
			a.Tools = cloneStrings(a.Tools)
			a.Capabilities = cloneStrings(a.Capabilities)
			out.Agents[i] = a
		}
	}
	if s.EventTriggers != nil {
		out.EventTriggers = make([]EventTrigger, len(s.EventTriggers))
		for i, tr := range s.EventTriggers {
			tr.Conditions = maps.Clone(tr.Conditions)
			out.EventTriggers[i] = tr
		}
	}
	if s.Versions != nil {
		out.Versions = make([]Version, len(s.Versions))
		for i, v := range s.Versions {
			v.DeployedEnvironments = cloneStrings(v.DeployedEnvironments)
			out.Versions[i] = v
		}
	}
	if s.Deployment.LastDeployed != nil {
		t := *s.Deployment.LastDeployed
		out.Deployment.LastDeployed = &t
	}
	if s.ActiveDeploy != nil {
		d := *s.ActiveDeploy
		out.ActiveDeploy = &d
	}
	if s.CurrentTraining != nil {
		sess := *s.CurrentTraining
		if sess.CompletedAt != nil {
			t := *sess.CompletedAt
			sess.CompletedAt = &t
		}
		if sess.Metrics != nil {
			m := *sess.Metrics
			sess.Metrics = &m
		}
		out.CurrentTraining = &sess
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// DeployedVersionCount counts versions currently marked deployed. The
// invariant after any version deploy is count <= 1.
func (s *Swarm) DeployedVersionCount() int {
	n := 0
	for _, v := range s.Versions {
		if v.Status == VersionDeployed {
			n++
		}
	}
	return n
}
