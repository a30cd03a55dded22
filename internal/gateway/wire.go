package gateway

import (
	"fmt"
	"strconv"
	"time"

	"github.com/agentdojo/swarmdeck/internal/swarm"
)

// swarmWire is the backend's record shape. The backend keys records by
// numeric id and buries most dashboard fields inside an open config
// object; the dashboard side uses string ids and a flat struct.
type swarmWire struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Config      wireConfig    `json:"config"`
	Agents      []swarm.Agent `json:"agents"`
	Status      swarm.Status  `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type wireConfig struct {
	Goal          string                 `json:"goal,omitempty"`
	Purpose       string                 `json:"purpose,omitempty"`
	Tools         []string               `json:"tools,omitempty"`
	EventTriggers []swarm.EventTrigger   `json:"eventTriggers,omitempty"`
	Deployment    *swarm.DeploymentInfo  `json:"deployment,omitempty"`
	Dataset       *swarm.TrainingDataset `json:"trainingDataset,omitempty"`
	Performance   *swarm.Performance     `json:"performance,omitempty"`
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("swarm id %q is not numeric: %w", id, err)
	}
	return n, nil
}

// toWire nests the flat dashboard shape into the backend config object.
func toWire(s swarm.Swarm) swarmWire {
	description := s.Description
	if description == "" {
		description = s.Goal
	}
	return swarmWire{
		Name:        s.Name,
		Description: description,
		Config: wireConfig{
			Goal:          s.Goal,
			Purpose:       s.Goal,
			Tools:         s.Tools,
			EventTriggers: s.EventTriggers,
			Deployment:    &s.Deployment,
			Dataset:       &s.Dataset,
			Performance:   &s.Performance,
		},
		Agents: s.Agents,
		Status: s.Status,
	}
}

// toUI flattens a backend record, filling dashboard defaults for fields
// the backend never stored.
func toUI(w swarmWire) swarm.Swarm {
	s := swarm.Swarm{
		ID:            strconv.FormatInt(w.ID, 10),
		Name:          w.Name,
		Goal:          w.Config.Goal,
		Description:   w.Description,
		Status:        w.Status,
		Tools:         w.Config.Tools,
		EventTriggers: w.Config.EventTriggers,
		Agents:        w.Agents,
		Created:       w.CreatedAt,
		Modified:      w.UpdatedAt,
	}
	if s.Goal == "" {
		s.Goal = w.Description
	}
	if w.Config.Dataset != nil {
		s.Dataset = *w.Config.Dataset
	} else {
		s.Dataset = swarm.TrainingDataset{
			ID:          "ds_001",
			Name:        "Default Dataset",
			Size:        10000,
			LastUpdated: w.UpdatedAt,
		}
	}
	if w.Config.Performance != nil {
		s.Performance = *w.Config.Performance
	}
	if w.Config.Deployment != nil {
		s.Deployment = *w.Config.Deployment
	} else {
		s.Deployment = swarm.DeploymentInfo{
			Environment: "development",
			Resources:   "2 vCPU, 4GB RAM",
		}
	}
	return s
}
