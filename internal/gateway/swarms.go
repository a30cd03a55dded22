package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/agentdojo/swarmdeck/internal/swarm"
)

// ListSwarms fetches all swarms, optionally filtered by status.
func (c *Client) ListSwarms(ctx context.Context, status string) ([]swarm.Swarm, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}

	var wires []swarmWire
	if err := c.do(ctx, http.MethodGet, "/swarms", query, nil, &wires); err != nil {
		return nil, fmt.Errorf("list swarms: %w", err)
	}

	out := make([]swarm.Swarm, len(wires))
	for i, w := range wires {
		out[i] = toUI(w)
	}
	return out, nil
}

func (c *Client) GetSwarm(ctx context.Context, id string) (*swarm.Swarm, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var w swarmWire
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/swarms/%d", n), nil, nil, &w); err != nil {
		return nil, fmt.Errorf("get swarm %s: %w", id, err)
	}
	s := toUI(w)
	return &s, nil
}

func (c *Client) CreateSwarm(ctx context.Context, s swarm.Swarm) (*swarm.Swarm, error) {
	var w swarmWire
	if err := c.do(ctx, http.MethodPost, "/swarms", nil, toWire(s), &w); err != nil {
		return nil, fmt.Errorf("create swarm: %w", err)
	}
	out := toUI(w)
	return &out, nil
}

// UpdateSwarm replaces the swarm's backend record with the given flat
// shape. Partial merging happens on the dashboard side before calling.
func (c *Client) UpdateSwarm(ctx context.Context, id string, s swarm.Swarm) (*swarm.Swarm, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var w swarmWire
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/swarms/%d", n), nil, toWire(s), &w); err != nil {
		return nil, fmt.Errorf("update swarm %s: %w", id, err)
	}
	out := toUI(w)
	return &out, nil
}

func (c *Client) DeleteSwarm(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/swarms/%d", n), nil, nil, nil); err != nil {
		return fmt.Errorf("delete swarm %s: %w", id, err)
	}
	return nil
}

type TrainRequest struct {
	TrainingData    map[string]any `json:"training_data,omitempty"`
	Hyperparameters map[string]any `json:"hyperparameters,omitempty"`
	ValidationSplit float64        `json:"validation_split,omitempty"`
	Epochs          int            `json:"epochs,omitempty"`
	BatchSize       int            `json:"batch_size,omitempty"`
}

type TrainResponse struct {
	SwarmID                 int64  `json:"swarm_id"`
	Status                  string `json:"status"`
	Message                 string `json:"message"`
	TrainingJobID           string `json:"training_job_id"`
	EstimatedCompletionTime string `json:"estimated_completion_time"`
}

func (c *Client) TrainSwarm(ctx context.Context, id string, req TrainRequest) (*TrainResponse, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var out TrainResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/swarms/%d/train", n), nil, req, &out); err != nil {
		return nil, fmt.Errorf("train swarm %s: %w", id, err)
	}
	return &out, nil
}

func (c *Client) UpdateSwarmStatus(ctx context.Context, id string, status swarm.Status) (*swarm.Swarm, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	body := map[string]swarm.Status{"status": status}
	var w swarmWire
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/swarms/%d/status", n), nil, body, &w); err != nil {
		return nil, fmt.Errorf("update swarm %s status: %w", id, err)
	}
	out := toUI(w)
	return &out, nil
}

func (c *Client) DeploySwarm(ctx context.Context, id string) (*swarm.Swarm, error) {
	return c.lifecycle(ctx, id, "deploy")
}

func (c *Client) PauseSwarm(ctx context.Context, id string) (*swarm.Swarm, error) {
	return c.lifecycle(ctx, id, "pause")
}

func (c *Client) lifecycle(ctx context.Context, id, action string) (*swarm.Swarm, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var w swarmWire
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/swarms/%d/%s", n, action), nil, nil, &w); err != nil {
		return nil, fmt.Errorf("%s swarm %s: %w", action, id, err)
	}
	out := toUI(w)
	return &out, nil
}
