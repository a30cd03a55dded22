package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Tool is a capability agents can be granted, managed in the backend's
// tool registry.
type Tool struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Parameters  map[string]any `json:"parameters"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ToolCreate struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolUpdate is a partial update; nil fields are left untouched by the
// backend.
type ToolUpdate struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

func (c *Client) ListTools(ctx context.Context, category string) ([]Tool, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}

	var out []Tool
	if err := c.do(ctx, http.MethodGet, "/tools", query, nil, &out); err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	return out, nil
}

func (c *Client) GetTool(ctx context.Context, id int64) (*Tool, error) {
	var out Tool
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tools/%d", id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("get tool %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) CreateTool(ctx context.Context, in ToolCreate) (*Tool, error) {
	if in.Parameters == nil {
		in.Parameters = map[string]any{}
	}

	var out Tool
	if err := c.do(ctx, http.MethodPost, "/tools", nil, in, &out); err != nil {
		return nil, fmt.Errorf("create tool: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateTool(ctx context.Context, id int64, in ToolUpdate) (*Tool, error) {
	var out Tool
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tools/%d", id), nil, in, &out); err != nil {
		return nil, fmt.Errorf("update tool %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) DeleteTool(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tools/%d", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete tool %d: %w", id, err)
	}
	return nil
}
