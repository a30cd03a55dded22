package view

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/agentdojo/swarmdeck/internal/appstate"
	"github.com/agentdojo/swarmdeck/internal/gateway"
)

const loadingTools = "tools"

// ToolAPI is the tool-registry surface the catalog screen needs.
// *gateway.Client satisfies it.
type ToolAPI interface {
	ListTools(ctx context.Context, category string) ([]gateway.Tool, error)
	CreateTool(ctx context.Context, in gateway.ToolCreate) (*gateway.Tool, error)
	UpdateTool(ctx context.Context, id int64, in gateway.ToolUpdate) (*gateway.Tool, error)
	DeleteTool(ctx context.Context, id int64) error
}

// ToolForm is the editor's input shape; Parameters arrives as raw JSON
// text and is validated before anything leaves the screen.
type ToolForm struct {
	Name        string
	Description string
	Category    string
	Parameters  string
}

func (f ToolForm) parameters() (map[string]any, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("tool name is required")
	}
	if f.Parameters == "" {
		return map[string]any{}, nil
	}
	var params map[string]any
	if err := json.Unmarshal([]byte(f.Parameters), &params); err != nil {
		return nil, fmt.Errorf("parameters must be a valid JSON object")
	}
	return params, nil
}

// ToolsScreen is the tool catalog: category filter server-side, text
// search client-side.
type ToolsScreen struct {
	api    ToolAPI
	state  *appstate.Store
	logger *slog.Logger

	mu       sync.Mutex
	tools    []gateway.Tool
	category string
	search   string
}

func NewToolsScreen(api ToolAPI, state *appstate.Store, logger *slog.Logger) *ToolsScreen {
	return &ToolsScreen{api: api, state: state, logger: logger}
}

// Load fetches the catalog for a category; an empty category fetches
// everything.
func (s *ToolsScreen) Load(ctx context.Context, category string) error {
	s.state.SetLoading(loadingTools, true)
	defer s.state.SetLoading(loadingTools, false)

	tools, err := s.api.ListTools(ctx, category)
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to load tools")
		return fmt.Errorf("load tools: %w", err)
	}

	s.mu.Lock()
	s.tools = tools
	s.category = category
	s.mu.Unlock()
	return nil
}

func (s *ToolsScreen) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = search
}

func (s *ToolsScreen) Tools() []gateway.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilterTools(s.tools, s.search)
}

func (s *ToolsScreen) Create(ctx context.Context, f ToolForm) (*gateway.Tool, error) {
	params, err := f.parameters()
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, err.Error())
		return nil, err
	}

	s.state.SetLoading(loadingTools, true)
	defer s.state.SetLoading(loadingTools, false)

	created, err := s.api.CreateTool(ctx, gateway.ToolCreate{
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Parameters:  params,
	})
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to create tool")
		return nil, fmt.Errorf("create tool: %w", err)
	}

	s.mu.Lock()
	s.tools = append(s.tools, *created)
	s.mu.Unlock()
	s.state.AddNotification(appstate.NotifySuccess, fmt.Sprintf("Tool %s created", created.Name))
	return created, nil
}

func (s *ToolsScreen) Update(ctx context.Context, id int64, f ToolForm) error {
	params, err := f.parameters()
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, err.Error())
		return err
	}

	s.state.SetLoading(loadingTools, true)
	defer s.state.SetLoading(loadingTools, false)

	updated, err := s.api.UpdateTool(ctx, id, gateway.ToolUpdate{
		Name:        &f.Name,
		Description: &f.Description,
		Category:    &f.Category,
		Parameters:  params,
	})
	if err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to update tool")
		return fmt.Errorf("update tool %d: %w", id, err)
	}

	s.mu.Lock()
	for i := range s.tools {
		if s.tools[i].ID == id {
			s.tools[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	s.state.AddNotification(appstate.NotifySuccess, fmt.Sprintf("Tool %s updated", updated.Name))
	return nil
}

func (s *ToolsScreen) Delete(ctx context.Context, id int64) error {
	s.state.SetLoading(loadingTools, true)
	defer s.state.SetLoading(loadingTools, false)

	if err := s.api.DeleteTool(ctx, id); err != nil {
		s.state.AddNotification(appstate.NotifyError, "Failed to delete tool")
		return fmt.Errorf("delete tool %d: %w", id, err)
	}

	s.mu.Lock()
	for i := range s.tools {
		if s.tools[i].ID == id {
			s.tools = append(s.tools[:i], s.tools[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.state.AddNotification(appstate.NotifySuccess, "Tool deleted")
	return nil
}
