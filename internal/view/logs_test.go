package view

import (
	"context"
	"testing"

	"github.com/agentdojo/swarmdeck/internal/appstate"
	"github.com/agentdojo/swarmdeck/internal/mockdata"
)

func TestLogsScreenLoadAndFilter(t *testing.T) {
	state := appstate.New(0, nil)
	screen := NewLogsScreen(newMockService(t), state, testLogger())

	if err := screen.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := screen.Logs(); len(got) != 2 {
		t.Fatalf("expected 2 seed logs, got %d", len(got))
	}

	screen.SetFilter(mockdata.LogFilter{Level: mockdata.LogWarning})
	if err := screen.Load(context.Background()); err != nil {
		t.Fatalf("filtered load: %v", err)
	}
	got := screen.Logs()
	if len(got) != 1 || got[0].Level != mockdata.LogWarning {
		t.Fatalf("expected one warning entry, got %+v", got)
	}
	if state.Loading("logs") {
		t.Error("expected loading cleared")
	}
}
