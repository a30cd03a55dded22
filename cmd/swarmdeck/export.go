package main

import (
	"archive/tar"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/agentdojo/swarmdeck/internal/config"
	"github.com/agentdojo/swarmdeck/internal/mockdata"
)

// runExport writes the demo dataset the dashboard runs on as a
// zstd-compressed tar of JSON documents, one per collection.
func runExport(args []string) error {
	var outputPath string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -f")
			}
			i++
			outputPath = args[i]
		}
	}

	if outputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: swarmdeck export -f <output.tar.zst>\n")
		return fmt.Errorf("missing -f flag")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// Latency and fault injection have no place in an export.
	cfg.Mock.LatencyScale = 0
	cfg.Mock.FailureRate = 0

	ctx := context.Background()
	svc := mockdata.New(cfg.Mock, nil)

	swarms, err := svc.GetSwarms(ctx)
	if err != nil {
		return fmt.Errorf("collect swarms: %w", err)
	}
	decisions, err := svc.GetAgentDecisions(ctx, mockdata.DecisionFilter{})
	if err != nil {
		return fmt.Errorf("collect decisions: %w", err)
	}
	logs, err := svc.GetSystemLogs(ctx, mockdata.LogFilter{})
	if err != nil {
		return fmt.Errorf("collect logs: %w", err)
	}
	artifacts, err := svc.GetTrainingData(ctx)
	if err != nil {
		return fmt.Errorf("collect training data: %w", err)
	}
	triggers, err := svc.GetEventTriggers(ctx)
	if err != nil {
		return fmt.Errorf("collect triggers: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	defer zw.Close()

	tw := tar.NewWriter(zw)
	defer tw.Close()

	collections := []struct {
		name string
		data any
	}{
		{"swarms.json", swarms},
		{"decisions.json", decisions},
		{"system_logs.json", logs},
		{"training_data.json", artifacts},
		{"event_triggers.json", triggers},
	}

	for _, c := range collections {
		if err := writeJSONEntry(tw, c.name, c.data); err != nil {
			return fmt.Errorf("write %s: %w", c.name, err)
		}
	}

	// Close everything explicitly to catch write errors
	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zstd: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}

	info, _ := os.Stat(outputPath)
	size := int64(0)
	if info != nil {
		size = info.Size()
	}

	fmt.Printf("Export complete: %d collections, %s\n", len(collections), formatSize(size))
	return nil
}

func writeJSONEntry(tw *tar.Writer, name string, data any) error {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	hdr := &tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    int64(len(body)),
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := tw.Write(body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

func formatSize(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
