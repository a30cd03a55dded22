package main

import (
	"archive/tar"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 bytes"},
		{512, "512 bytes"},
		{1023, "1023 bytes"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
		{1610612736, "1.5 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatSize(tt.bytes)
			if got != tt.want {
				t.Errorf("formatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestRunExportMissingFlag(t *testing.T) {
	if err := runExport(nil); err == nil {
		t.Fatal("expected error without -f")
	}
	if err := runExport([]string{"-f"}); err == nil {
		t.Fatal("expected error for -f without value")
	}
}

func TestRunExportArchiveContents(t *testing.T) {
	// Point config loading away from any real file so defaults are used.
	t.Setenv("SWARMDECK_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	out := filepath.Join(t.TempDir(), "snapshot.tar.zst")
	if err := runExport([]string{"-f", out}); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer zr.Close()

	tr := tar.NewReader(zr)
	entries := make(map[string][]byte)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read tar entry: %v", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("read %s: %v", hdr.Name, err)
		}
		entries[hdr.Name] = data
	}

	for _, name := range []string{
		"swarms.json", "decisions.json", "system_logs.json",
		"training_data.json", "event_triggers.json",
	} {
		if _, ok := entries[name]; !ok {
			t.Errorf("missing archive entry %s", name)
		}
	}

	var decisions []map[string]any
	if err := json.Unmarshal(entries["decisions.json"], &decisions); err != nil {
		t.Fatalf("decisions.json: %v", err)
	}
	if len(decisions) != 5 {
		t.Errorf("expected 5 seed decisions, got %d", len(decisions))
	}

	var swarms []map[string]any
	if err := json.Unmarshal(entries["swarms.json"], &swarms); err != nil {
		t.Fatalf("swarms.json: %v", err)
	}
	if len(swarms) != 2 {
		t.Errorf("expected 2 seed swarms, got %d", len(swarms))
	}
}
