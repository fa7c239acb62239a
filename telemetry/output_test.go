package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/softbody-labs/petri/config"
)

func TestOutputManager_NilIsDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}

	// All operations must be safe on the nil manager.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("WriteTelemetry on nil manager: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir = %q, want empty", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
}

func TestOutputManager_WritesTelemetryCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteTelemetry(WindowStats{WindowStart: 0, WindowEnd: 312, PelletsEaten: 9}); err != nil {
		t.Fatalf("WriteTelemetry: %v", err)
	}
	if err := om.WriteTelemetry(WindowStats{WindowStart: 312, WindowEnd: 624, PelletsEaten: 4}); err != nil {
		t.Fatalf("WriteTelemetry: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus two records", len(lines))
	}
	if !strings.Contains(lines[0], "pellets_eaten") {
		t.Errorf("header = %q, want csv column names", lines[0])
	}
	if strings.Contains(lines[1], "pellets_eaten") || strings.Contains(lines[2], "pellets_eaten") {
		t.Error("the header must only be written once")
	}
	if !strings.Contains(lines[1], "312") || !strings.Contains(lines[2], "624") {
		t.Errorf("records = %q / %q, want window ticks present", lines[1], lines[2])
	}
}

func TestOutputManager_WriteConfig(t *testing.T) {
	config.MustInit("")
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reading config.yaml: %v", err)
	}
	if !strings.Contains(string(data), "world") {
		t.Errorf("config.yaml missing expected sections:\n%s", data)
	}
}
