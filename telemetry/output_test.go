package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/noahpy/MolSim-SS24-sub000/config"
)

func TestNewOutputManagerEmptyDirDisablesOutput(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v, want nil, nil", om, err)
	}
	// Every method must be a safe no-op on a nil *OutputManager.
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Errorf("WriteStats on nil manager returned %v", err)
	}
	if err := om.WriteDensity(nil); err != nil {
		t.Errorf("WriteDensity on nil manager returned %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager returned %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir() on nil manager = %q, want \"\"", om.Dir())
	}
}

func TestOutputManagerWritesFiles(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}
	defer om.Close()

	if err := om.WriteStats(WindowStats{Iteration: 1, Time: 0.1, ActiveCount: 5}); err != nil {
		t.Fatalf("WriteStats failed: %v", err)
	}
	if err := om.WriteStats(WindowStats{Iteration: 2, Time: 0.2, ActiveCount: 4}); err != nil {
		t.Fatalf("second WriteStats failed: %v", err)
	}
	if err := om.WriteDensity([]float64{1, 2, 3}); err != nil {
		t.Fatalf("WriteDensity failed: %v", err)
	}
	if err := om.WriteVelocity([]float64{0.5, 1.5}); err != nil {
		t.Fatalf("WriteVelocity failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Physics.DeltaT = 0.002
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	stats, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatalf("reading stats.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(stats)), "\n")
	if len(lines) != 3 { // header + 2 rows
		t.Errorf("stats.csv has %d lines, want 3 (header + 2 rows): %q", len(lines), string(stats))
	}

	density, err := os.ReadFile(filepath.Join(dir, "density.csv"))
	if err != nil {
		t.Fatalf("reading density.csv: %v", err)
	}
	if !strings.Contains(string(density), "1,2,3") {
		t.Errorf("density.csv = %q, want a row containing 1,2,3", string(density))
	}

	cfgBytes, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reading config.yaml: %v", err)
	}
	if !strings.Contains(string(cfgBytes), "delta_t: 0.002") {
		t.Errorf("config.yaml = %q, want it to contain delta_t: 0.002", string(cfgBytes))
	}
}
