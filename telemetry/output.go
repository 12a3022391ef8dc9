package telemetry

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/noahpy/MolSim-SS24-sub000/config"
)

// OutputManager owns the analytics output files for one run: a typed
// window-stats CSV (gocsv-marshaled) plus the density/velocity histogram
// CSVs, whose row width varies with the configured bin count and so is
// written with encoding/csv directly rather than forced through a tagged
// struct.
type OutputManager struct {
	dir string

	statsFile    *os.File
	densityFile  *os.File
	velocityFile *os.File

	densityWriter  *csv.Writer
	velocityWriter *csv.Writer

	statsHeaderWritten bool
}

// NewOutputManager creates the output directory and opens its files.
// Returns nil, nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	om.statsFile = f

	f, err = os.Create(filepath.Join(dir, "density.csv"))
	if err != nil {
		om.statsFile.Close()
		return nil, fmt.Errorf("creating density.csv: %w", err)
	}
	om.densityFile = f
	om.densityWriter = csv.NewWriter(f)

	f, err = os.Create(filepath.Join(dir, "velocity.csv"))
	if err != nil {
		om.statsFile.Close()
		om.densityFile.Close()
		return nil, fmt.Errorf("creating velocity.csv: %w", err)
	}
	om.velocityFile = f
	om.velocityWriter = csv.NewWriter(f)

	return om, nil
}

// WriteConfig saves the loaded configuration as YAML alongside the run's
// other output.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(filepath.Join(om.dir, "config.yaml"), data, 0644)
}

// WriteStats appends one WindowStats row, writing the header on first use.
func (om *OutputManager) WriteStats(s WindowStats) error {
	if om == nil {
		return nil
	}
	records := []WindowStats{s}
	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, om.statsFile)
}

// WriteDensity appends one density-histogram row.
func (om *OutputManager) WriteDensity(row []float64) error {
	if om == nil {
		return nil
	}
	return writeFloatRow(om.densityWriter, row)
}

// WriteVelocity appends one velocity-histogram row.
func (om *OutputManager) WriteVelocity(row []float64) error {
	if om == nil {
		return nil
	}
	return writeFloatRow(om.velocityWriter, row)
}

func writeFloatRow(w *csv.Writer, row []float64) error {
	fields := make([]string, len(row))
	for i, v := range row {
		fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	if err := w.Write(fields); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every open file, returning the first error encountered.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, f := range []*os.File{om.statsFile, om.densityFile, om.velocityFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
