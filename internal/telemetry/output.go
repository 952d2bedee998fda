package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"cellsim/internal/config"
	"cellsim/internal/series"
)

// OutputManager writes a run's metric stream as CSV.
type OutputManager struct {
	dir        string
	seriesFile *os.File
	series     *CSVWriter[series.Sample]
}

// NewOutputManager creates the output directory and opens series.csv.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "series.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating series.csv: %w", err)
	}
	return &OutputManager{dir: dir, seriesFile: f, series: NewCSVWriter[series.Sample](f)}, nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteSample appends one sample to series.csv.
func (om *OutputManager) WriteSample(s series.Sample) error {
	if om == nil {
		return nil
	}
	if err := om.series.Write(s); err != nil {
		return fmt.Errorf("writing series: %w", err)
	}
	return nil
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.seriesFile.Close()
}

// CSVWriter streams records of one type, writing the header only once.
type CSVWriter[T any] struct {
	w             io.Writer
	headerWritten bool
}

// NewCSVWriter wraps w.
func NewCSVWriter[T any](w io.Writer) *CSVWriter[T] {
	return &CSVWriter[T]{w: w}
}

// Write appends records; the first call also writes the header row.
func (c *CSVWriter[T]) Write(records ...T) error {
	if len(records) == 0 {
		return nil
	}
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.w); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.w)
}
