package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/molsim/internal/metrics"
)

type ExportData struct {
	Run     RunMetadata      `json:"run"`
	Steps   int              `json:"samples"`
	Samples []metrics.Sample `json:"energies"`
}

// Export writes a run and its energy samples as indented JSON.
func (s *Store) Export(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	return EncodeJSON(w, ExportData{Run: *meta, Steps: len(samples), Samples: samples})
}

// ExportJSON writes the run to path, or to stdout when path is empty or "-".
func (s *Store) ExportJSON(runID, path string) error {
	if path == "" || path == "-" {
		return s.Export(runID, os.Stdout)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.Export(runID, file)
}

func EncodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
