package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/molsim/internal/metrics"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	metadataFile = "metadata.json"
	energiesFile = "energies.csv"
	snapshotDir  = "snapshots"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) BaseDir() string { return s.baseDir }

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       uint64             `json:"seed"`
	Dt         float64            `json:"dt"`
	TEnd       float64            `json:"t_end"`
	Iterations int                `json:"iterations"`
	Particles  int                `json:"particles"`
	Removed    int                `json:"removed"`
	Force      string             `json:"force"`
	Container  string             `json:"container"`
	Strategy   string             `json:"strategy"`
	Workers    int                `json:"workers"`
	Elapsed    float64            `json:"elapsed_seconds"`
	MUPS       float64            `json:"mups"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Create allocates a fresh run directory and returns its id.
func (s *Store) Create(name string) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	if err := os.MkdirAll(s.SnapshotDir(runID), 0755); err != nil {
		return "", fmt.Errorf("storage: create run %s: %w", runID, err)
	}
	return runID, nil
}

func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

func (s *Store) SnapshotDir(runID string) string {
	return filepath.Join(s.baseDir, runID, snapshotDir)
}

// Save writes metadata.json and energies.csv for meta.ID. The run directory
// is created if Create was not called.
func (s *Store) Save(meta RunMetadata, samples []metrics.Sample) error {
	if meta.ID == "" {
		return fmt.Errorf("storage: run metadata has no id")
	}
	runDir := s.RunDir(meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, energiesFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	header := []string{"iteration", "time", "particles", "kinetic", "potential", "total", "temperature", "px", "py", "pz"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Iteration),
			formatFloat(smp.Time),
			strconv.Itoa(smp.Particles),
			formatFloat(smp.Kinetic),
			formatFloat(smp.Potential),
			formatFloat(smp.Total),
			formatFloat(smp.Temperature),
			formatFloat(smp.Momentum.X),
			formatFloat(smp.Momentum.Y),
			formatFloat(smp.Momentum.Z),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]metrics.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, energiesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: read %s energies: %w", runID, err)
	}
	if len(records) < 2 {
		return []metrics.Sample{}, nil
	}

	samples := make([]metrics.Sample, 0, len(records)-1)
	for line, record := range records[1:] {
		smp, err := parseSample(record)
		if err != nil {
			return nil, fmt.Errorf("storage: %s energies line %d: %w", runID, line+2, err)
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(record []string) (metrics.Sample, error) {
	var smp metrics.Sample
	if len(record) != 10 {
		return smp, fmt.Errorf("expected 10 columns, got %d", len(record))
	}

	ints := make([]int, 0, 2)
	for _, idx := range []int{0, 2} {
		v, err := strconv.Atoi(record[idx])
		if err != nil {
			return smp, err
		}
		ints = append(ints, v)
	}

	floatCols := []int{1, 3, 4, 5, 6, 7, 8, 9}
	fs := make([]float64, len(floatCols))
	for i, idx := range floatCols {
		v, err := strconv.ParseFloat(record[idx], 64)
		if err != nil {
			return smp, err
		}
		fs[i] = v
	}

	smp.Iteration, smp.Particles = ints[0], ints[1]
	smp.Time, smp.Kinetic, smp.Potential, smp.Total, smp.Temperature = fs[0], fs[1], fs[2], fs[3], fs[4]
	smp.Momentum = r3.Vec{X: fs[5], Y: fs[6], Z: fs[7]}
	return smp, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
