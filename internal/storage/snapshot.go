package storage

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/molsim/internal/particle"
	"github.com/san-kum/molsim/internal/simulation"
	"github.com/sirupsen/logrus"
)

type Format string

const (
	FormatXYZ Format = "xyz"
	FormatCSV Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXYZ, FormatCSV:
		return f, nil
	case "":
		return FormatXYZ, nil
	default:
		return "", fmt.Errorf("storage: unknown snapshot format %q", s)
	}
}

// WriteXYZ writes ps in the XYZ format: a count line, a comment line and one
// "Ar x y z" line per particle.
func WriteXYZ(w io.Writer, ps []particle.Particle, comment string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%s\n", len(ps), strings.ReplaceAll(comment, "\n", " "))
	for _, p := range ps {
		fmt.Fprintf(bw, "Ar %.6f %.6f %.6f\n", p.X.X, p.X.Y, p.X.Z)
	}
	return bw.Flush()
}

var csvHeader = []string{"type", "mass", "x", "y", "z", "vx", "vy", "vz", "fx", "fy", "fz"}

func WriteCSV(w io.Writer, ps []particle.Particle) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	row := make([]string, len(csvHeader))
	for _, p := range ps {
		row[0] = strconv.Itoa(p.Type)
		row[1] = formatFloat(p.M)
		for i, v := range []float64{p.X.X, p.X.Y, p.X.Z, p.V.X, p.V.Y, p.V.Z, p.F.X, p.F.Y, p.F.Z} {
			row[i+2] = formatFloat(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SnapshotWriter writes one file per snapshot it observes.
type SnapshotWriter struct {
	dir     string
	base    string
	format  Format
	written int
	log     logrus.FieldLogger
}

func NewSnapshotWriter(dir, base string, format Format) (*SnapshotWriter, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &SnapshotWriter{
		dir:    dir,
		base:   base,
		format: format,
		log:    logrus.StandardLogger(),
	}, nil
}

func (w *SnapshotWriter) SetLogger(l logrus.FieldLogger) { w.log = l }

// Path is the file a snapshot at iteration would be written to.
func (w *SnapshotWriter) Path(iteration int) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%04d.%s", w.base, iteration, w.format))
}

func (w *SnapshotWriter) Written() int { return w.written }

func (w *SnapshotWriter) OnSnapshot(s simulation.Snapshot) error {
	path := w.Path(s.Iteration)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage: snapshot %d: %w", s.Iteration, err)
	}
	defer f.Close()

	switch w.format {
	case FormatCSV:
		err = WriteCSV(f, s.Particles)
	default:
		err = WriteXYZ(f, s.Particles, fmt.Sprintf("iteration %d t=%g", s.Iteration, s.Time))
	}
	if err != nil {
		return fmt.Errorf("storage: snapshot %d: %w", s.Iteration, err)
	}

	w.written++
	w.log.WithFields(logrus.Fields{
		"iteration": s.Iteration,
		"particles": len(s.Particles),
		"file":      filepath.Base(path),
	}).Debug("snapshot written")
	return nil
}
