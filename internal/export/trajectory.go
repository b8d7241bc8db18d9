// Package export writes finished runs out as JSON, CSV or SVG. It is one-way:
// nothing here reads a trajectory back.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/fizx/internal/dynamo"
	"github.com/san-kum/fizx/internal/world"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatSVG  = "svg"
)

type Trajectory struct {
	RunID     string             `json:"run_id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Tolerance float64            `json:"tolerance"`
	SettledAt float64            `json:"settled_at"`
	Steps     int                `json:"steps"`
	Particles []string           `json:"particles"`
	Frames    []FrameData        `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

// FrameData holds one recorded frame; Positions[i] and Velocities[i] are
// the xyz components of particle i.
type FrameData struct {
	T          float64      `json:"t"`
	Positions  [][3]float64 `json:"positions"`
	Velocities [][3]float64 `json:"velocities"`
}

// FromResult flattens a run result into an exportable trajectory stamped
// with a fresh run id.
func FromResult(scenario string, names []string, cfg dynamo.Config, result *world.Result) *Trajectory {
	tr := &Trajectory{
		RunID:     uuid.NewString(),
		Scenario:  scenario,
		Timestamp: time.Now().UTC(),
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Tolerance: float64(cfg.Tolerance),
		SettledAt: result.SettledAt,
		Steps:     result.StepsTaken,
		Particles: append([]string(nil), names...),
		Frames:    make([]FrameData, len(result.Frames)),
		Metrics:   result.Metrics,
	}

	for i, f := range result.Frames {
		fd := FrameData{
			T:          f.T,
			Positions:  make([][3]float64, len(f.Positions)),
			Velocities: make([][3]float64, len(f.Velocities)),
		}
		for j, p := range f.Positions {
			copy(fd.Positions[j][:], p.Components())
		}
		for j, v := range f.Velocities {
			copy(fd.Velocities[j][:], v.Components())
		}
		tr.Frames[i] = fd
	}
	return tr
}

func (tr *Trajectory) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tr)
}

// WriteCSV writes one row per frame: time followed by position and velocity
// columns for every particle.
func (tr *Trajectory) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"time"}
	for i := range tr.Particles {
		name := tr.columnName(i)
		for _, q := range []string{"x", "y", "z", "vx", "vy", "vz"} {
			header = append(header, name+"."+q)
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, f := range tr.Frames {
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(f.T))
		for j := range f.Positions {
			for _, x := range f.Positions[j] {
				row = append(row, formatFloat(x))
			}
			for _, x := range f.Velocities[j] {
				row = append(row, formatFloat(x))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func (tr *Trajectory) columnName(i int) string {
	name := strings.TrimSpace(tr.Particles[i])
	if name == "" {
		return "p" + strconv.Itoa(i)
	}
	return name
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// Write encodes the trajectory in the named format.
func (tr *Trajectory) Write(w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		return tr.WriteJSON(w)
	case FormatCSV:
		return tr.WriteCSV(w)
	case FormatSVG:
		return tr.WriteSVG(w, 0, 1, 800, 600)
	}
	return fmt.Errorf("%w: unknown export format %q", dynamo.ErrInvalidArgument, format)
}

// SaveFile writes the trajectory to path, creating parent directories.
// An empty format is inferred from the file extension.
func (tr *Trajectory) SaveFile(path, format string) error {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	switch format {
	case FormatJSON, FormatCSV, FormatSVG:
	default:
		return fmt.Errorf("%w: unknown export format %q", dynamo.ErrInvalidArgument, format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := tr.Write(file, format); err != nil {
		return err
	}
	return file.Close()
}
