package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the JSON shape for a full run dump.
type ExportData struct {
	ID          string      `json:"id"`
	Seed        int64       `json:"seed"`
	ArenaSize   float64     `json:"arena_size"`
	RobotRadius float64     `json:"robot_radius"`
	Speed       float64     `json:"speed"`
	Dt          float64     `json:"dt"`
	Steps       int         `json:"steps"`
	Collisions  int         `json:"collisions"`
	Times       []float64   `json:"times"`
	Positions   [][]float64 `json:"positions"`
}

func buildExport(meta *RunMetadata, positions [][]float64, times []float64) ExportData {
	return ExportData{
		ID:          meta.ID,
		Seed:        meta.Seed,
		ArenaSize:   meta.ArenaSize,
		RobotRadius: meta.RobotRadius,
		Speed:       meta.Speed,
		Dt:          meta.Dt,
		Steps:       meta.Steps,
		Collisions:  meta.Collisions,
		Times:       times,
		Positions:   positions,
	}
}

// ExportJSON writes a stored run as indented JSON to w.
func ExportJSON(w io.Writer, meta *RunMetadata, positions [][]float64, times []float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildExport(meta, positions, times))
}

// ExportJSONFile writes a stored run as indented JSON to path.
func ExportJSONFile(path string, meta *RunMetadata, positions [][]float64, times []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, meta, positions, times)
}
