package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/brownsim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Positions:  []sim.Point{{X: 50, Y: 50}, {X: 51, Y: 50}, {X: 52, Y: 50}},
		Times:      []float64{0.0, 0.5, 1.0},
		Collisions: 1,
		Final:      sim.RobotState{Pos: sim.Point{X: 52, Y: 50}},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	arena := sim.ArenaSpec{Size: 100}
	robot := sim.RobotSpec{Radius: 2, Speed: 2}

	runID, err := st.Save(arena, robot, 0.5, 42, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.ArenaSize != 100 {
		t.Errorf("expected arena_size 100, got %g", meta.ArenaSize)
	}
	if meta.Steps != 2 {
		t.Errorf("expected 2 steps, got %d", meta.Steps)
	}
	if meta.Collisions != 1 {
		t.Errorf("expected 1 collision, got %d", meta.Collisions)
	}

	positions, times, err := st.LoadPositions(runID)
	if err != nil {
		t.Fatalf("load positions failed: %v", err)
	}
	if len(positions) != 3 || len(times) != 3 {
		t.Fatalf("expected 3 samples, got %d positions, %d times", len(positions), len(times))
	}
	if positions[1].X != 51 || positions[1].Y != 50 {
		t.Errorf("unexpected sample: %v", positions[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	arena := sim.ArenaSpec{Size: 100}
	robot := sim.RobotSpec{Radius: 2, Speed: 2}
	if _, err := st.Save(arena, robot, 0.5, 42, testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	arena := sim.ArenaSpec{Size: 100}
	robot := sim.RobotSpec{Radius: 2, Speed: 2}
	runID, err := st.Save(arena, robot, 0.5, 42, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "positions.csv")); os.IsNotExist(err) {
		t.Error("positions.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{ID: "walk_1", Seed: 42, ArenaSize: 100, RobotRadius: 2, Speed: 2, Dt: 0.5, Steps: 2}
	positions := [][]float64{{50, 50}, {51, 50}}
	times := []float64{0, 0.5}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, positions, times); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var out ExportData
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if out.ID != "walk_1" || len(out.Positions) != 2 {
		t.Errorf("unexpected export: %+v", out)
	}
}

func TestExportJSONFile(t *testing.T) {
	meta := &RunMetadata{ID: "walk_2", Seed: 7, ArenaSize: 50, RobotRadius: 1, Speed: 2, Dt: 0.5, Steps: 1}
	path := filepath.Join(t.TempDir(), "walk.json")

	if err := ExportJSONFile(path, meta, [][]float64{{25, 25}}, []float64{0}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var out ExportData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if out.ID != "walk_2" || out.Seed != 7 {
		t.Errorf("unexpected export: %+v", out)
	}
}
