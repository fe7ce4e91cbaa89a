package viz

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestFrameWriterSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	w, err := NewFrameWriter(dir)
	if err != nil {
		t.Fatalf("new writer failed: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < 3; i++ {
		if err := w.Write(img); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	if w.Count() != 3 {
		t.Errorf("expected 3 frames, got %d", w.Count())
	}

	for _, name := range []string{"frame_00000.png", "frame_00001.png", "frame_00002.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestFrameWriterCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "frames")
	if _, err := NewFrameWriter(dir); err != nil {
		t.Fatalf("expected nested dir creation, got %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("dir not created: %v", err)
	}
}
