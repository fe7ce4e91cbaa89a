package viz

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// FrameWriter dumps one still image per tick into a directory, numbered
// frame_00000.png onward, for external assembly into video.
type FrameWriter struct {
	dir  string
	next int
}

func NewFrameWriter(dir string) (*FrameWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("viz: create frame dir: %w", err)
	}
	return &FrameWriter{dir: dir}, nil
}

func (w *FrameWriter) Write(img image.Image) error {
	path := filepath.Join(w.dir, fmt.Sprintf("frame_%05d.png", w.next))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	w.next++
	return nil
}

// Count is the number of frames written so far.
func (w *FrameWriter) Count() int { return w.next }

// Dir is the directory frames are written into.
func (w *FrameWriter) Dir() string { return w.dir }
