package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 4)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected dot at (0,0)")
	}

	// out-of-range coordinates must be ignored
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(c.SubWidth(), 0)
	c.Set(0, c.SubHeight())
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(3, 3)
	c.Clear()

	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("clear left dots behind")
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(8, 8)
	c.DrawLine(0, 0, c.SubWidth()-1, c.SubHeight()-1)

	if c.Grid[0][0] == 0x2800 {
		t.Error("line missing its start")
	}
	if c.Grid[c.Height-1][c.Width-1] == 0x2800 {
		t.Error("line missing its end")
	}
}

func TestCanvasDrawDisk(t *testing.T) {
	c := NewCanvas(8, 8)
	c.DrawDisk(8, 16, 3)

	if c.Grid[4][4] == 0x2800 {
		t.Error("disk center not set")
	}

	// zero radius still marks the center point
	c2 := NewCanvas(8, 8)
	c2.DrawDisk(2, 2, 0)
	if c2.Grid[0][1] == 0x2800 {
		t.Error("point disk not set")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 2)
	out := c.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 4 {
			t.Errorf("expected 4 cells per row, got %d", len([]rune(line)))
		}
	}
}
