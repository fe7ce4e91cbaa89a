package viz

import "github.com/san-kum/brownsim/internal/sim"

// Canvas dimensions chosen so the sub-pixel grid is square (64*2 = 32*4),
// keeping the arena's aspect ratio intact.
const (
	canvasWidth  = 64
	canvasHeight = 32
)

// scene projects arena coordinates onto a braille canvas and draws one view
// of the walk: arena border, trail, robot disk.
type scene struct {
	canvas *Canvas
	arena  sim.ArenaSpec
	robot  sim.RobotSpec
	scale  float64
}

func newScene(arena sim.ArenaSpec, robot sim.RobotSpec) *scene {
	c := NewCanvas(canvasWidth, canvasHeight)
	return &scene{
		canvas: c,
		arena:  arena,
		robot:  robot,
		scale:  float64(c.SubHeight()-1) / arena.Size,
	}
}

// project maps an arena position to sub-pixel coordinates, flipping y so the
// arena origin sits at the bottom-left of the view.
func (s *scene) project(p sim.Point) (int, int) {
	x := int(p.X * s.scale)
	y := s.canvas.SubHeight() - 1 - int(p.Y*s.scale)
	return x, y
}

func (s *scene) draw(trail []sim.Point, pos sim.Point) {
	s.canvas.Clear()
	s.canvas.DrawRect(0, 0, s.canvas.SubWidth()-1, s.canvas.SubHeight()-1)

	for i := 1; i < len(trail); i++ {
		x0, y0 := s.project(trail[i-1])
		x1, y1 := s.project(trail[i])
		s.canvas.DrawLine(x0, y0, x1, y1)
	}

	cx, cy := s.project(pos)
	s.canvas.DrawDisk(cx, cy, int(s.robot.Radius*s.scale))
}
