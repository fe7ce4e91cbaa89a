package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/brownsim/internal/sim"
)

// TrajectorySVG renders a walk as a standalone SVG: the arena as a square
// border, the trajectory as a path, and the robot's final position as a
// filled disk. The viewBox is the arena itself, with y flipped so the
// arena origin sits at the bottom-left.
func TrajectorySVG(positions []sim.Point, arena sim.ArenaSpec, robot sim.RobotSpec, sizePx int) string {
	if len(positions) == 0 {
		return ""
	}

	flip := func(p sim.Point) (float64, float64) {
		return p.X, arena.Size - p.Y
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %g %g">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<rect x="0" y="0" width="%g" height="%g" fill="none" stroke="#888" stroke-width="%g"/>
`, sizePx, sizePx, arena.Size, arena.Size, arena.Size, arena.Size, arena.Size/200))

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#ff4444" stroke-width="%g" d="M`, arena.Size/300))
	for i, p := range positions {
		x, y := flip(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.2f,%.2f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.2f,%.2f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	fx, fy := flip(positions[len(positions)-1])
	sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%g" fill="#4488ff"/>
</svg>`, fx, fy, robot.Radius))

	return sb.String()
}

// WriteTrajectorySVG writes the SVG rendering of a walk to path.
func WriteTrajectorySVG(path string, positions []sim.Point, arena sim.ArenaSpec, robot sim.RobotSpec, sizePx int) error {
	svg := TrajectorySVG(positions, arena, robot, sizePx)
	if svg == "" {
		return fmt.Errorf("export: empty position history")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
