package gui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/brownsim/internal/sim"
)

const (
	windowSize = 800
	trailCap   = 500
)

var (
	colBg    = rl.NewColor(250, 250, 250, 255)
	colWall  = rl.NewColor(20, 20, 20, 255)
	colTrail = rl.NewColor(220, 40, 40, 255)
	colRobot = rl.NewColor(40, 80, 220, 255)
	colText  = rl.NewColor(120, 120, 120, 255)
)

// App renders the walk in a native window at 60 FPS, one fixed-dt step per
// frame, until the duration budget runs out or the window is closed.
type App struct {
	Sim      *sim.Simulator
	Dt       float64
	Duration float64
	// FrameDir, when non-empty, receives one screenshot per frame.
	FrameDir string
}

func (a *App) Render(ctx context.Context) error {
	if a.FrameDir != "" {
		if err := os.MkdirAll(a.FrameDir, 0755); err != nil {
			return fmt.Errorf("gui: create frame dir: %w", err)
		}
	}

	rl.InitWindow(windowSize, windowSize, "brownsim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	arena := a.Sim.Arena()
	robot := a.Sim.Robot()
	scale := float64(windowSize) / arena.Size

	toScreen := func(p sim.Point) rl.Vector2 {
		return rl.NewVector2(float32(p.X*scale), float32(float64(windowSize)-p.Y*scale))
	}

	trail := make([]sim.Point, 0, trailCap)
	frame := 0

	return a.Sim.RunWithCallback(ctx, a.Sim.InitialState(), a.Dt, a.Duration,
		func(state sim.RobotState, t float64, collided bool) bool {
			if rl.WindowShouldClose() {
				return false
			}

			trail = append(trail, state.Pos)
			if len(trail) > trailCap {
				trail = trail[1:]
			}

			rl.BeginDrawing()
			rl.ClearBackground(colBg)
			rl.DrawRectangleLinesEx(rl.NewRectangle(0, 0, windowSize, windowSize), 2, colWall)

			for i := 1; i < len(trail); i++ {
				rl.DrawLineEx(toScreen(trail[i-1]), toScreen(trail[i]), 2, colTrail)
			}
			rl.DrawCircleV(toScreen(state.Pos), float32(robot.Radius*scale), colRobot)
			rl.DrawText(fmt.Sprintf("t=%.1fs", t), 10, 10, 20, colText)
			rl.EndDrawing()

			if a.FrameDir != "" {
				rl.TakeScreenshot(filepath.Join(a.FrameDir, fmt.Sprintf("frame_%05d.png", frame)))
				frame++
			}

			return true
		})
}
