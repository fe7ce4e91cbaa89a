package viz

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"

	"github.com/san-kum/brownsim/internal/sim"
)

// Pixel size of one braille character cell in rasterized frames.
const (
	cellPxW = 8
	cellPxH = 16
)

const maxAnimationFrames = 600

var framePalette = color.Palette{color.Black, color.White}

// Animation is the offline renderer: it replays a completed position history
// frame by frame and assembles the frames into an animated GIF.
type Animation struct {
	arena  sim.ArenaSpec
	robot  sim.RobotSpec
	result *sim.Result

	// TrailLength is how many recent positions each frame shows.
	TrailLength int
	// Stride subsamples the history; 0 picks one that caps the frame count.
	Stride int
	// Delay is the per-frame delay in 100ths of a second.
	Delay int
	// OutputPath is where Render writes the GIF.
	OutputPath string
}

func NewAnimation(arena sim.ArenaSpec, robot sim.RobotSpec, result *sim.Result) *Animation {
	return &Animation{
		arena:       arena,
		robot:       robot,
		result:      result,
		TrailLength: 100,
		Delay:       5,
	}
}

// Frames rasterizes the history into paletted images, one per sampled
// position (subject to Stride). Cancellation is honored between frames.
func (a *Animation) Frames(ctx context.Context) ([]*image.Paletted, error) {
	positions := a.result.Positions
	if len(positions) == 0 {
		return nil, fmt.Errorf("viz: empty position history")
	}

	stride := a.Stride
	if stride <= 0 {
		stride = 1
		if n := len(positions); n > maxAnimationFrames {
			stride = (n + maxAnimationFrames - 1) / maxAnimationFrames
		}
	}

	sc := newScene(a.arena, a.robot)
	frames := make([]*image.Paletted, 0, len(positions)/stride+1)

	for i := 0; i < len(positions); i += stride {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		start := i - a.TrailLength
		if start < 0 {
			start = 0
		}
		sc.draw(positions[start:i+1], positions[i])
		frames = append(frames, rasterize(sc.canvas))
	}

	return frames, nil
}

// Render builds the animation and writes it to OutputPath. The position
// history is untouched on failure, so a caller can retry with another path.
func (a *Animation) Render(ctx context.Context) error {
	if a.OutputPath == "" {
		return fmt.Errorf("viz: no output path for animation")
	}

	frames, err := a.Frames(ctx)
	if err != nil {
		return err
	}

	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, a.Delay)
	}

	if dir := filepath.Dir(a.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("viz: create output dir: %w", err)
		}
	}

	f, err := os.Create(a.OutputPath)
	if err != nil {
		return fmt.Errorf("viz: create %s: %w", a.OutputPath, err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("viz: encode gif: %w", err)
	}
	return f.Close()
}

// rasterize expands each braille cell into a block of image pixels, one dot
// of the pattern at a time.
func rasterize(c *Canvas) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellPxW, c.Height*cellPxH), framePalette)

	dotW, dotH := cellPxW/2, cellPxH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			baseX, baseY := col*cellPxW, row*cellPxH

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}

	return img
}
