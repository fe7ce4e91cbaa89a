package viz

import "context"

// Renderer is the capability shared by the rendering backends: the offline
// animation builder and the live terminal view. Renderers consume the
// position history (or are driven tick-by-tick) and never mutate simulation
// state.
type Renderer interface {
	Render(ctx context.Context) error
}

var (
	_ Renderer = (*Animation)(nil)
	_ Renderer = (*Live)(nil)
)
