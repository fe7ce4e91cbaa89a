// Package viz renders Brownian walk trajectories in the terminal.
//
// Two interchangeable backends implement [Renderer]:
//
//   - [Animation]: offline replay of a completed position history,
//     assembled into an animated GIF
//   - [Live]: real-time Bubble Tea view advancing the walk one fixed-dt
//     step per tick
//
// Both draw onto [Canvas], a Braille-based pixel canvas, through a shared
// arena projection. Real-time runs can additionally dump one PNG per tick
// via [FrameWriter] for external video assembly.
//
// # Key Bindings (live view)
//
//	Space - Pause/Resume
//	R     - Reset to the initial placement
//	Q     - Quit
package viz
