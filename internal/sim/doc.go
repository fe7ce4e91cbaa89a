// Package sim implements the Brownian-like random walk of a disk robot
// inside a bounded square arena.
//
// The package separates the pure step rule from the iteration policy:
//
//   - [Step]: one position update with boundary clamping and randomized
//     reflection off the walls
//   - [Simulator]: batch and streaming drivers over the step rule
//   - [Result]: the sampled position history handed to renderers
//
// # Example
//
//	rng := rand.New(rand.NewSource(42))
//	s := sim.New(sim.ArenaSpec{Size: 100}, sim.RobotSpec{Radius: 2, Speed: 2}, rng)
//	result, _ := s.Run(ctx, s.InitialState(), sim.Config{Dt: 0.5, Steps: 1000})
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe: the random source and the state
// history have a single owner for the lifetime of a run.
package sim
