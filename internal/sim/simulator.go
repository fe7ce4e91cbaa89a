package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// Simulator owns the iteration policy for a walk: it holds the immutable
// specs and the injected random source, and drives the step rule either for
// a fixed step count (batch) or tick-by-tick (streaming).
type Simulator struct {
	arena ArenaSpec
	robot RobotSpec
	rng   *rand.Rand
}

func New(arena ArenaSpec, robot RobotSpec, rng *rand.Rand) *Simulator {
	return &Simulator{arena: arena, robot: robot, rng: rng}
}

func (s *Simulator) Arena() ArenaSpec { return s.arena }
func (s *Simulator) Robot() RobotSpec { return s.robot }

// InitialState places the robot at the arena center with a random heading.
func (s *Simulator) InitialState() RobotState {
	return RobotState{
		Pos:     Point{X: s.arena.Size / 2, Y: s.arena.Size / 2},
		Heading: 2 * math.Pi * s.rng.Float64(),
	}
}

func (s *Simulator) validateSpecs() error {
	if s.arena.Size <= 0 {
		return fmt.Errorf("%w, got %g", ErrInvalidArena, s.arena.Size)
	}
	if s.robot.Radius < 0 {
		return fmt.Errorf("%w, got %g", ErrInvalidRadius, s.robot.Radius)
	}
	if s.robot.Speed <= 0 {
		return fmt.Errorf("%w, got %g", ErrInvalidSpeed, s.robot.Speed)
	}
	if !s.robot.FitsIn(s.arena) {
		return fmt.Errorf("%w: radius %g in arena %g", ErrRobotTooLarge, s.robot.Radius, s.arena.Size)
	}
	return nil
}

// Advance applies one step of the walk using the simulator's random source.
// Tick-driven renderers use this to own their pacing loop.
func (s *Simulator) Advance(state RobotState, dt float64) (RobotState, bool) {
	return Step(state, s.arena, s.robot, dt, s.rng)
}

// Run executes a batch walk of cfg.Steps steps and returns the full position
// history (Steps+1 samples, the initial placement included). The run is
// deterministic for a fixed seed and fixed inputs. Cancellation is honored
// between steps; the partial result is returned alongside ctx.Err.
func (s *Simulator) Run(ctx context.Context, initial RobotState, cfg Config) (*Result, error) {
	if err := s.validateSpecs(); err != nil {
		return nil, err
	}
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidTimeStep, cfg.Dt)
	}
	if cfg.Steps < 0 {
		return nil, fmt.Errorf("%w, got %d", ErrNegativeSteps, cfg.Steps)
	}

	result := &Result{
		Positions: make([]Point, 0, cfg.Steps+1),
		Times:     make([]float64, 0, cfg.Steps+1),
	}

	state := initial
	t := 0.0
	result.Positions = append(result.Positions, state.Pos)
	result.Times = append(result.Times, t)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			result.Final = state
			return result, ctx.Err()
		default:
		}

		var hit bool
		state, hit = Step(state, s.arena, s.robot, cfg.Dt, s.rng)
		if hit {
			result.Collisions++
		}
		t += cfg.Dt

		result.Positions = append(result.Positions, state.Pos)
		result.Times = append(result.Times, t)
	}

	result.Final = state
	return result, nil
}

// RunWithCallback drives the walk tick-by-tick for real-time renderers.
// Each tick uses the same fixed dt, so the trajectory is unaffected by
// rendering jitter and reproducible for a given seed. fn is invoked with the
// initial state and then with every fully computed state; returning false
// stops the run at that tick boundary. The loop ends once sim-time reaches
// duration or ctx is canceled; cancellation never interrupts mid-step.
func (s *Simulator) RunWithCallback(ctx context.Context, initial RobotState, dt, duration float64, fn func(state RobotState, t float64, collided bool) bool) error {
	if err := s.validateSpecs(); err != nil {
		return err
	}
	if dt <= 0 {
		return fmt.Errorf("%w, got %g", ErrInvalidTimeStep, dt)
	}
	if duration <= 0 {
		return fmt.Errorf("%w, got %g", ErrInvalidDuration, duration)
	}

	state := initial
	t := 0.0
	if !fn(state, t, false) {
		return nil
	}

	for t < duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var hit bool
		state, hit = Step(state, s.arena, s.robot, dt, s.rng)
		t += dt

		if !fn(state, t, hit) {
			return nil
		}
	}

	return nil
}
