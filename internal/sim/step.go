package sim

import (
	"math"
	"math/rand"
)

// Step advances the robot by one time increment. The robot moves along its
// heading at the spec'd speed; if the candidate position would push the disk
// past a wall, the offending coordinate is clamped so the disk stays fully
// inside and the heading is reversed plus a uniform perturbation of up to a
// quarter turn either way. The perturbation is drawn once per step even when
// both axes hit (corner approach).
//
// All randomness flows through rng; nothing touches process-wide state.
// dt must be positive: a zero or negative dt is a caller bug and panics.
func Step(s RobotState, arena ArenaSpec, robot RobotSpec, dt float64, rng *rand.Rand) (RobotState, bool) {
	if dt <= 0 {
		panic("sim: non-positive dt")
	}

	next := s
	next.Pos.X += robot.Speed * math.Cos(s.Heading) * dt
	next.Pos.Y += robot.Speed * math.Sin(s.Heading) * dt

	collided := false

	if next.Pos.X-robot.Radius < 0 {
		next.Pos.X = robot.Radius
		collided = true
	} else if next.Pos.X+robot.Radius > arena.Size {
		next.Pos.X = arena.Size - robot.Radius
		collided = true
	}

	if next.Pos.Y-robot.Radius < 0 {
		next.Pos.Y = robot.Radius
		collided = true
	} else if next.Pos.Y+robot.Radius > arena.Size {
		next.Pos.Y = arena.Size - robot.Radius
		collided = true
	}

	if collided {
		delta := (rng.Float64() - 0.5) * math.Pi // U(-pi/2, pi/2)
		next.Heading = math.Mod(s.Heading+math.Pi+delta, 2*math.Pi)
		if next.Heading < 0 {
			next.Heading += 2 * math.Pi
		}
	}

	return next, collided
}
