package sim

import "math"

// Point is a position in arena coordinates, origin at the bottom-left corner.
type Point struct {
	X float64
	Y float64
}

func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ArenaSpec describes the square arena. Walls sit at 0 and Size on both axes.
type ArenaSpec struct {
	Size float64
}

// RobotSpec describes the robot's physical extent and linear speed
// (distance per unit sim-time).
type RobotSpec struct {
	Radius float64
	Speed  float64
}

// FitsIn reports whether the robot disk can move inside the arena at all.
func (r RobotSpec) FitsIn(a ArenaSpec) bool {
	return 2*r.Radius < a.Size
}

// RobotState is the mutable part of the simulation: where the robot is and
// which way it is going. It is a value type; the driver replaces it wholesale
// each step, so no two components ever alias the same state.
type RobotState struct {
	Pos     Point
	Heading float64 // radians
}

// Config holds the iteration parameters for a batch run.
type Config struct {
	Dt    float64
	Steps int
}

// Result is the artifact of a run: one sampled position per completed step
// plus the initial placement.
type Result struct {
	Positions  []Point
	Times      []float64
	Collisions int
	Final      RobotState
}
