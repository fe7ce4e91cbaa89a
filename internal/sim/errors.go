package sim

import "errors"

// Domain errors for simulation setup. All are programmer/configuration
// errors: a run never starts with an invalid spec.
var (
	// ErrInvalidArena indicates a non-positive arena size.
	ErrInvalidArena = errors.New("sim: arena size must be positive")

	// ErrInvalidRadius indicates a negative robot radius.
	ErrInvalidRadius = errors.New("sim: robot radius must be non-negative")

	// ErrInvalidSpeed indicates a non-positive robot speed.
	ErrInvalidSpeed = errors.New("sim: robot speed must be positive")

	// ErrRobotTooLarge indicates the robot disk cannot move inside the arena.
	ErrRobotTooLarge = errors.New("sim: robot diameter must be smaller than the arena")

	// ErrInvalidTimeStep indicates a non-positive dt.
	ErrInvalidTimeStep = errors.New("sim: time step must be positive")

	// ErrNegativeSteps indicates a negative step count.
	ErrNegativeSteps = errors.New("sim: step count must be non-negative")

	// ErrInvalidDuration indicates a non-positive real-time budget.
	ErrInvalidDuration = errors.New("sim: duration must be positive")
)
