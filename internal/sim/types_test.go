package sim

import (
	"math"
	"testing"
)

func TestPointDistanceTo(t *testing.T) {
	tests := []struct {
		p, q     Point
		expected float64
	}{
		{Point{0, 0}, Point{3, 4}, 5.0},
		{Point{1, 1}, Point{1, 1}, 0.0},
		{Point{-1, 0}, Point{1, 0}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.p.DistanceTo(tt.q); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("DistanceTo(%v, %v) = %v, want %v", tt.p, tt.q, got, tt.expected)
		}
	}
}

func TestRobotFitsIn(t *testing.T) {
	tests := []struct {
		name  string
		robot RobotSpec
		arena ArenaSpec
		fits  bool
	}{
		{"comfortable", RobotSpec{Radius: 2}, ArenaSpec{Size: 100}, true},
		{"exactly half", RobotSpec{Radius: 5}, ArenaSpec{Size: 10}, false},
		{"too large", RobotSpec{Radius: 6}, ArenaSpec{Size: 10}, false},
		{"point robot", RobotSpec{Radius: 0}, ArenaSpec{Size: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.robot.FitsIn(tt.arena); got != tt.fits {
				t.Errorf("FitsIn() = %v, want %v", got, tt.fits)
			}
		})
	}
}
