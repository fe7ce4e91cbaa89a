package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/brownsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultArenaSize   = 100.0
	DefaultRobotRadius = 2.0
	DefaultSpeed       = 2.0
	DefaultTimeStep    = 0.5
	DefaultSteps       = 1000
	DefaultDuration    = 60.0
	DefaultOutputPath  = "output"
)

// Renderer modes.
const (
	ModeOffline  = "offline"
	ModeRealtime = "realtime"
)

// Config is the validated settings object consumed by the driver and the
// renderers. Unknown keys in the file are ignored.
type Config struct {
	Mode        string  `yaml:"mode"`
	ArenaSize   float64 `yaml:"arena_size"`
	RobotRadius float64 `yaml:"robot_radius"`
	Speed       float64 `yaml:"speed"`
	TimeStep    float64 `yaml:"time_step"`
	Steps       int     `yaml:"steps"`
	Duration    float64 `yaml:"duration"`
	SaveOutput  bool    `yaml:"save_output"`
	OutputPath  string  `yaml:"output_path"`
	Seed        int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeOffline,
		ArenaSize:   DefaultArenaSize,
		RobotRadius: DefaultRobotRadius,
		Speed:       DefaultSpeed,
		TimeStep:    DefaultTimeStep,
		Steps:       DefaultSteps,
		Duration:    DefaultDuration,
		SaveOutput:  false,
		OutputPath:  DefaultOutputPath,
	}
}

// Load reads path and unmarshals it over the defaults, so missing keys keep
// their documented default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadOrCreate loads path, writing a commented default config file first
// when none exists.
func LoadOrCreate(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, err
			}
		}
		if err := os.WriteFile(path, []byte(defaultConfigFile), 0644); err != nil {
			return nil, err
		}
	}
	return Load(path)
}

// normalize maps legacy backend names onto the two renderer modes.
func (c *Config) normalize() {
	switch c.Mode {
	case "matplotlib":
		c.Mode = ModeOffline
	case "pygame":
		c.Mode = ModeRealtime
	}
}

// Validate rejects settings the simulation cannot run with. It is called
// once after loading; consumers trust the fields afterwards.
func (c *Config) Validate() error {
	if c.Mode != ModeOffline && c.Mode != ModeRealtime {
		return fmt.Errorf("config: unknown mode %q (want %q or %q)", c.Mode, ModeOffline, ModeRealtime)
	}
	if c.ArenaSize <= 0 {
		return fmt.Errorf("config: arena_size must be positive, got %g", c.ArenaSize)
	}
	if c.RobotRadius < 0 {
		return fmt.Errorf("config: robot_radius must be non-negative, got %g", c.RobotRadius)
	}
	if c.RobotRadius >= c.ArenaSize/2 {
		return fmt.Errorf("config: robot_radius %g too large for arena_size %g", c.RobotRadius, c.ArenaSize)
	}
	if c.Speed <= 0 {
		return fmt.Errorf("config: speed must be positive, got %g", c.Speed)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("config: time_step must be positive, got %g", c.TimeStep)
	}
	if c.Steps < 0 {
		return fmt.Errorf("config: steps must be non-negative, got %d", c.Steps)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	return nil
}

func (c *Config) Arena() sim.ArenaSpec {
	return sim.ArenaSpec{Size: c.ArenaSize}
}

func (c *Config) Robot() sim.RobotSpec {
	return sim.RobotSpec{Radius: c.RobotRadius, Speed: c.Speed}
}

const defaultConfigFile = `# Brownian walk simulation configuration

# Renderer mode: 'offline' (animated GIF artifact) or 'realtime' (live view)
mode: offline

# Side length of the square arena
arena_size: 100.0

# Robot disk radius
robot_radius: 2.0

# Movement speed (distance per unit sim-time)
speed: 2.0

# Simulation time step
time_step: 0.5

# Number of simulation steps (offline mode)
steps: 1000

# Maximum run duration in seconds (realtime mode)
duration: 60.0

# Whether to save rendered output
save_output: false

# Directory for saved output files
output_path: output

# Random seed (0 picks one from the clock)
seed: 0
`
