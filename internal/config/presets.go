package config

import "sort"

// Presets are named walk configurations for quick experimentation.
var Presets = map[string]*Config{
	"gentle": {
		Mode: ModeOffline, ArenaSize: 100, RobotRadius: 2, Speed: 1,
		TimeStep: 0.5, Steps: 1000, Duration: 60, OutputPath: DefaultOutputPath,
	},
	"energetic": {
		Mode: ModeOffline, ArenaSize: 100, RobotRadius: 2, Speed: 8,
		TimeStep: 0.25, Steps: 2000, Duration: 60, OutputPath: DefaultOutputPath,
	},
	"cramped": {
		Mode: ModeOffline, ArenaSize: 20, RobotRadius: 4, Speed: 3,
		TimeStep: 0.5, Steps: 1500, Duration: 60, OutputPath: DefaultOutputPath,
	},
	"marathon": {
		Mode: ModeOffline, ArenaSize: 200, RobotRadius: 2, Speed: 2,
		TimeStep: 0.5, Steps: 20000, Duration: 300, OutputPath: DefaultOutputPath,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
