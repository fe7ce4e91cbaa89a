package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeOffline {
		t.Errorf("expected mode offline, got %s", cfg.Mode)
	}
	if cfg.ArenaSize != 100.0 {
		t.Errorf("expected arena_size 100, got %g", cfg.ArenaSize)
	}
	if cfg.RobotRadius != 2.0 {
		t.Errorf("expected robot_radius 2, got %g", cfg.RobotRadius)
	}
	if cfg.Steps != 1000 {
		t.Errorf("expected steps 1000, got %d", cfg.Steps)
	}
	if cfg.SaveOutput {
		t.Error("save_output should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingKeysKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "mode: realtime\nspeed: 5.0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Mode != ModeRealtime {
		t.Errorf("expected mode realtime, got %s", cfg.Mode)
	}
	if cfg.Speed != 5.0 {
		t.Errorf("expected speed 5, got %g", cfg.Speed)
	}
	if cfg.ArenaSize != DefaultArenaSize {
		t.Errorf("expected default arena_size, got %g", cfg.ArenaSize)
	}
	if cfg.OutputPath != DefaultOutputPath {
		t.Errorf("expected default output_path, got %s", cfg.OutputPath)
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "arena_size: 50.0\nfavorite_color: teal\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unknown keys should be ignored: %v", err)
	}
	if cfg.ArenaSize != 50.0 {
		t.Errorf("expected arena_size 50, got %g", cfg.ArenaSize)
	}
}

func TestLoadLegacyModeNames(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"matplotlib", ModeOffline},
		{"pygame", ModeRealtime},
	}

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("mode: "+tt.in+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if cfg.Mode != tt.want {
			t.Errorf("mode %q: expected %q, got %q", tt.in, tt.want, cfg.Mode)
		}
	}
}

func TestLoadOrCreateWritesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load-or-create failed: %v", err)
	}
	if cfg.ArenaSize != DefaultArenaSize {
		t.Errorf("expected defaults, got arena_size %g", cfg.ArenaSize)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file not created: %v", err)
	}

	// second call must read the file it just wrote
	if _, err := LoadOrCreate(path); err != nil {
		t.Errorf("reload failed: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.ArenaSize = 42.0
	cfg.Seed = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ArenaSize != 42.0 || loaded.Seed != 7 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"bad mode", func(c *Config) { c.Mode = "holodeck" }, false},
		{"zero arena", func(c *Config) { c.ArenaSize = 0 }, false},
		{"negative radius", func(c *Config) { c.RobotRadius = -1 }, false},
		{"robot too large", func(c *Config) { c.RobotRadius = 50 }, false},
		{"zero speed", func(c *Config) { c.Speed = 0 }, false},
		{"zero time step", func(c *Config) { c.TimeStep = 0 }, false},
		{"negative steps", func(c *Config) { c.Steps = -5 }, false},
		{"zero duration", func(c *Config) { c.Duration = 0 }, false},
		{"point robot", func(c *Config) { c.RobotRadius = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("gentle")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Speed != 1 {
		t.Errorf("expected speed 1, got %g", cfg.Speed)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	// mutating the returned copy must not alter the registry
	cfg.Speed = 999
	if Presets["gentle"].Speed == 999 {
		t.Error("GetPreset returned the registry entry itself")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for _, name := range names {
		if cfg := GetPreset(name); cfg == nil {
			t.Errorf("listed preset %q not retrievable", name)
		} else if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}
}
