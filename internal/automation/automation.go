package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/brownsim/internal/sim"
	"github.com/san-kum/brownsim/internal/storage"
	"github.com/san-kum/brownsim/internal/viz"
)

// Scenario defines a scripted sequence of walks
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is a single walk in a scenario
type ScenarioRun struct {
	ArenaSize   float64 `yaml:"arena_size"`
	RobotRadius float64 `yaml:"robot_radius"`
	Speed       float64 `yaml:"speed"`
	TimeStep    float64 `yaml:"time_step"`
	Steps       int     `yaml:"steps"`
	Seed        int64   `yaml:"seed"`
	SaveAs      string  `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("scenario %s: no runs", path)
	}

	return &scenario, nil
}

func (r ScenarioRun) specs() (sim.ArenaSpec, sim.RobotSpec) {
	return sim.ArenaSpec{Size: r.ArenaSize}, sim.RobotSpec{Radius: r.RobotRadius, Speed: r.Speed}
}

func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// RunScenario executes all runs in a scenario, saving each to the store.
// When a run names a save_as file a GIF of its trajectory is written under
// outputDir as well. Returns the store IDs of the completed runs.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, outputDir string) ([]string, error) {
	ids := make([]string, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		fmt.Printf("Running %d/%d: arena=%.1f speed=%.1f steps=%d\n",
			i+1, len(scenario.Runs), run.ArenaSize, run.Speed, run.Steps)

		arena, robot := run.specs()
		seed := resolveSeed(run.Seed)
		s := sim.New(arena, robot, rand.New(rand.NewSource(seed)))

		result, err := s.Run(ctx, s.InitialState(), sim.Config{Dt: run.TimeStep, Steps: run.Steps})
		if err != nil {
			return ids, fmt.Errorf("run %d: %w", i+1, err)
		}

		id, err := store.Save(arena, robot, run.TimeStep, seed, result)
		if err != nil {
			return ids, fmt.Errorf("run %d save: %w", i+1, err)
		}
		ids = append(ids, id)

		if run.SaveAs != "" {
			anim := viz.NewAnimation(arena, robot, result)
			anim.OutputPath = filepath.Join(outputDir, run.SaveAs)
			if err := anim.Render(ctx); err != nil {
				return ids, fmt.Errorf("run %d animation: %w", i+1, err)
			}
		}
	}

	return ids, nil
}

// ParameterSweep runs walks across a range of values for one parameter
type ParameterSweep struct {
	Base      ScenarioRun
	ParamName string // "speed", "robot_radius" or "arena_size"
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Seed      int64
}

// SweepResult holds the outcome for one parameter value
type SweepResult struct {
	ParamValue   float64
	Collisions   int
	Displacement float64 // net distance from the start position
}

// RunSweep executes a parameter sweep. Every walk uses the same seed so
// results differ only through the swept parameter.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	seed := resolveSeed(sweep.Seed)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	results := make([]SweepResult, 0, sweep.NumSteps)

	for i := 0; i < sweep.NumSteps; i++ {
		val := sweep.ParamMin + float64(i)*paramStep

		run := sweep.Base
		switch sweep.ParamName {
		case "speed":
			run.Speed = val
		case "robot_radius":
			run.RobotRadius = val
		case "arena_size":
			run.ArenaSize = val
		default:
			return nil, fmt.Errorf("unknown sweep parameter %q", sweep.ParamName)
		}

		arena, robot := run.specs()
		s := sim.New(arena, robot, rand.New(rand.NewSource(seed)))

		start := s.InitialState()
		result, err := s.Run(ctx, start, sim.Config{Dt: run.TimeStep, Steps: run.Steps})
		if err != nil {
			return results, fmt.Errorf("sweep %d: %w", i+1, err)
		}

		results = append(results, SweepResult{
			ParamValue:   val,
			Collisions:   result.Collisions,
			Displacement: start.Pos.DistanceTo(result.Final.Pos),
		})

		fmt.Printf("Sweep %d/%d: %s=%.4f collisions=%d\n",
			i+1, sweep.NumSteps, sweep.ParamName, val, result.Collisions)
	}

	return results, nil
}

// EnsembleConfig defines a Monte Carlo ensemble of walks
type EnsembleConfig struct {
	Base      ScenarioRun
	NumTrials int
	Seed      int64
}

// TrialResult holds one ensemble member
type TrialResult struct {
	TrialID      int
	Seed         int64
	Collisions   int
	Displacement float64
}

// RunEnsemble executes NumTrials walks with independent seeds drawn from a
// master generator, so the whole ensemble is reproducible from one seed.
func RunEnsemble(ctx context.Context, cfg *EnsembleConfig, store *storage.Store) ([]TrialResult, error) {
	master := rand.New(rand.NewSource(resolveSeed(cfg.Seed)))
	results := make([]TrialResult, 0, cfg.NumTrials)

	arena, robot := cfg.Base.specs()

	for trial := 0; trial < cfg.NumTrials; trial++ {
		seed := master.Int63()
		s := sim.New(arena, robot, rand.New(rand.NewSource(seed)))

		start := s.InitialState()
		result, err := s.Run(ctx, start, sim.Config{Dt: cfg.Base.TimeStep, Steps: cfg.Base.Steps})
		if err != nil {
			return results, err
		}

		if store != nil {
			if _, err := store.Save(arena, robot, cfg.Base.TimeStep, seed, result); err != nil {
				return results, err
			}
		}

		results = append(results, TrialResult{
			TrialID:      trial,
			Seed:         seed,
			Collisions:   result.Collisions,
			Displacement: start.Pos.DistanceTo(result.Final.Pos),
		})

		if (trial+1)%10 == 0 {
			fmt.Printf("Ensemble: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// EnsembleStats computes summary statistics over an ensemble
func EnsembleStats(results []TrialResult) (meanDisplacement, meanCollisions, maxDisplacement float64) {
	if len(results) == 0 {
		return 0, 0, 0
	}
	for _, r := range results {
		meanDisplacement += r.Displacement
		meanCollisions += float64(r.Collisions)
		maxDisplacement = math.Max(maxDisplacement, r.Displacement)
	}
	n := float64(len(results))
	return meanDisplacement / n, meanCollisions / n, maxDisplacement
}
