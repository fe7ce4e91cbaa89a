package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/brownsim/internal/automation"
	"github.com/san-kum/brownsim/internal/config"
	"github.com/san-kum/brownsim/internal/export"
	"github.com/san-kum/brownsim/internal/gui"
	"github.com/san-kum/brownsim/internal/sim"
	"github.com/san-kum/brownsim/internal/storage"
	"github.com/san-kum/brownsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	arenaSize  float64
	radius     float64
	speed      float64
	dt         float64
	steps      int
	duration   float64
	seed       int64
	frameRate  int
	saveFrames bool
	outputPath string
	outFile    string
	svgSize    int
	// Sweep parameters
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// Ensemble parameters
	numTrials  int
	saveTrials bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "brownsim",
		Short: "brownian motion robot simulator",
		RunE:  runFromConfig,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".brownsim", "data directory")
	rootCmd.Flags().StringVar(&configFile, "config", "config.yaml", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a batch walk and save it",
		RunE:  runWalk,
	}
	addWalkFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run walk with live terminal view",
		RunE:  runLive,
	}
	addWalkFlags(liveCmd)
	liveCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().BoolVar(&saveFrames, "save", false, "save PNG frames")
	liveCmd.Flags().StringVar(&outputPath, "out", config.DefaultOutputPath, "output directory")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run walk in a native window",
		RunE:  runGUI,
	}
	addWalkFlags(guiCmd)
	guiCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	guiCmd.Flags().BoolVar(&saveFrames, "save", false, "save screenshot frames")
	guiCmd.Flags().StringVar(&outputPath, "out", config.DefaultOutputPath, "output directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved walks",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot walk coordinates over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	gifCmd := &cobra.Command{
		Use:   "gif [run_id]",
		Short: "render a saved walk to an animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  renderGIF,
	}
	gifCmd.Flags().StringVar(&outFile, "out", "", "output file (default output/<run_id>.gif)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a saved walk trajectory to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVar(&outFile, "out", "", "output file (default output/<run_id>.svg)")
	svgCmd.Flags().IntVar(&svgSize, "size", 512, "image size in pixels")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export walk positions to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export walk data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario of walks",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&outputPath, "out", config.DefaultOutputPath, "output directory for artifacts")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter across a range",
		RunE:  runSweep,
	}
	addWalkFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps per walk")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "speed", "parameter to sweep (speed, robot_radius, arena_size)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1.0, "minimum parameter value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 10.0, "maximum parameter value")
	sweepCmd.Flags().IntVar(&sweepSteps, "points", 10, "number of sweep points")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run many independent walks and report statistics",
		RunE:  runEnsemble,
	}
	addWalkFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps per walk")
	ensembleCmd.Flags().IntVar(&numTrials, "trials", 50, "number of trials")
	ensembleCmd.Flags().BoolVar(&saveTrials, "save", false, "save every trial to the store")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, gifCmd, svgCmd,
		exportCSVCmd, exportJSONCmd, presetsCmd, batchCmd, sweepCmd, ensembleCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addWalkFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&arenaSize, "arena", config.DefaultArenaSize, "arena side length")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRobotRadius, "robot radius")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "robot speed")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultTimeStep, "timestep")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
}

func resolveSeed(s int64) int64 {
	if s == 0 {
		return time.Now().UnixNano()
	}
	return s
}

func newSimulator(cfg *config.Config, seed int64) *sim.Simulator {
	return sim.New(cfg.Arena(), cfg.Robot(), rand.New(rand.NewSource(seed)))
}

// flagConfig builds a Config from the walk flags, starting from a preset or
// config file when given. Explicitly set flags win over both.
func flagConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		fc, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fc
	}

	if cmd.Flags().Changed("arena") {
		cfg.ArenaSize = arenaSize
	}
	if cmd.Flags().Changed("radius") {
		cfg.RobotRadius = radius
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed = speed
	}
	if cmd.Flags().Changed("dt") {
		cfg.TimeStep = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runFromConfig is the default entry point: load config.yaml (creating it on
// first use) and dispatch on the configured renderer mode.
func runFromConfig(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	runSeed := resolveSeed(cfg.Seed)

	switch cfg.Mode {
	case config.ModeRealtime:
		frameDir := ""
		if cfg.SaveOutput {
			frameDir = filepath.Join(cfg.OutputPath, "frames")
		}
		live := &viz.Live{
			Sim:      newSimulator(cfg, runSeed),
			Dt:       cfg.TimeStep,
			Duration: cfg.Duration,
			FPS:      30,
			FrameDir: frameDir,
		}
		return live.Render(context.Background())

	default:
		s := newSimulator(cfg, runSeed)
		fmt.Printf("running %d-step walk (arena=%.1f, speed=%.1f, seed=%d)...\n",
			cfg.Steps, cfg.ArenaSize, cfg.Speed, runSeed)

		start := time.Now()
		result, err := s.Run(context.Background(), s.InitialState(), sim.Config{Dt: cfg.TimeStep, Steps: cfg.Steps})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Arena(), cfg.Robot(), cfg.TimeStep, runSeed, result)
		if err != nil {
			return err
		}

		printSummary(runID, result, elapsed)

		if cfg.SaveOutput {
			anim := viz.NewAnimation(cfg.Arena(), cfg.Robot(), result)
			anim.OutputPath = filepath.Join(cfg.OutputPath, "brownian_simulation.gif")
			if err := anim.Render(context.Background()); err != nil {
				return err
			}
			fmt.Printf("animation: %s\n", anim.OutputPath)
			return nil
		}

		plotPositions(result.Positions)
		return nil
	}
}

func runWalk(cmd *cobra.Command, args []string) error {
	cfg, err := flagConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runSeed := resolveSeed(cfg.Seed)
	s := newSimulator(cfg, runSeed)

	fmt.Printf("running %d-step walk (arena=%.1f, speed=%.1f, seed=%d)...\n",
		cfg.Steps, cfg.ArenaSize, cfg.Speed, runSeed)
	start := time.Now()

	result, err := s.Run(context.Background(), s.InitialState(), sim.Config{Dt: cfg.TimeStep, Steps: cfg.Steps})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Arena(), cfg.Robot(), cfg.TimeStep, runSeed, result)
	if err != nil {
		return err
	}

	printSummary(runID, result, elapsed)
	return nil
}

func printSummary(runID string, result *sim.Result, elapsed time.Duration) {
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Positions))
	fmt.Printf("collisions: %d\n", result.Collisions)
	fmt.Printf("final position: (%.2f, %.2f)\n", result.Final.Pos.X, result.Final.Pos.Y)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := flagConfig(cmd)
	if err != nil {
		return err
	}

	frameDir := ""
	if saveFrames {
		frameDir = filepath.Join(outputPath, "frames")
	}

	live := &viz.Live{
		Sim:      newSimulator(cfg, resolveSeed(cfg.Seed)),
		Dt:       cfg.TimeStep,
		Duration: cfg.Duration,
		FPS:      frameRate,
		FrameDir: frameDir,
	}
	return live.Render(context.Background())
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := flagConfig(cmd)
	if err != nil {
		return err
	}

	frameDir := ""
	if saveFrames {
		frameDir = filepath.Join(outputPath, "frames")
	}

	app := &gui.App{
		Sim:      newSimulator(cfg, resolveSeed(cfg.Seed)),
		Dt:       cfg.TimeStep,
		Duration: cfg.Duration,
		FrameDir: frameDir,
	}
	return app.Render(context.Background())
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tARENA\tRADIUS\tSPEED\tDT\tSTEPS\tCOLLISIONS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%.1f\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.ArenaSize,
			run.RobotRadius,
			run.Speed,
			run.Dt,
			run.Steps,
			run.Collisions,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	positions, _, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("arena: %.1f  collisions: %d\n", meta.ArenaSize, meta.Collisions)
	fmt.Printf("samples: %d\n\n", len(positions))

	plotPositions(positions)
	return nil
}

func plotPositions(positions []sim.Point) {
	xs := make([]float64, len(positions))
	ys := make([]float64, len(positions))
	for i, p := range positions {
		xs[i] = p.X
		ys[i] = p.Y
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{xs, "x vs time"},
		{ys, "y vs time"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

// loadResult rebuilds a batch result from the store so renderers can consume
// saved walks the same way they consume fresh ones.
func loadResult(st *storage.Store, runID string) (*storage.RunMetadata, *sim.Result, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	positions, times, err := st.LoadPositions(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(positions) == 0 {
		return nil, nil, fmt.Errorf("run %s has no position data", runID)
	}

	result := &sim.Result{
		Positions:  positions,
		Times:      times,
		Collisions: meta.Collisions,
		Final:      sim.RobotState{Pos: positions[len(positions)-1]},
	}
	return meta, result, nil
}

func renderGIF(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, result, err := loadResult(st, runID)
	if err != nil {
		return err
	}

	arena := sim.ArenaSpec{Size: meta.ArenaSize}
	robot := sim.RobotSpec{Radius: meta.RobotRadius, Speed: meta.Speed}

	anim := viz.NewAnimation(arena, robot, result)
	anim.OutputPath = outFile
	if anim.OutputPath == "" {
		anim.OutputPath = filepath.Join(config.DefaultOutputPath, runID+".gif")
	}

	if err := anim.Render(context.Background()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", anim.OutputPath)
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, result, err := loadResult(st, runID)
	if err != nil {
		return err
	}

	arena := sim.ArenaSpec{Size: meta.ArenaSize}
	robot := sim.RobotSpec{Radius: meta.RobotRadius, Speed: meta.Speed}

	path := outFile
	if path == "" {
		path = filepath.Join(config.DefaultOutputPath, runID+".svg")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := export.WriteTrajectorySVG(path, result.Positions, arena, robot, svgSize); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	positions, times, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "x", "y"}); err != nil {
		return err
	}
	for i, p := range positions {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	positions, times, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}

	pairs := make([][]float64, len(positions))
	for i, p := range positions {
		pairs[i] = []float64{p.X, p.Y}
	}

	return storage.ExportJSON(os.Stdout, meta, pairs, times)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tARENA\tRADIUS\tSPEED\tDT\tSTEPS")

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\t%.2f\t%d\n",
			name, p.ArenaSize, p.RobotRadius, p.Speed, p.TimeStep, p.Steps)
	}

	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	ids, err := automation.RunScenario(context.Background(), scenario, st, outputPath)
	if err != nil {
		return err
	}

	fmt.Printf("\ncompleted %d runs:\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := flagConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base: automation.ScenarioRun{
			ArenaSize:   cfg.ArenaSize,
			RobotRadius: cfg.RobotRadius,
			Speed:       cfg.Speed,
			TimeStep:    cfg.TimeStep,
			Steps:       cfg.Steps,
		},
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Seed:      cfg.Seed,
	}

	results, err := automation.RunSweep(context.Background(), sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCOLLISIONS\tDISPLACEMENT\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%d\t%.2f\n", r.ParamValue, r.Collisions, r.Displacement)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	disp := make([]float64, len(results))
	for i, r := range results {
		disp[i] = r.Displacement
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(disp,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("net displacement vs %s", sweepParam)),
	))

	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := flagConfig(cmd)
	if err != nil {
		return err
	}

	var st *storage.Store
	if saveTrials {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	ensemble := &automation.EnsembleConfig{
		Base: automation.ScenarioRun{
			ArenaSize:   cfg.ArenaSize,
			RobotRadius: cfg.RobotRadius,
			Speed:       cfg.Speed,
			TimeStep:    cfg.TimeStep,
			Steps:       cfg.Steps,
		},
		NumTrials: numTrials,
		Seed:      cfg.Seed,
	}

	results, err := automation.RunEnsemble(context.Background(), ensemble, st)
	if err != nil {
		return err
	}

	meanDisp, meanColl, maxDisp := automation.EnsembleStats(results)
	fmt.Printf("\ntrials: %d\n", len(results))
	fmt.Printf("mean displacement: %.2f\n", meanDisp)
	fmt.Printf("max displacement: %.2f\n", maxDisp)
	fmt.Printf("mean collisions: %.1f\n", meanColl)

	return nil
}
