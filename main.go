package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"craftsearch/config"
	"craftsearch/engine"
	"craftsearch/experiments"
	"craftsearch/experiments/metrics"
	"craftsearch/searcher"
	"craftsearch/world"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	catalogPath string
	plannerKind string
	maxDepth    int
	simulations int
	seed        uint64
	logLevel    string
	episodes    int
	parallelism int
	outDir      string

	// resolved in PersistentPreRunE
	cfg     config.Config
	catalog *world.Catalog

	rootCmd = &cobra.Command{
		Use:               "craftsearch",
		Short:             "Plan crafting moves with breadth-first search or MCTS",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	planCmd = &cobra.Command{
		Use:   "plan",
		Short: "Print the action chosen for the starting inventory",
		Args:  cobra.NoArgs,
		RunE:  runPlan,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Play one episode and log every step",
		Args:  cobra.NoArgs,
		RunE:  runEpisode,
	}

	batchCmd = &cobra.Command{
		Use:   "batch [name]",
		Short: "Play episodes in parallel and write their records as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBatch,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML run configuration")
	flags.StringVar(&catalogPath, "catalog", "", "YAML item catalog (default: built-in kitchen)")
	flags.StringVar(&plannerKind, "planner", config.PlannerMCTS, "planner: bfs or mcts")
	flags.IntVar(&maxDepth, "depth", 0, "search depth")
	flags.IntVar(&simulations, "simulations", 0, "MCTS simulations per decision")
	flags.Uint64Var(&seed, "seed", 0, "random seed (0 = time based)")
	flags.StringVar(&logLevel, "log-level", "info", "trace, debug, info, warn or error")

	batchCmd.Flags().IntVar(&episodes, "episodes", 0, "number of episodes")
	batchCmd.Flags().IntVar(&parallelism, "parallelism", 0, "episodes played at once")
	batchCmd.Flags().StringVar(&outDir, "out", "", "directory for CSV records")

	rootCmd.AddCommand(planCmd, runCmd, batchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// setup resolves the configuration: defaults, then the config file, then any
// flag set on the command line.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg = config.Default()
	if configPath != "" {
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	changed := cmd.Flags().Changed
	if changed("catalog") {
		cfg.Catalog = catalogPath
	}
	if changed("planner") {
		cfg.Planner.Kind = plannerKind
	}
	if changed("depth") {
		cfg.Planner.MaxDepth = maxDepth
	}
	if changed("simulations") {
		cfg.Planner.Simulations = simulations
	}
	if changed("seed") {
		cfg.Planner.Seed = seed
	}
	if changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if changed("episodes") {
		cfg.Episodes = episodes
	}
	if changed("parallelism") {
		cfg.Parallelism = parallelism
	}
	if changed("out") {
		cfg.OutDir = outDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	if cfg.Planner.Seed == 0 {
		cfg.Planner.Seed = uint64(time.Now().UnixNano())
	}

	if cfg.Catalog == "" {
		catalog = world.Default()
		return nil
	}
	catalog, err = world.LoadCatalog(cfg.Catalog)
	return err
}

func runPlan(cmd *cobra.Command, _ []string) error {
	inv, err := catalog.StartingInventory()
	if err != nil {
		return err
	}
	planner := experiments.NewPlanner(cfg.Planner, catalog.Combine, cfg.Planner.Seed, metrics.NewDummyCollector())
	action, err := planner.PlanAction(inv)
	if err != nil {
		return err
	}
	named, err := engine.Translate(inv, action)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "inventory: %s\n", inv.Summary())
	if named == nil {
		fmt.Fprintln(out, "action: submit")
	} else {
		fmt.Fprintf(out, "action: %s + %s\n", named.First, named.Second)
	}
	if reporter, ok := planner.(searcher.Reporter); ok {
		for _, stat := range reporter.Stats() {
			fmt.Fprintf(out, "  %-8s visits=%-5d value=%.2f depth=%d\n", stat.Action, stat.Visits, stat.Value, stat.Depth)
		}
	}
	return nil
}

func runEpisode(cmd *cobra.Command, _ []string) error {
	record, _, err := experiments.RunEpisode(cfg, catalog, cfg.Planner.Seed)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "episode %s: reward %d after %d steps\n", record.ID, record.FinalReward, record.Steps)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	name := cfg.Planner.Kind
	if len(args) == 1 {
		name = args[0]
	}
	dir, err := experiments.Run(cmd.Context(), name, cfg, catalog, cfg.Planner.Seed)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "records written to %s\n", dir)
	return nil
}
