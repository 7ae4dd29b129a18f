package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"craftsearch/config"
	"craftsearch/experiments/metrics"
	"craftsearch/searcher"
	"craftsearch/world"

	"github.com/stretchr/testify/require"
)

func bfsConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Planner.Kind = config.PlannerBFS
	cfg.Planner.MaxDepth = 1
	cfg.MaxSteps = 3
	cfg.Episodes = 3
	cfg.Parallelism = 2
	cfg.OutDir = t.TempDir()
	return cfg
}

func TestNewPlanner(t *testing.T) {
	catalog := world.Default()
	collector := metrics.NewDummyCollector()

	t.Run("bfs", func(t *testing.T) {
		cfg := config.Default().Planner
		cfg.Kind = config.PlannerBFS

		_, ok := NewPlanner(cfg, catalog.Combine, 1, collector).(*searcher.BFS)

		require.True(t, ok)
	})

	t.Run("mcts", func(t *testing.T) {
		_, ok := NewPlanner(config.Default().Planner, catalog.Combine, 1, collector).(*searcher.MCTS)

		require.True(t, ok)
	})
}

func TestRunEpisode(t *testing.T) {
	cfg := bfsConfig(t)

	record, steps, err := RunEpisode(cfg, world.Default(), 42)

	require.NoError(t, err)
	require.NotEmpty(t, record.ID)
	require.Equal(t, uint64(42), record.Seed)
	require.Equal(t, config.PlannerBFS, record.Planner)
	require.Len(t, steps, record.Steps)
	// Baking the apple is the best single move from the starting kitchen.
	require.GreaterOrEqual(t, record.FinalReward, 18)
	for i, step := range steps {
		require.Equal(t, record.ID, step.Episode)
		require.Equal(t, i+1, step.Step)
		require.Equal(t, config.PlannerBFS, step.Planner)
	}
	require.False(t, record.EndTime.Before(record.StartTime))
}

func TestRunBatch(t *testing.T) {
	t.Run("every episode gets its own id and seed", func(t *testing.T) {
		cfg := bfsConfig(t)

		episodes, steps, err := RunBatch(context.Background(), cfg, world.Default(), 100)

		require.NoError(t, err)
		require.Len(t, episodes, cfg.Episodes)
		ids := map[string]bool{}
		total := 0
		for i, e := range episodes {
			require.Equal(t, uint64(100+i), e.Seed)
			ids[e.ID] = true
			total += e.Steps
		}
		require.Len(t, ids, cfg.Episodes)
		require.Len(t, steps, total)
	})

	t.Run("mcts episodes with the same seed agree", func(t *testing.T) {
		cfg := bfsConfig(t)
		cfg.Planner = config.Default().Planner
		cfg.Planner.Simulations = 30
		cfg.Planner.MaxDepth = 2
		cfg.Episodes = 2

		first, _, err := RunBatch(context.Background(), cfg, world.Default(), 7)
		require.NoError(t, err)
		second, _, err := RunBatch(context.Background(), cfg, world.Default(), 7)
		require.NoError(t, err)

		for i := range first {
			require.Equal(t, first[i].FinalReward, second[i].FinalReward)
			require.Equal(t, first[i].Steps, second[i].Steps)
		}
	})

	t.Run("rejects an invalid config before starting", func(t *testing.T) {
		for _, broken := range []func(*config.Config){
			func(c *config.Config) { c.Parallelism = 0 },
			func(c *config.Config) { c.Episodes = 0 },
			func(c *config.Config) { c.Planner.Kind = "dfs" },
		} {
			cfg := bfsConfig(t)
			broken(&cfg)

			_, _, err := RunBatch(context.Background(), cfg, world.Default(), 1)

			require.ErrorIs(t, err, config.ErrInvalid)
		}
	})

	t.Run("a cancelled context stops the batch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := RunBatch(ctx, bfsConfig(t), world.Default(), 1)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRun(t *testing.T) {
	cfg := bfsConfig(t)

	dir, err := Run(context.Background(), "smoke", cfg, world.Default(), 1)

	require.NoError(t, err)
	require.Equal(t, filepath.Join(cfg.OutDir, "smoke"), filepath.Dir(dir))
	for _, file := range []string{"episodes.csv", "steps.csv"} {
		_, err := os.Stat(filepath.Join(dir, file))
		require.NoError(t, err, file)
	}
}
