package main

import (
	"bytes"
	"testing"

	"craftsearch/config"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI(t *testing.T) {
	t.Run("plan bakes the apple first", func(t *testing.T) {
		out, err := execute(t, "plan", "--planner", "bfs", "--depth", "1", "--log-level", "error")

		require.NoError(t, err)
		require.Contains(t, out, "action: oven + apple")
		require.Equal(t, config.PlannerBFS, cfg.Planner.Kind)
	})

	t.Run("flags override the defaults", func(t *testing.T) {
		_, err := execute(t, "plan", "--planner", "mcts", "--simulations", "20", "--seed", "3", "--log-level", "error")

		require.NoError(t, err)
		require.Equal(t, 20, cfg.Planner.Simulations)
		require.Equal(t, uint64(3), cfg.Planner.Seed)
	})

	t.Run("invalid planner is rejected", func(t *testing.T) {
		_, err := execute(t, "plan", "--planner", "dfs")

		require.ErrorIs(t, err, config.ErrInvalid)
	})
}
