package experiments

import (
	"context"
	"fmt"
	"time"

	"craftsearch/config"
	"craftsearch/engine"
	"craftsearch/experiments/metrics"
	"craftsearch/game"
	"craftsearch/searcher"
	"craftsearch/world"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// NewPlanner builds a fresh planner for one episode.
func NewPlanner(cfg config.Planner, combine game.CombineFunc, seed uint64, collector metrics.Collector) searcher.Planner {
	options := []searcher.Option{
		searcher.WithMaxDepth(cfg.MaxDepth),
		searcher.WithMetrics(collector),
	}
	if cfg.Kind == config.PlannerBFS {
		return searcher.NewBFS(combine, options...)
	}
	options = append(options,
		searcher.WithSimulations(cfg.Simulations),
		searcher.WithExploration(cfg.Exploration),
		searcher.WithDiscount(cfg.Discount),
		searcher.WithSeed(seed),
	)
	return searcher.NewMCTS(combine, options...)
}

// RunEpisode plays one episode of the catalog's game with its own planner.
func RunEpisode(cfg config.Config, catalog *world.Catalog, seed uint64) (metrics.EpisodeRecord, []metrics.StepRecord, error) {
	record := metrics.EpisodeRecord{
		ID:        uuid.NewString(),
		Planner:   cfg.Planner.Kind,
		Seed:      seed,
		StartTime: time.Now(),
	}

	env, err := world.NewCatalogEnv(catalog)
	if err != nil {
		return record, nil, err
	}
	collector := metrics.NewCollector()
	planner := NewPlanner(cfg.Planner, catalog.Combine, seed, collector)

	e := engine.LocalEngine(env, planner, cfg.MaxSteps, collector)
	e.Episode = record.ID
	result, err := e.Run()
	if err != nil {
		return record, result.Records, fmt.Errorf("episode %s: %w", record.ID, err)
	}

	record.Steps = result.Steps
	record.FinalReward = result.FinalReward
	record.EndTime = time.Now()
	record.Duration = record.EndTime.Sub(record.StartTime)
	return record, result.Records, nil
}

// RunBatch plays cfg.Episodes independent episodes, at most cfg.Parallelism at
// a time. Episode i is seeded with baseSeed+i. cfg is validated first.
func RunBatch(ctx context.Context, cfg config.Config, catalog *world.Catalog, baseSeed uint64) ([]metrics.EpisodeRecord, []metrics.StepRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	episodes := make([]metrics.EpisodeRecord, cfg.Episodes)
	steps := make([][]metrics.StepRecord, cfg.Episodes)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	for i := 0; i < cfg.Episodes; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, records, err := RunEpisode(cfg, catalog, baseSeed+uint64(i))
			if err != nil {
				return err
			}
			episodes[i] = record
			steps[i] = records
			log.Info().Msgf("completed episode %d of %d with reward %d", i+1, cfg.Episodes, record.FinalReward)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var all []metrics.StepRecord
	for _, records := range steps {
		all = append(all, records...)
	}
	return episodes, all, nil
}

// Run plays a batch and stores its records under cfg.OutDir. It returns the
// directory the records were written to.
func Run(ctx context.Context, name string, cfg config.Config, catalog *world.Catalog, baseSeed uint64) (string, error) {
	log.Info().Msgf("starting %s experiment...", name)

	episodes, steps, err := RunBatch(ctx, cfg, catalog, baseSeed)
	if err != nil {
		return "", err
	}

	total := 0
	for _, e := range episodes {
		total += e.FinalReward
	}
	log.Info().
		Int("episodes", len(episodes)).
		Float64("mean_reward", float64(total)/float64(len(episodes))).
		Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(cfg.OutDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteEpisodeRecords(episodes); err != nil {
		return "", err
	}
	log.Info().Msg("stored episode records")
	if err := writer.WriteStepRecords(steps); err != nil {
		return "", err
	}
	log.Info().Msg("stored step records")
	return writer.Dir(), nil
}
