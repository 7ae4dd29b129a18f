package engine

import (
	"craftsearch/experiments/metrics"
	"craftsearch/game"
	"craftsearch/meta"
	"craftsearch/searcher"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Engine struct {
	Env      Environment
	Planner  searcher.Planner
	MaxSteps int
	Episode  string
	Metrics  metrics.Collector
	Logger   zerolog.Logger
}

type EpisodeResult struct {
	Steps       int
	FinalReward int
	Submitted   bool
	Records     []metrics.StepRecord
}

// LocalEngine pairs a planner with an environment. collector may be nil, in
// which case search metrics are not recorded.
func LocalEngine(env Environment, planner searcher.Planner, maxSteps int, collector metrics.Collector) *Engine {
	if env == nil || planner == nil {
		panic("engine needs an environment and a planner")
	}
	if maxSteps <= 0 {
		maxSteps = meta.MAX_STEPS
	}
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	return &Engine{
		Env:      env,
		Planner:  planner,
		MaxSteps: maxSteps,
		Metrics:  collector,
		Logger:   log.Logger,
	}
}

// Run plays one episode until the environment reports it is done or the step
// budget runs out. An exhausted budget submits the current inventory.
func (e *Engine) Run() (EpisodeResult, error) {
	logger := e.Logger.With().Str("episode", e.Episode).Logger()
	result := EpisodeResult{}

	logger.Info().Str("inventory", e.Env.Inventory().Summary()).Msg("episode started")

	for step := 1; step <= e.MaxSteps; step++ {
		inv := e.Env.Inventory()
		action, err := e.Planner.PlanAction(inv)
		if err != nil {
			return result, fmt.Errorf("step %d: plan: %w", step, err)
		}
		search := e.Metrics.Complete()

		named, err := Translate(inv, action)
		if err != nil {
			return result, fmt.Errorf("step %d: %w", step, err)
		}
		if reporter, ok := e.Planner.(searcher.Reporter); ok {
			for _, stat := range reporter.Stats() {
				logger.Debug().
					Int("step", step).
					Stringer("candidate", stat.Action).
					Int("visits", stat.Visits).
					Float64("value", stat.Value).
					Int("depth", stat.Depth).
					Msg("candidate action")
			}
		}

		out, err := e.Env.Step(named)
		if err != nil {
			return result, fmt.Errorf("step %d: %s: %w", step, describe(named), err)
		}

		result.Steps = step
		result.Records = append(result.Records, metrics.StepRecord{
			Episode:      e.Episode,
			Step:         step,
			Action:       describe(named),
			Inventory:    out.Inventory.Summary(),
			Score:        out.Reward,
			SearchMetric: search,
		})
		logger.Info().
			Int("step", step).
			Str("action", describe(named)).
			Str("inventory", out.Inventory.Summary()).
			Uint64("state", uint64(game.Hash(out.Inventory))).
			Int("score", out.Reward).
			Msg("step")

		if out.Done {
			result.Submitted = named == nil
			result.FinalReward = out.Reward
			logger.Info().Int("steps", step).Int("reward", out.Reward).Msg("episode finished")
			return result, nil
		}
	}

	out, err := e.Env.Step(nil)
	if err != nil {
		return result, fmt.Errorf("submit after %d steps: %w", e.MaxSteps, err)
	}
	result.Submitted = true
	result.FinalReward = out.Reward
	logger.Info().Int("steps", result.Steps).Int("reward", out.Reward).Msg("step budget exhausted, submitted")
	return result, nil
}

// Translate turns a slot action into the names the environment expects.
func Translate(inv game.Inventory, action game.Action) (*NamedAction, error) {
	if action.IsSubmit() {
		return nil, nil
	}
	i, j := action.I, action.J
	if j < i {
		i, j = j, i
	}
	if i < 0 || j >= len(inv) || i == j {
		return nil, fmt.Errorf("%w: %s on inventory of %d items", game.ErrInvalidAction, action, len(inv))
	}
	return &NamedAction{First: game.NameOf(inv[i]), Second: game.NameOf(inv[j])}, nil
}

func describe(action *NamedAction) string {
	if action == nil {
		return "submit"
	}
	return action.First + " + " + action.Second
}
