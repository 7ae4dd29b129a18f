package searcher

import (
	"craftsearch/experiments/metrics"
	"craftsearch/game"
	"craftsearch/meta"

	"golang.org/x/exp/rand"
)

type Option func(s *settings)

// settings holds the search hyperparameters shared by both planners.
type settings struct {
	simulations int
	maxDepth    int
	exploration float64
	discount    float64
	rng         *rand.Rand
	reward      game.RewardFunc
	metrics     metrics.Collector
}

func defaults() settings {
	return settings{
		simulations: meta.SIMULATIONS,
		maxDepth:    meta.MAX_DEPTH,
		exploration: meta.EXPLORATION,
		discount:    meta.DISCOUNT,
		reward:      game.Reward,
		metrics:     metrics.NewDummyCollector(),
	}
}

// WithSimulations sets the number of MCTS simulations per move. Zero is
// allowed and makes MCTS always submit.
func WithSimulations(simulations int) Option {
	return func(s *settings) {
		if simulations >= 0 {
			s.simulations = simulations
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(s *settings) {
		if depth >= 0 {
			s.maxDepth = depth
		}
	}
}

// WithExploration sets the UCB1 exploration constant c.
func WithExploration(c float64) Option {
	return func(s *settings) {
		if c >= 0 {
			s.exploration = c
		}
	}
}

// WithDiscount sets the per-step discount factor, which must be in (0,1].
func WithDiscount(discount float64) Option {
	return func(s *settings) {
		s.discount = discount
	}
}

// WithSeed makes the search reproducible.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(s *settings) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithReward(reward game.RewardFunc) Option {
	return func(s *settings) {
		if reward != nil {
			s.reward = reward
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *settings) {
		if collector != nil {
			s.metrics = collector
		}
	}
}
