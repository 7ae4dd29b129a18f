// meta/meta.go
package meta

import "math"

// SIMULATIONS is the default number of MCTS simulations per move.
const SIMULATIONS = 200

// MAX_DEPTH bounds how far either planner looks ahead.
const MAX_DEPTH = 3

// EXPLORATION is the default UCB1 exploration constant.
const EXPLORATION = math.Sqrt2

// DISCOUNT is the default per-step reward discount.
const DISCOUNT = 0.95

// EPSILON keeps the UCB1 exploration term finite for unvisited children.
const EPSILON = 1e-6

// MAX_STEPS is the default step budget of an episode.
const MAX_STEPS = 10

// EPISODES is the default number of episodes in a batch.
const EPISODES = 20

// PARALLELISM is the default number of episodes run at once.
const PARALLELISM = 4
