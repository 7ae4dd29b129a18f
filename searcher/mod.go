package searcher

import "craftsearch/game"

// Planner picks the next action for an inventory. game.Submit means the
// episode should end now. A planner is not safe for concurrent use.
type Planner interface {
	PlanAction(inv game.Inventory) (game.Action, error)
}

// ActionStat summarizes what the last search learned about one first action.
type ActionStat struct {
	Action game.Action
	Visits int     // MCTS only
	Value  float64 // MCTS mean value, or BFS best reachable reward
	Depth  int     // BFS only: moves needed to reach Value
}

// Reporter is implemented by planners that expose the statistics of their
// most recent search.
type Reporter interface {
	Stats() []ActionStat
}
