package searcher

import (
	"craftsearch/game"
	"math"

	"github.com/rs/zerolog/log"
)

// BFS plans by exhaustive breadth-first search up to a depth bound, with full
// knowledge of the combine function. It has no randomness.
type BFS struct {
	settings
	combine game.CombineFunc
	stats   []ActionStat
}

func NewBFS(combine game.CombineFunc, options ...Option) *BFS {
	if combine == nil {
		panic("combine function is required")
	}
	b := &BFS{settings: defaults(), combine: combine}
	for _, option := range options {
		option(&b.settings)
	}
	b.reward = game.Floor(b.reward)
	return b
}

// outcome is the best stop found in a branch. Higher reward wins, then fewer moves.
type outcome struct {
	reward int
	depth  int
}

func (o outcome) beats(other outcome) bool {
	if o.reward != other.reward {
		return o.reward > other.reward
	}
	return o.depth < other.depth
}

type frontier struct {
	state  game.Inventory
	depth  int
	branch int
}

func (b *BFS) PlanAction(inv game.Inventory) (game.Action, error) {
	return b.PlanActionWithDepth(inv, b.maxDepth)
}

// PlanActionWithDepth returns the first action of a shortest path to the best
// reward reachable within maxDepth moves.
func (b *BFS) PlanActionWithDepth(inv game.Inventory, maxDepth int) (game.Action, error) {
	b.metrics.Start("bfs", maxDepth)
	b.stats = nil

	actions := game.LegalActions(inv)
	if len(actions) == 0 {
		return game.Submit, nil
	}

	firsts := []game.Action{game.Submit}
	best := []outcome{{reward: b.reward(inv), depth: 0}}
	var visited []map[game.Signature]bool
	var queue []frontier

	if maxDepth > 0 {
		firstSeen := make(map[game.Signature]bool, len(actions))
		for _, action := range actions {
			if action.IsSubmit() {
				continue
			}
			next, err := game.Apply(inv, action, b.combine)
			if err != nil {
				return game.Submit, err
			}
			sig := game.StateSignature(next)
			if firstSeen[sig] {
				b.metrics.AddPruned()
				continue
			}
			firstSeen[sig] = true

			firsts = append(firsts, action)
			best = append(best, outcome{reward: math.MinInt, depth: 0})
			visited = append(visited, map[game.Signature]bool{sig: true})
			queue = append(queue, frontier{state: next, depth: 1, branch: len(firsts) - 1})
		}
	}

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		b.metrics.AddState()

		if o := (outcome{reward: b.reward(f.state), depth: f.depth}); o.beats(best[f.branch]) {
			best[f.branch] = o
		}
		if f.depth >= maxDepth {
			continue
		}

		seen := visited[f.branch-1]
		for _, action := range game.LegalActions(f.state) {
			if action.IsSubmit() {
				continue
			}
			next, err := game.Apply(f.state, action, b.combine)
			if err != nil {
				return game.Submit, err
			}
			sig := game.StateSignature(next)
			if seen[sig] {
				b.metrics.AddPruned()
				continue
			}
			seen[sig] = true
			queue = append(queue, frontier{state: next, depth: f.depth + 1, branch: f.branch})
		}
	}

	pick := 0
	b.stats = make([]ActionStat, len(firsts))
	for i, action := range firsts {
		b.stats[i] = ActionStat{Action: action, Value: float64(best[i].reward), Depth: best[i].depth}
		if best[i].beats(best[pick]) {
			pick = i
		}
	}
	metric := b.metrics.Complete()

	log.Debug().
		Stringer("action", firsts[pick]).
		Int("reward", best[pick].reward).
		Int("depth", best[pick].depth).
		Int("branches", len(firsts)).
		Int("states", metric.States).
		Msg("bfs picked action")
	return firsts[pick], nil
}

// Stats reports the best reachable reward and its depth for every distinct
// first action of the last search.
func (b *BFS) Stats() []ActionStat {
	return b.stats
}
