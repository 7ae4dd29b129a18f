package searcher

import (
	"craftsearch/game"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// MCTS plans with Monte Carlo tree search: UCB1 selection, one expansion per
// simulation, random discounted rollouts and discounted backpropagation.
// The tree is rebuilt on every call.
type MCTS struct {
	settings
	combine  game.CombineFunc
	stats    []ActionStat
	expanded int // nodes added by the last search
}

func NewMCTS(combine game.CombineFunc, options ...Option) *MCTS {
	if combine == nil {
		panic("combine function is required")
	}
	m := &MCTS{settings: defaults(), combine: combine}
	for _, option := range options {
		option(&m.settings)
	}
	if m.discount <= 0 || m.discount > 1 {
		panic(fmt.Sprintf("discount factor %v is outside (0,1]", m.discount))
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	m.reward = game.Floor(m.reward)
	return m
}

func (m *MCTS) PlanAction(inv game.Inventory) (game.Action, error) {
	m.metrics.Start("mcts", m.maxDepth)
	m.stats = nil
	m.expanded = 0

	root := newNode(nil, game.Submit, inv, false)
	for i := 0; i < m.simulations; i++ {
		if err := m.simulate(root); err != nil {
			return game.Submit, err
		}
		m.metrics.AddSimulation()
	}
	m.metrics.Complete()

	m.stats = make([]ActionStat, len(root.children))
	for i, child := range root.children {
		m.stats[i] = ActionStat{Action: child.action, Visits: child.visits, Value: child.mean()}
	}

	best := root.bestChild()
	if best == nil {
		log.Debug().Int("simulations", m.simulations).Msg("mcts expanded nothing, submitting")
		return game.Submit, nil
	}
	log.Debug().
		Stringer("action", best.action).
		Float64("mean", best.mean()).
		Int("visits", best.visits).
		Int("children", len(root.children)).
		Int("expanded", m.expanded).
		Msg("mcts picked action")
	return best.action, nil
}

// Stats reports visits and mean value of every root child of the last search.
func (m *MCTS) Stats() []ActionStat {
	return m.stats
}

func (m *MCTS) simulate(root *node) error {
	leaf, depth, err := m.selectThenExpand(root)
	if err != nil {
		return err
	}
	value, err := m.rollout(leaf, m.maxDepth-depth)
	if err != nil {
		return err
	}
	backup(leaf, value, m.discount)
	return nil
}

// selectThenExpand walks down by UCB1 until it finds a node with an untried
// action, expands one at random and returns the new child with its depth.
func (m *MCTS) selectThenExpand(root *node) (*node, int, error) {
	n, depth := root, 0
	for !n.terminal && depth < m.maxDepth {
		if err := n.prepare(m.combine); err != nil {
			return nil, 0, err
		}
		if len(n.untried) > 0 {
			child := n.expand(m.rng.Intn(len(n.untried)))
			m.expanded++
			m.metrics.AddExpansion()
			return child, depth + 1, nil
		}
		if len(n.children) == 0 {
			break
		}
		n = n.pickChild(m.exploration)
		depth++
	}
	return n, depth, nil
}

// rollout plays random actions for up to remaining steps and returns the best
// discounted reward seen, starting from the node's own reward.
func (m *MCTS) rollout(n *node, remaining int) (float64, error) {
	state := n.state
	best := float64(m.reward(state))
	if n.terminal {
		return best, nil
	}

	weight := 1.0
	for step := 1; step <= remaining; step++ {
		actions := game.LegalActions(state)
		if len(actions) == 0 {
			break
		}
		action := actions[m.rng.Intn(len(actions))]
		if action.IsSubmit() {
			break
		}
		next, err := game.Apply(state, action, m.combine)
		if err != nil {
			return 0, err
		}
		state = next
		weight *= m.discount
		if v := float64(m.reward(state)) * weight; v > best {
			best = v
		}
	}
	return best, nil
}
