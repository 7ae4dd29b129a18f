package searcher

import (
	"craftsearch/game"
	"math"
)

// edge is an action that has not been expanded yet, with the state it leads to.
type edge struct {
	action game.Action
	state  game.Inventory
}

type node struct {
	parent   *node
	action   game.Action
	state    game.Inventory
	terminal bool
	expanded bool
	untried  []edge
	children []*node
	rewards  float64
	visits   int
}

func newNode(parent *node, action game.Action, state game.Inventory, terminal bool) *node {
	return &node{
		parent:   parent,
		action:   action,
		state:    state,
		terminal: terminal,
	}
}

// prepare lists the untried actions of a node on its first visit. Actions
// whose resulting state matches an earlier sibling's are dropped.
func (n *node) prepare(combine game.CombineFunc) error {
	if n.expanded || n.terminal {
		return nil
	}
	n.expanded = true

	actions := game.LegalActions(n.state)
	seen := make(map[game.Signature]bool, len(actions))
	for _, action := range actions {
		if action.IsSubmit() {
			n.untried = append(n.untried, edge{action: action, state: n.state})
			continue
		}
		next, err := game.Apply(n.state, action, combine)
		if err != nil {
			return err
		}
		sig := game.StateSignature(next)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		n.untried = append(n.untried, edge{action: action, state: next})
	}
	return nil
}

// expand attaches the ith untried action as a new child.
func (n *node) expand(ith int) *node {
	e := n.untried[ith]
	n.untried[ith] = n.untried[len(n.untried)-1]
	n.untried = n.untried[:len(n.untried)-1]

	child := newNode(n, e.action, e.state, e.action.IsSubmit())
	n.children = append(n.children, child)
	return child
}

// pickChild returns the child with the highest UCB1 score.
func (n *node) pickChild(c float64) *node {
	policy := newUCB(c, n.visits)

	var best *node
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		if score := policy.evaluate(child.rewards, child.visits); score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

func (n *node) mean() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.rewards / float64(n.visits)
}

// bestChild returns the child with the highest mean value, first expanded
// on ties, or nil when nothing was expanded.
func (n *node) bestChild() *node {
	var best *node
	for _, child := range n.children {
		if best == nil || child.mean() > best.mean() {
			best = child
		}
	}
	return best
}

// backup credits value to n and its ancestors, discounting once per level.
func backup(n *node, value, discount float64) {
	weight := 1.0
	for ; n != nil; n = n.parent {
		n.visits++
		n.rewards += value * weight
		weight *= discount
	}
}
