package engine

import "craftsearch/game"

// NamedAction identifies the two items to combine by name. A nil
// *NamedAction submits.
type NamedAction struct {
	First  string
	Second string
}

type StepResult struct {
	Inventory game.Inventory
	Reward    int
	Done      bool
}

// Environment is the live game an episode is played against. It addresses
// items by name rather than by slot.
type Environment interface {
	Inventory() game.Inventory
	Step(action *NamedAction) (StepResult, error)
	Reward() int
}
