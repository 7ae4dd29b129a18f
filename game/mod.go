package game

import "errors"

var (
	// ErrInvalidAction is returned when an action references a slot or item
	// that does not exist in the inventory.
	ErrInvalidAction = errors.New("invalid action")
	// ErrCombineFailed is returned when the world model cannot combine a pair
	// that includes a non-tool. That is a bug in the world model.
	ErrCombineFailed = errors.New("combine returned no item for a non-tool pair")
)

// CombineFunc is the world model's combination rule. It must be pure and
// deterministic, and returns nil when the two items cannot be combined.
type CombineFunc func(a, b Item) Item

// RewardFunc scores an inventory snapshot.
type RewardFunc func(Inventory) int

type StateHash uint64
