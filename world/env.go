package world

import (
	"errors"
	"fmt"

	"craftsearch/engine"
	"craftsearch/game"
)

var ErrEpisodeOver = errors.New("episode is over")

// Env is a live game over a catalog's rules. Items are addressed by name;
// when several interchangeable items share a name the first one in slot
// order is used.
type Env struct {
	combine game.CombineFunc
	inv     game.Inventory
	done    bool
}

var _ engine.Environment = (*Env)(nil)

func NewEnv(combine game.CombineFunc, start game.Inventory) *Env {
	return &Env{combine: combine, inv: start.Copy()}
}

// NewCatalogEnv starts an episode from the catalog's starting inventory.
func NewCatalogEnv(c *Catalog) (*Env, error) {
	start, err := c.StartingInventory()
	if err != nil {
		return nil, err
	}
	return NewEnv(c.Combine, start), nil
}

func (e *Env) Inventory() game.Inventory {
	return e.inv.Copy()
}

func (e *Env) Reward() int {
	return game.Reward(e.inv)
}

func (e *Env) Done() bool {
	return e.done
}

func (e *Env) Step(action *engine.NamedAction) (engine.StepResult, error) {
	if e.done {
		return engine.StepResult{}, ErrEpisodeOver
	}
	if action == nil {
		e.done = true
		return engine.StepResult{Inventory: e.Inventory(), Reward: e.Reward(), Done: true}, nil
	}

	i, err := e.resolve(action.First, -1)
	if err != nil {
		return engine.StepResult{}, err
	}
	j, err := e.resolve(action.Second, i)
	if err != nil {
		return engine.StepResult{}, err
	}
	if e.inv[i].IsTool() && e.inv[j].IsTool() {
		return engine.StepResult{}, fmt.Errorf("%w: %q and %q are both tools", game.ErrInvalidAction, action.First, action.Second)
	}

	next, err := game.Apply(e.inv, game.Pair(i, j), e.combine)
	if err != nil {
		return engine.StepResult{}, err
	}
	e.inv = next
	return engine.StepResult{Inventory: e.Inventory(), Reward: e.Reward(), Done: false}, nil
}

// resolve returns the first slot other than skip holding an item called name.
// A name shared by items with different signatures does not identify an item
// and is rejected.
func (e *Env) resolve(name string, skip int) (int, error) {
	found := -1
	var sig game.Signature
	for k, item := range e.inv {
		if k == skip || game.NameOf(item) != name {
			continue
		}
		if found < 0 {
			found, sig = k, game.ItemSignature(item)
			continue
		}
		if game.ItemSignature(item) != sig {
			return -1, fmt.Errorf("%w: %q names different items", game.ErrInvalidAction, name)
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: no %q in inventory", game.ErrInvalidAction, name)
	}
	return found, nil
}
