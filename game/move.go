package game

import "fmt"

// Action combines the items in slots I and J, with I < J. Submit ends the
// episode and scores the current inventory.
type Action struct {
	I int
	J int
}

var Submit = Action{I: -1, J: -1}

// Pair returns the combine action for two slots, smaller index first.
func Pair(i, j int) Action {
	if j < i {
		i, j = j, i
	}
	return Action{I: i, J: j}
}

func (a Action) IsSubmit() bool {
	return a == Submit
}

func (a Action) String() string {
	if a.IsSubmit() {
		return "submit"
	}
	return fmt.Sprintf("(%d,%d)", a.I, a.J)
}

// LegalActions lists Submit followed by every slot pair that is not two tools,
// in index order.
func LegalActions(inv Inventory) []Action {
	actions := []Action{Submit}
	for i := 0; i < len(inv); i++ {
		for j := i + 1; j < len(inv); j++ {
			if inv[i].IsTool() && inv[j].IsTool() {
				continue
			}
			actions = append(actions, Action{I: i, J: j})
		}
	}
	return actions
}

// Apply plays an action on a copy of inv. Non-tool operands are consumed and
// the combined item is appended. A nil combination of two tools leaves the
// inventory unchanged; a nil combination involving a non-tool is an error.
func Apply(inv Inventory, action Action, combine CombineFunc) (Inventory, error) {
	if action.IsSubmit() {
		return inv, nil
	}
	i, j := action.I, action.J
	if j < i {
		i, j = j, i
	}
	if i < 0 || j >= len(inv) || i == j {
		return nil, fmt.Errorf("%w: %s on inventory of %d items", ErrInvalidAction, action, len(inv))
	}

	a, b := inv[i], inv[j]
	made := combine(a, b)
	if made == nil {
		if a.IsTool() && b.IsTool() {
			return inv, nil
		}
		return nil, fmt.Errorf("%w: %q + %q", ErrCombineFailed, NameOf(a), NameOf(b))
	}

	next := make(Inventory, 0, len(inv)+1)
	for k, item := range inv {
		if (k == i || k == j) && !item.IsTool() {
			continue
		}
		next = append(next, item)
	}
	return append(next, made), nil
}
