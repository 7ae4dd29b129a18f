package game

import (
	"craftsearch/utils"
	"strings"
)

// Inventory is an ordered snapshot of items. Operations never mutate it.
type Inventory []Item

// Copy returns a shallow copy. Items themselves are immutable.
func (inv Inventory) Copy() Inventory {
	out := make(Inventory, len(inv))
	copy(out, inv)
	return out
}

// Names lists item names in slot order.
func (inv Inventory) Names() []string {
	names := make([]string, len(inv))
	for i, item := range inv {
		names[i] = NameOf(item)
	}
	return names
}

// Find returns the slot of the first item named name, or -1.
func (inv Inventory) Find(name string) int {
	return utils.FindIndex(inv.Names(), name)
}

// Tools counts the tools in inv.
func (inv Inventory) Tools() int {
	n := 0
	for _, item := range inv {
		if item.IsTool() {
			n++
		}
	}
	return n
}

// Summary renders the inventory on one line, e.g. "knife | apple(5)".
func (inv Inventory) Summary() string {
	parts := make([]string, len(inv))
	for i, item := range inv {
		if v, ok := ValueOf(item); ok {
			parts[i] = item.Label() + "(" + itoa(v) + ")"
		} else {
			parts[i] = item.Label()
		}
	}
	return strings.Join(parts, " | ")
}
