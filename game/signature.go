package game

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Signature is a canonical fingerprint of an item or inventory. It ignores
// names, emoji and slot order, and covers every feature that affects how
// items combine or score.
type Signature string

const (
	tagTool      = "TOOL"
	tagLeaf      = "LEAF"
	tagComposite = "COMPOSITE"
)

// ItemSignature computes the signature of a single item.
func ItemSignature(item Item) Signature {
	switch it := item.(type) {
	case Tool:
		return Signature(tagTool + "(" + strconv.Quote(it.Name) + ")")
	case Ingredient:
		return Signature(tagLeaf + "(" + it.Features.encode() + ")")
	case CombinedItem:
		children := make([]string, len(it.Ingredients))
		for i, child := range it.Ingredients {
			children[i] = string(ItemSignature(child))
		}
		sort.Strings(children)
		return Signature(tagComposite + "(" + it.Features.encode() + ",[" + strings.Join(children, ",") + "])")
	default:
		panic("unexpected item type")
	}
}

// StateSignature computes the order-independent signature of an inventory.
func StateSignature(inv Inventory) Signature {
	sigs := make([]string, len(inv))
	for i, item := range inv {
		sigs[i] = string(ItemSignature(item))
	}
	sort.Strings(sigs)
	return Signature("[" + strings.Join(sigs, ";") + "]")
}

// Hash folds the inventory signature into 64 bits for logging. It is not
// collision free, so deduplication always compares full signatures.
func Hash(inv Inventory) StateHash {
	hasher := fnv.New64a()
	hasher.Write([]byte(StateSignature(inv)))
	return StateHash(hasher.Sum64())
}
