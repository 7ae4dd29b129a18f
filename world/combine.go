package world

import (
	"fmt"
	"math"

	"craftsearch/game"
)

// Combine implements game.CombineFunc. A tool rewrites the features of the
// item it is used on; two items merge into a CombinedItem. Merging is
// symmetric, so the result does not depend on slot order.
func (c *Catalog) Combine(a, b game.Item) game.Item {
	switch {
	case a.IsTool() && b.IsTool():
		return nil
	case a.IsTool():
		return c.use(a.(game.Tool), b)
	case b.IsTool():
		return c.use(b.(game.Tool), a)
	default:
		return c.merge(a, b)
	}
}

// Names spell out how an item was made: every tool use prepends its verb and
// every merge is parenthesized. Items with equal names were built the same way
// and so are the same item.
func (c *Catalog) use(tool game.Tool, item game.Item) game.Item {
	def, ok := c.tools[tool.Name]
	if !ok {
		def = ToolDef{Name: tool.Name}
	}
	features := game.FeaturesOf(item)
	for _, e := range def.Effects {
		features = applyEffect(features, e)
	}
	name := def.verb() + " " + game.NameOf(item)

	switch it := item.(type) {
	case game.Ingredient:
		return game.Ingredient{Name: name, Emoji: it.Emoji, Value: c.Value(features), Features: features}
	case game.CombinedItem:
		return game.CombinedItem{Name: name, Emoji: it.Emoji, Value: c.Value(features), Features: features, Ingredients: it.Ingredients}
	default:
		return nil
	}
}

func (c *Catalog) merge(a, b game.Item) game.Item {
	features := mergeFeatures(game.FeaturesOf(a), game.FeaturesOf(b))
	return game.CombinedItem{
		Name:        "(" + game.NameOf(a) + " & " + game.NameOf(b) + ")",
		Value:       c.Value(features),
		Features:    features,
		Ingredients: []game.Item{a, b},
	}
}

func applyEffect(fs game.Features, e Effect) game.Features {
	if e.Add == nil {
		return fs.With(e.Feature, e.Set)
	}
	cur, _ := fs.Get(e.Feature)
	x, _ := number(cur)
	next := x + *e.Add
	if e.Max != nil && next > *e.Max {
		next = *e.Max
	}
	if _, isFloat := cur.(float64); !isFloat && next == math.Trunc(next) {
		return fs.With(e.Feature, int64(next))
	}
	return fs.With(e.Feature, next)
}

// mergeFeatures unions two feature sets. Shared numbers add up, shared
// booleans are OR'ed and any other conflict keeps the value that sorts first.
func mergeFeatures(x, y game.Features) game.Features {
	m := x.Map()
	for _, f := range y {
		if cur, ok := m[f.Key]; ok {
			m[f.Key] = mergeValue(cur, f.Value)
		} else {
			m[f.Key] = f.Value
		}
	}
	return game.NewFeatures(m)
}

func mergeValue(a, b any) any {
	ab, aBool := a.(bool)
	bb, bBool := b.(bool)
	if aBool && bBool {
		return ab || bb
	}
	ai, aInt := a.(int64)
	bi, bInt := b.(int64)
	if aInt && bInt {
		return ai + bi
	}
	if !aBool && !bBool {
		x, okx := number(a)
		y, oky := number(b)
		if okx && oky {
			return x + y
		}
	}
	if fmt.Sprint(a) <= fmt.Sprint(b) {
		return a
	}
	return b
}
