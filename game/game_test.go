package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func ingredient(name string, value int, features map[string]any) Ingredient {
	return Ingredient{Name: name, Value: value, Features: NewFeatures(features)}
}

// mix consumes whatever it is given and returns a composite worth the sum.
func mix(a, b Item) Item {
	if a.IsTool() && b.IsTool() {
		return nil
	}
	va, _ := ValueOf(a)
	vb, _ := ValueOf(b)
	return CombinedItem{
		Name:        NameOf(a) + "+" + NameOf(b),
		Value:       va + vb,
		Ingredients: []Item{a, b},
	}
}

func TestLegalActions(t *testing.T) {
	t.Run("counts every pair except tool-tool pairs, plus submit", func(t *testing.T) {
		for tools := 0; tools <= 4; tools++ {
			for others := 0; others <= 4; others++ {
				inv := Inventory{}
				for i := 0; i < tools; i++ {
					inv = append(inv, Tool{Name: "tool" + itoa(i)})
				}
				for i := 0; i < others; i++ {
					inv = append(inv, ingredient("ing"+itoa(i), i, nil))
				}
				n := tools + others
				want := n*(n-1)/2 - tools*(tools-1)/2 + 1

				got := LegalActions(inv)

				require.Len(t, got, want, "tools=%d others=%d", tools, others)
				require.Equal(t, Submit, got[0], "Submit should always come first")
			}
		}
	})

	t.Run("two tools only leaves submit", func(t *testing.T) {
		inv := Inventory{Tool{Name: "knife"}, Tool{Name: "oven"}}

		require.Equal(t, []Action{Submit}, LegalActions(inv))
	})

	t.Run("pairs are normalized smaller index first", func(t *testing.T) {
		inv := Inventory{ingredient("a", 1, nil), ingredient("b", 2, nil), ingredient("c", 3, nil)}

		for _, a := range LegalActions(inv)[1:] {
			require.Less(t, a.I, a.J)
		}
		require.Equal(t, Pair(0, 2), Pair(2, 0))
	})
}

func TestApply(t *testing.T) {
	knife := Tool{Name: "knife"}
	apple := ingredient("apple", 5, map[string]any{"sliced": false})
	pear := ingredient("pear", 7, nil)

	t.Run("submit returns the inventory unchanged", func(t *testing.T) {
		inv := Inventory{knife, apple}

		got, err := Apply(inv, Submit, mix)

		require.NoError(t, err)
		require.Equal(t, inv, got)
	})

	t.Run("result size is n minus non-tool operands plus one", func(t *testing.T) {
		inv := Inventory{knife, apple, pear}

		withTool, err := Apply(inv, Pair(0, 1), mix)
		require.NoError(t, err)
		require.Len(t, withTool, 3)
		require.Equal(t, knife, withTool[0], "Tools should stay in the inventory")
		require.Equal(t, "knife+apple", NameOf(withTool[2]))

		twoItems, err := Apply(inv, Pair(1, 2), mix)
		require.NoError(t, err)
		require.Len(t, twoItems, 2)
		require.Equal(t, Inventory{knife, mix(apple, pear)}, twoItems)
	})

	t.Run("index order of the pair does not change the result", func(t *testing.T) {
		inv := Inventory{apple, knife, pear}

		forward, err := Apply(inv, Action{I: 0, J: 2}, mix)
		require.NoError(t, err)
		backward, err := Apply(inv, Action{I: 2, J: 0}, mix)
		require.NoError(t, err)

		require.Equal(t, forward, backward)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		inv := Inventory{apple, pear}
		before := inv.Copy()

		_, err := Apply(inv, Pair(0, 1), mix)

		require.NoError(t, err)
		require.Equal(t, before, inv)
	})

	t.Run("out of range indices fail fast", func(t *testing.T) {
		inv := Inventory{apple, pear}

		for _, a := range []Action{{I: 0, J: 2}, {I: -1, J: 1}, {I: 1, J: 1}} {
			_, err := Apply(inv, a, mix)
			require.ErrorIs(t, err, ErrInvalidAction, "action %s", a)
		}
	})

	t.Run("nil combination of two tools is a no-op", func(t *testing.T) {
		inv := Inventory{knife, Tool{Name: "oven"}}

		got, err := Apply(inv, Pair(0, 1), mix)

		require.NoError(t, err)
		require.Equal(t, inv, got)
	})

	t.Run("nil combination with a non-tool is an invariant violation", func(t *testing.T) {
		inv := Inventory{knife, apple}
		broken := func(a, b Item) Item { return nil }

		_, err := Apply(inv, Pair(0, 1), broken)

		require.True(t, errors.Is(err, ErrCombineFailed))
	})
}

func TestSignature(t *testing.T) {
	t.Run("is invariant to item order", func(t *testing.T) {
		inv := Inventory{
			Tool{Name: "knife"},
			ingredient("apple", 5, map[string]any{"sweet": 3, "color": "red"}),
			ingredient("pear", 7, map[string]any{"sweet": 2}),
			mix(ingredient("a", 1, nil), ingredient("b", 2, map[string]any{"x": true})),
		}
		want := StateSignature(inv)
		rng := rand.New(rand.NewSource(7))

		for i := 0; i < 20; i++ {
			shuffled := inv.Copy()
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
			require.Equal(t, want, StateSignature(shuffled))
			require.Equal(t, Hash(inv), Hash(shuffled))
		}
	})

	t.Run("ignores names and emoji", func(t *testing.T) {
		a := Ingredient{Name: "apple", Emoji: "🍎", Value: 5, Features: NewFeatures(map[string]any{"sweet": 3})}
		b := Ingredient{Name: "fruit", Emoji: "🍏", Value: 9, Features: NewFeatures(map[string]any{"sweet": 3})}

		require.Equal(t, ItemSignature(a), ItemSignature(b))
	})

	t.Run("is sensitive to features", func(t *testing.T) {
		a := ingredient("apple", 5, map[string]any{"sweet": 3})
		b := ingredient("apple", 5, map[string]any{"sweet": 4})

		require.NotEqual(t, ItemSignature(a), ItemSignature(b))
	})

	t.Run("distinguishes value kinds and nil", func(t *testing.T) {
		sigs := map[Signature]bool{}
		for _, v := range []any{nil, 1, 1.5, true, "1", "~", struct{ X int }{1}} {
			sigs[ItemSignature(ingredient("x", 0, map[string]any{"k": v}))] = true
		}
		sigs[ItemSignature(ingredient("x", 0, nil))] = true

		require.Len(t, sigs, 8, "Every feature value kind should yield its own signature")
	})

	t.Run("tags item kinds", func(t *testing.T) {
		leaf := ingredient("a", 1, nil)
		composite := CombinedItem{Name: "a"}
		tool := Tool{Name: "a"}

		require.NotEqual(t, ItemSignature(leaf), ItemSignature(composite))
		require.NotEqual(t, ItemSignature(leaf), ItemSignature(tool))
		require.NotEqual(t, ItemSignature(composite), ItemSignature(tool))
	})

	t.Run("composite ingredient order does not matter", func(t *testing.T) {
		a := ingredient("a", 1, map[string]any{"k": 1})
		b := ingredient("b", 2, map[string]any{"k": 2})

		require.Equal(t, ItemSignature(mix(a, b)), ItemSignature(mix(b, a)))
	})

	t.Run("tools are identified by name", func(t *testing.T) {
		require.NotEqual(t, ItemSignature(Tool{Name: "knife"}), ItemSignature(Tool{Name: "oven"}))
		require.Equal(t, ItemSignature(Tool{Name: "knife"}), ItemSignature(Tool{Name: "knife", Emoji: "🔪"}))
	})
}

func TestReward(t *testing.T) {
	t.Run("best non-tool value", func(t *testing.T) {
		inv := Inventory{Tool{Name: "knife"}, ingredient("a", 5, nil), ingredient("b", 80, nil)}

		require.Equal(t, 80, Reward(inv))
	})

	t.Run("floors negative values at zero", func(t *testing.T) {
		inv := Inventory{ingredient("a", -5, nil), ingredient("b", -1, nil)}

		require.Equal(t, 0, Reward(inv))
	})

	t.Run("tools only is worth zero", func(t *testing.T) {
		require.Equal(t, 0, Reward(Inventory{Tool{Name: "knife"}}))
		require.Equal(t, 0, Reward(nil))
	})

	t.Run("floor wraps custom reward functions", func(t *testing.T) {
		negative := Floor(func(Inventory) int { return -10 })

		require.Equal(t, 0, negative(nil))
	})
}

func TestFeatures(t *testing.T) {
	fs := NewFeatures(map[string]any{"b": 2, "a": "x"})

	require.Equal(t, "a", fs[0].Key, "Features should be sorted by key")
	v, ok := fs.Get("b")
	require.True(t, ok)
	require.Equal(t, int64(2), v)

	updated := fs.With("c", 3).With("a", "y")
	require.Len(t, updated, 3)
	got, _ := updated.Get("a")
	require.Equal(t, "y", got)
	old, _ := fs.Get("a")
	require.Equal(t, "x", old, "With should not mutate the receiver")
}

func TestInventorySummary(t *testing.T) {
	inv := Inventory{Tool{Name: "knife", Emoji: "🔪"}, ingredient("apple", 5, nil)}

	require.Equal(t, "🔪 knife | apple(5)", inv.Summary())
	require.Equal(t, []string{"knife", "apple"}, inv.Names())
	require.Equal(t, 1, inv.Find("apple"))
	require.Equal(t, -1, inv.Find("pear"))
	require.Equal(t, 1, inv.Tools())
}
