package world

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"strings"

	"craftsearch/game"

	"gopkg.in/yaml.v3"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

//go:embed kitchen.yaml
var kitchen []byte

// Catalog is the rule table of one crafting domain: which tools and
// ingredients exist, what tools do to items and how features turn into value.
type Catalog struct {
	Name        string             `yaml:"name"`
	Tools       []ToolDef          `yaml:"tools"`
	Ingredients []IngredientDef    `yaml:"ingredients"`
	Weights     map[string]float64 `yaml:"weights"`
	Bonuses     []Bonus            `yaml:"bonuses"`
	Inventory   []string           `yaml:"inventory"`

	tools       map[string]ToolDef
	ingredients map[string]IngredientDef
}

type ToolDef struct {
	Name    string   `yaml:"name"`
	Emoji   string   `yaml:"emoji"`
	Verb    string   `yaml:"verb"`
	Effects []Effect `yaml:"effects"`
}

// Effect changes one feature of the item a tool is used on. With Add set the
// feature is incremented and saturates at Max; otherwise it is set to Set.
type Effect struct {
	Feature string   `yaml:"feature"`
	Set     any      `yaml:"set"`
	Add     *float64 `yaml:"add"`
	Max     *float64 `yaml:"max"`
}

type IngredientDef struct {
	Name     string         `yaml:"name"`
	Emoji    string         `yaml:"emoji"`
	Features map[string]any `yaml:"features"`
}

// Bonus adds to the value of any item whose features match every entry of When.
type Bonus struct {
	When  map[string]any `yaml:"when"`
	Bonus int            `yaml:"bonus"`
}

// Default returns the built-in kitchen catalog.
func Default() *Catalog {
	c, err := ParseCatalog(kitchen)
	if err != nil {
		panic(err)
	}
	return c
}

func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	c.tools = make(map[string]ToolDef, len(c.Tools))
	c.ingredients = make(map[string]IngredientDef, len(c.Ingredients))
	for _, t := range c.Tools {
		if t.Name == "" {
			return fmt.Errorf("%w: tool without a name", ErrInvalidCatalog)
		}
		if _, dup := c.tools[t.Name]; dup {
			return fmt.Errorf("%w: duplicate tool %q", ErrInvalidCatalog, t.Name)
		}
		if err := checkName(t.Name); err != nil {
			return err
		}
		if err := checkName(t.Verb); err != nil {
			return err
		}
		for _, e := range t.Effects {
			if e.Feature == "" {
				return fmt.Errorf("%w: tool %q has an effect without a feature", ErrInvalidCatalog, t.Name)
			}
			if e.Max != nil && e.Add == nil {
				return fmt.Errorf("%w: tool %q sets a max on %q without add", ErrInvalidCatalog, t.Name, e.Feature)
			}
		}
		c.tools[t.Name] = t
	}
	for _, i := range c.Ingredients {
		if i.Name == "" {
			return fmt.Errorf("%w: ingredient without a name", ErrInvalidCatalog)
		}
		if _, dup := c.tools[i.Name]; dup {
			return fmt.Errorf("%w: %q is both a tool and an ingredient", ErrInvalidCatalog, i.Name)
		}
		if _, dup := c.ingredients[i.Name]; dup {
			return fmt.Errorf("%w: duplicate ingredient %q", ErrInvalidCatalog, i.Name)
		}
		if err := checkName(i.Name); err != nil {
			return err
		}
		for _, t := range c.Tools {
			if strings.HasPrefix(i.Name, t.verb()+" ") {
				return fmt.Errorf("%w: ingredient %q reads like a %s result", ErrInvalidCatalog, i.Name, t.Name)
			}
		}
		c.ingredients[i.Name] = i
	}
	for _, name := range c.Inventory {
		if _, ok := c.tools[name]; ok {
			continue
		}
		if _, ok := c.ingredients[name]; !ok {
			return fmt.Errorf("%w: starting item %q is not in the catalog", ErrInvalidCatalog, name)
		}
	}
	return nil
}

// checkName rejects names that could be confused with a merge.
func checkName(name string) error {
	if strings.ContainsAny(name, "()&") {
		return fmt.Errorf("%w: %q may not contain '(', ')' or '&'", ErrInvalidCatalog, name)
	}
	return nil
}

func (t ToolDef) verb() string {
	if t.Verb == "" {
		return t.Name
	}
	return t.Verb
}

// Item builds the tool or ingredient called name.
func (c *Catalog) Item(name string) (game.Item, error) {
	if t, ok := c.tools[name]; ok {
		return game.Tool{Name: t.Name, Emoji: t.Emoji}, nil
	}
	if i, ok := c.ingredients[name]; ok {
		features := game.NewFeatures(i.Features)
		return game.Ingredient{Name: i.Name, Emoji: i.Emoji, Value: c.Value(features), Features: features}, nil
	}
	return nil, fmt.Errorf("%w: unknown item %q", game.ErrInvalidAction, name)
}

// StartingInventory builds the inventory listed in the catalog.
func (c *Catalog) StartingInventory() (game.Inventory, error) {
	inv := make(game.Inventory, 0, len(c.Inventory))
	for _, name := range c.Inventory {
		item, err := c.Item(name)
		if err != nil {
			return nil, err
		}
		inv = append(inv, item)
	}
	return inv, nil
}

// Value scores a feature set: the weighted sum of numeric and boolean
// features plus every matching bonus, rounded to the nearest integer.
func (c *Catalog) Value(features game.Features) int {
	total := 0.0
	for _, f := range features {
		if w, ok := c.Weights[f.Key]; ok {
			if x, ok := number(f.Value); ok {
				total += w * x
			}
		}
	}
	for _, b := range c.Bonuses {
		if matches(features, b.When) {
			total += float64(b.Bonus)
		}
	}
	return int(math.Round(total))
}

func matches(features game.Features, when map[string]any) bool {
	if len(when) == 0 {
		return false
	}
	for _, want := range game.NewFeatures(when) {
		got, ok := features.Get(want.Key)
		if !ok {
			if want.Value != nil {
				return false
			}
			continue
		}
		if !equal(got, want.Value) {
			return false
		}
	}
	return true
}

func equal(a, b any) bool {
	_, aBool := a.(bool)
	_, bBool := b.(bool)
	if aBool || bBool {
		return a == b
	}
	x, okx := number(a)
	y, oky := number(b)
	if okx && oky {
		return x == y
	}
	return reflect.DeepEqual(a, b)
}

// number reads numeric and boolean feature values as float64.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
