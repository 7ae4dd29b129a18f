package game

// Item is a closed sum type over Tool, Ingredient and CombinedItem.
type Item interface {
	Label() string
	IsTool() bool
	sealed()
}

// Tool is a durable item. It is never consumed by a combination.
type Tool struct {
	Name  string
	Emoji string
}

// Ingredient is a consumable leaf item whose features fully determine how it combines.
type Ingredient struct {
	Name     string
	Emoji    string
	Value    int
	Features Features
}

// CombinedItem is a consumable item produced by a combination. It keeps the
// tree of items it was made from.
type CombinedItem struct {
	Name        string
	Emoji       string
	Value       int
	Features    Features
	Ingredients []Item
}

func (t Tool) Label() string         { return label(t.Emoji, t.Name) }
func (i Ingredient) Label() string   { return label(i.Emoji, i.Name) }
func (c CombinedItem) Label() string { return label(c.Emoji, c.Name) }

func (Tool) IsTool() bool         { return true }
func (Ingredient) IsTool() bool   { return false }
func (CombinedItem) IsTool() bool { return false }

func (Tool) sealed()         {}
func (Ingredient) sealed()   {}
func (CombinedItem) sealed() {}

func label(emoji, name string) string {
	if emoji == "" {
		return name
	}
	return emoji + " " + name
}

// NameOf returns the display name of an item.
func NameOf(item Item) string {
	switch it := item.(type) {
	case Tool:
		return it.Name
	case Ingredient:
		return it.Name
	case CombinedItem:
		return it.Name
	default:
		return ""
	}
}

// ValueOf returns the value of a non-tool item. Tools carry no value.
func ValueOf(item Item) (int, bool) {
	switch it := item.(type) {
	case Ingredient:
		return it.Value, true
	case CombinedItem:
		return it.Value, true
	default:
		return 0, false
	}
}

// FeaturesOf returns the features of a non-tool item, or nil for tools.
func FeaturesOf(item Item) Features {
	switch it := item.(type) {
	case Ingredient:
		return it.Features
	case CombinedItem:
		return it.Features
	default:
		return nil
	}
}
