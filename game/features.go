package game

import (
	"fmt"
	"sort"
	"strconv"
)

// Feature is a single key/value trait of an item.
type Feature struct {
	Key   string
	Value any
}

// Features is an immutable list of features sorted by key. Values are
// expected to be ints, floats, bools, strings or nil.
type Features []Feature

// NewFeatures builds a sorted feature list from a map. Integer kinds are
// widened to int64 and float32 to float64.
func NewFeatures(m map[string]any) Features {
	if len(m) == 0 {
		return nil
	}
	fs := make(Features, 0, len(m))
	for k, v := range m {
		fs = append(fs, Feature{Key: k, Value: widen(v)})
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].Key < fs[j].Key })
	return fs
}

func widen(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

// Get returns the value for key.
func (fs Features) Get(key string) (any, bool) {
	i := sort.Search(len(fs), func(i int) bool { return fs[i].Key >= key })
	if i < len(fs) && fs[i].Key == key {
		return fs[i].Value, true
	}
	return nil, false
}

// With returns a copy of fs with key set to value.
func (fs Features) With(key string, value any) Features {
	value = widen(value)
	i := sort.Search(len(fs), func(i int) bool { return fs[i].Key >= key })
	out := make(Features, 0, len(fs)+1)
	out = append(out, fs[:i]...)
	out = append(out, Feature{Key: key, Value: value})
	if i < len(fs) && fs[i].Key == key {
		i++
	}
	return append(out, fs[i:]...)
}

// Map returns the features as a fresh map.
func (fs Features) Map() map[string]any {
	m := make(map[string]any, len(fs))
	for _, f := range fs {
		m[f.Key] = f.Value
	}
	return m
}

// encode writes the features as sorted, type-tagged key/value pairs.
func (fs Features) encode() string {
	buf := make([]byte, 0, 16*len(fs))
	buf = append(buf, '{')
	for i, f := range fs {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendQuote(buf, f.Key)
		buf = append(buf, '=')
		buf = append(buf, normalize(f.Value)...)
	}
	return string(append(buf, '}'))
}

// normalize tags a feature value by kind so equal-looking values of
// different kinds never collide. nil maps to a sentinel.
func normalize(v any) string {
	switch n := widen(v).(type) {
	case nil:
		return "~"
	case int64:
		return "i:" + strconv.FormatInt(n, 10)
	case uint64:
		return "i:" + strconv.FormatUint(n, 10)
	case float64:
		return "f:" + strconv.FormatFloat(n, 'g', -1, 64)
	case bool:
		return "b:" + strconv.FormatBool(n)
	case string:
		return "s:" + strconv.Quote(n)
	default:
		return "x:" + strconv.Quote(fmt.Sprint(n))
	}
}
