package starlark

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
)

// StringDict converts string settings to a frozen Starlark dict with keys
// in sorted order.
func StringDict(m map[string]string) *starlark.Dict {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dict := starlark.NewDict(len(m))
	for _, k := range keys {
		// SetKey only fails on frozen dicts or unhashable keys.
		_ = dict.SetKey(starlark.String(k), starlark.String(m[k]))
	}
	dict.Freeze()
	return dict
}

// NumberDict converts numeric settings to a frozen Starlark dict.
// Whole numbers become ints.
func NumberDict(m map[string]float64) *starlark.Dict {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dict := starlark.NewDict(len(m))
	for _, k := range keys {
		v := m[k]
		var sv starlark.Value = starlark.Float(v)
		if v == float64(int64(v)) {
			sv = starlark.MakeInt64(int64(v))
		}
		_ = dict.SetKey(starlark.String(k), sv)
	}
	dict.Freeze()
	return dict
}

// ToStrings converts a script result to messages.
// None yields no messages, a string yields one, and a list or tuple of
// strings yields one per element.
func ToStrings(v starlark.Value) ([]string, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil

	case starlark.String:
		return []string{string(val)}, nil

	case starlark.Indexable:
		out := make([]string, 0, val.Len())
		for i := 0; i < val.Len(); i++ {
			s, ok := starlark.AsString(val.Index(i))
			if !ok {
				return nil, fmt.Errorf("index %d: want string, got %s", i, val.Index(i).Type())
			}
			out = append(out, s)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("want None, string or list of strings, got %s", v.Type())
	}
}
