package record

import (
	"sort"
	"strconv"

	"github.com/goliatone/go-formbind/pkg/binder"
)

// Flatten converts nested maps and slices into dotted keys ("author.email",
// "tags.0") so a loaded document can be bound as a flat record. Empty
// containers are dropped.
//
// When a literal dotted key collides with a nested path ({"a.b": 1} next to
// {"a": {"b": 2}}), the more deeply nested value wins; equal depths resolve
// by key order, last key wins.
func Flatten(nested map[string]any) binder.Record {
	if nested == nil {
		return nil
	}
	f := flattener{
		out:   make(binder.Record, len(nested)),
		depth: make(map[string]int, len(nested)),
	}
	f.walkMap("", nested, 0)
	return f.out
}

type flattener struct {
	out   binder.Record
	depth map[string]int
}

func (f *flattener) walk(path string, value any, depth int) {
	switch typed := value.(type) {
	case map[string]any:
		f.walkMap(path, typed, depth+1)
	case binder.Record:
		f.walkMap(path, typed, depth+1)
	case []any:
		for idx, child := range typed {
			f.walk(path+"."+strconv.Itoa(idx), child, depth+1)
		}
	default:
		if prev, ok := f.depth[path]; ok && prev > depth {
			return
		}
		f.out[path] = value
		f.depth[path] = depth
	}
}

func (f *flattener) walkMap(prefix string, m map[string]any, depth int) {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		f.walk(path, m[key], depth)
	}
}
