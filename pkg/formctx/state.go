package formctx

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbind/pkg/binder"
)

// State collects bound values into a nested map keyed by dotted paths
// ("author.email", "tags.0"). Only declared paths resolve as controls so the
// binder can still report unknown keys as skipped.
type State struct {
	fields   map[string]struct{}
	values   map[string]any
	failures map[string]error
}

var _ binder.FormContext = (*State)(nil)

// NewState declares the addressable paths and seeds the value tree with a
// deep copy of prefill.
func NewState(paths []string, prefill map[string]any) *State {
	s := &State{
		fields: make(map[string]struct{}, len(paths)),
		values: cloneValues(prefill),
	}
	s.Declare(paths...)
	return s
}

// Declare adds addressable paths. Blank paths are ignored. Declared paths
// never overlap: when one path is an ancestor of another ("a" and "a.b"),
// only the descendant stays addressable.
func (s *State) Declare(paths ...string) {
	if s.fields == nil {
		s.fields = make(map[string]struct{}, len(paths))
	}
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if s.hasDescendant(trimmed) {
			continue
		}
		for existing := range s.fields {
			if strings.HasPrefix(trimmed, existing+".") {
				delete(s.fields, existing)
			}
		}
		s.fields[trimmed] = struct{}{}
	}
}

func (s *State) hasDescendant(path string) bool {
	prefix := path + "."
	for existing := range s.fields {
		if strings.HasPrefix(existing, prefix) {
			return true
		}
	}
	return false
}

// Paths lists the declared paths in ascending order.
func (s *State) Paths() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.fields))
	for path := range s.fields {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Lookup implements binder.FormContext. A declared path whose write would be
// blocked by an incompatible value already in the tree (a string where a map
// is needed, a non-numeric index into a slice) does not resolve.
func (s *State) Lookup(name string) (binder.Control, bool) {
	if s == nil {
		return nil, false
	}
	if _, ok := s.fields[name]; !ok {
		return nil, false
	}
	if !canSet(s.values, strings.Split(name, ".")) {
		return nil, false
	}
	return binder.ControlFunc(func(value string) {
		if err := s.SetValue(name, value); err != nil {
			if s.failures == nil {
				s.failures = make(map[string]error)
			}
			s.failures[name] = err
		}
	}), true
}

// Values returns the current value tree (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// Failures reports writes through controls that no longer fit the tree, for
// example a control held across SetValue calls that replaced its parent.
func (s *State) Failures() map[string]error {
	if s == nil {
		return nil
	}
	return s.failures
}

// Get resolves a dotted path into the value tree.
func (s *State) Get(path string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return getPath(s.values, path)
}

// SetValue writes a value using a dotted path, creating intermediate maps and
// slices as needed.
func (s *State) SetValue(path string, value any) error {
	if s == nil {
		return fmt.Errorf("formctx: state is nil")
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return setPath(s.values, path, value)
}

func cloneValues(src map[string]any) map[string]any {
	if len(src) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	var current any = root
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// setPath walks the tree with a setter that reattaches grown slices to their
// parent, since append may reallocate.
func setPath(root map[string]any, path string, value any) error {
	if root == nil {
		return fmt.Errorf("formctx: root map is nil")
	}
	if path == "" {
		return fmt.Errorf("formctx: empty path")
	}
	segments := strings.Split(path, ".")
	return assign(root, func(v any) {}, segments, path, value)
}

func assign(node any, reattach func(any), segments []string, path string, value any) error {
	segment := segments[0]
	last := len(segments) == 1

	switch typed := node.(type) {
	case map[string]any:
		if last {
			typed[segment] = value
			return nil
		}
		child, ok := typed[segment]
		if !ok || child == nil {
			child = newContainer(segments[1])
			typed[segment] = child
		}
		return assign(child, func(v any) { typed[segment] = v }, segments[1:], path, value)

	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return fmt.Errorf("formctx: expected numeric segment in %q, got %q", path, segment)
		}
		if idx < 0 {
			return fmt.Errorf("formctx: negative index in path %q", path)
		}
		if len(typed) <= idx {
			typed = append(typed, make([]any, idx+1-len(typed))...)
			reattach(typed)
		}
		if last {
			typed[idx] = value
			return nil
		}
		if typed[idx] == nil {
			typed[idx] = newContainer(segments[1])
		}
		return assign(typed[idx], func(v any) { typed[idx] = v }, segments[1:], path, value)

	default:
		return fmt.Errorf("formctx: cannot descend into %T at %q in path %q", node, segment, path)
	}
}

// canSet reports whether assign would succeed for segments without touching
// the tree.
func canSet(node any, segments []string) bool {
	for i, segment := range segments {
		last := i == len(segments)-1
		switch typed := node.(type) {
		case nil:
			return true
		case map[string]any:
			if last {
				return true
			}
			node = typed[segment]
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 {
				return false
			}
			if last || idx >= len(typed) {
				return true
			}
			node = typed[idx]
		default:
			return false
		}
	}
	return true
}

func newContainer(next string) any {
	if _, err := strconv.Atoi(next); err == nil {
		return []any{}
	}
	return make(map[string]any)
}
