package formctx

import (
	"sort"

	"github.com/goliatone/go-formbind/pkg/binder"
)

// Memory is an in-memory FormContext holding a fixed set of named controls.
type Memory struct {
	controls map[string]*memoryControl
	writes   int
}

type memoryControl struct {
	owner *Memory
	value string
}

func (c *memoryControl) SetValue(value string) {
	c.value = value
	c.owner.writes++
}

var _ binder.FormContext = (*Memory)(nil)

// NewMemory creates controls for the supplied names with empty values.
func NewMemory(names ...string) *Memory {
	m := &Memory{controls: make(map[string]*memoryControl, len(names))}
	for _, name := range names {
		m.controls[name] = &memoryControl{owner: m}
	}
	return m
}

// NewMemoryWithValues creates controls seeded with initial values. Seeding
// does not count as a write.
func NewMemoryWithValues(values map[string]string) *Memory {
	m := &Memory{controls: make(map[string]*memoryControl, len(values))}
	for name, value := range values {
		m.controls[name] = &memoryControl{owner: m, value: value}
	}
	return m
}

// Lookup implements binder.FormContext.
func (m *Memory) Lookup(name string) (binder.Control, bool) {
	if m == nil {
		return nil, false
	}
	control, ok := m.controls[name]
	if !ok {
		return nil, false
	}
	return control, true
}

// Value returns the current value of the named control.
func (m *Memory) Value(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	control, ok := m.controls[name]
	if !ok {
		return "", false
	}
	return control.value, true
}

// Values snapshots every control value.
func (m *Memory) Values() map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m.controls))
	for name, control := range m.controls {
		out[name] = control.value
	}
	return out
}

// Names lists the control names in ascending order.
func (m *Memory) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.controls))
	for name := range m.controls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Writes counts SetValue calls since construction.
func (m *Memory) Writes() int {
	if m == nil {
		return 0
	}
	return m.writes
}
