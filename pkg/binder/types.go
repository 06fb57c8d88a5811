package binder

// Record maps control names to primitive display values. A nil Record means
// no data was found and binding becomes a no-op.
type Record map[string]any

// Keys returns the record keys in ascending order.
func (r Record) Keys() []string {
	if len(r) == 0 {
		return nil
	}
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sortStrings(keys)
	return keys
}

// Control is a single assignable form control.
type Control interface {
	SetValue(value string)
}

// FormContext resolves controls by their exact name attribute. Implementations
// are not required to be safe for concurrent use; Bind assumes exclusive
// access for the duration of the call.
type FormContext interface {
	Lookup(name string) (Control, bool)
}

// ControlFunc adapts a plain function into a Control.
type ControlFunc func(value string)

// SetValue calls fn(value).
func (fn ControlFunc) SetValue(value string) {
	if fn != nil {
		fn(value)
	}
}

// Result reports which record keys were written and which had no matching
// control. Both slices are sorted.
type Result struct {
	Applied []string `json:"applied,omitempty"`
	Skipped []string `json:"skipped,omitempty"`
}

// Empty reports whether the bind touched nothing and skipped nothing.
func (r Result) Empty() bool {
	return len(r.Applied) == 0 && len(r.Skipped) == 0
}

// IsApplied reports whether key was written to a control.
func (r Result) IsApplied(key string) bool {
	return containsString(r.Applied, key)
}

// IsSkipped reports whether key had no matching control.
func (r Result) IsSkipped(key string) bool {
	return containsString(r.Skipped, key)
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
