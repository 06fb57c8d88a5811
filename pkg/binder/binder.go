package binder

import "sort"

// Binder writes records into form contexts. The zero value is usable and
// binds with Stringify and no observers.
type Binder struct {
	observers Observers
	stringer  func(any) string
}

// Option configures a Binder.
type Option func(*Binder)

// WithObserver attaches observer hooks notified after each Bind.
func WithObserver(observers ...Observer) Option {
	return func(b *Binder) {
		for _, observer := range observers {
			if observer != nil {
				b.observers = append(b.observers, observer)
			}
		}
	}
}

// WithStringer overrides the value coercion used before assignment.
func WithStringer(fn func(any) string) Option {
	return func(b *Binder) {
		if fn != nil {
			b.stringer = fn
		}
	}
}

// New constructs a Binder with the supplied options.
func New(options ...Option) *Binder {
	b := &Binder{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Bind writes every record value into the control with the same name. Keys
// without a control are skipped. A nil or empty record performs no writes and
// yields an empty Result; a nil context resolves no controls.
func (b *Binder) Bind(record Record, ctx FormContext) Result {
	var result Result
	if b == nil {
		b = &Binder{}
	}

	stringer := b.stringer
	if stringer == nil {
		stringer = Stringify
	}

	for key, value := range record {
		var (
			control Control
			ok      bool
		)
		if ctx != nil {
			control, ok = ctx.Lookup(key)
		}
		if !ok || control == nil {
			result.Skipped = append(result.Skipped, key)
			continue
		}
		control.SetValue(stringer(value))
		result.Applied = append(result.Applied, key)
	}

	sortStrings(result.Applied)
	sortStrings(result.Skipped)

	b.observers.Bound(record, result)
	return result
}

// Bind binds record into ctx using a default Binder.
func Bind(record Record, ctx FormContext) Result {
	return New().Bind(record, ctx)
}

func sortStrings(values []string) {
	if len(values) > 1 {
		sort.Strings(values)
	}
}
