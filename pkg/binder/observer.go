package binder

// Observer receives the outcome of every Bind call once all writes have
// happened. Observers are diagnostics only; they cannot change the result.
type Observer interface {
	Bound(record Record, result Result)
}

// ObserverFunc adapts a function into an Observer.
type ObserverFunc func(record Record, result Result)

// Bound calls fn(record, result).
func (fn ObserverFunc) Bound(record Record, result Result) {
	if fn != nil {
		fn(record, result)
	}
}

// Observers fans a single notification out to several observers in order.
type Observers []Observer

// Bound notifies every non-nil observer.
func (o Observers) Bound(record Record, result Result) {
	for _, observer := range o {
		if observer == nil {
			continue
		}
		observer.Bound(record, result)
	}
}
