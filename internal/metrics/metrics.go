// Package metrics exposes Prometheus counters for bind outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formbind/pkg/binder"
)

// Observer counts binds and per-key outcomes. It implements binder.Observer.
type Observer struct {
	binds   *prometheus.CounterVec
	applied prometheus.Counter
	skipped prometheus.Counter
}

var _ binder.Observer = (*Observer)(nil)

// NewObserver registers the counters on reg. A nil registerer leaves the
// counters unregistered, which is convenient for tests.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		binds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formbind",
			Name:      "binds_total",
			Help:      "Bind calls partitioned by whether a record was supplied.",
		}, []string{"record"}),
		applied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "formbind",
			Name:      "keys_applied_total",
			Help:      "Record keys written into a matching control.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "formbind",
			Name:      "keys_skipped_total",
			Help:      "Record keys without a matching control.",
		}),
	}
	if reg == nil {
		return o, nil
	}
	for _, c := range []prometheus.Collector{o.binds, o.applied, o.skipped} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Bound implements binder.Observer.
func (o *Observer) Bound(record binder.Record, result binder.Result) {
	if o == nil {
		return
	}
	label := "present"
	if record == nil {
		label = "absent"
	}
	o.binds.WithLabelValues(label).Inc()
	o.applied.Add(float64(len(result.Applied)))
	o.skipped.Add(float64(len(result.Skipped)))
}
