// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package identify

import "github.com/prometheus/client_golang/prometheus"

// engineMetrics publishes iteration/pool-size observations, mirrored on
// the teacher's metrics.Averager pattern (metrics/metric.go) of owning its
// own prometheus.Counter/Gauge pair rather than wrapping a third-party
// metrics facade.
type engineMetrics struct {
	iterations prometheus.Counter
	poolSize   prometheus.Gauge
}

// NewMetrics registers the engine's Prometheus collectors against reg and
// returns a value suitable for WithMetrics. Pass nil to disable metrics.
func NewMetrics(reg prometheus.Registerer) (*engineMetrics, error) {
	if reg == nil {
		return nil, nil
	}
	m := &engineMetrics{
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "idesyde",
			Subsystem: "identify",
			Name:      "iterations_total",
			Help:      "Total number of fixed-point iterations run by the identification engine.",
		}),
		poolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "idesyde",
			Subsystem: "identify",
			Name:      "pool_size",
			Help:      "Number of decision models currently in the pool.",
		}),
	}
	if err := reg.Register(m.iterations); err != nil {
		return nil, err
	}
	if err := reg.Register(m.poolSize); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *engineMetrics) observeIteration(poolSize int) {
	if m == nil {
		return
	}
	m.iterations.Inc()
	m.poolSize.Set(float64(poolSize))
}
