// internal/metrics/collector.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label used for successful operations.
const ResultOK = "ok"

// Collector holds the Prometheus metrics for container operations and the
// allocators backing them. Every method is safe to call on a nil *Collector,
// which lets containers run uninstrumented without branching.
type Collector struct {
	Operations     *prometheus.CounterVec
	Allocations    *prometheus.CounterVec
	AllocatedBytes prometheus.Gauge
	Recenters      *prometheus.CounterVec
	registry       *prometheus.Registry
}

// NewCollector creates a collector registered against its own registry
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adtkit_operations_total",
				Help: "Total number of container operations by result",
			},
			[]string{"container", "op", "result"},
		),
		Allocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adtkit_allocations_total",
				Help: "Total number of allocator requests by result",
			},
			[]string{"result"},
		),
		AllocatedBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "adtkit_allocated_bytes",
				Help: "Bytes currently handed out by instrumented allocators",
			},
		),
		Recenters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adtkit_recenters_total",
				Help: "Total number of in-place re-centering passes",
			},
			[]string{"container"},
		),
		registry: registry,
	}

	registry.MustRegister(c.Operations)
	registry.MustRegister(c.Allocations)
	registry.MustRegister(c.AllocatedBytes)
	registry.MustRegister(c.Recenters)

	return c
}

// RecordOp counts one container operation
func (c *Collector) RecordOp(container, op, result string) {
	if c == nil {
		return
	}
	c.Operations.WithLabelValues(container, op, result).Inc()
}

// RecordAlloc counts an allocation attempt and tracks outstanding bytes
func (c *Collector) RecordAlloc(bytes int, ok bool) {
	if c == nil {
		return
	}
	if !ok {
		c.Allocations.WithLabelValues("failed").Inc()
		return
	}
	c.Allocations.WithLabelValues(ResultOK).Inc()
	c.AllocatedBytes.Add(float64(bytes))
}

// RecordFree tracks bytes returned to an allocator
func (c *Collector) RecordFree(bytes int) {
	if c == nil {
		return
	}
	c.AllocatedBytes.Sub(float64(bytes))
}

// RecordRecenter counts a re-centering pass of a movable-head container
func (c *Collector) RecordRecenter(container string) {
	if c == nil {
		return
	}
	c.Recenters.WithLabelValues(container).Inc()
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler returns the Prometheus metrics handler
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
