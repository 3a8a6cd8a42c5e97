package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	currentDesc = prometheus.NewDesc(
		"nitro_alloc_current_bytes",
		"Bytes currently outstanding in an allocation context.",
		[]string{"context"}, nil,
	)
	peakDesc = prometheus.NewDesc(
		"nitro_alloc_peak_bytes",
		"Largest number of bytes outstanding in an allocation context.",
		[]string{"context"}, nil,
	)
	totalDesc = prometheus.NewDesc(
		"nitro_alloc_bytes_total",
		"Bytes allocated in an allocation context.",
		[]string{"context"}, nil,
	)
	reallocatedDesc = prometheus.NewDesc(
		"nitro_alloc_reallocated_bytes_total",
		"Bytes discarded when a vector was replaced by a larger one.",
		[]string{"context"}, nil,
	)
)

// Collector exports the per-context statistics of an Allocator.  It reads
// the allocator when gathered, so it must only be gathered while the
// pipeline is not running.
type Collector struct {
	alloc *Allocator
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(a *Allocator) *Collector {
	return &Collector{alloc: a}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- currentDesc
	ch <- peakDesc
	ch <- totalDesc
	ch <- reallocatedDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, ctx := range c.alloc.Contexts() {
		s := c.alloc.Stats(ctx)
		name := string(ctx)
		ch <- prometheus.MustNewConstMetric(currentDesc, prometheus.GaugeValue, float64(s.Current), name)
		ch <- prometheus.MustNewConstMetric(peakDesc, prometheus.GaugeValue, float64(s.Peak), name)
		ch <- prometheus.MustNewConstMetric(totalDesc, prometheus.CounterValue, float64(s.Total), name)
		ch <- prometheus.MustNewConstMetric(reallocatedDesc, prometheus.CounterValue, float64(s.Reallocated), name)
	}
}
