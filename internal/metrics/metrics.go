// Package metrics exports pipeline counters on a private Prometheus registry.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "docpipeline"

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeSkipped  = "skipped"
)

// Recorder is nil-safe: a nil *Recorder drops every observation.
type Recorder struct {
	registry        *prometheus.Registry
	classifications *prometheus.CounterVec
	extractions     *prometheus.CounterVec
	generations     *prometheus.CounterVec
	genDuration     *prometheus.HistogramVec
}

// New registers the pipeline collectors on a fresh registry.
func New() (*Recorder, error) {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Uploads classified, by category and outcome.",
		}, []string{"category", "outcome"}),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Content extractions, by category and outcome.",
		}, []string{"category", "outcome"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Artifact generations, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		genDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Latency of artifact generation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{r.classifications, r.extractions, r.generations, r.genDuration} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return r, nil
}

// Registry exposes the gatherer for export.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) Classification(category, outcome string) {
	if r == nil {
		return
	}
	r.classifications.WithLabelValues(category, outcome).Inc()
}

func (r *Recorder) Extraction(category, outcome string) {
	if r == nil {
		return
	}
	r.extractions.WithLabelValues(category, outcome).Inc()
}

func (r *Recorder) Generation(kind, outcome string, took time.Duration) {
	if r == nil {
		return
	}
	r.generations.WithLabelValues(kind, outcome).Inc()
	if outcome != OutcomeSkipped {
		r.genDuration.WithLabelValues(kind).Observe(took.Seconds())
	}
}

// WriteTextfile dumps the current values in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
