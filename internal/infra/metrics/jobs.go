package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	generationJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_jobs_total",
			Help: "Generation jobs by terminal status (completed/failed).",
		},
		[]string{"status"},
	)

	synthesisLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "synthesis_latency_seconds",
			Help:    "Synthesis backend call latency distribution.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "generation_queue_depth",
			Help: "Queued generation jobs awaiting a worker.",
		},
	)
)

func init() { register(generationJobs, synthesisLatency, queueDepth) }

func IncGenerationJob(status string) { generationJobs.WithLabelValues(status).Inc() }

func ObserveSynthesisLatency(seconds float64) { synthesisLatency.Observe(seconds) }

func SetQueueDepth(n int) { queueDepth.Set(float64(n)) }
