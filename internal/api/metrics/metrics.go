// Package metrics defines the custom Prometheus metrics for the job board
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry on package init via
// promauto.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

const namespace = "jobboard"

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsCreatedTotal counts postings written to the store.
// Label:
//   - source: "manual" or "external"
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of job postings created, by source.",
	},
	[]string{"source"},
)

// JobsDeletedTotal counts successful deletions.
var JobsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_deleted_total",
		Help:      "Total number of job postings deleted.",
	},
)

// SavedJobsTotal counts save/unsave attempts.
// Labels:
//   - action: "save" or "unsave"
//   - result: "ok", "conflict", "not_found" or "error"
var SavedJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saved_jobs_total",
		Help:      "Total number of saved-job changes, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Ingest metrics ────────────────────────────────────────────────────────────

// IngestRunsTotal counts ingestion runs.
// Labels:
//   - trigger: "http" or "schedule"
//   - result: "ok", "invalid_feed", "upstream", "in_progress" or "error"
var IngestRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_runs_total",
		Help:      "Total number of job feed ingestion runs, by trigger and result.",
	},
	[]string{"trigger", "result"},
)

// IngestDuration measures one ingestion run end to end.
var IngestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ingest_duration_seconds",
		Help:      "Duration of job feed ingestion runs, from fetch to batch insert.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"trigger"},
)

// ── Helpers ───────────────────────────────────────────────────────────────────

// ObserveIngest records one ingestion run.
func ObserveIngest(trigger string, ingested int, err error, took time.Duration) {
	result := IngestResult(err)
	IngestRunsTotal.WithLabelValues(trigger, result).Inc()
	if result == "in_progress" {
		return
	}
	IngestDuration.WithLabelValues(trigger).Observe(took.Seconds())
	if ingested > 0 {
		JobsCreatedTotal.WithLabelValues(string(domain.SourceExternal)).Add(float64(ingested))
	}
}

// IngestResult maps an ingest error to its result label.
func IngestResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrIngestInProgress):
		return "in_progress"
	case errors.Is(err, domain.ErrInvalidFeed):
		return "invalid_feed"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream"
	default:
		return "error"
	}
}

// SavedJobResult maps a save/unsave error to its result label.
func SavedJobResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrJobAlreadySaved):
		return "conflict"
	case errors.Is(err, domain.ErrJobNotFound), errors.Is(err, domain.ErrJobNotSaved), errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	default:
		return "error"
	}
}
