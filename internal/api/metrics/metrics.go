// Package metrics defines and registers the custom Prometheus metrics for
// the e-waste classification API. It is the single source of truth for
// metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ewaste"

// ClassificationsTotal counts classifications that completed successfully.
// Label:
//   - category: the predicted label (e.g. "laptop")
var ClassificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classifications_total",
		Help:      "Total number of images successfully classified, by predicted category.",
	},
	[]string{"category"},
)

// ClassificationErrorsTotal counts classify requests that failed.
// Label:
//   - reason: short description of the failure ("invalid_image", "model_unavailable", "internal")
var ClassificationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classification_errors_total",
		Help:      "Total number of classify requests that failed, by reason.",
	},
	[]string{"reason"},
)

// ClassificationConfidence observes the confidence percentage of successful
// classifications.
var ClassificationConfidence = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "classification_confidence_percent",
		Help:      "Confidence of successful classifications, in percent.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10), // 10, 20, … 100
	},
)

// ClassifyDuration measures a classify request end-to-end: upload save,
// forward pass, and ledger write.
var ClassifyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "classify_duration_seconds",
		Help:      "Duration of the full classify flow from upload to ledger write.",
		Buckets:   prometheus.DefBuckets,
	},
)
