package moderation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moderation_decisions_total",
	Help: "Classification decisions written, by content type and status",
}, []string{"content_type", "status"})

var classifierDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "moderation_classifier_duration_sec",
	Help:    "Classifier call latency by driver and outcome",
	Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
}, []string{"driver", "outcome"})

var classifierFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moderation_classifier_fallbacks_total",
	Help: "Submissions sent to needs_review because the classifier failed",
}, []string{"driver"})

var feedbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moderation_feedback_total",
	Help: "Moderator feedback applied, by resulting status",
}, []string{"status"})

var reopenTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moderation_reopen_total",
	Help: "Logs returned to review, by trigger",
}, []string{"trigger"})
