package complaints

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var complaintsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moderation_complaints_total",
	Help: "Complaints filed, by content type and reason",
}, []string{"content_type", "reason"})
