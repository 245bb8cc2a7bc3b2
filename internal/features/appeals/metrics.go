package appeals

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var appealsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moderation_appeals_total",
	Help: "Appeals filed, by content type",
}, []string{"content_type"})
