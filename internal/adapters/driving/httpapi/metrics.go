package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// compositionsTotal counts successful compositions.
var compositionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "promptsmith_compositions_total",
	Help: "Number of prompts composed, by pack and fill mode.",
}, []string{"pack", "mode"})
