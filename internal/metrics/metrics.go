package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msgsvc_dispatch_total",
			Help: "Dispatch attempts by outcome and source",
		},
		[]string{"status", "source"}, // sent|failed , manual|template|resend|receipt|reminder
	)

	TemplateOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "msgsvc_template_ops_total",
			Help: "Template store mutations by operation",
		},
		[]string{"op"}, // create|update|delete
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		DispatchTotal,
		TemplateOpsTotal,
	)
}
