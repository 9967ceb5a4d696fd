package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics da Stella
var (
	CallsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stella_calls_dispatched_total",
			Help: "Ligações outbound despachadas, por resultado (dispatched/failed)",
		},
		[]string{"result"},
	)

	TrackerOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stella_tracker_ops_total",
			Help: "Operações do tracker de eventos excepcionais, por operação e desfecho",
		},
		[]string{"op", "outcome"},
	)

	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stella_webhook_events_total",
			Help: "Eventos recebidos no webhook da plataforma de voz, por tipo",
		},
		[]string{"event"},
	)

	OpenAIRequestSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stella_openai_request_seconds",
			Help:    "Latência das chamadas à API da OpenAI",
			Buckets: prometheus.DefBuckets,
		},
	)
)
