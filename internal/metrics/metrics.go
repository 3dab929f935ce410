package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gateway holds Prometheus metrics for the validation gateway.
type Gateway struct {
	// Lookup outcomes: ok, invalid_identifier, unauthorized, upstream_error, transport_error
	LookupOutcome *prometheus.CounterVec

	// Upstream provider round trip, labelled by HTTP status ("error" on transport failure)
	ProviderLatency *prometheus.HistogramVec
}

// NewGateway creates and registers the gateway metrics on reg.
func NewGateway(reg prometheus.Registerer) *Gateway {
	factory := promauto.With(reg)
	return &Gateway{
		LookupOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "imei_relay_gateway_lookups_total",
			Help: "Total identifier lookups handled by the gateway by outcome",
		}, []string{"outcome"}),

		ProviderLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "imei_relay_provider_request_duration_seconds",
			Help:    "Duration of upstream provider calls by response status",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"status"}),
	}
}

// IncrementOutcome records a lookup outcome.
func (m *Gateway) IncrementOutcome(outcome string) {
	if m != nil {
		m.LookupOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveProviderLatency records the duration of one upstream call.
func (m *Gateway) ObserveProviderLatency(status string, d time.Duration) {
	if m != nil {
		m.ProviderLatency.WithLabelValues(status).Observe(d.Seconds())
	}
}

// Bot holds Prometheus metrics for the chat front end.
type Bot struct {
	// Handled messages by outcome (denied, invalid_identifier, transport_error, ...)
	MessageOutcome *prometheus.CounterVec

	// Time from receiving a message to having the reply text ready
	HandleLatency prometheus.Histogram
}

// NewBot creates and registers the bot metrics on reg.
func NewBot(reg prometheus.Registerer) *Bot {
	factory := promauto.With(reg)
	return &Bot{
		MessageOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "imei_relay_bot_messages_total",
			Help: "Total chat messages handled by outcome",
		}, []string{"outcome"}),

		HandleLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "imei_relay_bot_handle_duration_seconds",
			Help:    "Duration of message handling including the gateway call",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
	}
}

// IncrementOutcome records a message outcome.
func (m *Bot) IncrementOutcome(outcome string) {
	if m != nil {
		m.MessageOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveHandleLatency records how long a message took to handle.
func (m *Bot) ObserveHandleLatency(d time.Duration) {
	if m != nil {
		m.HandleLatency.Observe(d.Seconds())
	}
}
