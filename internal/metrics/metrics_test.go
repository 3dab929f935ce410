package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGatewayMetrics(t *testing.T) {
	m := NewGateway(prometheus.NewRegistry())

	m.IncrementOutcome("ok")
	m.IncrementOutcome("ok")
	m.IncrementOutcome("unauthorized")
	m.ObserveProviderLatency("200", 120*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LookupOutcome.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupOutcome.WithLabelValues("unauthorized")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ProviderLatency))
}

func TestBotMetrics(t *testing.T) {
	m := NewBot(prometheus.NewRegistry())

	m.IncrementOutcome("denied")
	m.ObserveHandleLatency(time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.MessageOutcome.WithLabelValues("denied")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HandleLatency))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var g *Gateway
	var b *Bot
	assert.NotPanics(t, func() {
		g.IncrementOutcome("ok")
		g.ObserveProviderLatency("200", time.Millisecond)
		b.IncrementOutcome("ok")
		b.ObserveHandleLatency(time.Millisecond)
	})
}
