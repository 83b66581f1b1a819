package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistration(t *testing.T) {
	// Verify all metrics are registered without conflicts
	metrics := []prometheus.Collector{
		HubConnectedClients,
		EventsPublishedTotal,
		HubSlowClientsEvicted,
		HubPanicsTotal,
		HubStopTimeoutsTotal,
		WebSocketMessageSendDuration,
		WebSocketPingFailures,
		DBQueryDuration,
		DBErrorsTotal,
		MutationsTotal,
		MutationDuration,
	}

	for _, metric := range metrics {
		desc := make(chan *prometheus.Desc, 1)
		metric.Describe(desc)
		close(desc)

		require.NotNil(t, <-desc, "metric should have a valid descriptor")
	}
}

func TestEventsPublishedTotal(t *testing.T) {
	before := testutil.ToFloat64(EventsPublishedTotal.WithLabelValues("vote"))
	EventsPublishedTotal.WithLabelValues("vote").Inc()
	after := testutil.ToFloat64(EventsPublishedTotal.WithLabelValues("vote"))

	assert.Equal(t, before+1, after)
}

func TestHubConnectedClients(t *testing.T) {
	HubConnectedClients.Set(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(HubConnectedClients))
	HubConnectedClients.Set(0)
}
