package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAlert(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.ObserveAlert("fire", "primary", OutcomeAssigned)
	c.ObserveAlert("fire", "primary", OutcomeAssigned)
	c.ObserveAlert("police", "supporting", OutcomeUnassigned)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.AlertsRouted.WithLabelValues("fire", "primary", OutcomeAssigned)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.AlertsRouted.WithLabelValues("police", "supporting", OutcomeUnassigned)))
}

func TestObserveLookup_RecordsHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.ObserveLookup("medical", 15*time.Millisecond)

	assert.Equal(t, uint64(1), histogramSampleCount(t, reg, "station_lookup_duration_seconds", map[string]string{"department": "medical"}))
}

func TestNewCollector_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	require.NoError(t, err)
	second, err := NewCollector(reg)
	require.NoError(t, err)

	first.ObserveTrigger("fire_detected")
	second.ObserveTrigger("fire_detected")

	assert.Equal(t, 2.0, testutil.ToFloat64(first.TriggersEvaluated.WithLabelValues("fire_detected")))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveAlert("fire", "primary", OutcomeAssigned)
		c.ObserveLookup("fire", time.Second)
		c.ObserveTrigger("fear_detected")
		c.ObserveReconcile("assigned")
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)
	c.ObserveReconcile("assigned")

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `alerts_reconciled_total{result="assigned"} 1`)
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	families, err := gatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
