package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.RecordOperation("mint", "success")
	m.RecordOperation("mint", "success")
	m.RecordOperation("mint", "unauthorized")
	m.SetTotalSupply("0xabc", 2)
	m.RecordPublish(nil)
	m.RecordPublish(errors.New("broker down"))
	m.RecordDelivery("success")
	m.ObserveHTTPRequest("GET", "/api/v1/collection", 200, 15*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.operations.WithLabelValues("mint", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.operations.WithLabelValues("mint", "unauthorized")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.totalSupply.WithLabelValues("0xabc")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.published.WithLabelValues("failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.deliveries.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/collection", "200")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RecordOperation("transfer", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `ff_ledger_operations_total{operation="transfer",result="success"} 1`))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordOperation("mint", "success")
	m.SetTotalSupply("0xabc", 1)
	m.RecordPublish(nil)
	m.RecordDelivery("failure")
	m.ObserveHTTPRequest("GET", "", 404, time.Millisecond)
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
