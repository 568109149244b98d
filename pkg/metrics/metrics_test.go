package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()

	m.ObserveRequest("GET", "/shoppings/:id", "200", 20*time.Millisecond)
	m.ObserveRequest("GET", "/shoppings/:id", "200", 10*time.Millisecond)
	m.ObserveLookup("catalog", "not_found", time.Millisecond)
	m.ShoppingCreated()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/shoppings/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RemoteLookups.WithLabelValues("catalog", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ShoppingsCreated))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET", "/", "200", time.Millisecond)
	m.ObserveLookup("identity", "found", time.Millisecond)
	m.ShoppingCreated()
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ShoppingCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "shopping_orders_created_total 1"))
}
