package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.RecordLogin(LoginSuccess)
	m.RecordLogin(LoginRejected)
	m.RecordLogin(LoginRejected)
	m.RecordLegalFetch("austlii", false)
	m.RecordImported(3)
	m.RecordImported(0)
	m.ObserveRequest("get", "/api/articles", 200, 20*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues(LoginSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.logins.WithLabelValues(LoginRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.legalFetches.WithLabelValues("austlii", "false")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.imported))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/articles", "200")))
}

func TestInFlight(t *testing.T) {
	m := New()
	done := m.InFlight()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordLogin(LoginError)
		m.RecordLegalFetch("rss", true)
		m.RecordImported(1)
		m.ObserveRequest("GET", "/", 200, time.Millisecond)
		m.InFlight()()
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RecordLogin(LoginSuccess)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `legalcurrent_auth_logins_total{outcome="success"} 1`)
}
