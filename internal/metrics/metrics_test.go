package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.CheckIn("qr_scan")
	m.CheckIn("qr_scan")
	m.AccountProvisioned("member", "done")
	m.Notification("welcome", "sent")
	m.SubscriptionsExpired(3)
	m.SubscriptionsExpired(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.checkIns.WithLabelValues("qr_scan")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.accounts.WithLabelValues("member", "done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifySent.WithLabelValues("welcome", "sent")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.expiredSubs))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CheckIn("manual")
		m.AccountProvisioned("trainer", "failed")
		m.Notification("expiring", "failed")
		m.SubscriptionsExpired(1)
	})
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestMetrics_MiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/members/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/members/42", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpReqCnt.WithLabelValues("GET", "/members/{id}", "404")))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "gym_http_requests_total")
}

func TestMetrics_ServeExposesRegistry(t *testing.T) {
	m := New()
	m.SubscriptionsExpired(2)
	m.Notification("expiring", "sent")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "gym_subscriptions_expired_total 2")
	assert.Contains(t, string(body), `gym_notifications_total{kind="expiring",status="sent"} 1`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("metrics server did not stop after cancel")
	}
}

func TestMetrics_ServeBadAddress(t *testing.T) {
	err := New().Serve(context.Background(), "not-an-address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics.Serve")
}
