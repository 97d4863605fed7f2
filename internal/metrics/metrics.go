// Package metrics собирает метрики Prometheus для HTTP API и доменных событий клуба.
// Все методы безопасно вызывать у nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gym"

// Metrics набор счётчиков в собственном реестре.
type Metrics struct {
	registry    *prometheus.Registry
	httpReqCnt  *prometheus.CounterVec
	httpDur     *prometheus.HistogramVec
	checkIns    *prometheus.CounterVec
	accounts    *prometheus.CounterVec
	notifySent  *prometheus.CounterVec
	expiredSubs prometheus.Counter
}

// New регистрирует метрики процесса, Go и приложения.
func New() *Metrics {
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total"},
		[]string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds",
		Buckets: prometheus.DefBuckets}, []string{"method", "route"})
	checkIns := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "checkins_total"},
		[]string{"method"})
	accounts := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "account_provisioning_total"},
		[]string{"role", "outcome"})
	notifySent := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "notifications_total"},
		[]string{"kind", "status"})
	expiredSubs := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "subscriptions_expired_total"})
	r.MustRegister(httpReqCnt, httpDur, checkIns, accounts, notifySent, expiredSubs)

	return &Metrics{
		registry:    r,
		httpReqCnt:  httpReqCnt,
		httpDur:     httpDur,
		checkIns:    checkIns,
		accounts:    accounts,
		notifySent:  notifySent,
		expiredSubs: expiredSubs,
	}
}

// CheckIn учитывает отметку посещения указанным способом.
func (m *Metrics) CheckIn(method string) {
	if m == nil {
		return
	}
	m.checkIns.WithLabelValues(method).Inc()
}

// AccountProvisioned учитывает итог создания учётной записи участника или тренера.
func (m *Metrics) AccountProvisioned(role, outcome string) {
	if m == nil {
		return
	}
	m.accounts.WithLabelValues(role, outcome).Inc()
}

// Notification учитывает отправку или ошибку отправки письма.
func (m *Metrics) Notification(kind, status string) {
	if m == nil {
		return
	}
	m.notifySent.WithLabelValues(kind, status).Inc()
}

// SubscriptionsExpired учитывает подписки, переведённые в expired.
func (m *Metrics) SubscriptionsExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.expiredSubs.Add(float64(n))
}

// Middleware считает запросы по шаблону маршрута chi.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpReqCnt.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDur.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler отдаёт метрики реестра в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
