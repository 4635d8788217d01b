package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Reminder("class")
	m.Reminder("class")
	m.Reminder("suggestion")
	m.Cycle(true)
	m.Cycle(false)
	m.DeliveryError("mqtt")
	m.SuggestionComputed()

	if got := testutil.ToFloat64(m.remindersTotal.WithLabelValues("class")); got != 2 {
		t.Errorf("class reminders = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.reminderCycles.WithLabelValues("failed")); got != 1 {
		t.Errorf("failed cycles = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.suggestionsTotal); got != 1 {
		t.Errorf("suggestions = %v, want 1", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.Reminder("class")
	m.Cycle(true)
	m.DeliveryError("kafka")
	m.SuggestionComputed()

	h := m.WrapHandler("/x", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestWrapHandlerAndExposition(t *testing.T) {
	m := New()
	h := m.WrapHandler("/healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("/healthz", "404")); got != 1 {
		t.Errorf("requests{/healthz,404} = %v, want 1", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "weekplan_http_requests_total") {
		t.Error("exposition missing weekplan_http_requests_total")
	}
}
