package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/campuswellness/weekplan/internal/metrics"
	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/storage/sqlite"
)

var fixedNow = time.Date(2024, 10, 7, 8, 30, 0, 0, time.Local)

func setupTestServer(t *testing.T) (*Server, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.AddProfile(models.Profile{Username: "alice", Email: "alice@campus.edu"}); err != nil {
		t.Fatalf("AddProfile() failed: %v", err)
	}
	if err := store.AddClassSession(models.ClassSession{
		ID:        "c1",
		Username:  "alice",
		Name:      "Calculus",
		Weekdays:  []time.Weekday{time.Monday, time.Wednesday},
		Start:     models.NewTimeOfDay(9, 0),
		End:       models.NewTimeOfDay(10, 0),
		FirstDate: time.Date(2024, 9, 2, 0, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("AddClassSession() failed: %v", err)
	}
	for _, a := range []models.Assignment{
		{ID: "a1", Username: "alice", Name: "Lab report", DueDate: "2024-10-01"},
		{ID: "a2", Username: "alice", Name: "Essay", DueDate: "2024-10-07"},
	} {
		if err := store.AddAssignment(a); err != nil {
			t.Fatalf("AddAssignment() failed: %v", err)
		}
	}

	srv := New(Options{
		Store:   store,
		Metrics: metrics.New(),
		Now:     func() time.Time { return fixedNow },
	})
	return srv, store
}

func do(t *testing.T, srv *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestStatusCodes(t *testing.T) {
	srv, _ := setupTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health", http.MethodGet, "/healthz", http.StatusOK},
		{"week", http.MethodGet, "/api/users/alice/week", http.StatusOK},
		{"week unknown user", http.MethodGet, "/api/users/bob/week", http.StatusNotFound},
		{"suggestion not computed", http.MethodGet, "/api/users/alice/suggestions/2024-10-08", http.StatusNotFound},
		{"suggestion bad date", http.MethodGet, "/api/users/alice/suggestions/tomorrow", http.StatusBadRequest},
		{"suggestion unknown user", http.MethodPost, "/api/users/bob/suggestions/2024-10-07", http.StatusNotFound},
		{"reminders bad instant", http.MethodGet, "/api/users/alice/reminders?at=noon", http.StatusBadRequest},
		{"reminders unknown user", http.MethodGet, "/api/users/bob/reminders", http.StatusNotFound},
		{"assignments unknown user", http.MethodGet, "/api/users/bob/assignments", http.StatusNotFound},
		{"calendar unknown user", http.MethodGet, "/api/users/bob/calendar.ics", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/api/users/alice/week", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.path)
			if rec.Code != tt.want {
				t.Errorf("%s %s = %d, want %d (body %s)", tt.method, tt.path, rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestWeek(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/users/alice/week")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var events []models.CalendarEventInstance
	if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
		t.Fatalf("decode: %v", err)
	}

	classes := 0
	for _, e := range events {
		if e.Kind == models.EventKindClass {
			classes++
			if e.Title != "Calculus" {
				t.Errorf("class title = %q, want Calculus", e.Title)
			}
		}
	}
	// Mon 7, Wed 9 and Mon 14 fall within today+7.
	if classes != 3 {
		t.Errorf("class events = %d, want 3", classes)
	}
}

func TestSuggestionComputeThenGet(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/users/alice/suggestions/2024-10-07")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	rec = do(t, srv, http.MethodGet, "/api/users/alice/suggestions/2024-10-07")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rec.Code)
	}
	var got models.SuggestionRecord
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Date != "2024-10-07" {
		t.Errorf("Date = %q, want 2024-10-07", got.Date)
	}
	if got.Breakfast == nil || *got.Breakfast != "07:00:00" {
		t.Errorf("Breakfast = %v, want 07:00:00", got.Breakfast)
	}
}

func TestReminders(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/users/alice/reminders?at=2024-10-07T08:30:00")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var reminders []models.Reminder
	if err := json.NewDecoder(rec.Body).Decode(&reminders); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var messages []string
	for _, r := range reminders {
		messages = append(messages, r.Message)
	}
	joined := strings.Join(messages, "\n")
	for _, want := range []string{
		"Reminder: You have Calculus starting at 09:00:00",
		"Reminder: You have an assignment due today: Essay",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("reminders %q missing %q", messages, want)
		}
	}
}

func TestRemindersEmptyIsArray(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/users/alice/reminders?at=2024-10-08T23:00:00")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestAssignments(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/users/alice/assignments")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got assignmentsResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Late) != 1 || got.Late[0].Name != "Lab report" {
		t.Errorf("Late = %+v, want [Lab report]", got.Late)
	}
	if len(got.Upcoming) != 1 || got.Upcoming[0].Name != "Essay" {
		t.Errorf("Upcoming = %+v, want [Essay]", got.Upcoming)
	}
}

func TestCalendarFeed(t *testing.T) {
	srv, _ := setupTestServer(t)

	do(t, srv, http.MethodPost, "/api/users/alice/suggestions/2024-10-07")
	rec := do(t, srv, http.MethodGet, "/api/users/alice/calendar.ics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type = %q, want text/calendar", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "SUMMARY:Calculus", "SUMMARY:Essay", "SUMMARY:Breakfast"} {
		if !strings.Contains(body, want) {
			t.Errorf("feed missing %q", want)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	do(t, srv, http.MethodGet, "/healthz")
	rec := do(t, srv, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `weekplan_http_requests_total{route="healthz",status="200"} 1`) {
		t.Errorf("metrics output missing healthz counter:\n%s", rec.Body.String())
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv, _ := setupTestServer(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, addr) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/healthz")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never came up: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe() did not return after cancel")
	}
}
