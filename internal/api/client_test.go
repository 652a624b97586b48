package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"tally/internal/log"
	"tally/internal/notify"
)

type fakeSession struct {
	key     string
	cleared int
}

func (s *fakeSession) Key() string { return s.key }

func (s *fakeSession) ClearKey() error {
	s.key = ""
	s.cleared++
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, sess *fakeSession, queue *notify.Queue, navigate func()) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(Config{BaseURL: srv.URL + "/api/v1"}, sess, queue, navigate, log.Discard())
	return c, srv
}

func TestClient_InjectsAPIKeyHeader(t *testing.T) {
	var gotKey, gotContentType, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	})

	sess := &fakeSession{key: "abc123"}
	c, _ := newTestClient(t, handler, sess, notify.NewQueue(), nil)

	if _, err := c.Get(context.Background(), "/tags", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotKey != "abc123" {
		t.Errorf("X-API-Key = %q, want abc123", gotKey)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID should be set")
	}
}

func TestClient_NoKeyHeaderWhenSessionEmpty(t *testing.T) {
	var hasKey bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasKey = r.Header["X-Api-Key"]
		w.Write([]byte(`[]`))
	})

	c, _ := newTestClient(t, handler, &fakeSession{}, notify.NewQueue(), nil)

	if _, err := c.Get(context.Background(), "/tags", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hasKey {
		t.Error("X-API-Key must not be sent when no key is set")
	}
}

func TestClient_UnauthorizedClearsSessionAndRedirects(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	sess := &fakeSession{key: "stale"}
	queue := notify.NewQueue()
	navigations := 0
	c, _ := newTestClient(t, handler, sess, queue, func() { navigations++ })

	_, err := c.Get(context.Background(), "/transactions", nil)
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr, ok := err.(*Error)
	if !ok || apiErr.Status != http.StatusUnauthorized {
		t.Errorf("err = %v, want *Error with status 401", err)
	}
	if sess.key != "" || sess.cleared != 1 {
		t.Errorf("session should be cleared exactly once: key=%q cleared=%d", sess.key, sess.cleared)
	}
	if navigations != 1 {
		t.Errorf("navigations = %d, want exactly 1 per failed request", navigations)
	}
	cur, ok := queue.Current()
	if !ok || cur.Message != "Session expired" || cur.Level != notify.LevelError {
		t.Errorf("notification = %+v, want error-level 'Session expired'", cur)
	}
}

func TestClient_ServerErrorUsesServerMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "tag in use"}`))
	})

	queue := notify.NewQueue()
	c, _ := newTestClient(t, handler, &fakeSession{key: "k"}, queue, nil)

	_, err := c.Delete(context.Background(), "/tags/1")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %T, want *Error", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "tag in use" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	cur, ok := queue.Current()
	if !ok || cur.Message != "tag in use" || cur.Level != notify.LevelError {
		t.Errorf("notification = %+v", cur)
	}
}

func TestClient_ServerErrorGenericMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json`))
	})

	queue := notify.NewQueue()
	c, _ := newTestClient(t, handler, &fakeSession{key: "k"}, queue, nil)

	_, err := c.Get(context.Background(), "/reports/monthly/2024-01", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	cur, ok := queue.Current()
	if !ok || !strings.Contains(cur.Message, "Request failed") {
		t.Errorf("notification = %+v, want generic failure message", cur)
	}
}

func TestClient_TransportErrorPropagates(t *testing.T) {
	sess := &fakeSession{key: "k"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close() // connection refused from here on

	c := New(Config{BaseURL: base}, sess, notify.NewQueue(), nil, log.Discard())
	if _, err := c.Get(context.Background(), "/tags", nil); err == nil {
		t.Fatal("expected transport error")
	}
	if sess.key == "" {
		t.Error("transport errors must not clear the session")
	}
}

func TestClient_DefaultTimeout(t *testing.T) {
	c := New(Config{BaseURL: "/api/v1"}, &fakeSession{}, notify.NewQueue(), nil, log.Discard())
	if c.http.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", c.http.Timeout)
	}
}

func TestClient_QueryParameters(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})

	c, _ := newTestClient(t, handler, &fakeSession{key: "k"}, notify.NewQueue(), nil)

	q := url.Values{}
	q.Set("start_date", "2024-01-01")
	q.Set("end_date", "2024-01-31")
	if _, err := c.Get(context.Background(), "/transactions", q); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.Contains(gotQuery, "start_date=2024-01-01") || !strings.Contains(gotQuery, "end_date=2024-01-31") {
		t.Errorf("query = %q", gotQuery)
	}
}
