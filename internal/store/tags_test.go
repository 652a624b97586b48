package store

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"tally/internal/log"
)

func TestTags_FetchWrappedAndBare(t *testing.T) {
	payloads := map[string]string{
		"wrapped": `{"data": [{"id": 1, "name": "Food"}, {"id": 2, "name": "Transport"}]}`,
		"bare":    `[{"id": 1, "name": "Food"}, {"id": 2, "name": "Transport"}]`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(payload))
			}))
			s := NewTags(client, log.Discard())

			s.Fetch(context.Background())

			list := s.List()
			if len(list) != 2 || list[0].Name != "Food" || list[1].Name != "Transport" {
				t.Errorf("list = %+v", list)
			}
			if s.Loading() {
				t.Error("loading should be false after fetch")
			}
		})
	}
}

func TestTags_FetchErrorSwallowedListEmptied(t *testing.T) {
	var calls atomic.Int64
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Write([]byte(`[{"id": 1, "name": "Food"}]`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	s := NewTags(client, log.Discard())

	s.Fetch(context.Background())
	if len(s.List()) != 1 {
		t.Fatalf("first fetch should populate, got %+v", s.List())
	}

	// second fetch fails: list resets, no panic, no error surfaces
	s.Fetch(context.Background())
	if len(s.List()) != 0 {
		t.Errorf("list should be empty after failed fetch, got %+v", s.List())
	}
	if s.Loading() {
		t.Error("loading should end false")
	}
}

func TestTags_AddConflictTranslated(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error": "duplicate tag name"}`))
	}))
	s := NewTags(client, log.Discard())

	_, err := s.Add(context.Background(), TagInput{Name: "Food"})
	if !errors.Is(err, ErrTagExists) {
		t.Errorf("err = %v, want ErrTagExists", err)
	}
}

func TestTags_AddSuccessResyncs(t *testing.T) {
	var gets atomic.Int64
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Write([]byte(`{"data": {"id": 3, "name": "Holidays", "color": "#0000FF"}}`))
		case http.MethodGet:
			gets.Add(1)
			w.Write([]byte(`[{"id": 3, "name": "Holidays"}]`))
		}
	}))
	s := NewTags(client, log.Discard())

	created, err := s.Add(context.Background(), TagInput{Name: "Holidays", Color: "#0000FF"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.ID != 3 || created.Name != "Holidays" {
		t.Errorf("created = %+v", created)
	}
	if gets.Load() != 1 {
		t.Errorf("gets = %d, want re-sync fetch after create", gets.Load())
	}
	if len(s.List()) != 1 {
		t.Errorf("list = %+v", s.List())
	}
}

func TestTags_RemoveTagInUse(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[{"id": 1, "name": "Food"}]`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "tag in use by 3 transactions"}`))
		}
	}))
	s := NewTags(client, log.Discard())
	s.Fetch(context.Background())

	err := s.Remove(context.Background(), 1)
	if !errors.Is(err, ErrTagInUse) {
		t.Errorf("err = %v, want ErrTagInUse", err)
	}
	if len(s.List()) != 1 {
		t.Errorf("list must be unchanged after failed remove, got %+v", s.List())
	}
}

func TestTags_ErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		write  func(*Tags) error
		want   error
	}{
		{"conflict on create", http.StatusConflict, `{}`, func(s *Tags) error {
			_, err := s.Add(context.Background(), TagInput{Name: "Food"})
			return err
		}, ErrTagExists},
		{"not found on update", http.StatusNotFound, `{}`, func(s *Tags) error {
			_, err := s.Update(context.Background(), 9, TagInput{Name: "Food"})
			return err
		}, ErrTagNotFound},
		{"method not allowed", http.StatusMethodNotAllowed, `{}`, func(s *Tags) error {
			return s.Remove(context.Background(), 9)
		}, ErrTagOperationUnsupported},
		{"bad request with fragment", http.StatusBadRequest, `{"error": "Tag In Use"}`, func(s *Tags) error {
			return s.Remove(context.Background(), 9)
		}, ErrTagInUse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			s := NewTags(client, log.Discard())

			if err := tc.write(s); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestTags_UnrecognizedErrorPassesThrough(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "something unrelated"}`))
	}))
	s := NewTags(client, log.Discard())

	err := s.Remove(context.Background(), 9)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, sentinel := range []error{ErrTagExists, ErrTagNotFound, ErrTagOperationUnsupported, ErrTagInUse} {
		if errors.Is(err, sentinel) {
			t.Errorf("err = %v should not match %v", err, sentinel)
		}
	}
}
