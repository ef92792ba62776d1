package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewRESTStoreRequiresBaseURL(t *testing.T) {
	if _, err := NewRESTStore("   "); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestLoadMapsNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client, err := NewRESTStore(ts.URL)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := client.Load(context.Background(), 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveSurfacesServerErrorsWithoutRetry(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client, err := NewRESTStore(ts.URL)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := client.Save(context.Background(), Record{Title: "x"}); err == nil {
		t.Fatal("expected error from failing server")
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
}

func TestSaveUsesPostForNewAndPutForExisting(t *testing.T) {
	var methods []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method+" "+r.URL.Path)
		json.NewEncoder(w).Encode(Record{ID: 5})
	}))
	defer ts.Close()

	client, err := NewRESTStore(ts.URL)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if _, err := client.Save(ctx, Record{Title: "new"}); err != nil {
		t.Fatalf("save new: %v", err)
	}
	if _, err := client.Save(ctx, Record{ID: 5, Title: "existing"}); err != nil {
		t.Fatalf("save existing: %v", err)
	}

	if len(methods) != 2 || methods[0] != "POST /" || methods[1] != "PUT /5" {
		t.Fatalf("unexpected request sequence %v", methods)
	}
}

func TestAuthTokenHeader(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Record{})
	}))
	defer ts.Close()

	client, err := NewRESTStore(ts.URL, WithAuthToken("secret"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := client.List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got != "Bearer secret" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestDeleteTreatsNotFoundAsSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client, err := NewRESTStore(ts.URL)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := client.Delete(context.Background(), 9); err != nil {
		t.Fatalf("idempotent delete must not error: %v", err)
	}
}
