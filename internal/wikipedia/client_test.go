package wikipedia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestLookup_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/page/summary/Acme" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"type":        "standard",
			"title":       "Acme Corporation",
			"description": "Fictional company",
			"extract":     "Acme makes everything.",
		})
	}))
	defer server.Close()

	p, err := NewClient(server.URL).Lookup(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Acme Corporation" {
		t.Errorf("name = %q", p.Name)
	}
	if p.Summary != "Acme makes everything." {
		t.Errorf("summary = %q", p.Summary)
	}
	if p.Description != "Fictional company" {
		t.Errorf("description = %q", p.Description)
	}
	if p.Source != "Wikipedia API (Free)" {
		t.Errorf("source = %q", p.Source)
	}
}

func TestLookup_DisambiguationRetry(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/page/summary/Mercury" {
			json.NewEncoder(w).Encode(map[string]string{"type": "disambiguation", "title": "Mercury"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"type":    "standard",
			"title":   "Mercury (company)",
			"extract": "A fintech company.",
		})
	}))
	defer server.Close()

	p, err := NewClient(server.URL).Lookup(context.Background(), "Mercury")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(paths) != 2 {
		t.Fatalf("expected exactly one retry, got paths %v", paths)
	}
	if paths[1] != "/page/summary/Mercury (company)" {
		t.Errorf("retry path = %q", paths[1])
	}
	if p.Summary != "A fintech company." {
		t.Errorf("summary = %q", p.Summary)
	}
}

func TestLookup_MissingFieldsDefaulted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"standard"}`))
	}))
	defer server.Close()

	p, err := NewClient(server.URL).Lookup(context.Background(), "Initech")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Initech" || p.Summary != "No valid summary available" || p.Description != "Not available" {
		t.Errorf("unexpected defaults: %+v", p)
	}
}

func TestLookup_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title":"Not found."}`))
	}))
	defer server.Close()

	if _, err := NewClient(server.URL).Lookup(context.Background(), "Nope"); err == nil {
		t.Fatal("expected error for 404")
	}
}
