// File path: internal/provider/http_test.go
package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *HTTPProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	prov, err := NewHTTP(Config{BaseURL: server.URL, Timeout: 2 * time.Second, MaxRetries: 0})
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}
	return prov
}

func TestFetchLocationSuccess(t *testing.T) {
	prov := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts/alice/location" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"username":"alice","location":"United States"}`))
	})

	location, found, err := prov.FetchLocation(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FetchLocation: %v", err)
	}
	if !found || location != "United States" {
		t.Fatalf("FetchLocation = (%q, %v), want (United States, true)", location, found)
	}
}

func TestFetchLocationNotFound(t *testing.T) {
	prov := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	location, found, err := prov.FetchLocation(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("FetchLocation: %v", err)
	}
	if found || location != "" {
		t.Fatalf("FetchLocation = (%q, %v), want not found", location, found)
	}
}

func TestFetchLocationEmptyValue(t *testing.T) {
	prov := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username":"alice","location":"  "}`))
	})

	_, found, err := prov.FetchLocation(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FetchLocation: %v", err)
	}
	if found {
		t.Fatal("blank location reported found=true")
	}
}

func TestFetchLocationServerError(t *testing.T) {
	prov := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, _, err := prov.FetchLocation(context.Background(), "alice"); err == nil {
		t.Fatal("FetchLocation on a 500 succeeded")
	}
}

func TestFetchLocationEscapesUsername(t *testing.T) {
	var gotPath string
	prov := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"location":"Canada"}`))
	})

	if _, _, err := prov.FetchLocation(context.Background(), "weird/name"); err != nil {
		t.Fatalf("FetchLocation: %v", err)
	}
	if gotPath != "/v1/accounts/weird%2Fname/location" {
		t.Fatalf("request path = %s, want escaped username", gotPath)
	}
}

func TestNewHTTPRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTP(Config{}); err == nil {
		t.Fatal("NewHTTP without a base URL succeeded")
	}
}
