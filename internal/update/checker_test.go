package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckLatest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "aichaku-updater" {
			t.Errorf("User-Agent = %q", got)
		}
		_, _ = w.Write([]byte(`{"tag_name":"v1.2.0","published_at":"2025-06-01T00:00:00Z","html_url":"https://example.test/r/v1.2.0"}`))
	}))
	defer srv.Close()

	c := NewChecker(srv.URL, srv.Client())
	info, err := c.CheckLatest(context.Background())
	if err != nil {
		t.Fatalf("CheckLatest() error = %v", err)
	}
	if info.Version != "v1.2.0" {
		t.Errorf("Version = %q, want v1.2.0", info.Version)
	}
	if info.URL != "https://example.test/r/v1.2.0" {
		t.Errorf("URL = %q", info.URL)
	}
}

func TestCheckLatestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{}`},
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "bad json", status: http.StatusOK, body: `{"tag_name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewChecker(srv.URL, srv.Client())
			if _, err := c.CheckLatest(context.Background()); err == nil {
				t.Error("CheckLatest() error = nil, want error")
			}
		})
	}
}

func TestIsNewer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		latest  string
		current string
		want    bool
	}{
		{name: "patch newer", latest: "v1.2.1", current: "v1.2.0", want: true},
		{name: "minor newer", latest: "v1.3.0", current: "v1.2.9", want: true},
		{name: "equal", latest: "v1.2.0", current: "v1.2.0", want: false},
		{name: "older", latest: "v1.1.0", current: "v1.2.0", want: false},
		{name: "no v prefix", latest: "2.0.0", current: "v1.9.9", want: true},
		{name: "longer version", latest: "v1.2.0.1", current: "v1.2.0", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := &VersionInfo{Version: tt.latest}
			if got := info.IsNewer(tt.current); got != tt.want {
				t.Errorf("IsNewer(%q vs %q) = %v, want %v", tt.latest, tt.current, got, tt.want)
			}
		})
	}
}
