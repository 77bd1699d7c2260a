// Package discovery fetches the authoritative methodology list from a
// remote source, falling back to the compiled-in registry when the remote
// is unavailable.
//
// The fallback policy is deliberate and strict: the static registry always
// wins when remote discovery fails, and partial remote results are never
// merged with the static set. Either the remote answers completely or it
// is ignored for this run.
package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aichaku-dev/aichaku/internal/methodology"
	"github.com/aichaku-dev/aichaku/internal/resilience"
)

// ErrRemoteUnavailable indicates the remote source could not produce a
// usable methodology list.
var ErrRemoteUnavailable = errors.New("discovery: remote source unavailable")

// listResponse is the JSON document served by a remote methodology source.
type listResponse struct {
	Methodologies []string `json:"methodologies"`
	Updated       string   `json:"updated"`
}

// Source fetches a methodology id list from somewhere remote.
type Source interface {
	// FetchMethodologies returns the complete remote methodology list.
	FetchMethodologies(ctx context.Context) ([]methodology.ID, error)
}

// httpSource is the concrete HTTP implementation of Source.
type httpSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a Source that fetches the given URL.
// For testing, pass the httptest.Server URL directly.
func NewHTTPSource(url string, client *http.Client) Source {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &httpSource{url: url, client: client}
}

// FetchMethodologies performs the HTTP fetch and decodes the response.
// Transient failures are retried with backoff before giving up.
func (s *httpSource) FetchMethodologies(ctx context.Context) ([]methodology.ID, error) {
	var ids []methodology.ID
	err := resilience.Retry(ctx, resilience.NetworkPolicy(), func() error {
		var fetchErr error
		ids, fetchErr = s.fetchOnce(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *httpSource) fetchOnce(ctx context.Context) ([]methodology.ID, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("discovery: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "aichaku-discovery")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	var list listResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRemoteUnavailable, err)
	}
	if len(list.Methodologies) == 0 {
		return nil, fmt.Errorf("%w: empty methodology list", ErrRemoteUnavailable)
	}

	ids := make([]methodology.ID, len(list.Methodologies))
	for i, m := range list.Methodologies {
		if m == "" {
			return nil, fmt.Errorf("%w: blank id in methodology list", ErrRemoteUnavailable)
		}
		ids[i] = methodology.ID(m)
	}
	return ids, nil
}

// Service resolves the effective methodology list: remote when available,
// registry otherwise.
type Service struct {
	source   Source
	registry *methodology.Registry
	logger   *slog.Logger
}

// NewService creates a discovery Service. A nil source disables remote
// discovery entirely; a nil registry falls back to the compiled-in default.
func NewService(source Source, reg *methodology.Registry, logger *slog.Logger) *Service {
	if reg == nil {
		reg = methodology.Default
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{source: source, registry: reg, logger: logger}
}

// Methodologies returns the effective methodology list and whether it came
// from the remote source. Any remote failure degrades silently to the
// registry's full list.
func (s *Service) Methodologies(ctx context.Context) ([]methodology.ID, bool) {
	if s.source == nil {
		return s.registry.ListAll(), false
	}

	ids, err := s.source.FetchMethodologies(ctx)
	if err != nil {
		s.logger.Warn("remote discovery failed, using built-in registry", "error", err)
		return s.registry.ListAll(), false
	}
	return ids, true
}
