// Package update implements the upgrade flow: checking for new aichaku
// releases and refreshing scaffolded methodology documentation against the
// current registry.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aichaku-dev/aichaku/internal/resilience"
)

// DefaultReleaseURL is the GitHub endpoint queried for the latest release.
const DefaultReleaseURL = "https://api.github.com/repos/aichaku-dev/aichaku/releases/latest"

// VersionInfo describes the latest published release.
type VersionInfo struct {
	Version string
	Date    time.Time
	URL     string
}

// Checker queries a release endpoint for the latest version.
type Checker interface {
	// CheckLatest fetches the latest release metadata.
	CheckLatest(ctx context.Context) (*VersionInfo, error)
}

// releaseResponse represents the GitHub Releases API JSON response.
type releaseResponse struct {
	TagName     string    `json:"tag_name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

// checker is the concrete implementation of Checker.
type checker struct {
	apiURL string
	client *http.Client
}

// NewChecker creates a Checker that queries the given API URL.
// For testing, pass the httptest.Server URL directly.
func NewChecker(apiURL string, client *http.Client) Checker {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &checker{apiURL: apiURL, client: client}
}

// CheckLatest fetches the latest release metadata from GitHub, retrying
// transient failures with backoff.
func (c *checker) CheckLatest(ctx context.Context) (*VersionInfo, error) {
	var info *VersionInfo
	err := resilience.Retry(ctx, resilience.NetworkPolicy(), func() error {
		var fetchErr error
		info, fetchErr = c.checkOnce(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (c *checker) checkOnce(ctx context.Context) (*VersionInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("checker: create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "aichaku-updater")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checker: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("checker: release not found (status 404) - repository may not exist or have no releases")
		}
		return nil, fmt.Errorf("checker: unexpected status %d", resp.StatusCode)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("checker: decode response: %w", err)
	}

	return &VersionInfo{
		Version: release.TagName,
		Date:    release.PublishedAt,
		URL:     release.HTMLURL,
	}, nil
}

// IsNewer reports whether the release version is newer than current.
// Both are normalized by stripping a leading "v"; comparison is a simple
// dotted-numeric compare, falling back to string inequality for
// non-numeric tags.
func (v *VersionInfo) IsNewer(current string) bool {
	latest := strings.TrimPrefix(v.Version, "v")
	cur := strings.TrimPrefix(current, "v")
	if latest == cur {
		return false
	}

	lp := strings.Split(latest, ".")
	cp := strings.Split(cur, ".")
	for i := 0; i < len(lp) && i < len(cp); i++ {
		var ln, cn int
		if _, err := fmt.Sscanf(lp[i], "%d", &ln); err != nil {
			return latest != cur
		}
		if _, err := fmt.Sscanf(cp[i], "%d", &cn); err != nil {
			return latest != cur
		}
		if ln != cn {
			return ln > cn
		}
	}
	return len(lp) > len(cp)
}
