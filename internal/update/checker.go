// Package update checks GitHub for newer application releases.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// Defaults
const (
	DefaultInterval    = 24 * time.Hour
	DefaultHTTPTimeout = 10 * time.Second

	releaseURLTemplate = "https://api.github.com/repos/%s/%s/releases/latest"
)

// Release describes an available newer version
type Release struct {
	Version string
	URL     string
}

// Checker queries the GitHub releases API and compares versions.
type Checker struct {
	Owner          string
	Repo           string
	CurrentVersion string

	// Interval throttles checks; ShouldCheck compares it against the
	// persisted last-check time.
	Interval time.Duration

	// BaseURL overrides the GitHub API endpoint, for tests.
	BaseURL string

	Client *http.Client
}

// NewChecker creates a checker with the default interval and HTTP timeout
func NewChecker(owner, repo, currentVersion string) *Checker {
	return &Checker{
		Owner:          owner,
		Repo:           repo,
		CurrentVersion: currentVersion,
		Interval:       DefaultInterval,
		Client:         &http.Client{Timeout: DefaultHTTPTimeout},
	}
}

// ShouldCheck reports whether enough time has passed since the last check
func (c *Checker) ShouldCheck(lastCheck time.Time) bool {
	return time.Since(lastCheck) >= c.Interval
}

// Check queries the latest release and returns it when it is newer than
// the current version, or nil when the application is up to date. Network
// or parsing problems are returned as errors; callers are expected to log
// and treat them as "no update".
func (c *Checker) Check(ctx context.Context) (*Release, error) {
	url := c.BaseURL
	if url == "" {
		url = fmt.Sprintf(releaseURLTemplate, c.Owner, c.Repo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("update check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("update check returned status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to parse release response: %w", err)
	}

	latest := canonical(release.TagName)
	current := canonical(c.CurrentVersion)
	if !semver.IsValid(latest) || !semver.IsValid(current) {
		return nil, fmt.Errorf("unparseable version: latest=%q current=%q", release.TagName, c.CurrentVersion)
	}

	if semver.Compare(latest, current) > 0 {
		slog.Info("update available", "current", c.CurrentVersion, "latest", release.TagName)
		return &Release{Version: release.TagName, URL: release.HTMLURL}, nil
	}
	return nil, nil
}

// canonical normalizes a tag like "2.1.0" or "v2.1.0" for semver.Compare
func canonical(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tag
	}
	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}
	return tag
}
