// Package update checks the release endpoint for a newer build.
package update

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Current release, overridable with -ldflags "-X skihide/internal/update.Version=...".
var (
	Version = "1.3.6"
	Build   = "26001"
)

const DefaultTimeout = 5 * time.Second

// BuildNumber is a build that the endpoint may send as a number or a
// numeric string.
type BuildNumber int64

func (b *BuildNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = 0
		return nil
	}
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if s == "" {
		*b = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid build %s: %w", data, err)
	}
	*b = BuildNumber(n)
	return nil
}

type Release struct {
	Version     string      `json:"version" yaml:"version"`
	Build       BuildNumber `json:"build" yaml:"build"`
	Changelog   string      `json:"changelog" yaml:"changelog"`
	DownloadURL string      `json:"download_url" yaml:"download_url"`
}

// Result of one check.
type Result struct {
	Release      Release `json:"release" yaml:"release"`
	CurrentBuild int64   `json:"current_build" yaml:"current_build"`
	Newer        bool    `json:"newer" yaml:"newer"`
}

type Checker struct {
	url          string
	currentBuild int64
	httpClient   *http.Client
}

// NewChecker compares releases at url against currentBuild.
func NewChecker(url string, currentBuild int64) *Checker {
	return &Checker{
		url:          url,
		currentBuild: currentBuild,
		httpClient:   &http.Client{Timeout: DefaultTimeout},
	}
}

// CurrentBuild parses Build; a malformed value counts as 0.
func CurrentBuild() int64 {
	n, err := strconv.ParseInt(Build, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Check fetches the latest release. A release is newer iff its build is
// strictly greater than the running one.
func (c *Checker) Check(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create update request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("update request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read update response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("update check failed: status %d", resp.StatusCode)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("failed to parse update response: %w", err)
	}

	return &Result{
		Release:      release,
		CurrentBuild: c.currentBuild,
		Newer:        int64(release.Build) > c.currentBuild,
	}, nil
}
