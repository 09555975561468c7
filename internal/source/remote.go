package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ariel-frischer/relnotes/internal/changelog"
)

// FetchError reports a failure to retrieve or read a remote input.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Remote fetches a releases document over HTTP(S).
type Remote struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

// Releases fetches, parses, and validates the remote document.
// The context can be used to control timeout and cancellation.
func (r Remote) Releases(ctx context.Context) ([]changelog.Release, error) {
	releases, err := r.fetch(ctx)
	if err != nil {
		return nil, &FetchError{URL: r.URL, Err: err}
	}
	return releases, nil
}

func (r Remote) fetch(ctx context.Context) ([]changelog.Release, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return changelog.LoadFromReader(resp.Body)
}
