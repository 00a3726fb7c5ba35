package deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Source fetches raw deck resources (manifests and card files) by path
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FSSource reads resources from a file system
type FSSource struct {
	FS fs.FS
}

// NewDirSource returns a source reading from a local directory
func NewDirSource(root string) *FSSource {
	return &FSSource{FS: os.DirFS(root)}
}

// Fetch reads the resource at path
func (s *FSSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.FS, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return data, nil
}

const (
	requestTimeout   = 30 * time.Second
	maxResourceBytes = 4 << 20
)

// HTTPSource fetches resources from a static web host
type HTTPSource struct {
	baseURL     *url.URL
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// NewHTTPSource creates a source for the given base URL. A positive
// requestsPerSecond paces requests; zero leaves them unlimited.
func NewHTTPSource(baseURL string, requestsPerSecond float64) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &HTTPSource{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		rateLimiter: rate.NewLimiter(limit, 1),
		userAgent:   "tirage/1.0",
	}, nil
}

// Fetch performs a single GET for the resource. Failures are not retried.
func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid resource path %q: %w", path, err)
	}
	target := s.baseURL.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxResourceBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, path, maxResourceBytes)
	}
	return body, nil
}
