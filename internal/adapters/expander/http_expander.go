// Package expander resolves shortened URLs to their final destination.
package expander

import (
	"context"
	"net/http"
	"time"

	"github.com/mikey/scam-triage/internal/core"
	"go.uber.org/zap"
)

// HTTPExpander follows redirects to resolve a shortened URL. Every network
// failure is swallowed: the caller always gets a usable URL back.
type HTTPExpander struct {
	client  *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewHTTPExpander creates a new redirect-following expander
func NewHTTPExpander(timeout time.Duration, logger *zap.Logger) *HTTPExpander {
	return &HTTPExpander{
		client: &http.Client{
			Timeout: timeout,
			// Default CheckRedirect follows up to 10 redirects
		},
		timeout: timeout,
		logger:  logger,
	}
}

// Expand resolves rawURL through a HEAD request first; if the final
// response still carries a Location header the header value wins,
// otherwise a GET resolves the destination. On any failure the raw input
// is returned unchanged.
func (e *HTTPExpander) Expand(ctx context.Context, rawURL string) string {
	normalized := core.NormalizeURL(rawURL)

	if loc, ok := e.fetch(ctx, http.MethodHead, normalized); ok {
		return loc
	}
	if loc, ok := e.fetch(ctx, http.MethodGet, normalized); ok {
		return loc
	}

	return rawURL
}

// fetch issues one redirect-following request and reports the resolved
// location. A Location header on the final response (not followed, e.g.
// rate-limited meta refresh setups) takes precedence over the request URL.
func (e *HTTPExpander) fetch(ctx context.Context, method, target string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		e.logger.Debug("Failed to build expansion request",
			zap.String("url", target), zap.Error(err))
		return "", false
	}

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Debug("URL expansion request failed",
			zap.String("url", target),
			zap.String("method", method),
			zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	if loc := resp.Header.Get("Location"); loc != "" {
		return loc, true
	}
	if method == http.MethodHead {
		// HEAD resolved but offered nothing beyond the request URL;
		// let the GET pass decide.
		return "", false
	}
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String(), true
	}
	return "", false
}
