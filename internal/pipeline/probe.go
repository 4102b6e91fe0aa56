package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Probe issues a plain GET against the site's search URL before any browser
// is launched, retrying transient failures with the shared backoff policy.
// It catches a dead or unreachable site cheaply, without burning a browser
// launch per row on it.
func Probe(ctx context.Context, url string, timeout time.Duration) error {
	if url == "" {
		return nil
	}

	client := resty.New().SetTimeout(timeout)

	err := Retry(ctx, DefaultRetryAttempts, DefaultRetryBase, nil, func() error {
		resp, err := client.R().SetContext(ctx).Get(url)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNetworkProtocol, err)
		}
		// 403/429 are how these sites say "blocked": for the probe's
		// purpose that is as unreachable as a 5xx.
		code := resp.StatusCode()
		if code >= 500 || code == http.StatusForbidden || code == http.StatusTooManyRequests {
			return fmt.Errorf("%w: status %d", ErrNetworkProtocol, code)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", url, err)
	}
	return nil
}
