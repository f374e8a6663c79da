package apiservice

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitedClient wraps an HTTPClient with a client-side token bucket.
type RateLimitedClient struct {
	wrapped HTTPClient
	limiter *rate.Limiter
}

// NewRateLimitedClient allows rps requests per second with the given burst.
// A non-positive rps disables limiting.
func NewRateLimitedClient(wrapped HTTPClient, rps float64, burst int) *RateLimitedClient {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedClient{
		wrapped: wrapped,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (r *RateLimitedClient) Do(req *http.Request) (*http.Response, error) {
	if err := r.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.wrapped.Do(req)
}

var _ HTTPClient = (*RateLimitedClient)(nil)
