package apiservice

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

var errServerStatus = errors.New("upstream server error")

// BreakerClient trips after RepeatNumber consecutive transport failures or
// 5xx responses. While open it fails fast without touching the network.
type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped HTTPClient
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped HTTPClient) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

// Do returns 5xx responses to the caller untouched so the status can still be
// classified; only the breaker sees them as failures.
func (b *BreakerClient) Do(req *http.Request) (*http.Response, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		resp, err := b.wrapped.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, nil
	})
	if err != nil && !errors.Is(err, errServerStatus) {
		return nil, fmt.Errorf("%s unavailable: %w", b.name, err)
	}
	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("%s returned unexpected result", b.name)
	}
	return resp, nil
}

// State exposes the breaker state for diagnostics.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

var _ HTTPClient = (*BreakerClient)(nil)
