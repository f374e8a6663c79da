package apiservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer receives the outcome of every fetch. target is the upstream host.
type Observer interface {
	ObserveFetch(target, outcome string, d time.Duration)
}

// Service retrieves a URL and decodes the JSON body into a caller supplied type.
// Every call is independent: no caching and no retry.
type Service struct {
	client   HTTPClient
	logger   zerolog.Logger
	observer Observer
}

func NewService(client HTTPClient, logger zerolog.Logger, observer Observer) *Service {
	return &Service{client: client, logger: logger, observer: observer}
}

// Fetch decodes the body served at rawURL into a new T.
func Fetch[T any](ctx context.Context, s *Service, rawURL string) (T, error) {
	var result T
	if err := s.FetchInto(ctx, rawURL, &result); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// FetchInto performs a GET on rawURL and decodes the JSON body into target,
// which must be a non-nil pointer.
func (s *Service) FetchInto(ctx context.Context, rawURL string, target any) error {
	start := time.Now()
	requestID := uuid.NewString()

	u, err := parseURL(rawURL)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("request_id", requestID).
			Err(err).
			Msg("rejected fetch with invalid URL")
		s.observe("", err, start)
		return err
	}

	err = s.do(ctx, requestID, u, target)
	s.observe(u.Host, err, start)
	if err != nil {
		return err
	}

	s.logger.Info().
		Ctx(ctx).
		Str("request_id", requestID).
		Str("host", u.Host).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched data")
	return nil
}

func (s *Service) do(ctx context.Context, requestID string, u *url.URL, target any) error {
	s.logger.Debug().
		Ctx(ctx).
		Str("request_id", requestID).
		Str("host", u.Host).
		Str("path", u.Path).
		Msg("starting request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("request_id", requestID).
			Str("host", u.Host).
			Err(err).
			Msg("error sending HTTP request")
		return &TransportError{URL: withoutQuery(u), Err: redactURLError(err, u)}
	}
	if resp.Body != nil {
		defer func() {
			if cerr := resp.Body.Close(); cerr != nil {
				s.logger.Error().
					Ctx(ctx).
					Str("request_id", requestID).
					Err(cerr).
					Msg("failed to close response body")
			}
		}()
	}

	if !isSuccess(resp.StatusCode) {
		s.logger.Error().
			Ctx(ctx).
			Str("request_id", requestID).
			Str("host", u.Host).
			Int("status_code", resp.StatusCode).
			Msg("upstream returned non-success status")
		return &HTTPError{StatusCode: resp.StatusCode, Message: StatusMessage(resp.StatusCode)}
	}

	if resp.Body == nil {
		return ErrMissingBody
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("request_id", requestID).
			Err(err).
			Msg("failed to read response body")
		return &TransportError{URL: withoutQuery(u), Err: err}
	}
	if len(data) == 0 {
		return ErrEmptyBody
	}

	if err := json.Unmarshal(data, target); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("request_id", requestID).
			Str("target", fmt.Sprintf("%T", target)).
			Err(err).
			Msg("failed to decode response")
		return &DecodeError{Target: fmt.Sprintf("%T", target)}
	}
	return nil
}

func (s *Service) observe(target string, err error, start time.Time) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveFetch(target, Kind(err), time.Since(start))
}

func parseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return u, nil
}

// withoutQuery keeps API keys carried in the query out of error messages.
func withoutQuery(u *url.URL) string {
	stripped := *u
	stripped.RawQuery = ""
	stripped.User = nil
	return stripped.String()
}

// redactURLError rewrites the URL carried by a net/http client error, which
// otherwise repeats the full request URL including the key.
func redactURLError(err error, u *url.URL) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = withoutQuery(u)
	}
	return err
}
