package apiservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidURL  = errors.New("invalid URL")
	ErrEmptyBody   = errors.New("obtained data is empty")
	ErrMissingBody = fmt.Errorf("%w: failed to obtain data", ErrEmptyBody)

	// ErrReleased is reported to a completion whose owner was reset or torn
	// down while the request was in flight.
	ErrReleased = errors.New("owner released before fetch completed")
)

// TransportError is returned when the request never produced an HTTP response
// (DNS, connection reset, timeout, cancelled context, open circuit).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %q: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError carries a non-2xx status. The body is never parsed.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// DecodeError hides the parser failure from callers; it is logged at the fetch site.
type DecodeError struct {
	Target string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode data into %s", e.Target)
}

// StatusMessage returns the human readable message for a non-success status.
func StatusMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "bad request (400)"
	case http.StatusUnauthorized:
		return "unauthorized (401)"
	case http.StatusNotFound:
		return "resource not found (404)"
	case http.StatusTooManyRequests:
		return "rate limited (429)"
	case http.StatusInternalServerError:
		return "server error (500)"
	default:
		return fmt.Sprintf("HTTP status code: %d", code)
	}
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code <= 299
}

const (
	KindOK         = "ok"
	KindInvalidURL = "invalid_url"
	KindTransport  = "transport"
	KindHTTP       = "http_error"
	KindEmptyBody  = "empty_body"
	KindDecode     = "decode"
	KindReleased   = "released"
	KindUnknown    = "unknown"
)

// Kind classifies err into one of the Kind* labels. A context that ended
// before the fetch completed counts as a transport failure.
func Kind(err error) string {
	var (
		transportErr *TransportError
		httpErr      *HTTPError
		decodeErr    *DecodeError
	)

	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrInvalidURL):
		return KindInvalidURL
	case errors.Is(err, ErrReleased):
		return KindReleased
	case errors.As(err, &httpErr):
		return KindHTTP
	case errors.Is(err, ErrEmptyBody):
		return KindEmptyBody
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &transportErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return KindTransport
	default:
		return KindUnknown
	}
}
