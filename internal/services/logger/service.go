package logger

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const maxSnippet = 512

// credential query parameters masked in the traffic log
var secretParams = []string{"key", "apiKey", "apikey", "api_key"}

// RoundTripper writes every upstream request to the traffic log.
type RoundTripper struct {
	Logger *zap.Logger
	Proxy  http.RoundTripper
}

func NewRoundTripper(logger *zap.Logger, proxy http.RoundTripper) *RoundTripper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if proxy == nil {
		proxy = http.DefaultTransport
	}
	return &RoundTripper{
		Logger: logger,
		Proxy:  proxy,
	}
}

func (l *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.Proxy.RoundTrip(req)
	duration := time.Since(start)
	target := RedactURL(req.URL)

	if err != nil {
		l.Logger.Error("HTTP request failed",
			zap.String("method", req.Method),
			zap.String("url", target),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.Body == nil {
		l.Logger.Warn("HTTP response without body",
			zap.String("method", req.Method),
			zap.String("url", target),
			zap.Int("status_code", resp.StatusCode),
			zap.Duration("duration", duration),
		)
		return resp, nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		l.Logger.Error("Failed to read response body",
			zap.String("method", req.Method),
			zap.String("url", target),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	l.Logger.Info("HTTP request completed",
		zap.String("method", req.Method),
		zap.String("url", target),
		zap.ByteString("body_snippet", snippet(bodyBytes)),
		zap.Int("body_size", len(bodyBytes)),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// RedactURL masks API credentials in the query string.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	redacted := *u
	q := redacted.Query()
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "xxxxx")
		}
	}
	redacted.RawQuery = q.Encode()
	redacted.User = nil
	return redacted.String()
}

func snippet(body []byte) []byte {
	if len(body) <= maxSnippet {
		return body
	}
	return body[:maxSnippet]
}
