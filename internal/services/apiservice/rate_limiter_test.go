//go:build unit

package apiservice_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-news-app/internal/services/apiservice"
)

func TestRateLimitedClient_Delegates(t *testing.T) {
	wrapped := &mockHTTPClient{}
	wrapped.On("Do", mock.Anything).Return(respond(http.StatusOK, "{}"), nil).Twice()

	rl := apiservice.NewRateLimitedClient(wrapped, 0, 0)
	for i := 0; i < 2; i++ {
		resp, err := rl.Do(newRequest(t))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	wrapped.AssertExpectations(t)
}

func TestRateLimitedClient_WaitCanceledByContext(t *testing.T) {
	wrapped := &mockHTTPClient{}
	wrapped.On("Do", mock.Anything).Return(respond(http.StatusOK, "{}"), nil).Once()

	// one token per minute: the second call cannot be served before the deadline
	rl := apiservice.NewRateLimitedClient(wrapped, 1.0/60, 1)
	_, err := rl.Do(newRequest(t))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = rl.Do(newRequest(t).WithContext(ctx))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait canceled")
	wrapped.AssertNumberOfCalls(t, "Do", 1)
}
