package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnines/lakehouse-sdk/pkg/config"
)

func fastRetry(attempts int) *config.RetryConfig {
	return &config.RetryConfig{
		MaxAttempts:       attempts,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2,
		RetryableStatuses: config.DefaultRetryableStatuses,
	}
}

// flakyServer fails the first n requests with status, then answers 200 with the request body.
func flakyServer(t *testing.T, n int32, status int, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(hits, 1) <= n {
			w.WriteHeader(status)
			return
		}
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// retryingClient is a bare resty client carrying the retry policy for cfg.
func retryingClient(cfg *config.RetryConfig, retries *[]string) *resty.Client {
	p := newRetryPolicy(cfg, nil)
	if retries != nil {
		p.onRetry = func(method string) { *retries = append(*retries, method) }
	}
	return p.apply(resty.New())
}

func TestRetryPolicy_RetriesConfiguredStatuses(t *testing.T) {
	var hits int32
	srv := flakyServer(t, 2, http.StatusServiceUnavailable, &hits)

	var retries []string
	c := retryingClient(fastRetry(3), &retries)

	resp, err := c.R().
		SetHeader(HeaderContent, "application/json").
		SetBody(map[string]int{"a": 1}).
		Put(srv.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{"a":1}`, string(resp.Body()), "body is replayed on every attempt")
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
	assert.Equal(t, []string{"PUT", "PUT"}, retries)
}

func TestRetryPolicy_ReturnsLastResponse(t *testing.T) {
	var hits int32
	srv := flakyServer(t, 10, http.StatusBadGateway, &hits)

	var retries []string
	resp, err := retryingClient(fastRetry(3), &retries).R().Get(srv.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode())
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
	assert.Len(t, retries, 2, "the final attempt is not counted as a retry")
}

func TestRetryPolicy_DoesNotRetry(t *testing.T) {
	t.Run("non idempotent method", func(t *testing.T) {
		var hits int32
		srv := flakyServer(t, 1, http.StatusServiceUnavailable, &hits)

		resp, err := retryingClient(fastRetry(3), nil).R().SetBody("{}").Post(srv.URL)
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode())
		assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
	})

	t.Run("status not configured", func(t *testing.T) {
		var hits int32
		srv := flakyServer(t, 1, http.StatusNotFound, &hits)

		resp, err := retryingClient(fastRetry(3), nil).R().Get(srv.URL)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode())
		assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
	})

	t.Run("single attempt", func(t *testing.T) {
		var hits int32
		srv := flakyServer(t, 1, http.StatusServiceUnavailable, &hits)

		c := retryingClient(fastRetry(1), nil)
		assert.Zero(t, c.RetryCount)

		_, err := c.R().Get(srv.URL)
		require.NoError(t, err)
		assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
	})
}

func TestRetryPolicy_RetriesRefusedConnection(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var retries []string
	_, err := retryingClient(fastRetry(3), &retries).R().Get(url)
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.ECONNREFUSED)
	assert.Equal(t, []string{"GET", "GET"}, retries)
}

func TestRetryPolicy_ContextCancelled(t *testing.T) {
	var hits int32
	srv := flakyServer(t, 10, http.StatusTooManyRequests, &hits)

	cfg := fastRetry(5)
	cfg.InitialBackoff = time.Hour
	cfg.MaxBackoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := retryingClient(cfg, nil).R().SetContext(ctx).Get(srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestRetryPolicy_ShouldRetry(t *testing.T) {
	p := newRetryPolicy(fastRetry(3), nil)
	respFor := func(method string, status int) *resty.Response {
		r := &resty.Response{Request: &resty.Request{Method: method}}
		if status > 0 {
			r.RawResponse = &http.Response{StatusCode: status}
		}
		return r
	}
	reset := fmt.Errorf("read: %w", syscall.ECONNRESET)

	tests := []struct {
		name string
		resp *resty.Response
		err  error
		want bool
	}{
		{"retryable status", respFor(http.MethodGet, 503), nil, true},
		{"other status", respFor(http.MethodGet, 400), nil, false},
		{"post", respFor(http.MethodPost, 503), nil, false},
		{"connection reset", respFor(http.MethodDelete, 0), reset, true},
		{"unexpected eof", respFor(http.MethodGet, 0), io.ErrUnexpectedEOF, true},
		{"cancelled", respFor(http.MethodGet, 0), context.Canceled, false},
		{"other error", respFor(http.MethodGet, 0), fmt.Errorf("boom"), false},
		{"no response", nil, reset, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.shouldRetry(tt.resp, tt.err))
		})
	}
}

func TestRetryPolicy_Backoff(t *testing.T) {
	p := newRetryPolicy(&config.RetryConfig{
		MaxAttempts:       10,
		InitialBackoff:    time.Second,
		BackoffMultiplier: 2,
	}, nil)
	p.jitter = func() float64 { return 1 }

	assert.Equal(t, time.Second, p.backoff(0))
	assert.Equal(t, 4*time.Second, p.backoff(2))
	assert.Equal(t, 30*time.Second, p.backoff(8), "capped")

	p.jitter = func() float64 { return 0 }
	assert.Equal(t, time.Second, p.backoff(1))
}

func TestRetryPolicy_Wait(t *testing.T) {
	p := newRetryPolicy(&config.RetryConfig{
		MaxAttempts:       5,
		InitialBackoff:    10 * time.Millisecond,
		MaxBackoff:        5 * time.Second,
		BackoffMultiplier: 2,
	}, nil)
	p.jitter = func() float64 { return 1 }

	respWith := func(attempt int, retryAfter string) *resty.Response {
		h := http.Header{}
		if retryAfter != "" {
			h.Set("Retry-After", retryAfter)
		}
		return &resty.Response{
			Request:     &resty.Request{Method: http.MethodGet, Attempt: attempt},
			RawResponse: &http.Response{StatusCode: 429, Header: h},
		}
	}

	d, err := p.wait(nil, respWith(3, ""))
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, d)

	d, err = p.wait(nil, respWith(1, "2"))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d, "Retry-After wins over a shorter backoff")

	d, err = p.wait(nil, respWith(1, "600"))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d, "capped at MaxBackoff")
}

func TestRetryPolicy_RetryAfter(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := newRetryPolicy(fastRetry(3), nil)
	p.now = func() time.Time { return now }

	assert.Equal(t, 7*time.Second, p.retryAfter("7"))
	assert.Equal(t, 10*time.Second, p.retryAfter(now.Add(10*time.Second).Format(http.TimeFormat)))
	assert.Zero(t, p.retryAfter(""))
	assert.Zero(t, p.retryAfter("-3"))
	assert.Zero(t, p.retryAfter("soon"))
	assert.Zero(t, p.retryAfter(now.Add(-time.Minute).Format(http.TimeFormat)))
}
