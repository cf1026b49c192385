package rest

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/saturnines/lakehouse-sdk/pkg/config"
	"github.com/saturnines/lakehouse-sdk/pkg/logging"
)

// maxRetryDelay caps any single wait, including server supplied Retry-After.
const maxRetryDelay = 30 * time.Second

// retryPolicy drives resty's retry loop from a RetryConfig. Idempotent
// requests are retried on configured statuses and temporary network errors.
type retryPolicy struct {
	cfg     *config.RetryConfig
	logger  *slog.Logger
	onRetry func(method string)

	jitter func() float64
	now    func() time.Time
}

func newRetryPolicy(cfg *config.RetryConfig, logger *slog.Logger) *retryPolicy {
	return &retryPolicy{
		cfg:    cfg,
		logger: logging.OrNoop(logger),
		jitter: rand.Float64,
		now:    time.Now,
	}
}

// apply enables retries on c. A nil config or a single attempt leaves c as is.
func (p *retryPolicy) apply(c *resty.Client) *resty.Client {
	if p.cfg == nil || p.cfg.MaxAttempts <= 1 {
		return c
	}
	return c.
		SetRetryCount(p.cfg.MaxAttempts - 1).
		SetRetryWaitTime(min(p.cfg.InitialBackoff, p.maxDelay())).
		SetRetryMaxWaitTime(p.maxDelay()).
		SetRetryAfter(p.wait).
		AddRetryCondition(p.shouldRetry).
		AddRetryHook(p.observe)
}

func (p *retryPolicy) shouldRetry(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil || !isIdempotent(resp.Request.Method) {
		return false
	}
	if err != nil {
		return isTemporary(err)
	}
	return slices.Contains(p.cfg.RetryableStatuses, resp.StatusCode())
}

// wait is the delay before the next attempt: the larger of the backoff and
// the server's Retry-After.
func (p *retryPolicy) wait(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
	attempt := 0
	if resp != nil && resp.Request != nil && resp.Request.Attempt > 0 {
		attempt = resp.Request.Attempt - 1
	}
	d := p.backoff(attempt)
	if resp != nil {
		d = max(d, p.retryAfter(resp.Header().Get("Retry-After")))
	}
	return min(d, p.maxDelay()), nil
}

// observe runs after every attempt the conditions matched, including the
// final one that is not followed by a retry.
func (p *retryPolicy) observe(resp *resty.Response, err error) {
	if resp == nil || resp.Request == nil || resp.Request.Attempt >= p.cfg.MaxAttempts {
		return
	}
	req := resp.Request

	url := req.URL
	if req.RawRequest != nil {
		url = req.RawRequest.URL.Redacted()
	}
	p.logger.Warn("retrying request",
		"method", req.Method,
		"url", url,
		"attempt", req.Attempt,
		"max_attempts", p.cfg.MaxAttempts,
		"status", resp.StatusCode(),
		"error", err,
	)
	if p.onRetry != nil {
		p.onRetry(req.Method)
	}
}

// backoff grows InitialBackoff by BackoffMultiplier per attempt, spread over
// the upper half of the interval.
func (p *retryPolicy) backoff(attempt int) time.Duration {
	mult := p.cfg.BackoffMultiplier
	if mult < 1 {
		mult = 1
	}

	d := time.Duration(float64(p.cfg.InitialBackoff) * math.Pow(mult, float64(attempt)))
	if limit := p.maxDelay(); d > limit || d < 0 {
		d = limit
	}
	return d/2 + time.Duration(p.jitter()*float64(d/2))
}

func (p *retryPolicy) maxDelay() time.Duration {
	if p.cfg.MaxBackoff > 0 && p.cfg.MaxBackoff < maxRetryDelay {
		return p.cfg.MaxBackoff
	}
	return maxRetryDelay
}

// retryAfter parses delay-seconds or an HTTP date.
func (p *retryPolicy) retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(p.now()); d > 0 {
			return d
		}
	}
	return 0
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead,
		http.MethodPut, http.MethodDelete,
		http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func isTemporary(err error) bool {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return stderrors.Is(err, syscall.ECONNRESET) ||
		stderrors.Is(err, syscall.ECONNREFUSED) ||
		stderrors.Is(err, io.ErrUnexpectedEOF) ||
		stderrors.Is(err, io.EOF)
}
