package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/saturnines/lakehouse-sdk/pkg/auth"
	"github.com/saturnines/lakehouse-sdk/pkg/config"
	"github.com/saturnines/lakehouse-sdk/pkg/errors"
	"github.com/saturnines/lakehouse-sdk/pkg/logging"
	"github.com/saturnines/lakehouse-sdk/pkg/metrics"
)

// DetailedResponse is returned by every call alongside the decoded result.
type DetailedResponse struct {
	StatusCode int
	Headers    http.Header
	Result     any
	RawResult  []byte
}

// Client executes table-driven operations against one service endpoint.
// It is safe for concurrent use.
type Client struct {
	resty   *resty.Client
	builder *Builder
	logger  *slog.Logger
}

type clientOptions struct {
	httpClient  *http.Client
	authHandler auth.Handler
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

// WithHTTPClient supplies the base client. Its Transport sits at the bottom of
// the transport chain and its Timeout is replaced by the configured one.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithAuthHandler overrides the handler derived from the config.
func WithAuthHandler(h auth.Handler) Option {
	return func(o *clientOptions) { o.authHandler = h }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *clientOptions) { o.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// NewClient builds a client from a finalized config.
func NewClient(cfg *config.Client, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.WrapError(fmt.Errorf("config is nil"), errors.ErrConfiguration, "create client")
	}
	if cfg.ServiceURL == "" {
		return nil, errors.WrapError(fmt.Errorf("service url is required"), errors.ErrConfiguration, "create client")
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.OrNoop(o.logger)

	var base http.RoundTripper
	if o.httpClient != nil {
		base = o.httpClient.Transport
	}

	handler := o.authHandler
	if handler == nil {
		var tokenClient *http.Client
		if base != nil {
			tokenClient = &http.Client{Transport: base, Timeout: 30 * time.Second}
		}
		h, err := auth.NewAuthRegistry(tokenClient).Create(cfg.Auth)
		if err != nil {
			return nil, err
		}
		handler = h
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	hc := &http.Client{
		Transport: buildTransport(base, cfg, handler, o.metrics),
		Timeout:   timeout,
	}
	if o.httpClient != nil {
		hc.Jar = o.httpClient.Jar
		hc.CheckRedirect = o.httpClient.CheckRedirect
	}

	r := resty.NewWithClient(hc).
		SetBaseURL(cfg.ServiceURL).
		SetLogger(restyLogger{logger})

	retry := newRetryPolicy(cfg.Retry, logger.With("component", "retry"))
	if o.metrics != nil {
		retry.onRetry = o.metrics.ObserveRetry
	}
	retry.apply(r)

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	return &Client{
		resty:   r,
		builder: NewBuilder(userAgent, cfg.InstanceID, cfg.Headers),
		logger:  logger.With("component", "rest"),
	}, nil
}

// Invoke runs op with params and decodes a JSON body into result when result
// is non-nil. Non-2xx responses return both the DetailedResponse and a
// *errors.RequestError.
func (c *Client) Invoke(ctx context.Context, op Operation, params Params, result any) (*DetailedResponse, error) {
	req, err := c.builder.Build(ctx, c.resty.R(), op, params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := req.Send()
	if err != nil {
		c.logger.Debug("request failed", "operation", op.Name, "error", err)
		return nil, errors.NewRequestError(op.Name, err)
	}

	detailed := &DetailedResponse{
		StatusCode: resp.StatusCode(),
		Headers:    resp.Header(),
		RawResult:  resp.Body(),
	}

	c.logger.Debug("request completed",
		"operation", op.Name,
		"method", req.Method,
		"path", req.URL,
		"status", detailed.StatusCode,
		"elapsed", time.Since(start),
	)

	if !resp.IsSuccess() {
		return detailed, &errors.RequestError{
			Operation:  op.Name,
			StatusCode: detailed.StatusCode,
			Status:     resp.Status(),
			Body:       detailed.RawResult,
			Headers:    detailed.Headers,
		}
	}

	if result != nil && len(detailed.RawResult) > 0 {
		if err := json.Unmarshal(detailed.RawResult, result); err != nil {
			return detailed, &errors.RequestError{
				Operation:  op.Name,
				StatusCode: detailed.StatusCode,
				Status:     resp.Status(),
				Body:       detailed.RawResult,
				Headers:    detailed.Headers,
				Err:        errors.WrapError(err, errors.ErrHTTPResponse, "decode response"),
			}
		}
		detailed.Result = result
	}

	return detailed, nil
}

// restyLogger routes resty's internal messages into slog.
type restyLogger struct{ l *slog.Logger }

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error(fmt.Sprintf(format, v...)) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn(fmt.Sprintf(format, v...)) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug(fmt.Sprintf(format, v...)) }
