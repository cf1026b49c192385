package lakehouse

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/saturnines/lakehouse-sdk/pkg/auth"
	"github.com/saturnines/lakehouse-sdk/pkg/config"
	"github.com/saturnines/lakehouse-sdk/pkg/errors"
	"github.com/saturnines/lakehouse-sdk/pkg/logging"
	"github.com/saturnines/lakehouse-sdk/pkg/metrics"
	"github.com/saturnines/lakehouse-sdk/pkg/transport/rest"
)

// Service executes lakehouse operations. It is safe for concurrent use;
// pagers created from it are not.
type Service struct {
	client  *rest.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
	ops     map[string]Operation
}

type serviceOptions struct {
	httpClient  *http.Client
	authHandler auth.Handler
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

// WithHTTPClient sets the base HTTP client under the transport chain.
func WithHTTPClient(c *http.Client) Option {
	return func(o *serviceOptions) { o.httpClient = c }
}

// WithAuthHandler overrides the handler built from the config.
func WithAuthHandler(h auth.Handler) Option {
	return func(o *serviceOptions) { o.authHandler = h }
}

// WithMetrics reports HTTP and pager metrics to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *serviceOptions) { o.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *serviceOptions) { o.logger = l }
}

// New builds a Service from a finalized config.
func New(cfg *config.Client, opts ...Option) (*Service, error) {
	var o serviceOptions
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.OrNoop(o.logger)

	restOpts := []rest.Option{rest.WithLogger(logger)}
	if o.httpClient != nil {
		restOpts = append(restOpts, rest.WithHTTPClient(o.httpClient))
	}
	if o.authHandler != nil {
		restOpts = append(restOpts, rest.WithAuthHandler(o.authHandler))
	}
	if o.metrics != nil {
		restOpts = append(restOpts, rest.WithMetrics(o.metrics))
	}

	client, err := rest.NewClient(cfg, restOpts...)
	if err != nil {
		return nil, err
	}

	return &Service{
		client:  client,
		logger:  logger.With("component", "lakehouse"),
		metrics: o.metrics,
		ops:     indexOperations(operationTable),
	}, nil
}

// Operation looks up an operation by name.
func (s *Service) Operation(name string) (Operation, bool) {
	op, ok := s.ops[name]
	return op, ok
}

// Invoke runs any operation in the table. result, when non-nil, receives
// the decoded JSON body.
func (s *Service) Invoke(ctx context.Context, name string, params rest.Params, result any) (*rest.DetailedResponse, error) {
	op, ok := s.ops[name]
	if !ok {
		return nil, errors.WrapError(
			fmt.Errorf("unknown operation %q", name),
			errors.ErrValidation,
			"invoke",
		)
	}
	return s.client.Invoke(ctx, op.Operation, params, result)
}

func invoke[T any](ctx context.Context, s *Service, name string, params rest.Params) (*T, *rest.DetailedResponse, error) {
	var out T
	resp, err := s.Invoke(ctx, name, params, &out)
	if err != nil {
		return nil, resp, err
	}
	return &out, resp, nil
}
