package rest

import (
	"net/http"

	"github.com/saturnines/lakehouse-sdk/pkg/auth"
	"github.com/saturnines/lakehouse-sdk/pkg/config"
	"github.com/saturnines/lakehouse-sdk/pkg/errors"
	"github.com/saturnines/lakehouse-sdk/pkg/metrics"
)

// AuthTransport applies an auth.Handler to a copy of each request.
type AuthTransport struct {
	Base    http.RoundTripper
	Handler auth.Handler
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Handler == nil {
		return t.Base.RoundTrip(req)
	}
	r2 := req.Clone(req.Context())
	if err := t.Handler.ApplyAuth(r2); err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, errors.WrapError(err, errors.ErrAuthentication, "apply auth")
	}
	return t.Base.RoundTrip(r2)
}

// buildTransport composes, outermost first: auth, rate limit, metrics, base.
// Retries happen above the chain in resty, so every attempt is authenticated
// and rate limited.
func buildTransport(
	base http.RoundTripper,
	cfg *config.Client,
	handler auth.Handler,
	m *metrics.Metrics,
) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	rt := base
	if m != nil {
		rt = m.InstrumentRoundTripper(rt)
	}
	if rl := cfg.RateLimit; rl != nil && rl.RequestsPerSecond > 0 {
		rt = NewRateLimitTransport(rt, rl.RequestsPerSecond, rl.Burst)
	}
	return &AuthTransport{Base: rt, Handler: handler}
}
