package rest

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitTransport waits on a token bucket before each round trip.
type RateLimitTransport struct {
	Base    http.RoundTripper
	Limiter *rate.Limiter
}

// NewRateLimitTransport allows rps requests per second with the given burst.
func NewRateLimitTransport(base http.RoundTripper, rps float64, burst int) *RateLimitTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitTransport{
		Base:    base,
		Limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, err
	}
	return t.Base.RoundTrip(req)
}
