package rest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"

	"github.com/saturnines/lakehouse-sdk/pkg/auth"
	"github.com/saturnines/lakehouse-sdk/pkg/config"
	"github.com/saturnines/lakehouse-sdk/pkg/errors"
	"github.com/saturnines/lakehouse-sdk/pkg/metrics"
)

const (
	testHost = "https://lakehouse.test"
	testURL  = testHost + "/api/v2"
)

var getBucket = Operation{
	Name:   "get_bucket_registration",
	Method: http.MethodGet,
	Path:   "/bucket_registrations/{bucket_id}",
	Params: []Param{{Name: "bucket_id", In: InPath, Required: true}},
	Result: "BucketRegistration",
}

func testConfig() *config.Client {
	return &config.Client{
		ServiceURL: testURL,
		InstanceID: "crn:inst",
		Auth: &config.Auth{
			Type:   config.AuthTypeBearer,
			Bearer: &config.BearerAuth{Token: "tok"},
		},
		Retry: fastRetry(2),
	}
}

// newMockedClient routes the client through gock.
func newMockedClient(t *testing.T, cfg *config.Client, opts ...Option) *Client {
	t.Helper()
	hc := &http.Client{}
	gock.InterceptClient(hc)
	t.Cleanup(func() {
		gock.RestoreClient(hc)
		gock.Off()
	})

	c, err := NewClient(cfg, append([]Option{WithHTTPClient(hc)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestClient_InvokeDecodes(t *testing.T) {
	c := newMockedClient(t, testConfig())

	gock.New(testHost).
		Get("/api/v2/bucket_registrations/raw").
		MatchHeader("Authorization", "^Bearer tok$").
		MatchHeader(HeaderInstanceID, "crn:inst").
		MatchHeader(HeaderAccept, "application/json").
		HeaderPresent(HeaderRequestID).
		Reply(200).
		SetHeader("X-Trace", "abc").
		JSON(map[string]any{"bucket_id": "raw", "bucket_type": "s3"})

	var out struct {
		BucketID   string `json:"bucket_id"`
		BucketType string `json:"bucket_type"`
	}
	resp, err := c.Invoke(context.Background(), getBucket, Params{"bucket_id": "raw"}, &out)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "abc", resp.Headers.Get("X-Trace"))
	assert.Equal(t, "raw", out.BucketID)
	assert.Equal(t, "s3", out.BucketType)
	assert.Same(t, &out, resp.Result)
	assert.JSONEq(t, `{"bucket_id":"raw","bucket_type":"s3"}`, string(resp.RawResult))
	assert.True(t, gock.IsDone())
}

func TestClient_InvokeStatusError(t *testing.T) {
	c := newMockedClient(t, testConfig())

	gock.New(testHost).
		Get("/api/v2/bucket_registrations/missing").
		Reply(404).
		JSON(map[string]any{"message": "bucket not found"})

	resp, err := c.Invoke(context.Background(), getBucket, Params{"bucket_id": "missing"}, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)

	var reqErr *errors.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "get_bucket_registration", reqErr.Operation)
	assert.Equal(t, 404, reqErr.StatusCode)
	assert.Contains(t, string(reqErr.Body), "bucket not found")
	assert.False(t, reqErr.IsRetryable())
	assert.ErrorIs(t, err, errors.ErrHTTPResponse)
}

func TestClient_InvokeRetriesThenSucceeds(t *testing.T) {
	m, err := metrics.New(nil)
	require.NoError(t, err)
	c := newMockedClient(t, testConfig(), WithMetrics(m))

	gock.New(testHost).
		Get("/api/v2/bucket_registrations/raw").
		Reply(503)
	gock.New(testHost).
		Get("/api/v2/bucket_registrations/raw").
		Reply(200).
		JSON(map[string]any{"bucket_id": "raw"})

	resp, err := c.Invoke(context.Background(), getBucket, Params{"bucket_id": "raw"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, gock.IsDone())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RetriesTotal.WithLabelValues(http.MethodGet)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("503", "get")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("200", "get")))
}

func TestClient_InvokeTransportError(t *testing.T) {
	cfg := testConfig()
	cfg.Retry = nil
	c := newMockedClient(t, cfg)

	gock.New(testHost).
		Get("/api/v2/bucket_registrations/raw").
		ReplyError(context.DeadlineExceeded)

	resp, err := c.Invoke(context.Background(), getBucket, Params{"bucket_id": "raw"}, nil)
	require.Error(t, err)
	assert.Nil(t, resp)

	var reqErr *errors.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Zero(t, reqErr.StatusCode)
	assert.True(t, reqErr.IsRetryable())
	assert.ErrorIs(t, err, errors.ErrHTTPRequest)
}

func TestClient_InvokeValidationSkipsNetwork(t *testing.T) {
	c := newMockedClient(t, testConfig())

	_, err := c.Invoke(context.Background(), getBucket, Params{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidation)
	assert.False(t, gock.HasUnmatchedRequest())
}

func TestClient_AuthOverrideAndRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = &config.RateLimit{RequestsPerSecond: 1000, Burst: 1}
	c := newMockedClient(t, cfg, WithAuthHandler(auth.NewAPIKeyAuth("X-API-Key", "", "k-1")))

	gock.New(testHost).
		Get("/api/v2/bucket_registrations/raw").
		MatchHeader("X-API-Key", "k-1").
		Times(2).
		Reply(200).
		JSON(map[string]any{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := 0; i < 2; i++ {
		_, err := c.Invoke(ctx, getBucket, Params{"bucket_id": "raw"}, nil)
		require.NoError(t, err)
	}
	assert.True(t, gock.IsDone())
}

func TestNewClient_Errors(t *testing.T) {
	_, err := NewClient(nil)
	assert.ErrorIs(t, err, errors.ErrConfiguration)

	_, err = NewClient(&config.Client{})
	assert.ErrorIs(t, err, errors.ErrConfiguration)

	_, err = NewClient(&config.Client{
		ServiceURL: testURL,
		Auth:       &config.Auth{Type: config.AuthTypeBearer},
	})
	assert.ErrorIs(t, err, errors.ErrConfiguration)
}
