package auth

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/saturnines/lakehouse-sdk/pkg/config"
	"github.com/saturnines/lakehouse-sdk/pkg/errors"
	"github.com/stretchr/testify/require"
)

// Helper functions for tests
func assertHeader(t *testing.T, req *http.Request, header, expected string) {
	t.Helper()
	if value := req.Header.Get(header); value != expected {
		t.Errorf("Expected %s header '%s', got '%s'", header, expected, value)
	}
}

func assertQueryParam(t *testing.T, req *http.Request, param, expected string) {
	t.Helper()
	if value := req.URL.Query().Get(param); value != expected {
		t.Errorf("Expected %s query param '%s', got '%s'", param, expected, value)
	}
}

func assertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if err == nil {
		t.Errorf("Expected error containing '%s', got nil", expected)
		return
	}
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected error containing '%s', got '%s'", expected, err.Error())
	}
}

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "https://lake.example.com/v2/catalogs", nil)
	require.NoError(t, err)
	return req
}

func TestAPIKeyAuth(t *testing.T) {
	t.Run("HeaderBased", func(t *testing.T) {
		req := newRequest(t)
		if err := NewAPIKeyAuth("X-API-Key", "", "test-api-key").ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}
		assertHeader(t, req, "X-API-Key", "test-api-key")
	})

	t.Run("QueryBased", func(t *testing.T) {
		req := newRequest(t)
		if err := NewAPIKeyAuth("", "api_key", "test-api-key").ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}
		assertQueryParam(t, req, "api_key", "test-api-key")
	})

	t.Run("MissingValue", func(t *testing.T) {
		err := NewAPIKeyAuth("X-API-Key", "", "").ApplyAuth(newRequest(t))
		assertErrorContains(t, err, "API key value is required")
		require.ErrorIs(t, err, errors.ErrConfiguration)
	})

	t.Run("MissingHeaderAndQuery", func(t *testing.T) {
		req := newRequest(t)
		err := NewAPIKeyAuth("", "", "test-api-key").ApplyAuth(req)
		assertErrorContains(t, err, "requires either header name or query parameter name")
		assertQueryParam(t, req, "api_key", "")
	})

	t.Run("StringMethod", func(t *testing.T) {
		if str := NewAPIKeyAuth("X-API-Key", "", "test-api-key").String(); !strings.Contains(str, "X-API-Key") {
			t.Errorf("String() should contain header name, got: %s", str)
		}
	})
}

func TestBasicAuth(t *testing.T) {
	t.Run("ValidCredentials", func(t *testing.T) {
		req := newRequest(t)
		if err := NewBasicAuth("testuser", "testpass").ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}
		encoded := base64.StdEncoding.EncodeToString([]byte("testuser:testpass"))
		assertHeader(t, req, "Authorization", "Basic "+encoded)
	})

	t.Run("EmptyUsername", func(t *testing.T) {
		err := NewBasicAuth("", "testpass").ApplyAuth(newRequest(t))
		assertErrorContains(t, err, "username is required")
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		req := newRequest(t)
		if err := NewBasicAuth("testuser", "").ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth with empty password failed: %v", err)
		}
		encoded := base64.StdEncoding.EncodeToString([]byte("testuser:"))
		assertHeader(t, req, "Authorization", "Basic "+encoded)
	})

	t.Run("StringMethod", func(t *testing.T) {
		str := NewBasicAuth("testuser", "testpass").String()
		if !strings.Contains(str, "testuser") || strings.Contains(str, "testpass") {
			t.Errorf("String() should contain username only, got: %s", str)
		}
	})
}

func TestBearerAuth(t *testing.T) {
	t.Run("ValidToken", func(t *testing.T) {
		req := newRequest(t)
		if err := NewBearerAuth("test-token").ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}
		assertHeader(t, req, "Authorization", "Bearer test-token")
	})

	t.Run("EmptyToken", func(t *testing.T) {
		err := NewBearerAuth("").ApplyAuth(newRequest(t))
		assertErrorContains(t, err, "token is required")
	})

	t.Run("StringMethod", func(t *testing.T) {
		if str := NewBearerAuth("test-token").String(); strings.Contains(str, "test-token") {
			t.Errorf("String() should not contain the actual token, got: %s", str)
		}
	})
}

func newTokenServer(t *testing.T, hits *int32, expiresIn int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(hits, 1)
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("Failed to parse form: %v", err)
		}
		if r.PostForm.Get("grant_type") != IAMGrantType || r.PostForm.Get("apikey") != "secret-key" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"errorMessage":"bad grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"Bearer","expires_in":%d}`, n, expiresIn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIAMAuth(t *testing.T) {
	t.Run("TokenAcquisitionAndCaching", func(t *testing.T) {
		var hits int32
		srv := newTokenServer(t, &hits, 3600)

		a, err := NewIAMAuth(srv.URL, "secret-key", 60, srv.Client())
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			req := newRequest(t)
			require.NoError(t, a.ApplyAuth(req))
			assertHeader(t, req, "Authorization", "Bearer token-1")
		}
		require.EqualValues(t, 1, atomic.LoadInt32(&hits))
	})

	t.Run("RefreshesNearExpiry", func(t *testing.T) {
		var hits int32
		srv := newTokenServer(t, &hits, 120)

		a, err := NewIAMAuth(srv.URL, "secret-key", 60, srv.Client())
		require.NoError(t, err)
		now := time.Now()
		a.now = func() time.Time { return now }

		req := newRequest(t)
		require.NoError(t, a.ApplyAuth(req))
		assertHeader(t, req, "Authorization", "Bearer token-1")

		now = now.Add(90 * time.Second)
		req = newRequest(t)
		require.NoError(t, a.ApplyAuth(req))
		assertHeader(t, req, "Authorization", "Bearer token-2")
		require.EqualValues(t, 2, atomic.LoadInt32(&hits))
	})

	t.Run("RejectedKey", func(t *testing.T) {
		var hits int32
		srv := newTokenServer(t, &hits, 3600)

		a, err := NewIAMAuth(srv.URL, "wrong", 60, srv.Client())
		require.NoError(t, err)

		err = a.ApplyAuth(newRequest(t))
		var tre *TokenRefreshError
		require.ErrorAs(t, err, &tre)
		require.Equal(t, http.StatusBadRequest, tre.StatusCode)
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := NewIAMAuth("", "k", 0, nil)
		assertErrorContains(t, err, "token URL is required")
		_, err = NewIAMAuth("https://iam.example.com", "", 0, nil)
		assertErrorContains(t, err, "api key is required")
	})
}

func TestAuthRegistry(t *testing.T) {
	r := NewAuthRegistry(nil)

	tests := []struct {
		name string
		cfg  *config.Auth
		want string
	}{
		{"nil config", nil, "NoAuth"},
		{"none", &config.Auth{Type: config.AuthTypeNone}, "NoAuth"},
		{"bearer", &config.Auth{Type: config.AuthTypeBearer, Bearer: &config.BearerAuth{Token: "t"}}, "BearerAuth(token: [REDACTED])"},
		{"basic", &config.Auth{Type: config.AuthTypeBasic, Basic: &config.BasicAuth{Username: "u"}}, "BasicAuth(username: u)"},
		{"api key", &config.Auth{Type: config.AuthTypeAPIKey, APIKey: &config.APIKeyAuth{Header: "X-Key", Value: "v"}}, "APIKeyAuth(header: X-Key)"},
		{"iam", &config.Auth{Type: config.AuthTypeIAM, IAM: &config.IAMAuth{URL: "https://iam.example.com/token", APIKey: "k"}}, "IAMAuth(url: https://iam.example.com/token)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := r.Create(tt.cfg)
			require.NoError(t, err)
			require.Equal(t, tt.want, h.(interface{ String() string }).String())
		})
	}

	t.Run("missing sections", func(t *testing.T) {
		for _, typ := range []config.AuthType{config.AuthTypeBearer, config.AuthTypeBasic, config.AuthTypeAPIKey, config.AuthTypeIAM} {
			_, err := r.Create(&config.Auth{Type: typ})
			require.ErrorIs(t, err, errors.ErrConfiguration, string(typ))
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := r.Create(&config.Auth{Type: "kerberos"})
		require.ErrorIs(t, err, errors.ErrConfiguration)
	})
}
