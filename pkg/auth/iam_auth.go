package auth

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// IAMGrantType is the grant used to trade an API key for an access token.
const IAMGrantType = "urn:ibm:params:oauth:grant-type:apikey"

// TokenRefreshError represents a token refresh failure
type TokenRefreshError struct {
	StatusCode int
	Cause      error
}

func (e *TokenRefreshError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("token refresh failed (status %d): %v", e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("token refresh failed: %v", e.Cause)
}

func (e *TokenRefreshError) Unwrap() error { return e.Cause }

// TokenResponse represents the response from the token endpoint
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Expiration   int64  `json:"expiration,omitempty"`
}

// IAMAuth exchanges an API key for bearer tokens and caches them until
// RefreshBefore seconds ahead of expiry.
type IAMAuth struct {
	TokenURL      string
	APIKey        string
	RefreshBefore int

	client *resty.Client
	now    func() time.Time

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewIAMAuth creates a new IAM token handler. httpClient may be nil.
func NewIAMAuth(tokenURL, apiKey string, refreshBefore int, httpClient *http.Client) (*IAMAuth, error) {
	if tokenURL == "" {
		return nil, fmt.Errorf("token URL is required for IAM auth")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required for IAM auth")
	}
	if refreshBefore <= 0 {
		refreshBefore = 60
	}

	var client *resty.Client
	if httpClient != nil {
		client = resty.NewWithClient(httpClient)
	} else {
		client = resty.New().SetTimeout(30 * time.Second)
	}

	return &IAMAuth{
		TokenURL:      tokenURL,
		APIKey:        apiKey,
		RefreshBefore: refreshBefore,
		client:        client,
		now:           time.Now,
	}, nil
}

// ApplyAuth adds a valid access token to the request, fetching one first when
// the cached token is missing or about to expire.
func (a *IAMAuth) ApplyAuth(req *http.Request) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	margin := time.Duration(a.RefreshBefore) * time.Second
	if a.accessToken == "" || a.now().Add(margin).After(a.expiresAt) {
		if err := a.refresh(req); err != nil {
			// keep the cached token until it actually expires
			if a.accessToken == "" || a.now().After(a.expiresAt) {
				return err
			}
		}
	}

	req.Header.Set("Authorization", "Bearer "+a.accessToken)
	return nil
}

func (a *IAMAuth) refresh(req *http.Request) error {
	var tok TokenResponse
	resp, err := a.client.R().
		SetContext(req.Context()).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"grant_type": IAMGrantType,
			"apikey":     a.APIKey,
		}).
		SetResult(&tok).
		Post(a.TokenURL)
	if err != nil {
		return &TokenRefreshError{Cause: err}
	}
	if resp.IsError() {
		return &TokenRefreshError{
			StatusCode: resp.StatusCode(),
			Cause:      fmt.Errorf("%s", resp.String()),
		}
	}
	if tok.AccessToken == "" {
		return &TokenRefreshError{StatusCode: resp.StatusCode(), Cause: fmt.Errorf("response has no access_token")}
	}

	a.accessToken = tok.AccessToken
	switch {
	case tok.Expiration > 0:
		a.expiresAt = time.Unix(tok.Expiration, 0)
	case tok.ExpiresIn > 0:
		a.expiresAt = a.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	default:
		a.expiresAt = a.now().Add(time.Hour)
	}
	return nil
}

// String returns a string representation of this auth method
func (a *IAMAuth) String() string {
	return fmt.Sprintf("IAMAuth(url: %s)", a.TokenURL)
}
