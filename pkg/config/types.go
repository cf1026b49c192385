package config

import "time"

// Client is the full config for one service client
type Client struct {
	ServiceURL string            `yaml:"service_url"`           // Required: base URL of the service API
	InstanceID string            `yaml:"instance_id,omitempty"` // Sent as AuthInstanceId on every request
	UserAgent  string            `yaml:"user_agent,omitempty"`  // Defaults to lakehouse-sdk-go
	Timeout    time.Duration     `yaml:"timeout,omitempty"`     // Per request, default 30s
	Headers    map[string]string `yaml:"headers,omitempty"`     // Added to every request
	Auth       *Auth             `yaml:"auth,omitempty"`        // Optional authentication
	Retry      *RetryConfig      `yaml:"retry,omitempty"`       // Retry policy, defaulted when absent
	RateLimit  *RateLimit        `yaml:"rate_limit,omitempty"`  // Optional client side rate limit
}

// Auth defines auth methods.
type Auth struct {
	Type   AuthType    `yaml:"type"`              // Required authentication type
	Bearer *BearerAuth `yaml:"bearer,omitempty"`  // Static bearer token
	APIKey *APIKeyAuth `yaml:"api_key,omitempty"` // API key header
	Basic  *BasicAuth  `yaml:"basic,omitempty"`   // Basic authentication
	IAM    *IAMAuth    `yaml:"iam,omitempty"`     // API key exchanged for a bearer token
}

// AuthType defines current supported authentication types
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeBearer AuthType = "bearer"
	AuthTypeAPIKey AuthType = "api_key"
	AuthTypeBasic  AuthType = "basic"
	AuthTypeIAM    AuthType = "iam"
)

// BearerAuth holds a static token
type BearerAuth struct {
	Token string `yaml:"token"`
}

// APIKeyAuth contains API key details
type APIKeyAuth struct {
	Header     string `yaml:"header,omitempty"`      // Header name
	QueryParam string `yaml:"query_param,omitempty"` // Query parameter name
	Value      string `yaml:"value"`                 // API key value
}

// BasicAuth contains auth credentials for the api
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// IAMAuth exchanges an API key for short lived access tokens
type IAMAuth struct {
	URL           string `yaml:"url"`
	APIKey        string `yaml:"api_key"`
	RefreshBefore int    `yaml:"refresh_before,omitempty"` // Seconds before expiry to refresh
}

// RetryConfig controls the transport retry loop
type RetryConfig struct {
	MaxAttempts       int           `yaml:"max_attempts"`
	InitialBackoff    time.Duration `yaml:"initial_backoff"`
	MaxBackoff        time.Duration `yaml:"max_backoff,omitempty"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
	RetryableStatuses []int         `yaml:"retryable_statuses"`
}

// RateLimit is a token bucket applied before requests leave the client
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst,omitempty"`
}

// Defaults
const (
	DefaultTimeout           = 30 * time.Second
	DefaultUserAgent         = "lakehouse-sdk-go"
	DefaultMaxAttempts       = 3
	DefaultInitialBackoff    = 500 * time.Millisecond
	DefaultMaxBackoff        = 30 * time.Second
	DefaultBackoffMultiplier = 2.0
	DefaultAPIKeyHeader      = "X-API-Key"
	DefaultIAMRefreshBefore  = 60
)

// DefaultRetryableStatuses are retried when the config does not say otherwise.
var DefaultRetryableStatuses = []int{429, 500, 502, 503, 504}
