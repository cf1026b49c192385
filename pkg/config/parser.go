package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigLoader defines the interface for loading configs
type ConfigLoader interface {
	Load(path string) (*Client, error)
	Parse(data []byte) (*Client, error)
}

type ValidationError struct {
	Field   string
	Message string
}

type Validator interface {
	Validate(config *Client) []ValidationError
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one config.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return "validation errors: " + strings.Join(msgs, "; ")
}

// DefaultValueSetter Handles the interface for setting default values
type DefaultValueSetter interface {
	SetDefaults(config *Client)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// Loader reads client configs from YAML
type Loader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewLoader creates a new Loader with the given components
func NewLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *Loader {
	return &Loader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// DefaultLoader expands ${VAR}, applies defaults and runs every validator.
func DefaultLoader() *Loader {
	return NewLoader(&EnvExpander{}, &ClientDefaults{}, DefaultValidators()...)
}

// DefaultValidators returns the validators used by DefaultLoader and Finalize.
func DefaultValidators() []Validator {
	return []Validator{
		&RequiredFieldValidator{},
		&AuthValidator{},
		&RetryValidator{},
		&RateLimitValidator{},
	}
}

// Load a client config from a YAML file
func (l *Loader) Load(path string) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *Loader) Parse(data []byte) (*Client, error) {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var cfg Client
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return l.finish(&cfg)
}

func (l *Loader) finish(cfg *Client) (*Client, error) {
	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(cfg)
	}

	var all ValidationErrors
	for _, validator := range l.validators {
		all = append(all, validator.Validate(cfg)...)
	}
	if len(all) > 0 {
		return nil, all
	}

	return cfg, nil
}

// Finalize applies defaults and validation to a config built in code.
func Finalize(cfg *Client) (*Client, error) {
	if cfg == nil {
		return nil, ValidationErrors{{Field: "config", Message: "is required"}}
	}
	return DefaultLoader().finish(cfg)
}

// ClientDefaults implements DefaultValueSetter for Client
type ClientDefaults struct{}

// SetDefaults sets default values for Client
func (d *ClientDefaults) SetDefaults(cfg *Client) {
	cfg.ServiceURL = strings.TrimRight(strings.TrimSpace(cfg.ServiceURL), "/")

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	if cfg.Auth == nil {
		cfg.Auth = &Auth{Type: AuthTypeNone}
	}
	if cfg.Auth.Type == "" {
		cfg.Auth.Type = AuthTypeBearer
	}
	if cfg.Auth.Type == AuthTypeAPIKey && cfg.Auth.APIKey != nil &&
		cfg.Auth.APIKey.Header == "" && cfg.Auth.APIKey.QueryParam == "" {
		cfg.Auth.APIKey.Header = DefaultAPIKeyHeader
	}
	if cfg.Auth.Type == AuthTypeIAM && cfg.Auth.IAM != nil && cfg.Auth.IAM.RefreshBefore <= 0 {
		cfg.Auth.IAM.RefreshBefore = DefaultIAMRefreshBefore
	}

	if cfg.Retry == nil {
		cfg.Retry = &RetryConfig{}
	}
	r := cfg.Retry
	if r.MaxAttempts == 0 {
		r.MaxAttempts = DefaultMaxAttempts
	}
	if r.InitialBackoff <= 0 {
		r.InitialBackoff = DefaultInitialBackoff
	}
	if r.MaxBackoff <= 0 {
		r.MaxBackoff = DefaultMaxBackoff
	}
	if r.BackoffMultiplier == 0 {
		r.BackoffMultiplier = DefaultBackoffMultiplier
	}
	if r.RetryableStatuses == nil {
		r.RetryableStatuses = append([]int(nil), DefaultRetryableStatuses...)
	}

	if cfg.RateLimit != nil && cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 1
	}
}

// RequiredFieldValidator validates required fields for the client
type RequiredFieldValidator struct{}

// Validate checks that the service URL is present and absolute
func (v *RequiredFieldValidator) Validate(cfg *Client) []ValidationError {
	var errors []ValidationError

	if cfg.ServiceURL == "" {
		return append(errors, ValidationError{Field: "service_url", Message: "is required"})
	}

	u, err := url.Parse(cfg.ServiceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{Field: "service_url", Message: fmt.Sprintf("must be an absolute URL, got %q", cfg.ServiceURL)})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, ValidationError{Field: "service_url", Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)})
	}

	if cfg.Timeout < 0 {
		errors = append(errors, ValidationError{Field: "timeout", Message: "must not be negative"})
	}

	return errors
}

// AuthValidator handles authentication validation
type AuthValidator struct{}

// Validate checks that authentication configuration is valid
func (v *AuthValidator) Validate(cfg *Client) []ValidationError {
	var errors []ValidationError

	if cfg.Auth == nil {
		return errors
	}

	switch cfg.Auth.Type {
	case AuthTypeNone:
	case AuthTypeBearer:
		if cfg.Auth.Bearer == nil || cfg.Auth.Bearer.Token == "" {
			errors = append(errors, ValidationError{Field: "auth.bearer.token", Message: "is required for bearer auth"})
		}
	case AuthTypeAPIKey:
		if cfg.Auth.APIKey == nil {
			errors = append(errors, ValidationError{Field: "auth.api_key", Message: "is required for api_key auth"})
		} else {
			if cfg.Auth.APIKey.Value == "" {
				errors = append(errors, ValidationError{Field: "auth.api_key.value", Message: "is required for api_key auth"})
			}
			if cfg.Auth.APIKey.Header == "" && cfg.Auth.APIKey.QueryParam == "" {
				errors = append(errors, ValidationError{Field: "auth.api_key", Message: "either header or query_param must be specified for api_key auth"})
			}
		}
	case AuthTypeBasic:
		if cfg.Auth.Basic == nil {
			errors = append(errors, ValidationError{Field: "auth.basic", Message: "is required for basic auth"})
		} else if cfg.Auth.Basic.Username == "" {
			errors = append(errors, ValidationError{Field: "auth.basic.username", Message: "is required for basic auth"})
		}
	case AuthTypeIAM:
		if cfg.Auth.IAM == nil {
			errors = append(errors, ValidationError{Field: "auth.iam", Message: "is required for iam auth"})
		} else {
			if cfg.Auth.IAM.URL == "" {
				errors = append(errors, ValidationError{Field: "auth.iam.url", Message: "is required for iam auth"})
			}
			if cfg.Auth.IAM.APIKey == "" {
				errors = append(errors, ValidationError{Field: "auth.iam.api_key", Message: "is required for iam auth"})
			}
		}
	default:
		errors = append(errors, ValidationError{Field: "auth.type", Message: fmt.Sprintf("unknown auth type: %s", cfg.Auth.Type)})
	}

	return errors
}

// RetryValidator validates the retry policy
type RetryValidator struct{}

// Validate checks that retry settings are usable
func (v *RetryValidator) Validate(cfg *Client) []ValidationError {
	var errors []ValidationError

	if cfg.Retry == nil {
		return errors
	}

	if cfg.Retry.MaxAttempts < 1 {
		errors = append(errors, ValidationError{Field: "retry.max_attempts", Message: "must be at least 1"})
	}
	if cfg.Retry.BackoffMultiplier < 1 {
		errors = append(errors, ValidationError{Field: "retry.backoff_multiplier", Message: "must be at least 1"})
	}
	for _, s := range cfg.Retry.RetryableStatuses {
		if s < 100 || s > 599 {
			errors = append(errors, ValidationError{Field: "retry.retryable_statuses", Message: fmt.Sprintf("invalid HTTP status %d", s)})
		}
	}

	return errors
}

// RateLimitValidator validates the client side rate limit
type RateLimitValidator struct{}

// Validate checks that the rate limit is positive when set
func (v *RateLimitValidator) Validate(cfg *Client) []ValidationError {
	if cfg.RateLimit == nil {
		return nil
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		return []ValidationError{{Field: "rate_limit.requests_per_second", Message: "must be positive"}}
	}
	return nil
}
