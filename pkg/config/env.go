package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvPrefix is used when LoadEnv is given an empty prefix.
const DefaultEnvPrefix = "LAKEHOUSE"

// Environment variable suffixes read by LoadEnv, e.g. LAKEHOUSE_URL.
const (
	EnvURL         = "URL"
	EnvAuthType    = "AUTH_TYPE"
	EnvBearerToken = "BEARER_TOKEN"
	EnvAPIKey      = "APIKEY"
	EnvUsername    = "USERNAME"
	EnvPassword    = "PASSWORD"
	EnvIAMURL      = "IAM_URL"
	EnvInstanceID  = "INSTANCE_ID"
	EnvTimeout     = "TIMEOUT"
	EnvMaxRetries  = "MAX_RETRIES"
	EnvRateLimit   = "RATE_LIMIT"
)

// LoadEnv builds a client config from environment variables. Listed .env files
// must exist; with none listed a ./.env is loaded when present. Variables that
// are already set win over .env values.
func LoadEnv(prefix string, files ...string) (*Client, error) {
	if err := loadDotEnv(files...); err != nil {
		return nil, err
	}

	cfg, err := FromEnv(prefix, os.Getenv)
	if err != nil {
		return nil, err
	}
	return Finalize(cfg)
}

func loadDotEnv(files ...string) error {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return fmt.Errorf("failed to load env files: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// FromEnv reads the config from getenv without applying defaults.
func FromEnv(prefix string, getenv func(string) string) (*Client, error) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	get := func(suffix string) string {
		return strings.TrimSpace(getenv(prefix + "_" + suffix))
	}

	cfg := &Client{
		ServiceURL: get(EnvURL),
		InstanceID: get(EnvInstanceID),
	}

	if v := get(EnvTimeout); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s_%s: %w", prefix, EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := get(EnvMaxRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s_%s: %w", prefix, EnvMaxRetries, err)
		}
		cfg.Retry = &RetryConfig{MaxAttempts: n + 1}
	}
	if v := get(EnvRateLimit); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%s_%s: %w", prefix, EnvRateLimit, err)
		}
		cfg.RateLimit = &RateLimit{RequestsPerSecond: rps}
	}

	authType := AuthType(strings.ToLower(get(EnvAuthType)))
	if authType == "" {
		switch {
		case get(EnvBearerToken) != "":
			authType = AuthTypeBearer
		case get(EnvAPIKey) != "" && get(EnvIAMURL) != "":
			authType = AuthTypeIAM
		case get(EnvAPIKey) != "":
			authType = AuthTypeAPIKey
		case get(EnvUsername) != "":
			authType = AuthTypeBasic
		default:
			authType = AuthTypeNone
		}
	}

	cfg.Auth = &Auth{Type: authType}
	switch authType {
	case AuthTypeBearer:
		cfg.Auth.Bearer = &BearerAuth{Token: get(EnvBearerToken)}
	case AuthTypeAPIKey:
		cfg.Auth.APIKey = &APIKeyAuth{Value: get(EnvAPIKey)}
	case AuthTypeBasic:
		cfg.Auth.Basic = &BasicAuth{Username: get(EnvUsername), Password: get(EnvPassword)}
	case AuthTypeIAM:
		cfg.Auth.IAM = &IAMAuth{URL: get(EnvIAMURL), APIKey: get(EnvAPIKey)}
	}

	return cfg, nil
}

// parseDuration accepts Go durations ("45s") or plain seconds ("45").
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
