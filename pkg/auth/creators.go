package auth

import (
	"fmt"
	"net/http"

	"github.com/saturnines/lakehouse-sdk/pkg/config"
	"github.com/saturnines/lakehouse-sdk/pkg/errors"
)

// Creator functions for auth handlers

func createNoAuth(*config.Auth) (Handler, error) {
	return NoAuth{}, nil
}

func createBasicAuth(authConfig *config.Auth) (Handler, error) {
	if authConfig.Basic == nil {
		return nil, errors.WrapError(
			fmt.Errorf("basic auth configuration is required"),
			errors.ErrConfiguration,
			"create basic auth",
		)
	}
	return NewBasicAuth(authConfig.Basic.Username, authConfig.Basic.Password), nil
}

func createAPIKeyAuth(authConfig *config.Auth) (Handler, error) {
	if authConfig.APIKey == nil {
		return nil, errors.WrapError(
			fmt.Errorf("api key configuration is required"),
			errors.ErrConfiguration,
			"create API key auth",
		)
	}
	return NewAPIKeyAuth(
		authConfig.APIKey.Header,
		authConfig.APIKey.QueryParam,
		authConfig.APIKey.Value,
	), nil
}

func createBearerAuth(authConfig *config.Auth) (Handler, error) {
	if authConfig.Bearer == nil {
		return nil, errors.WrapError(
			fmt.Errorf("bearer token configuration is required"),
			errors.ErrConfiguration,
			"create bearer auth",
		)
	}
	return NewBearerAuth(authConfig.Bearer.Token), nil
}

func iamCreator(client *http.Client) AuthCreator {
	return func(authConfig *config.Auth) (Handler, error) {
		if authConfig.IAM == nil {
			return nil, errors.WrapError(
				fmt.Errorf("iam configuration is required"),
				errors.ErrConfiguration,
				"create IAM auth",
			)
		}
		h, err := NewIAMAuth(authConfig.IAM.URL, authConfig.IAM.APIKey, authConfig.IAM.RefreshBefore, client)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrConfiguration, "create IAM auth")
		}
		return h, nil
	}
}
