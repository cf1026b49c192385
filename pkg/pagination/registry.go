package pagination

import (
	"fmt"

	"github.com/saturnines/lakehouse-sdk/pkg/errors"
)

// Pagination kinds understood by DefaultFactory.
const (
	KindHref   = "href"
	KindToken  = "token"
	KindOffset = "offset"
)

// Creator builds a CursorExtractor or errors on bad opts.
type Creator func(map[string]interface{}) (CursorExtractor, error)

// DefaultRegistry maps names to creators.
var DefaultRegistry = map[string]Creator{
	KindHref:   hrefCreator,
	KindToken:  tokenCreator,
	KindOffset: offsetCreator,
}

func hrefCreator(opts map[string]interface{}) (CursorExtractor, error) {
	return NewHrefExtractor(
		getOptionalStringOption(opts, "nextPath"),
		getOptionalStringOption(opts, "param"),
	), nil
}

func tokenCreator(opts map[string]interface{}) (CursorExtractor, error) {
	np, err := getStringOption(opts, "nextPath", "token pagination")
	if err != nil {
		return nil, err
	}
	return NewTokenExtractor(np), nil
}

func offsetCreator(opts map[string]interface{}) (CursorExtractor, error) {
	op, err := getStringOption(opts, "offsetPath", "offset pagination")
	if err != nil {
		return nil, err
	}
	return &OffsetExtractor{
		OffsetPath: op,
		LimitPath:  getOptionalStringOption(opts, "limitPath"),
		TotalPath:  getOptionalStringOption(opts, "totalPath"),
		ItemsPath:  getOptionalStringOption(opts, "itemsPath"),
	}, nil
}

// Helper functions for option extraction
func getStringOption(opts map[string]interface{}, key, ctx string) (string, error) {
	v, ok := opts[key]
	if !ok {
		return "", errors.WrapError(
			fmt.Errorf("%s missing", key),
			errors.ErrConfiguration,
			ctx,
		)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", errors.WrapError(
			fmt.Errorf("%s must be a non-empty string, got %T", key, v),
			errors.ErrConfiguration,
			ctx,
		)
	}
	return s, nil
}

func getOptionalStringOption(opts map[string]interface{}, key string) string {
	if v, ok := opts[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
