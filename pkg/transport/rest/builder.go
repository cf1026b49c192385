package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/saturnines/lakehouse-sdk/pkg/errors"
)

// Location says where a parameter is placed on the request.
type Location string

const (
	InPath   Location = "path"
	InQuery  Location = "query"
	InBody   Location = "body"
	InHeader Location = "header"
)

// Header names set on every request.
const (
	HeaderAccept     = "Accept"
	HeaderUserAgent  = "User-Agent"
	HeaderRequestID  = "X-Request-Id"
	HeaderInstanceID = "AuthInstanceId"
	HeaderContent    = "Content-Type"

	mimeJSON = "application/json"
)

// Param declares one named operation parameter.
type Param struct {
	Name     string
	In       Location
	Required bool
}

// Operation is one entry of a service's operation table.
type Operation struct {
	Name   string
	Method string
	Path   string // e.g. /buckets/{bucket_id}/objects
	Params []Param
	Result string // name of the decoded model, informational
}

// Param returns the declaration for name.
func (op Operation) Param(name string) (Param, bool) {
	for _, p := range op.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Params carries call arguments keyed by parameter name. Nil values count as absent.
type Params map[string]any

var pathParamPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Builder turns an Operation and its Params into a resty request.
type Builder struct {
	UserAgent  string
	InstanceID string
	Headers    map[string]string

	newRequestID func() string
}

// NewBuilder constructs a Builder. Headers are copied.
func NewBuilder(userAgent, instanceID string, headers map[string]string) *Builder {
	h := make(map[string]string, len(headers))
	for k, v := range headers {
		h[k] = v
	}
	return &Builder{
		UserAgent:    userAgent,
		InstanceID:   instanceID,
		Headers:      h,
		newRequestID: uuid.NewString,
	}
}

// Build fills req with the method, URL, headers, query and body for op.
func (b *Builder) Build(ctx context.Context, req *resty.Request, op Operation, params Params) (*resty.Request, error) {
	if op.Method == "" {
		op.Method = http.MethodGet
	}

	for name := range params {
		if _, ok := op.Param(name); !ok {
			return nil, errors.WrapError(
				fmt.Errorf("unknown parameter %q", name),
				errors.ErrValidation,
				op.Name,
			)
		}
	}

	var missing []string
	for _, p := range op.Params {
		if p.Required && isAbsent(params[p.Name]) {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, errors.WrapError(
			fmt.Errorf("missing required parameters: %s", strings.Join(missing, ", ")),
			errors.ErrValidation,
			op.Name,
		)
	}

	path, err := expandPath(op, params)
	if err != nil {
		return nil, err
	}

	req.SetContext(ctx)
	req.Method = op.Method
	req.URL = path

	req.SetHeader(HeaderAccept, mimeJSON)
	if b.UserAgent != "" {
		req.SetHeader(HeaderUserAgent, b.UserAgent)
	}
	if b.newRequestID != nil {
		req.SetHeader(HeaderRequestID, b.newRequestID())
	}
	if b.InstanceID != "" {
		req.SetHeader(HeaderInstanceID, b.InstanceID)
	}
	for k, v := range b.Headers {
		req.SetHeader(k, v)
	}

	for _, p := range op.Params {
		v := params[p.Name]
		if isAbsent(v) {
			continue
		}
		switch p.In {
		case InQuery:
			values, err := queryValues(v)
			if err != nil {
				return nil, errors.WrapError(err, errors.ErrValidation, op.Name+": "+p.Name)
			}
			for _, s := range values {
				req.QueryParam.Add(p.Name, s)
			}
		case InHeader:
			s, err := stringify(v)
			if err != nil {
				return nil, errors.WrapError(err, errors.ErrValidation, op.Name+": "+p.Name)
			}
			req.SetHeader(p.Name, s)
		case InBody:
			req.SetHeader(HeaderContent, mimeJSON)
			req.SetBody(v)
		case InPath:
			// already expanded
		default:
			return nil, errors.WrapError(
				fmt.Errorf("parameter %q has unknown location %q", p.Name, p.In),
				errors.ErrConfiguration,
				op.Name,
			)
		}
	}

	return req, nil
}

// expandPath substitutes {name} segments with escaped parameter values.
func expandPath(op Operation, params Params) (string, error) {
	var expandErr error
	path := pathParamPattern.ReplaceAllStringFunc(op.Path, func(match string) string {
		name := match[1 : len(match)-1]
		p, ok := op.Param(name)
		if !ok || p.In != InPath {
			if expandErr == nil {
				expandErr = errors.WrapError(
					fmt.Errorf("path segment %q has no path parameter", name),
					errors.ErrConfiguration,
					op.Name,
				)
			}
			return match
		}
		v := params[name]
		if isAbsent(v) {
			if expandErr == nil {
				expandErr = errors.WrapError(
					fmt.Errorf("missing path parameter %q", name),
					errors.ErrValidation,
					op.Name,
				)
			}
			return match
		}
		s, err := stringify(v)
		if err != nil {
			if expandErr == nil {
				expandErr = errors.WrapError(err, errors.ErrValidation, op.Name+": "+name)
			}
			return match
		}
		return url.PathEscape(s)
	})
	return path, expandErr
}

func isAbsent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case *string:
		return t == nil || *t == ""
	case *int64:
		return t == nil
	case *int:
		return t == nil
	case *bool:
		return t == nil
	case []string:
		return len(t) == 0
	}
	return false
}

func stringify(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case *string:
		return *t, nil
	case int:
		return strconv.Itoa(t), nil
	case *int:
		return strconv.Itoa(*t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case *int64:
		return strconv.FormatInt(*t, 10), nil
	case bool:
		return strconv.FormatBool(t), nil
	case *bool:
		return strconv.FormatBool(*t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case fmt.Stringer:
		return t.String(), nil
	}
	return "", fmt.Errorf("unsupported parameter type %T", v)
}

func queryValues(v any) ([]string, error) {
	if list, ok := v.([]string); ok {
		return list, nil
	}
	s, err := stringify(v)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}
