package pagination

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/saturnines/lakehouse-sdk/pkg/errors"
)

// parseBody decodes a JSON response into a generic map. A bare array at the
// root is wrapped under "data" so paths can still address it.
func parseBody(data []byte) (map[string]interface{}, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPResponse, "parse response body")
	}

	switch v := raw.(type) {
	case map[string]interface{}:
		return v, nil
	case []interface{}:
		return map[string]interface{}{"data": v}, nil
	case nil:
		return map[string]interface{}{}, nil
	default:
		return nil, errors.WrapError(
			fmt.Errorf("unexpected response type: %T", raw),
			errors.ErrHTTPResponse,
			"parse response body",
		)
	}
}

type segment struct {
	field   string
	index   int
	isIndex bool
}

// parsePath splits "a.b[0].c" style paths. Negative indices count from the end.
func parsePath(path string) ([]segment, error) {
	var segs []segment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			continue
		}
		name := part
		rest := ""
		if i := strings.Index(part, "["); i != -1 {
			name, rest = part[:i], part[i:]
		}
		if name != "" {
			segs = append(segs, segment{field: name})
		}
		for rest != "" {
			end := strings.Index(rest, "]")
			if !strings.HasPrefix(rest, "[") || end == -1 {
				return nil, fmt.Errorf("invalid array notation in path %q", path)
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return nil, fmt.Errorf("invalid array index in path %q", path)
			}
			segs = append(segs, segment{index: idx, isIndex: true})
			rest = rest[end+1:]
		}
	}
	return segs, nil
}

// Lookup resolves a dotted path such as "next.href" or "items[-1].id"
// against decoded JSON.
func Lookup(body interface{}, path string) (interface{}, bool) {
	return lookup(body, path)
}

// lookup walks body along path. The bool is false when any step is missing.
func lookup(body interface{}, path string) (interface{}, bool) {
	if path == "" {
		return nil, false
	}
	segs, err := parsePath(path)
	if err != nil {
		return nil, false
	}

	cur := body
	for _, s := range segs {
		if s.isIndex {
			arr, ok := cur.([]interface{})
			if !ok {
				return nil, false
			}
			i := s.index
			if i < 0 {
				i += len(arr)
			}
			if i < 0 || i >= len(arr) {
				return nil, false
			}
			cur = arr[i]
			continue
		}
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[s.field]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// lookupString returns the string at path. Missing and null values come back
// as "" without an error since both mean "no value" for a cursor.
func lookupString(body map[string]interface{}, path string) (string, error) {
	v, ok := lookup(body, path)
	if !ok || v == nil {
		return "", nil
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		return "", errors.WrapError(
			fmt.Errorf("field %q is not a string, got %T", path, v),
			errors.ErrExtraction,
			"lookup string",
		)
	}
}

// lookupInt returns the number at path. ok is false when the field is absent or null.
func lookupInt(body map[string]interface{}, path string) (n int64, ok bool, err error) {
	v, found := lookup(body, path)
	if !found || v == nil {
		return 0, false, nil
	}
	switch x := v.(type) {
	case float64:
		return int64(x), true, nil
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, false, errors.WrapError(err, errors.ErrExtraction, "lookup int")
		}
		return n, true, nil
	default:
		return 0, false, errors.WrapError(
			fmt.Errorf("field %q is not a number, got %T", path, v),
			errors.ErrExtraction,
			"lookup int",
		)
	}
}

// extractItems returns the array at itemsPath. A missing or null array is an
// empty page; anything else that is not an array is an error.
func extractItems(body map[string]interface{}, itemsPath string) ([]interface{}, error) {
	if itemsPath == "" {
		itemsPath = "data"
	}
	v, ok := lookup(body, itemsPath)
	if !ok || v == nil {
		return []interface{}{}, nil
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, errors.WrapError(
			fmt.Errorf("items path %q is not an array, got %T", itemsPath, v),
			errors.ErrExtraction,
			"extract items",
		)
	}
	return arr, nil
}
