package pagination

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/saturnines/lakehouse-sdk/pkg/errors"
)

// CursorExtractor reads the continuation cursor out of a decoded page.
// current is the cursor the page was requested with ("" for the first page).
// It returns "" when the page is the last one.
type CursorExtractor interface {
	NextCursor(body map[string]interface{}, current string) (string, error)
}

// HrefExtractor handles "next": {"href": "https://...?start=abc"} style
// responses, returning the Param query value of the link.
type HrefExtractor struct {
	NextPath string // e.g. "next.href"
	Param    string // e.g. "start"
}

// NewHrefExtractor builds an HrefExtractor, defaulting to next.href and start.
func NewHrefExtractor(nextPath, param string) *HrefExtractor {
	if nextPath == "" {
		nextPath = "next.href"
	}
	if param == "" {
		param = "start"
	}
	return &HrefExtractor{NextPath: nextPath, Param: param}
}

func (e *HrefExtractor) NextCursor(body map[string]interface{}, _ string) (string, error) {
	href, err := lookupString(body, e.NextPath)
	if err != nil {
		return "", err
	}
	href = strings.TrimSpace(href)
	if href == "" {
		return "", nil
	}

	u, err := url.Parse(href)
	if err != nil {
		return "", errors.WrapError(err, errors.ErrExtraction, "parse next link")
	}
	return strings.TrimSpace(u.Query().Get(e.Param)), nil
}

// TokenExtractor handles responses carrying the cursor as a plain value.
type TokenExtractor struct {
	NextPath string // e.g. "next_token" or "meta.next"
}

// NewTokenExtractor builds a TokenExtractor.
func NewTokenExtractor(nextPath string) *TokenExtractor {
	return &TokenExtractor{NextPath: nextPath}
}

func (e *TokenExtractor) NextCursor(body map[string]interface{}, _ string) (string, error) {
	tok, err := lookupString(body, e.NextPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tok), nil
}

// OffsetExtractor computes the next offset from offset/limit/total fields.
// When the body carries no offset, the requested cursor is used instead.
// Without a total, a short or empty page ends the collection.
type OffsetExtractor struct {
	OffsetPath string
	LimitPath  string
	TotalPath  string
	ItemsPath  string
}

func (e *OffsetExtractor) NextCursor(body map[string]interface{}, current string) (string, error) {
	items, err := extractItems(body, e.ItemsPath)
	if err != nil {
		return "", err
	}
	count := int64(len(items))

	offset, hasOffset, err := lookupInt(body, e.OffsetPath)
	if err != nil {
		return "", err
	}
	if !hasOffset {
		if offset, err = parseOffset(current); err != nil {
			return "", err
		}
	}
	limit, hasLimit, err := lookupInt(body, e.LimitPath)
	if err != nil {
		return "", err
	}
	total, hasTotal, err := lookupInt(body, e.TotalPath)
	if err != nil {
		return "", err
	}

	next := offset + count
	switch {
	case hasTotal:
		if next >= total || count == 0 {
			return "", nil
		}
	case count == 0:
		return "", nil
	case hasLimit && count < limit:
		return "", nil
	}
	return strconv.FormatInt(next, 10), nil
}

func parseOffset(cursor string) (int64, error) {
	cursor = strings.TrimSpace(cursor)
	if cursor == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(cursor, 10, 64)
	if err != nil {
		return 0, errors.WrapError(
			fmt.Errorf("offset cursor %q is not a number", cursor),
			errors.ErrExtraction,
			"offset pagination",
		)
	}
	return n, nil
}

// Decoder turns a raw listing response into a Page.
type Decoder struct {
	ItemsPath string
	TotalPath string
	Cursor    CursorExtractor
}

// Decode parses body and returns the typed page it describes. cursor is the
// cursor the page was requested with.
func Decode[T any](d Decoder, body []byte, cursor string) (*Page[T], error) {
	parsed, err := parseBody(body)
	if err != nil {
		return nil, err
	}

	raw, err := extractItems(parsed, d.ItemsPath)
	if err != nil {
		return nil, err
	}
	items, err := convertItems[T](raw)
	if err != nil {
		return nil, err
	}

	page := &Page[T]{Items: items}
	if d.Cursor != nil {
		if page.Next, err = d.Cursor.NextCursor(parsed, cursor); err != nil {
			return nil, err
		}
	}
	if d.TotalPath != "" {
		total, ok, err := lookupInt(parsed, d.TotalPath)
		if err != nil {
			return nil, err
		}
		if ok {
			page.Total = &total
		}
	}
	return page, nil
}

func convertItems[T any](raw []interface{}) ([]T, error) {
	if len(raw) == 0 {
		return []T{}, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrExtraction, "re-encode items")
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.WrapError(
			fmt.Errorf("decode %d items: %w", len(raw), err),
			errors.ErrExtraction,
			"decode items",
		)
	}
	return items, nil
}
