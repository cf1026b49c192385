package pagination

import (
	"testing"

	"github.com/saturnines/lakehouse-sdk/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	m, err := parseBody([]byte(body))
	require.NoError(t, err)
	return m
}

func TestHrefExtractor(t *testing.T) {
	ex := NewHrefExtractor("", "")

	tests := []struct {
		name string
		body string
		want string
	}{
		{"next link", `{"next":{"href":"https://lake.example.com/v2/ingestion_jobs?start=abc&jobs_per_page=10"}}`, "abc"},
		{"missing next", `{"ingestion_jobs":[]}`, ""},
		{"null next", `{"next":null}`, ""},
		{"blank href", `{"next":{"href":"  "}}`, ""},
		{"link without start", `{"next":{"href":"https://lake.example.com/v2/ingestion_jobs"}}`, ""},
		{"blank start", `{"next":{"href":"https://lake.example.com/v2/ingestion_jobs?start="}}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ex.NextCursor(mustParse(t, tt.body), "")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("custom param", func(t *testing.T) {
		ex := NewHrefExtractor("links.next", "page_token")
		got, err := ex.NextCursor(mustParse(t, `{"links":{"next":"/v2/tables?page_token=t2"}}`), "")
		require.NoError(t, err)
		require.Equal(t, "t2", got)
	})
}

func TestTokenExtractor(t *testing.T) {
	ex := NewTokenExtractor("meta.next")

	got, err := ex.NextCursor(mustParse(t, `{"meta":{"next":"tok1"}}`), "")
	require.NoError(t, err)
	require.Equal(t, "tok1", got)

	got, err = ex.NextCursor(mustParse(t, `{"meta":{"next":null}}`), "")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = ex.NextCursor(mustParse(t, `{"meta":{}}`), "")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = ex.NextCursor(mustParse(t, `{"meta":{"next":42}}`), "")
	require.NoError(t, err)
	require.Equal(t, "42", got)

	_, err = ex.NextCursor(mustParse(t, `{"meta":{"next":{"nested":true}}}`), "")
	require.ErrorIs(t, err, errors.ErrExtraction)
}

func TestOffsetExtractor(t *testing.T) {
	ex := &OffsetExtractor{OffsetPath: "offset", LimitPath: "limit", TotalPath: "total_count", ItemsPath: "objects"}

	tests := []struct {
		name string
		body string
		want string
	}{
		{"more with total", `{"objects":[1,2],"offset":0,"limit":2,"total_count":5}`, "2"},
		{"last with total", `{"objects":[5],"offset":4,"limit":2,"total_count":5}`, ""},
		{"full page no total", `{"objects":[1,2],"offset":2,"limit":2}`, "4"},
		{"short page no total", `{"objects":[1],"offset":2,"limit":2}`, ""},
		{"empty page", `{"objects":[],"offset":4,"limit":2,"total_count":9}`, ""},
		{"string numbers", `{"objects":[1,2],"offset":"0","limit":"2","total_count":"3"}`, "2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ex.NextCursor(mustParse(t, tt.body), "")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("offset taken from the request cursor", func(t *testing.T) {
		cursors := []struct {
			current string
			body    string
			want    string
		}{
			{"", `{"objects":[1,2],"limit":2,"total_count":5}`, "2"},
			{"2", `{"objects":[3,4],"limit":2,"total_count":5}`, "4"},
			{"4", `{"objects":[5],"limit":2,"total_count":5}`, ""},
		}
		for _, c := range cursors {
			got, err := ex.NextCursor(mustParse(t, c.body), c.current)
			require.NoError(t, err)
			require.Equal(t, c.want, got, "cursor %q", c.current)
		}
	})

	t.Run("body offset wins over the request cursor", func(t *testing.T) {
		got, err := ex.NextCursor(mustParse(t, `{"objects":[1,2],"offset":6,"limit":2}`), "2")
		require.NoError(t, err)
		require.Equal(t, "8", got)
	})

	t.Run("non numeric request cursor", func(t *testing.T) {
		_, err := ex.NextCursor(mustParse(t, `{"objects":[1,2],"limit":2}`), "abc")
		require.ErrorIs(t, err, errors.ErrExtraction)
	})
}

type table struct {
	Name string `json:"table_name"`
}

func TestDecode(t *testing.T) {
	d := Decoder{
		ItemsPath: "tables",
		TotalPath: "total_count",
		Cursor:    NewHrefExtractor("", ""),
	}

	page, err := Decode[table](d, []byte(`{
		"tables":[{"table_name":"orders"},{"table_name":"customers"}],
		"total_count": 7,
		"next":{"href":"https://lake.example.com/v2/tables?start=t2"}
	}`), "")
	require.NoError(t, err)
	require.Equal(t, []table{{"orders"}, {"customers"}}, page.Items)
	require.Equal(t, "t2", page.Next)
	require.NotNil(t, page.Total)
	assert.EqualValues(t, 7, *page.Total)

	t.Run("missing items is an empty page", func(t *testing.T) {
		page, err := Decode[table](d, []byte(`{"total_count":0}`), "")
		require.NoError(t, err)
		require.NotNil(t, page.Items)
		require.Empty(t, page.Items)
		require.Empty(t, page.Next)
	})

	t.Run("root array", func(t *testing.T) {
		page, err := Decode[table](Decoder{}, []byte(`[{"table_name":"a"}]`), "")
		require.NoError(t, err)
		require.Equal(t, []table{{"a"}}, page.Items)
		require.Nil(t, page.Total)
	})

	t.Run("items not an array", func(t *testing.T) {
		_, err := Decode[table](d, []byte(`{"tables":{"table_name":"x"}}`), "")
		require.ErrorIs(t, err, errors.ErrExtraction)
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := Decode[table](d, []byte(`{"tables":`), "")
		require.ErrorIs(t, err, errors.ErrHTTPResponse)
	})
}

func TestLookup(t *testing.T) {
	body := mustParse(t, `{"meta":{"count":42,"pages":[{"id":"p1"},{"id":"p2"}]}}`)

	v, ok := lookup(body, "meta.pages[-1].id")
	require.True(t, ok)
	require.Equal(t, "p2", v)

	v, ok = lookup(body, "meta.pages[0].id")
	require.True(t, ok)
	require.Equal(t, "p1", v)

	_, ok = lookup(body, "meta.pages[5].id")
	require.False(t, ok)

	_, ok = lookup(body, "meta.pages[x]")
	require.False(t, ok)

	n, ok, err := lookupInt(body, "meta.count")
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 42, n)
}
