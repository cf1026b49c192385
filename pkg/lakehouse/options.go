package lakehouse

import (
	"strconv"
	"strings"

	"github.com/saturnines/lakehouse-sdk/pkg/config"
	"github.com/saturnines/lakehouse-sdk/pkg/errors"
	"github.com/saturnines/lakehouse-sdk/pkg/transport/rest"
)

// Page size bounds shared by listing operations.
const (
	DefaultPageSize    int64 = 100
	MaxPageSize        int64 = 1000
	DefaultJobsPerPage int64 = 50
	MaxJobsPerPage     int64 = 100
)

// ListOptions is implemented by every listing options struct.
type ListOptions interface {
	// ApplyDefaults fills unset optional fields in place.
	ApplyDefaults()
	Validate() error
	// Params returns the request parameters other than cursor and page size.
	Params() rest.Params
	PageSize() *int64
	// StartCursor is the cursor of the first page, "" for the beginning.
	StartCursor() string
}

func int64Ptr(v int64) *int64 { return &v }

type problems config.ValidationErrors

func (p *problems) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		*p = append(*p, config.ValidationError{Field: field, Message: "is required"})
	}
}

func (p *problems) pageSize(field string, v *int64, limit int64) {
	if v == nil {
		return
	}
	if *v < 1 || *v > limit {
		*p = append(*p, config.ValidationError{
			Field:   field,
			Message: "must be between 1 and " + strconv.FormatInt(limit, 10),
		})
	}
}

func (p problems) err(operation string) error {
	if len(p) == 0 {
		return nil
	}
	return errors.WrapError(config.ValidationErrors(p), errors.ErrValidation, operation+" options")
}

// ListBucketRegistrationsOptions lists registered buckets.
// Limit defaults to DefaultPageSize.
type ListBucketRegistrationsOptions struct {
	Limit *int64
	Start string
}

func (o *ListBucketRegistrationsOptions) ApplyDefaults() {
	if o.Limit == nil {
		o.Limit = int64Ptr(DefaultPageSize)
	}
}

func (o *ListBucketRegistrationsOptions) Validate() error {
	var p problems
	p.pageSize("limit", o.Limit, MaxPageSize)
	return p.err(OpListBucketRegistrations)
}

func (o *ListBucketRegistrationsOptions) Params() rest.Params { return rest.Params{} }
func (o *ListBucketRegistrationsOptions) PageSize() *int64    { return o.Limit }
func (o *ListBucketRegistrationsOptions) StartCursor() string { return o.Start }

// ListBucketObjectsOptions lists objects in one bucket, optionally under
// Prefix. BucketID is required. MaxKeys defaults to DefaultPageSize.
type ListBucketObjectsOptions struct {
	BucketID   string
	Prefix     string
	MaxKeys    *int64
	StartAfter string
}

func (o *ListBucketObjectsOptions) ApplyDefaults() {
	if o.MaxKeys == nil {
		o.MaxKeys = int64Ptr(DefaultPageSize)
	}
}

func (o *ListBucketObjectsOptions) Validate() error {
	var p problems
	p.required("bucket_id", o.BucketID)
	p.pageSize("max_keys", o.MaxKeys, MaxPageSize)
	return p.err(OpListBucketObjects)
}

func (o *ListBucketObjectsOptions) Params() rest.Params {
	return rest.Params{"bucket_id": o.BucketID, "prefix": o.Prefix}
}

func (o *ListBucketObjectsOptions) PageSize() *int64    { return o.MaxKeys }
func (o *ListBucketObjectsOptions) StartCursor() string { return o.StartAfter }

// ListDatabaseRegistrationsOptions lists registered databases.
// Limit defaults to DefaultPageSize.
type ListDatabaseRegistrationsOptions struct {
	Limit *int64
	Start string
}

func (o *ListDatabaseRegistrationsOptions) ApplyDefaults() {
	if o.Limit == nil {
		o.Limit = int64Ptr(DefaultPageSize)
	}
}

func (o *ListDatabaseRegistrationsOptions) Validate() error {
	var p problems
	p.pageSize("limit", o.Limit, MaxPageSize)
	return p.err(OpListDatabaseRegistrations)
}

func (o *ListDatabaseRegistrationsOptions) Params() rest.Params { return rest.Params{} }
func (o *ListDatabaseRegistrationsOptions) PageSize() *int64    { return o.Limit }
func (o *ListDatabaseRegistrationsOptions) StartCursor() string { return o.Start }

// ListCatalogsOptions lists catalogs. Limit defaults to DefaultPageSize.
type ListCatalogsOptions struct {
	Limit *int64
	Start string
}

func (o *ListCatalogsOptions) ApplyDefaults() {
	if o.Limit == nil {
		o.Limit = int64Ptr(DefaultPageSize)
	}
}

func (o *ListCatalogsOptions) Validate() error {
	var p problems
	p.pageSize("limit", o.Limit, MaxPageSize)
	return p.err(OpListCatalogs)
}

func (o *ListCatalogsOptions) Params() rest.Params { return rest.Params{} }
func (o *ListCatalogsOptions) PageSize() *int64    { return o.Limit }
func (o *ListCatalogsOptions) StartCursor() string { return o.Start }

// ListPrestoEnginesOptions lists Presto engines, optionally filtered by
// State (e.g. running, paused). Limit defaults to DefaultPageSize.
type ListPrestoEnginesOptions struct {
	State []string
	Limit *int64
	Start string
}

func (o *ListPrestoEnginesOptions) ApplyDefaults() {
	if o.Limit == nil {
		o.Limit = int64Ptr(DefaultPageSize)
	}
}

func (o *ListPrestoEnginesOptions) Validate() error {
	var p problems
	for _, s := range o.State {
		p.required("state", s)
	}
	p.pageSize("limit", o.Limit, MaxPageSize)
	return p.err(OpListPrestoEngines)
}

func (o *ListPrestoEnginesOptions) Params() rest.Params {
	return rest.Params{"state": o.State}
}

func (o *ListPrestoEnginesOptions) PageSize() *int64    { return o.Limit }
func (o *ListPrestoEnginesOptions) StartCursor() string { return o.Start }

// ListSparkEnginesOptions lists Spark engines. Limit defaults to DefaultPageSize.
type ListSparkEnginesOptions struct {
	Limit *int64
	Start string
}

func (o *ListSparkEnginesOptions) ApplyDefaults() {
	if o.Limit == nil {
		o.Limit = int64Ptr(DefaultPageSize)
	}
}

func (o *ListSparkEnginesOptions) Validate() error {
	var p problems
	p.pageSize("limit", o.Limit, MaxPageSize)
	return p.err(OpListSparkEngines)
}

func (o *ListSparkEnginesOptions) Params() rest.Params { return rest.Params{} }
func (o *ListSparkEnginesOptions) PageSize() *int64    { return o.Limit }
func (o *ListSparkEnginesOptions) StartCursor() string { return o.Start }

// ListSchemasOptions lists the schemas of a catalog as seen by an engine.
// CatalogID and EngineID are required. Schemas page by offset; Offset
// starts the pager part way through. Limit defaults to DefaultPageSize.
type ListSchemasOptions struct {
	CatalogID string
	EngineID  string
	Limit     *int64
	Offset    *int64
}

func (o *ListSchemasOptions) ApplyDefaults() {
	if o.Limit == nil {
		o.Limit = int64Ptr(DefaultPageSize)
	}
}

func (o *ListSchemasOptions) Validate() error {
	var p problems
	p.required("catalog_id", o.CatalogID)
	p.required("engine_id", o.EngineID)
	p.pageSize("limit", o.Limit, MaxPageSize)
	if o.Offset != nil && *o.Offset < 0 {
		p = append(p, config.ValidationError{Field: "offset", Message: "must not be negative"})
	}
	return p.err(OpListSchemas)
}

func (o *ListSchemasOptions) Params() rest.Params {
	return rest.Params{"catalog_id": o.CatalogID, "engine_id": o.EngineID}
}

func (o *ListSchemasOptions) PageSize() *int64 { return o.Limit }

func (o *ListSchemasOptions) StartCursor() string {
	if o.Offset == nil || *o.Offset == 0 {
		return ""
	}
	return strconv.FormatInt(*o.Offset, 10)
}

// ListTablesOptions lists the tables of one schema. CatalogID, SchemaID and
// EngineID are required. Limit defaults to DefaultPageSize.
type ListTablesOptions struct {
	CatalogID string
	SchemaID  string
	EngineID  string
	Limit     *int64
	Start     string
}

func (o *ListTablesOptions) ApplyDefaults() {
	if o.Limit == nil {
		o.Limit = int64Ptr(DefaultPageSize)
	}
}

func (o *ListTablesOptions) Validate() error {
	var p problems
	p.required("catalog_id", o.CatalogID)
	p.required("schema_id", o.SchemaID)
	p.required("engine_id", o.EngineID)
	p.pageSize("limit", o.Limit, MaxPageSize)
	return p.err(OpListTables)
}

func (o *ListTablesOptions) Params() rest.Params {
	return rest.Params{"catalog_id": o.CatalogID, "schema_id": o.SchemaID, "engine_id": o.EngineID}
}

func (o *ListTablesOptions) PageSize() *int64    { return o.Limit }
func (o *ListTablesOptions) StartCursor() string { return o.Start }

// ListIngestionJobsOptions lists ingestion jobs of the configured instance.
// JobsPerPage defaults to DefaultJobsPerPage and may not exceed
// MaxJobsPerPage.
type ListIngestionJobsOptions struct {
	JobsPerPage *int64
	Start       string
}

func (o *ListIngestionJobsOptions) ApplyDefaults() {
	if o.JobsPerPage == nil {
		o.JobsPerPage = int64Ptr(DefaultJobsPerPage)
	}
}

func (o *ListIngestionJobsOptions) Validate() error {
	var p problems
	p.pageSize("jobs_per_page", o.JobsPerPage, MaxJobsPerPage)
	return p.err(OpListIngestionJobs)
}

func (o *ListIngestionJobsOptions) Params() rest.Params { return rest.Params{} }
func (o *ListIngestionJobsOptions) PageSize() *int64    { return o.JobsPerPage }
func (o *ListIngestionJobsOptions) StartCursor() string { return o.Start }
