package lakehouse

import (
	"context"
	"fmt"
	"maps"
	"strconv"

	"github.com/saturnines/lakehouse-sdk/pkg/errors"
	"github.com/saturnines/lakehouse-sdk/pkg/pagination"
	"github.com/saturnines/lakehouse-sdk/pkg/transport/rest"
)

// NewPager builds a pager for any paged operation in the table. opts is
// defaulted in place and validated before the pager is returned.
func NewPager[T any](s *Service, operation string, opts ListOptions) (*pagination.Pager[T], error) {
	op, ok := s.ops[operation]
	if !ok {
		return nil, errors.WrapError(
			fmt.Errorf("unknown operation %q", operation),
			errors.ErrValidation,
			"create pager",
		)
	}
	if !op.Paged() {
		return nil, errors.WrapError(
			fmt.Errorf("operation %q is not paged", operation),
			errors.ErrConfiguration,
			"create pager",
		)
	}
	if opts == nil {
		return nil, errors.WrapError(
			fmt.Errorf("options are required"),
			errors.ErrValidation,
			operation,
		)
	}

	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	extractor, err := pagination.DefaultFactory.CreateExtractor(op.Paging.Kind, op.Paging.Options)
	if err != nil {
		return nil, err
	}
	decoder := pagination.Decoder{
		ItemsPath: op.Paging.ItemsPath,
		TotalPath: op.Paging.TotalPath,
		Cursor:    extractor,
	}

	base := baseParams(op.Paging, opts)

	list := func(ctx context.Context, cursor string) (*pagination.Page[T], error) {
		params := maps.Clone(base)
		if cursor != "" {
			params[op.Paging.CursorParam] = cursor
		}
		resp, err := s.client.Invoke(ctx, op.Operation, params, nil)
		if err != nil {
			return nil, err
		}
		return pagination.Decode[T](decoder, resp.RawResult, cursor)
	}

	pagerOpts := []pagination.Option{
		pagination.WithName(operation),
		pagination.WithLogger(s.logger),
	}
	if s.metrics != nil {
		pagerOpts = append(pagerOpts, pagination.WithPageHook(s.metrics.ObservePage))
	}

	return pagination.NewFrom(list, opts.StartCursor(), pagerOpts...), nil
}

// baseParams is the request parameters shared by every page.
func baseParams(p *Paging, opts ListOptions) rest.Params {
	params := maps.Clone(opts.Params())
	if params == nil {
		params = rest.Params{}
	}
	if size := opts.PageSize(); size != nil && p.SizeParam != "" {
		params[p.SizeParam] = strconv.FormatInt(*size, 10)
	}
	return params
}

func NewBucketRegistrationsPager(s *Service, opts *ListBucketRegistrationsOptions) (*pagination.Pager[BucketRegistration], error) {
	o := ListBucketRegistrationsOptions{}
	if opts != nil {
		o = *opts
	}
	return NewPager[BucketRegistration](s, OpListBucketRegistrations, &o)
}

func NewBucketObjectsPager(s *Service, opts *ListBucketObjectsOptions) (*pagination.Pager[BucketObject], error) {
	o := ListBucketObjectsOptions{}
	if opts != nil {
		o = *opts
	}
	return NewPager[BucketObject](s, OpListBucketObjects, &o)
}

func NewDatabaseRegistrationsPager(s *Service, opts *ListDatabaseRegistrationsOptions) (*pagination.Pager[DatabaseRegistration], error) {
	o := ListDatabaseRegistrationsOptions{}
	if opts != nil {
		o = *opts
	}
	return NewPager[DatabaseRegistration](s, OpListDatabaseRegistrations, &o)
}

func NewCatalogsPager(s *Service, opts *ListCatalogsOptions) (*pagination.Pager[Catalog], error) {
	o := ListCatalogsOptions{}
	if opts != nil {
		o = *opts
	}
	return NewPager[Catalog](s, OpListCatalogs, &o)
}

func NewPrestoEnginesPager(s *Service, opts *ListPrestoEnginesOptions) (*pagination.Pager[PrestoEngine], error) {
	o := ListPrestoEnginesOptions{}
	if opts != nil {
		o = *opts
	}
	return NewPager[PrestoEngine](s, OpListPrestoEngines, &o)
}

func NewSparkEnginesPager(s *Service, opts *ListSparkEnginesOptions) (*pagination.Pager[SparkEngine], error) {
	o := ListSparkEnginesOptions{}
	if opts != nil {
		o = *opts
	}
	return NewPager[SparkEngine](s, OpListSparkEngines, &o)
}

func NewSchemasPager(s *Service, opts *ListSchemasOptions) (*pagination.Pager[Schema], error) {
	o := ListSchemasOptions{}
	if opts != nil {
		o = *opts
	}
	return NewPager[Schema](s, OpListSchemas, &o)
}

func NewTablesPager(s *Service, opts *ListTablesOptions) (*pagination.Pager[Table], error) {
	o := ListTablesOptions{}
	if opts != nil {
		o = *opts
	}
	return NewPager[Table](s, OpListTables, &o)
}

// NewIngestionJobsPager pages through ingestion jobs using the start token
// carried in each response's next.href.
func NewIngestionJobsPager(s *Service, opts *ListIngestionJobsOptions) (*pagination.Pager[IngestionJob], error) {
	o := ListIngestionJobsOptions{}
	if opts != nil {
		o = *opts
	}
	return NewPager[IngestionJob](s, OpListIngestionJobs, &o)
}
