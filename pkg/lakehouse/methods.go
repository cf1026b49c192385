package lakehouse

import (
	"context"
	"fmt"

	"github.com/saturnines/lakehouse-sdk/pkg/errors"
	"github.com/saturnines/lakehouse-sdk/pkg/transport/rest"
)

// listPage fetches a single page of a listing operation.
func listPage[C any](ctx context.Context, s *Service, name string, opts ListOptions) (*C, *rest.DetailedResponse, error) {
	op, ok := s.ops[name]
	if !ok || !op.Paged() {
		return nil, nil, errors.WrapError(
			fmt.Errorf("operation %q is not a listing", name),
			errors.ErrConfiguration,
			"list",
		)
	}
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	params := baseParams(op.Paging, opts)
	if cursor := opts.StartCursor(); cursor != "" {
		params[op.Paging.CursorParam] = cursor
	}
	return invoke[C](ctx, s, name, params)
}

func (s *Service) ListBucketRegistrations(ctx context.Context, opts *ListBucketRegistrationsOptions) (*BucketRegistrationCollection, *rest.DetailedResponse, error) {
	o := ListBucketRegistrationsOptions{}
	if opts != nil {
		o = *opts
	}
	return listPage[BucketRegistrationCollection](ctx, s, OpListBucketRegistrations, &o)
}

func (s *Service) GetBucketRegistration(ctx context.Context, bucketID string) (*BucketRegistration, *rest.DetailedResponse, error) {
	return invoke[BucketRegistration](ctx, s, OpGetBucketRegistration, rest.Params{"bucket_id": bucketID})
}

func (s *Service) CreateBucketRegistration(ctx context.Context, bucket *BucketRegistrationPrototype) (*BucketRegistration, *rest.DetailedResponse, error) {
	return invoke[BucketRegistration](ctx, s, OpCreateBucketRegistration, rest.Params{"body": bodyOf(bucket)})
}

func (s *Service) DeleteBucketRegistration(ctx context.Context, bucketID string) (*rest.DetailedResponse, error) {
	return s.Invoke(ctx, OpDeleteBucketRegistration, rest.Params{"bucket_id": bucketID}, nil)
}

func (s *Service) ListBucketObjects(ctx context.Context, opts *ListBucketObjectsOptions) (*BucketObjectCollection, *rest.DetailedResponse, error) {
	o := ListBucketObjectsOptions{}
	if opts != nil {
		o = *opts
	}
	return listPage[BucketObjectCollection](ctx, s, OpListBucketObjects, &o)
}

func (s *Service) ListDatabaseRegistrations(ctx context.Context, opts *ListDatabaseRegistrationsOptions) (*DatabaseRegistrationCollection, *rest.DetailedResponse, error) {
	o := ListDatabaseRegistrationsOptions{}
	if opts != nil {
		o = *opts
	}
	return listPage[DatabaseRegistrationCollection](ctx, s, OpListDatabaseRegistrations, &o)
}

func (s *Service) GetDatabaseRegistration(ctx context.Context, databaseID string) (*DatabaseRegistration, *rest.DetailedResponse, error) {
	return invoke[DatabaseRegistration](ctx, s, OpGetDatabaseRegistration, rest.Params{"database_id": databaseID})
}

func (s *Service) CreateDatabaseRegistration(ctx context.Context, db *DatabaseRegistrationPrototype) (*DatabaseRegistration, *rest.DetailedResponse, error) {
	return invoke[DatabaseRegistration](ctx, s, OpCreateDatabaseRegistration, rest.Params{"body": bodyOf(db)})
}

func (s *Service) DeleteDatabaseRegistration(ctx context.Context, databaseID string) (*rest.DetailedResponse, error) {
	return s.Invoke(ctx, OpDeleteDatabaseRegistration, rest.Params{"database_id": databaseID}, nil)
}

func (s *Service) ListCatalogs(ctx context.Context, opts *ListCatalogsOptions) (*CatalogCollection, *rest.DetailedResponse, error) {
	o := ListCatalogsOptions{}
	if opts != nil {
		o = *opts
	}
	return listPage[CatalogCollection](ctx, s, OpListCatalogs, &o)
}

func (s *Service) GetCatalog(ctx context.Context, catalogID string) (*Catalog, *rest.DetailedResponse, error) {
	return invoke[Catalog](ctx, s, OpGetCatalog, rest.Params{"catalog_id": catalogID})
}

func (s *Service) ListPrestoEngines(ctx context.Context, opts *ListPrestoEnginesOptions) (*PrestoEngineCollection, *rest.DetailedResponse, error) {
	o := ListPrestoEnginesOptions{}
	if opts != nil {
		o = *opts
	}
	return listPage[PrestoEngineCollection](ctx, s, OpListPrestoEngines, &o)
}

func (s *Service) GetPrestoEngine(ctx context.Context, engineID string) (*PrestoEngine, *rest.DetailedResponse, error) {
	return invoke[PrestoEngine](ctx, s, OpGetPrestoEngine, rest.Params{"engine_id": engineID})
}

func (s *Service) CreatePrestoEngine(ctx context.Context, engine *PrestoEnginePrototype) (*PrestoEngine, *rest.DetailedResponse, error) {
	return invoke[PrestoEngine](ctx, s, OpCreatePrestoEngine, rest.Params{"body": bodyOf(engine)})
}

func (s *Service) DeletePrestoEngine(ctx context.Context, engineID string) (*rest.DetailedResponse, error) {
	return s.Invoke(ctx, OpDeletePrestoEngine, rest.Params{"engine_id": engineID}, nil)
}

func (s *Service) PausePrestoEngine(ctx context.Context, engineID string) (*EngineActionResult, *rest.DetailedResponse, error) {
	return invoke[EngineActionResult](ctx, s, OpPausePrestoEngine, rest.Params{"engine_id": engineID})
}

func (s *Service) ResumePrestoEngine(ctx context.Context, engineID string) (*EngineActionResult, *rest.DetailedResponse, error) {
	return invoke[EngineActionResult](ctx, s, OpResumePrestoEngine, rest.Params{"engine_id": engineID})
}

func (s *Service) ListSparkEngines(ctx context.Context, opts *ListSparkEnginesOptions) (*SparkEngineCollection, *rest.DetailedResponse, error) {
	o := ListSparkEnginesOptions{}
	if opts != nil {
		o = *opts
	}
	return listPage[SparkEngineCollection](ctx, s, OpListSparkEngines, &o)
}

func (s *Service) ListSchemas(ctx context.Context, opts *ListSchemasOptions) (*SchemaCollection, *rest.DetailedResponse, error) {
	o := ListSchemasOptions{}
	if opts != nil {
		o = *opts
	}
	return listPage[SchemaCollection](ctx, s, OpListSchemas, &o)
}

func (s *Service) CreateSchema(ctx context.Context, catalogID, engineID string, schema *SchemaPrototype) (*Schema, *rest.DetailedResponse, error) {
	return invoke[Schema](ctx, s, OpCreateSchema, rest.Params{
		"catalog_id": catalogID,
		"engine_id":  engineID,
		"body":       bodyOf(schema),
	})
}

func (s *Service) DeleteSchema(ctx context.Context, catalogID, schemaID, engineID string) (*rest.DetailedResponse, error) {
	return s.Invoke(ctx, OpDeleteSchema, rest.Params{
		"catalog_id": catalogID,
		"schema_id":  schemaID,
		"engine_id":  engineID,
	}, nil)
}

func (s *Service) ListTables(ctx context.Context, opts *ListTablesOptions) (*TableCollection, *rest.DetailedResponse, error) {
	o := ListTablesOptions{}
	if opts != nil {
		o = *opts
	}
	return listPage[TableCollection](ctx, s, OpListTables, &o)
}

// TableRef addresses one table.
type TableRef struct {
	CatalogID string
	SchemaID  string
	TableID   string
	EngineID  string
}

func (r TableRef) params() rest.Params {
	return rest.Params{
		"catalog_id": r.CatalogID,
		"schema_id":  r.SchemaID,
		"table_id":   r.TableID,
		"engine_id":  r.EngineID,
	}
}

func (s *Service) GetTable(ctx context.Context, ref TableRef) (*Table, *rest.DetailedResponse, error) {
	return invoke[Table](ctx, s, OpGetTable, ref.params())
}

func (s *Service) DeleteTable(ctx context.Context, ref TableRef) (*rest.DetailedResponse, error) {
	return s.Invoke(ctx, OpDeleteTable, ref.params(), nil)
}

// RenameTable patches the table name and returns the updated table.
func (s *Service) RenameTable(ctx context.Context, ref TableRef, newName string) (*Table, *rest.DetailedResponse, error) {
	if newName == "" {
		return nil, nil, errors.WrapError(fmt.Errorf("new table name is required"), errors.ErrValidation, OpRenameTable)
	}
	params := ref.params()
	params["body"] = &TablePatch{TableName: newName}
	return invoke[Table](ctx, s, OpRenameTable, params)
}

func (s *Service) ListIngestionJobs(ctx context.Context, opts *ListIngestionJobsOptions) (*IngestionJobCollection, *rest.DetailedResponse, error) {
	o := ListIngestionJobsOptions{}
	if opts != nil {
		o = *opts
	}
	return listPage[IngestionJobCollection](ctx, s, OpListIngestionJobs, &o)
}

func (s *Service) GetIngestionJob(ctx context.Context, jobID string) (*IngestionJob, *rest.DetailedResponse, error) {
	return invoke[IngestionJob](ctx, s, OpGetIngestionJob, rest.Params{"job_id": jobID})
}

func (s *Service) CreateIngestionJob(ctx context.Context, job *IngestionJobPrototype) (*IngestionJob, *rest.DetailedResponse, error) {
	return invoke[IngestionJob](ctx, s, OpCreateIngestionJob, rest.Params{"body": bodyOf(job)})
}

func (s *Service) DeleteIngestionJob(ctx context.Context, jobID string) (*rest.DetailedResponse, error) {
	return s.Invoke(ctx, OpDeleteIngestionJob, rest.Params{"job_id": jobID}, nil)
}

// bodyOf turns a nil prototype pointer into an absent parameter.
func bodyOf[T any](v *T) any {
	if v == nil {
		return nil
	}
	return v
}
