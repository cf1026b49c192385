package lakehouse

import (
	"net/http"
	"sort"

	"github.com/saturnines/lakehouse-sdk/pkg/pagination"
	"github.com/saturnines/lakehouse-sdk/pkg/transport/rest"
)

// Operation names.
const (
	OpListBucketRegistrations  = "list_bucket_registrations"
	OpGetBucketRegistration    = "get_bucket_registration"
	OpCreateBucketRegistration = "create_bucket_registration"
	OpDeleteBucketRegistration = "delete_bucket_registration"
	OpListBucketObjects        = "list_bucket_objects"

	OpListDatabaseRegistrations  = "list_database_registrations"
	OpGetDatabaseRegistration    = "get_database_registration"
	OpCreateDatabaseRegistration = "create_database_registration"
	OpDeleteDatabaseRegistration = "delete_database_registration"

	OpListCatalogs = "list_catalogs"
	OpGetCatalog   = "get_catalog"

	OpListPrestoEngines  = "list_presto_engines"
	OpGetPrestoEngine    = "get_presto_engine"
	OpCreatePrestoEngine = "create_presto_engine"
	OpDeletePrestoEngine = "delete_presto_engine"
	OpPausePrestoEngine  = "pause_presto_engine"
	OpResumePrestoEngine = "resume_presto_engine"

	OpListSparkEngines = "list_spark_engines"

	OpListSchemas  = "list_schemas"
	OpCreateSchema = "create_schema"
	OpDeleteSchema = "delete_schema"

	OpListTables  = "list_tables"
	OpGetTable    = "get_table"
	OpDeleteTable = "delete_table"
	OpRenameTable = "rename_table"

	OpListIngestionJobs  = "list_ingestion_jobs"
	OpGetIngestionJob    = "get_ingestion_job"
	OpCreateIngestionJob = "create_ingestion_job"
	OpDeleteIngestionJob = "delete_ingestion_job"
)

// Paging describes how a listing operation pages.
type Paging struct {
	Kind        string                 // extractor kind registered with pagination.DefaultFactory
	Options     map[string]interface{} // extractor options
	ItemsPath   string                 // dotted path of the item array
	TotalPath   string                 // optional dotted path of the total count
	CursorParam string                 // query parameter that receives the cursor
	SizeParam   string                 // query parameter that receives the page size
}

// Operation is a table entry: the request shape plus paging, if any.
type Operation struct {
	rest.Operation
	Paging *Paging
}

// Paged reports whether the operation supports a pager.
func (op Operation) Paged() bool { return op.Paging != nil }

func hrefPaging(itemsPath, sizeParam string) *Paging {
	return &Paging{
		Kind:        pagination.KindHref,
		Options:     map[string]interface{}{"nextPath": "next.href", "param": "start"},
		ItemsPath:   itemsPath,
		TotalPath:   "total_count",
		CursorParam: "start",
		SizeParam:   sizeParam,
	}
}

func pathParam(name string) rest.Param {
	return rest.Param{Name: name, In: rest.InPath, Required: true}
}

func queryParam(name string) rest.Param {
	return rest.Param{Name: name, In: rest.InQuery}
}

func requiredQuery(name string) rest.Param {
	return rest.Param{Name: name, In: rest.InQuery, Required: true}
}

var bodyParam = rest.Param{Name: "body", In: rest.InBody, Required: true}

var operationTable = []Operation{
	// buckets
	{
		Operation: rest.Operation{
			Name: OpListBucketRegistrations, Method: http.MethodGet, Path: "/bucket_registrations",
			Params: []rest.Param{queryParam("limit"), queryParam("start")},
			Result: "BucketRegistrationCollection",
		},
		Paging: hrefPaging("bucket_registrations", "limit"),
	},
	{Operation: rest.Operation{
		Name: OpGetBucketRegistration, Method: http.MethodGet, Path: "/bucket_registrations/{bucket_id}",
		Params: []rest.Param{pathParam("bucket_id")},
		Result: "BucketRegistration",
	}},
	{Operation: rest.Operation{
		Name: OpCreateBucketRegistration, Method: http.MethodPost, Path: "/bucket_registrations",
		Params: []rest.Param{bodyParam},
		Result: "BucketRegistration",
	}},
	{Operation: rest.Operation{
		Name: OpDeleteBucketRegistration, Method: http.MethodDelete, Path: "/bucket_registrations/{bucket_id}",
		Params: []rest.Param{pathParam("bucket_id")},
	}},
	{
		Operation: rest.Operation{
			Name: OpListBucketObjects, Method: http.MethodGet, Path: "/bucket_registrations/{bucket_id}/objects",
			Params: []rest.Param{pathParam("bucket_id"), queryParam("prefix"), queryParam("max_keys"), queryParam("start_after")},
			Result: "BucketObjectCollection",
		},
		Paging: &Paging{
			Kind:        pagination.KindToken,
			Options:     map[string]interface{}{"nextPath": "next_start_after"},
			ItemsPath:   "objects",
			CursorParam: "start_after",
			SizeParam:   "max_keys",
		},
	},

	// databases
	{
		Operation: rest.Operation{
			Name: OpListDatabaseRegistrations, Method: http.MethodGet, Path: "/database_registrations",
			Params: []rest.Param{queryParam("limit"), queryParam("start")},
			Result: "DatabaseRegistrationCollection",
		},
		Paging: hrefPaging("database_registrations", "limit"),
	},
	{Operation: rest.Operation{
		Name: OpGetDatabaseRegistration, Method: http.MethodGet, Path: "/database_registrations/{database_id}",
		Params: []rest.Param{pathParam("database_id")},
		Result: "DatabaseRegistration",
	}},
	{Operation: rest.Operation{
		Name: OpCreateDatabaseRegistration, Method: http.MethodPost, Path: "/database_registrations",
		Params: []rest.Param{bodyParam},
		Result: "DatabaseRegistration",
	}},
	{Operation: rest.Operation{
		Name: OpDeleteDatabaseRegistration, Method: http.MethodDelete, Path: "/database_registrations/{database_id}",
		Params: []rest.Param{pathParam("database_id")},
	}},

	// catalogs
	{
		Operation: rest.Operation{
			Name: OpListCatalogs, Method: http.MethodGet, Path: "/catalogs",
			Params: []rest.Param{queryParam("limit"), queryParam("start")},
			Result: "CatalogCollection",
		},
		Paging: hrefPaging("catalogs", "limit"),
	},
	{Operation: rest.Operation{
		Name: OpGetCatalog, Method: http.MethodGet, Path: "/catalogs/{catalog_id}",
		Params: []rest.Param{pathParam("catalog_id")},
		Result: "Catalog",
	}},

	// presto engines
	{
		Operation: rest.Operation{
			Name: OpListPrestoEngines, Method: http.MethodGet, Path: "/presto_engines",
			Params: []rest.Param{queryParam("state"), queryParam("limit"), queryParam("start")},
			Result: "PrestoEngineCollection",
		},
		Paging: hrefPaging("presto_engines", "limit"),
	},
	{Operation: rest.Operation{
		Name: OpGetPrestoEngine, Method: http.MethodGet, Path: "/presto_engines/{engine_id}",
		Params: []rest.Param{pathParam("engine_id")},
		Result: "PrestoEngine",
	}},
	{Operation: rest.Operation{
		Name: OpCreatePrestoEngine, Method: http.MethodPost, Path: "/presto_engines",
		Params: []rest.Param{bodyParam},
		Result: "PrestoEngine",
	}},
	{Operation: rest.Operation{
		Name: OpDeletePrestoEngine, Method: http.MethodDelete, Path: "/presto_engines/{engine_id}",
		Params: []rest.Param{pathParam("engine_id")},
	}},
	{Operation: rest.Operation{
		Name: OpPausePrestoEngine, Method: http.MethodPost, Path: "/presto_engines/{engine_id}/pause",
		Params: []rest.Param{pathParam("engine_id")},
		Result: "EngineActionResult",
	}},
	{Operation: rest.Operation{
		Name: OpResumePrestoEngine, Method: http.MethodPost, Path: "/presto_engines/{engine_id}/resume",
		Params: []rest.Param{pathParam("engine_id")},
		Result: "EngineActionResult",
	}},

	// spark engines
	{
		Operation: rest.Operation{
			Name: OpListSparkEngines, Method: http.MethodGet, Path: "/spark_engines",
			Params: []rest.Param{queryParam("limit"), queryParam("start")},
			Result: "SparkEngineCollection",
		},
		Paging: hrefPaging("spark_engines", "limit"),
	},

	// schemas
	{
		Operation: rest.Operation{
			Name: OpListSchemas, Method: http.MethodGet, Path: "/catalogs/{catalog_id}/schemas",
			Params: []rest.Param{pathParam("catalog_id"), requiredQuery("engine_id"), queryParam("limit"), queryParam("offset")},
			Result: "SchemaCollection",
		},
		Paging: &Paging{
			Kind: pagination.KindOffset,
			Options: map[string]interface{}{
				"offsetPath": "offset",
				"limitPath":  "limit",
				"totalPath":  "total_count",
				"itemsPath":  "schemas",
			},
			ItemsPath:   "schemas",
			TotalPath:   "total_count",
			CursorParam: "offset",
			SizeParam:   "limit",
		},
	},
	{Operation: rest.Operation{
		Name: OpCreateSchema, Method: http.MethodPost, Path: "/catalogs/{catalog_id}/schemas",
		Params: []rest.Param{pathParam("catalog_id"), requiredQuery("engine_id"), bodyParam},
		Result: "Schema",
	}},
	{Operation: rest.Operation{
		Name: OpDeleteSchema, Method: http.MethodDelete, Path: "/catalogs/{catalog_id}/schemas/{schema_id}",
		Params: []rest.Param{pathParam("catalog_id"), pathParam("schema_id"), requiredQuery("engine_id")},
	}},

	// tables
	{
		Operation: rest.Operation{
			Name: OpListTables, Method: http.MethodGet, Path: "/catalogs/{catalog_id}/schemas/{schema_id}/tables",
			Params: []rest.Param{pathParam("catalog_id"), pathParam("schema_id"), requiredQuery("engine_id"), queryParam("limit"), queryParam("start")},
			Result: "TableCollection",
		},
		Paging: hrefPaging("tables", "limit"),
	},
	{Operation: rest.Operation{
		Name: OpGetTable, Method: http.MethodGet, Path: "/catalogs/{catalog_id}/schemas/{schema_id}/tables/{table_id}",
		Params: []rest.Param{pathParam("catalog_id"), pathParam("schema_id"), pathParam("table_id"), requiredQuery("engine_id")},
		Result: "Table",
	}},
	{Operation: rest.Operation{
		Name: OpDeleteTable, Method: http.MethodDelete, Path: "/catalogs/{catalog_id}/schemas/{schema_id}/tables/{table_id}",
		Params: []rest.Param{pathParam("catalog_id"), pathParam("schema_id"), pathParam("table_id"), requiredQuery("engine_id")},
	}},
	{Operation: rest.Operation{
		Name: OpRenameTable, Method: http.MethodPatch, Path: "/catalogs/{catalog_id}/schemas/{schema_id}/tables/{table_id}",
		Params: []rest.Param{pathParam("catalog_id"), pathParam("schema_id"), pathParam("table_id"), requiredQuery("engine_id"), bodyParam},
		Result: "Table",
	}},

	// ingestion jobs
	{
		Operation: rest.Operation{
			Name: OpListIngestionJobs, Method: http.MethodGet, Path: "/ingestion_jobs",
			Params: []rest.Param{queryParam("start"), queryParam("jobs_per_page")},
			Result: "IngestionJobCollection",
		},
		Paging: &Paging{
			Kind:        pagination.KindHref,
			Options:     map[string]interface{}{"nextPath": "next.href", "param": "start"},
			ItemsPath:   "ingestion_jobs",
			CursorParam: "start",
			SizeParam:   "jobs_per_page",
		},
	},
	{Operation: rest.Operation{
		Name: OpGetIngestionJob, Method: http.MethodGet, Path: "/ingestion_jobs/{job_id}",
		Params: []rest.Param{pathParam("job_id")},
		Result: "IngestionJob",
	}},
	{Operation: rest.Operation{
		Name: OpCreateIngestionJob, Method: http.MethodPost, Path: "/ingestion_jobs",
		Params: []rest.Param{bodyParam},
		Result: "IngestionJob",
	}},
	{Operation: rest.Operation{
		Name: OpDeleteIngestionJob, Method: http.MethodDelete, Path: "/ingestion_jobs/{job_id}",
		Params: []rest.Param{pathParam("job_id")},
	}},
}

// Operations returns the operation table sorted by name.
func Operations() []Operation {
	ops := make([]Operation, len(operationTable))
	copy(ops, operationTable)
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

func indexOperations(ops []Operation) map[string]Operation {
	m := make(map[string]Operation, len(ops))
	for _, op := range ops {
		m[op.Name] = op
	}
	return m
}
