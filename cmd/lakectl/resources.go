package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/saturnines/lakehouse-sdk/pkg/lakehouse"
)

// scopeFlags address resources nested under a bucket, catalog or schema.
type scopeFlags struct {
	bucket  string
	catalog string
	schema  string
	engine  string
}

type listFlags struct {
	scopeFlags
	pageSize int64
	start    string
	prefix   string
	state    []string
}

func (f *listFlags) size() *int64 {
	if f.pageSize <= 0 {
		return nil
	}
	v := f.pageSize
	return &v
}

type resource struct {
	listOp  string
	getOp   string
	idParam string
	options func(f *listFlags) (lakehouse.ListOptions, error)
}

var resources = map[string]resource{
	"buckets": {
		listOp: lakehouse.OpListBucketRegistrations, getOp: lakehouse.OpGetBucketRegistration, idParam: "bucket_id",
		options: func(f *listFlags) (lakehouse.ListOptions, error) {
			return &lakehouse.ListBucketRegistrationsOptions{Limit: f.size(), Start: f.start}, nil
		},
	},
	"bucket-objects": {
		listOp: lakehouse.OpListBucketObjects,
		options: func(f *listFlags) (lakehouse.ListOptions, error) {
			return &lakehouse.ListBucketObjectsOptions{BucketID: f.bucket, Prefix: f.prefix, MaxKeys: f.size(), StartAfter: f.start}, nil
		},
	},
	"databases": {
		listOp: lakehouse.OpListDatabaseRegistrations, getOp: lakehouse.OpGetDatabaseRegistration, idParam: "database_id",
		options: func(f *listFlags) (lakehouse.ListOptions, error) {
			return &lakehouse.ListDatabaseRegistrationsOptions{Limit: f.size(), Start: f.start}, nil
		},
	},
	"catalogs": {
		listOp: lakehouse.OpListCatalogs, getOp: lakehouse.OpGetCatalog, idParam: "catalog_id",
		options: func(f *listFlags) (lakehouse.ListOptions, error) {
			return &lakehouse.ListCatalogsOptions{Limit: f.size(), Start: f.start}, nil
		},
	},
	"presto-engines": {
		listOp: lakehouse.OpListPrestoEngines, getOp: lakehouse.OpGetPrestoEngine, idParam: "engine_id",
		options: func(f *listFlags) (lakehouse.ListOptions, error) {
			return &lakehouse.ListPrestoEnginesOptions{State: f.state, Limit: f.size(), Start: f.start}, nil
		},
	},
	"spark-engines": {
		listOp: lakehouse.OpListSparkEngines,
		options: func(f *listFlags) (lakehouse.ListOptions, error) {
			return &lakehouse.ListSparkEnginesOptions{Limit: f.size(), Start: f.start}, nil
		},
	},
	"schemas": {
		listOp: lakehouse.OpListSchemas,
		options: func(f *listFlags) (lakehouse.ListOptions, error) {
			o := &lakehouse.ListSchemasOptions{CatalogID: f.catalog, EngineID: f.engine, Limit: f.size()}
			if f.start != "" {
				offset, err := strconv.ParseInt(f.start, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("schemas page by offset, --start must be a number: %w", err)
				}
				o.Offset = &offset
			}
			return o, nil
		},
	},
	"tables": {
		listOp: lakehouse.OpListTables, getOp: lakehouse.OpGetTable, idParam: "table_id",
		options: func(f *listFlags) (lakehouse.ListOptions, error) {
			return &lakehouse.ListTablesOptions{
				CatalogID: f.catalog, SchemaID: f.schema, EngineID: f.engine,
				Limit: f.size(), Start: f.start,
			}, nil
		},
	},
	"ingestion-jobs": {
		listOp: lakehouse.OpListIngestionJobs, getOp: lakehouse.OpGetIngestionJob, idParam: "job_id",
		options: func(f *listFlags) (lakehouse.ListOptions, error) {
			return &lakehouse.ListIngestionJobsOptions{JobsPerPage: f.size(), Start: f.start}, nil
		},
	},
}

func resourceNames() []string {
	names := make([]string, 0, len(resources))
	for n := range resources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupResource(name string) (resource, error) {
	r, ok := resources[name]
	if !ok {
		return resource{}, fmt.Errorf("unknown resource %q, expected one of: %s", name, strings.Join(resourceNames(), ", "))
	}
	return r, nil
}
