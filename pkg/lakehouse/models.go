package lakehouse

// NextPage points at the following page of a collection.
type NextPage struct {
	Href  string `json:"href"`
	Start string `json:"start,omitempty"`
}

// BucketCatalog is the catalog a bucket is attached to.
type BucketCatalog struct {
	CatalogName string `json:"catalog_name"`
	CatalogType string `json:"catalog_type"`
}

type BucketRegistration struct {
	BucketID          string         `json:"bucket_id"`
	BucketDisplayName string         `json:"bucket_display_name"`
	BucketType        string         `json:"bucket_type"`
	Description       string         `json:"description,omitempty"`
	ManagedBy         string         `json:"managed_by,omitempty"`
	Region            string         `json:"region,omitempty"`
	State             string         `json:"state,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	AssociatedCatalog *BucketCatalog `json:"associated_catalog,omitempty"`
	CreatedBy         string         `json:"created_by,omitempty"`
	CreatedOn         string         `json:"created_on,omitempty"`
}

type BucketRegistrationCollection struct {
	BucketRegistrations []BucketRegistration `json:"bucket_registrations"`
	Next                *NextPage            `json:"next,omitempty"`
	TotalCount          *int64               `json:"total_count,omitempty"`
	Limit               *int64               `json:"limit,omitempty"`
}

// BucketDetails holds the storage endpoint and credentials of a bucket.
type BucketDetails struct {
	BucketName string `json:"bucket_name"`
	Endpoint   string `json:"endpoint,omitempty"`
	AccessKey  string `json:"access_key,omitempty"`
	SecretKey  string `json:"secret_key,omitempty"`
}

type BucketRegistrationPrototype struct {
	BucketDetails     *BucketDetails `json:"bucket_details,omitempty"`
	BucketDisplayName string         `json:"bucket_display_name,omitempty"`
	BucketType        string         `json:"bucket_type"`
	Description       string         `json:"description"`
	ManagedBy         string         `json:"managed_by"`
	Region            string         `json:"region,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	AssociatedCatalog *BucketCatalog `json:"associated_catalog"`
}

// BucketObject is one object stored in a registered bucket.
type BucketObject struct {
	Path         string `json:"path"`
	Size         int64  `json:"size,omitempty"`
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

type BucketObjectCollection struct {
	Objects        []BucketObject `json:"objects"`
	NextStartAfter string         `json:"next_start_after,omitempty"`
}

type DatabaseDetails struct {
	DatabaseName string `json:"database_name,omitempty"`
	Hostname     string `json:"hostname,omitempty"`
	Port         int64  `json:"port,omitempty"`
	Username     string `json:"username,omitempty"`
	Password     string `json:"password,omitempty"`
	SSL          bool   `json:"ssl,omitempty"`
}

type DatabaseRegistration struct {
	DatabaseID          string           `json:"database_id"`
	DatabaseDisplayName string           `json:"database_display_name"`
	DatabaseType        string           `json:"database_type"`
	DatabaseDetails     *DatabaseDetails `json:"database_details,omitempty"`
	Description         string           `json:"description,omitempty"`
	AssociatedCatalog   *BucketCatalog   `json:"associated_catalog,omitempty"`
	Tags                []string         `json:"tags,omitempty"`
	CreatedBy           string           `json:"created_by,omitempty"`
	CreatedOn           string           `json:"created_on,omitempty"`
}

type DatabaseRegistrationCollection struct {
	DatabaseRegistrations []DatabaseRegistration `json:"database_registrations"`
	Next                  *NextPage              `json:"next,omitempty"`
	TotalCount            *int64                 `json:"total_count,omitempty"`
	Limit                 *int64                 `json:"limit,omitempty"`
}

type DatabaseRegistrationPrototype struct {
	DatabaseDisplayName string           `json:"database_display_name"`
	DatabaseType        string           `json:"database_type"`
	DatabaseDetails     *DatabaseDetails `json:"database_details,omitempty"`
	Description         string           `json:"description,omitempty"`
	AssociatedCatalog   *BucketCatalog   `json:"associated_catalog,omitempty"`
	Tags                []string         `json:"tags,omitempty"`
}

type Catalog struct {
	CatalogName       string   `json:"catalog_name"`
	CatalogType       string   `json:"catalog_type,omitempty"`
	Description       string   `json:"description,omitempty"`
	AssociatedBuckets []string `json:"associated_buckets,omitempty"`
	AssociatedEngines []string `json:"associated_engines,omitempty"`
	SyncStatus        string   `json:"sync_status,omitempty"`
	CreatedBy         string   `json:"created_by,omitempty"`
	CreatedOn         string   `json:"created_on,omitempty"`
}

type CatalogCollection struct {
	Catalogs   []Catalog `json:"catalogs"`
	Next       *NextPage `json:"next,omitempty"`
	TotalCount *int64    `json:"total_count,omitempty"`
	Limit      *int64    `json:"limit,omitempty"`
}

// NodeDescription sizes the coordinator or worker nodes of an engine.
type NodeDescription struct {
	NodeType string `json:"node_type,omitempty"`
	Quantity int64  `json:"quantity,omitempty"`
}

type PrestoEngine struct {
	EngineID           string           `json:"engine_id"`
	EngineDisplayName  string           `json:"engine_display_name"`
	Origin             string           `json:"origin,omitempty"`
	Status             string           `json:"status,omitempty"`
	Version            string           `json:"version,omitempty"`
	SizeConfig         string           `json:"size_config,omitempty"`
	Coordinator        *NodeDescription `json:"coordinator,omitempty"`
	Worker             *NodeDescription `json:"worker,omitempty"`
	AssociatedCatalogs []string         `json:"associated_catalogs,omitempty"`
	Description        string           `json:"description,omitempty"`
	Tags               []string         `json:"tags,omitempty"`
	CreatedBy          string           `json:"created_by,omitempty"`
	CreatedOn          int64            `json:"created_on,omitempty"`
}

type PrestoEngineCollection struct {
	PrestoEngines []PrestoEngine `json:"presto_engines"`
	Next          *NextPage      `json:"next,omitempty"`
	TotalCount    *int64         `json:"total_count,omitempty"`
	Limit         *int64         `json:"limit,omitempty"`
}

type PrestoEnginePrototype struct {
	EngineDisplayName  string           `json:"engine_display_name"`
	Origin             string           `json:"origin"`
	Version            string           `json:"version,omitempty"`
	SizeConfig         string           `json:"size_config,omitempty"`
	Coordinator        *NodeDescription `json:"coordinator,omitempty"`
	Worker             *NodeDescription `json:"worker,omitempty"`
	AssociatedCatalogs []string         `json:"associated_catalogs,omitempty"`
	Description        string           `json:"description,omitempty"`
	Tags               []string         `json:"tags,omitempty"`
}

// EngineActionResult is returned by pause and resume.
type EngineActionResult struct {
	Message     string `json:"message,omitempty"`
	MessageCode string `json:"message_code,omitempty"`
}

type SparkEngine struct {
	EngineID          string   `json:"engine_id"`
	EngineDisplayName string   `json:"engine_display_name"`
	Origin            string   `json:"origin,omitempty"`
	Status            string   `json:"status,omitempty"`
	Type              string   `json:"type,omitempty"`
	Description       string   `json:"description,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	CreatedBy         string   `json:"created_by,omitempty"`
	CreatedOn         int64    `json:"created_on,omitempty"`
}

type SparkEngineCollection struct {
	SparkEngines []SparkEngine `json:"spark_engines"`
	Next         *NextPage     `json:"next,omitempty"`
	TotalCount   *int64        `json:"total_count,omitempty"`
	Limit        *int64        `json:"limit,omitempty"`
}

type Schema struct {
	SchemaID   string `json:"schema_id,omitempty"`
	SchemaName string `json:"schema_name"`
	CatalogID  string `json:"catalog_id,omitempty"`
}

// SchemaCollection is offset paged.
type SchemaCollection struct {
	Schemas    []Schema `json:"schemas"`
	Offset     int64    `json:"offset"`
	Limit      int64    `json:"limit"`
	TotalCount *int64   `json:"total_count,omitempty"`
}

type SchemaPrototype struct {
	SchemaName string `json:"schema_name"`
	CustomPath string `json:"custom_path,omitempty"`
	BucketName string `json:"bucket_name,omitempty"`
}

type Column struct {
	ColumnName string `json:"column_name"`
	Type       string `json:"type"`
	Comment    string `json:"comment,omitempty"`
	Extra      string `json:"extra,omitempty"`
	Length     string `json:"length,omitempty"`
	Scale      string `json:"scale,omitempty"`
	Precision  string `json:"precision,omitempty"`
}

type Table struct {
	TableName string   `json:"table_name"`
	TableType string   `json:"table_type,omitempty"`
	SchemaID  string   `json:"schema_id,omitempty"`
	CatalogID string   `json:"catalog_id,omitempty"`
	Columns   []Column `json:"columns,omitempty"`
}

type TableCollection struct {
	Tables     []Table   `json:"tables"`
	Next       *NextPage `json:"next,omitempty"`
	TotalCount *int64    `json:"total_count,omitempty"`
	Limit      *int64    `json:"limit,omitempty"`
}

// TablePatch renames a table.
type TablePatch struct {
	TableName string `json:"table_name"`
}

type IngestionJobCSVProperty struct {
	Encoding       string `json:"encoding,omitempty"`
	Escape         string `json:"escape,omitempty"`
	FieldDelimiter string `json:"field_delimiter,omitempty"`
	Header         bool   `json:"header,omitempty"`
	LineDelimiter  string `json:"line_delimiter,omitempty"`
}

type IngestionJob struct {
	JobID             string                   `json:"job_id"`
	SourceDataFiles   string                   `json:"source_data_files"`
	TargetTable       string                   `json:"target_table"`
	SourceFileType    string                   `json:"source_file_type,omitempty"`
	CSVProperty       *IngestionJobCSVProperty `json:"csv_property,omitempty"`
	EngineID          string                   `json:"engine_id,omitempty"`
	InstanceID        string                   `json:"instance_id,omitempty"`
	Status            string                   `json:"status,omitempty"`
	Details           string                   `json:"details,omitempty"`
	CreateIfNotExist  bool                     `json:"create_if_not_exist,omitempty"`
	PartitionBy       string                   `json:"partition_by,omitempty"`
	Schema            string                   `json:"schema,omitempty"`
	StartTimestamp    string                   `json:"start_timestamp,omitempty"`
	EndTimestamp      string                   `json:"end_timestamp,omitempty"`
	Username          string                   `json:"username,omitempty"`
	ValidateCSVHeader bool                     `json:"validate_csv_header,omitempty"`
}

type IngestionJobCollection struct {
	IngestionJobs []IngestionJob `json:"ingestion_jobs"`
	Next          *NextPage      `json:"next,omitempty"`
	First         *NextPage      `json:"first,omitempty"`
	Limit         *int64         `json:"limit,omitempty"`
}

type IngestionJobPrototype struct {
	JobID             string                   `json:"job_id"`
	SourceDataFiles   string                   `json:"source_data_files"`
	TargetTable       string                   `json:"target_table"`
	Username          string                   `json:"username"`
	EngineID          string                   `json:"engine_id,omitempty"`
	SourceFileType    string                   `json:"source_file_type,omitempty"`
	CSVProperty       *IngestionJobCSVProperty `json:"csv_property,omitempty"`
	CreateIfNotExist  bool                     `json:"create_if_not_exist,omitempty"`
	PartitionBy       string                   `json:"partition_by,omitempty"`
	Schema            string                   `json:"schema,omitempty"`
	ValidateCSVHeader bool                     `json:"validate_csv_header,omitempty"`
}
