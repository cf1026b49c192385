package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newJobsServer serves two pages of ingestion jobs and single job lookups.
func newJobsServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/ingestion_jobs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("start") == "p2" {
			fmt.Fprint(w, `{"ingestion_jobs":[{"job_id":"c","status":"failed"}]}`)
			return
		}
		fmt.Fprint(w, `{"ingestion_jobs":[{"job_id":"a","status":"completed"},{"job_id":"b","status":"running"}],
			"next":{"href":"/api/v2/ingestion_jobs?start=p2"}}`)
	})
	mux.HandleFunc("/api/v2/ingestion_jobs/a", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"job_id":"a","status":"completed","target_table":"iceberg.sales.a"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, serviceURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lakectl.yaml")
	data := fmt.Sprintf(`service_url: %s/api/v2
auth:
  type: none
retry:
  max_attempts: 1
`, serviceURL)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestList_FirstPage(t *testing.T) {
	srv := newJobsServer(t)
	cfg := writeConfig(t, srv.URL)

	out, err := run(t, "--config", cfg, "list", "ingestion-jobs", "--fields", "job_id")
	require.NoError(t, err)

	var jobs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &jobs))
	assert.Equal(t, []map[string]interface{}{{"job_id": "a"}, {"job_id": "b"}}, jobs)
}

func TestList_AllWithTransform(t *testing.T) {
	srv := newJobsServer(t)
	cfg := writeConfig(t, srv.URL)

	out, err := run(t, "--config", cfg, "list", "ingestion-jobs", "--all", "--fields", "job_id,status:upper")
	require.NoError(t, err)

	var jobs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &jobs))
	require.Len(t, jobs, 3)
	assert.Equal(t, "c", jobs[2]["job_id"])
	assert.Equal(t, "FAILED", jobs[2]["status"])
}

func TestGet(t *testing.T) {
	srv := newJobsServer(t)
	cfg := writeConfig(t, srv.URL)

	out, err := run(t, "--config", cfg, "get", "ingestion-jobs", "a")
	require.NoError(t, err)

	var job map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &job))
	assert.Equal(t, "iceberg.sales.a", job["target_table"])
}

func TestCommandErrors(t *testing.T) {
	srv := newJobsServer(t)
	cfg := writeConfig(t, srv.URL)

	_, err := run(t, "--config", cfg, "list", "warehouses")
	assert.ErrorContains(t, err, "unknown resource")

	_, err = run(t, "--config", cfg, "get", "spark-engines", "e1")
	assert.ErrorContains(t, err, "use list")

	_, err = run(t, "--config", cfg, "list", "tables", "--catalog", "c")
	assert.ErrorContains(t, err, "engine_id")

	_, err = run(t, "--config", cfg, "list", "schemas", "--catalog", "c", "--engine", "e", "--start", "abc")
	assert.ErrorContains(t, err, "offset")

	_, err = run(t, "--log-format", "xml", "operations")
	assert.Error(t, err)
}

func TestOperations(t *testing.T) {
	out, err := run(t, "operations")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Regexp(t, `list_ingestion_jobs\s+GET\s+/ingestion_jobs\s+href`, out)
	assert.Regexp(t, `list_schemas\s+GET\s+/catalogs/\{catalog_id\}/schemas\s+offset`, out)
	assert.Regexp(t, `delete_ingestion_job\s+DELETE\s+/ingestion_jobs/\{job_id\}\s+-`, out)
}
