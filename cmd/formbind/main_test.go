package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFill_HTML(t *testing.T) {
	dir := t.TempDir()
	htmlPath := writeFile(t, dir, "form.html", `<form id="sub"><input name="company"><input name="seats"></form>`)
	recPath := writeFile(t, dir, "records.yaml", "acme:\n  company: Acme\n  seats: 12\n  tier: gold\n")
	metricsPath := filepath.Join(dir, "metrics.prom")

	out, err := execute(t, "fill",
		"--record", recPath, "--keyed", "--key", "acme",
		"--html", htmlPath, "--form", "sub",
		"--metrics-file", metricsPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, `<input name="company" value="Acme"/>`)
	assert.Contains(t, out, `<input name="seats" value="12"/>`)

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "formbind_keys_applied_total 2")
	assert.Contains(t, string(metrics), "formbind_keys_skipped_total 1")
}

func TestFill_UnknownKeyLeavesFormUntouched(t *testing.T) {
	dir := t.TempDir()
	htmlPath := writeFile(t, dir, "form.html", `<form><input name="company" value="keep"></form>`)
	recPath := writeFile(t, dir, "records.yaml", "acme:\n  company: Acme\n")

	out, err := execute(t, "fill", "--record", recPath, "--keyed", "--key", "globex", "--html", htmlPath)
	require.NoError(t, err)
	assert.Contains(t, out, `<input name="company" value="keep"/>`)
}

func TestFill_OpenAPI(t *testing.T) {
	dir := t.TempDir()
	recPath := writeFile(t, dir, "task.json", `{"name":"Daily","cron_exp":"0 9 * * *","unknown":true}`)

	out, err := execute(t, "fill",
		"--record", recPath,
		"--openapi", filepath.Join("..", "..", "pkg", "openapi", "testdata", "message_tasks.yaml"),
		"--operation", "createMessageTask",
	)
	require.NoError(t, err)

	var values map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	assert.Equal(t, map[string]any{"name": "Daily", "cron_exp": "0 9 * * *"}, values)
}

func TestFill_RequiresTarget(t *testing.T) {
	_, err := execute(t, "fill", "--record", "missing.json")
	require.Error(t, err)
}

func TestConfirm_AssumeYes(t *testing.T) {
	dir := t.TempDir()
	htmlPath := writeFile(t, dir, "form.html", `<form><textarea name="note"></textarea></form>`)
	recPath := writeFile(t, dir, "record.json", `{"note":"a<b"}`)

	out, err := execute(t, "confirm", "--yes", "--record", recPath, "--html", htmlPath)
	require.NoError(t, err)
	assert.Contains(t, out, `<textarea name="note">a&lt;b</textarea>`)
}

func TestTasksList(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		_, _ = io.WriteString(w, `{"code":0,"data":[]}`)
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, "tasks", "list", "--base-url", srv.URL+"/api/v1")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/wx/message_tasks", gotPath)
	assert.Equal(t, "limit=10&offset=0", gotQuery)
	assert.Equal(t, "{\"code\":0,\"data\":[]}\n", out)
}

func TestTasksGet_InvalidID(t *testing.T) {
	_, err := execute(t, "tasks", "get", "abc")
	require.Error(t, err)
}

func TestExport(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&payload)
		_, _ = io.WriteString(w, `{"code":0,"data":"/exports/a.zip"}`)
	}))
	t.Cleanup(srv.Close)

	_, err := execute(t, "export", "--base-url", srv.URL, "--mp-id", "MP1", "--format", "md,pdf")
	require.NoError(t, err)
	assert.Equal(t, "MP1", payload["mp_id"])
	assert.Equal(t, []any{}, payload["doc_id"])
	assert.Equal(t, true, payload["export_md"])
	assert.Equal(t, true, payload["export_pdf"])
	assert.Equal(t, false, payload["export_csv"])
}

func TestParseTaskData(t *testing.T) {
	data, err := parseTaskData(`{"name":"Daily","status":1}`)
	require.NoError(t, err)
	require.NotNil(t, data.Name)
	assert.Equal(t, "Daily", *data.Name)
	require.NotNil(t, data.Status)
	assert.Equal(t, 1, *data.Status)

	_, err = parseTaskData(`{"bogus":1}`)
	assert.Error(t, err)
}
