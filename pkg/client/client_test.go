package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbind/pkg/client"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Body   []byte
	Header http.Header
}

func newServer(t *testing.T, status int, reply string) (*client.Client, func() []recorded) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []recorded
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   body,
			Header: r.Header.Clone(),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(server.Close)

	c, err := client.New(server.URL+"/api/v1/", client.WithHTTPClient(server.Client()), client.WithHeader("X-Trace", "t1"))
	require.NoError(t, err)
	return c, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), calls...)
	}
}

func TestListMessageTasks_DefaultPagination(t *testing.T) {
	c, snapshot := newServer(t, http.StatusOK, `{"code":0}`)

	_, err := c.ListMessageTasks(context.Background(), nil)
	require.NoError(t, err)
	_, err = c.ListMessageTasks(context.Background(), &client.Page{Offset: 20, Limit: 5})
	require.NoError(t, err)
	_, err = c.ListMessageTasks(context.Background(), &client.Page{Offset: 0, Limit: 0})
	require.NoError(t, err)
	_, err = c.ListMessageTasks(context.Background(), &client.Page{Offset: -1, Limit: -5})
	require.NoError(t, err)

	calls := snapshot()
	require.Len(t, calls, 4)
	assert.Equal(t, "/api/v1/wx/message_tasks", calls[0].Path)
	assert.Equal(t, "limit=10&offset=0", calls[0].Query)
	assert.Equal(t, "limit=5&offset=20", calls[1].Query)
	assert.Equal(t, "limit=10&offset=0", calls[2].Query)
	assert.Equal(t, "limit=-5&offset=-1", calls[3].Query)
	assert.Equal(t, "t1", calls[0].Header.Get("X-Trace"))
}

func TestMessageTaskRoutes(t *testing.T) {
	c, snapshot := newServer(t, http.StatusOK, `{}`)
	ctx := context.Background()
	name := "digest"

	steps := []func() (*client.Response, error){
		func() (*client.Response, error) { return c.GetMessageTask(ctx, 7) },
		func() (*client.Response, error) { return c.RunMessageTask(ctx, 7, true) },
		func() (*client.Response, error) {
			return c.CreateMessageTask(ctx, client.MessageTaskUpdate{Name: &name})
		},
		func() (*client.Response, error) {
			return c.UpdateMessageTask(ctx, 7, client.MessageTaskUpdate{Name: &name})
		},
		func() (*client.Response, error) { return c.RefreshJobs(ctx) },
		func() (*client.Response, error) {
			return c.RefreshJob(ctx, 7, client.MessageTaskUpdate{})
		},
		func() (*client.Response, error) { return c.DeleteMessageTask(ctx, 7) },
	}
	for _, step := range steps {
		_, err := step()
		require.NoError(t, err)
	}

	want := []struct{ method, path, query string }{
		{http.MethodGet, "/api/v1/wx/message_tasks/7", ""},
		{http.MethodGet, "/api/v1/wx/message_tasks/7/run", "isTest=true"},
		{http.MethodPost, "/api/v1/wx/message_tasks", ""},
		{http.MethodPut, "/api/v1/wx/message_tasks/7", ""},
		{http.MethodPut, "/api/v1/wx/message_tasks/job/fresh", ""},
		{http.MethodPut, "/api/v1/wx/message_tasks/job/fresh/7", ""},
		{http.MethodDelete, "/api/v1/wx/message_tasks/7", ""},
	}
	calls := snapshot()
	require.Len(t, calls, len(want))
	for i, w := range want {
		got := calls[i]
		assert.Equal(t, w.method, got.Method, "call %d", i)
		assert.Equal(t, w.path, got.Path, "call %d", i)
		assert.Equal(t, w.query, got.Query, "call %d", i)
	}

	assert.JSONEq(t, `{"name":"digest"}`, string(calls[2].Body))
	assert.Equal(t, "application/json", calls[2].Header.Get("Content-Type"))
	assert.JSONEq(t, `{}`, string(calls[5].Body))
	assert.Empty(t, calls[4].Body)
}

func TestResponseDecode(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{"id":7,"name":"digest","status":1,"cron_exp":"0 8 * * *"}`)

	resp, err := c.GetMessageTask(context.Background(), 7)
	require.NoError(t, err)

	var task client.MessageTask
	require.NoError(t, resp.Decode(&task))
	assert.Equal(t, client.MessageTask{ID: 7, Name: "digest", Status: 1, CronExp: "0 8 * * *"}, task)
}

func TestStatusError(t *testing.T) {
	c, _ := newServer(t, http.StatusNotFound, `{"detail":"missing"}`)

	resp, err := c.GetMessageTask(context.Background(), 99)
	require.Error(t, err)

	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.JSONEq(t, `{"detail":"missing"}`, string(statusErr.Body))
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportArticles(t *testing.T) {
	c, snapshot := newServer(t, http.StatusOK, `{"code":0,"data":"/static/exports/a.zip"}`)

	resp, err := c.ExportArticles(context.Background(), client.ExportParams{
		MpID:    "MP_WXS_1",
		Scope:   "all",
		IDs:     []string{"a1"},
		Formats: []string{"md", "PDF"},
	})
	require.NoError(t, err)

	var result client.ExportResult
	require.NoError(t, resp.Decode(&result))
	assert.Equal(t, "/static/exports/a.zip", result.Data)

	call := snapshot()[0]
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/api/v1/wx/tools/export/articles", call.Path)
	assert.Equal(t, "XMLHttpRequest", call.Header.Get("X-Requested-With"))
	assert.Equal(t, "application/json", call.Header.Get("Accept"))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(call.Body, &payload))
	assert.Equal(t, []any{}, payload["doc_id"])
	assert.Equal(t, true, payload["export_md"])
	assert.Equal(t, false, payload["export_pdf"], "format names match exactly")
	assert.Equal(t, false, payload["export_docx"])
	assert.Equal(t, float64(10), payload["page_size"])
	assert.Equal(t, float64(1), payload["page_count"])
	assert.Equal(t, "", payload["zip_filename"])
}

func TestNewExportRequest_SelectedScope(t *testing.T) {
	req := client.NewExportRequest(client.ExportParams{
		MpID:      "MP_WXS_1",
		Scope:     client.ExportScopeSelected,
		IDs:       []string{"a1", "a2"},
		Limit:     50,
		PageCount: 3,
		Formats:   []string{"docx", "json", "csv"},
	})

	assert.Equal(t, client.ExportRequest{
		MpID:         "MP_WXS_1",
		DocID:        []string{"a1", "a2"},
		PageSize:     50,
		PageCount:    3,
		AddTitle:     true,
		RemoveImages: true,
		ExportDOCX:   true,
		ExportJSON:   true,
		ExportCSV:    true,
	}, req)
}

func TestNewExportRequest_ForwardsNonZeroPaging(t *testing.T) {
	req := client.NewExportRequest(client.ExportParams{Limit: -1, PageCount: -2, Formats: []string{"pdf"}})

	assert.Equal(t, -1, req.PageSize)
	assert.Equal(t, -2, req.PageCount)
	assert.True(t, req.ExportPDF)
	assert.Equal(t, []string{}, req.DocID)
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := client.New("/api/v1")
	require.Error(t, err)
	_, err = client.New("  ")
	require.Error(t, err)
}
