package openapi_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/binder"
	"github.com/goliatone/go-formbind/pkg/openapi"
	"github.com/goliatone/go-formbind/pkg/source"
)

func loadFixture(t *testing.T) openapi.Document {
	t.Helper()
	doc, err := openapi.Load(context.Background(), source.FromFile(filepath.Join("testdata", "message_tasks.yaml")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestFields_FlattensRequestBody(t *testing.T) {
	doc := loadFixture(t)

	fields, err := openapi.Fields(context.Background(), doc, "createMessageTask")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}

	want := []string{
		"cron_exp",
		"message_type",
		"mps_id",
		"name",
		"notify.channel",
		"notify.email",
		"owner.manager",
		"owner.name",
		"tags",
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFields_FormEncodedBody(t *testing.T) {
	fields, err := openapi.Fields(context.Background(), loadFixture(t), "updateMessageTask")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "status"}, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFields_NoRequestBody(t *testing.T) {
	fields, err := openapi.Fields(context.Background(), loadFixture(t), "listMessageTasks")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if len(fields) != 0 {
		t.Fatalf("expected no fields, got %v", fields)
	}
}

func TestFields_UnknownOperation(t *testing.T) {
	_, err := openapi.Fields(context.Background(), loadFixture(t), "missing")
	if !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestContext_BindsIntoNestedState(t *testing.T) {
	state, err := openapi.Context(context.Background(), loadFixture(t), "createMessageTask", nil)
	if err != nil {
		t.Fatalf("context: %v", err)
	}

	result := binder.Bind(binder.Record{
		"name":         "Daily digest",
		"notify.email": "ops@example.com",
		"message_type": 1,
		"web_hook_url": "https://hooks.example.com",
	}, state)

	want := map[string]any{
		"name":         "Daily digest",
		"message_type": "1",
		"notify":       map[string]any{"email": "ops@example.com"},
	}
	if diff := cmp.Diff(want, state.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"web_hook_url"}, result.Skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDocumentValidatesInput(t *testing.T) {
	if _, err := openapi.NewDocument(nil, []byte("x")); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := openapi.NewDocument(source.FromFile("x.yaml"), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
