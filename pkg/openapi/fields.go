package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbind/pkg/formctx"
)

// ErrOperationNotFound is returned when the requested operationId does not
// exist in the document.
var ErrOperationNotFound = errors.New("openapi: operation not found")

var preferredMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Fields returns the dotted property paths of the operation's request body,
// sorted ascending. Nested objects are flattened ("author.email"); arrays
// contribute their own path only. Operations without a request body yield an
// empty slice.
func Fields(ctx context.Context, doc Document, operationID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	api, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(api, operationID)
	if operation == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil {
		return []string{}, nil
	}

	paths := make([]string, 0)
	collectPaths(schema, "", map[*openapi3.Schema]bool{}, map[string]bool{}, &paths)
	sort.Strings(paths)
	return dedupeSorted(paths), nil
}

// Context builds a formctx.State whose controls are the operation's request
// body fields, seeded with prefill.
func Context(ctx context.Context, doc Document, operationID string, prefill map[string]any) (*formctx.State, error) {
	fields, err := Fields(ctx, doc, operationID)
	if err != nil {
		return nil, err
	}
	return formctx.NewState(fields, prefill), nil
}

func findOperation(api *openapi3.T, operationID string) *openapi3.Operation {
	if api == nil || api.Paths == nil || operationID == "" {
		return nil
	}
	for _, item := range api.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range preferredMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// collectPaths walks object properties, following allOf members. Schemas and
// $refs already on the current branch are emitted as leaves so recursive
// definitions terminate.
func collectPaths(schema *openapi3.Schema, prefix string, visiting map[*openapi3.Schema]bool, refs map[string]bool, out *[]string) {
	if schema == nil || visiting[schema] {
		return
	}
	visiting[schema] = true
	defer delete(visiting, schema)

	for name, property := range schema.Properties {
		if property == nil {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		child := property.Value
		recursive := visiting[child] || (property.Ref != "" && refs[property.Ref])
		if child == nil || recursive || !isObject(child) || (len(child.Properties) == 0 && len(child.AllOf) == 0) {
			*out = append(*out, path)
			continue
		}
		if property.Ref != "" {
			refs[property.Ref] = true
		}
		collectPaths(child, path, visiting, refs, out)
		if property.Ref != "" {
			delete(refs, property.Ref)
		}
	}

	for _, member := range schema.AllOf {
		if member != nil {
			collectPaths(member.Value, prefix, visiting, refs, out)
		}
	}
}

func dedupeSorted(values []string) []string {
	if len(values) < 2 {
		return values
	}
	out := values[:1]
	for _, value := range values[1:] {
		if value != out[len(out)-1] {
			out = append(out, value)
		}
	}
	return out
}

func isObject(schema *openapi3.Schema) bool {
	if schema.Type == nil || len(schema.Type.Slice()) == 0 {
		return len(schema.Properties) > 0 || len(schema.AllOf) > 0
	}
	return schema.Type.Is(openapi3.TypeObject)
}
