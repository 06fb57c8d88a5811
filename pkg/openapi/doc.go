// Package openapi derives bindable field names from an OpenAPI operation's
// request body so records can be bound into the value state that feeds a
// generated form, with unknown keys reported as skipped.
package openapi
