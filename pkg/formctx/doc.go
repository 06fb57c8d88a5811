// Package formctx provides FormContext implementations that do not need a
// rendering surface: Memory for tests and previews, and State for collecting
// bound values into a nested map keyed by dotted paths.
package formctx
