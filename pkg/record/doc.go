// Package record provides subscription-info providers: lookups that return the
// flat binder.Record to restore into a form, or nothing. "No data" is an
// expected outcome and is reported as a nil record with a nil error; errors
// are reserved for failures such as unreadable sources or unreachable stores.
package record
