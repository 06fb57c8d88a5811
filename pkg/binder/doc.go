// Package binder copies a flat key-value record into the named controls of a
// form. Callers supply the FormContext explicitly so binding works the same
// against an in-memory stub, a parsed HTML document, or a nested value state.
//
// Binding is best effort: keys without a matching control are skipped and
// reported in the Result, and an absent record is a no-op rather than an
// error. Values are converted with Stringify before assignment so the
// coercion rules are part of the contract.
package binder
