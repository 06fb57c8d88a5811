// Package htmlform exposes a parsed HTML document as a binder.FormContext so
// records can be written into server-rendered forms before they reach the
// browser. Lookup follows querySelector(`[name="key"]`) semantics restricted
// to form controls: the first matching element in document order wins.
package htmlform
