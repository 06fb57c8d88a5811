// Package confirm is the entry point invoked when a user confirms a dialog:
// it looks up the subscription record, binds it into the active form, and
// lets the binder's observers report the outcome. The prompt driver lets the
// same flow run from a terminal.
package confirm
