package confirm

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formbind/pkg/binder"
	"github.com/goliatone/go-formbind/pkg/record"
)

// ContextFunc supplies the form the record is bound into. It is resolved on
// every confirmation so callers can hand over the currently active form.
type ContextFunc func(ctx context.Context) (binder.FormContext, error)

// Handler wires a record provider to a form through a binder.
type Handler struct {
	Provider record.Provider
	Binder   *binder.Binder
	Context  ContextFunc
	// Key selects the record to restore (for example a subscription id).
	Key string
}

// Handle runs one confirmation: look up, then bind. An absent record binds
// nothing and is not an error. Provider and context failures are returned.
func (h *Handler) Handle(ctx context.Context) (binder.Result, error) {
	if h == nil || h.Provider == nil {
		return binder.Result{}, errors.New("confirm: provider is required")
	}
	if h.Context == nil {
		return binder.Result{}, errors.New("confirm: form context is required")
	}

	rec, err := h.Provider.Lookup(ctx, h.Key)
	if err != nil {
		return binder.Result{}, fmt.Errorf("confirm: lookup %q: %w", h.Key, err)
	}

	form, err := h.Context(ctx)
	if err != nil {
		return binder.Result{}, fmt.Errorf("confirm: resolve form: %w", err)
	}

	return h.Binder.Bind(rec, form), nil
}

// Static returns a ContextFunc that always yields form.
func Static(form binder.FormContext) ContextFunc {
	return func(context.Context) (binder.FormContext, error) {
		return form, nil
	}
}

// Confirm asks driver to confirm message and runs handler on yes. The bool
// reports whether the user confirmed.
func Confirm(ctx context.Context, driver PromptDriver, message string, handler *Handler) (binder.Result, bool, error) {
	if driver == nil {
		return binder.Result{}, false, errors.New("confirm: prompt driver is nil")
	}
	ok, err := driver.Confirm(ctx, ConfirmConfig{Message: message, Default: true})
	if err != nil {
		return binder.Result{}, false, err
	}
	if !ok {
		return binder.Result{}, false, nil
	}
	result, err := handler.Handle(ctx)
	if err != nil {
		return binder.Result{}, true, err
	}
	if err := driver.Info(ctx, Summary(result)); err != nil {
		return result, true, err
	}
	return result, true, nil
}

// Summary renders a one-line description of a bind result.
func Summary(result binder.Result) string {
	if result.Empty() {
		return "No saved values to restore."
	}
	msg := fmt.Sprintf("Restored %d field(s)", len(result.Applied))
	if len(result.Skipped) > 0 {
		msg += fmt.Sprintf(", skipped %d without a matching field", len(result.Skipped))
	}
	return msg + "."
}
