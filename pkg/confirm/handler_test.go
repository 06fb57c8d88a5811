package confirm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/binder"
	"github.com/goliatone/go-formbind/pkg/confirm"
	"github.com/goliatone/go-formbind/pkg/formctx"
	"github.com/goliatone/go-formbind/pkg/record"
)

type fakeDriver struct {
	answer  bool
	err     error
	prompts []string
	infos   []string
}

func (d *fakeDriver) Confirm(_ context.Context, cfg confirm.ConfirmConfig) (bool, error) {
	d.prompts = append(d.prompts, cfg.Message)
	return d.answer, d.err
}

func (d *fakeDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestHandle_BindsRecord(t *testing.T) {
	form := formctx.NewMemory("company", "plan")
	var observed binder.Result
	handler := &confirm.Handler{
		Provider: record.Static{"sub-1": {"company": "Acme", "tier": "gold"}},
		Binder: binder.New(binder.WithObserver(binder.ObserverFunc(func(_ binder.Record, r binder.Result) {
			observed = r
		}))),
		Context: confirm.Static(form),
		Key:     "sub-1",
	}

	result, err := handler.Handle(context.Background())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	want := binder.Result{Applied: []string{"company"}, Skipped: []string{"tier"}}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, observed); diff != "" {
		t.Fatalf("observer saw a different result (-want +got):\n%s", diff)
	}
	if got, _ := form.Value("company"); got != "Acme" {
		t.Fatalf("company = %q", got)
	}
}

func TestHandle_AbsentRecordIsNoop(t *testing.T) {
	form := formctx.NewMemory("company")
	handler := &confirm.Handler{
		Provider: record.Static{},
		Context:  confirm.Static(form),
		Key:      "missing",
	}

	result, err := handler.Handle(context.Background())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !result.Empty() || form.Writes() != 0 {
		t.Fatalf("expected no-op, got %+v with %d writes", result, form.Writes())
	}
}

func TestHandle_ProviderError(t *testing.T) {
	boom := errors.New("boom")
	handler := &confirm.Handler{
		Provider: record.ProviderFunc(func(context.Context, string) (binder.Record, error) {
			return nil, boom
		}),
		Context: confirm.Static(formctx.NewMemory()),
	}
	if _, err := handler.Handle(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

func TestHandle_RequiresCollaborators(t *testing.T) {
	if _, err := (&confirm.Handler{}).Handle(context.Background()); err == nil {
		t.Fatalf("expected error without provider")
	}
	if _, err := (&confirm.Handler{Provider: record.Static{}}).Handle(context.Background()); err == nil {
		t.Fatalf("expected error without context")
	}
}

func TestConfirm(t *testing.T) {
	newHandler := func(form *formctx.Memory) *confirm.Handler {
		return &confirm.Handler{
			Provider: record.Static{"k": {"company": "Acme"}},
			Context:  confirm.Static(form),
			Key:      "k",
		}
	}

	t.Run("declined", func(t *testing.T) {
		form := formctx.NewMemory("company")
		driver := &fakeDriver{answer: false}
		_, confirmed, err := confirm.Confirm(context.Background(), driver, "Restore?", newHandler(form))
		if err != nil || confirmed {
			t.Fatalf("expected declined without error, got %v %v", confirmed, err)
		}
		if form.Writes() != 0 {
			t.Fatalf("declined confirmation must not bind")
		}
	})

	t.Run("accepted", func(t *testing.T) {
		form := formctx.NewMemory("company")
		driver := &fakeDriver{answer: true}
		result, confirmed, err := confirm.Confirm(context.Background(), driver, "Restore?", newHandler(form))
		if err != nil || !confirmed {
			t.Fatalf("expected confirmation, got %v %v", confirmed, err)
		}
		if !result.IsApplied("company") {
			t.Fatalf("expected company to be applied, got %+v", result)
		}
		if diff := cmp.Diff([]string{"Restored 1 field(s)."}, driver.infos); diff != "" {
			t.Fatalf("info mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("aborted", func(t *testing.T) {
		driver := &fakeDriver{err: confirm.ErrAborted}
		_, _, err := confirm.Confirm(context.Background(), driver, "Restore?", newHandler(formctx.NewMemory()))
		if !errors.Is(err, confirm.ErrAborted) {
			t.Fatalf("expected ErrAborted, got %v", err)
		}
	})
}

func TestSummary(t *testing.T) {
	cases := map[string]binder.Result{
		"No saved values to restore.": {},
		"Restored 2 field(s), skipped 1 without a matching field.": {
			Applied: []string{"a", "b"},
			Skipped: []string{"c"},
		},
	}
	for want, result := range cases {
		if got := confirm.Summary(result); got != want {
			t.Fatalf("Summary(%+v) = %q, want %q", result, got, want)
		}
	}
}
