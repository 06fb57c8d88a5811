package formbind

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-formbind/pkg/binder"
	"github.com/goliatone/go-formbind/pkg/htmlform"
)

// Record aliases binder.Record for callers importing only the root package.
type Record = binder.Record

// Result aliases binder.Result.
type Result = binder.Result

// FormContext aliases binder.FormContext.
type FormContext = binder.FormContext

// NewBinder exposes the binder constructor from the top-level module.
func NewBinder(options ...binder.Option) *binder.Binder {
	return binder.New(options...)
}

// Bind copies record into ctx with a default binder.
func Bind(record Record, ctx FormContext) Result {
	return binder.Bind(record, ctx)
}

type fillConfig struct {
	binder *binder.Binder
	html   []htmlform.Option
}

// FillOption customises FillHTML.
type FillOption func(*fillConfig)

// WithBinder binds through b so its observers see the refill.
func WithBinder(b *binder.Binder) FillOption {
	return func(cfg *fillConfig) {
		if b != nil {
			cfg.binder = b
		}
	}
}

// WithHTMLOptions forwards parse options (sanitizer, form selector) to the
// HTML document.
func WithHTMLOptions(options ...htmlform.Option) FillOption {
	return func(cfg *fillConfig) {
		cfg.html = append(cfg.html, options...)
	}
}

// FillHTML parses markup from r, binds record into its controls, and writes
// the updated document to w. It is the simplest entry point for callers that
// hold server-rendered form markup.
func FillHTML(r io.Reader, w io.Writer, record Record, options ...FillOption) (Result, error) {
	cfg := fillConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	doc, err := htmlform.Parse(r, cfg.html...)
	if err != nil {
		return Result{}, fmt.Errorf("formbind: %w", err)
	}
	result := cfg.binder.Bind(record, doc)
	if err := doc.Render(w); err != nil {
		return result, fmt.Errorf("formbind: render: %w", err)
	}
	return result, nil
}

// FillHTMLString is FillHTML over strings.
func FillHTMLString(markup string, record Record, options ...FillOption) (string, Result, error) {
	var out strings.Builder
	result, err := FillHTML(strings.NewReader(markup), &out, record, options...)
	if err != nil {
		return "", result, err
	}
	return out.String(), result, nil
}
