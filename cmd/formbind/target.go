package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbind/pkg/binder"
	"github.com/goliatone/go-formbind/pkg/htmlform"
	"github.com/goliatone/go-formbind/pkg/openapi"
	"github.com/goliatone/go-formbind/pkg/record"
	"github.com/goliatone/go-formbind/pkg/source"
)

// bindFlags selects where a record comes from and which form receives it.
type bindFlags struct {
	record    string
	keyed     bool
	key       string
	html      string
	formID    string
	sanitize  bool
	apiDoc    string
	operation string
	output    string
}

func (f *bindFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.record, "record", "", "record document (file path or URL); Redis is used when empty")
	flags.BoolVar(&f.keyed, "keyed", false, "treat the record document as an object keyed by --key")
	flags.StringVar(&f.key, "key", "", "record lookup key (subscription id)")
	flags.StringVar(&f.html, "html", "", "HTML form markup to fill (file path, or - for stdin)")
	flags.StringVar(&f.formID, "form", "", "restrict binding to the <form> with this id")
	flags.BoolVar(&f.sanitize, "sanitize", false, "sanitize markup before binding")
	flags.StringVar(&f.apiDoc, "openapi", "", "OpenAPI document whose request body defines the form")
	flags.StringVar(&f.operation, "operation", "", "OpenAPI operation id")
	flags.StringVarP(&f.output, "output", "o", "", "output file (stdout if empty)")
}

func (f *bindFlags) validate() error {
	switch {
	case f.html != "" && f.apiDoc != "":
		return errors.New("--html and --openapi are mutually exclusive")
	case f.html == "" && f.apiDoc == "":
		return errors.New("one of --html or --openapi is required")
	case f.apiDoc != "" && f.operation == "":
		return errors.New("--operation is required with --openapi")
	}
	return nil
}

// provider picks the record source: a document when --record is set,
// otherwise the configured Redis.
func (a *app) provider(f *bindFlags) (record.Provider, func(), error) {
	if f.record != "" {
		src, err := source.Parse(f.record)
		if err != nil {
			return nil, nil, err
		}
		options := []record.LoaderOption{record.WithSourceOptions(a.sourceOptions()...)}
		if f.keyed {
			options = append(options, record.WithKeyed())
		}
		return record.NewLoader(src, options...), func() {}, nil
	}
	if a.cfg.Redis.Addr == "" {
		return nil, nil, errors.New("no record source: pass --record or configure redis.addr")
	}
	rdb := a.redisClient()
	return record.NewRedis(rdb, a.cfg.Redis.Prefix), func() { _ = rdb.Close() }, nil
}

// sourceOptions lets record and OpenAPI documents be fetched over HTTP.
func (a *app) sourceOptions() []source.LoaderOption {
	return []source.LoaderOption{source.WithHTTPFallback(a.cfg.API.Timeout)}
}

// form is a bindable context plus the way its bound state is written out.
type form struct {
	ctx   binder.FormContext
	write func(w io.Writer) error
}

func (a *app) form(ctx context.Context, f *bindFlags, stdin io.Reader) (*form, error) {
	if f.apiDoc != "" {
		src, err := source.Parse(f.apiDoc)
		if err != nil {
			return nil, err
		}
		doc, err := openapi.Load(ctx, src, a.sourceOptions()...)
		if err != nil {
			return nil, err
		}
		state, err := openapi.Context(ctx, doc, f.operation, nil)
		if err != nil {
			return nil, err
		}
		return &form{
			ctx: state,
			write: func(w io.Writer) error {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(state.Values())
			},
		}, nil
	}

	in, closeIn, err := openInput(f.html, stdin)
	if err != nil {
		return nil, err
	}
	defer closeIn()

	var options []htmlform.Option
	if f.sanitize {
		options = append(options, htmlform.WithSanitizer(htmlform.FormPolicy()))
	}
	if f.formID != "" {
		options = append(options, htmlform.WithFormSelector(f.formID))
	}
	doc, err := htmlform.Parse(in, options...)
	if err != nil {
		return nil, err
	}
	return &form{ctx: doc, write: doc.Render}, nil
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if strings.TrimSpace(path) == "-" {
		return stdin, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return file, func() { _ = file.Close() }, nil
}

func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
