package htmlform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formbind/pkg/binder"
)

// Document wraps a parsed HTML tree. It is not safe for concurrent use.
type Document struct {
	root  *html.Node
	scope *html.Node
}

var _ binder.FormContext = (*Document)(nil)

type options struct {
	sanitizer *bluemonday.Policy
	formID    string
}

// Option configures Parse.
type Option func(*options)

// WithSanitizer runs the markup through policy before parsing.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(o *options) {
		o.sanitizer = policy
	}
}

// WithFormSelector restricts lookups to the <form> element with the given id.
func WithFormSelector(id string) Option {
	return func(o *options) {
		o.formID = strings.TrimSpace(id)
	}
}

// ErrFormNotFound is returned when WithFormSelector names a form that does not
// exist in the document.
var ErrFormNotFound = errors.New("htmlform: form not found")

// Parse reads an HTML document from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	if r == nil {
		return nil, errors.New("htmlform: reader is nil")
	}
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.sanitizer != nil {
		var buf bytes.Buffer
		if err := cfg.sanitizer.SanitizeReaderToWriter(r, &buf); err != nil {
			return nil, fmt.Errorf("htmlform: sanitize: %w", err)
		}
		r = &buf
	}

	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmlform: parse: %w", err)
	}

	doc := &Document{root: root, scope: root}
	if cfg.formID != "" {
		form := findElement(root, func(n *html.Node) bool {
			return n.DataAtom == atom.Form && attr(n, "id") == cfg.formID
		})
		if form == nil {
			return nil, fmt.Errorf("%w: #%s", ErrFormNotFound, cfg.formID)
		}
		doc.scope = form
	}
	return doc, nil
}

// ParseString is Parse over a string.
func ParseString(markup string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(markup), opts...)
}

// Lookup implements binder.FormContext.
func (d *Document) Lookup(name string) (binder.Control, bool) {
	if d == nil || d.scope == nil {
		return nil, false
	}
	node := findElement(d.scope, func(n *html.Node) bool {
		if !isControl(n) {
			return false
		}
		value, ok := attrOK(n, "name")
		return ok && value == name
	})
	if node == nil {
		return nil, false
	}
	return &Control{node: node}, true
}

// Render writes the document, including any bound values, to w.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.root == nil {
		return errors.New("htmlform: document is empty")
	}
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func isControl(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Input, atom.Textarea, atom.Select, atom.Button, atom.Output:
		return true
	}
	return false
}

// findElement returns the first element in document order, starting at and
// including root, for which match returns true.
func findElement(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && match(root) {
		return root
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	value, _ := attrOK(n, key)
	return value
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}
