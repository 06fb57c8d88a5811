package htmlform

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Control is a form element inside a Document.
type Control struct {
	node *html.Node
}

// Tag returns the element name (input, select, ...).
func (c *Control) Tag() string {
	if c == nil || c.node == nil {
		return ""
	}
	return c.node.Data
}

// SetValue assigns value the way the DOM value property would: the value
// attribute for inputs and buttons, the text content for textarea and output,
// and the matching option for select (clearing every option when none match).
func (c *Control) SetValue(value string) {
	if c == nil || c.node == nil {
		return
	}
	switch c.node.DataAtom {
	case atom.Textarea, atom.Output:
		setText(c.node, value)
	case atom.Select:
		selectOption(c.node, value)
	default:
		setAttr(c.node, "value", value)
	}
}

// Value reports the current value using the same rules as SetValue.
func (c *Control) Value() string {
	if c == nil || c.node == nil {
		return ""
	}
	switch c.node.DataAtom {
	case atom.Textarea, atom.Output:
		return textContent(c.node)
	case atom.Select:
		for _, option := range selectOptions(c.node) {
			if _, ok := attrOK(option, "selected"); ok {
				return optionValue(option)
			}
		}
		return ""
	default:
		return attr(c.node, "value")
	}
}

func setText(n *html.Node, value string) {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		n.RemoveChild(child)
		child = next
	}
	if value != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

func selectOption(sel *html.Node, value string) {
	matched := false
	for _, option := range selectOptions(sel) {
		if !matched && optionValue(option) == value {
			setAttr(option, "selected", "")
			matched = true
			continue
		}
		removeAttr(option, "selected")
	}
}

// selectOptions collects option elements, descending into optgroups.
func selectOptions(sel *html.Node) []*html.Node {
	var out []*html.Node
	for child := sel.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.DataAtom {
		case atom.Option:
			out = append(out, child)
		case atom.Optgroup:
			out = append(out, selectOptions(child)...)
		}
	}
	return out
}

func optionValue(option *html.Node) string {
	if value, ok := attrOK(option, "value"); ok {
		return value
	}
	return strings.TrimSpace(textContent(option))
}
