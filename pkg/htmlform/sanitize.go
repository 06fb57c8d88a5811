package htmlform

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// FormPolicy returns a bluemonday policy that keeps form markup and the
// attributes binding relies on while stripping scripts, handlers, and styles.
// The policy is shared; callers needing changes should build their own.
func FormPolicy() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements(
			"form", "fieldset", "legend", "label", "input", "select", "option",
			"optgroup", "textarea", "button", "output", "div", "span", "p",
		)

		policy.AllowAttrs("id", "class").Globally()
		policy.AllowAttrs("method").OnElements("form")
		policy.AllowAttrs("for").OnElements("label", "output")
		policy.AllowAttrs(
			"name", "value", "type", "placeholder", "checked", "disabled",
			"readonly", "required", "autocomplete",
		).OnElements("input")
		policy.AllowAttrs("name", "multiple", "disabled", "required").OnElements("select")
		policy.AllowAttrs("value", "selected", "disabled", "label").OnElements("option")
		policy.AllowAttrs("label", "disabled").OnElements("optgroup")
		policy.AllowAttrs("name", "rows", "cols", "placeholder", "disabled", "readonly", "required").OnElements("textarea")
		policy.AllowAttrs("name", "value", "type", "disabled").OnElements("button")
		policy.AllowAttrs("name").OnElements("output")

		formPolicy = policy
	})
	return formPolicy
}
