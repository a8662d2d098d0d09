// Package htmlsanitize cleans user supplied HTML before it is rendered.
package htmlsanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

// policy is safe for concurrent use once built.
var policy = bluemonday.UGCPolicy()

// Sanitize strips scripts, event handlers and unsafe URLs from s.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}

	return policy.Sanitize(s)
}

// HTML sanitizes s and marks the result as safe for html/template.
func HTML(s string) template.HTML {
	return template.HTML(Sanitize(s)) //nolint:gosec
}
