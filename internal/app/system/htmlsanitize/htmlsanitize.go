// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe HTML from user-submitted content.
// Project descriptions accept limited formatting; everything else
// (scripts, event handlers, javascript: URLs) is removed before storage.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows common formatting tags and safe links. Built once; the
// bluemonday policy is safe for concurrent use.
var policy = bluemonday.UGCPolicy()

// Sanitize returns s with disallowed tags and attributes removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
