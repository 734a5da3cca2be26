package catalog

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce   sync.Once
	strictPolicy *bluemonday.Policy
	helpPolicy   *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
		helpPolicy = bluemonday.UGCPolicy()
		helpPolicy.RequireNoFollowOnLinks(true)
		helpPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
	return strictPolicy, helpPolicy
}

// sanitizeText strips all markup and returns plain text.
func sanitizeText(raw string) string {
	strict, _ := policies()
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(raw)))
}

// sanitizeHelp keeps safe formatting and links and drops everything else.
func sanitizeHelp(raw string) string {
	_, help := policies()
	return strings.TrimSpace(help.Sanitize(raw))
}
