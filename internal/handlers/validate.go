package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Validation limits for article fields.
const (
	maxTitleLen    = 300
	maxContentLen  = 100_000
	maxExcerptLen  = 1_000
	maxCategoryLen = 200
	maxURLLen      = 2_000
)

// contentPolicy is the HTML allow-list for editor-produced article content.
// It admits exactly the formatting the toolbar can generate plus links;
// everything else (scripts, styles, images, event attributes) is stripped.
var contentPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "s", "del", "h1", "h2", "ul", "ol", "li", "p", "br")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(false)
	return p
}()

// sanitizeContent strips disallowed HTML from article content.
func sanitizeContent(html string) string {
	return contentPolicy.Sanitize(html)
}

// validateArticle checks article fields and returns the first error found
// as a user-facing message, or "" when valid.
func validateArticle(title, content, excerpt, category string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if strings.TrimSpace(excerpt) == "" {
		return "Excerpt is required."
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "Excerpt is too long (max 1,000 characters)."
	}
	if strings.TrimSpace(category) == "" {
		return "Category is required."
	}
	if utf8.RuneCountInString(category) > maxCategoryLen {
		return "Category is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

// validateCategoryName checks a category name submission.
func validateCategoryName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxCategoryLen {
		return "Name is too long (max 200 characters)."
	}
	return ""
}
