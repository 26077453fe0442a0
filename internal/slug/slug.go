// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

// Package slug normalizes uploaded filenames into URL-safe object names.
package slug

import (
	"regexp"
	"strings"
)

// Upload filenames arrive with spaces, dots, and underscores as word
// separators ("press_photo_final", "hero.image.v2"), so all of them map
// to hyphens before the remaining junk is stripped.
var (
	separators = regexp.MustCompile(`[\s._]+`)
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// maxLen caps object names so S3 keys stay readable; filenames from
// phone cameras and screenshot tools can run absurdly long.
const maxLen = 64

// Generate converts a filename stem into a lowercase hyphenated slug.
// Returns "" when nothing survives, e.g. an all-CJK name.
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = separators.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	return s
}
