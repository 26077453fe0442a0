// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Author identifies who wrote an article. It is embedded in the article
// record as a plain value pair, not a foreign key, mirroring the document
// shape the panel was built around.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Article is a news post managed through the admin panel. Content holds
// editor-produced HTML restricted to the sanctioned formatting tags.
// Category is a denormalized copy of a category name; renaming or deleting
// a category does not touch existing articles.
//
// JSON field names follow the panel's wire format (camelCase), which the
// browser views and any external consumers already depend on.
type Article struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Excerpt        string    `json:"excerpt"`
	Category       string    `json:"category"`
	FeaturedImage  string    `json:"featuredImage"`
	ThumbnailImage string    `json:"thumbnailImage"`
	IsFeatured     bool      `json:"isFeatured"`
	PublishDate    time.Time `json:"publishDate"`
	Views          int       `json:"views"`
	Author         Author    `json:"author"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// videoExtensions are file suffixes that mark a featured media URL as video.
var videoExtensions = []string{".mp4", ".webm", ".ogg", ".ogv", ".mov", ".avi", ".mkv", ".m4v"}

// videoMarkers are substrings that mark a URL as video regardless of its
// extension. This is a deliberate heuristic, not a strict check: a non-video
// URL containing the word "video" anywhere is classified as video too.
var videoMarkers = []string{"video", "youtube", "vimeo"}

// IsVideoURL reports whether a featured-media URL should be treated as a
// video. The match is a case-insensitive substring test against known video
// file extensions and hosting markers.
func IsVideoURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	lower := strings.ToLower(rawURL)
	for _, ext := range videoExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	for _, marker := range videoMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// HasVideoFeature reports whether the article's featured media classifies
// as video. When true, the edit form shows the thumbnail image field and
// the preview renders as an embedded player.
func (a *Article) HasVideoFeature() bool {
	return IsVideoURL(a.FeaturedImage)
}
