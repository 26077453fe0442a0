// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"

	"newsdesk/internal/models"
	"newsdesk/internal/storage"
	"newsdesk/internal/store"
)

// MediaCleanup removes stored files that belonged to a deleted article.
// Cleanup is best-effort: a failure leaves an orphaned object behind but
// never blocks the delete itself.
type MediaCleanup struct {
	media   *store.MediaStore
	storage *storage.Client
}

// NewMediaCleanup creates a MediaCleanup. storageClient may be nil when
// object storage is not configured; cleanup then only logs and returns.
func NewMediaCleanup(media *store.MediaStore, storageClient *storage.Client) *MediaCleanup {
	return &MediaCleanup{media: media, storage: storageClient}
}

// ArticleDeleted releases the media referenced by a deleted article: for
// each file URL that resolves into our storage, the metadata row goes
// first, then the object and its thumbnail. URLs pointing elsewhere
// (embeds, hotlinks) are left alone.
func (c *MediaCleanup) ArticleDeleted(ctx context.Context, article *models.Article) {
	if c == nil || c.storage == nil || article == nil {
		return
	}

	for _, rawURL := range []string{article.FeaturedImage, article.ThumbnailImage} {
		if rawURL == "" {
			continue
		}
		key, ok := c.storage.ExtractKey(rawURL)
		if !ok {
			continue
		}

		m, err := c.media.FindByKey(key)
		if err != nil {
			slog.Error("media cleanup lookup failed", "key", key, "error", err)
			continue
		}
		if m == nil {
			continue
		}

		if _, err := c.media.Delete(m.ID); err != nil {
			slog.Error("media cleanup record delete failed", "id", m.ID, "error", err)
			continue
		}
		if err := c.storage.Delete(ctx, m.S3Key); err != nil {
			slog.Error("media cleanup object delete failed", "key", m.S3Key, "error", err)
		}
		if m.ThumbS3Key != nil {
			if err := c.storage.Delete(ctx, *m.ThumbS3Key); err != nil {
				slog.Error("media cleanup thumb delete failed", "key", *m.ThumbS3Key, "error", err)
			}
		}
	}
}
