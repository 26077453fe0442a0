// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"newsdesk/internal/imaging"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/slug"
	"newsdesk/internal/storage"
	"newsdesk/internal/store"
)

// maxUploadSize is the maximum allowed file upload size (50 MB).
const maxUploadSize = 50 << 20

// allowedMediaTypes defines MIME types accepted for upload: the images the
// article form embeds plus the video formats the featured slot plays.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"video/mp4":       true,
	"video/webm":      true,
	"video/ogg":       true,
	"application/ogg": true,
}

// Upload groups the media upload handlers.
type Upload struct {
	storage *storage.Client
	media   *store.MediaStore
}

// NewUpload creates an Upload handler group. storage may be nil when
// object storage is not configured; uploads then answer 503.
func NewUpload(storageClient *storage.Client, media *store.MediaStore) *Upload {
	return &Upload{storage: storageClient, media: media}
}

// Create handles POST /api/upload: a multipart form with a "file" field.
// The object lands in S3, metadata in PostgreSQL, and the response carries
// the public URL the form writes back into the article record.
func (h *Upload) Create(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		render.Render(w, r, &ErrResponse{
			HTTPStatusCode: http.StatusServiceUnavailable,
			Message:        "Object storage is not configured",
		})
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	// Limit request body to maxUploadSize plus form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		render.Render(w, r, &ErrResponse{
			HTTPStatusCode: http.StatusRequestEntityTooLarge,
			Message:        "File too large. Maximum size is 50 MB",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("no file provided")))
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		render.Render(w, r, &ErrResponse{
			HTTPStatusCode: http.StatusRequestEntityTooLarge,
			Message:        "File too large. Maximum size is 50 MB",
		})
		return
	}

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		slog.Error("upload read failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// SVG detection: DetectContentType reports XML or plain text for SVGs.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	if !allowedMediaTypes[contentType] {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("file type %q is not allowed", contentType)))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		slog.Error("upload seek failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}

	// Generate a unique storage key under uploads/YYYY/MM/. A slug of the
	// original filename is kept in the key so objects stay recognizable
	// in the bucket; the UUID guarantees uniqueness.
	now := time.Now()
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	fileID := uuid.New().String()
	objectName := fileID
	if s := slug.Generate(strings.TrimSuffix(header.Filename, ext)); s != "" {
		objectName = s + "-" + fileID
	}
	s3Key := fmt.Sprintf("uploads/%d/%02d/%s%s", now.Year(), now.Month(), objectName, ext)

	// Read the whole file for upload and thumbnail generation.
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		slog.Error("upload read failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}

	ctx := r.Context()
	if err := h.storage.Upload(ctx, s3Key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", s3Key)
		render.Render(w, r, ErrInternal())
		return
	}

	// Generate and upload a thumbnail for supported image types.
	var thumbKey *string
	if imaging.CanThumbnail(contentType) {
		thumbData, err := imaging.Thumbnail(bytes.NewReader(fileBytes), imaging.DefaultMaxWidth, imaging.DefaultQuality)
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "key", s3Key)
		} else if thumbData != nil {
			tk := fmt.Sprintf("uploads/%d/%02d/%s_thumb.jpg", now.Year(), now.Month(), objectName)
			if err := h.storage.Upload(ctx, tk, "image/jpeg", bytes.NewReader(thumbData), int64(len(thumbData))); err != nil {
				slog.Warn("thumbnail upload failed", "error", err, "key", tk)
			} else {
				thumbKey = &tk
			}
		}
	}

	media := &models.Media{
		Filename:     objectName + ext,
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    int64(len(fileBytes)),
		S3Key:        s3Key,
		ThumbS3Key:   thumbKey,
	}
	if sess != nil {
		media.UploaderID = &sess.UserID
	}

	created, err := h.media.Create(media)
	if err != nil {
		slog.Error("media db insert failed", "error", err, "key", s3Key)
		render.Render(w, r, ErrInternal())
		return
	}

	var thumbURL string
	if created.ThumbS3Key != nil {
		thumbURL = h.storage.FileURL(*created.ThumbS3Key)
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"id":       created.ID,
		"url":      h.storage.FileURL(created.S3Key),
		"thumbUrl": thumbURL,
		"filename": created.OriginalName,
		"size":     created.HumanSize(),
		"type":     created.ContentType,
	})
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/ogg", "application/ogg":
		return ".ogg"
	default:
		return ""
	}
}
