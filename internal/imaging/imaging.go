// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

// Package imaging generates JPEG thumbnails for uploaded images. It is
// pure Go: the standard decoders plus the x/image WebP decoder feed a
// CatmullRom downscale. Animated GIFs and SVGs are left alone, so they
// are not in the thumbnailable set.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// DefaultMaxWidth is the thumbnail width cap in pixels.
	DefaultMaxWidth = 400

	// DefaultQuality is the JPEG quality for generated thumbnails.
	DefaultQuality = 80

	// maxPixels caps decoded image size to prevent memory bombs.
	maxPixels = 100_000_000
)

// thumbnailable are image types that support thumbnail generation.
// GIF is excluded to preserve animation; SVG is vector.
var thumbnailable = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// CanThumbnail reports whether a thumbnail can be generated for the
// given MIME type.
func CanThumbnail(contentType string) bool {
	return thumbnailable[contentType]
}

// Thumbnail creates a JPEG thumbnail from an image, constrained to
// maxWidth while preserving aspect ratio. Returns (nil, nil) if the
// image is already no wider than maxWidth.
func Thumbnail(src io.ReadSeeker, maxWidth, quality int) ([]byte, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 {
		quality = DefaultQuality
	}

	// Decode config first to check dimensions without a full decode.
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, maxPixels)
	}

	// Skip the thumbnail if the image is already small enough.
	if cfg.Width <= maxWidth {
		return nil, nil
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	ratio := float64(maxWidth) / float64(bounds.Dx())
	newWidth := maxWidth
	newHeight := int(float64(bounds.Dy()) * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}
