// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// pngImage encodes a solid-color PNG of the given dimensions.
func pngImage(t *testing.T, width, height int) *bytes.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestThumbnailDownscales(t *testing.T) {
	src := pngImage(t, 800, 600)

	data, err := Thumbnail(src, 400, 80)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if data == nil {
		t.Fatal("expected thumbnail bytes")
	}

	thumb, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	b := thumb.Bounds()
	if b.Dx() != 400 {
		t.Errorf("width: got %d, want 400", b.Dx())
	}
	if b.Dy() != 300 {
		t.Errorf("height: got %d, want 300 (aspect preserved)", b.Dy())
	}
}

func TestThumbnailSkipsSmallImages(t *testing.T) {
	src := pngImage(t, 300, 200)

	data, err := Thumbnail(src, 400, 80)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil for image narrower than maxWidth, got %d bytes", len(data))
	}
}

func TestThumbnailDefaults(t *testing.T) {
	src := pngImage(t, 500, 500)

	data, err := Thumbnail(src, 0, 0)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	thumb, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if thumb.Bounds().Dx() != DefaultMaxWidth {
		t.Errorf("width: got %d, want %d", thumb.Bounds().Dx(), DefaultMaxWidth)
	}
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	if _, err := Thumbnail(bytes.NewReader([]byte("not an image")), 400, 80); err == nil {
		t.Error("expected error for non-image input")
	}
}

func TestCanThumbnail(t *testing.T) {
	cases := map[string]bool{
		"image/jpeg":    true,
		"image/png":     true,
		"image/webp":    true,
		"image/gif":     false,
		"image/svg+xml": false,
		"video/mp4":     false,
	}
	for ct, want := range cases {
		if got := CanThumbnail(ct); got != want {
			t.Errorf("CanThumbnail(%q): got %v, want %v", ct, got, want)
		}
	}
}
