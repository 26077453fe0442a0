// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

package slug

import (
	"strings"
	"testing"
)

// TestGenerate exercises the slug generator with the kinds of strings
// uploads actually produce: camera filenames, copy-pasted titles,
// unicode, and degenerate inputs.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "camera filename stem",
			input: "IMG 20260815 142312",
			want:  "img-20260815-142312",
		},
		{
			name:  "screenshot stem with punctuation",
			input: "Screenshot (3) - Copy",
			want:  "screenshot-3-copy",
		},
		{
			name:  "punctuation marks",
			input: "Hello, World! How's it going?",
			want:  "hello-world-hows-it-going",
		},
		{
			name:  "ampersand and at sign",
			input: "Rock & Roll @ the Arena",
			want:  "rock-roll-the-arena",
		},
		{
			name:  "underscores become hyphens",
			input: "press_photo_final",
			want:  "press-photo-final",
		},
		{
			name:  "dots become hyphens",
			input: "hero.image.v2",
			want:  "hero-image-v2",
		},
		{
			name:  "accented characters stripped",
			input: "Café Über Señor",
			want:  "caf-ber-seor",
		},
		{
			name:  "leading and trailing whitespace",
			input: "   padded title   ",
			want:  "padded-title",
		},
		{
			name:  "consecutive separators collapse",
			input: "a -- b --- c",
			want:  "a-b-c",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only special characters",
			input: "!@#$%^&*()",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "    ",
			want:  "",
		},
		{
			name:  "cjk characters stripped",
			input: "ニュース photo",
			want:  "photo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerateTruncation checks that over-long filename stems are capped
// without leaving a dangling hyphen at the cut point.
func TestGenerateTruncation(t *testing.T) {
	long := strings.Repeat("word-", 20) // 100 chars
	got := Generate(long)
	if len(got) > 64 {
		t.Errorf("Generate() length = %d, want <= 64", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("Generate() = %q, trailing hyphen after truncation", got)
	}
	if !strings.HasPrefix(got, "word-word") {
		t.Errorf("Generate() = %q, want word-word prefix", got)
	}
}
