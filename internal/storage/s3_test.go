package storage

import "testing"

func TestNewUnconfigured(t *testing.T) {
	// Missing endpoint or credentials means no storage, not an error.
	c, err := New("", "eu-central", "key", "secret", "media", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c != nil {
		t.Error("expected nil client without endpoint")
	}

	c, err = New("https://s3.local", "eu-central", "", "", "media", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c != nil {
		t.Error("expected nil client without credentials")
	}
}

func TestFileURL(t *testing.T) {
	c, err := New("https://s3.example.com/", "eu-central", "key", "secret", "media", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := c.FileURL("uploads/photo.jpg")
	want := "https://s3.example.com/media/uploads/photo.jpg"
	if got != want {
		t.Errorf("FileURL: got %q, want %q", got, want)
	}
}

func TestFileURLWithPublicURL(t *testing.T) {
	c, err := New("https://s3.example.com", "eu-central", "key", "secret", "media", "https://cdn.newsdesk.press/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := c.FileURL("uploads/photo.jpg")
	want := "https://cdn.newsdesk.press/uploads/photo.jpg"
	if got != want {
		t.Errorf("FileURL: got %q, want %q", got, want)
	}
}

func TestExtractKey(t *testing.T) {
	c, err := New("https://s3.example.com", "eu-central", "key", "secret", "media", "https://cdn.newsdesk.press")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		url     string
		wantKey string
		wantOK  bool
	}{
		{"https://cdn.newsdesk.press/uploads/a.jpg", "uploads/a.jpg", true},
		{"https://s3.example.com/media/uploads/b.png", "uploads/b.png", true},
		{"https://elsewhere.com/uploads/c.jpg", "", false},
		{"https://s3.example.com/otherbucket/d.jpg", "", false},
	}

	for _, tt := range tests {
		key, ok := c.ExtractKey(tt.url)
		if ok != tt.wantOK || key != tt.wantKey {
			t.Errorf("ExtractKey(%q) = (%q, %v), want (%q, %v)", tt.url, key, ok, tt.wantKey, tt.wantOK)
		}
	}
}
