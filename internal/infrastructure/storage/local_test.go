package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.now = func() time.Time {
		return time.Date(2026, time.March, 14, 9, 30, 15, 0, time.UTC)
	}

	path, err := store.Save(context.Background(), 7, "photo.PNG", []byte("image bytes"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "7_20260314_093015_") {
		t.Fatalf("unexpected stored name: %q", name)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("expected lowercased extension, got %q", name)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "image bytes" {
		t.Fatalf("stored content mismatch: %q", got)
	}
}

func TestLocalStore_Save_DistinctPaths(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		path, err := store.Save(context.Background(), 1, "same.jpg", []byte("x"))
		if err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate stored path: %q", path)
		}
		seen[path] = true
	}
}

func TestLocalStore_New_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := New(dir); err != nil {
		t.Fatalf("new store: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("upload dir not created: %v", err)
	}
}

func TestSanitizeExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", ".jpg"},
		{"photo.JPEG", ".jpeg"},
		{"archive.tar.gz", ".gz"},
		{"noext", ""},
		{"trailingdot.", ""},
		{"weird.p$g", ""},
		{"toolong.verylongext", ""},
		{"../../etc/passwd", ""},
		{"shell.sh;rm", ""},
	}

	for _, tc := range tests {
		if got := sanitizeExt(tc.in); got != tc.want {
			t.Errorf("sanitizeExt(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
