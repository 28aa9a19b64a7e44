package service

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestLocalStoreSaveAndRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	content := "fake document bytes"
	path, err := store.Save(context.Background(), "abc_test.pdf", strings.NewReader(content), int64(len(content)), MimePDF)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected stored file at %s: %v", path, err)
	}
	if string(data) != content {
		t.Errorf("Stored content mismatch: %q", string(data))
	}

	localPath, cleanup, err := store.LocalPath(context.Background(), path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer cleanup()
	if localPath != path {
		t.Errorf("Expected local path %s, got %s", path, localPath)
	}

	if err := store.Remove(context.Background(), path); err != nil {
		t.Fatalf("Unexpected error removing file: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected file to be removed")
	}

	// Removing an already-missing file is not an error.
	if err := store.Remove(context.Background(), path); err != nil {
		t.Errorf("Expected idempotent remove, got %v", err)
	}
}

func TestLocalStoreLocalPathMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if _, _, err := store.LocalPath(context.Background(), "/nonexistent/file.pdf"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestStoredName(t *testing.T) {
	tests := []struct {
		name     string
		fileID   string
		original string
		expected string
	}{
		{
			name:     "simple",
			fileID:   "id-1",
			original: "contract.pdf",
			expected: "id-1_contract.pdf",
		},
		{
			name:     "path components stripped",
			fileID:   "id-2",
			original: "../../etc/passwd.pdf",
			expected: "id-2_passwd.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StoredName(tt.fileID, tt.original); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
