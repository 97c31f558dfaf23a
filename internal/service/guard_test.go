package service

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDirectoryGuard(t *testing.T) {
	if _, err := NewDirectoryGuard(""); err == nil {
		t.Error("NewDirectoryGuard() expected error for empty directory")
	}

	guard, err := NewDirectoryGuard("/tmp/documents")
	if err != nil {
		t.Fatalf("NewDirectoryGuard() unexpected error: %v", err)
	}
	if guard.ConfiguredDirectory() != "/tmp/documents" {
		t.Errorf("ConfiguredDirectory() = %s, want /tmp/documents", guard.ConfiguredDirectory())
	}
}

func TestCheckPath(t *testing.T) {
	dir := t.TempDir()
	guard, err := NewDirectoryGuard(dir)
	if err != nil {
		t.Fatalf("NewDirectoryGuard() unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "path inside directory",
			path:    filepath.Join(dir, "case.pdf"),
			wantErr: false,
		},
		{
			name:    "nested path inside directory",
			path:    filepath.Join(dir, "sub", "case.pdf"),
			wantErr: false,
		},
		{
			name:    "directory itself",
			path:    dir,
			wantErr: false,
		},
		{
			name:    "path outside directory",
			path:    "/etc/passwd",
			wantErr: true,
		},
		{
			name:    "traversal escape",
			path:    filepath.Join(dir, "..", "other", "case.pdf"),
			wantErr: true,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.CheckPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestCheckPathSymlinkEscape(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()

	target := filepath.Join(outside, "secret.pdf")
	if err := os.WriteFile(target, []byte("%PDF"), 0o600); err != nil {
		t.Fatalf("failed to create target file: %v", err)
	}

	link := filepath.Join(dir, "link.pdf")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	guard, err := NewDirectoryGuard(dir)
	if err != nil {
		t.Fatalf("NewDirectoryGuard() unexpected error: %v", err)
	}

	if err := guard.CheckPath(link); err == nil {
		t.Error("CheckPath() should reject a symlink pointing outside the directory")
	}
}

func TestCheckPathNonExistentConfiguredDirectory(t *testing.T) {
	guard, err := NewDirectoryGuard("/does/not/exist/yet")
	if err != nil {
		t.Fatalf("NewDirectoryGuard() unexpected error: %v", err)
	}

	// Validation is skipped until the directory exists
	if err := guard.CheckPath("/anywhere/file.pdf"); err != nil {
		t.Errorf("CheckPath() unexpected error: %v", err)
	}
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	guard, err := NewDirectoryGuard(dir)
	if err != nil {
		t.Fatalf("NewDirectoryGuard() unexpected error: %v", err)
	}

	sub := filepath.Join(dir, "filings")
	if err := os.Mkdir(sub, 0o750); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	if err := guard.CheckDirectory(sub); err != nil {
		t.Errorf("CheckDirectory() unexpected error for subdirectory: %v", err)
	}

	// Missing directories inside the root are allowed
	if err := guard.CheckDirectory(filepath.Join(dir, "missing")); err != nil {
		t.Errorf("CheckDirectory() unexpected error for missing directory: %v", err)
	}

	// A file is not a directory
	file := filepath.Join(dir, "case.pdf")
	if err := os.WriteFile(file, []byte("%PDF"), 0o600); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := guard.CheckDirectory(file); err == nil {
		t.Error("CheckDirectory() should reject a file path")
	}
}
