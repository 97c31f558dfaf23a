package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirectoryGuard confines file access to the configured document
// directory so MCP clients cannot read arbitrary paths.
type DirectoryGuard struct {
	configuredDirectory string
}

// NewDirectoryGuard creates a guard for the given directory. The
// directory does not need to exist yet; validation is skipped until
// it does.
func NewDirectoryGuard(configuredDirectory string) (*DirectoryGuard, error) {
	if configuredDirectory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}
	return &DirectoryGuard{
		configuredDirectory: configuredDirectory,
	}, nil
}

// CheckPath verifies that a path resolves inside the configured
// directory, following symlinks.
func (g *DirectoryGuard) CheckPath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// If configured directory doesn't exist yet, skip validation
	if _, err := os.Stat(g.configuredDirectory); os.IsNotExist(err) {
		return nil
	}

	within, err := g.isWithinDirectory(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}
	return nil
}

// CheckDirectory verifies that a directory path is inside the
// configured directory and, when it exists, actually is a directory.
func (g *DirectoryGuard) CheckDirectory(dirPath string) error {
	if err := g.CheckPath(dirPath); err != nil {
		return err
	}

	info, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dirPath)
	}
	return nil
}

// ConfiguredDirectory returns the directory the guard confines to.
func (g *DirectoryGuard) ConfiguredDirectory() string {
	return g.configuredDirectory
}

func (g *DirectoryGuard) isWithinDirectory(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	absDir, err := filepath.Abs(g.configuredDirectory)
	if err != nil {
		return false, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(absDir)

	// Resolve symlinks on both sides; a link pointing outside the
	// directory must not pass
	realPath := cleanPath
	if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
		realPath = resolved
	}
	realDir := cleanDir
	if resolved, err := filepath.EvalSymlinks(cleanDir); err == nil {
		realDir = resolved
	}

	return isUnder(cleanPath, cleanDir) && isUnder(realPath, realDir), nil
}

func isUnder(path, dir string) bool {
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}
