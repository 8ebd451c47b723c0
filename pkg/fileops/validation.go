package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateRelativePath checks that a path supplied by a user or a remote caller stays
// relative to the directory it will be joined onto.
//
// The function rejects:
//   - Empty or whitespace-only paths
//   - Absolute paths
//   - Any ".." path component, before or after cleaning
//
// It performs static analysis only and does not touch the filesystem.
//
// Usage example:
//
//	if err := fileops.ValidateRelativePath("../../etc/passwd"); err != nil {
//	    return err // path traversal not allowed
//	}
func ValidateRelativePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\`) {
		return fmt.Errorf("absolute paths are not allowed")
	}

	for _, part := range strings.FieldsFunc(path, isSeparator) {
		if part == ".." {
			return fmt.Errorf("path traversal not allowed")
		}
	}

	if clean := filepath.Clean(path); clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("path traversal not allowed")
	}

	return nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// ValidateFileInDirectory validates that filePath is inside baseDir, exists, and is a
// regular file. Symlinks are resolved and must also stay inside baseDir.
//
// Usage example:
//
//	err := fileops.ValidateFileInDirectory("/vault/note.md", "/vault")
//	if err != nil {
//	    return fmt.Errorf("file validation failed: %w", err)
//	}
func ValidateFileInDirectory(filePath, baseDir string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("cannot resolve file path: %w", err)
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("cannot resolve base directory: %w", err)
	}

	if !isWithin(absBaseDir, absFilePath) {
		return fmt.Errorf("file is not within base directory")
	}

	fileInfo, err := os.Lstat(absFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s: %w", filepath.Base(filePath), os.ErrNotExist)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.Mode()&os.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(absFilePath)
		if err != nil {
			return fmt.Errorf("cannot resolve symlink: %w", err)
		}
		resolvedBase, err := filepath.EvalSymlinks(absBaseDir)
		if err != nil {
			resolvedBase = absBaseDir
		}
		if !isWithin(resolvedBase, resolved) {
			return fmt.Errorf("symlink resolves outside base directory")
		}
		if fileInfo, err = os.Stat(resolved); err != nil {
			return fmt.Errorf("cannot access file: %w", err)
		}
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file")
	}

	return nil
}

func isWithin(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// ExpandPath expands a leading "~/" (or a bare "~") to the user's home directory.
//
// Usage example:
//
//	expanded := fileops.ExpandPath("~/Notes")
//	// Returns something like "/home/user/Notes"
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
