package fileops

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWrite writes data to destPath atomically. The destination either holds the
// complete new content or is left as it was.
//
// The function uses a temporary file approach:
//  1. Creates a temporary file in the destination directory
//  2. Writes all data to the temporary file
//  3. Syncs data to disk
//  4. Renames the temporary file to the final destination
//
// Parameters:
//   - destPath: Path of the file to create or replace
//   - data: Full file content
//   - perm: Permission bits used when the file is created
//
// Returns:
//   - error: Creation, write, sync or rename errors
//
// Usage example:
//
//	if err := fileops.AtomicWrite("/vault/Inbox/idea.md", []byte("# Idea\n"), 0o644); err != nil {
//	    return fmt.Errorf("failed to write note: %w", err)
//	}
func AtomicWrite(destPath string, data []byte, perm os.FileMode) error {
	tempFile, err := os.CreateTemp(filepath.Dir(destPath), "."+filepath.Base(destPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tempPath := tempFile.Name()

	var writeSuccess bool
	defer func() {
		tempFile.Close()
		if !writeSuccess {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write file contents: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := tempFile.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	writeSuccess = true
	return nil
}

// EnsureDirectoryExists creates a directory and all parents with 0755 permissions.
// It succeeds when the directory already exists.
func EnsureDirectoryExists(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
