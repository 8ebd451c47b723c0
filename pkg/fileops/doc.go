// Package fileops provides the file primitives the vault is built on.
//
// # Path Validation
//
// Note names arrive from the command line and from the assistant server, so every
// name is checked before it is joined onto the vault root:
//
//	if err := fileops.ValidateRelativePath(name); err != nil {
//	    return fmt.Errorf("invalid note path: %w", err)
//	}
//	full := filepath.Join(vaultRoot, name)
//	if err := fileops.ValidateFileInDirectory(full, vaultRoot); err != nil {
//	    return err
//	}
//
// # Atomic Writes
//
// AtomicWrite writes through a temporary file in the destination directory and renames
// it into place, so a note is either fully written or left untouched.
//
// # Directory Scanning
//
// SecureDirectoryScanner walks a tree inside an os.Root boundary. Callers prune entries
// with SkipPath (the vault blacklist) and select files with FileFilter.
package fileops
