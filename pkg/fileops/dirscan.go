package fileops

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DirectoryScanOptions configures the behavior of directory scanning operations.
type DirectoryScanOptions struct {
	// SkipUnreadableDirs determines whether to skip directories that cannot be read
	// or to return an error.
	SkipUnreadableDirs bool

	// MaxDepth limits the maximum recursion depth. Zero means unlimited.
	MaxDepth int

	// IncludeHidden determines whether to include entries whose name starts with '.'.
	IncludeHidden bool

	// IncludeDirs adds directory entries to the results alongside files.
	IncludeDirs bool

	// SkipPath prunes an entry by its slash-separated path relative to the scan root.
	// A pruned directory is not descended into.
	SkipPath func(relPath string, isDir bool) bool

	// FileFilter selects files by base name. If nil, all files are included.
	FileFilter func(filename string) bool
}

// FileInfo represents an entry discovered during directory scanning.
type FileInfo struct {
	// Name is the base name without path components
	Name string

	// Path is the slash-separated path relative to the scan root
	Path string

	// IsDir indicates whether this entry represents a directory
	IsDir bool

	// Size is the size in bytes reported by the filesystem
	Size int64

	// ModTime is the last modification time
	ModTime time.Time

	// Mode contains the file mode and permission bits
	Mode os.FileMode
}

// SecureDirectoryScanner walks a directory tree inside an os.Root boundary.
// Symbolic links are reported neither as files nor as directories and are never followed.
type SecureDirectoryScanner struct {
	root     *os.Root
	opts     *DirectoryScanOptions
	results  []FileInfo
	skipped  int
	scanRoot string
}

// NewDirectoryScanner creates a scanner for the given directory.
//
// Parameters:
//   - scanPath: The directory path to scan (can be relative, absolute or start with "~/")
//   - opts: Scanning options (if nil, sensible defaults are used)
//
// Returns:
//   - *SecureDirectoryScanner: Configured scanner instance, to be closed by the caller
//   - error: Path resolution and access errors
//
// Usage example:
//
//	scanner, err := fileops.NewDirectoryScanner(vaultPath, &fileops.DirectoryScanOptions{
//	    IncludeHidden: true,
//	    FileFilter: func(name string) bool { return strings.HasSuffix(name, ".md") },
//	})
//	if err != nil {
//	    return fmt.Errorf("failed to create scanner: %w", err)
//	}
//	defer scanner.Close()
func NewDirectoryScanner(scanPath string, opts *DirectoryScanOptions) (*SecureDirectoryScanner, error) {
	if opts == nil {
		opts = getDefaultScanOptions()
	}

	if strings.TrimSpace(scanPath) == "" {
		return nil, fmt.Errorf("scan path cannot be empty")
	}

	absPath, err := filepath.Abs(ExpandPath(scanPath))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve scan path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access scan path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan path is not a directory: %s", absPath)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot create secure scan root: %w", err)
	}

	return &SecureDirectoryScanner{
		root:     root,
		opts:     opts,
		scanRoot: absPath,
	}, nil
}

func getDefaultScanOptions() *DirectoryScanOptions {
	return &DirectoryScanOptions{
		SkipUnreadableDirs: true,
		IncludeHidden:      true,
	}
}

// Close releases the root handle.
func (s *SecureDirectoryScanner) Close() error {
	if s.root != nil {
		err := s.root.Close()
		s.root = nil
		return err
	}
	return nil
}

// ScanDirectory performs a recursive scan and returns the entries sorted by path.
func (s *SecureDirectoryScanner) ScanDirectory() ([]FileInfo, error) {
	if s.root == nil {
		return nil, fmt.Errorf("scanner has been closed")
	}

	s.results = []FileInfo{}
	s.skipped = 0

	if err := s.scanRecursive(".", 1); err != nil {
		return nil, fmt.Errorf("directory scan failed: %w", err)
	}

	sort.Slice(s.results, func(i, j int) bool {
		return s.results[i].Path < s.results[j].Path
	})

	resultsCopy := make([]FileInfo, len(s.results))
	copy(resultsCopy, s.results)
	return resultsCopy, nil
}

func (s *SecureDirectoryScanner) scanRecursive(relativePath string, depth int) error {
	if s.opts.MaxDepth > 0 && depth > s.opts.MaxDepth {
		return nil
	}

	dir, err := s.root.Open(relativePath)
	if err != nil {
		if s.opts.SkipUnreadableDirs && relativePath != "." {
			s.skipped++
			return nil
		}
		return fmt.Errorf("failed to open directory %s: %w", relativePath, err)
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		if s.opts.SkipUnreadableDirs && relativePath != "." {
			s.skipped++
			return nil
		}
		return fmt.Errorf("failed to read directory %s: %w", relativePath, err)
	}

	for _, entry := range entries {
		entryPath := path.Join(filepath.ToSlash(relativePath), entry.Name())

		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if !s.opts.IncludeHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if s.opts.SkipPath != nil && s.opts.SkipPath(entryPath, entry.IsDir()) {
			continue
		}

		if entry.IsDir() {
			if s.opts.IncludeDirs {
				if fileInfo, err := s.createFileInfo(entry, entryPath); err == nil {
					s.results = append(s.results, fileInfo)
				}
			}
			if err := s.scanRecursive(entryPath, depth+1); err != nil {
				return err
			}
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}
		if s.opts.FileFilter != nil && !s.opts.FileFilter(entry.Name()) {
			continue
		}

		fileInfo, err := s.createFileInfo(entry, entryPath)
		if err != nil {
			if s.opts.SkipUnreadableDirs {
				continue
			}
			return fmt.Errorf("failed to get file info for %s: %w", entryPath, err)
		}
		s.results = append(s.results, fileInfo)
	}

	return nil
}

func (s *SecureDirectoryScanner) createFileInfo(entry os.DirEntry, relPath string) (FileInfo, error) {
	info, err := entry.Info()
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to get file info: %w", err)
	}

	return FileInfo{
		Name:    entry.Name(),
		Path:    relPath,
		IsDir:   entry.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
	}, nil
}

// ScanStats summarizes the results of the last scan.
type ScanStats struct {
	TotalFiles       int
	TotalDirectories int
	SkippedDirs      int
	LargestFile      int64
	TotalSize        int64
}

// GetScanStats calculates statistics about the current scan results.
func (s *SecureDirectoryScanner) GetScanStats() ScanStats {
	stats := ScanStats{SkippedDirs: s.skipped}

	for _, file := range s.results {
		if file.IsDir {
			stats.TotalDirectories++
			continue
		}
		stats.TotalFiles++
		stats.TotalSize += file.Size
		if file.Size > stats.LargestFile {
			stats.LargestFile = file.Size
		}
	}

	return stats
}

// ScanWithFilter creates a scanner with the given filters and immediately performs a scan.
//
// Usage example:
//
//	notes, err := fileops.ScanWithFilter(vaultPath, isMarkdown, vault.IsBlacklisted)
func ScanWithFilter(scanPath string, fileFilter func(string) bool, skipPath func(string, bool) bool) ([]FileInfo, error) {
	scanner, err := NewDirectoryScanner(scanPath, &DirectoryScanOptions{
		SkipUnreadableDirs: true,
		IncludeHidden:      true,
		SkipPath:           skipPath,
		FileFilter:         fileFilter,
	})
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	return scanner.ScanDirectory()
}
