package fileops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createScanFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"Welcome.md":            "# Welcome",
		"Daily/2024-01-01.md":   "day one",
		"Daily/notes.txt":       "plain",
		"Assets/image.png":      "png",
		".obsidian/app.json":    "{}",
		"Projects/deep/idea.md": "idea",
	}
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
	return root
}

func TestScanDirectory_SortedSlashPaths(t *testing.T) {
	root := createScanFixture(t)

	scanner, err := NewDirectoryScanner(root, nil)
	if err != nil {
		t.Fatalf("NewDirectoryScanner failed: %v", err)
	}
	defer scanner.Close()

	files, err := scanner.ScanDirectory()
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}

	want := []string{
		".obsidian/app.json",
		"Assets/image.png",
		"Daily/2024-01-01.md",
		"Daily/notes.txt",
		"Projects/deep/idea.md",
		"Welcome.md",
	}
	if len(files) != len(want) {
		t.Fatalf("Expected %d files, got %d: %+v", len(want), len(files), files)
	}
	for i, f := range files {
		if f.Path != want[i] {
			t.Errorf("Entry %d: expected %s, got %s", i, want[i], f.Path)
		}
		if f.IsDir {
			t.Errorf("Entry %s should not be a directory", f.Path)
		}
	}
}

func TestScanDirectory_SkipPathAndFilter(t *testing.T) {
	root := createScanFixture(t)

	files, err := ScanWithFilter(root,
		func(name string) bool { return strings.HasSuffix(name, ".md") },
		func(rel string, isDir bool) bool { return strings.HasPrefix(rel, "Daily") },
	)
	if err != nil {
		t.Fatalf("ScanWithFilter failed: %v", err)
	}

	var got []string
	for _, f := range files {
		got = append(got, f.Path)
	}
	if strings.Join(got, ",") != "Projects/deep/idea.md,Welcome.md" {
		t.Errorf("Unexpected scan result: %v", got)
	}
}

func TestScanDirectory_IncludeDirsAndStats(t *testing.T) {
	root := createScanFixture(t)

	scanner, err := NewDirectoryScanner(root, &DirectoryScanOptions{
		IncludeHidden: false,
		IncludeDirs:   true,
	})
	if err != nil {
		t.Fatalf("NewDirectoryScanner failed: %v", err)
	}
	defer scanner.Close()

	if _, err := scanner.ScanDirectory(); err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}

	stats := scanner.GetScanStats()
	// Assets, Daily, Projects, Projects/deep
	if stats.TotalDirectories != 4 {
		t.Errorf("Expected 4 directories, got %d", stats.TotalDirectories)
	}
	if stats.TotalFiles != 5 {
		t.Errorf("Expected 5 files, got %d", stats.TotalFiles)
	}
	if stats.LargestFile != int64(len("# Welcome")) {
		t.Errorf("Unexpected largest file size %d", stats.LargestFile)
	}
}

func TestScanDirectory_MaxDepth(t *testing.T) {
	root := createScanFixture(t)

	scanner, err := NewDirectoryScanner(root, &DirectoryScanOptions{MaxDepth: 1, IncludeHidden: true})
	if err != nil {
		t.Fatalf("NewDirectoryScanner failed: %v", err)
	}
	defer scanner.Close()

	files, err := scanner.ScanDirectory()
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}
	if len(files) != 1 || files[0].Path != "Welcome.md" {
		t.Errorf("Expected only top-level file, got %+v", files)
	}
}

func TestScanDirectory_SkipsSymlinks(t *testing.T) {
	root := createScanFixture(t)
	outside := t.TempDir()
	if err := os.WriteFile(filepath.Join(outside, "secret.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := ScanWithFilter(root, nil, nil)
	if err != nil {
		t.Fatalf("ScanWithFilter failed: %v", err)
	}
	for _, f := range files {
		if strings.HasPrefix(f.Path, "linked") {
			t.Errorf("Symlinked directory should not be followed: %s", f.Path)
		}
	}
}

func TestNewDirectoryScanner_Errors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"empty path", "  "},
		{"missing directory", filepath.Join(t.TempDir(), "missing")},
		{"not a directory", file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDirectoryScanner(tt.path, nil); err == nil {
				t.Errorf("Expected error for %q", tt.path)
			}
		})
	}
}

func TestScanDirectory_Closed(t *testing.T) {
	scanner, err := NewDirectoryScanner(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewDirectoryScanner failed: %v", err)
	}
	scanner.Close()

	if _, err := scanner.ScanDirectory(); err == nil {
		t.Error("Expected error scanning with closed scanner")
	}
}
