package vault

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"obsidian-cli/internal/template"
	"obsidian-cli/pkg/fileops"
)

const noExtension = "(no extension)"

// ExtensionStat aggregates the files sharing an extension.
type ExtensionStat struct {
	Extension string
	Count     int
	Size      int64
}

// Info is a snapshot of vault statistics and settings.
type Info struct {
	Path             string
	TotalFiles       int
	TotalDirectories int
	MarkdownFiles    int
	FileBytes        int64
	DirectoryBytes   int64
	Extensions       []ExtensionStat
	Blacklist        []string
	Editor           string
	IdentKey         string
	JournalTemplate  string
	JournalPath      string
}

// Info walks the vault, skipping blacklisted paths and the root itself.
// Extensions are sorted by name.
func (v *Vault) Info() (*Info, error) {
	if err := v.CheckRoot(); err != nil {
		return nil, err
	}

	scanner, err := fileops.NewDirectoryScanner(v.Path, &fileops.DirectoryScanOptions{
		IncludeHidden: true,
		IncludeDirs:   true,
		SkipPath: func(rel string, _ bool) bool {
			return v.IsBlacklisted(rel)
		},
		SkipUnreadableDirs: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVaultUnavailable, err)
	}
	defer scanner.Close()

	entries, err := scanner.ScanDirectory()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVaultUnavailable, err)
	}

	info := &Info{
		Path:            v.Path,
		Blacklist:       v.blacklist.Patterns(),
		Editor:          v.Editor,
		IdentKey:        v.IdentKey,
		JournalTemplate: v.JournalTemplate,
	}

	byExt := map[string]*ExtensionStat{}
	for _, e := range entries {
		if e.IsDir {
			info.TotalDirectories++
			info.DirectoryBytes += e.Size
			continue
		}

		info.TotalFiles++
		info.FileBytes += e.Size

		ext := strings.TrimPrefix(filepath.Ext(e.Name), ".")
		if ext == "" {
			ext = noExtension
		}
		if ext == "md" {
			info.MarkdownFiles++
		}

		stat, ok := byExt[ext]
		if !ok {
			stat = &ExtensionStat{Extension: ext}
			byExt[ext] = stat
		}
		stat.Count++
		stat.Size += e.Size
	}

	for _, stat := range byExt {
		info.Extensions = append(info.Extensions, *stat)
	}
	sort.Slice(info.Extensions, func(i, j int) bool {
		return info.Extensions[i].Extension < info.Extensions[j].Extension
	})

	if journal, err := template.JournalPath(v.JournalTemplate, v.Now()); err == nil {
		info.JournalPath = journal + noteExt
	}

	return info, nil
}

// HumanSize formats a byte count with decimal units, e.g. "1.2 kB".
func HumanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
