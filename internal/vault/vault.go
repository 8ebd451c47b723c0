// Package vault implements the note operations of an Obsidian-style vault:
// a directory tree of Markdown notes with YAML frontmatter.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"obsidian-cli/pkg/fileops"
)

const (
	DefaultIdentKey        = "uid"
	DefaultEditor          = "vi"
	DefaultJournalTemplate = "Calendar/{year}/{month:02}/{year}-{month:02}-{day:02}"
	noteExt                = ".md"
)

// Settings describe a vault. They are fixed once the Vault is built.
type Settings struct {
	Path            string
	Blacklist       []string
	Editor          string
	IdentKey        string
	JournalTemplate string
	Verbose         bool

	// Clock supplies timestamps for frontmatter and journals. Defaults to time.Now.
	Clock func() time.Time
}

// Vault is a resolved, read-only handle on a vault root.
type Vault struct {
	Settings
	blacklist *Blacklist
}

// New builds a Vault. The path is made absolute; unset settings take their defaults.
func New(s Settings) (*Vault, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, fmt.Errorf("%w: vault path cannot be empty", ErrInvalidArguments)
	}

	abs, err := filepath.Abs(fileops.ExpandPath(s.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault path: %w", err)
	}
	s.Path = abs

	if s.IdentKey == "" {
		s.IdentKey = DefaultIdentKey
	}
	if s.Editor == "" {
		s.Editor = DefaultEditor
	}
	if s.JournalTemplate == "" {
		s.JournalTemplate = DefaultJournalTemplate
	}
	if s.Clock == nil {
		s.Clock = time.Now
	}

	blacklist, err := NewBlacklist(s.Blacklist)
	if err != nil {
		return nil, err
	}
	s.Blacklist = blacklist.Patterns()

	return &Vault{Settings: s, blacklist: blacklist}, nil
}

// Now returns the vault clock's current time.
func (v *Vault) Now() time.Time {
	return v.Clock()
}

// IsBlacklisted reports whether a vault-relative path is excluded from enumeration.
func (v *Vault) IsBlacklisted(relPath string) bool {
	return v.blacklist.Match(relPath)
}

// NormalizeNoteName appends ".md" unless the name already ends with it (any case).
func NormalizeNoteName(name string) string {
	if IsMarkdown(name) {
		return name
	}
	return name + noteExt
}

// IsMarkdown reports whether name carries the note extension, ignoring case.
func IsMarkdown(name string) bool {
	return strings.EqualFold(filepath.Ext(name), noteExt)
}

// Stem returns the base name without its extension.
func Stem(name string) string {
	base := filepath.Base(filepath.FromSlash(name))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// relName validates a user supplied name and returns it relative to the vault.
// Absolute names are accepted when they point inside the vault.
func (v *Vault) relName(name string) (string, error) {
	if filepath.IsAbs(name) {
		rel, err := filepath.Rel(v.Path, filepath.Clean(name))
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidPath, name)
		}
		name = rel
	}
	if err := fileops.ValidateRelativePath(name); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidPath, name, err)
	}
	return filepath.Clean(filepath.FromSlash(name)), nil
}

// Resolve maps a page name or path to an existing note file. The name is tried
// as given, then with ".md" appended.
func (v *Vault) Resolve(name string) (string, error) {
	rel, err := v.relName(name)
	if err != nil {
		return "", err
	}

	candidates := []string{rel}
	if !IsMarkdown(rel) {
		candidates = append(candidates, rel+noteExt)
	}

	for _, c := range candidates {
		full := filepath.Join(v.Path, c)
		if err := fileops.ValidateFileInDirectory(full, v.Path); err == nil {
			return full, nil
		}
	}

	return "", fmt.Errorf("%w: page or file '%s' not found in vault: %s", ErrNoteNotFound, name, v.Path)
}

// Rel returns full relative to the vault root using forward slashes.
func (v *Vault) Rel(full string) string {
	rel, err := filepath.Rel(v.Path, full)
	if err != nil {
		return full
	}
	return filepath.ToSlash(rel)
}

// CheckRoot verifies that the vault root is a readable directory.
func (v *Vault) CheckRoot() error {
	info, err := os.Stat(v.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVaultUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrVaultUnavailable, v.Path)
	}
	return nil
}
