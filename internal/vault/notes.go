package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"obsidian-cli/internal/frontmatter"
	"obsidian-cli/pkg/fileops"
)

const notePerm = 0o644

// CreateNote writes a note named name (".md" appended when missing) and returns the
// normalized relative name. Empty content writes a default frontmatter block only;
// other content is written verbatim. An existing note is replaced only with force.
func (v *Vault) CreateNote(name, content string, force bool) (string, error) {
	normalized := NormalizeNoteName(name)

	data := []byte(content)
	if content == "" {
		block, err := frontmatter.Marshal(frontmatter.Default(Stem(normalized), v.IdentKey, v.Now()))
		if err != nil {
			return normalized, err
		}
		data = block
	}

	if _, err := v.writeNote(normalized, data, force); err != nil {
		return normalized, err
	}
	return normalized, nil
}

// NewNote creates a note with default frontmatter followed by body and returns its
// full path. An empty body becomes a level-one heading with the note title.
func (v *Vault) NewNote(name, body string, force bool) (string, error) {
	normalized := NormalizeNoteName(name)
	title := Stem(normalized)

	if strings.TrimSpace(body) == "" {
		body = "# " + title + "\n\n"
	}

	note := &frontmatter.Note{
		Frontmatter:    frontmatter.Default(title, v.IdentKey, v.Now()),
		Body:           body,
		HasFrontmatter: true,
	}
	data, err := note.Bytes()
	if err != nil {
		return "", err
	}

	return v.writeNote(normalized, data, force)
}

func (v *Vault) writeNote(name string, data []byte, force bool) (string, error) {
	rel, err := v.relName(name)
	if err != nil {
		return "", err
	}
	full := filepath.Join(v.Path, rel)

	if info, err := os.Stat(full); err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s is a directory", ErrInvalidPath, name)
		}
		if !force {
			return "", fmt.Errorf("%w: %s", ErrNoteExists, name)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to check note %s: %w", name, err)
	}

	if err := fileops.EnsureDirectoryExists(filepath.Dir(full)); err != nil {
		return "", err
	}
	if err := fileops.AtomicWrite(full, data, notePerm); err != nil {
		return "", fmt.Errorf("failed to write note %s: %w", name, err)
	}
	return full, nil
}

// ReadNote returns the note's content. Without showFrontmatter the frontmatter
// block is stripped.
func (v *Vault) ReadNote(name string, showFrontmatter bool) (string, error) {
	full, err := v.Resolve(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("failed to read note %s: %w", name, err)
	}

	if showFrontmatter {
		return string(data), nil
	}
	return frontmatter.Body(data), nil
}

// RemoveNote deletes a note and returns the path that was removed.
func (v *Vault) RemoveNote(name string) (string, error) {
	full, err := v.Resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.Remove(full); err != nil {
		return "", fmt.Errorf("failed to remove note %s: %w", name, err)
	}
	return full, nil
}

// NoteInfo describes an enumerated note.
type NoteInfo struct {
	Path     string
	Created  time.Time
	Modified time.Time
}

// ListNotes returns the vault-relative paths of all notes outside the blacklist, sorted.
func (v *Vault) ListNotes() ([]string, error) {
	files, err := v.scanNotes()
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths, nil
}

// ListNoteInfo is ListNotes with dates. Frontmatter "created" and "modified"
// take precedence over the file modification time.
func (v *Vault) ListNoteInfo() ([]NoteInfo, error) {
	files, err := v.scanNotes()
	if err != nil {
		return nil, err
	}

	infos := make([]NoteInfo, 0, len(files))
	for _, f := range files {
		info := NoteInfo{Path: f.Path, Created: f.ModTime, Modified: f.ModTime}

		if data, err := os.ReadFile(filepath.Join(v.Path, filepath.FromSlash(f.Path))); err == nil {
			if note, err := frontmatter.Parse(data); err == nil {
				if t, ok := dateField(note.Frontmatter, "created"); ok {
					info.Created = t
				}
				if t, ok := dateField(note.Frontmatter, "modified"); ok {
					info.Modified = t
				}
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func dateField(matter frontmatter.Metadata, key string) (time.Time, bool) {
	switch val := matter[key].(type) {
	case time.Time:
		return val, true
	case string:
		if t, err := time.Parse(time.RFC3339, val); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.DateOnly, val); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (v *Vault) scanNotes() ([]fileops.FileInfo, error) {
	files, err := fileops.ScanWithFilter(v.Path, IsMarkdown, func(rel string, _ bool) bool {
		return v.IsBlacklisted(rel)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVaultUnavailable, err)
	}
	return files, nil
}
