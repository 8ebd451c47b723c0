package vault

import (
	"fmt"
	"path/filepath"
	"time"

	"obsidian-cli/internal/template"
	"obsidian-cli/pkg/fileops"
)

// JournalPath renders the journal template for t as a vault-relative note name.
func (v *Vault) JournalPath(t time.Time) (string, error) {
	rendered, err := template.JournalPath(v.JournalTemplate, t)
	if err != nil {
		return "", fmt.Errorf("%w: journal template: %v", ErrInvalidArguments, err)
	}
	return NormalizeNoteName(rendered), nil
}

// EnsureJournal returns the full path of the journal note for t, creating it
// with default frontmatter when it does not exist yet.
func (v *Vault) EnsureJournal(t time.Time) (string, bool, error) {
	rel, err := v.JournalPath(t)
	if err != nil {
		return "", false, err
	}

	full := filepath.Join(v.Path, filepath.FromSlash(rel))
	if fileops.FileExists(full) {
		return full, false, nil
	}

	full, err = v.NewNote(rel, "", false)
	if err != nil {
		return "", false, err
	}
	return full, true, nil
}
