package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"obsidian-cli/pkg/fileops"
)

// LinkUpdate records the wiki links rewritten in one note.
type LinkUpdate struct {
	Path  string
	Links int
}

// RenameResult describes a completed rename. From and To are vault-relative.
type RenameResult struct {
	From    string
	To      string
	Updated []LinkUpdate
}

// Links returns the total number of rewritten wiki links.
func (r *RenameResult) Links() int {
	n := 0
	for _, u := range r.Updated {
		n += u.Links
	}
	return n
}

// Rename moves a note to newName. A bare newName stays in the note's directory;
// a name with a directory component is taken relative to the vault root. A
// Markdown note keeps its ".md" extension. With updateLinks, every
// non-blacklisted note linking to the old stem as [[old]], [[old|alias]],
// [[old#section]] or [[old#section|alias]] is rewritten to the new stem. Links
// are left alone when the stem does not change.
func (v *Vault) Rename(name, newName string, updateLinks bool) (*RenameResult, error) {
	if strings.TrimSpace(newName) == "" {
		return nil, fmt.Errorf("%w: new name cannot be empty", ErrInvalidArguments)
	}

	oldFull, err := v.Resolve(name)
	if err != nil {
		return nil, err
	}

	target := filepath.FromSlash(newName)
	if filepath.Dir(target) == "." {
		target = filepath.Join(filepath.Dir(oldFull), target)
	}
	if IsMarkdown(oldFull) {
		target = NormalizeNoteName(target)
	}
	rel, err := v.relName(target)
	if err != nil {
		return nil, err
	}
	newFull := filepath.Join(v.Path, rel)

	if _, err := os.Lstat(newFull); err == nil {
		return nil, fmt.Errorf("%w: target file already exists: %s", ErrNoteExists, v.Rel(newFull))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to check target %s: %w", newName, err)
	}

	if err := fileops.EnsureDirectoryExists(filepath.Dir(newFull)); err != nil {
		return nil, err
	}
	if err := os.Rename(oldFull, newFull); err != nil {
		return nil, fmt.Errorf("failed to rename %s: %w", name, err)
	}

	result := &RenameResult{From: v.Rel(oldFull), To: v.Rel(newFull)}
	if !updateLinks || Stem(oldFull) == Stem(newFull) {
		return result, nil
	}

	result.Updated, err = v.rewriteLinks(Stem(oldFull), Stem(newFull))
	return result, err
}

// wikiLinkPattern matches [[name]] with an optional #section and |alias. The
// first group holds the suffix that is carried over to the new name.
func wikiLinkPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\[\[` + regexp.QuoteMeta(name) + `((?:#[^\]|]*)?(?:\|[^\]]*)?)\]\]`)
}

func (v *Vault) rewriteLinks(oldStem, newStem string) ([]LinkUpdate, error) {
	files, err := v.scanNotes()
	if err != nil {
		return nil, err
	}

	pattern := wikiLinkPattern(oldStem)
	replacement := "[[" + strings.ReplaceAll(newStem, "$", "$$") + "${1}]]"

	var updated []LinkUpdate
	for _, f := range files {
		full := filepath.Join(v.Path, filepath.FromSlash(f.Path))
		data, err := os.ReadFile(full)
		if err != nil {
			return updated, fmt.Errorf("failed to read note %s: %w", f.Path, err)
		}

		count := len(pattern.FindAllIndex(data, -1))
		if count == 0 {
			continue
		}

		perm := f.Mode.Perm()
		if perm == 0 {
			perm = notePerm
		}
		rewritten := pattern.ReplaceAll(data, []byte(replacement))
		if err := fileops.AtomicWrite(full, rewritten, perm); err != nil {
			return updated, fmt.Errorf("failed to update links in %s: %w", f.Path, err)
		}
		updated = append(updated, LinkUpdate{Path: f.Path, Links: count})
	}
	return updated, nil
}
