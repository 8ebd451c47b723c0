package vault

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"obsidian-cli/internal/frontmatter"
)

// FindNotes returns the notes whose file stem matches term, sorted by path.
//
// Exact mode requires stem equality. Otherwise a stem matches on a
// case-insensitive substring or a fuzzy subsequence, and notes whose stem does
// not match are tried again against their frontmatter title.
func (v *Vault) FindNotes(term string, exact bool) ([]string, error) {
	notes, err := v.ListNotes()
	if err != nil {
		return nil, err
	}

	stems := make([]string, len(notes))
	for i, n := range notes {
		stems[i] = Stem(n)
	}

	if exact {
		var matches []string
		for i, n := range notes {
			if stems[i] == term {
				matches = append(matches, n)
			}
		}
		return matches, nil
	}

	matched := fuzzyIndexes(term, stems)

	var matches []string
	for i, n := range notes {
		if matched[i] || containsFold(stems[i], term) {
			matches = append(matches, n)
			continue
		}
		if title, ok := v.noteTitle(n); ok && (containsFold(title, term) || len(fuzzy.Find(term, []string{title})) > 0) {
			matches = append(matches, n)
		}
	}
	return matches, nil
}

func fuzzyIndexes(term string, candidates []string) map[int]bool {
	matched := make(map[int]bool)
	if term == "" {
		return matched
	}
	for _, m := range fuzzy.Find(term, candidates) {
		matched[m.Index] = true
	}
	return matched
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (v *Vault) noteTitle(rel string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(v.Path, filepath.FromSlash(rel)))
	if err != nil {
		return "", false
	}
	note, err := frontmatter.Parse(data)
	if err != nil {
		return "", false
	}
	return note.Frontmatter.Title()
}
