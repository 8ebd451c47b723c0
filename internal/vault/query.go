package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"obsidian-cli/internal/frontmatter"
)

// QueryFilter narrows a frontmatter query. Empty Value and Contains are unset.
type QueryFilter struct {
	// Value keeps notes whose value equals this text, or holds it as a list item.
	Value string
	// Contains keeps notes whose value, or one of its list items, contains this text.
	Contains string
	// Exists keeps only notes that define the key.
	Exists bool
	// Missing keeps only notes that do not define the key.
	Missing bool
}

func (f QueryFilter) validate() error {
	if f.Value != "" && f.Contains != "" {
		return fmt.Errorf("%w: cannot specify both --value and --contains options", ErrInvalidArguments)
	}
	if f.Exists && f.Missing {
		return fmt.Errorf("%w: cannot specify both --exists and --missing options", ErrInvalidArguments)
	}
	if f.Missing && (f.Value != "" || f.Contains != "") {
		return fmt.Errorf("%w: --missing cannot be combined with a value filter", ErrInvalidArguments)
	}
	return nil
}

// QueryResult is a note selected by Query.
type QueryResult struct {
	Path        string
	Frontmatter frontmatter.Metadata
	Value       any
	HasKey      bool
}

// Title returns the frontmatter title, falling back to the file stem.
func (r QueryResult) Title() string {
	if title, ok := r.Frontmatter.Title(); ok {
		return title
	}
	return Stem(r.Path)
}

// Query returns the notes selected by key and filter, sorted by path. Without
// Missing a note must define key. Notes whose frontmatter does not parse are
// skipped.
func (v *Vault) Query(key string, filter QueryFilter) ([]QueryResult, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%w: query key cannot be empty", ErrInvalidArguments)
	}
	if err := filter.validate(); err != nil {
		return nil, err
	}

	files, err := v.scanNotes()
	if err != nil {
		return nil, err
	}

	var results []QueryResult
	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(v.Path, filepath.FromSlash(f.Path)))
		if err != nil {
			continue
		}
		note, err := frontmatter.Parse(data)
		if err != nil {
			continue
		}

		value, has := note.Frontmatter[key]
		switch {
		case filter.Missing:
			if has {
				continue
			}
		case !has:
			continue
		case filter.Value != "" && !matchesValue(value, filter.Value):
			continue
		case filter.Contains != "" && !containsValue(value, filter.Contains):
			continue
		}

		results = append(results, QueryResult{
			Path:        f.Path,
			Frontmatter: note.Frontmatter,
			Value:       value,
			HasKey:      has,
		})
	}
	return results, nil
}

func matchesValue(value any, want string) bool {
	if items, ok := value.([]any); ok {
		for _, item := range items {
			if frontmatter.FormatValue(item) == want {
				return true
			}
		}
	}
	return frontmatter.FormatValue(value) == want
}

func containsValue(value any, substr string) bool {
	if items, ok := value.([]any); ok {
		for _, item := range items {
			if strings.Contains(frontmatter.FormatValue(item), substr) {
				return true
			}
		}
		return false
	}
	return strings.Contains(frontmatter.FormatValue(value), substr)
}
