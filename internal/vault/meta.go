package vault

import (
	"errors"
	"fmt"
	"os"

	"obsidian-cli/internal/frontmatter"
	"obsidian-cli/pkg/fileops"
)

// Metadata returns the parsed frontmatter of a note.
func (v *Vault) Metadata(name string) (frontmatter.Metadata, error) {
	_, note, err := v.loadNote(name)
	if err != nil {
		return nil, err
	}
	return note.Frontmatter, nil
}

// GetMeta returns a single frontmatter value.
func (v *Vault) GetMeta(name, key string) (any, error) {
	matter, err := v.Metadata(name)
	if err != nil {
		return nil, err
	}
	value, ok := matter[key]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' in '%s'", ErrKeyNotFound, key, name)
	}
	return value, nil
}

// SetMeta sets key to value and refreshes the modified timestamp.
func (v *Vault) SetMeta(name, key string, value any) error {
	return v.updateNote(name, func(note *frontmatter.Note) error {
		note.Frontmatter.Touch(v.Now())
		note.Frontmatter[key] = value
		return nil
	})
}

// AddUID stores a fresh identifier under the vault's ident key and returns it.
// An existing identifier is replaced only with force.
func (v *Vault) AddUID(name string, force bool) (string, error) {
	uid := frontmatter.NewUID()
	err := v.updateNote(name, func(note *frontmatter.Note) error {
		if existing, ok := note.Frontmatter[v.IdentKey]; ok && !force {
			return fmt.Errorf("%w: page '%s' already has { '%s': '%v' }", ErrKeyExists, name, v.IdentKey, existing)
		}
		note.Frontmatter[v.IdentKey] = uid
		return nil
	})
	if err != nil {
		return "", err
	}
	return uid, nil
}

// Touch refreshes the modified timestamp of a note that has frontmatter.
func (v *Vault) Touch(name string) error {
	return v.updateNote(name, func(note *frontmatter.Note) error {
		if !note.HasFrontmatter {
			return errSkipWrite
		}
		note.Frontmatter.Touch(v.Now())
		return nil
	})
}

var errSkipWrite = errors.New("skip write")

func (v *Vault) loadNote(name string) (string, *frontmatter.Note, error) {
	full, err := v.Resolve(name)
	if err != nil {
		return "", nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read note %s: %w", name, err)
	}

	note, err := frontmatter.Parse(data)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read frontmatter of %s: %w", name, err)
	}
	return full, note, nil
}

func (v *Vault) updateNote(name string, update func(*frontmatter.Note) error) error {
	full, note, err := v.loadNote(name)
	if err != nil {
		return err
	}

	if err := update(note); err != nil {
		if errors.Is(err, errSkipWrite) {
			return nil
		}
		return err
	}
	note.HasFrontmatter = true

	data, err := note.Bytes()
	if err != nil {
		return err
	}
	if err := fileops.AtomicWrite(full, data, notePerm); err != nil {
		return fmt.Errorf("failed to update note %s: %w", name, err)
	}
	return nil
}
