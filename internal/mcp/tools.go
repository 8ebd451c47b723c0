package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"obsidian-cli/internal/vault"
)

func (e *Executor) createNote(_ context.Context, args map[string]any) Outcome {
	filename := stringArg(args, "filename")
	content := stringArg(args, "content")
	force := boolArg(args, "force")

	normalized := vault.NormalizeNoteName(filename)
	meta := map[string]any{"filename": normalized}

	normalized, err := e.vault.CreateNote(filename, content, force)
	switch {
	case err == nil:
		return success("Successfully created note: "+normalized, meta)
	case errors.Is(err, vault.ErrNoteExists):
		return failure(
			fmt.Sprintf("File %s already exists. Use force=true to overwrite.", normalized),
			vault.ExitCode(err), meta)
	default:
		return failure(fmt.Sprintf("Failed to create note %s: %v", normalized, err), vault.ExitCode(err), meta)
	}
}

func (e *Executor) findNotes(_ context.Context, args map[string]any) Outcome {
	term := stringArg(args, "term")
	exact := boolArg(args, "exact")
	meta := map[string]any{"term": term, "exact": exact}

	matches, err := e.vault.FindNotes(term, exact)
	if err != nil {
		return failure(fmt.Sprintf("Failed to search notes: %v", err), vault.ExitCode(err), meta)
	}
	meta["result_count"] = len(matches)

	if len(matches) == 0 {
		return success(fmt.Sprintf("No files found matching '%s'", term), meta)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d file(s) matching '%s':", len(matches), term)
	for _, m := range matches {
		b.WriteString("\n- ")
		b.WriteString(m)
	}
	return success(b.String(), meta)
}

func (e *Executor) getNoteContent(_ context.Context, args map[string]any) Outcome {
	filename := stringArg(args, "filename")
	showFrontmatter := boolArg(args, "show_frontmatter")
	meta := map[string]any{"filename": filename, "show_frontmatter": showFrontmatter}

	content, err := e.vault.ReadNote(filename, showFrontmatter)
	switch {
	case err == nil:
		return success(content, meta)
	case errors.Is(err, vault.ErrNoteNotFound):
		return failure("File not found: "+filename, vault.ExitCode(err), meta)
	default:
		return failure(fmt.Sprintf("Failed to read note %s: %v", filename, err), vault.ExitCode(err), meta)
	}
}

func (e *Executor) getVaultInfo(_ context.Context, _ map[string]any) Outcome {
	info, err := e.vault.Info()
	if err != nil {
		return failure(fmt.Sprintf("Failed to read vault information: %v", err), vault.ExitCode(err), nil)
	}
	return success(formatVaultInfo(info, e.version), nil)
}

func formatVaultInfo(info *vault.Info, version string) string {
	var b strings.Builder
	b.WriteString("Obsidian Vault Information:\n")
	fmt.Fprintf(&b, "- Path: %s\n", info.Path)
	fmt.Fprintf(&b, "- Total files: %d\n", info.TotalFiles)
	fmt.Fprintf(&b, "- Usage files: %s\n", vault.HumanSize(info.FileBytes))
	fmt.Fprintf(&b, "- Total directories: %d\n", info.TotalDirectories)
	fmt.Fprintf(&b, "- Usage directories: %s\n", vault.HumanSize(info.DirectoryBytes))

	if len(info.Extensions) == 0 {
		b.WriteString("\n- File Types: No files found\n")
	} else {
		b.WriteString("\n- File Types by Extension:\n")
		for _, ext := range info.Extensions {
			fmt.Fprintf(&b, "  - %s: %d files (%s)\n", ext.Extension, ext.Count, vault.HumanSize(ext.Size))
		}
	}

	fmt.Fprintf(&b, "- Editor: %s\n", info.Editor)
	fmt.Fprintf(&b, "- Blacklist: %s\n", quoteList(info.Blacklist))
	fmt.Fprintf(&b, "- Journal template: %s\n", info.JournalTemplate)
	fmt.Fprintf(&b, "- Version: %s", version)
	return b.String()
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
