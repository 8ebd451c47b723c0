package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"obsidian-cli/internal/frontmatter"
	"obsidian-cli/internal/tui/styles"
	"obsidian-cli/internal/vault"
)

// QueryStyle selects how query results are printed.
type QueryStyle string

const (
	QueryStylePath  QueryStyle = "path"
	QueryStyleTitle QueryStyle = "title"
	QueryStyleTable QueryStyle = "table"
	QueryStyleJSON  QueryStyle = "json"
)

// QueryStyles lists the accepted styles in help order.
var QueryStyles = []QueryStyle{QueryStylePath, QueryStyleTitle, QueryStyleTable, QueryStyleJSON}

// ParseQueryStyle validates a style name.
func ParseQueryStyle(name string) (QueryStyle, error) {
	for _, s := range QueryStyles {
		if string(s) == strings.ToLower(name) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown style %q", vault.ErrInvalidArguments, name)
}

type queryRecord struct {
	Path        string               `json:"path"`
	Frontmatter frontmatter.Metadata `json:"frontmatter"`
	Value       any                  `json:"value,omitempty"`
}

// RenderQuery renders query results in the given style.
func RenderQuery(results []vault.QueryResult, style QueryStyle) (string, error) {
	var b strings.Builder

	switch style {
	case QueryStylePath:
		for _, r := range results {
			b.WriteString(r.Path)
			b.WriteByte('\n')
		}

	case QueryStyleTitle:
		for _, r := range results {
			fmt.Fprintf(&b, "%s: %s\n", r.Path, r.Title())
		}

	case QueryStyleTable:
		t := newTable("Path", "Property", "Value")
		for i, r := range results {
			if i > 0 {
				t.Row("", "", "")
			}
			path := r.Path
			keys := r.Frontmatter.Keys()
			if len(keys) == 0 {
				t.Row(path, "", "")
				continue
			}
			for _, key := range keys {
				t.Row(path, key, frontmatter.FormatValue(r.Frontmatter[key]))
				path = ""
			}
		}
		b.WriteString(t.String())
		b.WriteByte('\n')
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("Total matches: %d", len(results))))
		b.WriteByte('\n')

	case QueryStyleJSON:
		records := make([]queryRecord, len(results))
		for i, r := range results {
			records[i] = queryRecord{Path: r.Path, Frontmatter: r.Frontmatter, Value: r.Value}
			if records[i].Frontmatter == nil {
				records[i].Frontmatter = frontmatter.Metadata{}
			}
		}
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode query results: %w", err)
		}
		b.Write(out)
		b.WriteByte('\n')

	default:
		return "", fmt.Errorf("%w: unknown style %q", vault.ErrInvalidArguments, style)
	}

	return b.String(), nil
}
