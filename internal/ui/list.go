package ui

import (
	"strings"

	"github.com/muesli/reflow/padding"

	"obsidian-cli/internal/tui/styles"
	"obsidian-cli/internal/vault"
)

const listDateLayout = "2006-01-02 15:04"

// RenderNoteList renders one note per line. With dates, paths are padded to a
// common width and followed by the modified time; notes without one show "-".
func RenderNoteList(notes []vault.NoteInfo, withDates bool) string {
	var b strings.Builder
	if !withDates {
		for _, n := range notes {
			b.WriteString(n.Path)
			b.WriteByte('\n')
		}
		return b.String()
	}

	width := 0
	for _, n := range notes {
		if len(n.Path) > width {
			width = len(n.Path)
		}
	}

	for _, n := range notes {
		date := "-"
		if !n.Modified.IsZero() {
			date = n.Modified.Format(listDateLayout)
		}
		b.WriteString(padding.String(n.Path, uint(width+2)))
		b.WriteString(styles.DateStyle.Render(date))
		b.WriteByte('\n')
	}
	return b.String()
}
