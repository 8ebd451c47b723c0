package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"obsidian-cli/internal/tui/styles"
	"obsidian-cli/internal/vault"
)

// RenderInfo renders the vault summary and the per-extension breakdown as two tables.
func RenderInfo(info *vault.Info, version string) string {
	summary := newTable("Setting", "Value").Rows(
		[]string{"Path", info.Path},
		[]string{"Files", fmt.Sprintf("%d (%s)", info.TotalFiles, vault.HumanSize(info.FileBytes))},
		[]string{"Directories", fmt.Sprintf("%d (%s)", info.TotalDirectories, vault.HumanSize(info.DirectoryBytes))},
		[]string{"Notes", strconv.Itoa(info.MarkdownFiles)},
		[]string{"Editor", info.Editor},
		[]string{"Ident key", info.IdentKey},
		[]string{"Blacklist", strings.Join(info.Blacklist, ", ")},
		[]string{"Journal template", info.JournalTemplate},
		[]string{"Today's journal", info.JournalPath},
		[]string{"Version", version},
	)

	sections := []string{
		styles.TitleStyle.Render("Obsidian Vault Information"),
		summary.String(),
	}

	if len(info.Extensions) == 0 {
		sections = append(sections, styles.HelpStyle.Render("No files found"))
	} else {
		extensions := newTable("Extension", "Files", "Size")
		for _, ext := range info.Extensions {
			extensions.Row(ext.Extension, strconv.Itoa(ext.Count), vault.HumanSize(ext.Size))
		}
		sections = append(sections, extensions.String())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.TableHeaderStyle
			case col == 0:
				return styles.TableKeyStyle
			default:
				return styles.TableCellStyle
			}
		})
}
