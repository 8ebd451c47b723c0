package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"obsidian-cli/internal/tui/styles"
	"obsidian-cli/internal/ui"
	"obsidian-cli/internal/vault"
)

const markdownStyleTimeout = 50 * time.Millisecond

func newNewCommand(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new <page>",
		Short: "Create a note with default frontmatter",
		Long: `Create a note with default frontmatter. When stdin is piped its content
becomes the note body; otherwise the note is opened in the editor.`,
		Example: `  obsidian-cli new "Projects/Roadmap"
  echo "Buy milk" | obsidian-cli new Inbox/todo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			piped := a.stdinPiped(in)

			var body string
			if piped {
				data, err := io.ReadAll(in)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				if trimmed := strings.TrimSpace(string(data)); trimmed != "" {
					body = trimmed + "\n"
				}
				a.logger.Info("Using content from stdin", "bytes", len(data))
			}

			full, err := a.vault.NewNote(args[0], body, force)
			if err != nil {
				return err
			}
			a.logger.Info("Created note", "path", full, "force", force)

			if piped {
				return nil
			}
			return a.editorRunner().Edit(full)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing note")
	return cmd
}

func newCatCommand(a *app) *cobra.Command {
	var showFrontmatter, render bool
	cmd := &cobra.Command{
		Use:   "cat <page>",
		Short: "Print the content of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := a.vault.ReadNote(args[0], showFrontmatter)
			if err != nil {
				return err
			}
			if render {
				content, err = ui.RenderMarkdown(content, ui.DetectMarkdownStyle(markdownStyleTimeout), 0)
				if err != nil {
					return err
				}
			}
			_, err = io.WriteString(cmd.OutOrStdout(), content)
			return err
		},
	}
	cmd.Flags().BoolVarP(&showFrontmatter, "show-frontmatter", "s", false, "include the frontmatter block")
	cmd.Flags().BoolVarP(&render, "render", "r", false, "render Markdown for the terminal")
	return cmd
}

func newEditCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <page>",
		Short: "Open a note in the editor",
		Long:  "Open a note in the editor and refresh its modified timestamp afterwards.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			full, err := a.vault.Resolve(args[0])
			if err != nil {
				return err
			}
			if err := a.editorRunner().Edit(full); err != nil {
				return err
			}
			return a.vault.Touch(args[0])
		},
	}
}

func newRmCommand(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "rm <page>",
		Short: "Remove a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			full, err := a.vault.Resolve(args[0])
			if err != nil {
				return err
			}

			if !force {
				question := fmt.Sprintf("Are you sure you want to delete '%s'?", a.vault.Rel(full))
				ok, err := a.confirm(question, cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled.")
					return nil
				}
			}

			removed, err := a.vault.RemoveNote(args[0])
			if err != nil {
				return err
			}
			a.logger.Info("File removed", "path", removed)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "remove without asking")
	return cmd
}

func newFindCommand(a *app) *cobra.Command {
	var exact bool
	cmd := &cobra.Command{
		Use:   "find <term>",
		Short: "Find notes by name",
		Long: `Find notes whose name matches term. Without --exact a note matches on a
case-insensitive substring or fuzzy match of its name or frontmatter title.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := args[0]
			a.logger.Info("Searching for page", "term", term, "exact", exact)

			matches, err := a.vault.FindNotes(term, exact)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), styles.WarningStyle.Render(fmt.Sprintf("No files found matching '%s'", term)))
				return nil
			}

			out := cmd.OutOrStdout()
			for _, m := range matches {
				fmt.Fprintln(out, m)
				if a.cfg.Verbose {
					if title, err := a.vault.GetMeta(m, "title"); err == nil {
						fmt.Fprintf(out, "  title: %v\n", title)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&exact, "exact", "e", false, "match note names exactly")
	return cmd
}

func newLsCommand(a *app) *cobra.Command {
	var withDates bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List the notes of the vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			notes, err := a.vault.ListNoteInfo()
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), ui.RenderNoteList(notes, withDates))
			return err
		},
	}
	cmd.Flags().BoolVarP(&withDates, "date", "d", false, "show the modified date of each note")
	return cmd
}

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show vault statistics and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := a.vault.Info()
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), ui.RenderInfo(info, version))
			return err
		},
	}
}

func newRenameCommand(a *app) *cobra.Command {
	var link bool
	cmd := &cobra.Command{
		Use:   "rename <page> <new-name>",
		Short: "Rename a note and optionally update wiki links",
		Long: `Rename a note. A bare new name keeps the note in its directory; a name
with a directory is taken relative to the vault root. With --link, wiki links
to the old name are rewritten in every note outside the blacklist.`,
		Example: `  obsidian-cli rename "Projects/Plan" Roadmap --link
  obsidian-cli rename Inbox/idea Archive/2025/idea`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.vault.Rename(args[0], args[1], link)
			if result != nil {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s Renamed: %s -> %s\n", styles.SuccessStyle.Render("✓"), result.From, result.To)
				for _, u := range result.Updated {
					fmt.Fprintf(out, "  Updated %d link(s) in %s\n", u.Links, u.Path)
				}
				if link && err == nil {
					if len(result.Updated) == 0 {
						fmt.Fprintf(out, "No wiki links to update for '%s'\n", vault.Stem(result.From))
					} else {
						fmt.Fprintf(out, "Updated %d wiki link(s) across %d file(s)\n", result.Links(), len(result.Updated))
					}
				}
			}
			if err != nil {
				return err
			}
			a.logger.Info("Renamed note", "from", result.From, "to", result.To, "links", result.Links())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&link, "link", "l", false, "update wiki links to the renamed note")
	return cmd
}
