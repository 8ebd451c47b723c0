package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"obsidian-cli/internal/frontmatter"
	"obsidian-cli/internal/tui/styles"
	"obsidian-cli/internal/vault"
)

const journalDateLayout = "2006-01-02"

func newMetaCommand(a *app) *cobra.Command {
	var key, value string
	cmd := &cobra.Command{
		Use:     "meta <page> [key] [value]",
		Aliases: []string{"frontmatter"},
		Short:   "Show or update note frontmatter",
		Long: `Without a key, print every frontmatter entry. With a key, print that entry.
With a key and a value, set the entry; the value is stored as a boolean,
integer, float or [a, b] list when it parses as one, else as a string.
Key and value are given either as arguments or with --key and --value.`,
		Example: `  obsidian-cli meta Projects/Roadmap status draft
  obsidian-cli meta Projects/Roadmap --key tags --value "[work, q3]"`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := args[0]
			out := cmd.OutOrStdout()

			hasKey, hasValue := cmd.Flags().Changed("key"), cmd.Flags().Changed("value")
			switch {
			case (hasKey || hasValue) && len(args) > 1:
				return fmt.Errorf("%w: give key and value as arguments or as flags, not both", vault.ErrInvalidArguments)
			case hasValue && !hasKey:
				return fmt.Errorf("%w: --value requires --key", vault.ErrInvalidArguments)
			case len(args) > 1:
				key, hasKey = args[1], true
			}
			if len(args) > 2 {
				value, hasValue = args[2], true
			}

			switch {
			case !hasKey:
				matter, err := a.vault.Metadata(page)
				if err != nil {
					return err
				}
				if len(matter) == 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), styles.WarningStyle.Render("No frontmatter metadata found for this page"))
					return nil
				}
				for _, k := range matter.Keys() {
					fmt.Fprintf(out, "%s: %s\n", k, frontmatter.FormatValue(matter[k]))
				}
				return nil

			case !hasValue:
				current, err := a.vault.GetMeta(page, key)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", key, frontmatter.FormatValue(current))
				return nil

			default:
				if err := a.vault.SetMeta(page, key, frontmatter.ParseValue(value)); err != nil {
					return err
				}
				a.logger.Info("Updated frontmatter metadata", "page", page, "key", key, "value", value)
				return nil
			}
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "frontmatter key to show or update")
	cmd.Flags().StringVar(&value, "value", "", "new value for --key")
	return cmd
}

func newAddUIDCommand(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "add-uid <page>",
		Short: "Add a unique identifier to a note's frontmatter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := a.vault.AddUID(args[0], force)
			if err != nil {
				return err
			}
			a.logger.Info("Generated new identifier", "key", a.vault.IdentKey, "uid", uid)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing identifier")
	return cmd
}

func newJournalCommand(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Open the journal note for a day",
		Long: `Open the journal note for today, or for --date, creating it from the
journal template when it does not exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := a.vault.Now()
			if date != "" {
				parsed, err := time.ParseInLocation(journalDateLayout, date, time.Local)
				if err != nil {
					return fmt.Errorf("%w: invalid date format %q, use YYYY-MM-DD", vault.ErrInvalidArguments, date)
				}
				day = parsed
			}

			full, created, err := a.vault.EnsureJournal(day)
			if err != nil {
				return err
			}
			a.logger.Info("Journal note", "template", a.vault.JournalTemplate, "path", full, "created", created)

			return a.editorRunner().Edit(full)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "journal date (YYYY-MM-DD), defaults to today")
	return cmd
}
