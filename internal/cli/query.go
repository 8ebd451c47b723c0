package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"obsidian-cli/internal/tui/styles"
	"obsidian-cli/internal/ui"
	"obsidian-cli/internal/vault"
)

func newQueryCommand(a *app) *cobra.Command {
	var (
		filter vault.QueryFilter
		style  string
		count  bool
	)

	names := make([]string, len(ui.QueryStyles))
	for i, s := range ui.QueryStyles {
		names[i] = string(s)
	}

	cmd := &cobra.Command{
		Use:   "query <key>",
		Short: "Query frontmatter across the vault",
		Long: `List the notes that define a frontmatter key, optionally narrowed to an
exact value or a substring. List values match when one of their items does.
With --missing, list the notes that do not define the key.`,
		Example: `  obsidian-cli query status --value draft
  obsidian-cli query tags --contains work --style table
  obsidian-cli query uid --missing --count`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			format, err := ui.ParseQueryStyle(style)
			if err != nil {
				return err
			}

			a.logger.Info("Searching for frontmatter key", "key", key,
				"value", filter.Value, "contains", filter.Contains,
				"exists", filter.Exists, "missing", filter.Missing)

			results, err := a.vault.Query(key, filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if count {
				fmt.Fprintf(out, "Found %d matching files\n", len(results))
				return nil
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), styles.WarningStyle.Render("No matching files found"))
				return nil
			}

			rendered, err := ui.RenderQuery(results, format)
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, rendered)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&filter.Value, "value", "", "match notes whose value equals this string")
	flags.StringVar(&filter.Contains, "contains", "", "match notes whose value contains this substring")
	flags.BoolVar(&filter.Exists, "exists", false, "match notes that define the key")
	flags.BoolVar(&filter.Missing, "missing", false, "match notes that do not define the key")
	flags.StringVarP(&style, "style", "s", string(ui.QueryStylePath), "output style ("+strings.Join(names, ", ")+")")
	flags.BoolVar(&count, "count", false, "only print the number of matching notes")
	cmd.MarkFlagsMutuallyExclusive("value", "contains")
	cmd.MarkFlagsMutuallyExclusive("exists", "missing")
	return cmd
}
