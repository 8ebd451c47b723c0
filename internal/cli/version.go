package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set via ldflags at release time.
var version = "dev"

// Version returns the build version.
func Version() string {
	return version
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version of obsidian-cli",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipVault: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "obsidian-cli %s\n", version)
		},
	}
}
