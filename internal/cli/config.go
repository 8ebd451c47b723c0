package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"obsidian-cli/internal/config"
	"obsidian-cli/internal/tui/styles"
	"obsidian-cli/pkg/fileops"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the configuration",
		Long: `Show the effective configuration, after the config file, environment
variables and flags have been applied, or save it as a config file.`,
		Args: cobra.NoArgs,
	}
	cmd.AddCommand(newConfigShowCommand(a), newConfigInitCommand(a))
	return cmd
}

func newConfigShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Print the effective configuration as YAML",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipVault: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.cfg.WriteYAML(cmd.OutOrStdout())
		},
	}
}

func newConfigInitCommand(a *app) *cobra.Command {
	var (
		path  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a config file",
		Long: `Write the effective configuration to a config file. Without --path the
file is the one obsidian-cli would load, by default config.yaml in the user
config directory. A path ending in .toml is written as TOML.`,
		Example: `  obsidian-cli --vault ~/Notes --editor nvim config init
  obsidian-cli config init --path ./obsidian-cli.toml`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipVault: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := path
			if target == "" {
				target, _ = config.FindConfigFile(a.configPath)
			}
			target = fileops.ExpandPath(target)

			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", target)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check config file: %w", err)
			}

			cfg := *a.cfg
			if cfg.Vault != "" {
				abs, err := filepath.Abs(fileops.ExpandPath(cfg.Vault))
				if err != nil {
					return fmt.Errorf("failed to resolve vault path: %w", err)
				}
				cfg.Vault = abs
			}

			if err := cfg.SaveTo(target); err != nil {
				return err
			}
			a.logger.Info("Saved configuration", "path", target, "vault", cfg.Vault)
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", styles.SuccessStyle.Render("✓"), target)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "config file to write")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	return cmd
}
