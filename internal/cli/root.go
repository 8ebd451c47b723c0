// Package cli implements the obsidian-cli command tree on cobra.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"obsidian-cli/internal/config"
	"obsidian-cli/internal/editor"
	"obsidian-cli/internal/logging"
	"obsidian-cli/internal/tui/confirm"
	"obsidian-cli/internal/vault"
)

// skipVault marks commands that run without a resolved vault.
const skipVault = "skip-vault"

// app holds the state shared by all commands of one invocation.
type app struct {
	configPath string
	vaultPath  string
	blacklist  string
	editorCmd  string
	verbose    bool

	cfg    *config.Config
	vault  *vault.Vault
	logger *logging.AppLogger

	newEditor  func(command string) editor.Runner
	confirm    func(question string, in io.Reader, out io.Writer) (bool, error)
	stdinPiped func(in io.Reader) bool
}

func newApp() *app {
	return &app{
		newEditor: func(command string) editor.Runner {
			return editor.New(command)
		},
		confirm:    confirm.Ask,
		stdinPiped: isPiped,
	}
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

// Execute runs the command tree with ctx and returns the first error.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "obsidian-cli",
		Short: "Work with an Obsidian vault from the command line",
		Long: `obsidian-cli creates, finds, reads and edits the Markdown notes of an
Obsidian vault. The serve command exposes the same operations to AI
assistants through the Model Context Protocol on stdin/stdout.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.vaultPath, "vault", "v", "", "path to the Obsidian vault (env "+config.EnvVault+")")
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (env "+config.EnvConfig+")")
	flags.StringVarP(&a.blacklist, "blacklist", "b", "", "colon-separated patterns to exclude (env "+config.EnvBlacklist+")")
	flags.StringVar(&a.editorCmd, "editor", "", "editor command (env "+config.EnvEditor+")")
	flags.BoolVar(&a.verbose, "verbose", false, "log progress to stderr (env "+config.EnvVerbose+")")

	root.AddCommand(
		newAddUIDCommand(a),
		newCatCommand(a),
		newConfigCommand(a),
		newEditCommand(a),
		newFindCommand(a),
		newInfoCommand(a),
		newJournalCommand(a),
		newLsCommand(a),
		newMetaCommand(a),
		newNewCommand(a),
		newQueryCommand(a),
		newRenameCommand(a),
		newRmCommand(a),
		newServeCommand(a),
		newVersionCommand(),
	)
	return root
}

// setup loads configuration, applies environment and flag overrides, builds the
// logger and resolves the vault.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	overrides := config.Overrides{
		Vault:     a.vaultPath,
		Blacklist: a.blacklist,
		Editor:    a.editorCmd,
	}
	if cmd.Flags().Changed("verbose") {
		overrides.Verbose = &a.verbose
	}
	cfg.Apply(os.Getenv, overrides)
	a.cfg = cfg

	if os.Getenv("DEBUG") != "" {
		a.logger = logging.NewAppLogger()
	} else {
		a.logger = logging.NewAppLoggerTo(cmd.ErrOrStderr(), cfg.Verbose)
	}
	logging.SetDefault(a.logger)
	a.logger.DebugObject("config", cfg)

	if cmd.Annotations[skipVault] != "" {
		return nil
	}

	v, err := cfg.NewVault()
	if err != nil {
		return err
	}
	a.vault = v
	a.logger.Debug("Vault resolved", "path", v.Path, "blacklist", v.Blacklist, "command", cmd.Name())
	return nil
}

func (a *app) editorRunner() editor.Runner {
	return a.newEditor(a.vault.Editor)
}

func isPiped(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}
