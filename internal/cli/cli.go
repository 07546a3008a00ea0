// Package cli implements the moddeps command-line interface.
//
// The root command scans a mods folder and opens an interactive menu; the
// subcommands print one report and exit so they can be used in scripts:
//   - table: every mod with its dependencies
//   - tree: dependency tree and dependents of one mod
//   - leaves: mods nothing depends on
//   - dependents: mods that depend on one mod
//   - missing: dependencies that are not installed
//   - check: declared version requirements against installed versions
//   - export: DOT, SVG or JSON export of the graph
//   - config: inspect the resolved configuration
//
// Loggers are passed through context.Context; all commands accept --verbose
// (registered by the main package) for debug output.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/moddeps/pkg/buildinfo"
	"github.com/matzehuels/moddeps/pkg/config"
	"github.com/matzehuels/moddeps/pkg/errors"
	"github.com/matzehuels/moddeps/pkg/manifest"
	"github.com/matzehuels/moddeps/pkg/scan"
)

// =============================================================================
// Constants
// =============================================================================

const appName = config.AppName

// Flag names shared by every command that scans a folder.
const (
	flagConfig        = "config"
	flagMandatoryOnly = "mandatory-only"
	flagExclude       = "exclude"
	flagExt           = "ext"
	flagTUI           = "tui"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var useTUI bool

	root := &cobra.Command{
		Use:   appName + " <folder>",
		Short: "moddeps lists the dependencies between Minecraft mods",
		Long: `moddeps reads the mods.toml and fabric.mod.json manifests inside every mod
archive of a folder and shows which mods depend on which. Use it to find
libraries that nothing needs any more, dependencies that are missing, and
version requirements that the installed mods do not meet.

Leading and trailing spaces in the folder path are ignored. A folder named
like a subcommand (table, check, ...) runs that subcommand; pass it as
./table instead.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         folderArgs(0),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.scanFolder(cmd, args[0])
			if err != nil {
				return err
			}
			if useTUI {
				return runTUI(cmd.Context(), res.Graph, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			printBanner(cmd.OutOrStdout())
			return runMenu(cmd.Context(), res.Graph, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, flagConfig, "", "config file (default $XDG_CONFIG_HOME/moddeps/config.toml)")
	pf.Bool(flagMandatoryOnly, false, "only count dependencies marked mandatory or required")
	pf.StringSlice(flagExclude, manifest.DefaultExcluded(), "dependency ids to ignore")
	pf.StringSlice(flagExt, scan.DefaultExtensions, "archive extensions to scan")
	root.Flags().BoolVar(&useTUI, flagTUI, false, "use the full-screen menu")

	root.AddCommand(c.tableCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.leavesCommand())
	root.AddCommand(c.dependentsCommand())
	root.AddCommand(c.missingCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// folderArgs requires a folder followed by exactly extra arguments.
func folderArgs(extra int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
			return errors.New(errors.ErrCodeInvalidInput, "path not provided")
		}
		if len(args) != extra+1 {
			return errors.New(errors.ErrCodeInvalidInput, "accepts %d arg(s), received %d", extra+1, len(args))
		}
		return nil
	}
}

// =============================================================================
// Config & Scanning
// =============================================================================

// loadConfig resolves the configuration with cmd's flags as the top layer.
func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	return config.Load(config.LoadOptions{
		Path: c.configPath,
		Flags: map[string]*pflag.Flag{
			config.KeyMandatoryOnly: cmd.Flag(flagMandatoryOnly),
			config.KeyExcluded:      cmd.Flag(flagExclude),
			config.KeyExtensions:    cmd.Flag(flagExt),
		},
	})
}

// scanFolder loads the configuration and scans folder.
// Surrounding spaces in folder are trimmed.
func (c *CLI) scanFolder(cmd *cobra.Command, folder string) (*scan.Result, error) {
	cfg, path, err := c.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return scanWithConfig(cmd.Context(), cfg, path, strings.TrimSpace(folder))
}

func scanWithConfig(ctx context.Context, cfg *config.Config, path, folder string) (*scan.Result, error) {
	logger := loggerFromContext(ctx)
	if path != "" {
		logger.Debug("Loaded config", "path", path)
	}

	prog := newProgress(logger)
	res, err := scan.Dir(ctx, folder, scan.Options{
		Extensions: cfg.Extensions,
		Parsers:    manifest.Parsers(cfg.ManifestOptions()),
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	prog.done(scanSummary(res))
	return res, nil
}
