package cli

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/moddeps/pkg/config"
)

// configCommand groups commands that inspect the resolved configuration.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect the configuration used for scans.

Settings are read, in increasing priority, from built-in defaults, the
config file, MODDEPS_* environment variables and command-line flags.`,
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if path != "" {
				fmt.Fprintf(w, "# %s\n", path)
			}
			return toml.NewEncoder(w).Encode(cfg)
		},
	}
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			_, path, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if path != "" {
				printKeyValue(w, "config file", path)
				return nil
			}

			dir, err := config.Dir()
			if err != nil {
				return err
			}
			printKeyValue(w, "config file", filepath.Join(dir, config.FileName)+StyleDim.Render(" (not found)"))
			printKeyValue(w, "environment", config.EnvPrefix+"_*")
			return nil
		},
	}
}
