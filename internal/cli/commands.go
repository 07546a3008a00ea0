package cli

import (
	"github.com/spf13/cobra"
)

// =============================================================================
// Report Commands
// =============================================================================

func (c *CLI) tableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table <folder>",
		Short: "Print every mod with its dependencies",
		Args:  folderArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.scanFolder(cmd, args[0])
			if err != nil {
				return err
			}
			writeTable(cmd.OutOrStdout(), res.Graph)
			return nil
		},
	}
}

func (c *CLI) treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <folder> <mod>",
		Short: "Print the dependency tree of a mod",
		Long: `Print the dependency tree of a mod. A mod that appears more than once is
expanded the first time only; later occurrences are marked "already shown".`,
		Args: folderArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.scanFolder(cmd, args[0])
			if err != nil {
				return err
			}
			return writeTree(cmd.OutOrStdout(), res.Graph, args[1])
		},
	}
}

func (c *CLI) leavesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "leaves <folder>",
		Aliases: []string{"unreferenced"},
		Short:   "List mods that no other mod depends on",
		Args:    folderArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.scanFolder(cmd, args[0])
			if err != nil {
				return err
			}
			writeLeaves(cmd.OutOrStdout(), res.Graph)
			return nil
		},
	}
}

func (c *CLI) dependentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dependents <folder> <mod>",
		Short: "List mods that depend on a mod",
		Args:  folderArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.scanFolder(cmd, args[0])
			if err != nil {
				return err
			}
			return writeDependents(cmd.OutOrStdout(), res.Graph, args[1])
		},
	}
}

func (c *CLI) missingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "missing <folder>",
		Short: "List dependencies that are not installed",
		Args:  folderArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.scanFolder(cmd, args[0])
			if err != nil {
				return err
			}
			writeMissing(cmd.OutOrStdout(), res.Graph)
			return nil
		},
	}
}

func (c *CLI) checkCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "check <folder>",
		Short: "Check declared version requirements against installed mods",
		Long: `Check the version requirements each mod declares against the versions of
the installed mods. Requirements on mods that are not installed are reported
by "missing". Requirements that cannot be parsed, such as build placeholders,
are listed as unchecked.`,
		Args: folderArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.scanFolder(cmd, args[0])
			if err != nil {
				return err
			}
			writeCheck(cmd.OutOrStdout(), res.Graph, all)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "also list satisfied requirements")
	return cmd
}
