package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/moddeps/pkg/errors"
	"github.com/matzehuels/moddeps/pkg/modgraph"
	"github.com/matzehuels/moddeps/pkg/render/nodelink"
)

// Export formats.
const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatJSON = "json"
)

var exportFormats = []string{formatDOT, formatSVG, formatJSON}

func (c *CLI) exportCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export <folder>",
		Short: "Export the dependency graph as DOT, SVG or JSON",
		Long: `Export the dependency graph of a mods folder.

  dot   Graphviz source, one box per mod, dashed boxes for missing mods
  svg   the same diagram laid out by the bundled Graphviz
  json  mods with versions, dependencies and requirements`,
		Args: folderArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if !slices.Contains(exportFormats, format) {
				return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want %s)", format, strings.Join(exportFormats, ", "))
			}

			res, err := c.scanFolder(cmd, args[0])
			if err != nil {
				return err
			}

			data, err := exportGraph(cmd.Context(), res.Graph, format, detailed)
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Export complete")
			printFile(w, output)
			printDetail(w, "%d mods · %d dependencies", res.Graph.Len(), res.Graph.EdgeCount())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, svg or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include versions and requirements in diagrams")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(exportFormats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// exportGraph encodes g in format.
func exportGraph(ctx context.Context, g *modgraph.Graph, format string, detailed bool) ([]byte, error) {
	switch format {
	case formatJSON:
		var buf bytes.Buffer
		if err := modgraph.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatSVG:
		loggerFromContext(ctx).Debug("Rendering SVG", "mods", g.Len())
		svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{Detailed: detailed}))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
		return svg, nil
	default:
		return []byte(nodelink.ToDOT(g, nodelink.Options{Detailed: detailed})), nil
	}
}
