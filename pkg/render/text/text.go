// Package text renders mod dependency graphs for the terminal. [Table]
// lists every mod with its dependencies, [Tree] draws the dependency tree of
// one mod, and [Missing] and [Checks] tabulate problems found in the graph.
//
// Output is built with lipgloss. Colors are only emitted when the writer is
// a color-capable terminal, so the strings are safe to compare in tests.
package text

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/moddeps/pkg/modgraph"
)

const (
	// NoDependencies fills the table cell of a mod without dependencies.
	NoDependencies = "No mandatory dependencies found."

	// RepeatedSuffix marks a tree node that was expanded earlier.
	RepeatedSuffix = " (already shown)"
	// MissingSuffix marks a tree node that is not installed.
	MissingSuffix = " (not installed)"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(colorDim)
	rootStyle    = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	enumStyle    = lipgloss.NewStyle().Foreground(colorDim).MarginRight(1)
	repeatStyle  = lipgloss.NewStyle().Foreground(colorDim)
	missingStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// Table renders every mod of g, in key order, with its comma-joined
// dependencies. Rows are separated by horizontal rules.
func Table(g *modgraph.Graph) string {
	rows := make([][]string, 0, g.Len())
	for _, id := range g.IDs() {
		deps := NoDependencies
		if d := g.Dependencies(id); len(d) > 0 {
			deps = strings.Join(d, ", ")
		}
		rows = append(rows, []string{id, deps})
	}

	return newTable([]string{"MOD NAME", "DEPENDENCIES"}, rows).Render()
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		BorderRow(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return cellStyle
		})
}

// Tree renders a dependency tree built by [modgraph.Graph.Tree].
func Tree(n *modgraph.TreeNode) string {
	return toLipgloss(n).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumStyle).
		RootStyle(rootStyle).
		String()
}

func toLipgloss(n *modgraph.TreeNode) *tree.Tree {
	t := tree.Root(label(n))
	for _, c := range n.Children {
		if len(c.Children) > 0 {
			t.Child(toLipgloss(c))
			continue
		}
		t.Child(label(c))
	}
	return t
}

func label(n *modgraph.TreeNode) string {
	switch {
	case n.Repeated:
		return n.ID + repeatStyle.Render(RepeatedSuffix)
	case n.Missing:
		return n.ID + missingStyle.Render(MissingSuffix)
	default:
		return n.ID
	}
}

// List renders ids one per line with a bullet, or placeholder when empty.
func List(ids []string, placeholder string) string {
	if len(ids) == 0 {
		return repeatStyle.Render(placeholder)
	}
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(enumStyle.Render("•") + id)
	}
	return b.String()
}
