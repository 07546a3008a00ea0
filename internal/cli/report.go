package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/moddeps/pkg/errors"
	"github.com/matzehuels/moddeps/pkg/modgraph"
	"github.com/matzehuels/moddeps/pkg/render/text"
)

// Reports shared by the menu, the full-screen menu and the subcommands.

func writeTable(w io.Writer, g *modgraph.Graph) {
	fmt.Fprintln(w, text.Table(g))
}

func writeLeaves(w io.Writer, g *modgraph.Graph) {
	leaves := g.Unreferenced()
	printTitle(w, fmt.Sprintf("Mods without dependents (%d)", len(leaves)))
	fmt.Fprintln(w, text.List(leaves, "Every mod is required by another mod."))
}

// lookupMod trims id and fails with NOT_FOUND when the graph has never
// heard of it, neither as a mod nor as a dependency.
func lookupMod(g *modgraph.Graph, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "mod id not provided")
	}
	if !g.Has(id) && len(g.Dependents(id)) == 0 {
		return "", errors.New(errors.ErrCodeNotFound, "mod %q not found", id)
	}
	return id, nil
}

func writeTree(w io.Writer, g *modgraph.Graph, id string) error {
	id, err := lookupMod(g, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, text.Tree(g.Tree(id)))
	return nil
}

func writeDependents(w io.Writer, g *modgraph.Graph, id string) error {
	id, err := lookupMod(g, id)
	if err != nil {
		return err
	}
	deps := g.Dependents(id)
	printTitle(w, fmt.Sprintf("Mods depending on %s (%d)", id, len(deps)))
	fmt.Fprintln(w, text.List(deps, "Nothing depends on this mod."))
	return nil
}

// writeModReport prints the dependency tree of id followed by its dependents.
func writeModReport(w io.Writer, g *modgraph.Graph, id string) error {
	if err := writeTree(w, g, id); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return writeDependents(w, g, id)
}

// writeMissing prints uninstalled dependencies and reports how many there are.
func writeMissing(w io.Writer, g *modgraph.Graph) int {
	missing := g.Missing()
	if len(missing) == 0 {
		printSuccess(w, "All dependencies are installed")
		return 0
	}
	printWarning(w, "%d dependencies are not installed", len(missing))
	fmt.Fprintln(w, text.Missing(missing))
	return len(missing)
}

// writeCheck prints version requirement results. Satisfied requirements
// are only listed when all is set. It returns the number of unsatisfied
// requirements.
func writeCheck(w io.Writer, g *modgraph.Graph, all bool) int {
	results := g.Check()
	problems := modgraph.Problems(results)

	failed := 0
	for _, r := range problems {
		if r.Status == modgraph.StatusUnsatisfied {
			failed++
		}
	}

	switch {
	case len(results) == 0:
		printInfo(w, "No version requirements to check")
		return 0
	case failed == 0:
		printSuccess(w, "%d version requirements satisfied", len(results)-len(problems))
	default:
		printError(w, "%d of %d version requirements not satisfied", failed, len(results))
	}
	if n := len(problems) - failed; n > 0 {
		printDetail(w, "%d requirements could not be checked", n)
	}

	shown := problems
	if all {
		shown = results
	}
	if len(shown) > 0 {
		fmt.Fprintln(w, text.Checks(shown))
	}
	return failed
}
