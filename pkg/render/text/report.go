package text

import (
	"strings"

	"github.com/matzehuels/moddeps/pkg/modgraph"
)

// Missing renders dependencies that are not installed, one row each, with
// the mods that require them.
func Missing(missing []modgraph.MissingDependency) string {
	rows := make([][]string, 0, len(missing))
	for _, m := range missing {
		rows = append(rows, []string{m.ID, strings.Join(m.RequiredBy, ", ")})
	}
	return newTable([]string{"DEPENDENCY", "REQUIRED BY"}, rows).Render()
}

// Checks renders version requirement results. Unchecked rows carry the
// reason in place of a status.
func Checks(results []modgraph.CheckResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := r.Status.String()
		if r.Status == modgraph.StatusUnchecked && r.Reason != "" {
			status += ": " + r.Reason
		}
		installed := r.Installed
		if installed == "" {
			installed = "?"
		}
		rows = append(rows, []string{r.Mod, r.Dependency, r.Requirement, installed, status})
	}
	return newTable([]string{"MOD", "DEPENDENCY", "REQUIRES", "INSTALLED", "STATUS"}, rows).Render()
}
