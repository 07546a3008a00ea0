package modgraph

import (
	"encoding/json"
	"fmt"
	"io"
)

type exportGraph struct {
	Mods         []exportMod         `json:"mods"`
	Unreferenced []string            `json:"unreferenced"`
	Missing      []MissingDependency `json:"missing,omitempty"`
}

type exportMod struct {
	ID           string            `json:"id"`
	Version      string            `json:"version,omitempty"`
	Format       string            `json:"format,omitempty"`
	Source       string            `json:"source,omitempty"`
	Dependencies []string          `json:"dependencies"`
	Constraints  map[string]string `json:"constraints,omitempty"`
}

// WriteJSON encodes the graph as JSON and writes it to w. Mods appear in
// key order; the unreferenced and missing sets are included precomputed.
func WriteJSON(g *Graph, w io.Writer) error {
	out := exportGraph{
		Mods:         make([]exportMod, 0, g.Len()),
		Unreferenced: g.Unreferenced(),
		Missing:      g.Missing(),
	}
	if out.Unreferenced == nil {
		out.Unreferenced = []string{}
	}
	for _, id := range g.order {
		m := exportMod{ID: id, Dependencies: g.deps[id]}
		if r, ok := g.records[id]; ok {
			m.Version, m.Format, m.Source = r.Version, r.Format, r.Source
			if len(r.Constraints) > 0 {
				m.Constraints = r.Constraints
			}
		}
		out.Mods = append(out.Mods, m)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
