package modgraph

import (
	"maps"
	"slices"

	"github.com/matzehuels/moddeps/pkg/manifest"
)

// Graph is an ordered mapping from mod identifier to dependency identifiers.
//
// The zero value is not usable - use New to create a valid Graph.
// Graph is not safe for concurrent use.
type Graph struct {
	order   []string
	deps    map[string][]string
	records map[string]*manifest.Record
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		deps:    make(map[string][]string),
		records: make(map[string]*manifest.Record),
	}
}

// FromMap builds a Graph from a plain mapping. Keys are inserted in sorted
// order since map iteration order is random.
func FromMap(m map[string][]string) *Graph {
	g := New()
	for _, id := range slices.Sorted(maps.Keys(m)) {
		g.Set(id, m[id])
	}
	return g
}

// Set stores the dependency list for id, replacing any previous list.
// A nil list is stored as empty so every key has a value.
func (g *Graph) Set(id string, deps []string) {
	if _, ok := g.deps[id]; !ok {
		g.order = append(g.order, id)
	}
	if deps == nil {
		deps = []string{}
	}
	g.deps[id] = slices.Clone(deps)
}

// Add stores a parsed record. Later records for the same identifier win.
func (g *Graph) Add(r *manifest.Record) {
	if r == nil || r.ID == "" {
		return
	}
	g.Set(r.ID, r.Dependencies)
	g.records[r.ID] = r
}

// Has reports whether id is a key (an installed mod).
func (g *Graph) Has(id string) bool {
	_, ok := g.deps[id]
	return ok
}

// Dependencies returns the dependency list of id, or nil if id is not a key.
// The returned slice should not be modified.
func (g *Graph) Dependencies(id string) []string { return g.deps[id] }

// Record returns the manifest record id was built from, if any.
func (g *Graph) Record(id string) (*manifest.Record, bool) {
	r, ok := g.records[id]
	return r, ok
}

// IDs returns every key in first-insertion order.
func (g *Graph) IDs() []string { return slices.Clone(g.order) }

// Len returns the number of keys.
func (g *Graph) Len() int { return len(g.order) }

// EdgeCount returns the total length of all dependency lists.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, d := range g.deps {
		n += len(d)
	}
	return n
}

// Unreferenced returns the keys that appear in no dependency list, sorted.
// These are the mods nothing else needs.
func (g *Graph) Unreferenced() []string {
	referenced := make(map[string]bool)
	for _, deps := range g.deps {
		for _, d := range deps {
			referenced[d] = true
		}
	}
	var out []string
	for _, id := range g.order {
		if !referenced[id] {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Dependents returns the keys whose dependency list contains id, sorted.
func (g *Graph) Dependents(id string) []string {
	var out []string
	for _, k := range g.order {
		if slices.Contains(g.deps[k], id) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// MissingDependency is a required identifier that is not a key.
type MissingDependency struct {
	ID         string   `json:"id"`          // Identifier that no scanned manifest declares
	RequiredBy []string `json:"required_by"` // Mods listing ID as a dependency, sorted
}

// Missing returns every dependency identifier that is not installed, sorted
// by identifier.
func (g *Graph) Missing() []MissingDependency {
	requiredBy := make(map[string][]string)
	for _, k := range g.order {
		for _, d := range g.deps[k] {
			if g.Has(d) || slices.Contains(requiredBy[d], k) {
				continue
			}
			requiredBy[d] = append(requiredBy[d], k)
		}
	}
	out := make([]MissingDependency, 0, len(requiredBy))
	for _, id := range slices.Sorted(maps.Keys(requiredBy)) {
		mods := requiredBy[id]
		slices.Sort(mods)
		out = append(out, MissingDependency{ID: id, RequiredBy: mods})
	}
	return out
}
