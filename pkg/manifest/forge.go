package manifest

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/moddeps/pkg/errors"
)

// ForgeParser reads mods.toml manifests.
type ForgeParser struct {
	file          string
	excluded      excluder
	mandatoryOnly bool
}

// NewForgeParser creates a mods.toml parser.
func NewForgeParser(opts Options) *ForgeParser {
	opts = opts.WithDefaults()
	return &ForgeParser{
		file:          opts.ForgeFile,
		excluded:      excluder(opts.Excluded),
		mandatoryOnly: opts.MandatoryOnly,
	}
}

func (p *ForgeParser) Type() string              { return DefaultForgeFile }
func (p *ForgeParser) Supports(name string) bool { return strings.HasSuffix(name, p.file) }

// Parse decodes mods.toml into a generic document and reads the fields it
// needs leniently. Only TOML syntax errors are reported; fields of an
// unexpected type are treated as absent.
func (p *ForgeParser) Parse(data []byte) (*Record, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &errors.ParseError{Format: p.Type(), Err: err}
	}
	mods := tables(doc["mods"])
	if len(mods) == 0 {
		return nil, nil
	}

	first := mods[0]
	id := normalizeID(stringField(first, "modId"))
	if id == Unknown {
		return nil, nil
	}

	rec := &Record{
		ID:           id,
		Version:      stringField(first, "version"),
		Dependencies: []string{},
		Constraints:  map[string]string{},
		Format:       p.Type(),
	}
	deps, _ := doc["dependencies"].(map[string]any)
	for _, t := range tables(deps[id]) {
		dep := forgeDependency{
			ModID:        stringField(t, "modId"),
			Mandatory:    t["mandatory"],
			Type:         stringField(t, "type"),
			VersionRange: stringField(t, "versionRange"),
		}
		if dep.ModID == "" || p.excluded.excluded(dep.ModID) {
			continue
		}
		if p.mandatoryOnly && !dep.required() {
			continue
		}
		rec.Dependencies = append(rec.Dependencies, dep.ModID)
		if dep.VersionRange != "" {
			rec.Constraints[dep.ModID] = dep.VersionRange
		}
	}
	return rec, nil
}

// tables returns the tables of a TOML array of tables. Anything else
// yields nil.
func tables(v any) []map[string]any {
	switch v := v.(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, e := range v {
			if t, ok := e.(map[string]any); ok {
				out = append(out, t)
			}
		}
		return out
	}
	return nil
}

// stringField returns t[key] if it is a string.
func stringField(t map[string]any, key string) string {
	s, _ := t[key].(string)
	return s
}

type forgeDependency struct {
	ModID        string
	Mandatory    any // bool in the schema, sometimes written as a string
	Type         string
	VersionRange string
}

// required reports whether the dependency must be present. Forge uses
// mandatory = true, NeoForge uses type = "required".
func (d forgeDependency) required() bool {
	switch m := d.Mandatory.(type) {
	case bool:
		return m
	case string:
		return strings.EqualFold(strings.TrimSpace(m), "true")
	}
	return strings.EqualFold(d.Type, "required")
}
