package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matzehuels/moddeps/pkg/errors"
)

// FabricParser reads fabric.mod.json manifests.
type FabricParser struct {
	file     string
	excluded excluder
}

// NewFabricParser creates a fabric.mod.json parser.
func NewFabricParser(opts Options) *FabricParser {
	opts = opts.WithDefaults()
	return &FabricParser{file: opts.FabricFile, excluded: excluder(opts.Excluded)}
}

func (p *FabricParser) Type() string              { return DefaultFabricFile }
func (p *FabricParser) Supports(name string) bool { return strings.HasSuffix(name, p.file) }

func (p *FabricParser) Parse(data []byte) (*Record, error) {
	var doc fabricModJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &errors.ParseError{Format: p.Type(), Err: err}
	}
	id := normalizeID(asString(doc.ID))
	if id == Unknown {
		return nil, nil
	}

	keys, values, err := orderedObject(doc.Depends)
	if err != nil {
		return nil, &errors.ParseError{Format: p.Type(), Err: fmt.Errorf("depends: %w", err)}
	}

	rec := &Record{
		ID:           id,
		Version:      asString(doc.Version),
		Dependencies: []string{},
		Constraints:  map[string]string{},
		Format:       p.Type(),
	}
	for _, dep := range keys {
		if p.excluded.excluded(dep) {
			continue
		}
		rec.Dependencies = append(rec.Dependencies, dep)
		if c := versionRequirement(values[dep]); c != "" {
			rec.Constraints[dep] = c
		}
	}
	return rec, nil
}

// fabricModJSON keeps scalar fields untyped so a field of an unexpected
// type reads as absent instead of failing the whole manifest.
type fabricModJSON struct {
	ID      any             `json:"id"`
	Version any             `json:"version"`
	Depends json.RawMessage `json:"depends"`
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// orderedObject returns the keys of a JSON object in document order along
// with their raw values. A missing or null object yields no keys.
func orderedObject(raw json.RawMessage) ([]string, map[string]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected key %v", tok)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = v
	}
	return keys, values, nil
}

// versionRequirement flattens a Fabric version requirement. A string is
// returned as-is; an array of alternatives is joined with "||".
func versionRequirement(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var alts []string
	if err := json.Unmarshal(raw, &alts); err == nil {
		return strings.Join(alts, " || ")
	}
	return ""
}
