package manifest

import (
	"slices"
)

const (
	// Unknown is the identifier assumed when a manifest does not name its mod.
	// Records with this identifier are discarded.
	Unknown = "unknown"

	// PlatformID is the mod loader identifier excluded from dependency lists.
	PlatformID = "forge"
	// GameID is the base game identifier excluded from dependency lists.
	GameID = "minecraft"

	DefaultForgeFile  = "mods.toml"       // Suffix matched for Forge manifests
	DefaultFabricFile = "fabric.mod.json" // Suffix matched for Fabric manifests
)

// DefaultExcluded returns the identifiers dropped from every dependency list.
func DefaultExcluded() []string { return []string{PlatformID, GameID} }

// Record is one mod and the identifiers it depends on, as declared by a
// single manifest.
type Record struct {
	ID           string            // Mod identifier (never empty, never Unknown)
	Version      string            // Declared mod version, may be empty or a build placeholder
	Dependencies []string          // Dependency identifiers in manifest order
	Constraints  map[string]string // Dependency ID -> raw version requirement
	Format       string            // Type() of the parser that produced this record
	Source       string            // Archive file name, set by the scanner
}

// Options configures the parsers.
type Options struct {
	ForgeFile     string   // Entry suffix for Forge manifests (default: mods.toml)
	FabricFile    string   // Entry suffix for Fabric manifests (default: fabric.mod.json)
	Excluded      []string // Identifiers never reported as dependencies (default: forge, minecraft)
	MandatoryOnly bool     // Keep only mandatory Forge dependencies
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.ForgeFile == "" {
		opts.ForgeFile = DefaultForgeFile
	}
	if opts.FabricFile == "" {
		opts.FabricFile = DefaultFabricFile
	}
	if opts.Excluded == nil {
		opts.Excluded = DefaultExcluded()
	}
	return opts
}

// Parser reads one manifest format.
type Parser interface {
	// Type returns the manifest type identifier (e.g., "mods.toml").
	Type() string
	// Supports reports whether the archive entry at name is this format.
	Supports(name string) bool
	// Parse decodes a manifest. It returns (nil, nil) when the manifest
	// does not identify its mod, and a *errors.ParseError when the bytes
	// cannot be decoded.
	Parse(data []byte) (*Record, error)
}

// Parsers returns the parsers for every supported format, Forge first.
func Parsers(opts Options) []Parser {
	return []Parser{NewForgeParser(opts), NewFabricParser(opts)}
}

// Detect finds a parser that supports the given entry name.
func Detect(name string, parsers ...Parser) (Parser, bool) {
	for _, p := range parsers {
		if p.Supports(name) {
			return p, true
		}
	}
	return nil, false
}

// normalizeID maps the empty identifier to Unknown. Other identifiers are
// used verbatim.
func normalizeID(id string) string {
	if id == "" {
		return Unknown
	}
	return id
}

type excluder []string

func (e excluder) excluded(id string) bool { return slices.Contains(e, id) }
