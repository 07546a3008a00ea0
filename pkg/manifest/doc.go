// Package manifest extracts mod identifiers and dependencies from the
// manifests embedded in mod archives.
//
// # Formats
//
// Two manifest formats are understood:
//
//   - mods.toml (Forge and NeoForge): the first [[mods]] table names the mod,
//     and [[dependencies.<modId>]] tables list what it needs.
//   - fabric.mod.json (Fabric and Quilt loaders): "id" names the mod and the
//     keys of the "depends" object list what it needs.
//
// Each format is handled by a [Parser]. Parsers only see the raw bytes of
// one entry; opening archives is the job of package scan.
//
// # Filtering
//
// References to the mod loader itself ("forge") and to the base game
// ("minecraft") are never reported as dependencies. The set is configurable
// through [Options.Excluded].
//
// A manifest whose identifier is missing, empty or literally "unknown"
// produces no [Record]: Parse returns (nil, nil).
//
// # Mandatory flag
//
// Forge marks each dependency with mandatory = true|false (NeoForge uses
// type = "required"|"optional"). By default every dependency is kept. Set
// [Options.MandatoryOnly] to keep only required ones.
package manifest
