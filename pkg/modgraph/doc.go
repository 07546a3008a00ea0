// Package modgraph holds the mod dependency mapping built from a scan and
// answers questions about it.
//
// A [Graph] maps each mod identifier to the ordered list of identifiers it
// depends on. Dependency identifiers need not be keys themselves: a mod may
// require something that is not installed. Such identifiers show up as
// leaves in a [Graph.Tree] and in [Graph.Missing].
//
// The graph is filled once, by [Graph.Add] or [Graph.Set], and is read-only
// afterwards. Adding a second record for an identifier replaces its
// dependency list but keeps its original position, so [Graph.IDs] follows
// the order in which mods were first seen.
//
// # Queries
//
//   - [Graph.Tree]: depth-first expansion from a root, each node expanded once
//   - [Graph.Unreferenced]: mods nothing else depends on
//   - [Graph.Dependents]: mods that depend on a given identifier
//   - [Graph.Missing]: required identifiers that are not installed
//   - [Graph.Check]: declared version requirements against installed versions
package modgraph
