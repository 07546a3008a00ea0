// Package scan walks a folder of mod archives and builds a dependency graph
// from the manifests embedded in them.
//
// Every regular file whose extension is listed in [Options.Extensions] is
// opened as a zip archive; symlinks are followed. For each manifest format
// the first matching entry is decoded; when an archive carries both formats both are decoded
// in entry order and the last record wins in the graph.
//
// Failures are local: an archive that is not a valid zip, or a manifest that
// cannot be decoded, is logged and recorded in [Result.Skipped], and the scan
// moves on. Only an unreadable folder fails the whole scan.
package scan
