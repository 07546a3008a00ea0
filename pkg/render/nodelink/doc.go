// Package nodelink exports mod dependency graphs as node-link diagrams.
//
// [ToDOT] writes Graphviz DOT source with one box per installed mod and one
// arrow per declared dependency. Dependencies that are not installed are
// drawn with a dashed outline so they stand out in large mod packs.
// [RenderSVG] lays the DOT source out with the embedded Graphviz build from
// go-graphviz, so no system binary is required:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// With Options.Detailed set, node labels carry the mod version and source
// archive, and edges carry the declared version requirement.
package nodelink
