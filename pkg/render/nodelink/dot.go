package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/moddeps/pkg/modgraph"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds versions, source archives and requirements to labels.
	Detailed bool
}

// ToDOT converts a mod graph to Graphviz DOT source. Installed mods are
// emitted in key order, followed by missing dependencies in sorted order.
func ToDOT(g *modgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := g.IDs()
	for _, id := range ids {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, nodeLabel(g, id, opts.Detailed))
	}
	for _, m := range g.Missing() {
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", m.ID, m.ID)
	}

	buf.WriteString("\n")
	for _, id := range ids {
		var constraints map[string]string
		if rec, ok := g.Record(id); ok && opts.Detailed {
			constraints = rec.Constraints
		}
		for _, dep := range g.Dependencies(id) {
			if req := constraints[dep]; req != "" {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", id, dep, req)
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", id, dep)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(g *modgraph.Graph, id string, detailed bool) string {
	rec, ok := g.Record(id)
	if !detailed || !ok {
		return id
	}
	parts := []string{id}
	if rec.Version != "" {
		parts = append(parts, rec.Version)
	}
	if rec.Source != "" {
		parts = append(parts, rec.Source)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG lays out DOT source with Graphviz and returns the SVG document.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the point-based size Graphviz emits with a
// viewBox anchored at the origin so browsers scale the diagram.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
