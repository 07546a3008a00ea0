package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/moddeps/pkg/manifest"
	"github.com/matzehuels/moddeps/pkg/modgraph"
)

func TestToDOT(t *testing.T) {
	g := modgraph.New()
	g.Set("a", []string{"b", "ghost"})
	g.Set("b", nil)

	dot := ToDOT(g, Options{})

	for _, want := range []string{
		"digraph G {",
		`"a" [label="a"];`,
		`"b" [label="b"];`,
		`"a" -> "b";`,
		`"a" -> "ghost";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if !strings.Contains(dot, `"ghost" [label="ghost", style="rounded,filled,dashed"`) {
		t.Errorf("missing dependency not dashed:\n%s", dot)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT() not closed:\n%s", dot)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g := modgraph.New()
	g.Add(&manifest.Record{
		ID:           "create",
		Version:      "0.5.1",
		Source:       "create-0.5.1.jar",
		Dependencies: []string{"flywheel"},
		Constraints:  map[string]string{"flywheel": "[0.6,0.7)"},
	})
	g.Add(&manifest.Record{ID: "flywheel", Version: "0.6.9"})

	dot := ToDOT(g, Options{Detailed: true})

	if !strings.Contains(dot, `"create" [label="create\n0.5.1\ncreate-0.5.1.jar"];`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `"create" -> "flywheel" [label="[0.6,0.7)"];`) {
		t.Errorf("edge requirement missing:\n%s", dot)
	}

	plain := ToDOT(g, Options{})
	if strings.Contains(plain, "0.5.1") {
		t.Errorf("plain output contains version:\n%s", plain)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	bare := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(bare)) != string(bare) {
		t.Error("normalizeViewBox() changed svg without viewBox")
	}
}
