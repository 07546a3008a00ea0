package modgraph_test

import (
	"fmt"

	"github.com/matzehuels/moddeps/pkg/modgraph"
)

func ExampleGraph_Unreferenced() {
	g := modgraph.New()
	g.Set("A", []string{"B", "C"})
	g.Set("B", nil)
	g.Set("C", []string{"B"})

	fmt.Println(g.Unreferenced())
	fmt.Println(g.Dependents("B"))
	// Output:
	// [A]
	// [A C]
}

func ExampleGraph_Tree() {
	g := modgraph.New()
	g.Set("A", []string{"B", "C"})
	g.Set("B", nil)
	g.Set("C", []string{"B"})

	g.Tree("A").Walk(func(n *modgraph.TreeNode, depth int) {
		suffix := ""
		if n.Repeated {
			suffix = " (already shown)"
		}
		fmt.Printf("%*s%s%s\n", depth*2, "", n.ID, suffix)
	})
	// Output:
	// A
	//   B
	//   C
	//     B (already shown)
}
