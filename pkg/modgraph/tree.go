package modgraph

// TreeNode is one entry of a dependency tree.
type TreeNode struct {
	ID       string
	Children []*TreeNode

	// Repeated is set when ID was already expanded earlier in the same
	// tree. The node is kept as a leaf so cycles and diamonds terminate.
	Repeated bool
	// Missing is set when ID is not a key of the graph.
	Missing bool
}

// Tree expands root depth-first in pre-order. Each identifier is expanded
// at most once per call; later occurrences become Repeated leaves.
// Children follow the stored dependency order.
func (g *Graph) Tree(root string) *TreeNode {
	return g.expand(root, make(map[string]bool))
}

func (g *Graph) expand(id string, seen map[string]bool) *TreeNode {
	n := &TreeNode{ID: id}
	if seen[id] {
		n.Repeated = true
		return n
	}
	seen[id] = true

	deps, ok := g.deps[id]
	if !ok {
		n.Missing = true
		return n
	}
	for _, d := range deps {
		n.Children = append(n.Children, g.expand(d, seen))
	}
	return n
}

// Walk visits n and its descendants in pre-order with their depth.
func (n *TreeNode) Walk(fn func(node *TreeNode, depth int)) {
	n.walk(fn, 0)
}

func (n *TreeNode) walk(fn func(*TreeNode, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}
