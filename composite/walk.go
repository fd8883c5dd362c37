package composite

import "strings"

// Count returns the number of nodes in the tree rooted at root.
func Count[T any](root Node[T]) int {
	if root == nil {
		return 0
	}
	n := 0
	root.Apply(func(Node[T]) { n++ })
	return n
}

// Walk visits root and its descendants in the same order as Apply, passing
// the depth of each node (root is 0).
func Walk[T any](root Node[T], fn func(n Node[T], depth int)) {
	if root == nil {
		return
	}
	walk(root, 0, fn)
}

func walk[T any](n Node[T], depth int, fn func(Node[T], int)) {
	fn(n, depth)
	for _, c := range n.Children() {
		walk(c, depth+1, fn)
	}
}

// Path tracks the names from the root to the node being walked.
type Path []string

// Enter returns the path for a node named name at depth. The returned slice
// shares storage with p; copy it before keeping it past the next call.
func (p Path) Enter(name string, depth int) Path {
	if depth < len(p) {
		p = p[:depth]
	}
	return append(p, name)
}

// String joins the names with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}
