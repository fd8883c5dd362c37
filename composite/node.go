package composite

import "fmt"

// Operation is applied to every visited node.
type Operation[T any] func(n Node[T])

// Node is a leaf or a branch carrying a value of type T.
type Node[T any] interface {
	Name() string
	Value() T
	IsLeaf() bool
	// Children returns a copy of the child sequence; nil for leaves.
	Children() []Node[T]
	Apply(op Operation[T])
	AddChild(child Node[T]) error
	RemoveChild(child Node[T]) error

	hasParent() bool
	setParent(bool)
}

type base[T any] struct {
	name     string
	value    T
	attached bool
}

func (n *base[T]) Name() string       { return n.name }
func (n *base[T]) Value() T           { return n.value }
func (n *base[T]) hasParent() bool    { return n.attached }
func (n *base[T]) setParent(has bool) { n.attached = has }

// Leaf is a node without children.
type Leaf[T any] struct {
	base[T]
}

// NewLeaf returns a detached leaf.
func NewLeaf[T any](name string, value T) *Leaf[T] {
	return &Leaf[T]{base: base[T]{name: name, value: value}}
}

func (l *Leaf[T]) IsLeaf() bool { return true }

func (l *Leaf[T]) Children() []Node[T] { return nil }

// Apply runs op on the leaf.
func (l *Leaf[T]) Apply(op Operation[T]) { op(l) }

// AddChild always fails with ErrNotABranch.
func (l *Leaf[T]) AddChild(Node[T]) error { return ErrNotABranch }

// RemoveChild always fails with ErrNotABranch.
func (l *Leaf[T]) RemoveChild(Node[T]) error { return ErrNotABranch }

// Branch owns an ordered sequence of children.
type Branch[T any] struct {
	base[T]
	children []Node[T]
}

// NewBranch returns a detached branch with children attached in order. It
// panics if a child cannot be attached; use Build when children come from
// untrusted input.
func NewBranch[T any](name string, value T, children ...Node[T]) *Branch[T] {
	b, err := Build(name, value, children...)
	if err != nil {
		panic(fmt.Sprintf("composite: NewBranch(%q): %v", name, err))
	}
	return b
}

// Build is NewBranch reporting failures as errors. On failure no child is
// left attached.
func Build[T any](name string, value T, children ...Node[T]) (*Branch[T], error) {
	b := &Branch[T]{base: base[T]{name: name, value: value}}
	for _, c := range children {
		if err := b.AddChild(c); err != nil {
			for _, attached := range b.children {
				attached.setParent(false)
			}
			return nil, err
		}
	}
	return b, nil
}

func (b *Branch[T]) IsLeaf() bool { return false }

func (b *Branch[T]) Children() []Node[T] {
	return append([]Node[T](nil), b.children...)
}

// Apply runs op on the branch, then on each child subtree in order.
func (b *Branch[T]) Apply(op Operation[T]) {
	op(b)
	for _, c := range b.children {
		c.Apply(op)
	}
}

// AddChild appends child and takes ownership of it.
func (b *Branch[T]) AddChild(child Node[T]) error {
	if child == nil {
		return ErrNilNode
	}
	if child.hasParent() {
		return ErrAlreadyAttached
	}
	if contains(child, b) {
		return ErrCycle
	}

	child.setParent(true)
	b.children = append(b.children, child)
	return nil
}

// RemoveChild detaches a direct child so it can be attached elsewhere.
func (b *Branch[T]) RemoveChild(child Node[T]) error {
	for i, c := range b.children {
		if c == child {
			next := make([]Node[T], 0, len(b.children)-1)
			next = append(next, b.children[:i]...)
			b.children = append(next, b.children[i+1:]...)
			c.setParent(false)
			return nil
		}
	}
	return ErrNotFound
}

// contains reports whether target is root or one of its descendants.
func contains[T any](root, target Node[T]) bool {
	if root == target {
		return true
	}
	for _, c := range root.Children() {
		if contains(c, target) {
			return true
		}
	}
	return false
}
