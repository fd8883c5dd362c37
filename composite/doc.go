// Package composite provides a uniform whole/part tree.
//
// Leaves and branches share the Node interface. Apply runs an operation on a
// node and, for branches, on every descendant in pre-order. A node can have
// at most one parent and a branch cannot be attached below itself, so trees
// never contain cycles and Apply always terminates.
//
// Trees are not safe for concurrent mutation.
package composite
