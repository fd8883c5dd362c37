package composite

import "errors"

var (
	ErrNotABranch      = errors.New("composite: node is not a branch")
	ErrAlreadyAttached = errors.New("composite: node already has a parent")
	ErrCycle           = errors.New("composite: attaching node would create a cycle")
	ErrNilNode         = errors.New("composite: nil node")
	ErrNotFound        = errors.New("composite: node is not a child")
)
