package form

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-flyweight/composite"
)

// Validator is the value carried by every form node. Groups carry the zero
// Validator.
type Validator struct {
	Key    string
	Source map[string]any
	Rules  []validation.Rule
}

// Check runs the rules against Source[Key], stopping at the first failure.
func (v Validator) Check() error {
	if len(v.Rules) == 0 {
		return nil
	}
	return validation.Validate(v.Source[v.Key], v.Rules...)
}

// Field returns a leaf validating source[name].
func Field(name string, source map[string]any, rules ...validation.Rule) *composite.Leaf[Validator] {
	return composite.NewLeaf(name, Validator{Key: name, Source: source, Rules: rules})
}

// Group returns a branch over children. It panics if a child already
// belongs to another group.
func Group(name string, children ...composite.Node[Validator]) *composite.Branch[Validator] {
	return composite.NewBranch(name, Validator{}, children...)
}

// Validate returns the first failing field in pre-order as a *FieldError, or
// nil when every field passes.
func Validate(root composite.Node[Validator]) error {
	var first error
	visit(root, func(path string, err error) {
		if first == nil {
			first = &FieldError{Path: path, Err: err}
		}
	})
	return first
}

// ValidateAll checks every field and returns a validation.Errors keyed by
// field path, or nil when every field passes.
func ValidateAll(root composite.Node[Validator]) error {
	errs := validation.Errors{}
	visit(root, func(path string, err error) {
		errs[path] = err
	})
	return errs.Filter()
}

func visit(root composite.Node[Validator], fail func(path string, err error)) {
	var path composite.Path
	composite.Walk(root, func(n composite.Node[Validator], depth int) {
		path = path.Enter(n.Name(), depth)
		if !n.IsLeaf() {
			return
		}
		if err := n.Value().Check(); err != nil {
			fail(fieldPath(path), err)
		}
	})
}

// fieldPath drops the root group's name.
func fieldPath(p composite.Path) string {
	if len(p) > 1 {
		p = p[1:]
	}
	return p.String()
}
