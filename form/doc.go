// Package form validates nested data sources with composite trees.
//
// A Field reads one key from its source map and runs its rules in order; the
// first failing rule is the field's error. A Group nests fields and other
// groups. Validate reports the first failing field in pre-order, which lets
// a caller mirror the shape of the data it checks:
//
//	root := form.Group("form",
//		form.Group("d1",
//			form.Field("name", d1, form.Required("d1 name is required")),
//		),
//		form.Field("d3", data, form.MinLength(6, "d3 is too short")),
//	)
//	if err := form.Validate(root); err != nil {
//		// err is a *form.FieldError with Path "d3"
//	}
//
// Rules are plain ozzo-validation rules, so any validation.Rule works next to
// the helpers defined here.
package form
