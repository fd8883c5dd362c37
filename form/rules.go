package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var mobilePattern = regexp.MustCompile(`^1[358][0-9]{9}$`)

// Required fails on nil and zero values.
func Required(msg string) validation.Rule {
	return validation.Required.Error(msg)
}

// MinLength fails when the value, read as text, has fewer than n runes. An
// empty value fails too.
func MinLength(n int, msg string) validation.Rule {
	return textRule{rules: []validation.Rule{
		validation.Required.Error(msg),
		validation.RuneLength(n, 0).Error(msg),
	}}
}

// Mobile fails unless the value, read as text, is an 11 digit mobile number
// starting with 13, 15 or 18.
func Mobile(msg string) validation.Rule {
	return textRule{rules: []validation.Rule{
		validation.Required.Error(msg),
		validation.Match(mobilePattern).Error(msg),
	}}
}

// Custom fails when check returns false.
func Custom(check func(value any) bool, msg string) validation.Rule {
	return validation.By(func(value any) error {
		if check(value) {
			return nil
		}
		return validation.NewError("validation_custom", msg)
	})
}

// ParseRule builds a rule from its textual form: "required", "mobile" or
// "minLength:N".
func ParseRule(def, msg string) (validation.Rule, error) {
	name, arg, hasArg := strings.Cut(def, ":")
	switch name {
	case "required":
		return Required(msg), nil
	case "mobile":
		return Mobile(msg), nil
	case "minLength":
		if !hasArg {
			return nil, fmt.Errorf("%w: %q needs a length", ErrRuleArgument, def)
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrRuleArgument, def)
		}
		return MinLength(n, msg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, def)
	}
}

// textRule runs rules against the value rendered as a string, so numbers
// read from a source can be checked like text.
type textRule struct {
	rules []validation.Rule
}

func (r textRule) Validate(value any) error {
	return validation.Validate(asText(value), r.rules...)
}

func asText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
