// Package forms turns binding failures into per-field error maps so every
// endpoint reports validation problems the same way.
package forms

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps each failed field to a human-readable message. Errors
// that are not field-level (malformed JSON and the like) land under "_form".
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[toSnake(fe.Field())] = message(fe)
		}
		return out
	}

	out["_form"] = err.Error()
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "eqfield":
		return "must match " + toSnake(fe.Param())
	default:
		return "invalid value"
	}
}

func toSnake(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// break before an upper rune unless it continues an acronym run
			startsWord := i > 0 && !unicode.IsUpper(runes[i-1])
			endsAcronym := i > 0 && i+1 < len(runes) && unicode.IsUpper(runes[i-1]) && !unicode.IsUpper(runes[i+1])
			if startsWord || endsAcronym {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
