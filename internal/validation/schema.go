// Package validation implements declarative request-body validation. A
// Schema describes the accepted shape of one payload; validating coerces the
// raw body into that shape, stripping unknown fields, applying defaults, and
// collecting every field error in declaration order.
package validation

import (
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"academy/pkg/apperrors"
)

// Kind enumerates the supported field types.
type Kind int

const (
	String Kind = iota
	Number
	Int
	Bool
	UUID
	Email
	StringSlice
)

// Field declares one accepted payload field.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// AllowEmpty lets explicit null or "" stand in for "absent" on optional
	// fields. Required fields always reject both.
	AllowEmpty bool
	// Default is applied when the field is missing from the payload.
	Default any
	// MinLen applies to String fields (minimum rune count).
	MinLen int
	// Min and Max bound Number and Int fields.
	Min *float64
	Max *float64
}

// Schema is an ordered set of field declarations. Order matters: error
// messages are reported in declaration order.
type Schema struct {
	Fields []Field
}

// Validate coerces raw into the declared shape. Unknown fields are dropped,
// not rejected. Every violated field contributes one message; messages are
// joined with ", " into a single validation error.
func (s *Schema) Validate(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s.Fields))
	var problems []string

	for _, f := range s.Fields {
		value, present := raw[f.Name]

		if !present {
			if f.Required {
				problems = append(problems, fmt.Sprintf("%q is required", f.Name))
				continue
			}
			if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}

		if value == nil {
			if f.Required || !f.AllowEmpty {
				problems = append(problems, fmt.Sprintf("%q must be %s", f.Name, f.Kind.article()))
				continue
			}
			out[f.Name] = nil
			continue
		}

		if str, ok := value.(string); ok && str == "" && f.Kind != StringSlice {
			if f.Required {
				problems = append(problems, fmt.Sprintf("%q is not allowed to be empty", f.Name))
				continue
			}
			if f.AllowEmpty {
				out[f.Name] = ""
				continue
			}
			problems = append(problems, fmt.Sprintf("%q is not allowed to be empty", f.Name))
			continue
		}

		coerced, msg := coerce(f, value)
		if msg != "" {
			problems = append(problems, msg)
			continue
		}
		out[f.Name] = coerced
	}

	if len(problems) > 0 {
		return nil, apperrors.New(apperrors.CodeValidation, strings.Join(problems, ", "))
	}
	return out, nil
}

// coerce converts value to the field's kind, mirroring permissive JSON
// conventions: numeric strings convert to numbers, "true"/"false" to bools.
func coerce(f Field, value any) (any, string) {
	switch f.Kind {
	case String:
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Sprintf("%q must be a string", f.Name)
		}
		if f.MinLen > 0 && len([]rune(str)) < f.MinLen {
			return nil, fmt.Sprintf("%q length must be at least %d characters long", f.Name, f.MinLen)
		}
		return str, ""

	case Number, Int:
		num, ok := toFloat(value)
		if !ok {
			return nil, fmt.Sprintf("%q must be a number", f.Name)
		}
		if f.Kind == Int && num != math.Trunc(num) {
			return nil, fmt.Sprintf("%q must be an integer", f.Name)
		}
		if f.Min != nil && num < *f.Min {
			return nil, fmt.Sprintf("%q must be greater than or equal to %s", f.Name, trimFloat(*f.Min))
		}
		if f.Max != nil && num > *f.Max {
			return nil, fmt.Sprintf("%q must be less than or equal to %s", f.Name, trimFloat(*f.Max))
		}
		return num, ""

	case Bool:
		if b, ok := value.(bool); ok {
			return b, ""
		}
		if str, ok := value.(string); ok {
			if b, err := strconv.ParseBool(str); err == nil {
				return b, ""
			}
		}
		return nil, fmt.Sprintf("%q must be a boolean", f.Name)

	case UUID:
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Sprintf("%q must be a string", f.Name)
		}
		if _, err := uuid.Parse(str); err != nil {
			return nil, fmt.Sprintf("%q must be a valid GUID", f.Name)
		}
		return str, ""

	case Email:
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Sprintf("%q must be a string", f.Name)
		}
		if _, err := mail.ParseAddress(str); err != nil {
			return nil, fmt.Sprintf("%q must be a valid email", f.Name)
		}
		return str, ""

	case StringSlice:
		items, ok := value.([]any)
		if !ok {
			return nil, fmt.Sprintf("%q must be an array", f.Name)
		}
		strs := make([]string, 0, len(items))
		for _, item := range items {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Sprintf("%q must contain only strings", f.Name)
			}
			strs = append(strs, str)
		}
		return strs, ""
	}
	return nil, fmt.Sprintf("%q has an unsupported type", f.Name)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		num, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return num, true
	}
	return 0, false
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (k Kind) article() string {
	switch k {
	case Number, Int:
		return "a number"
	case Bool:
		return "a boolean"
	case StringSlice:
		return "an array"
	default:
		return "a string"
	}
}

// Float is a convenience for bound literals in schema declarations.
func Float(f float64) *float64 { return &f }
