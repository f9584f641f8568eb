package schema

import (
	"fmt"
	"slices"
)

// Validate structurally checks a decoded JSON value against the descriptor.
// It descends into declared nested shapes but does not semantically
// cross-check field contents. Required fields must be present; declared
// arrays may be empty. Fields not named in the descriptor are tolerated.
func Validate(s *Schema, v any) error {
	return validate(s, v, "$")
}

func validate(s *Schema, v any, path string) error {
	switch s.Kind {
	case KindString:
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("%s: expected string, got %T", path, v)
		}
		if len(s.Enum) > 0 && !slices.Contains(s.Enum, str) {
			return fmt.Errorf("%s: value %q is not one of %v", path, str, s.Enum)
		}
	case KindNumber:
		if _, ok := v.(float64); !ok {
			return fmt.Errorf("%s: expected number, got %T", path, v)
		}
	case KindBoolean:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%s: expected boolean, got %T", path, v)
		}
	case KindArray:
		arr, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%s: expected array, got %T", path, v)
		}
		for i, elem := range arr {
			if err := validate(s.Items, elem, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object, got %T", path, v)
		}
		for _, f := range s.Fields {
			fv, present := obj[f.Name]
			if !present {
				if f.Required {
					return fmt.Errorf("%s: missing required field %q", path, f.Name)
				}
				continue
			}
			if err := validate(f.Schema, fv, path+"."+f.Name); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%s: unknown schema kind %q", path, s.Kind)
	}
	return nil
}
