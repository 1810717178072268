package columnar

import (
	"fmt"

	"github.com/fieldline-ai/fieldline/nested"
	"github.com/fieldline-ai/fieldline/schema"
)

// ValidationError indicates an item whose structural shape does not match the
// target schema. The offending item and schema are surfaced verbatim so the
// failure can be diagnosed without re-running the pipeline.
type ValidationError struct {
	Path   schema.Path
	Reason string
	Item   nested.Item
	Schema *schema.Schema
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("item does not match schema at %q: %s\nitem: %v\nschema: %v",
		e.Path, e.Reason, e.Item, e.Schema.Leaves())
}

// Validate checks that item structurally conforms to sch. It is deterministic
// and has no side effects.
func Validate(item nested.Item, sch *schema.Schema) error {
	err := validateValue(item, &sch.Root, nil)
	if err == nil {
		return nil
	}
	if verr, ok := err.(*ValidationError); ok {
		verr.Item = item
		verr.Schema = sch
	}
	return err
}

func validateValue(v any, f *schema.Field, at schema.Path) error {
	if v == nil {
		// Absent values are legitimate everywhere: signal output is sparse.
		return nil
	}

	switch {
	case f.Fields != nil:
		obj, ok := v.(map[string]any)
		if !ok {
			return &ValidationError{Path: at, Reason: fmt.Sprintf("expected object, got %T", v)}
		}
		for key, sub := range obj {
			child, ok := f.Fields[key]
			if !ok {
				return &ValidationError{Path: at, Reason: fmt.Sprintf("field %q is not in the schema", key)}
			}
			if err := validateValue(sub, child, append(at.Clone(), key)); err != nil {
				return err
			}
		}
		return nil

	case f.Repeated != nil:
		list, ok := v.([]any)
		if !ok {
			return &ValidationError{Path: at, Reason: fmt.Sprintf("expected list, got %T", v)}
		}
		for _, elem := range list {
			if err := validateValue(elem, f.Repeated, append(at.Clone(), schema.Wildcard)); err != nil {
				return err
			}
		}
		return nil

	default:
		return validateScalar(v, f.DType, at)
	}
}

func validateScalar(v any, t schema.DataType, at schema.Path) error {
	ok := false
	switch t {
	case schema.DataTypeBool:
		_, ok = v.(bool)
	case schema.DataTypeInt32, schema.DataTypeInt64:
		switch v.(type) {
		case int, int32, int64:
			ok = true
		}
	case schema.DataTypeFloat32:
		switch v.(type) {
		case float32, int:
			ok = true
		}
	case schema.DataTypeFloat64:
		switch v.(type) {
		case float64, float32, int:
			ok = true
		}
	case schema.DataTypeString:
		_, ok = v.(string)
	case schema.DataTypeStringSpan:
		span, isMap := v.(map[string]any)
		if isMap {
			_, hasStart := span["start"]
			_, hasEnd := span["end"]
			ok = hasStart && hasEnd
		}
	case schema.DataTypeBinary:
		_, ok = v.([]byte)
	case schema.DataTypeEmbedding:
		_, ok = v.([]float32)
	}
	if !ok {
		return &ValidationError{Path: at, Reason: fmt.Sprintf("value %v (%T) is not a %s", v, v, t)}
	}
	return nil
}
