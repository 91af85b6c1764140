package schema

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/kindform/go-kindform/inspect"
)

// ignoredFields are the identity and envelope fields every document type
// carries; they describe what a document is, not its shape, and never
// appear in a synthesized schema.
var ignoredFields = map[string]bool{
	"apiVersion": true,
	"kind":       true,
	"metadata":   true,
	"group":      true,
}

// Synthesize derives the structural schema of a typed value from its
// declared field shapes and kform tag metadata. v may be an instance, a
// pointer to one, or a reflect.Type.
//
// Synthesis fails fast: the first unsupported field type aborts the whole
// walk with inspect.ErrBadType, there is no partial schema. The recursion
// follows the type graph and does not terminate on self-referential types;
// feeding a cyclic type graph is a caller error, not a supported case.
func Synthesize(v any) (*Schema, error) {
	t, ok := v.(reflect.Type)
	if !ok {
		if v == nil {
			return nil, fmt.Errorf("%w: cannot synthesize schema for nil", inspect.ErrBadType)
		}
		t = reflect.TypeOf(v)
	}
	return synthesizeObject(t, true)
}

func synthesizeObject(t reflect.Type, root bool) (*Schema, error) {
	fields, err := inspect.Fields(t)
	if err != nil {
		return nil, err
	}
	res := &Schema{
		Type:       "object",
		Properties: map[string]*Schema{},
	}
	for _, f := range fields {
		if f.Omit {
			continue
		}
		if root && ignoredFields[f.Name] {
			continue
		}
		sub, err := synthesizeField(f)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		res.Properties[f.Name] = sub
		if f.Required {
			res.Required = append(res.Required, f.Name)
		}
	}
	return res, nil
}

func synthesizeField(f inspect.Field) (*Schema, error) {
	sub, err := synthesizeType(f.Type)
	if err != nil {
		return nil, err
	}
	sub.Description = f.Description
	sub.Enum = f.Enum
	sub.Minimum = f.Minimum
	if f.HasDefault {
		sub.Default = defaultValue(sub.Type, f.Default)
	}
	return sub, nil
}

func synthesizeType(t reflect.Type) (*Schema, error) {
	cls, err := inspect.Classify(t)
	if err != nil {
		return nil, err
	}
	switch cls.Kind {
	case inspect.PrimitiveKind:
		return &Schema{Type: cls.Prim}, nil
	case inspect.ObjectKind:
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		return synthesizeObject(t, false)
	case inspect.ArrayKind:
		items, err := synthesizeType(cls.Elem)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case inspect.MapKind:
		res := &Schema{Type: "object"}
		if cls.Elem == nil || cls.Elem.Kind() == reflect.Interface {
			// open mapping: string values absent better information
			res.AdditionalProperties = &Schema{Type: "string"}
			return res, nil
		}
		vals, err := synthesizeType(cls.Elem)
		if err != nil {
			return nil, err
		}
		res.AdditionalProperties = vals
		return res, nil
	}
	return nil, fmt.Errorf("%w: unclassifiable type %s", inspect.ErrBadType, t)
}

// defaultValue converts a tag's textual default into the schema node's
// value space. Unconvertible text stays a string.
func defaultValue(schemaType, raw string) any {
	switch schemaType {
	case "integer":
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	case "number":
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}
