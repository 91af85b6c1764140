package inspect

import (
	"encoding"
	"fmt"
	"reflect"
)

// Kind is the document shape a declared Go type maps onto.
type Kind int

const (
	// PrimitiveKind maps onto a scalar value.
	PrimitiveKind Kind = iota
	// ObjectKind maps onto a nested object with its own declared fields.
	ObjectKind
	// ArrayKind maps onto a homogeneous ordered list.
	ArrayKind
	// MapKind maps onto open string-keyed key/value pairs.
	MapKind
)

func (k Kind) String() string {
	switch k {
	case PrimitiveKind:
		return "primitive"
	case ObjectKind:
		return "object"
	case ArrayKind:
		return "array"
	case MapKind:
		return "map"
	}
	return "<unknown kind>"
}

// Class is a classification result. Prim carries the schema primitive name
// for PrimitiveKind; Elem carries the element type for ArrayKind and the
// value type for MapKind (nil when the mapping is fully open, in which case
// values are taken to be strings absent better information).
type Class struct {
	Kind Kind
	Prim string
	Elem reflect.Type
}

var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

// Classify decides the document shape of one declared field type.
//
// A pointer is the optional wrapper: it is unwrapped and the pointee
// classified. Exactly one level is supported; a pointer to a pointer has no
// document meaning and is rejected. Every type that fits none of the
// supported shapes is rejected loudly rather than silently mis-serialized.
func Classify(t reflect.Type) (Class, error) {
	if t == nil {
		return Class{}, fmt.Errorf("%w: nil type", ErrBadType)
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
		if t.Kind() == reflect.Ptr {
			return Class{}, fmt.Errorf("%w: %s: only one optional wrapper is supported", ErrBadType, reflect.PtrTo(t))
		}
	}
	if t.Implements(textMarshalerType) || reflect.PtrTo(t).Implements(textMarshalerType) {
		return Class{Kind: PrimitiveKind, Prim: "string"}, nil
	}
	switch t.Kind() {
	case reflect.String:
		return Class{Kind: PrimitiveKind, Prim: "string"}, nil
	case reflect.Bool:
		return Class{Kind: PrimitiveKind, Prim: "boolean"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Class{Kind: PrimitiveKind, Prim: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return Class{Kind: PrimitiveKind, Prim: "number"}, nil
	case reflect.Struct:
		return Class{Kind: ObjectKind}, nil
	case reflect.Slice, reflect.Array:
		return Class{Kind: ArrayKind, Elem: t.Elem()}, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return Class{}, fmt.Errorf("%w: %s: map keys must be strings", ErrBadType, t)
		}
		return Class{Kind: MapKind, Elem: t.Elem()}, nil
	case reflect.Interface:
		if t.NumMethod() == 0 {
			// the open "object" marker
			return Class{Kind: MapKind}, nil
		}
		return Class{}, fmt.Errorf("%w: interface %s is not a document shape", ErrBadType, t)
	default:
		return Class{}, fmt.Errorf("%w: unsupported type %s", ErrBadType, t)
	}
}
