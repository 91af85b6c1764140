package gomap

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/kindform/go-kindform/inspect"
	"github.com/kindform/go-kindform/ir"
)

// ToIR converts a Go value to a document tree. Struct fields appear in
// declaration order under their kform tag names; the result is pruned, so
// nil pointers, empty collections and omitted fields do not appear.
func ToIR(v any) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	visited := make(map[uintptr]string)
	node, err := toIR(reflect.ValueOf(v), "", visited)
	if err != nil {
		return nil, err
	}
	return node.Prune(), nil
}

// toIR converts one value. fieldPath is for error reporting; visited holds
// the pointers on the current walk path so reference cycles fail instead of
// recursing forever.
func toIR(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	typ := val.Type()
	kind := typ.Kind()

	// a *ir.Node value is already a tree
	if typ == nodeType {
		n := val.Interface().(*ir.Node)
		if n == nil {
			return ir.Null(), nil
		}
		return n.Clone(), nil
	}

	if kind == reflect.Ptr {
		if val.IsNil() {
			return ir.Null(), nil
		}
		if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
			return marshalText(tm, fieldPath)
		}
		addr := val.Pointer()
		if prev, seen := visited[addr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference: already visiting %s", prev),
			}
		}
		visited[addr] = fieldPath
		node, err := toIR(val.Elem(), fieldPath, visited)
		delete(visited, addr)
		return node, err
	}

	if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
		return marshalText(tm, fieldPath)
	}
	if val.CanAddr() {
		if tm, ok := val.Addr().Interface().(encoding.TextMarshaler); ok {
			return marshalText(tm, fieldPath)
		}
	}

	switch kind {
	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > 1<<63-1 {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("uint value %d overflows the number representation", u),
			}
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Slice, reflect.Array:
		return sliceToIR(val, fieldPath, visited)
	case reflect.Map:
		return mapToIR(val, fieldPath, visited)
	case reflect.Struct:
		return structToIR(val, fieldPath, visited)
	case reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return toIR(val.Elem(), fieldPath, visited)
	default:
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type %s", typ),
		}
	}
}

func marshalText(tm encoding.TextMarshaler, fieldPath string) (*ir.Node, error) {
	text, err := tm.MarshalText()
	if err != nil {
		return nil, &MarshalError{FieldPath: fieldPath, Message: "MarshalText failed", Err: err}
	}
	return ir.FromString(string(text)), nil
}

func sliceToIR(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.Kind() == reflect.Slice && !val.IsNil() {
		addr := val.Pointer()
		if prev, seen := visited[addr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference: already visiting %s", prev),
			}
		}
		visited[addr] = fieldPath
		defer delete(visited, addr)
	}
	elems := make([]*ir.Node, val.Len())
	for i := range elems {
		node, err := toIR(val.Index(i), fmt.Sprintf("%s[%d]", fieldPath, i), visited)
		if err != nil {
			return nil, err
		}
		elems[i] = node
	}
	return ir.FromSlice(elems), nil
}

// mapToIR renders a string-keyed map as an object with sorted keys. Maps
// have no inherent order, so sorting keeps output deterministic.
func mapToIR(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}
	if val.Type().Key().Kind() != reflect.String {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("map keys must be strings, got %s", val.Type().Key()),
		}
	}
	addr := val.Pointer()
	if prev, seen := visited[addr]; seen {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("circular reference: already visiting %s", prev),
		}
	}
	visited[addr] = fieldPath
	defer delete(visited, addr)

	m := make(map[string]*ir.Node, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		node, err := toIR(iter.Value(), joinPath(fieldPath, key), visited)
		if err != nil {
			return nil, err
		}
		m[key] = node
	}
	return ir.FromMap(m), nil
}

func structToIR(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	fields, err := inspect.Fields(val.Type())
	if err != nil {
		return nil, &MarshalError{FieldPath: fieldPath, Message: "not a document type", Err: err}
	}
	res := &ir.Node{Type: ir.ObjectType}
	for _, f := range fields {
		if f.Omit {
			continue
		}
		fv := val.FieldByIndex(f.Index)
		// an optional field at its zero value is absent; a zero behind a
		// pointer is a present zero
		if !f.Required && omitZero(fv) {
			continue
		}
		node, err := toIR(fv, joinPath(fieldPath, f.Name), visited)
		if err != nil {
			return nil, err
		}
		res.Fields = append(res.Fields, ir.FromString(f.Name))
		res.Values = append(res.Values, node)
	}
	return res, nil
}

func omitZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v.IsZero()
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}
