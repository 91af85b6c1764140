package gomap

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"sync"

	"github.com/kindform/go-kindform/inspect"
	"github.com/kindform/go-kindform/ir"
)

var nodeType = reflect.TypeOf((*ir.Node)(nil))

// FromIR populates v, a non-nil pointer, from a document tree. Nested
// structs, slices and maps are instantiated as needed. Document keys the
// target type does not declare are skipped, so a newer document unmarshals
// into an older type without error.
func FromIR(node *ir.Node, v any) error {
	if v == nil {
		return &UnmarshalError{Message: "destination must be a non-nil pointer"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return &UnmarshalError{Message: fmt.Sprintf("destination must be a non-nil pointer, got %T", v)}
	}
	return fromIR(node, val.Elem(), "")
}

func fromIR(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node == nil {
		node = ir.Null()
	}
	typ := val.Type()

	// a *ir.Node target takes the tree as is
	if typ == nodeType {
		val.Set(reflect.ValueOf(node.Clone()))
		return nil
	}

	if typ.Kind() == reflect.Ptr {
		if node.Type == ir.NullType {
			val.Set(reflect.Zero(typ))
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		if tu, ok := val.Interface().(encoding.TextUnmarshaler); ok {
			return unmarshalText(tu, node, fieldPath)
		}
		return fromIR(node, val.Elem(), fieldPath)
	}

	if node.Type == ir.NullType {
		val.Set(reflect.Zero(typ))
		return nil
	}

	if val.CanAddr() {
		if tu, ok := val.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return unmarshalText(tu, node, fieldPath)
		}
	}

	switch typ.Kind() {
	case reflect.String:
		if node.Type != ir.StringType {
			return typeMismatch(fieldPath, "string", node)
		}
		val.SetString(node.String)
		return nil

	case reflect.Bool:
		if node.Type != ir.BoolType {
			return typeMismatch(fieldPath, "bool", node)
		}
		val.SetBool(node.Bool)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := intValue(node, fieldPath)
		if err != nil {
			return err
		}
		if val.OverflowInt(i) {
			return &UnmarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("value %d overflows %s", i, typ)}
		}
		val.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := intValue(node, fieldPath)
		if err != nil {
			return err
		}
		if i < 0 || val.OverflowUint(uint64(i)) {
			return &UnmarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("value %d overflows %s", i, typ)}
		}
		val.SetUint(uint64(i))
		return nil

	case reflect.Float32, reflect.Float64:
		if node.Type != ir.NumberType {
			return typeMismatch(fieldPath, "number", node)
		}
		var f float64
		switch {
		case node.Float64 != nil:
			f = *node.Float64
		case node.Int64 != nil:
			f = float64(*node.Int64)
		}
		val.SetFloat(f)
		return nil

	case reflect.Slice:
		return sliceFromIR(node, val, fieldPath)

	case reflect.Array:
		return arrayFromIR(node, val, fieldPath)

	case reflect.Map:
		return mapFromIR(node, val, fieldPath)

	case reflect.Struct:
		return structFromIR(node, val, fieldPath)

	case reflect.Interface:
		if typ.NumMethod() != 0 {
			return &UnmarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("unsupported type %s", typ)}
		}
		val.Set(reflect.ValueOf(ir.ToAny(node)))
		return nil

	default:
		return &UnmarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("unsupported type %s", typ)}
	}
}

func unmarshalText(tu encoding.TextUnmarshaler, node *ir.Node, fieldPath string) error {
	if node.Type != ir.StringType {
		return typeMismatch(fieldPath, "string", node)
	}
	if err := tu.UnmarshalText([]byte(node.String)); err != nil {
		return &UnmarshalError{FieldPath: fieldPath, Message: "UnmarshalText failed", Err: err}
	}
	return nil
}

func intValue(node *ir.Node, fieldPath string) (int64, error) {
	if node.Type != ir.NumberType {
		return 0, typeMismatch(fieldPath, "number", node)
	}
	if node.Int64 != nil {
		return *node.Int64, nil
	}
	if node.Float64 != nil {
		f := *node.Float64
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int64(f), nil
		}
		return 0, &UnmarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("number %v is not an integer", f)}
	}
	return 0, &UnmarshalError{FieldPath: fieldPath, Message: "number node has no value"}
}

func sliceFromIR(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.ArrayType {
		return typeMismatch(fieldPath, "array", node)
	}
	res := reflect.MakeSlice(val.Type(), len(node.Values), len(node.Values))
	for i, elem := range node.Values {
		if err := fromIR(elem, res.Index(i), fmt.Sprintf("%s[%d]", fieldPath, i)); err != nil {
			return err
		}
	}
	val.Set(res)
	return nil
}

func arrayFromIR(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.ArrayType {
		return typeMismatch(fieldPath, "array", node)
	}
	if len(node.Values) > val.Len() {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("%d elements overflow [%d]%s", len(node.Values), val.Len(), val.Type().Elem()),
		}
	}
	for i, elem := range node.Values {
		if err := fromIR(elem, val.Index(i), fmt.Sprintf("%s[%d]", fieldPath, i)); err != nil {
			return err
		}
	}
	return nil
}

func mapFromIR(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.ObjectType {
		return typeMismatch(fieldPath, "object", node)
	}
	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &UnmarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("map keys must be strings, got %s", typ.Key())}
	}
	res := reflect.MakeMapWithSize(typ, len(node.Fields))
	for i, f := range node.Fields {
		elem := reflect.New(typ.Elem()).Elem()
		if err := fromIR(node.Values[i], elem, joinPath(fieldPath, f.String)); err != nil {
			return err
		}
		res.SetMapIndex(reflect.ValueOf(f.String).Convert(typ.Key()), elem)
	}
	val.Set(res)
	return nil
}

func structFromIR(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.ObjectType {
		return typeMismatch(fieldPath, "object", node)
	}
	fields, err := fieldsByName(val.Type())
	if err != nil {
		return &UnmarshalError{FieldPath: fieldPath, Message: "not a document type", Err: err}
	}
	for i, f := range node.Fields {
		field, ok := fields[f.String]
		if !ok {
			// unknown keys are skipped, not errors
			continue
		}
		target := val.FieldByIndex(field.Index)
		if err := fromIR(node.Values[i], target, joinPath(fieldPath, f.String)); err != nil {
			return err
		}
	}
	return nil
}

// fieldsByName indexes a struct's document fields by document key,
// excluding omitted fields.
func fieldsByName(t reflect.Type) (map[string]inspect.Field, error) {
	byNameCache.RLock()
	cached, ok := byNameCache.m[t]
	byNameCache.RUnlock()
	if ok {
		return cached, nil
	}
	fields, err := inspect.Fields(t)
	if err != nil {
		return nil, err
	}
	m := make(map[string]inspect.Field, len(fields))
	for _, f := range fields {
		if f.Omit {
			continue
		}
		m[f.Name] = f
	}
	byNameCache.Lock()
	byNameCache.m[t] = m
	byNameCache.Unlock()
	return m, nil
}

var byNameCache = struct {
	sync.RWMutex
	m map[reflect.Type]map[string]inspect.Field
}{m: map[reflect.Type]map[string]inspect.Field{}}

func typeMismatch(fieldPath, want string, node *ir.Node) error {
	return &UnmarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("expected %s, got %s", want, node.Type),
	}
}
