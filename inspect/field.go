package inspect

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// ErrBadType reports a type shape that is not introspectable or not
// representable as a document: always a definition-time mistake, never
// recoverable by retrying.
var ErrBadType = errors.New("bad type")

// Field describes one struct field as it appears in documents and schemas.
type Field struct {
	// Name is the document key.
	Name string

	// GoName is the struct field name.
	GoName string

	// Index locates the field for reflect.Value.FieldByIndex; embedded
	// structs make this longer than one element.
	Index []int

	// Type is the declared Go type of the field.
	Type reflect.Type

	// Required reports that the field has no usable default: it appears
	// in the synthesized schema's required list.
	Required bool

	// Omit excludes the field from both schema and document. Fields
	// consumed only at construction time are declared this way.
	Omit bool

	// Metadata from the kform tag. Unset entries are zero.
	Description string
	Enum        []string
	Minimum     *float64
	Default     string
	HasDefault  bool
}

var fieldCache = struct {
	sync.RWMutex
	m map[reflect.Type][]Field
}{m: map[reflect.Type][]Field{}}

// Fields returns the field descriptors of a struct type in declaration
// order. Embedded struct fields are inlined at their embedding position.
// t may be a struct type or a pointer to one; anything else is ErrBadType.
//
// Results are cached per type and the cache is never invalidated.
func Fields(t reflect.Type) ([]Field, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type is not introspectable", ErrBadType)
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct type", ErrBadType, t)
	}

	fieldCache.RLock()
	cached, ok := fieldCache.m[t]
	fieldCache.RUnlock()
	if ok {
		return cached, nil
	}

	fields, err := structFields(t, nil)
	if err != nil {
		return nil, err
	}
	fieldCache.Lock()
	fieldCache.m[t] = fields
	fieldCache.Unlock()
	return fields, nil
}

// FieldsOf is Fields on a value's dynamic type.
func FieldsOf(v any) ([]Field, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil value is not introspectable", ErrBadType)
	}
	return Fields(reflect.TypeOf(v))
}

func structFields(t reflect.Type, index []int) ([]Field, error) {
	var res []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		idx := append(append([]int{}, index...), i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get("kform") == "" {
			embedded, err := structFields(sf.Type, idx)
			if err != nil {
				return nil, err
			}
			res = append(res, embedded...)
			continue
		}
		f, err := parseField(sf, idx)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t, sf.Name, err)
		}
		if f == nil {
			continue
		}
		res = append(res, *f)
	}
	return res, nil
}

func parseField(sf reflect.StructField, index []int) (*Field, error) {
	tag, err := ParseStructTag(sf.Tag.Get("kform"))
	if err != nil {
		return nil, err
	}
	f := &Field{
		Name:   defaultName(sf.Name),
		GoName: sf.Name,
		Index:  index,
		Type:   sf.Type,
	}
	if name, ok := tag["name"]; ok {
		if name == "-" {
			return nil, nil
		}
		f.Name = name
	}
	if _, ok := tag["omit"]; ok {
		f.Omit = true
	}
	f.Description = tag["desc"]
	if enum, ok := tag["enum"]; ok {
		f.Enum = strings.Split(enum, "|")
	}
	if minv, ok := tag["min"]; ok {
		m, err := strconv.ParseFloat(minv, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad min %q: %v", ErrBadType, minv, err)
		}
		f.Minimum = &m
	}
	if def, ok := tag["default"]; ok {
		f.Default = def
		f.HasDefault = true
	}

	f.Required = requiredByShape(sf.Type) && !f.HasDefault
	if _, ok := tag["required"]; ok {
		f.Required = true
	}
	if _, ok := tag["optional"]; ok {
		f.Required = false
	}
	return f, nil
}

// requiredByShape: a field whose zero value is a usable "absent" marker
// (pointer, slice, map, interface) has a default; anything else does not.
func requiredByShape(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return false
	default:
		return true
	}
}

func defaultName(goName string) string {
	r, size := utf8.DecodeRuneInString(goName)
	return string(unicode.ToLower(r)) + goName[size:]
}

// ParseStructTag parses a kform tag into a key-value map. Flags appear as
// keys with empty values. Values may be single- or double-quoted to carry
// commas and spaces: `kform:"name=x,desc='a, b and c'"`.
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	if tag == "" {
		return result, nil
	}

	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false
	for i := 0; i < len(tag); i++ {
		char := tag[i]
		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case char == ',' && !inSingleQuote && !inDoubleQuote:
			part := strings.TrimSpace(current.String())
			if part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("unterminated quote in tag %q", tag)
	}
	if part := strings.TrimSpace(current.String()); part != "" {
		parts = append(parts, part)
	}

	for _, part := range parts {
		key, value, found := strings.Cut(part, "=")
		if !found {
			result[key] = ""
			continue
		}
		result[key] = unquoteTagValue(value)
	}
	return result, nil
}

func unquoteTagValue(v string) string {
	if len(v) >= 2 {
		if (v[0] == '\'' && v[len(v)-1] == '\'') || (v[0] == '"' && v[len(v)-1] == '"') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
