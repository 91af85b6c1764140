package ir

import (
	"maps"
	"slices"
)

// Node is one value in a document. Objects keep keys in Fields and values in
// Values, index-aligned; arrays use Values only. Field nodes are StringType.
type Node struct {
	Type Type

	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Float64 *float64
	Int64   *int64
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// Object builds an object node from alternating key, value arguments:
//
//	ir.Object("kind", ir.FromString("Pod"), "apiVersion", ir.FromString("v1"))
//
// It panics on an odd argument count or when a key is not a string; it is
// intended for literal construction in code and tests.
func Object(kvs ...any) *Node {
	if len(kvs)%2 != 0 {
		panic("ir.Object: odd argument count")
	}
	res := &Node{Type: ObjectType}
	for i := 0; i < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			panic("ir.Object: key must be a string")
		}
		res.Set(key, kvs[i+1].(*Node))
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	return &Node{
		Type:   ArrayType,
		Values: vs,
	}
}

// FromMap builds an object node from a map. Keys are sorted so that
// construction from an unordered map is deterministic; parsed and marshalled
// objects keep their original order instead.
func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		res.Set(key, m[key])
	}
	return res
}

// ToMap returns an object node's fields as a map. It returns nil when the
// node is not an object.
func ToMap(node *Node) map[string]*Node {
	if node == nil || node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].String] = node.Values[i]
	}
	return res
}

// Get returns the value of the named field of an object node, or nil when
// the node is not an object or has no such field.
func Get(y *Node, field string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Set sets the named field on an object node, replacing an existing value in
// place or appending a new field at the end. Field order is preserved.
func (y *Node) Set(field string, v *Node) *Node {
	for i := range y.Fields {
		if y.Fields[i].String == field {
			y.Values[i] = v
			return y
		}
	}
	y.Fields = append(y.Fields, FromString(field))
	y.Values = append(y.Values, v)
	return y
}

// Delete removes the named field from an object node. It reports whether the
// field was present.
func (y *Node) Delete(field string) bool {
	for i := range y.Fields {
		if y.Fields[i].String == field {
			y.Fields = slices.Delete(y.Fields, i, i+1)
			y.Values = slices.Delete(y.Values, i, i+1)
			return true
		}
	}
	return false
}

// GetString returns the string value of the named field, or "" when absent
// or not a string.
func GetString(y *Node, field string) string {
	v := Get(y, field)
	if v == nil || v.Type != StringType {
		return ""
	}
	return v.String
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Bool = y.Bool
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dst.Fields[i] = yf.Clone()
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	return dst
}

// Visit walks the tree rooted at y in depth-first order, calling f before and
// after each node's children (isPost false, then true). Returning false stops
// descent into a node's children.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	descend, err := f(y, false)
	if err != nil {
		return err
	}
	if descend {
		for _, field := range y.Fields {
			if err := field.Visit(f); err != nil {
				return err
			}
		}
		for _, v := range y.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	_, err = f(y, true)
	return err
}
