package ir

import (
	"fmt"
	"math"
	"sort"
)

// ToAny converts a node to plain Go values: map[string]any for objects,
// []any for arrays, string/bool/int64/float64 for scalars and nil for null.
// Object field order is necessarily lost; use nodes directly when order
// matters.
func ToAny(node *Node) any {
	switch node.Type {
	case ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i := range node.Fields {
			res[node.Fields[i].String] = ToAny(node.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return float64(0)
	case BoolType:
		return node.Bool
	case NullType:
		return nil
	default:
		panic("impossible production")
	}
}

// FromAny converts plain Go values to a node. Map keys are sorted for
// determinism. Supported inputs are the types ToAny produces plus the other
// integer and float widths and *Node itself (cloned).
func FromAny(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return t.Clone(), nil
	case string:
		return FromString(t), nil
	case bool:
		return FromBool(t), nil
	case int:
		return FromInt(int64(t)), nil
	case int8:
		return FromInt(int64(t)), nil
	case int16:
		return FromInt(int64(t)), nil
	case int32:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case uint:
		return FromInt(int64(t)), nil
	case uint8:
		return FromInt(int64(t)), nil
	case uint16:
		return FromInt(int64(t)), nil
	case uint32:
		return FromInt(int64(t)), nil
	case uint64:
		if t > math.MaxInt64 {
			return nil, fmt.Errorf("uint64 %d overflows int64", t)
		}
		return FromInt(int64(t)), nil
	case float32:
		return FromFloat(float64(t)), nil
	case float64:
		return FromFloat(t), nil
	case []any:
		vs := make([]*Node, len(t))
		for i, elt := range t {
			n, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		res := &Node{Type: ObjectType}
		for _, k := range keys {
			n, err := FromAny(t[k])
			if err != nil {
				return nil, err
			}
			res.Set(k, n)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}
