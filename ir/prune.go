package ir

// Prune returns a copy of y with absent values removed: any object field
// whose value is null, or is an object or array that is empty after pruning,
// is dropped. Array elements are pruned in place but never removed, since
// removing elements would change list semantics. Field order is preserved.
//
// Pruning is lossy on purpose: a field explicitly set to an empty collection
// reads back as absent after a round trip. Callers that need to distinguish
// "empty" from "unset" must not rely on the pruned form.
func (y *Node) Prune() *Node {
	res := pruneValue(y)
	if res == nil {
		// The root survives even when it prunes to nothing, so that a
		// document is always a value.
		switch y.Type {
		case ObjectType:
			return &Node{Type: ObjectType}
		case ArrayType:
			return &Node{Type: ArrayType}
		default:
			return Null()
		}
	}
	return res
}

// pruneValue prunes a single value, returning nil when the value should be
// dropped from its containing object.
func pruneValue(y *Node) *Node {
	if y == nil {
		return nil
	}
	switch y.Type {
	case NullType:
		return nil
	case ObjectType:
		res := &Node{Type: ObjectType}
		for i := range y.Fields {
			v := pruneValue(y.Values[i])
			if v == nil {
				continue
			}
			res.Fields = append(res.Fields, y.Fields[i].Clone())
			res.Values = append(res.Values, v)
		}
		if len(res.Fields) == 0 {
			return nil
		}
		return res
	case ArrayType:
		if len(y.Values) == 0 {
			return nil
		}
		res := &Node{Type: ArrayType, Values: make([]*Node, len(y.Values))}
		for i, v := range y.Values {
			pv := pruneValue(v)
			if pv == nil {
				// elements stay; only object keys are dropped
				pv = emptyOf(v.Type)
			}
			res.Values[i] = pv
		}
		return res
	default:
		return y.Clone()
	}
}

func emptyOf(t Type) *Node {
	switch t {
	case ObjectType:
		return &Node{Type: ObjectType}
	case ArrayType:
		return &Node{Type: ArrayType}
	default:
		return Null()
	}
}
