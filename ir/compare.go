package ir

import (
	"cmp"
	"maps"
	"slices"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Object comparison is order-insensitive: two objects with the same fields in
// a different order compare equal.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	case NullType:
		return 0
	}
	return 0
}

// Equal reports whether a and b represent the same document value.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Array < Object
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case ArrayType:
		return 4
	case ObjectType:
		return 5
	}
	return 6
}

func compareNumbers(a, b *Node) int {
	af, bf := numberValue(a), numberValue(b)
	return cmp.Compare(af, bf)
}

func numberValue(n *Node) float64 {
	if n.Int64 != nil {
		return float64(*n.Int64)
	}
	if n.Float64 != nil {
		return *n.Float64
	}
	return 0
}

func compareArrays(a, b *Node) int {
	if c := cmp.Compare(len(a.Values), len(b.Values)); c != 0 {
		return c
	}
	for i := range a.Values {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareObjects(a, b *Node) int {
	if c := cmp.Compare(len(a.Fields), len(b.Fields)); c != 0 {
		return c
	}
	am, bm := ToMap(a), ToMap(b)
	akeys := slices.Sorted(maps.Keys(am))
	bkeys := slices.Sorted(maps.Keys(bm))
	for i := range akeys {
		if c := strings.Compare(akeys[i], bkeys[i]); c != 0 {
			return c
		}
	}
	for _, k := range akeys {
		if c := Compare(am[k], bm[k]); c != 0 {
			return c
		}
	}
	return 0
}
