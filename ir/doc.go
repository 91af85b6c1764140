// Package ir provides the intermediate representation for kindform documents.
//
// All documents, whether parsed from YAML or JSON text, produced from typed
// values, or created programmatically, are represented as ir.Node trees.
//
// A Node is a recursive tagged union. The Type field says which of the value
// slots is meaningful:
//
//   - NullType: null value
//   - BoolType: boolean (Bool)
//   - NumberType: numeric value (Int64 or Float64)
//   - StringType: string value (String)
//   - ArrayType: ordered list (Values)
//   - ObjectType: key-value pairs (Fields and Values, parallel slices)
//
// Objects keep their fields in parallel Fields/Values slices rather than in a
// map so that field order is stable: the order of fields in an object is the
// order they were parsed or declared in, and encoding never sorts them.
//
// Use the constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.Object("name", ir.FromString("cm1"))
//
// Prune implements the absence rule used when marshalling typed values: keys
// whose value is null or an empty object/array are removed, recursively. See
// Prune for the exact semantics.
package ir
