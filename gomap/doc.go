// Package gomap converts between Go values and document trees (ir.Node).
//
// ToIR walks a value by reflection in struct field declaration order,
// applying kform tag names, and prunes absent values from the result.
// FromIR populates a caller-supplied pointer from a tree, skipping
// document keys the target type does not declare. FromDocument reads the
// identity tags out of a tree and dispatches construction through a
// registry.
package gomap
