// Package schema synthesizes structural validation schemas from struct
// shapes.
//
// Synthesis is one-directional: it describes the legal shape of a typed
// value so an external system can validate documents against it. Nothing in
// this package enforces a schema at runtime.
package schema

import (
	"github.com/kindform/go-kindform/ir"
)

// Schema is a structural schema node. The zero value is an unconstrained
// schema. Properties holds object sub-schemas keyed by field name; the
// Required list keeps field declaration order.
type Schema struct {
	// Core
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`

	// Scalar constraints
	Enum    []string `json:"enum,omitempty"`
	Minimum *float64 `json:"minimum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`
}

// ToIR renders the schema as a document node so it can be encoded as YAML
// or JSON and embedded in whatever definition envelope a consumer expects.
// Object properties are emitted in sorted key order: a schema describes
// shape, not field order.
func (s *Schema) ToIR() *ir.Node {
	res := &ir.Node{Type: ir.ObjectType}
	if s.Type != "" {
		res.Set("type", ir.FromString(s.Type))
	}
	if s.Description != "" {
		res.Set("description", ir.FromString(s.Description))
	}
	if s.Default != nil {
		if n, err := ir.FromAny(s.Default); err == nil {
			res.Set("default", n)
		}
	}
	if len(s.Enum) != 0 {
		vs := make([]*ir.Node, len(s.Enum))
		for i, e := range s.Enum {
			vs[i] = ir.FromString(e)
		}
		res.Set("enum", ir.FromSlice(vs))
	}
	if s.Minimum != nil {
		res.Set("minimum", numberNode(*s.Minimum))
	}
	if len(s.Properties) != 0 {
		props := map[string]*ir.Node{}
		for name, sub := range s.Properties {
			props[name] = sub.ToIR()
		}
		res.Set("properties", ir.FromMap(props))
	}
	if len(s.Required) != 0 {
		vs := make([]*ir.Node, len(s.Required))
		for i, r := range s.Required {
			vs[i] = ir.FromString(r)
		}
		res.Set("required", ir.FromSlice(vs))
	}
	if s.AdditionalProperties != nil {
		res.Set("additionalProperties", s.AdditionalProperties.ToIR())
	}
	if s.Items != nil {
		res.Set("items", s.Items.ToIR())
	}
	return res
}

func numberNode(f float64) *ir.Node {
	if f == float64(int64(f)) {
		return ir.FromInt(int64(f))
	}
	return ir.FromFloat(f)
}
