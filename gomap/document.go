package gomap

import (
	"fmt"

	"github.com/kindform/go-kindform/debug"
	"github.com/kindform/go-kindform/ir"
	"github.com/kindform/go-kindform/registry"
)

// Unstructured wraps a raw document tree as a registry.Object for callers
// that work with documents whose type is not known at compile time.
type Unstructured struct {
	Node *ir.Node
}

func (u *Unstructured) GetAPIVersion() string { return ir.GetString(u.Node, "apiVersion") }
func (u *Unstructured) GetKind() string       { return ir.GetString(u.Node, "kind") }

// FromDocument constructs the typed value a document tree represents. The
// tree's apiVersion and kind tags select the type through reg; a nil reg
// means the default registry. Unregistered identity tags fail with
// registry.ErrNotRegistered.
func FromDocument(node *ir.Node, reg *registry.Registry) (registry.Object, error) {
	if reg == nil {
		reg = registry.Default
	}
	if node == nil || node.Type != ir.ObjectType {
		return nil, &UnmarshalError{Message: "document is not an object"}
	}
	apiVersion := ir.GetString(node, "apiVersion")
	kind := ir.GetString(node, "kind")
	if apiVersion == "" || kind == "" {
		return nil, fmt.Errorf("%w: document carries no identity tags", registry.ErrNotRegistered)
	}
	if debug.Map() {
		debug.Logf("dispatching document (%s, %s)\n", apiVersion, kind)
	}
	e, ok := reg.Lookup(apiVersion, kind)
	if !ok {
		return nil, fmt.Errorf("%w: (%s, %s)", registry.ErrNotRegistered, registry.Version(apiVersion), kind)
	}
	obj := e.New()
	if err := FromIR(node, obj); err != nil {
		return nil, err
	}
	return obj, nil
}
