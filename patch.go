package kindform

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/kindform/go-kindform/ir"
	"github.com/kindform/go-kindform/parse"
)

// MergePatch applies an RFC 7386 merge patch to a document tree: object
// fields in patch replace those in doc, a null in patch deletes the field,
// arrays replace wholesale. Field order of the result is deterministic but
// not the input order.
func MergePatch(doc, patch *ir.Node) (*ir.Node, error) {
	docJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	patchJSON, err := patch.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding patch: %w", err)
	}
	merged, err := jsonpatch.MergePatch(docJSON, patchJSON)
	if err != nil {
		return nil, fmt.Errorf("applying merge patch: %w", err)
	}
	return parse.Parse(merged, parse.ParseJSON())
}

// CreateMergePatch computes the RFC 7386 patch that turns original into
// modified, so MergePatch(original, CreateMergePatch(original, modified))
// carries the values of modified.
func CreateMergePatch(original, modified *ir.Node) (*ir.Node, error) {
	origJSON, err := original.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding original: %w", err)
	}
	modJSON, err := modified.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding modified: %w", err)
	}
	patch, err := jsonpatch.CreateMergePatch(origJSON, modJSON)
	if err != nil {
		return nil, fmt.Errorf("computing merge patch: %w", err)
	}
	return parse.Parse(patch, parse.ParseJSON())
}
