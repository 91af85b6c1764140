// Package kindform converts between typed Go values and versioned YAML or
// JSON documents.
//
// A document's apiVersion and kind tags select a registered Go type; the
// subpackages do the work and this package ties them together: parse turns
// text into trees, gomap moves data between trees and typed values, encode
// renders trees back to text, and registry maps identity tags to types.
package kindform

import (
	"bytes"

	"github.com/kindform/go-kindform/encode"
	"github.com/kindform/go-kindform/gomap"
	"github.com/kindform/go-kindform/ir"
	"github.com/kindform/go-kindform/parse"
	"github.com/kindform/go-kindform/registry"
)

// Marshal renders a typed value as document text, YAML with a leading
// document marker unless options say otherwise.
func Marshal(v any, opts ...encode.EncodeOption) ([]byte, error) {
	node, err := gomap.ToIR(v)
	if err != nil {
		return nil, err
	}
	if encode.FormatFromOpts(opts...).IsYAML() {
		opts = append([]encode.EncodeOption{encode.EncodeDocStart(true)}, opts...)
	}
	return encodeBytes(node, opts...)
}

// Unmarshal parses a single document and constructs the typed value its
// identity tags name in reg; nil reg means the default registry.
func Unmarshal(d []byte, reg *registry.Registry, opts ...parse.ParseOption) (registry.Object, error) {
	node, err := parse.Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	return gomap.FromDocument(node, reg)
}

// UnmarshalAll is Unmarshal over a multi-document input.
func UnmarshalAll(d []byte, reg *registry.Registry, opts ...parse.ParseOption) ([]registry.Object, error) {
	nodes, err := parse.ParseAll(d, opts...)
	if err != nil {
		return nil, err
	}
	objs := make([]registry.Object, len(nodes))
	for i, node := range nodes {
		obj, err := gomap.FromDocument(node, reg)
		if err != nil {
			return nil, err
		}
		objs[i] = obj
	}
	return objs, nil
}

// UnmarshalInto parses a single document into a caller-supplied pointer,
// bypassing the registry.
func UnmarshalInto(d []byte, v any, opts ...parse.ParseOption) error {
	node, err := parse.Parse(d, opts...)
	if err != nil {
		return err
	}
	return gomap.FromIR(node, v)
}

// Equal reports whether two trees carry the same values. Object field
// order does not matter; array element order does.
func Equal(a, b *ir.Node) bool {
	return ir.Equal(a, b)
}

func encodeBytes(node *ir.Node, opts ...encode.EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode.Encode(node, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
