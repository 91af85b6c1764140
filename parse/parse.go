// Package parse decodes YAML and JSON document text into kindform IR.
package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/kindform/go-kindform/format"
	"github.com/kindform/go-kindform/ir"
)

// ErrNoDocument is returned when input that was expected to contain at least
// one document contains none.
var ErrNoDocument = errors.New("no document in input")

var ErrParse = errors.New("parse error")

// Parse decodes a single document. Input declared as JSON must contain
// exactly one document; a YAML stream with several documents yields the
// first. Empty input is ErrNoDocument.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	docs, err := ParseAll(d, opts...)
	if err != nil {
		return nil, err
	}
	return docs[0], nil
}

// ParseAll decodes a (possibly multi-document) stream. Field order within
// each object is the order the keys appear in the text. Zero documents is
// ErrNoDocument.
func ParseAll(d []byte, opts ...ParseOption) ([]*ir.Node, error) {
	pOpts := &parseOpts{format: format.YAMLFormat}
	for _, f := range opts {
		f(pOpts)
	}
	dec := yaml.NewDecoder(bytes.NewReader(d), yaml.UseOrderedMap())
	var docs []*ir.Node
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		node, err := fromDecoded(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		docs = append(docs, node)
	}
	if len(docs) == 0 {
		return nil, ErrNoDocument
	}
	if pOpts.format.IsJSON() && len(docs) > 1 {
		return nil, fmt.Errorf("%w: json input contains %d documents", ErrParse, len(docs))
	}
	return docs, nil
}

// fromDecoded converts the decoder's ordered representation into IR.
func fromDecoded(v any) (*ir.Node, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null(), nil
	case string:
		return ir.FromString(t), nil
	case bool:
		return ir.FromBool(t), nil
	case int:
		return ir.FromInt(int64(t)), nil
	case int64:
		return ir.FromInt(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return ir.FromFloat(float64(t)), nil
		}
		return ir.FromInt(int64(t)), nil
	case float64:
		return ir.FromFloat(t), nil
	case time.Time:
		// timestamps stay strings at this layer; typed values reparse
		// them as needed
		return ir.FromString(t.Format(time.RFC3339)), nil
	case yaml.MapSlice:
		res := &ir.Node{Type: ir.ObjectType}
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprintf("%v", item.Key)
			}
			val, err := fromDecoded(item.Value)
			if err != nil {
				return nil, err
			}
			res.Set(key, val)
		}
		return res, nil
	case map[string]any:
		return ir.FromAny(t)
	case []any:
		vs := make([]*ir.Node, len(t))
		for i, elt := range t {
			n, err := fromDecoded(elt)
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return ir.FromSlice(vs), nil
	default:
		return nil, fmt.Errorf("unsupported decoded value of type %T", v)
	}
}
