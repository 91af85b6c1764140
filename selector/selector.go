// Package selector filters document trees with expressions. An expression
// sees the document as nested maps and slices, so field access reads the
// way the document does:
//
//	kind == "ConfigMap" && metadata.labels.tier == "backend"
package selector

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/kindform/go-kindform/ir"
)

// Selector is a compiled boolean expression over documents.
type Selector struct {
	src string
	prg *vm.Program
}

// Compile compiles an expression for repeated matching. The expression
// must produce a boolean.
func Compile(src string) (*Selector, error) {
	prg, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compiling selector %q: %w", src, err)
	}
	return &Selector{src: src, prg: prg}, nil
}

func (s *Selector) String() string { return s.src }

// Match evaluates the selector against one document.
func (s *Selector) Match(node *ir.Node) (bool, error) {
	env, ok := ir.ToAny(node).(map[string]any)
	if !ok {
		// non-object documents expose nothing to select on
		env = map[string]any{}
	}
	res, err := expr.Run(s.prg, env)
	if err != nil {
		return false, fmt.Errorf("evaluating selector %q: %w", s.src, err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("selector %q produced %T, want bool", s.src, res)
	}
	return b, nil
}

// Filter returns the documents matching src, in input order.
func Filter(docs []*ir.Node, src string) ([]*ir.Node, error) {
	sel, err := Compile(src)
	if err != nil {
		return nil, err
	}
	var res []*ir.Node
	for _, doc := range docs {
		ok, err := sel.Match(doc)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, doc)
		}
	}
	return res, nil
}
