package main

import (
	"fmt"

	"github.com/kindform/go-kindform/ir"
	"github.com/kindform/go-kindform/registry"
	"github.com/kindform/go-kindform/schema"

	"github.com/scott-cotton/cli"
)

func schemaRun(cfg *SchemaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Schema.Parse(cc, args)
	if err != nil {
		cfg.Schema.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: schema requires a kind and an optional apiVersion", cli.ErrUsage)
	}
	kind := args[0]
	apiVersion := "v1"
	if len(args) == 2 {
		apiVersion = args[1]
	}
	e, ok := registry.Default.Lookup(apiVersion, kind)
	if !ok {
		return fmt.Errorf("%w: (%s, %s)", registry.ErrNotRegistered, apiVersion, kind)
	}
	s, err := schema.Synthesize(e.Type)
	if err != nil {
		return fmt.Errorf("synthesizing schema for %s: %w", kind, err)
	}
	return writeDocs(cfg.MainConfig, cc, []*ir.Node{s.ToIR()})
}
