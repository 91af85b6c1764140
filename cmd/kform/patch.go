package main

import (
	"fmt"
	"os"

	kindform "github.com/kindform/go-kindform"
	"github.com/kindform/go-kindform/ir"
	"github.com/kindform/go-kindform/parse"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	p, err := parsePatchArg(cfg, args[0])
	if err != nil {
		return err
	}
	docs, err := readDocs(cfg.MainConfig, cc, args[1:])
	if err != nil {
		return err
	}
	res := make([]*ir.Node, len(docs))
	for i, doc := range docs {
		patched, err := kindform.MergePatch(doc, p)
		if err != nil {
			return fmt.Errorf("error patching document %d: %w", i, err)
		}
		res[i] = patched
	}
	return writeDocs(cfg.MainConfig, cc, res)
}

func parsePatchArg(cfg *PatchConfig, arg string) (*ir.Node, error) {
	if cfg.String {
		return parse.Parse([]byte(arg), cfg.parseOpts()...)
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("error reading patch %s: %w", arg, err)
	}
	return parse.Parse(d, cfg.parseOpts()...)
}
