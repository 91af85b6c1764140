package main

import (
	"fmt"

	"github.com/kindform/go-kindform/selector"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: get requires -e <expr>", cli.ErrUsage)
	}
	docs, err := readDocs(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	matched, err := selector.Filter(docs, cfg.Expr)
	if err != nil {
		return err
	}
	return writeDocs(cfg.MainConfig, cc, matched)
}
