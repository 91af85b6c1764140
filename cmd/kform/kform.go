package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kindform/go-kindform/encode"
	"github.com/kindform/go-kindform/ir"
	"github.com/kindform/go-kindform/parse"

	"github.com/scott-cotton/cli"
)

func kformMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readDocs parses every document in the given files, or stdin when no
// files are named.
func readDocs(cfg *MainConfig, cc *cli.Context, args []string) ([]*ir.Node, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	var docs []*ir.Node
	for _, arg := range args {
		var r io.Reader
		if arg == "-" {
			r = cc.In
		} else {
			f, err := os.Open(arg)
			if err != nil {
				return nil, fmt.Errorf("error opening %s: %w", arg, err)
			}
			defer f.Close()
			r = f
		}
		d, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", arg, err)
		}
		nodes, err := parse.ParseAll(d, cfg.parseOpts()...)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", arg, err)
		}
		docs = append(docs, nodes...)
	}
	return docs, nil
}

func writeDocs(cfg *MainConfig, cc *cli.Context, docs []*ir.Node) error {
	for _, doc := range docs {
		if err := encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}
