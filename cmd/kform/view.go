package main

import (
	"github.com/kindform/go-kindform/encode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	docs, err := readDocs(cfg.MainConfig, cc, args)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		opts := append(cfg.encOpts(cc.Out), encode.EncodeColors(encode.NewColors()))
		if err := encode.Encode(doc, cc.Out, opts...); err != nil {
			return err
		}
	}
	return nil
}
