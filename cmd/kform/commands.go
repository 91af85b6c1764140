package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, {
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "kform").
		WithSynopsis("kform [opts] command [opts]").
		WithDescription("kform is a tool for working with versioned kind documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return kformMain(cfg, cc, args)
		}).
		WithSubs(
			ConvertCommand(cfg),
			SchemaCommand(cfg),
			GetCommand(cfg),
			PatchCommand(cfg),
			ViewCommand(cfg))
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithAliases("c", "co").
		WithSynopsis("convert [files]").
		WithDescription("convert documents between yaml and json").
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
}

func SchemaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SchemaConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Schema, "schema").
		WithAliases("s", "sc").
		WithSynopsis("schema <kind> [apiVersion]").
		WithDescription("print the synthesized schema of a registered kind").
		WithRun(func(cc *cli.Context, args []string) error {
			return schemaRun(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts := []*cli.Opt{
		{
			Name:        "e",
			Description: "selector expression documents must match",
			Type:        cli.NamedFuncOpt(cfg.exprOpt, "(expr)"),
		},
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g", "ge").
		WithSynopsis("get -e <expr> [files]").
		WithDescription("select documents matching an expression").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func (cfg *GetConfig) exprOpt(_ *cli.Context, a string) (any, error) {
	cfg.Expr = a
	return a, nil
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [-s] <patch> [files]").
		WithDescription("apply a merge patch to documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view document files in color").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}
