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
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "config",
			Description: "config file with merge policy and layer rules (default $" + ConfigEnv + ")",
			Type:        cli.NamedFuncOpt(cfg.configOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "idlayer").
		WithSynopsis("idlayer [opts] command [opts]").
		WithDescription("idlayer merges layered interface descriptions and resolves their datatypes.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return idlayerMain(cfg, cc, args)
		}).
		WithSubs(
			MergeCommand(cfg),
			CheckCommand(cfg),
			ModelCommand(cfg),
			DiffCommand(cfg),
			TypesCommand(cfg))
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("m").
		WithSynopsis("merge [files]").
		WithDescription("merge layer files in order and output the combined tree").
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [opts] [files]").
		WithDescription("merge, resolve and validate layer files, exiting 1 on errors").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func ModelCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ModelConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Model, "model").
		WithSynopsis("model [files]").
		WithDescription("output the resolved model of layer files").
		WithRun(func(cc *cli.Context, args []string) error {
			return modelCmd(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Context: 3}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-U n] [files]").
		WithDescription("show what each layer file contributes to the merge").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func TypesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TypesConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Types, "types").
		WithAliases("t").
		WithSynopsis("types [-refs] expr...").
		WithDescription("parse datatype expressions and output their canonical form").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return types(cfg, cc, args)
		})
}
