package main

import (
	"github.com/signadot/idlayer"
	"github.com/signadot/idlayer/encode"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	docs, err := loadDocs(cfg.MainConfig, args)
	if err != nil {
		return err
	}
	opts, err := cfg.runOpts()
	if err != nil {
		return err
	}
	res := idlayer.Run(docs, opts...)
	if !cfg.Quiet {
		if err := encode.Diagnostics(cc.Out, res.Diagnostics, cfg.colors(cc.Out)); err != nil {
			return err
		}
	}
	if res.Failed() {
		return cli.ExitCodeErr(1)
	}
	return nil
}
