package main

import (
	"fmt"

	"github.com/signadot/idlayer/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Context < 0 {
		return fmt.Errorf("%w: -U must not be negative", cli.ErrUsage)
	}
	docs, err := loadDocs(cfg.MainConfig, args)
	if err != nil {
		return err
	}
	cs, ds, err := libdiff.Layers(docs, cfg.mergeOpts()...)
	if err != nil {
		return err
	}
	if err := libdiff.Write(cc.Out, cs, cfg.Context, cfg.colors(cc.Out)); err != nil {
		return err
	}
	return report(cfg.MainConfig, ds)
}
