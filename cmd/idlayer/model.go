package main

import (
	"fmt"

	"github.com/signadot/idlayer"
	"github.com/signadot/idlayer/encode"
	"github.com/signadot/idlayer/model"

	"github.com/scott-cotton/cli"
)

func modelCmd(cfg *ModelConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Model.Parse(cc, args)
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
	if err := encode.Encode(model.ToIR(res.Model), cc.Out, cfg.encOpts()...); err != nil {
		return fmt.Errorf("error encoding model: %w", err)
	}
	return report(cfg.MainConfig, res.Diagnostics)
}
