package main

import (
	"context"
	"fmt"
	"os"

	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/encode"
	"github.com/signadot/idlayer/layer"
	"github.com/signadot/idlayer/load"

	"github.com/scott-cotton/cli"
)

// loadDocs loads the layer files named in args, stdin if there are none.
func loadDocs(cfg *MainConfig, args []string) ([]*layer.Document, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	return load.Files(context.Background(), args, cfg.loadOpts()...)
}

// report writes ds to stderr and returns an exit error if any is fatal.
func report(cfg *MainConfig, ds []diag.Diagnostic) error {
	if len(ds) != 0 {
		if err := encode.Diagnostics(os.Stderr, ds, cfg.colors(os.Stderr)); err != nil {
			return err
		}
	}
	if diag.HasErrors(ds) {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	docs, err := loadDocs(cfg.MainConfig, args)
	if err != nil {
		return err
	}
	tree, ds := layer.Merge(docs, cfg.mergeOpts()...)
	if err := encode.Encode(tree, cc.Out, cfg.encOpts()...); err != nil {
		return fmt.Errorf("error encoding merged tree: %w", err)
	}
	return report(cfg.MainConfig, ds)
}
