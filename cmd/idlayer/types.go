package main

import (
	"fmt"
	"strings"

	"github.com/signadot/idlayer/typeexpr"

	"github.com/scott-cotton/cli"
)

func types(cfg *TypesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Types.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: types requires at least one expression", cli.ErrUsage)
	}
	failed := false
	for _, arg := range args {
		e, err := typeexpr.Parse(arg)
		if err != nil {
			fmt.Fprintf(cc.Out, "%s\n", err)
			failed = true
			continue
		}
		if !cfg.Refs {
			fmt.Fprintf(cc.Out, "%s\n", e)
			continue
		}
		fmt.Fprintf(cc.Out, "%s: %s\n", e, strings.Join(e.Refs(), " "))
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}
