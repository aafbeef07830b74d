package idlayer

import (
	"github.com/signadot/idlayer/debug"
	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/ir"
	"github.com/signadot/idlayer/layer"
	"github.com/signadot/idlayer/model"
	"github.com/signadot/idlayer/resolve"
	"github.com/signadot/idlayer/validate"
)

type Config struct {
	Merge    []layer.MergeOpt
	Resolve  []resolve.ResolveOpt
	Validate []validate.ValidateOpt
	// Jobs bounds the concurrency of every stage, 0 leaves each stage
	// at its default.
	Jobs int
}

type Option func(*Config)

func MergeOpts(opts ...layer.MergeOpt) Option {
	return func(c *Config) { c.Merge = append(c.Merge, opts...) }
}

func ResolveOpts(opts ...resolve.ResolveOpt) Option {
	return func(c *Config) { c.Resolve = append(c.Resolve, opts...) }
}

func ValidateOpts(opts ...validate.ValidateOpt) Option {
	return func(c *Config) { c.Validate = append(c.Validate, opts...) }
}

// WithRegistry checks the extra keys of layers with r.
func WithRegistry(r validate.Registry) Option {
	return ValidateOpts(validate.WithRegistry(r))
}

func Jobs(n int) Option {
	return func(c *Config) { c.Jobs = n }
}

// Result is the outcome of a run. Tree and Model are always set, possibly
// partial when Failed.
type Result struct {
	Tree        *ir.Node
	Model       *model.Model
	Diagnostics []diag.Diagnostic
}

// Failed returns true if any diagnostic is fatal.
func (r *Result) Failed() bool {
	return diag.HasErrors(r.Diagnostics)
}

// Err returns the diagnostics as a diag.List if the run failed, nil
// otherwise.
func (r *Result) Err() error {
	if !r.Failed() {
		return nil
	}
	return diag.List(r.Diagnostics)
}

// Run merges docs by rank, resolves the combined tree and validates the
// resulting model. Every stage runs even when an earlier one reported
// errors, so that all problems are found in one pass.
func Run(docs []*layer.Document, opts ...Option) *Result {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	mergeOpts, resolveOpts, validateOpts := cfg.Merge, cfg.Resolve, cfg.Validate
	if cfg.Jobs > 0 {
		mergeOpts = append(mergeOpts, layer.Jobs(cfg.Jobs))
		resolveOpts = append(resolveOpts, resolve.Jobs(cfg.Jobs))
		validateOpts = append(validateOpts, validate.Jobs(cfg.Jobs))
	}

	bag := diag.NewBag()
	tree := layer.Fold(docs, layer.NewMergeConfig(mergeOpts...), bag)
	if debug.Merge() {
		debug.Logf("merged %d documents, %d diagnostics\n", len(docs), bag.Len())
	}
	m, _ := resolve.Run(tree, resolve.NewResolveConfig(resolveOpts...), bag)
	validate.Run(m, validate.NewValidateConfig(validateOpts...), bag)
	return &Result{
		Tree:        tree,
		Model:       m,
		Diagnostics: bag.Items(),
	}
}
