package resolve

import "runtime"

type ResolveConfig struct {
	// Jobs bounds how many namespace subtrees resolve concurrently.
	Jobs int
}

type ResolveOpt func(*ResolveConfig)

func Jobs(n int) ResolveOpt {
	return func(c *ResolveConfig) { c.Jobs = n }
}

func NewResolveConfig(opts ...ResolveOpt) *ResolveConfig {
	cfg := &ResolveConfig{Jobs: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}
	return cfg
}
