package validate

import (
	"fmt"
	"sort"

	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/model"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Registry validates the keys a layer type adds to an element beyond its
// known fields. It is called once per layer type which contributed keys.
type Registry interface {
	ValidateExtraKeys(layerType string, attrs *model.Attrs, path string) []diag.Diagnostic
}

// Rule constrains the extra keys of one layer type.
type Rule struct {
	// Keys lists the keys the layer type may add. Empty allows any key.
	Keys   []string `yaml:"keys,omitempty"`
	Checks []Check  `yaml:"checks,omitempty"`
}

// Check is a boolean expression over an element's attributes. Each
// attribute is a variable of the expression; `attrs` holds them all as a
// map, `keys` the keys of the layer type being checked, `path` the
// element path and `layer` the layer type. Those four names win over
// attributes of the same name, which stay reachable through attrs, as in
// `attrs.path`.
type Check struct {
	Expr    string `yaml:"expr"`
	Message string `yaml:"message,omitempty"`
	// Severity defaults to error.
	Severity diag.Severity `yaml:"severity,omitempty"`
}

// RuleRegistry is a Registry built from rules keyed by layer type. Layer
// types without a rule pass unchecked.
type RuleRegistry struct {
	rules map[string]*compiledRule
}

type compiledRule struct {
	keys   map[string]bool
	checks []compiledCheck
}

type compiledCheck struct {
	Check
	prg *vm.Program
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(map[string]any{
			"attrs": map[string]any{},
			"keys":  []string{},
			"path":  "",
			"layer": "",
		}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	}
}

func NewRuleRegistry(rules map[string]Rule) (*RuleRegistry, error) {
	reg := &RuleRegistry{rules: make(map[string]*compiledRule, len(rules))}
	for lt, rule := range rules {
		cr := &compiledRule{}
		if len(rule.Keys) != 0 {
			cr.keys = make(map[string]bool, len(rule.Keys))
			for _, k := range rule.Keys {
				cr.keys[k] = true
			}
		}
		for _, c := range rule.Checks {
			prg, err := expr.Compile(c.Expr, exprOpts()...)
			if err != nil {
				return nil, fmt.Errorf("layer type %s: could not compile %q: %w", lt, c.Expr, err)
			}
			if c.Severity == 0 {
				c.Severity = diag.SevError
			}
			cr.checks = append(cr.checks, compiledCheck{Check: c, prg: prg})
		}
		reg.rules[lt] = cr
	}
	return reg, nil
}

// LayerTypes returns the layer types with a rule, sorted.
func (r *RuleRegistry) LayerTypes() []string {
	res := make([]string, 0, len(r.rules))
	for lt := range r.rules {
		res = append(res, lt)
	}
	sort.Strings(res)
	return res
}

func (r *RuleRegistry) ValidateExtraKeys(layerType string, attrs *model.Attrs, path string) []diag.Diagnostic {
	rule := r.rules[layerType]
	if rule == nil {
		return nil
	}
	keys := attrs.Select(layerType)
	if len(keys) == 0 {
		return nil
	}
	var res []diag.Diagnostic
	if rule.keys != nil {
		for _, k := range keys {
			if !rule.keys[k] {
				res = append(res, diag.Errorf(diag.LayerSchema, attrs.Origin(k), path,
					"key %s is not allowed in %s layers", k, layerType))
			}
		}
	}
	if len(rule.checks) == 0 {
		return res
	}
	env := attrs.Map()
	env["attrs"] = attrs.Map()
	env["keys"] = keys
	env["path"] = path
	env["layer"] = layerType
	origin := attrs.Origin(keys[0])
	for _, c := range rule.checks {
		out, err := expr.Run(c.prg, env)
		if err != nil {
			res = append(res, diag.Errorf(diag.LayerSchema, origin, path,
				"%s rule %q failed: %v", layerType, c.Expr, err))
			continue
		}
		if ok, _ := out.(bool); ok {
			continue
		}
		msg := c.Message
		if msg == "" {
			msg = fmt.Sprintf("%s rule %q does not hold", layerType, c.Expr)
		}
		res = append(res, diag.Diagnostic{
			Severity: c.Severity,
			Category: diag.LayerSchema,
			Message:  msg,
			Path:     path,
			Origin:   origin,
		})
	}
	return res
}
