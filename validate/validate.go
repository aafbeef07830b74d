package validate

import (
	"runtime"

	"github.com/signadot/idlayer/debug"
	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/model"

	"golang.org/x/sync/errgroup"
)

type ValidateConfig struct {
	// Registry checks the extra keys of elements, nil passes them through.
	Registry Registry
	Jobs     int
}

type ValidateOpt func(*ValidateConfig)

func WithRegistry(r Registry) ValidateOpt {
	return func(c *ValidateConfig) { c.Registry = r }
}

func Jobs(n int) ValidateOpt {
	return func(c *ValidateConfig) { c.Jobs = n }
}

func NewValidateConfig(opts ...ValidateOpt) *ValidateConfig {
	cfg := &ValidateConfig{Jobs: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}
	return cfg
}

// Validate checks the invariants of a resolved model and returns the
// sorted diagnostics. The model is not modified.
func Validate(m *model.Model, opts ...ValidateOpt) []diag.Diagnostic {
	bag := diag.NewBag()
	Run(m, NewValidateConfig(opts...), bag)
	return bag.Items()
}

// Run is Validate with an explicit configuration, reporting into bag.
// Namespaces are checked concurrently, each on its own.
func Run(m *model.Model, cfg *ValidateConfig, bag *diag.Bag) {
	g := &errgroup.Group{}
	g.SetLimit(cfg.Jobs)
	for _, ns := range m.Namespaces() {
		g.Go(func() error {
			v := &validator{cfg: cfg}
			v.namespace(ns)
			bag.Add(v.ds...)
			return nil
		})
	}
	_ = g.Wait()
}

type validator struct {
	cfg *ValidateConfig
	ds  []diag.Diagnostic
}

func (v *validator) add(d diag.Diagnostic) {
	v.ds = append(v.ds, d)
}

func (v *validator) namespace(ns *model.Namespace) {
	if debug.Validate() {
		debug.Logf("validate namespace %q\n", ns.Qualified)
	}
	scope := ns.Qualified
	if scope == "" {
		scope = "the root namespace"
	}
	v.unique("namespace", scope, decls(ns.Namespaces, func(x *model.Namespace) *model.Decl { return &x.Decl }))

	var datatypes []*model.Decl
	datatypes = append(datatypes, decls(ns.Typedefs, func(x *model.Typedef) *model.Decl { return &x.Decl })...)
	datatypes = append(datatypes, decls(ns.Enumerations, func(x *model.Enumeration) *model.Decl { return &x.Decl })...)
	datatypes = append(datatypes, decls(ns.Structs, func(x *model.Struct) *model.Decl { return &x.Decl })...)
	v.unique("datatype", scope, datatypes)

	v.unique("method", scope, decls(ns.Methods, func(x *model.Method) *model.Decl { return &x.Decl }))
	v.unique("event", scope, decls(ns.Events, func(x *model.Event) *model.Decl { return &x.Decl }))
	v.unique("property", scope, decls(ns.Properties, func(x *model.Property) *model.Decl { return &x.Decl }))

	v.extraKeys(&ns.Decl)
	for _, td := range ns.Typedefs {
		v.arraySize(&td.Decl, td.Type, td.ArraySize)
		v.extraKeys(&td.Decl)
	}
	for _, en := range ns.Enumerations {
		v.enumeration(en)
	}
	for _, st := range ns.Structs {
		v.extraKeys(&st.Decl)
		v.members("member", "struct "+st.Qualified, st.Members)
	}
	for _, me := range ns.Methods {
		v.extraKeys(&me.Decl)
		where := "method " + ns.Qualify(me.Name)
		v.members("input parameter", where, me.In)
		v.members("output parameter", where, me.Out)
		v.members("error", where, me.Errors)
		v.members("return value", where, me.Returns)
	}
	for _, ev := range ns.Events {
		v.extraKeys(&ev.Decl)
		v.members("parameter", "event "+ns.Qualify(ev.Name), ev.In)
	}
	for _, p := range ns.Properties {
		v.member(&p.Member)
	}
}

func (v *validator) members(kind, where string, ms []*model.Member) {
	v.unique(kind, where, decls(ms, func(x *model.Member) *model.Decl { return &x.Decl }))
	for _, m := range ms {
		v.member(m)
	}
}

func (v *validator) member(m *model.Member) {
	v.arraySize(&m.Decl, m.Type, m.ArraySize)
	v.extraKeys(&m.Decl)
}

func (v *validator) enumeration(en *model.Enumeration) {
	v.extraKeys(&en.Decl)
	where := "enumeration " + en.Qualified
	v.unique("option", where, decls(en.Options, func(x *model.Option) *model.Decl { return &x.Decl }))
	first := map[int64]*model.Option{}
	for _, o := range en.Options {
		v.extraKeys(&o.Decl)
		prev, ok := first[o.Value]
		if !ok {
			first[o.Value] = o
			continue
		}
		v.add(diag.Errorf(diag.DuplicateName, o.Origin, o.Path,
			"option %s of %s has value %d, already used by option %s",
			o.Name, where, o.Value, prev.Name).WithRelated(prev.Origin))
	}
}

func (v *validator) extraKeys(d *model.Decl) {
	if v.cfg.Registry == nil || d.Attrs.Len() == 0 {
		return
	}
	for _, lt := range d.Attrs.LayerTypes() {
		v.ds = append(v.ds, v.cfg.Registry.ValidateExtraKeys(lt, d.Attrs, d.Path)...)
	}
}
