package resolve

import (
	"errors"

	"github.com/signadot/idlayer/debug"
	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/ir"
	"github.com/signadot/idlayer/model"
	"github.com/signadot/idlayer/typeexpr"

	"golang.org/x/sync/errgroup"
)

// Resolve builds the model of a combined tree and resolves every datatype
// reference in it. Definitions with fatal diagnostics are kept in the model
// without a type; the rest of the tree resolves normally.
func Resolve(tree *ir.Node, opts ...ResolveOpt) (*model.Model, []diag.Diagnostic) {
	bag := diag.NewBag()
	m, _ := Run(tree, NewResolveConfig(opts...), bag)
	return m, bag.Items()
}

// Run is Resolve with an explicit configuration, reporting into bag. It
// also returns the frozen symbol table.
func Run(tree *ir.Node, cfg *ResolveConfig, bag *diag.Bag) (*model.Model, *SymbolTable) {
	syms := NewSymbolTable()
	c := &collector{bag: bag, syms: syms}
	root := c.root(tree)
	syms.Freeze()
	if debug.Resolve() {
		debug.Logf("collected %d datatypes\n", syms.Len())
	}
	m := &model.Model{Tree: tree, Root: root}

	// typedef chains cross namespaces, resolve them all before fanning out
	tr := &typedefResolver{
		resolver: resolver{syms: syms, bag: bag},
		state:    map[*model.Typedef]visitState{},
		cyclic:   map[*model.Typedef]bool{},
	}
	for _, ns := range m.Namespaces() {
		for _, td := range ns.Typedefs {
			tr.resolve(td)
		}
	}

	g := &errgroup.Group{}
	g.SetLimit(cfg.Jobs)
	g.Go(func() error {
		r := &resolver{syms: syms, bag: bag}
		r.namespace(root)
		return nil
	})
	for _, sub := range root.Namespaces {
		g.Go(func() error {
			r := &resolver{syms: syms, bag: bag}
			sub.Walk(r.namespace)
			return nil
		})
	}
	_ = g.Wait()
	return m, syms
}

// resolver turns type expressions into types. It only reads the symbol
// table; the outputs it writes belong to the subtree it was given.
type resolver struct {
	syms *SymbolTable
	bag  *diag.Bag
	// ref is called on each defined type reached while building a type.
	ref func(*Symbol)
}

func (r *resolver) namespace(ns *model.Namespace) {
	if debug.Resolve() {
		debug.Logf("resolve namespace %q\n", ns.Qualified)
	}
	for _, td := range ns.Typedefs {
		r.constraints(td)
	}
	for _, en := range ns.Enumerations {
		r.enumeration(en)
	}
	for _, st := range ns.Structs {
		r.members(ns, st.Members)
	}
	for _, me := range ns.Methods {
		r.members(ns, me.In)
		r.members(ns, me.Out)
		r.members(ns, me.Errors)
		r.members(ns, me.Returns)
	}
	for _, ev := range ns.Events {
		r.members(ns, ev.In)
	}
	for _, p := range ns.Properties {
		r.member(ns, &p.Member)
	}
}

func (r *resolver) members(ns *model.Namespace, ms []*model.Member) {
	for _, m := range ms {
		r.member(ns, m)
	}
}

func (r *resolver) member(ns *model.Namespace, m *model.Member) {
	m.Type = r.datatype(ns, &m.Decl, m.Datatype, m.ArraySize)
}

// datatype resolves the datatype text of decl together with its optional
// arraysize. It returns nil after reporting when either is invalid.
func (r *resolver) datatype(ns *model.Namespace, d *model.Decl, text string, arraysize *ir.Node) *model.Type {
	if text == "" {
		r.bag.Add(diag.Errorf(diag.InvalidNode, d.Origin, d.Path, "%s has no datatype", d.Name))
		return nil
	}
	e, err := typeexpr.Parse(text)
	if err != nil {
		cat := diag.InvalidNode
		if errors.Is(err, typeexpr.ErrArraySize) {
			cat = diag.ArraySizeConflict
		}
		r.bag.Add(diag.Errorf(cat, d.Origin, d.Path, "datatype of %s: %v", d.Name, err))
		return nil
	}
	if arraysize != nil {
		if e = r.arraySize(d, e, arraysize); e == nil {
			return nil
		}
	}
	t, missing := r.build(e, ns)
	for _, name := range missing {
		r.bag.Add(diag.Errorf(diag.UnresolvedReference, d.Origin, d.Path,
			"%s refers to undefined datatype %s", d.Name, name))
	}
	if len(missing) != 0 {
		return nil
	}
	return t
}

// arraySize combines an arraysize field with the parsed datatype.
func (r *resolver) arraySize(d *model.Decl, e *typeexpr.Expr, arraysize *ir.Node) *typeexpr.Expr {
	n, ok := arraysize.Int()
	if !ok || arraysize.Int64 == nil || n <= 0 || n > typeexpr.MaxArraySize {
		r.bag.Add(diag.Errorf(diag.ArraySizeConflict, arraysize.Origin, d.Path,
			"arraysize of %s is %s, not a positive integer", d.Name, arraysize.Scalar()))
		return nil
	}
	size := int(n)
	if e.Kind != typeexpr.Array {
		return typeexpr.ArrayOf(e, size)
	}
	if e.Size != 0 && e.Size != size {
		r.bag.Add(diag.Errorf(diag.ArraySizeConflict, arraysize.Origin, d.Path,
			"datatype %s of %s disagrees with arraysize %d", e, d.Name, size))
		return nil
	}
	return typeexpr.ArrayOf(e.Elem(), size)
}

// build converts e to a type, returning the names it could not find.
func (r *resolver) build(e *typeexpr.Expr, ns *model.Namespace) (*model.Type, []string) {
	var missing []string
	var conv func(e *typeexpr.Expr) *model.Type
	conv = func(e *typeexpr.Expr) *model.Type {
		switch e.Kind {
		case typeexpr.Primitive:
			return model.Primitive(e.Name)
		case typeexpr.Opaque:
			return &model.Type{Kind: model.OpaqueKind}
		case typeexpr.Array:
			return model.ArrayOf(conv(e.Args[0]), e.Size)
		case typeexpr.Set:
			return &model.Type{Kind: model.SetKind, Elem: conv(e.Args[0])}
		case typeexpr.Map:
			return &model.Type{Kind: model.MapKind, Key: conv(e.Args[0]), Value: conv(e.Args[1])}
		case typeexpr.Variant:
			t := &model.Type{Kind: model.VariantKind}
			for _, a := range e.Args {
				t.Alternatives = append(t.Alternatives, conv(a))
			}
			return t
		}
		sym := r.syms.Find(e.Name, ns)
		if sym == nil {
			missing = append(missing, e.Name)
			return nil
		}
		if r.ref != nil {
			r.ref(sym)
		}
		return sym.Type()
	}
	t := conv(e)
	return t, missing
}
