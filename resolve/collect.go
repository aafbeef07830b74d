package resolve

import (
	"math"

	"github.com/signadot/idlayer/debug"
	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/ir"
	"github.com/signadot/idlayer/model"
)

func keys(ks ...string) map[string]bool {
	res := make(map[string]bool, len(ks)+2)
	res["name"] = true
	res["description"] = true
	for _, k := range ks {
		res[k] = true
	}
	return res
}

var (
	namespaceKeys = keys("namespaces", "datatypes", "typedefs", "enumerations", "structs",
		"methods", "events", "properties")
	typedefKeys     = keys("datatype", "arraysize", "min", "max")
	enumerationKeys = keys("datatype", "options")
	optionKeys      = keys("value")
	structKeys      = keys("members")
	memberKeys      = keys("datatype", "arraysize")
	methodKeys      = keys("in", "input", "out", "output", "errors", "returns")
	eventKeys       = keys("in", "input")
)

// collector builds the model skeleton from the combined tree and registers
// every defined datatype. References are left unresolved.
type collector struct {
	bag  *diag.Bag
	syms *SymbolTable
}

func (c *collector) root(tree *ir.Node) *model.Namespace {
	if tree == nil || tree.Type != ir.ObjectType {
		var o *ir.Origin
		typ := ir.NullType
		if tree != nil {
			o, typ = tree.Origin, tree.Type
		}
		c.bag.Add(diag.Errorf(diag.InvalidNode, o, "$", "root is %s, not a namespace", typ))
		return &model.Namespace{Decl: model.Decl{Path: "$", Origin: o, Attrs: model.NewAttrs()}}
	}
	ns := &model.Namespace{Decl: c.decl(tree, namespaceKeys)}
	c.fillNamespace(ns, tree)
	return ns
}

func (c *collector) decl(n *ir.Node, known map[string]bool) model.Decl {
	d := model.Decl{Path: n.NamedPath(), Origin: n.Origin, Attrs: model.NewAttrs()}
	for i, f := range n.Fields {
		v := n.Values[i]
		switch key := f.String; {
		case key == "name":
			d.Name = v.Scalar()
		case key == "description":
			if v.Type.IsLeaf() {
				d.Description = v.Scalar()
			}
		case !known[key]:
			d.Attrs.Set(key, v, f.Origin)
		}
	}
	return d
}

// elements returns the named object elements of the list n.field,
// reporting malformed ones.
func (c *collector) elements(n *ir.Node, field string) []*ir.Node {
	list := ir.Get(n, field)
	if list == nil || list.Type == ir.NullType {
		return nil
	}
	if list.Type != ir.ArrayType {
		c.bag.Add(diag.Errorf(diag.InvalidNode, list.Origin, list.NamedPath(),
			"%s is %s, not a list", field, list.Type))
		return nil
	}
	res := make([]*ir.Node, 0, len(list.Values))
	for _, v := range list.Values {
		if v.Type != ir.ObjectType {
			c.bag.Add(diag.Errorf(diag.InvalidNode, v.Origin, v.Path(),
				"element of %s is %s, not an object", field, v.Type))
			continue
		}
		name := ir.Get(v, "name")
		if name == nil || name.Type != ir.StringType || name.String == "" {
			c.bag.Add(diag.Errorf(diag.InvalidNode, v.Origin, v.Path(),
				"element of %s has no name", field))
			continue
		}
		res = append(res, v)
	}
	return res
}

func (c *collector) fillNamespace(ns *model.Namespace, n *ir.Node) {
	if debug.Resolve() {
		debug.Logf("collect namespace %q at %s\n", ns.Qualified, ns.Path)
	}
	for _, v := range c.elements(n, "namespaces") {
		sub := &model.Namespace{Decl: c.decl(v, namespaceKeys), Parent: ns}
		sub.Qualified = ns.Qualify(sub.Name)
		c.fillNamespace(sub, v)
		ns.Namespaces = append(ns.Namespaces, sub)
	}
	for _, v := range c.elements(n, "typedefs") {
		c.typedef(ns, v)
	}
	for _, v := range c.elements(n, "enumerations") {
		c.enumeration(ns, v)
	}
	for _, v := range c.elements(n, "structs") {
		c.structure(ns, v)
	}
	// generic datatypes are classified by shape
	for _, v := range c.elements(n, "datatypes") {
		switch {
		case ir.Get(v, "members") != nil:
			c.structure(ns, v)
		case ir.Get(v, "options") != nil:
			c.enumeration(ns, v)
		default:
			c.typedef(ns, v)
		}
	}
	for _, v := range c.elements(n, "methods") {
		m := &model.Method{Decl: c.decl(v, methodKeys)}
		m.In = c.members(v, "in", "input")
		m.Out = c.members(v, "out", "output")
		m.Errors = c.members(v, "errors")
		m.Returns = c.members(v, "returns")
		ns.Methods = append(ns.Methods, m)
	}
	for _, v := range c.elements(n, "events") {
		e := &model.Event{Decl: c.decl(v, eventKeys)}
		e.In = c.members(v, "in", "input")
		ns.Events = append(ns.Events, e)
	}
	for _, v := range c.elements(n, "properties") {
		ns.Properties = append(ns.Properties, &model.Property{Member: *c.member(v)})
	}
}

func (c *collector) register(sym *Symbol) {
	if cur, ok := c.syms.Insert(sym); !ok && debug.Resolve() {
		debug.Logf("%s already defined at %s, keeping first\n", sym.Qualified, cur.Decl().Origin)
	}
}

func (c *collector) typedef(ns *model.Namespace, n *ir.Node) {
	td := &model.Typedef{
		Decl:      c.decl(n, typedefKeys),
		Namespace: ns,
		Datatype:  scalarText(ir.Get(n, "datatype")),
		ArraySize: ir.Get(n, "arraysize"),
		Min:       ir.Get(n, "min"),
		Max:       ir.Get(n, "max"),
	}
	td.Qualified = ns.Qualify(td.Name)
	ns.Typedefs = append(ns.Typedefs, td)
	c.register(&Symbol{Qualified: td.Qualified, Kind: model.TypedefKind, Typedef: td})
}

func (c *collector) enumeration(ns *model.Namespace, n *ir.Node) {
	en := &model.Enumeration{
		Decl:      c.decl(n, enumerationKeys),
		Namespace: ns,
		Datatype:  scalarText(ir.Get(n, "datatype")),
	}
	en.Qualified = ns.Qualify(en.Name)
	if opts := ir.Get(n, "options"); opts == nil || opts.Type == ir.NullType ||
		(opts.Type == ir.ArrayType && len(opts.Values) == 0) {
		c.bag.Add(diag.Errorf(diag.InvalidNode, en.Origin, en.Path,
			"enumeration %s has no options", en.Qualified))
	}
	next, overflow := int64(0), false
	for _, v := range c.elements(n, "options") {
		o := &model.Option{Decl: c.decl(v, optionKeys)}
		if vn := ir.Get(v, "value"); vn != nil {
			o.ValueNode, o.Explicit = vn, true
			i, ok := vn.Int()
			if !ok || vn.Int64 == nil {
				c.bag.Add(diag.Errorf(diag.ConstraintRangeError, vn.Origin, o.Path,
					"option %s value %s is not a 64 bit integer", o.Name, vn.Scalar()))
				continue
			}
			next, overflow = i, false
		} else if overflow {
			c.bag.Add(diag.Errorf(diag.ConstraintRangeError, o.Origin, o.Path,
				"option %s has no value and follows the largest value", o.Name))
			continue
		}
		o.Value = next
		en.Options = append(en.Options, o)
		if next == math.MaxInt64 {
			overflow = true
		} else {
			next++
		}
	}
	ns.Enumerations = append(ns.Enumerations, en)
	c.register(&Symbol{Qualified: en.Qualified, Kind: model.EnumerationKind, Enumeration: en})
}

func (c *collector) structure(ns *model.Namespace, n *ir.Node) {
	st := &model.Struct{Decl: c.decl(n, structKeys), Namespace: ns}
	st.Qualified = ns.Qualify(st.Name)
	st.Members = c.members(n, "members")
	ns.Structs = append(ns.Structs, st)
	c.register(&Symbol{Qualified: st.Qualified, Kind: model.StructKind, Struct: st})
}

// members collects the typed elements of the given list fields, in field
// order.
func (c *collector) members(n *ir.Node, fields ...string) []*model.Member {
	var res []*model.Member
	for _, f := range fields {
		for _, v := range c.elements(n, f) {
			res = append(res, c.member(v))
		}
	}
	return res
}

func (c *collector) member(n *ir.Node) *model.Member {
	return &model.Member{
		Decl:      c.decl(n, memberKeys),
		Datatype:  scalarText(ir.Get(n, "datatype")),
		ArraySize: ir.Get(n, "arraysize"),
	}
}

func scalarText(n *ir.Node) string {
	if n == nil || !n.Type.IsLeaf() || n.Type == ir.NullType {
		return ""
	}
	return n.Scalar()
}
