package model

import "github.com/signadot/idlayer/ir"

// ToIR renders the resolved model as a tree, each typed element carrying
// its resolved type in canonical form. Unresolved types render as null.
func ToIR(m *Model) *ir.Node {
	if m == nil || m.Root == nil {
		return ir.Null()
	}
	return namespaceIR(m.Root)
}

func namespaceIR(ns *Namespace) *ir.Node {
	kvs := declKVs(&ns.Decl)
	if ns.Qualified != "" {
		kvs = append(kvs, ir.KeyVal{Key: "qualified", Val: ir.FromString(ns.Qualified)})
	}
	kvs = appendList(kvs, "namespaces", ns.Namespaces, namespaceIR)
	kvs = appendList(kvs, "typedefs", ns.Typedefs, func(td *Typedef) *ir.Node {
		kvs := declKVs(&td.Decl)
		kvs = append(kvs, ir.KeyVal{Key: "type", Val: typeIR(td.Type)})
		if td.Min != nil {
			kvs = append(kvs, ir.KeyVal{Key: "min", Val: td.Min.Clone()})
		}
		if td.Max != nil {
			kvs = append(kvs, ir.KeyVal{Key: "max", Val: td.Max.Clone()})
		}
		return withAttrs(kvs, td.Attrs)
	})
	kvs = appendList(kvs, "enumerations", ns.Enumerations, func(en *Enumeration) *ir.Node {
		kvs := declKVs(&en.Decl)
		kvs = append(kvs, ir.KeyVal{Key: "type", Val: typeIR(en.Base)})
		kvs = appendList(kvs, "options", en.Options, func(o *Option) *ir.Node {
			kvs := declKVs(&o.Decl)
			kvs = append(kvs, ir.KeyVal{Key: "value", Val: ir.FromInt(o.Value)})
			return withAttrs(kvs, o.Attrs)
		})
		return withAttrs(kvs, en.Attrs)
	})
	kvs = appendList(kvs, "structs", ns.Structs, func(st *Struct) *ir.Node {
		kvs := declKVs(&st.Decl)
		kvs = appendList(kvs, "members", st.Members, memberIR)
		return withAttrs(kvs, st.Attrs)
	})
	kvs = appendList(kvs, "methods", ns.Methods, func(me *Method) *ir.Node {
		kvs := declKVs(&me.Decl)
		kvs = appendList(kvs, "in", me.In, memberIR)
		kvs = appendList(kvs, "out", me.Out, memberIR)
		kvs = appendList(kvs, "errors", me.Errors, memberIR)
		kvs = appendList(kvs, "returns", me.Returns, memberIR)
		return withAttrs(kvs, me.Attrs)
	})
	kvs = appendList(kvs, "events", ns.Events, func(ev *Event) *ir.Node {
		kvs := declKVs(&ev.Decl)
		kvs = appendList(kvs, "in", ev.In, memberIR)
		return withAttrs(kvs, ev.Attrs)
	})
	kvs = appendList(kvs, "properties", ns.Properties, func(p *Property) *ir.Node {
		return memberIR(&p.Member)
	})
	return withAttrs(kvs, ns.Attrs)
}

func memberIR(m *Member) *ir.Node {
	kvs := declKVs(&m.Decl)
	kvs = append(kvs, ir.KeyVal{Key: "type", Val: typeIR(m.Type)})
	return withAttrs(kvs, m.Attrs)
}

func typeIR(t *Type) *ir.Node {
	if t == nil {
		return ir.Null()
	}
	return ir.FromString(t.String())
}

func declKVs(d *Decl) []ir.KeyVal {
	kvs := []ir.KeyVal{{Key: "name", Val: ir.FromString(d.Name)}}
	if d.Description != "" {
		kvs = append(kvs, ir.KeyVal{Key: "description", Val: ir.FromString(d.Description)})
	}
	return kvs
}

func withAttrs(kvs []ir.KeyVal, a *Attrs) *ir.Node {
	for _, k := range a.Keys() {
		kvs = append(kvs, ir.KeyVal{Key: k, Val: a.Get(k).Clone()})
	}
	return ir.FromKeyVals(kvs)
}

func appendList[T any](kvs []ir.KeyVal, key string, xs []T, f func(T) *ir.Node) []ir.KeyVal {
	if len(xs) == 0 {
		return kvs
	}
	vals := make([]*ir.Node, len(xs))
	for i, x := range xs {
		vals[i] = f(x)
	}
	return append(kvs, ir.KeyVal{Key: key, Val: ir.FromSlice(vals)})
}
