package model

import "github.com/signadot/idlayer/ir"

type Namespace struct {
	Decl
	// Qualified is the dotted name from the root. The root namespace has
	// an empty qualified name.
	Qualified string
	Parent    *Namespace

	Namespaces   []*Namespace
	Typedefs     []*Typedef
	Enumerations []*Enumeration
	Structs      []*Struct
	Methods      []*Method
	Events       []*Event
	Properties   []*Property
}

// Qualify returns the qualified name of local in ns.
func (ns *Namespace) Qualify(local string) string {
	if ns == nil || ns.Qualified == "" {
		return local
	}
	return ns.Qualified + "." + local
}

// Walk calls f on ns and its descendants in document order, parents first.
func (ns *Namespace) Walk(f func(*Namespace)) {
	f(ns)
	for _, sub := range ns.Namespaces {
		sub.Walk(f)
	}
}

// Model is the result of resolving a combined tree.
type Model struct {
	Tree *ir.Node
	Root *Namespace
}

// Namespaces returns every namespace in document order.
func (m *Model) Namespaces() []*Namespace {
	if m == nil || m.Root == nil {
		return nil
	}
	var res []*Namespace
	m.Root.Walk(func(ns *Namespace) { res = append(res, ns) })
	return res
}

// Lookup finds the first datatype declared under qualified name.
func (m *Model) Lookup(qualified string) *Type {
	for _, ns := range m.Namespaces() {
		for _, td := range ns.Typedefs {
			if td.Qualified == qualified {
				return &Type{Kind: TypedefKind, Name: qualified, Typedef: td}
			}
		}
		for _, en := range ns.Enumerations {
			if en.Qualified == qualified {
				return &Type{Kind: EnumerationKind, Name: qualified, Enumeration: en}
			}
		}
		for _, st := range ns.Structs {
			if st.Qualified == qualified {
				return &Type{Kind: StructKind, Name: qualified, Struct: st}
			}
		}
	}
	return nil
}

// Typedef returns the first typedef with the qualified name.
func (m *Model) Typedef(qualified string) *Typedef {
	if t := m.Lookup(qualified); t != nil {
		return t.Typedef
	}
	return nil
}

func (m *Model) Struct(qualified string) *Struct {
	if t := m.Lookup(qualified); t != nil {
		return t.Struct
	}
	return nil
}

func (m *Model) Enumeration(qualified string) *Enumeration {
	if t := m.Lookup(qualified); t != nil {
		return t.Enumeration
	}
	return nil
}
