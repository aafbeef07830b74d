package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/signadot/idlayer/model"
)

// Symbol is a defined datatype registered under its qualified name.
type Symbol struct {
	Qualified   string
	Kind        model.Kind
	Typedef     *model.Typedef
	Enumeration *model.Enumeration
	Struct      *model.Struct
}

func (s *Symbol) Type() *model.Type {
	return &model.Type{
		Kind:        s.Kind,
		Name:        s.Qualified,
		Typedef:     s.Typedef,
		Enumeration: s.Enumeration,
		Struct:      s.Struct,
	}
}

func (s *Symbol) Decl() *model.Decl {
	switch s.Kind {
	case model.TypedefKind:
		return &s.Typedef.Decl
	case model.EnumerationKind:
		return &s.Enumeration.Decl
	case model.StructKind:
		return &s.Struct.Decl
	}
	return nil
}

// SymbolTable maps qualified names to defined datatypes. It is filled by
// the collection pass, frozen, and only read afterwards.
type SymbolTable struct {
	syms   map[string]*Symbol
	frozen bool
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{syms: map[string]*Symbol{}}
}

// Insert adds sym unless its name is taken. It returns the symbol
// registered under the name and whether it was sym.
func (t *SymbolTable) Insert(sym *Symbol) (*Symbol, bool) {
	if t.frozen {
		panic(fmt.Sprintf("insert of %s into frozen symbol table", sym.Qualified))
	}
	if cur, ok := t.syms[sym.Qualified]; ok {
		return cur, false
	}
	t.syms[sym.Qualified] = sym
	return sym, true
}

func (t *SymbolTable) Freeze() {
	t.frozen = true
}

func (t *SymbolTable) Lookup(qualified string) *Symbol {
	return t.syms[qualified]
}

func (t *SymbolTable) Len() int {
	return len(t.syms)
}

// Names returns the registered names, sorted.
func (t *SymbolTable) Names() []string {
	res := make([]string, 0, len(t.syms))
	for n := range t.syms {
		res = append(res, n)
	}
	sort.Strings(res)
	return res
}

// Find resolves name as seen from ns: ns itself, then each enclosing
// namespace up to the root. Dotted names are also tried absolutely with
// the root namespace's own name as an optional first component.
func (t *SymbolTable) Find(name string, ns *model.Namespace) *Symbol {
	var root *model.Namespace
	for s := ns; s != nil; s = s.Parent {
		if sym := t.Lookup(s.Qualify(name)); sym != nil {
			return sym
		}
		root = s
	}
	if root != nil && root.Name != "" {
		if rest, ok := strings.CutPrefix(name, root.Name+"."); ok {
			return t.Lookup(rest)
		}
	}
	return nil
}
