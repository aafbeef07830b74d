package model

import (
	"strconv"
	"strings"
)

type Kind int

const (
	PrimitiveKind Kind = iota
	ArrayKind
	MapKind
	SetKind
	VariantKind
	OpaqueKind
	TypedefKind
	EnumerationKind
	StructKind
)

func (k Kind) String() string {
	switch k {
	case PrimitiveKind:
		return "primitive"
	case ArrayKind:
		return "array"
	case MapKind:
		return "map"
	case SetKind:
		return "set"
	case VariantKind:
		return "variant"
	case OpaqueKind:
		return "opaque"
	case TypedefKind:
		return "typedef"
	case EnumerationKind:
		return "enumeration"
	case StructKind:
		return "struct"
	}
	return "<unknown kind>"
}

// Defined reports whether values of the kind must be declared before use.
func (k Kind) Defined() bool {
	return k == TypedefKind || k == EnumerationKind || k == StructKind
}

// Type is a node of the resolved type graph. Defined types point at their
// declaration, so a struct may reach itself through its members.
type Type struct {
	Kind Kind
	// Name is the primitive keyword or the qualified name of a defined
	// type.
	Name string
	// Size is the fixed size of an array, 0 when unbounded.
	Size int
	// Elem is the element of an array or set.
	Elem *Type
	// Key and Value are the types of a map.
	Key, Value   *Type
	Alternatives []*Type

	Typedef     *Typedef
	Enumeration *Enumeration
	Struct      *Struct
}

func Primitive(name string) *Type {
	return &Type{Kind: PrimitiveKind, Name: name}
}

func ArrayOf(elem *Type, size int) *Type {
	return &Type{Kind: ArrayKind, Elem: elem, Size: size}
}

func (t *Type) String() string {
	if t == nil {
		return "<unresolved>"
	}
	buf := &strings.Builder{}
	t.write(buf)
	return buf.String()
}

func (t *Type) write(buf *strings.Builder) {
	switch t.Kind {
	case PrimitiveKind, TypedefKind, EnumerationKind, StructKind:
		buf.WriteString(t.Name)
	case OpaqueKind:
		buf.WriteString("opaque")
	case ArrayKind:
		t.Elem.write(buf)
		buf.WriteByte('[')
		if t.Size > 0 {
			buf.WriteString(strconv.Itoa(t.Size))
		}
		buf.WriteByte(']')
	case SetKind:
		buf.WriteString("set<")
		t.Elem.write(buf)
		buf.WriteByte('>')
	case MapKind:
		buf.WriteString("map<")
		t.Key.write(buf)
		buf.WriteByte(',')
		t.Value.write(buf)
		buf.WriteByte('>')
	case VariantKind:
		buf.WriteString("variant<")
		for i, a := range t.Alternatives {
			if i > 0 {
				buf.WriteByte(',')
			}
			a.write(buf)
		}
		buf.WriteByte('>')
	}
}

// Equal reports whether t and o denote the same type. Defined types are
// equal when they name the same declaration.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.Name != o.Name || t.Size != o.Size {
		return false
	}
	if !t.Elem.Equal(o.Elem) || !t.Key.Equal(o.Key) || !t.Value.Equal(o.Value) {
		return false
	}
	if len(t.Alternatives) != len(o.Alternatives) {
		return false
	}
	for i := range t.Alternatives {
		if !t.Alternatives[i].Equal(o.Alternatives[i]) {
			return false
		}
	}
	return true
}

// Underlying follows typedefs to the first type which is not a typedef. It
// returns nil if the chain is unresolved.
func (t *Type) Underlying() *Type {
	for t != nil && t.Kind == TypedefKind {
		if t.Typedef == nil {
			return nil
		}
		t = t.Typedef.Type
	}
	return t
}
