package typeexpr

import (
	"strconv"
	"strings"
)

type Kind int

const (
	Primitive Kind = iota
	Array
	Map
	Set
	Variant
	Opaque
	Ref
)

func (k Kind) String() string {
	switch k {
	case Primitive:
		return "primitive"
	case Array:
		return "array"
	case Map:
		return "map"
	case Set:
		return "set"
	case Variant:
		return "variant"
	case Opaque:
		return "opaque"
	case Ref:
		return "reference"
	}
	return "<unknown kind>"
}

// Expr is a parsed type expression.
//
// Name holds the keyword of a Primitive and the (possibly dotted) name of a
// Ref. Args holds the element of an Array or Set, the key and value of a
// Map and the alternatives of a Variant. Size is the fixed size of an
// Array, 0 meaning unbounded.
type Expr struct {
	Kind Kind
	Name string
	Size int
	Args []*Expr
}

func (e *Expr) String() string {
	buf := &strings.Builder{}
	e.write(buf)
	return buf.String()
}

func (e *Expr) write(buf *strings.Builder) {
	switch e.Kind {
	case Primitive, Ref:
		buf.WriteString(e.Name)
	case Opaque:
		buf.WriteString("opaque")
	case Array:
		e.Args[0].write(buf)
		buf.WriteByte('[')
		if e.Size > 0 {
			buf.WriteString(strconv.Itoa(e.Size))
		}
		buf.WriteByte(']')
	case Map, Set, Variant:
		buf.WriteString(e.Kind.String())
		buf.WriteByte('<')
		for i, a := range e.Args {
			if i > 0 {
				buf.WriteByte(',')
			}
			a.write(buf)
		}
		buf.WriteByte('>')
	}
}

// Elem returns the element type of an Array or Set.
func (e *Expr) Elem() *Expr {
	switch e.Kind {
	case Array, Set:
		return e.Args[0]
	}
	return nil
}

// Refs returns the names referenced by e in the order they appear.
func (e *Expr) Refs() []string {
	var res []string
	var walk func(x *Expr)
	walk = func(x *Expr) {
		if x.Kind == Ref {
			res = append(res, x.Name)
			return
		}
		for _, a := range x.Args {
			walk(a)
		}
	}
	walk(e)
	return res
}

// Dotted reports whether a reference name has a namespace qualifier.
func (e *Expr) Dotted() bool {
	return e.Kind == Ref && strings.Contains(e.Name, ".")
}

// ArrayOf returns an array of elem with the given size.
func ArrayOf(elem *Expr, size int) *Expr {
	return &Expr{Kind: Array, Size: size, Args: []*Expr{elem}}
}

var primitives = []string{
	"int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "uint64",
	"float", "double", "string",
}

// Primitives returns the primitive type keywords.
func Primitives() []string {
	return append([]string(nil), primitives...)
}

func IsPrimitive(name string) bool {
	for _, p := range primitives {
		if p == name {
			return true
		}
	}
	return false
}

func IsInteger(name string) bool {
	return IsPrimitive(name) && (strings.HasPrefix(name, "int") || strings.HasPrefix(name, "uint"))
}

func IsFloat(name string) bool {
	return name == "float" || name == "double"
}
