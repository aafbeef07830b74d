package ir

// Type is the shape of a node: a container or one of the yaml scalars.
type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ObjectType
	ArrayType
)

var typeNames = [...]string{
	NullType:   "null",
	NumberType: "number",
	StringType: "string",
	BoolType:   "bool",
	ObjectType: "object",
	ArrayType:  "list",
}

// String names t the way diagnostics refer to it, so an ArrayType is a
// "list" as in the layer files.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "<unknown type>"
	}
	return typeNames[t]
}

// IsLeaf reports whether nodes of type t are merged as a whole rather
// than field by field or element by element.
func (t Type) IsLeaf() bool {
	return t != ObjectType && t != ArrayType
}
