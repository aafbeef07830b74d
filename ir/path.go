package ir

import (
	"strconv"
	"strings"
)

// Path returns a JSONPath-like location of y within its tree, such as
// "$.namespaces[0].typedefs[2]".
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		f := y.ParentField
		prefix := y.Parent.Path() + "."
		if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
			return prefix + f
		}
		return prefix + "'" + strings.Replace(f, "'", "\\'", -1) + "'"
	case ArrayType:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// NamedPath is like Path but renders elements of arrays that carry a
// "name" field by name, e.g. "$.namespaces[comfort].typedefs[movement_t]".
// Named paths stay stable across merges, while indices do not.
func (y *Node) NamedPath() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		f := y.ParentField
		prefix := y.Parent.NamedPath() + "."
		if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
			return prefix + f
		}
		return prefix + "'" + strings.Replace(f, "'", "\\'", -1) + "'"
	case ArrayType:
		if name, ok := y.Name(); ok {
			return y.Parent.NamedPath() + "[" + name + "]"
		}
		return y.Parent.NamedPath() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}
