package model

import (
	"slices"

	"github.com/signadot/idlayer/ir"
)

// Decl holds what every named element of the tree has in common.
type Decl struct {
	Name        string
	Description string
	// Path is the named tree path of the element, such as
	// $.namespaces[seats].structs[position_t].
	Path   string
	Origin *ir.Origin
	// Attrs holds the keys the element carries beyond its known fields.
	Attrs *Attrs
}

type Typedef struct {
	Decl
	Qualified string
	Namespace *Namespace
	// Datatype is the type expression text, ArraySize the arraysize field.
	Datatype  string
	ArraySize *ir.Node
	Min, Max  *ir.Node
	// Type is nil when the base could not be resolved.
	Type *Type
}

type Enumeration struct {
	Decl
	Qualified string
	Namespace *Namespace
	Datatype  string
	Base      *Type
	Options   []*Option
}

type Option struct {
	Decl
	// Value is the option value, given or assigned.
	Value    int64
	Explicit bool
	// ValueNode is the value as written, nil when assigned.
	ValueNode *ir.Node
}

type Struct struct {
	Decl
	Qualified string
	Namespace *Namespace
	Members   []*Member
}

// Member is a typed, named element: a struct member, a method or event
// parameter or a property.
type Member struct {
	Decl
	Datatype  string
	ArraySize *ir.Node
	Type      *Type
}

type Method struct {
	Decl
	In      []*Member
	Out     []*Member
	Errors  []*Member
	Returns []*Member
}

type Event struct {
	Decl
	In []*Member
}

type Property struct {
	Member
}

// Attrs is an open attribute bag of unrecognized keys, in document order.
type Attrs struct {
	keys    []string
	values  map[string]*ir.Node
	origins map[string]*ir.Origin
}

func NewAttrs() *Attrs {
	return &Attrs{values: map[string]*ir.Node{}, origins: map[string]*ir.Origin{}}
}

// Set records key with its value and the origin of the key itself.
func (a *Attrs) Set(key string, v *ir.Node, keyOrigin *ir.Origin) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = v
	a.origins[key] = keyOrigin
}

func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.keys)
}

func (a *Attrs) Get(key string) *ir.Node {
	if a == nil {
		return nil
	}
	return a.values[key]
}

func (a *Attrs) Origin(key string) *ir.Origin {
	if a == nil {
		return nil
	}
	return a.origins[key]
}

// LayerType is the layer type of the document which last set key.
func (a *Attrs) LayerType(key string) string {
	if o := a.Origin(key); o != nil {
		return o.LayerType
	}
	return ""
}

// LayerTypes returns the distinct layer types that contributed keys, in
// key order.
func (a *Attrs) LayerTypes() []string {
	var res []string
	for _, k := range a.Keys() {
		lt := a.LayerType(k)
		if !slices.Contains(res, lt) {
			res = append(res, lt)
		}
	}
	return res
}

// Select returns the keys contributed by layerType.
func (a *Attrs) Select(layerType string) []string {
	var res []string
	for _, k := range a.Keys() {
		if a.LayerType(k) == layerType {
			res = append(res, k)
		}
	}
	return res
}

// Map returns the bag as plain values.
func (a *Attrs) Map() map[string]any {
	res := make(map[string]any, a.Len())
	for _, k := range a.Keys() {
		res[k] = ir.ToAny(a.values[k])
	}
	return res
}
