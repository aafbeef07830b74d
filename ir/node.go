package ir

import (
	"fmt"
	"math"
	"strconv"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64

	// Origin is where the node was read from. It is shared between
	// clones and never modified after the loader sets it.
	Origin *Origin
}

// Origin records the document a node came from.
type Origin struct {
	Source    string
	LayerType string
	Line      int
	Column    int
}

func (o *Origin) String() string {
	if o == nil {
		return "<unknown>"
	}
	if o.Line == 0 {
		return o.Source
	}
	return o.Source + ":" + strconv.Itoa(o.Line) + ":" + strconv.Itoa(o.Column)
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Origin = y.Origin
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}

	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func (y *Node) WithOrigin(o *Origin) *Node {
	y.Origin = o
	return y
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:   NumberType,
		Int64:  &v,
		Number: strconv.FormatInt(v, 10),
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
		Number:  strconv.FormatFloat(f, 'g', -1, 64),
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object with the given fields in order.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		key := FromString(kv.Key)
		key.Origin = kv.Val.Origin
		key.Parent = res
		key.ParentIndex = i
		key.ParentField = kv.Key
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Val.ParentField = kv.Key
		res.Fields[i] = key
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = ""
	}
	return res
}

// KeyVals returns the fields of an object in order.
func (y *Node) KeyVals() []KeyVal {
	if y.Type != ObjectType {
		return nil
	}
	res := make([]KeyVal, len(y.Fields))
	for i := range y.Fields {
		res[i] = KeyVal{Key: y.Fields[i].String, Val: y.Values[i]}
	}
	return res
}

func Get(y *Node, field string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// GetString returns the string value of field, if it is a string.
func GetString(y *Node, field string) (string, bool) {
	v := Get(y, field)
	if v == nil || v.Type != StringType {
		return "", false
	}
	return v.String, true
}

// Name returns the value of the "name" field of an object node.
func (y *Node) Name() (string, bool) {
	return GetString(y, "name")
}

// Int returns the node as an integer if it is an integral number.
func (y *Node) Int() (int64, bool) {
	if y == nil || y.Type != NumberType {
		return 0, false
	}
	if y.Int64 != nil {
		return *y.Int64, true
	}
	if y.Float64 != nil {
		f := *y.Float64
		if f >= -(1<<63) && f < 1<<63 && f == math.Trunc(f) {
			return int64(f), true
		}
	}
	return 0, false
}

// Float returns the node as a float64 if it is a number.
func (y *Node) Float() (float64, bool) {
	if y == nil || y.Type != NumberType {
		return 0, false
	}
	if y.Float64 != nil {
		return *y.Float64, true
	}
	if y.Int64 != nil {
		return float64(*y.Int64), true
	}
	f, err := strconv.ParseFloat(y.Number, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Scalar renders a leaf node as text. Containers render as their type.
func (y *Node) Scalar() string {
	switch y.Type {
	case NullType:
		return "null"
	case BoolType:
		return strconv.FormatBool(y.Bool)
	case StringType:
		return y.String
	case NumberType:
		if y.Number != "" {
			return y.Number
		}
		if y.Int64 != nil {
			return strconv.FormatInt(*y.Int64, 10)
		}
		if y.Float64 != nil {
			return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
		}
	}
	return fmt.Sprintf("<%s>", y.Type)
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// SetOrigins sets o on every node of the tree which has no origin yet.
func (y *Node) SetOrigins(o *Origin) {
	_ = y.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		if n.Origin == nil {
			n.Origin = o
		}
		for _, f := range n.Fields {
			if f.Origin == nil {
				f.Origin = o
			}
		}
		return true, nil
	})
}

// StampLayerType rewrites the origins of the tree so they carry layerType.
// Origins are copied, never modified in place.
func (y *Node) StampLayerType(layerType string) {
	seen := map[*Origin]*Origin{}
	stamp := func(o *Origin) *Origin {
		if o == nil {
			return nil
		}
		if s, ok := seen[o]; ok {
			return s
		}
		c := *o
		c.LayerType = layerType
		seen[o] = &c
		return &c
	}
	_ = y.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		n.Origin = stamp(n.Origin)
		for _, f := range n.Fields {
			f.Origin = stamp(f.Origin)
		}
		return true, nil
	})
}
