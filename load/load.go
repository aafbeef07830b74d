package load

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/signadot/idlayer/debug"
	"github.com/signadot/idlayer/encode"
	"github.com/signadot/idlayer/ir"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

var (
	ErrParse       = ir.ErrParse
	ErrMultipleDoc = errors.New("multiple documents")
)

// Bytes parses a YAML (or JSON) document into a node tree. Every node
// records its line and column under source. An empty document yields a
// null node.
func Bytes(source string, data []byte) (*ir.Node, error) {
	f, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, source, err)
	}
	var docs []*ast.DocumentNode
	for _, doc := range f.Docs {
		if doc == nil || doc.Body == nil {
			continue
		}
		if _, ok := doc.Body.(*ast.CommentGroupNode); ok {
			continue
		}
		docs = append(docs, doc)
	}
	if len(docs) > 1 {
		return nil, fmt.Errorf("%w: %s holds %d documents", ErrMultipleDoc, source, len(docs))
	}
	if len(docs) == 0 {
		return ir.Null().WithOrigin(&ir.Origin{Source: source}), nil
	}
	c := &converter{source: source, anchors: map[string]*ir.Node{}}
	res, err := c.node(docs[0].Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, source, err)
	}
	if debug.Load() {
		debug.Logf("loaded %s\n%s", source, encode.MustString(res))
	}
	return res, nil
}

type converter struct {
	source  string
	anchors map[string]*ir.Node
}

func (c *converter) origin(tk *token.Token) *ir.Origin {
	o := &ir.Origin{Source: c.source}
	if tk != nil && tk.Position != nil {
		o.Line = tk.Position.Line
		o.Column = tk.Position.Column
	}
	return o
}

func (c *converter) node(n ast.Node) (*ir.Node, error) {
	switch x := n.(type) {
	case nil:
		return ir.Null(), nil
	case *ast.NullNode:
		return ir.Null().WithOrigin(c.origin(x.GetToken())), nil
	case *ast.BoolNode:
		return ir.FromBool(x.Value).WithOrigin(c.origin(x.GetToken())), nil
	case *ast.StringNode:
		return ir.FromString(x.Value).WithOrigin(c.origin(x.GetToken())), nil
	case *ast.LiteralNode:
		return ir.FromString(x.Value.Value).WithOrigin(c.origin(x.GetToken())), nil
	case *ast.IntegerNode:
		res, err := intNode(x)
		if err != nil {
			return nil, err
		}
		return res.WithOrigin(c.origin(x.GetToken())), nil
	case *ast.FloatNode:
		res := ir.FromFloat(x.Value).WithOrigin(c.origin(x.GetToken()))
		res.Number = x.GetToken().Value
		return res, nil
	case *ast.InfinityNode:
		return ir.FromFloat(x.Value).WithOrigin(c.origin(x.GetToken())), nil
	case *ast.NanNode:
		return ir.FromFloat(math.NaN()).WithOrigin(c.origin(x.GetToken())), nil
	case *ast.TagNode:
		return c.node(x.Value)
	case *ast.AnchorNode:
		res, err := c.node(x.Value)
		if err != nil {
			return nil, err
		}
		c.anchors[tokenText(x.Name)] = res
		return res, nil
	case *ast.AliasNode:
		name := tokenText(x.Value)
		res, ok := c.anchors[name]
		if !ok {
			return nil, fmt.Errorf("%s: unknown alias %q", c.origin(x.GetToken()), name)
		}
		return res.Clone(), nil
	case *ast.SequenceNode:
		vals := make([]*ir.Node, 0, len(x.Values))
		for _, v := range x.Values {
			val, err := c.node(v)
			if err != nil {
				return nil, err
			}
			vals = append(vals, val)
		}
		return ir.FromSlice(vals).WithOrigin(c.origin(x.GetToken())), nil
	case *ast.MappingNode:
		return c.mapping(x.Values, x.GetToken())
	case *ast.MappingValueNode:
		return c.mapping([]*ast.MappingValueNode{x}, x.GetToken())
	}
	return nil, fmt.Errorf("%s: unsupported yaml node %s", c.origin(n.GetToken()), n.Type())
}

func (c *converter) mapping(mvs []*ast.MappingValueNode, tk *token.Token) (*ir.Node, error) {
	kvs := make([]ir.KeyVal, 0, len(mvs))
	seen := make(map[string]bool, len(mvs))
	for _, mv := range mvs {
		if mv.Key.IsMergeKey() {
			return nil, fmt.Errorf("%s: merge keys are not supported", c.origin(mv.Key.GetToken()))
		}
		key := keyText(mv.Key)
		if seen[key] {
			return nil, fmt.Errorf("%s: duplicate key %q", c.origin(mv.Key.GetToken()), key)
		}
		seen[key] = true
		val, err := c.node(mv.Value)
		if err != nil {
			return nil, err
		}
		if val.Origin == nil {
			val.Origin = c.origin(mv.Key.GetToken())
		}
		kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
	}
	res := ir.FromKeyVals(kvs)
	res.Origin = c.origin(tk)
	for i, mv := range mvs {
		res.Fields[i].Origin = c.origin(mv.Key.GetToken())
	}
	return res, nil
}

func keyText(k ast.MapKeyNode) string {
	switch x := k.(type) {
	case *ast.StringNode:
		return x.Value
	case *ast.MappingKeyNode:
		if s, ok := x.Value.(*ast.StringNode); ok {
			return s.Value
		}
		return tokenText(x.Value)
	}
	return tokenText(k)
}

func tokenText(n ast.Node) string {
	if n == nil {
		return ""
	}
	if s, ok := n.(*ast.StringNode); ok {
		return s.Value
	}
	tk := n.GetToken()
	if tk == nil {
		return n.String()
	}
	return tk.Value
}

func intNode(x *ast.IntegerNode) (*ir.Node, error) {
	switch v := x.Value.(type) {
	case int64:
		return ir.FromInt(v), nil
	case uint64:
		if v <= math.MaxInt64 {
			return ir.FromInt(int64(v)), nil
		}
		res := ir.FromFloat(float64(v))
		res.Number = strconv.FormatUint(v, 10)
		return res, nil
	case int:
		return ir.FromInt(int64(v)), nil
	}
	return nil, fmt.Errorf("unexpected integer value %v", x.Value)
}
