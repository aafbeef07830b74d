package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/signadot/idlayer/ir"

	"github.com/goccy/go-yaml"
)

// Encode writes node to w in the configured format.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	cfg := &EncodeConfig{Format: YAMLFormat}
	for _, opt := range opts {
		opt(cfg)
	}
	switch cfg.Format {
	case JSONFormat:
		d, err := ir.MarshalJSON(node)
		if err != nil {
			return err
		}
		buf := bytes.NewBuffer(nil)
		if err := json.Indent(buf, d, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err = w.Write(buf.Bytes())
		return err
	case YAMLFormat:
		d, err := yaml.MarshalWithOptions(ToYAMLValue(node), yaml.IndentSequence(true))
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	}
	return fmt.Errorf("%w: %q", ErrBadFormat, cfg.Format)
}

// YAMLString encodes node as YAML.
func YAMLString(node *ir.Node) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MustString is YAMLString for use in messages; it never fails.
func MustString(node *ir.Node) string {
	s, err := YAMLString(node)
	if err != nil {
		return fmt.Sprintf("<%s: %v>", node.Type, err)
	}
	return s
}

// ToYAMLValue converts a node into values the yaml encoder understands,
// keeping object field order with yaml.MapSlice.
func ToYAMLValue(node *ir.Node) any {
	switch node.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return node.Bool
	case ir.StringType:
		return node.String
	case ir.NumberType:
		if i, ok := node.Int(); ok && node.Float64 == nil {
			return i
		}
		if f, ok := node.Float(); ok {
			return f
		}
		return node.Number
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToYAMLValue(v)
		}
		return res
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: ToYAMLValue(node.Values[i])}
		}
		return res
	}
	return nil
}
