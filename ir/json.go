package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// MarshalJSON encodes the value held by the node tree as plain JSON,
// keeping object field order.
func MarshalJSON(y *Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, y); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, y *Node) error {
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case NumberType:
		buf.WriteString(y.Scalar())
	case StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, f := range y.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(f.String)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := writeJSON(buf, y.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode %s as json", y.Type)
	}
	return nil
}

// UnmarshalJSON decodes JSON into a node tree, keeping object field order.
func UnmarshalJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := readJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after json value", ErrParse)
	}
	return res, nil
}

func readJSON(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(v), nil
	case string:
		return FromString(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return FromInt(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return FromFloat(f), nil
	case json.Delim:
		switch v {
		case '[':
			var vals []*Node
			for dec.More() {
				val, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				vals = append(vals, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return FromSlice(vals), nil
		case '{':
			var kvs []KeyVal
			for dec.More() {
				kTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", kTok)
				}
				val, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				kvs = append(kvs, KeyVal{Key: key, Val: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return FromKeyVals(kvs), nil
		}
	}
	return nil, fmt.Errorf("unexpected json token %v", tok)
}

// InheritOrigins copies origins from src onto the matching nodes of dst.
// Object fields match by key and array elements match by their "name"
// field, falling back to position. Nodes of dst without a counterpart in
// src get fallback.
func InheritOrigins(dst, src *Node, fallback *Origin) {
	if dst == nil {
		return
	}
	if src == nil {
		dst.SetOrigins(fallback)
		return
	}
	dst.Origin = src.Origin
	switch {
	case dst.Type == ObjectType && src.Type == ObjectType:
		for i, f := range dst.Fields {
			sv := Get(src, f.String)
			if sv != nil {
				for j := range src.Fields {
					if src.Fields[j].String == f.String {
						f.Origin = src.Fields[j].Origin
						break
					}
				}
			} else {
				f.Origin = fallback
			}
			InheritOrigins(dst.Values[i], sv, fallback)
		}
	case dst.Type == ArrayType && src.Type == ArrayType:
		byName := map[string]*Node{}
		for _, sv := range src.Values {
			if name, ok := sv.Name(); ok {
				if _, dup := byName[name]; !dup {
					byName[name] = sv
				}
			}
		}
		for i, dv := range dst.Values {
			var sv *Node
			if name, ok := dv.Name(); ok {
				sv = byName[name]
			} else if i < len(src.Values) {
				sv = src.Values[i]
			}
			InheritOrigins(dv, sv, fallback)
		}
	default:
		for _, f := range dst.Fields {
			f.Origin = fallback
		}
		for _, v := range dst.Values {
			v.SetOrigins(fallback)
		}
	}
}
