package encode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/ir"
)

func testTree() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString("movement_t")},
		{Key: "datatype", Val: ir.FromString("int16")},
		{Key: "min", Val: ir.FromInt(-1000)},
		{Key: "scale", Val: ir.FromFloat(0.5)},
		{Key: "tags", Val: ir.FromSlice([]*ir.Node{ir.FromBool(true), ir.Null()})},
	})
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   string
	}{
		{
			name:   "yaml keeps field order",
			format: YAMLFormat,
			want: `name: movement_t
datatype: int16
min: -1000
scale: 0.5
tags:
  - true
  - null
`,
		},
		{
			name:   "json",
			format: JSONFormat,
			want: `{
  "name": "movement_t",
  "datatype": "int16",
  "min": -1000,
  "scale": 0.5,
  "tags": [
    true,
    null
  ]
}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := Encode(testTree(), buf, EncodeFormat(tt.format)); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"y": YAMLFormat, "YAML": YAMLFormat, "j": JSONFormat, "json": JSONFormat} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("err = %v, want ErrBadFormat", err)
	}
	if err := Encode(ir.Null(), &bytes.Buffer{}, EncodeFormat(Format(9))); !errors.Is(err, ErrBadFormat) {
		t.Errorf("err = %v, want ErrBadFormat", err)
	}
}

func TestDiagnostics(t *testing.T) {
	base := &ir.Origin{Source: "base.yaml", Line: 4, Column: 5}
	overlay := &ir.Origin{Source: "overlay.yaml", Line: 6, Column: 5}
	ds := []diag.Diagnostic{
		diag.Errorf(diag.DuplicateName, overlay, "$.structs[position_t]", "defined twice").WithRelated(base),
		diag.Warnf(diag.MergeConflict, nil, "", "ignored"),
	}
	buf := &bytes.Buffer{}
	if err := Diagnostics(buf, ds, nil); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"overlay.yaml:6:5: error[DuplicateName] $.structs[position_t]: defined twice (see base.yaml:4:5)",
		"warning[MergeConflict]: ignored",
		"1 error(s), 1 warning(s)",
		"",
	}
	if got := strings.Split(buf.String(), "\n"); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), strings.Join(want, "\n"))
	}
	buf.Reset()
	if err := Diagnostics(buf, nil, NewColors()); err != nil || buf.Len() != 0 {
		t.Errorf("no diagnostics wrote %q, %v", buf.String(), err)
	}
}
