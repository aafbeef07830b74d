package load

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/signadot/idlayer/ir"
	"github.com/signadot/idlayer/layer"

	"github.com/google/go-cmp/cmp"
)

func TestBytesOrigins(t *testing.T) {
	tree, err := Bytes("base.yaml", []byte(`name: root
typedefs:
  - name: movement_t
    datatype: int16
    max: 1000
`))
	if err != nil {
		t.Fatal(err)
	}
	td := ir.Get(tree, "typedefs").Values[0]
	if got := td.NamedPath(); got != "$.typedefs[movement_t]" {
		t.Errorf("path = %s", got)
	}
	max := ir.Get(td, "max")
	if n, ok := max.Int(); !ok || n != 1000 {
		t.Errorf("max = %v", max)
	}
	if o := max.Origin; o == nil || o.Source != "base.yaml" || o.Line != 5 {
		t.Errorf("max origin = %s, want base.yaml:5", o)
	}
	if o := td.Fields[1].Origin; o == nil || o.Line != 4 || o.Column != 5 {
		t.Errorf("datatype key origin = %s, want line 4 column 5", o)
	}
}

func TestBytesScalars(t *testing.T) {
	tree, err := Bytes("x.yaml", []byte(`
a: 1
b: 1.5
c: "1"
d: true
e: null
f: 18446744073709551615
g: &anchor [1, 2]
h: *anchor
`))
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]ir.Type{}
	for _, kv := range tree.KeyVals() {
		got[kv.Key] = kv.Val.Type
	}
	want := map[string]ir.Type{
		"a": ir.NumberType,
		"b": ir.NumberType,
		"c": ir.StringType,
		"d": ir.BoolType,
		"e": ir.NullType,
		"f": ir.NumberType,
		"g": ir.ArrayType,
		"h": ir.ArrayType,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("types mismatch (-want +got):\n%s", diff)
	}
	f := ir.Get(tree, "f")
	if _, ok := f.Int(); ok || f.Number != "18446744073709551615" {
		t.Errorf("f = %q, an int64: %v", f.Number, ok)
	}
}

func TestBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{"syntax", "a: [1, 2", ErrParse},
		{"duplicate key", "a: 1\na: 2\n", ErrParse},
		{"documents", "a: 1\n---\nb: 2\n", ErrMultipleDoc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bytes("x.yaml", []byte(tt.text))
			if !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
		})
	}
	tree, err := Bytes("empty.yaml", []byte("# nothing\n"))
	if err != nil || tree.Type != ir.NullType {
		t.Errorf("empty document = %v, %v", tree, err)
	}
}

func TestDocumentLayerType(t *testing.T) {
	tests := []struct {
		name      string
		layerType string
		text      string
		want      string
	}{
		{"default", "", "name: root", layer.IDLLayer},
		{"given", "dbus", "name: root", "dbus"},
		{"declared", "dbus", "layer_type: someip\nname: root", "someip"},
		{"patch list", "", `[{"op": "remove", "path": "/typedefs/0"}]`, layer.JSONPatchLayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Document("x.yaml", tt.layerType, []byte(tt.text))
			if err != nil {
				t.Fatal(err)
			}
			if doc.LayerType != tt.want {
				t.Errorf("layer type = %s, want %s", doc.LayerType, tt.want)
			}
			if ir.Get(doc.Tree, LayerTypeKey) != nil {
				t.Errorf("%s kept in tree", LayerTypeKey)
			}
			if doc.Tree.Origin == nil || doc.Tree.Origin.LayerType != tt.want {
				t.Errorf("origin = %+v, not stamped with %s", doc.Tree.Origin, tt.want)
			}
		})
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"c.yaml", "a.yaml", "b.yaml"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("name: "+name), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	docs, err := Files(context.Background(), paths, FilesJobs(2), DefaultLayerType("dbus"))
	if err != nil {
		t.Fatal(err)
	}
	for i, d := range docs {
		if d.Source != paths[i] || d.Rank != i || d.LayerType != "dbus" {
			t.Errorf("doc %d = %s rank %d type %s", i, d.Source, d.Rank, d.LayerType)
		}
	}
	_, err = Files(context.Background(), append(paths, filepath.Join(dir, "missing.yaml")))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not exist", err)
	}
}
