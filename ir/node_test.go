package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func seats() *Node {
	return FromKeyVals([]KeyVal{
		{Key: "name", Val: FromString("root")},
		{Key: "namespaces", Val: FromSlice([]*Node{
			FromKeyVals([]KeyVal{
				{Key: "name", Val: FromString("seats")},
				{Key: "typedefs", Val: FromSlice([]*Node{
					FromKeyVals([]KeyVal{
						{Key: "name", Val: FromString("movement_t")},
						{Key: "max", Val: FromInt(1000)},
					}),
				})},
			}),
		})},
	})
}

func TestPaths(t *testing.T) {
	td := Get(seats(), "namespaces").Values[0]
	td = Get(td, "typedefs").Values[0]
	if got := td.Path(); got != "$.namespaces[0].typedefs[0]" {
		t.Errorf("Path() = %s", got)
	}
	if got := td.NamedPath(); got != "$.namespaces[seats].typedefs[movement_t]" {
		t.Errorf("NamedPath() = %s", got)
	}
	if got := Get(td, "max").NamedPath(); got != "$.namespaces[seats].typedefs[movement_t].max" {
		t.Errorf("NamedPath() = %s", got)
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		node *Node
		want int64
		ok   bool
	}{
		{FromInt(-3), -3, true},
		{FromFloat(4), 4, true},
		{FromFloat(4.5), 0, false},
		{FromFloat(1e19), 0, false},
		{FromString("4"), 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.node.Int()
		if got != tt.want || ok != tt.ok {
			t.Errorf("Int() of %v = %d, %v, want %d, %v", tt.node, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTypes(t *testing.T) {
	tests := []struct {
		node *Node
		name string
		leaf bool
	}{
		{Null(), "null", true},
		{FromInt(1), "number", true},
		{FromString("a"), "string", true},
		{FromBool(true), "bool", true},
		{FromKeyVals(nil), "object", false},
		{FromSlice(nil), "list", false},
	}
	for _, tt := range tests {
		if got := tt.node.Type.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.node.Type.IsLeaf(); got != tt.leaf {
			t.Errorf("%s IsLeaf() = %v, want %v", tt.name, got, tt.leaf)
		}
	}
	if got := Type(42).String(); got != "<unknown type>" {
		t.Errorf("String() of unknown type = %q", got)
	}
}

func TestCloneIndependent(t *testing.T) {
	a := seats()
	b := a.Clone()
	if !Equal(a, b) {
		t.Fatal("clone differs")
	}
	Get(b, "name").String = "other"
	if Get(a, "name").String != "root" {
		t.Errorf("clone shares nodes with the original")
	}
	if Compare(a, b) == 0 {
		t.Errorf("changed clone still equal")
	}
}

func TestJSON(t *testing.T) {
	d, err := MarshalJSON(seats())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"root","namespaces":[{"name":"seats","typedefs":[{"name":"movement_t","max":1000}]}]}`
	if string(d) != want {
		t.Errorf("got %s", d)
	}
	back, err := UnmarshalJSON(d)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(back, seats()) {
		t.Errorf("decoded tree differs")
	}
	if _, err := UnmarshalJSON([]byte(`{"a": 1} 2`)); !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}

func TestToAny(t *testing.T) {
	got := ToAny(seats())
	want := map[string]any{
		"name": "root",
		"namespaces": []any{
			map[string]any{
				"name": "seats",
				"typedefs": []any{
					map[string]any{"name": "movement_t", "max": int64(1000)},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToAny mismatch (-want +got):\n%s", diff)
	}
}
