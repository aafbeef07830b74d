package resolve

import (
	"slices"
	"testing"

	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/ir"
	"github.com/signadot/idlayer/load"
	"github.com/signadot/idlayer/model"
	"github.com/signadot/idlayer/typeexpr"

	"github.com/google/go-cmp/cmp"
)

func mustTree(t *testing.T, text string) *ir.Node {
	t.Helper()
	tree, err := load.Bytes("test.yaml", []byte(text))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return tree
}

func categories(ds []diag.Diagnostic) []diag.Category {
	var res []diag.Category
	for _, d := range ds {
		res = append(res, d.Category)
	}
	return res
}

// types renders the resolved type of every typed element by path.
func types(m *model.Model) map[string]string {
	res := map[string]string{}
	for _, ns := range m.Namespaces() {
		for _, td := range ns.Typedefs {
			res[td.Path] = td.Type.String()
		}
		for _, en := range ns.Enumerations {
			res[en.Path] = en.Base.String()
		}
		for _, st := range ns.Structs {
			for _, mb := range st.Members {
				res[mb.Path] = mb.Type.String()
			}
		}
		for _, me := range ns.Methods {
			for _, l := range [][]*model.Member{me.In, me.Out, me.Errors, me.Returns} {
				for _, mb := range l {
					res[mb.Path] = mb.Type.String()
				}
			}
		}
		for _, ev := range ns.Events {
			for _, mb := range ev.In {
				res[mb.Path] = mb.Type.String()
			}
		}
		for _, p := range ns.Properties {
			res[p.Path] = p.Type.String()
		}
	}
	return res
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		tree  string
		want  map[string]string
		diags []diag.Category
	}{
		{
			name: "fundamental types",
			tree: `
name: root
structs:
  - name: s
    members:
      - name: a
        datatype: uint8
      - name: b
        datatype: string[]
      - name: c
        datatype: map<string, double>
      - name: d
        datatype: set<int64>
      - name: e
        datatype: variant<int8,float,opaque>
      - name: f
        datatype: opaque`,
			want: map[string]string{
				"$.structs[s].members[a]": "uint8",
				"$.structs[s].members[b]": "string[]",
				"$.structs[s].members[c]": "map<string,double>",
				"$.structs[s].members[d]": "set<int64>",
				"$.structs[s].members[e]": "variant<int8,float,opaque>",
				"$.structs[s].members[f]": "opaque",
			},
		},
		{
			name: "array syntax equivalence",
			tree: `
name: root
structs:
  - name: s
    members:
      - name: bracket
        datatype: uint8[10]
      - name: field
        datatype: uint8
        arraysize: 10
      - name: both
        datatype: uint8[10]
        arraysize: 10
      - name: open
        datatype: uint8[]
        arraysize: 10`,
			want: map[string]string{
				"$.structs[s].members[bracket]": "uint8[10]",
				"$.structs[s].members[field]":   "uint8[10]",
				"$.structs[s].members[both]":    "uint8[10]",
				"$.structs[s].members[open]":    "uint8[10]",
			},
		},
		{
			name: "array size conflicts",
			tree: `
name: root
structs:
  - name: s
    members:
      - name: mismatch
        datatype: uint8[4]
        arraysize: 10
      - name: zero
        datatype: uint8[0]
      - name: negative
        datatype: uint8
        arraysize: -2
      - name: text
        datatype: uint8
        arraysize: ten
      - name: fine
        datatype: int16`,
			want: map[string]string{
				"$.structs[s].members[mismatch]": "<unresolved>",
				"$.structs[s].members[zero]":     "<unresolved>",
				"$.structs[s].members[negative]": "<unresolved>",
				"$.structs[s].members[text]":     "<unresolved>",
				"$.structs[s].members[fine]":     "int16",
			},
			diags: []diag.Category{diag.ArraySizeConflict, diag.ArraySizeConflict,
				diag.ArraySizeConflict, diag.ArraySizeConflict},
		},
		{
			name: "scope search",
			tree: `
name: root
typedefs:
  - name: global_t
    datatype: uint32
namespaces:
  - name: Vehicle
    typedefs:
      - name: speed_t
        datatype: global_t
    namespaces:
      - name: Cabin
        structs:
          - name: seat_t
            members:
              - name: speed
                datatype: speed_t
              - name: global
                datatype: global_t
              - name: sibling
                datatype: Body.door_t
              - name: absolute
                datatype: Vehicle.Body.door_t
              - name: rooted
                datatype: root.Vehicle.speed_t
      - name: Body
        enumerations:
          - name: door_t
            datatype: uint8
            options:
              - name: open
              - name: closed`,
			want: map[string]string{
				"$.typedefs[global_t]":                                        "uint32",
				"$.namespaces[Vehicle].typedefs[speed_t]":                     "global_t",
				"$.namespaces[Vehicle].namespaces[Cabin].structs[seat_t].members[speed]":    "Vehicle.speed_t",
				"$.namespaces[Vehicle].namespaces[Cabin].structs[seat_t].members[global]":   "global_t",
				"$.namespaces[Vehicle].namespaces[Cabin].structs[seat_t].members[sibling]":  "Vehicle.Body.door_t",
				"$.namespaces[Vehicle].namespaces[Cabin].structs[seat_t].members[absolute]": "Vehicle.Body.door_t",
				"$.namespaces[Vehicle].namespaces[Cabin].structs[seat_t].members[rooted]":   "Vehicle.speed_t",
				"$.namespaces[Vehicle].namespaces[Body].enumerations[door_t]":               "uint8",
			},
		},
		{
			name: "inner definition shadows outer",
			tree: `
name: root
typedefs:
  - name: id_t
    datatype: uint8
namespaces:
  - name: inner
    typedefs:
      - name: id_t
        datatype: uint64
    properties:
      - name: id
        datatype: id_t`,
			want: map[string]string{
				"$.typedefs[id_t]":                          "uint8",
				"$.namespaces[inner].typedefs[id_t]":        "uint64",
				"$.namespaces[inner].properties[id]":        "inner.id_t",
			},
		},
		{
			name: "unresolved reference",
			tree: `
name: root
methods:
  - name: move
    in:
      - name: pos
        datatype: map<string,position_t>
    out:
      - name: ok
        datatype: uint8
events:
  - name: moved
    in:
      - name: where
        datatype: nowhere.position_t[]`,
			want: map[string]string{
				"$.methods[move].in[pos]":   "<unresolved>",
				"$.methods[move].out[ok]":   "uint8",
				"$.events[moved].in[where]": "<unresolved>",
			},
			diags: []diag.Category{diag.UnresolvedReference, diag.UnresolvedReference},
		},
		{
			name: "cycle rejection",
			tree: `
name: root
typedefs:
  - name: t1
    datatype: t2
  - name: t2
    datatype: t1
  - name: t3
    datatype: int8
  - name: self
    datatype: self[]
structs:
  - name: node_t
    members:
      - name: children
        datatype: node_t[]
      - name: value
        datatype: t3`,
			want: map[string]string{
				"$.typedefs[t1]":                    "<unresolved>",
				"$.typedefs[t2]":                    "<unresolved>",
				"$.typedefs[t3]":                    "int8",
				"$.typedefs[self]":                  "<unresolved>",
				"$.structs[node_t].members[children]": "node_t[]",
				"$.structs[node_t].members[value]":    "t3",
			},
			diags: []diag.Category{diag.CyclicTypedef, diag.CyclicTypedef, diag.CyclicTypedef},
		},
		{
			name: "range checking",
			tree: `
name: root
typedefs:
  - name: small_t
    datatype: uint8
    max: 300
  - name: ok_t
    datatype: int16
    min: -1000
    max: 1000
  - name: neg_t
    datatype: uint16
    min: -1
  - name: frac_t
    datatype: int32
    min: 0.5
  - name: through_t
    datatype: ok_t
    max: 40000
  - name: flt_t
    datatype: float
    max: 1.0e39
  - name: dbl_t
    datatype: double
    min: -1.0e39
  - name: text_t
    datatype: string
    max: 4
  - name: upside_t
    datatype: int8
    min: 10
    max: -10
  - name: big_t
    datatype: uint64
    max: 18446744073709551615`,
			want: map[string]string{
				"$.typedefs[small_t]":   "uint8",
				"$.typedefs[ok_t]":      "int16",
				"$.typedefs[neg_t]":     "uint16",
				"$.typedefs[frac_t]":    "int32",
				"$.typedefs[through_t]": "ok_t",
				"$.typedefs[flt_t]":     "float",
				"$.typedefs[dbl_t]":     "double",
				"$.typedefs[text_t]":    "string",
				"$.typedefs[upside_t]":  "int8",
				"$.typedefs[big_t]":     "uint64",
			},
			diags: []diag.Category{diag.ConstraintRangeError, diag.ConstraintRangeError,
				diag.ConstraintRangeError, diag.ConstraintRangeError, diag.ConstraintRangeError,
				diag.ConstraintRangeError, diag.ConstraintRangeError},
		},
		{
			name: "enumerations",
			tree: `
name: root
typedefs:
  - name: byte_t
    datatype: uint8
enumerations:
  - name: ok_e
    datatype: byte_t
    options:
      - name: a
      - name: b
        value: 255
  - name: overflow_e
    datatype: int8
    options:
      - name: a
        value: 127
      - name: b
  - name: text_e
    datatype: string
    options:
      - name: a
  - name: missing_e
    datatype: nothing_t
    options:
      - name: a`,
			want: map[string]string{
				"$.typedefs[byte_t]":         "uint8",
				"$.enumerations[ok_e]":       "byte_t",
				"$.enumerations[overflow_e]": "int8",
				"$.enumerations[text_e]":     "<unresolved>",
				"$.enumerations[missing_e]":  "<unresolved>",
			},
			diags: []diag.Category{diag.ConstraintRangeError, diag.ConstraintRangeError,
				diag.UnresolvedReference},
		},
		{
			name: "enumerations without options",
			tree: `
name: root
enumerations:
  - name: bare_e
    datatype: uint8
  - name: empty_e
    datatype: uint8
    options: []
datatypes:
  - name: shaped_e
    datatype: uint8
    options: []`,
			want: map[string]string{
				"$.enumerations[bare_e]":  "uint8",
				"$.enumerations[empty_e]": "uint8",
				"$.datatypes[shaped_e]":   "uint8",
			},
			diags: []diag.Category{diag.InvalidNode, diag.InvalidNode, diag.InvalidNode},
		},
		{
			name: "malformed nodes",
			tree: `
name: root
structs: nope
typedefs:
  - datatype: uint8
  - just text
  - name: fine_t
    datatype: uint8
  - name: untyped_t
  - name: broken_t
    datatype: map<uint8`,
			want: map[string]string{
				"$.typedefs[fine_t]":    "uint8",
				"$.typedefs[untyped_t]": "<unresolved>",
				"$.typedefs[broken_t]":  "<unresolved>",
			},
			diags: []diag.Category{diag.InvalidNode, diag.InvalidNode, diag.InvalidNode,
				diag.InvalidNode, diag.InvalidNode},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ds := Resolve(mustTree(t, tt.tree))
			if diff := cmp.Diff(tt.want, types(m)); diff != "" {
				t.Errorf("types mismatch (-want +got):\n%s", diff)
			}
			got := categories(ds)
			slices.Sort(got)
			want := slices.Clone(tt.diags)
			slices.Sort(want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s\n%v", diff, ds)
			}
		})
	}
}

func TestResolveArrayEquivalence(t *testing.T) {
	m, ds := Resolve(mustTree(t, `
name: root
typedefs:
  - name: a_t
    datatype: uint8[10]
  - name: b_t
    datatype: uint8
    arraysize: 10`))
	if len(ds) != 0 {
		t.Fatalf("unexpected diagnostics %v", ds)
	}
	a, b := m.Typedef("a_t"), m.Typedef("b_t")
	if !a.Type.Equal(b.Type) {
		t.Errorf("%s and %s differ", a.Type, b.Type)
	}
	if a.Type.Kind != model.ArrayKind || a.Type.Size != 10 || a.Type.Elem.Name != "uint8" {
		t.Errorf("a_t = %#v, want array of 10 uint8", a.Type)
	}
}

func TestResolveArraySizeBound(t *testing.T) {
	m, ds := Resolve(mustTree(t, `
name: root
typedefs:
  - name: max_t
    datatype: uint8[2147483647]
  - name: bracket_t
    datatype: uint8[3000000000]
  - name: field_t
    datatype: uint8
    arraysize: 3000000000
  - name: signed_t
    datatype: uint8[+5]`))
	want := []diag.Category{diag.ArraySizeConflict, diag.ArraySizeConflict, diag.ArraySizeConflict}
	if diff := cmp.Diff(want, categories(ds)); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s\n%v", diff, ds)
	}
	if got := m.Typedef("max_t").Type; got == nil || got.Size != typeexpr.MaxArraySize {
		t.Errorf("max_t = %v, want array of %d", got, typeexpr.MaxArraySize)
	}
	for _, name := range []string{"bracket_t", "field_t", "signed_t"} {
		if got := m.Typedef(name).Type; got != nil {
			t.Errorf("%s = %v, want unresolved", name, got)
		}
	}
}

func TestResolveCycleDiagnostics(t *testing.T) {
	_, ds := Resolve(mustTree(t, `
name: root
typedefs:
  - name: t1
    datatype: t2
  - name: t2
    datatype: variant<int8,t1>`))
	cyc := diag.Filter(ds, diag.CyclicTypedef)
	if len(cyc) != 2 {
		t.Fatalf("got %d cycle diagnostics, want 2: %v", len(cyc), ds)
	}
	for _, d := range cyc {
		if !d.Fatal() {
			t.Errorf("%s is not fatal", d)
		}
		if len(d.Related) != 1 {
			t.Errorf("%s: related = %v, want the other typedef", d, d.Related)
		}
	}
	if cyc[0].Path != "$.typedefs[t1]" || cyc[1].Path != "$.typedefs[t2]" {
		t.Errorf("paths = %s, %s", cyc[0].Path, cyc[1].Path)
	}
}

func TestResolveEnumerationValues(t *testing.T) {
	m, ds := Resolve(mustTree(t, `
name: root
enumerations:
  - name: mode_e
    datatype: uint8
    options:
      - name: off
      - name: low
      - name: high
        value: 10
      - name: max`))
	if len(ds) != 0 {
		t.Fatalf("unexpected diagnostics %v", ds)
	}
	var got []int64
	for _, o := range m.Enumeration("mode_e").Options {
		got = append(got, o.Value)
	}
	if diff := cmp.Diff([]int64{0, 1, 10, 11}, got); diff != "" {
		t.Errorf("option values mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveAttrs(t *testing.T) {
	tree := mustTree(t, `
name: root
version_major: 1
methods:
  - name: move
    dbus_method: Move
    in:
      - name: pos
        datatype: uint8
        dbus_type: y`)
	m, ds := Resolve(tree)
	if len(ds) != 0 {
		t.Fatalf("unexpected diagnostics %v", ds)
	}
	if diff := cmp.Diff([]string{"version_major"}, m.Root.Attrs.Keys()); diff != "" {
		t.Errorf("root attrs mismatch (-want +got):\n%s", diff)
	}
	me := m.Root.Methods[0]
	if got := me.Attrs.Get("dbus_method"); got == nil || got.String != "Move" {
		t.Errorf("dbus_method = %v", got)
	}
	if diff := cmp.Diff(map[string]any{"dbus_type": "y"}, me.In[0].Attrs.Map()); diff != "" {
		t.Errorf("parameter attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveParallelDeterministic(t *testing.T) {
	text := `
name: root
namespaces:
  - name: a
    typedefs:
      - name: t
        datatype: b.u
    structs:
      - name: s
        members:
          - name: x
            datatype: missing_a
  - name: b
    typedefs:
      - name: u
        datatype: uint8
        max: 1000
  - name: c
    properties:
      - name: p
        datatype: a.s[3]
      - name: q
        datatype: missing_c`
	want, wantDiags := Resolve(mustTree(t, text), Jobs(1))
	for range 10 {
		got, gotDiags := Resolve(mustTree(t, text), Jobs(4))
		if diff := cmp.Diff(types(want), types(got)); diff != "" {
			t.Fatalf("types differ (-jobs1 +jobs4):\n%s", diff)
		}
		if diff := cmp.Diff(wantDiags, gotDiags); diff != "" {
			t.Fatalf("diagnostics differ (-jobs1 +jobs4):\n%s", diff)
		}
	}
}

func TestSymbolTableInsertIfAbsent(t *testing.T) {
	syms := NewSymbolTable()
	first := &Symbol{Qualified: "a.b", Kind: model.StructKind, Struct: &model.Struct{}}
	second := &Symbol{Qualified: "a.b", Kind: model.TypedefKind, Typedef: &model.Typedef{}}
	if _, ok := syms.Insert(first); !ok {
		t.Fatalf("first insert refused")
	}
	cur, ok := syms.Insert(second)
	if ok || cur != first {
		t.Errorf("second insert = %v, %v, want first symbol kept", cur, ok)
	}
	syms.Freeze()
	if syms.Lookup("a.b") != first {
		t.Errorf("lookup did not return first symbol")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("insert into frozen table did not panic")
		}
	}()
	syms.Insert(&Symbol{Qualified: "c"})
}
