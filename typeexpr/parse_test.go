package typeexpr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Expr
		canon string
	}{
		{
			name:  "primitive",
			input: "uint8",
			want:  &Expr{Kind: Primitive, Name: "uint8"},
		},
		{
			name:  "opaque",
			input: "opaque",
			want:  &Expr{Kind: Opaque},
		},
		{
			name:  "unbounded array",
			input: "string[]",
			want:  ArrayOf(&Expr{Kind: Primitive, Name: "string"}, 0),
		},
		{
			name:  "fixed array",
			input: "uint8[10]",
			want:  ArrayOf(&Expr{Kind: Primitive, Name: "uint8"}, 10),
		},
		{
			name:  "largest fixed array",
			input: "uint8[2147483647]",
			want:  ArrayOf(&Expr{Kind: Primitive, Name: "uint8"}, MaxArraySize),
		},
		{
			name:  "nested arrays",
			input: "int16[2][3]",
			want:  ArrayOf(ArrayOf(&Expr{Kind: Primitive, Name: "int16"}, 2), 3),
		},
		{
			name:  "map",
			input: "map<string,position_t>",
			want: &Expr{Kind: Map, Args: []*Expr{
				{Kind: Primitive, Name: "string"},
				{Kind: Ref, Name: "position_t"},
			}},
		},
		{
			name:  "set of arrays",
			input: "set<uint8[4]>",
			want: &Expr{Kind: Set, Args: []*Expr{
				ArrayOf(&Expr{Kind: Primitive, Name: "uint8"}, 4),
			}},
		},
		{
			name:  "single variant",
			input: "variant<double>",
			want:  &Expr{Kind: Variant, Args: []*Expr{{Kind: Primitive, Name: "double"}}},
		},
		{
			name:  "variant with whitespace",
			input: "  variant < int32 , seats.movement_t [ ] , map<string, opaque> > ",
			want: &Expr{Kind: Variant, Args: []*Expr{
				{Kind: Primitive, Name: "int32"},
				ArrayOf(&Expr{Kind: Ref, Name: "seats.movement_t"}, 0),
				{Kind: Map, Args: []*Expr{
					{Kind: Primitive, Name: "string"},
					{Kind: Opaque},
				}},
			}},
			canon: "variant<int32,seats.movement_t[],map<string,opaque>>",
		},
		{
			name:  "dotted reference",
			input: "Vehicle.Cabin.seat_t",
			want:  &Expr{Kind: Ref, Name: "Vehicle.Cabin.seat_t"},
		},
		{
			name:  "definition named like a keyword",
			input: "set[2]",
			want:  ArrayOf(&Expr{Kind: Ref, Name: "set"}, 2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			canon := tt.canon
			if canon == "" {
				canon = tt.input
			}
			if got.String() != canon {
				t.Errorf("String() = %q, want %q", got.String(), canon)
			}
			again, err := Parse(got.String())
			if err != nil {
				t.Fatalf("reparse %q: %v", got.String(), err)
			}
			if diff := cmp.Diff(got, again); diff != "" {
				t.Errorf("reparse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrSyntax},
		{"   ", ErrSyntax},
		{"uint8[", ErrSyntax},
		{"uint8[0]", ErrArraySize},
		{"uint8[-3]", ErrArraySize},
		{"uint8[+5]", ErrArraySize},
		{"uint8[2147483648]", ErrArraySize},
		{"uint8[3000000000]", ErrArraySize},
		{"uint8[x]", ErrArraySize},
		{"map<string>", ErrSyntax},
		{"map<a,b,c>", ErrSyntax},
		{"set<a,b>", ErrSyntax},
		{"variant<>", ErrSyntax},
		{"variant<int8", ErrSyntax},
		{"seats.", ErrSyntax},
		{"int8 int16", ErrSyntax},
		{"9lives", ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded", tt.input)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, err, tt.want)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Errorf("Parse(%q) error %T is not a *SyntaxError", tt.input, err)
			}
		})
	}
}

func TestRefs(t *testing.T) {
	e := MustParse("map<a.b,variant<c[],int8,set<d>>>")
	if diff := cmp.Diff([]string{"a.b", "c", "d"}, e.Refs()); diff != "" {
		t.Errorf("Refs mismatch (-want +got):\n%s", diff)
	}
}

func TestIsInteger(t *testing.T) {
	for _, p := range Primitives() {
		want := p != "float" && p != "double" && p != "string"
		if got := IsInteger(p); got != want {
			t.Errorf("IsInteger(%q) = %v, want %v", p, got, want)
		}
	}
	if IsInteger("integer") {
		t.Errorf("IsInteger(\"integer\") = true")
	}
}
