package diag

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/signadot/idlayer/ir"

	"github.com/google/go-cmp/cmp"
)

func TestBagSorted(t *testing.T) {
	a := &ir.Origin{Source: "a.yaml", Line: 3}
	b := &ir.Origin{Source: "b.yaml", Line: 1}
	bag := NewBag()
	var wg sync.WaitGroup
	for _, d := range []Diagnostic{
		Errorf(DuplicateName, b, "$.structs[s]", "dup"),
		Warnf(MergeConflict, a, "$.typedefs[t]", "override"),
		Errorf(UnresolvedReference, a, "$.typedefs[t]", "missing"),
		Errorf(CyclicTypedef, a, "$.typedefs[a]", "cycle"),
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bag.Add(d)
		}()
	}
	wg.Wait()
	var got []string
	for _, d := range bag.Items() {
		got = append(got, string(d.Category))
	}
	want := []string{"CyclicTypedef", "UnresolvedReference", "MergeConflict", "DuplicateName"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if !bag.HasErrors() || bag.Len() != 4 {
		t.Errorf("bag has errors %v, len %d", bag.HasErrors(), bag.Len())
	}
}

func TestList(t *testing.T) {
	o := &ir.Origin{Source: "x.yaml", Line: 2, Column: 3}
	warn := Warnf(MergeConflict, o, "", "w")
	e1 := Errorf(DuplicateName, o, "$.structs[s]", "dup")
	e2 := Errorf(InvalidNode, nil, "$", "bad")

	if got := (List{warn}).Error(); got != "no errors" {
		t.Errorf("got %q", got)
	}
	if got := (List{warn, e1}).Error(); got != "x.yaml:2:3: error[DuplicateName] $.structs[s]: dup" {
		t.Errorf("got %q", got)
	}
	got := List{e1, warn, e2}.Error()
	if !strings.HasPrefix(got, "2 errors:") || strings.Contains(got, "warning") {
		t.Errorf("got %q", got)
	}
	var err error = List{e1}
	var l List
	if !errors.As(err, &l) || len(Filter(l, DuplicateName)) != 1 {
		t.Errorf("errors.As on %v", err)
	}
}

func TestSeverityText(t *testing.T) {
	for _, s := range []Severity{SevWarning, SevError} {
		d, _ := s.MarshalText()
		var back Severity
		if err := back.UnmarshalText(d); err != nil || back != s {
			t.Errorf("%s: got %s, %v", s, back, err)
		}
	}
	var s Severity
	if err := s.UnmarshalText([]byte("fatal")); err == nil {
		t.Errorf("no error for unknown severity")
	}
}
