package resolve

import (
	"strings"

	"github.com/signadot/idlayer/debug"
	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/ir"
	"github.com/signadot/idlayer/model"
	"github.com/signadot/idlayer/typeexpr"
)

type visitState int

const (
	unvisited visitState = iota
	visiting
	done
)

// typedefResolver resolves typedefs depth first along the typedefs their
// datatypes reference. A typedef met again while it is being resolved
// closes a cycle; every typedef on the cycle is left without a type.
type typedefResolver struct {
	resolver
	state  map[*model.Typedef]visitState
	stack  []*model.Typedef
	cyclic map[*model.Typedef]bool
}

func (tr *typedefResolver) resolve(td *model.Typedef) {
	switch tr.state[td] {
	case done:
		return
	case visiting:
		tr.cycle(td)
		return
	}
	tr.state[td] = visiting
	tr.stack = append(tr.stack, td)
	r := tr.resolver
	r.ref = func(sym *Symbol) {
		if sym.Kind == model.TypedefKind {
			tr.resolve(sym.Typedef)
		}
	}
	t := r.datatype(td.Namespace, &td.Decl, td.Datatype, td.ArraySize)
	tr.stack = tr.stack[:len(tr.stack)-1]
	tr.state[td] = done
	if tr.cyclic[td] {
		return
	}
	td.Type = t
	if debug.Resolve() {
		debug.Logf("typedef %s = %s\n", td.Qualified, t)
	}
}

func (tr *typedefResolver) cycle(td *model.Typedef) {
	start := len(tr.stack) - 1
	for tr.stack[start] != td {
		start--
	}
	members := tr.stack[start:]
	names := make([]string, 0, len(members)+1)
	for _, m := range members {
		names = append(names, m.Qualified)
	}
	names = append(names, td.Qualified)
	chain := strings.Join(names, " -> ")
	for _, m := range members {
		if tr.cyclic[m] {
			continue
		}
		tr.cyclic[m] = true
		var related []*ir.Origin
		for _, o := range members {
			if o != m {
				related = append(related, o.Origin)
			}
		}
		tr.bag.Add(diag.Errorf(diag.CyclicTypedef, m.Origin, m.Path,
			"typedef %s is part of the cycle %s", m.Qualified, chain).WithRelated(related...))
	}
}

// constraints checks the min and max of a resolved typedef against its
// primitive base.
func (r *resolver) constraints(td *model.Typedef) {
	if td.Min == nil && td.Max == nil {
		return
	}
	base := td.Type.Underlying()
	if base == nil {
		return
	}
	if base.Kind != model.PrimitiveKind || base.Name == "string" {
		r.bag.Add(diag.Errorf(diag.ConstraintRangeError, td.Origin, td.Path,
			"typedef %s has min or max but its base %s is not numeric", td.Qualified, base))
		return
	}
	ok := true
	for _, b := range []struct {
		key string
		n   *ir.Node
	}{{"min", td.Min}, {"max", td.Max}} {
		if b.n == nil {
			continue
		}
		if b.n.Type != ir.NumberType {
			r.bag.Add(diag.Errorf(diag.ConstraintRangeError, b.n.Origin, td.Path,
				"%s of typedef %s is %s, not a number", b.key, td.Qualified, b.n.Type))
			ok = false
			continue
		}
		if typeexpr.IsInteger(base.Name) && !isInteger(b.n) {
			r.bag.Add(diag.Errorf(diag.ConstraintRangeError, b.n.Origin, td.Path,
				"%s %s of typedef %s is not an integer", b.key, b.n.Scalar(), td.Qualified))
			ok = false
			continue
		}
		if !fits(base.Name, b.n) {
			r.bag.Add(diag.Errorf(diag.ConstraintRangeError, b.n.Origin, td.Path,
				"%s %s of typedef %s is outside the range of %s", b.key, b.n.Scalar(), td.Qualified, base.Name))
			ok = false
		}
	}
	if ok && td.Min != nil && td.Max != nil && less(td.Max, td.Min) {
		r.bag.Add(diag.Errorf(diag.ConstraintRangeError, td.Max.Origin, td.Path,
			"typedef %s has min %s above max %s", td.Qualified, td.Min.Scalar(), td.Max.Scalar()))
	}
}
