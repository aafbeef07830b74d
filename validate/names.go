package validate

import (
	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/ir"
	"github.com/signadot/idlayer/model"
)

func decls[T any](xs []T, f func(T) *model.Decl) []*model.Decl {
	res := make([]*model.Decl, len(xs))
	for i, x := range xs {
		res[i] = f(x)
	}
	return res
}

// unique reports every element whose name was already taken by an earlier
// element of the same kind in one scope. Both locations are reported.
func (v *validator) unique(kind, where string, ds []*model.Decl) {
	first := make(map[string]*model.Decl, len(ds))
	for _, d := range ds {
		prev, ok := first[d.Name]
		if !ok {
			first[d.Name] = d
			continue
		}
		v.add(diag.Errorf(diag.DuplicateName, d.Origin, d.Path,
			"%s %s is defined more than once in %s, first at %s",
			kind, d.Name, where, prev.Origin).WithRelated(prev.Origin))
	}
}

// arraySize checks resolved array types have a valid size which agrees
// with the arraysize field they were given.
func (v *validator) arraySize(d *model.Decl, t *model.Type, arraysize *ir.Node) {
	if t == nil {
		return
	}
	var walk func(t *model.Type) bool
	walk = func(t *model.Type) bool {
		if t == nil {
			return true
		}
		if t.Kind == model.ArrayKind && t.Size < 0 {
			return false
		}
		ok := walk(t.Elem) && walk(t.Key) && walk(t.Value)
		for _, a := range t.Alternatives {
			ok = ok && walk(a)
		}
		return ok
	}
	if !walk(t) {
		v.add(diag.Errorf(diag.ArraySizeConflict, d.Origin, d.Path,
			"datatype %s of %s has a negative array size", t, d.Name))
		return
	}
	if arraysize == nil {
		return
	}
	n, ok := arraysize.Int()
	if !ok || t.Kind != model.ArrayKind || int64(t.Size) != n {
		v.add(diag.Errorf(diag.ArraySizeConflict, arraysize.Origin, d.Path,
			"datatype %s of %s does not have arraysize %s", t, d.Name, arraysize.Scalar()))
	}
}
