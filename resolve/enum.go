package resolve

import (
	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/ir"
	"github.com/signadot/idlayer/model"
	"github.com/signadot/idlayer/typeexpr"
)

// enumeration resolves the base of en and checks every option value fits
// it. The base must be an integer primitive, possibly through typedefs.
func (r *resolver) enumeration(en *model.Enumeration) {
	base := r.datatype(en.Namespace, &en.Decl, en.Datatype, nil)
	if base == nil {
		return
	}
	prim := base.Underlying()
	if prim == nil {
		return
	}
	if prim.Kind != model.PrimitiveKind || !typeexpr.IsInteger(prim.Name) {
		r.bag.Add(diag.Errorf(diag.ConstraintRangeError, en.Origin, en.Path,
			"enumeration %s has base %s, not an integer type", en.Qualified, base))
		return
	}
	en.Base = base
	for _, o := range en.Options {
		v := o.ValueNode
		if v == nil {
			v = ir.FromInt(o.Value)
		}
		if fits(prim.Name, v) {
			continue
		}
		origin := o.Origin
		if o.ValueNode != nil {
			origin = o.ValueNode.Origin
		}
		r.bag.Add(diag.Errorf(diag.ConstraintRangeError, origin, o.Path,
			"option %s value %d of enumeration %s is outside the range of %s",
			o.Name, o.Value, en.Qualified, prim.Name))
	}
}
