package layer

import (
	"github.com/signadot/idlayer/debug"
	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/ir"

	jsonpatch "github.com/evanphx/json-patch"
)

// applyJSONPatch applies the RFC 6902 operations of doc to combined. On
// failure combined is returned unchanged and an error diagnostic is added.
func applyJSONPatch(combined *ir.Node, doc *Document, bag *diag.Bag) *ir.Node {
	origin := doc.Tree.Origin
	if origin == nil {
		origin = &ir.Origin{Source: doc.Source, LayerType: doc.LayerType}
	}
	if combined == nil {
		bag.Add(diag.Errorf(diag.MergeConflict, origin, "$",
			"json-patch layer %s has no earlier document to patch", doc.Source))
		return nil
	}
	if debug.Merge() {
		debug.Logf("json-patch %s\n", doc.Source)
	}
	pd, err := ir.MarshalJSON(doc.Tree)
	if err != nil {
		bag.Add(diag.Errorf(diag.MergeConflict, origin, "$", "json-patch layer: %v", err))
		return combined
	}
	ops, err := jsonpatch.DecodePatch(pd)
	if err != nil {
		bag.Add(diag.Errorf(diag.MergeConflict, origin, "$", "json-patch layer: %v", err))
		return combined
	}
	cur, err := ir.MarshalJSON(combined)
	if err != nil {
		bag.Add(diag.Errorf(diag.MergeConflict, origin, "$", "json-patch layer: %v", err))
		return combined
	}
	out, err := ops.Apply(cur)
	if err != nil {
		bag.Add(diag.Errorf(diag.MergeConflict, origin, "$", "json-patch layer: %v", err))
		return combined
	}
	res, err := ir.UnmarshalJSON(out)
	if err != nil {
		bag.Add(diag.Errorf(diag.MergeConflict, origin, "$", "json-patch layer: %v", err))
		return combined
	}
	alignFields(res, combined)
	ir.InheritOrigins(res, combined, origin)
	return res
}

// alignFields restores the field order of src on the matching objects of
// dst. Fields new in dst follow in their own order.
func alignFields(dst, src *ir.Node) {
	if dst == nil || src == nil {
		return
	}
	switch {
	case dst.Type == ir.ObjectType && src.Type == ir.ObjectType:
		var kept, added []ir.KeyVal
		for _, f := range src.Fields {
			if v := ir.Get(dst, f.String); v != nil {
				kept = append(kept, ir.KeyVal{Key: f.String, Val: v})
			}
		}
		for _, kv := range dst.KeyVals() {
			if ir.Get(src, kv.Key) == nil {
				added = append(added, kv)
			}
		}
		for _, kv := range kept {
			alignFields(kv.Val, ir.Get(src, kv.Key))
		}
		parent, index, field := dst.Parent, dst.ParentIndex, dst.ParentField
		*dst = *ir.FromKeyVals(append(kept, added...)).WithOrigin(dst.Origin)
		dst.Parent, dst.ParentIndex, dst.ParentField = parent, index, field
		for _, v := range dst.Values {
			v.Parent = dst
		}
		for _, f := range dst.Fields {
			f.Parent = dst
		}
	case dst.Type == ir.ArrayType && src.Type == ir.ArrayType:
		byName := map[string]*ir.Node{}
		for _, sv := range src.Values {
			if name, ok := sv.Name(); ok {
				if _, dup := byName[name]; !dup {
					byName[name] = sv
				}
			}
		}
		for i, dv := range dst.Values {
			if name, ok := dv.Name(); ok {
				alignFields(dv, byName[name])
			} else if i < len(src.Values) {
				alignFields(dv, src.Values[i])
			}
		}
	}
}
