package layer

import (
	"cmp"
	"slices"

	"github.com/signadot/idlayer/debug"
	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/ir"

	"golang.org/x/sync/errgroup"
)

// Merge folds docs, ordered by rank, into one new tree. The trees of docs
// are never modified or aliased by the result.
func Merge(docs []*Document, opts ...MergeOpt) (*ir.Node, []diag.Diagnostic) {
	cfg := NewMergeConfig(opts...)
	bag := diag.NewBag()
	res := Fold(docs, cfg, bag)
	return res, bag.Items()
}

// Fold is Merge with an explicit configuration, reporting into bag.
func Fold(docs []*Document, cfg *MergeConfig, bag *diag.Bag) *ir.Node {
	ordered := slices.Clone(docs)
	slices.SortStableFunc(ordered, func(a, b *Document) int {
		return cmp.Compare(a.Rank, b.Rank)
	})
	var combined *ir.Node
	for _, doc := range ordered {
		if doc == nil || doc.Tree == nil {
			continue
		}
		if debug.Merge() {
			debug.Logf("merge %s (layer type %s, rank %d)\n", doc.Source, doc.LayerType, doc.Rank)
		}
		if doc.LayerType == JSONPatchLayer {
			combined = applyJSONPatch(combined, doc, bag)
			continue
		}
		m := &merger{cfg: cfg, bag: bag}
		if combined == nil {
			combined = m.adopt(doc.Tree, "", 0)
		} else {
			combined = m.merge(combined, doc.Tree, "", 0)
		}
		combined.Parent = nil
	}
	if combined == nil {
		return ir.Null()
	}
	return combined
}

type merger struct {
	cfg *MergeConfig
	bag *diag.Bag
}

// merge merges b over a. field is the object field holding a and b, or ""
// for list elements and the root.
func (m *merger) merge(a, b *ir.Node, field string, depth int) *ir.Node {
	if depth > m.cfg.MaxDepth {
		m.bag.Add(diag.Errorf(diag.MergeConflict, b.Origin, b.NamedPath(),
			"merge depth limit %d exceeded, keeping earlier content", m.cfg.MaxDepth))
		return a.Clone()
	}
	switch {
	case a.Type == ir.ObjectType && b.Type == ir.ObjectType:
		return m.mergeObject(a, b, depth)
	case a.Type == ir.ArrayType && b.Type == ir.ArrayType && m.cfg.NamedLists[field]:
		return m.mergeKeyed(a, b, field, depth)
	}
	m.checkOverride(a, b, field)
	return m.adopt(b, field, depth)
}

func (m *merger) checkOverride(a, b *ir.Node, field string) {
	if a.Type.IsLeaf() != b.Type.IsLeaf() || (!a.Type.IsLeaf() && a.Type != b.Type) {
		m.bag.Add(diag.Warnf(diag.MergeConflict, b.Origin, b.NamedPath(),
			"%s value from %s replaced by %s value", a.Type, a.Origin, b.Type))
		return
	}
	if !m.cfg.Strict || !m.cfg.TypeKeys[field] || !a.Type.IsLeaf() {
		return
	}
	if ir.Equal(a, b) {
		return
	}
	m.bag.Add(diag.Warnf(diag.MergeConflict, b.Origin, b.NamedPath(),
		"%s changed from %s to %s", field, a.Scalar(), b.Scalar()).WithRelated(a.Origin))
}

func (m *merger) mergeObject(a, b *ir.Node, depth int) *ir.Node {
	kvs := make([]ir.KeyVal, 0, len(a.Fields)+len(b.Fields))
	keyOrigins := make([]*ir.Origin, 0, cap(kvs))
	bIndex := make(map[string]int, len(b.Fields))
	for i, f := range b.Fields {
		bIndex[f.String] = i
	}
	aIndex := make(map[string]int, len(a.Fields))
	for i, f := range a.Fields {
		key := f.String
		aIndex[key] = i
		av := a.Values[i]
		j, ok := bIndex[key]
		if !ok {
			kvs = append(kvs, ir.KeyVal{Key: key, Val: av.Clone()})
			keyOrigins = append(keyOrigins, f.Origin)
			continue
		}
		bv := b.Values[j]
		if m.removesField(bv) {
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: key, Val: m.merge(av, bv, key, depth+1)})
		keyOrigins = append(keyOrigins, b.Fields[j].Origin)
	}
	for j, f := range b.Fields {
		key := f.String
		if _, ok := aIndex[key]; ok || key == RemoveKey {
			continue
		}
		bv := b.Values[j]
		if m.removesField(bv) {
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: key, Val: m.adopt(bv, key, depth+1)})
		keyOrigins = append(keyOrigins, f.Origin)
	}
	res := ir.FromKeyVals(kvs)
	for i, o := range keyOrigins {
		res.Fields[i].Origin = o
	}
	res.Origin = a.Origin
	return res
}

func (m *merger) removesField(v *ir.Node) bool {
	return m.cfg.Removal == RemovalMarker && v.Type == ir.NullType
}

func isRemoval(v *ir.Node) bool {
	mark := ir.Get(v, RemoveKey)
	return mark != nil && mark.Type == ir.BoolType && mark.Bool
}

// adopt copies new content b into the combined tree, applying the removal
// policy to markers found in it.
func (m *merger) adopt(b *ir.Node, field string, depth int) *ir.Node {
	if depth > m.cfg.MaxDepth {
		// nothing to merge with, content past the limit is kept as is
		res := b.Clone()
		res.Parent = nil
		return res
	}
	switch b.Type {
	case ir.ObjectType:
		kvs := make([]ir.KeyVal, 0, len(b.Fields))
		keyOrigins := make([]*ir.Origin, 0, len(b.Fields))
		for i, f := range b.Fields {
			if f.String == RemoveKey {
				continue
			}
			v := b.Values[i]
			if m.removesField(v) {
				continue
			}
			kvs = append(kvs, ir.KeyVal{Key: f.String, Val: m.adopt(v, f.String, depth+1)})
			keyOrigins = append(keyOrigins, f.Origin)
		}
		res := ir.FromKeyVals(kvs)
		for i, o := range keyOrigins {
			res.Fields[i].Origin = o
		}
		res.Origin = b.Origin
		return res
	case ir.ArrayType:
		named := m.cfg.NamedLists[field]
		vals := make([]*ir.Node, 0, len(b.Values))
		for _, v := range b.Values {
			if named && isRemoval(v) {
				name, _ := v.Name()
				if m.cfg.Removal == RemovalMarker {
					m.bag.Add(diag.Warnf(diag.MergeConflict, v.Origin, v.NamedPath(),
						"removal of %q matched no earlier element", name))
					continue
				}
				m.bag.Add(diag.Warnf(diag.MergeConflict, v.Origin, v.NamedPath(),
					"removal of %q ignored, removal policy is %s", name, m.cfg.Removal))
			}
			vals = append(vals, m.adopt(v, "", depth+1))
		}
		res := ir.FromSlice(vals)
		res.Origin = b.Origin
		return res
	}
	res := b.Clone()
	res.Parent = nil
	return res
}

// keyedEntry is one element of a named list during a merge step.
type keyedEntry struct {
	name    string
	earlier *ir.Node
	later   *ir.Node
	matched bool
	removed bool
	result  *ir.Node
}

// keyedList is an ordered map from element name to element. Entries keep
// the position they were first seen at; lookups find the first earlier
// element with a name that has not been matched yet in this step.
type keyedList struct {
	entries []*keyedEntry
	byName  map[string][]*keyedEntry
}

func newKeyedList(n int) *keyedList {
	return &keyedList{
		entries: make([]*keyedEntry, 0, n),
		byName:  make(map[string][]*keyedEntry, n),
	}
}

func (kl *keyedList) addEarlier(v *ir.Node) {
	e := &keyedEntry{earlier: v}
	if name, ok := v.Name(); ok {
		e.name = name
		kl.byName[name] = append(kl.byName[name], e)
	}
	kl.entries = append(kl.entries, e)
}

func (kl *keyedList) match(name string) *keyedEntry {
	for _, e := range kl.byName[name] {
		if !e.matched {
			return e
		}
	}
	return nil
}

func (m *merger) mergeKeyed(a, b *ir.Node, field string, depth int) *ir.Node {
	if debug.Merge() {
		debug.Logf("keyed merge of %s at %s\n", field, b.NamedPath())
	}
	kl := newKeyedList(len(a.Values) + len(b.Values))
	for _, av := range a.Values {
		kl.addEarlier(av)
	}
	var pending []*keyedEntry
	for _, bv := range b.Values {
		name, named := bv.Name()
		var e *keyedEntry
		if named {
			e = kl.match(name)
		}
		if e == nil {
			if named && isRemoval(bv) {
				if m.cfg.Removal == RemovalMarker {
					m.bag.Add(diag.Warnf(diag.MergeConflict, bv.Origin, bv.NamedPath(),
						"removal of %q matched no earlier element", name))
					continue
				}
				m.bag.Add(diag.Warnf(diag.MergeConflict, bv.Origin, bv.NamedPath(),
					"removal of %q ignored, removal policy is %s", name, m.cfg.Removal))
			}
			kl.entries = append(kl.entries, &keyedEntry{name: name, later: bv})
			continue
		}
		e.matched = true
		if isRemoval(bv) {
			if m.cfg.Removal == RemovalMarker {
				e.removed = true
				continue
			}
			m.bag.Add(diag.Warnf(diag.MergeConflict, bv.Origin, bv.NamedPath(),
				"removal of %q ignored, removal policy is %s", name, m.cfg.Removal))
		}
		e.later = bv
		pending = append(pending, e)
	}

	mergeOne := func(e *keyedEntry) {
		e.result = m.merge(e.earlier, e.later, "", depth+1)
	}
	if field == "namespaces" && depth == 1 && m.cfg.Jobs > 1 && len(pending) > 1 {
		// distinct top level namespaces have no data dependency
		g := &errgroup.Group{}
		g.SetLimit(m.cfg.Jobs)
		for _, e := range pending {
			g.Go(func() error {
				mergeOne(e)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, e := range pending {
			mergeOne(e)
		}
	}

	vals := make([]*ir.Node, 0, len(kl.entries))
	for _, e := range kl.entries {
		switch {
		case e.removed:
			if debug.Merge() {
				debug.Logf("removed %q from %s\n", e.name, a.NamedPath())
			}
		case e.result != nil:
			vals = append(vals, e.result)
		case e.earlier != nil:
			vals = append(vals, e.earlier.Clone())
		default:
			vals = append(vals, m.adopt(e.later, "", depth+1))
		}
	}
	res := ir.FromSlice(vals)
	res.Origin = a.Origin
	return res
}
