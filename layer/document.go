package layer

import (
	"github.com/signadot/idlayer/ir"
)

const (
	// IDLLayer is the layer type of core interface documents.
	IDLLayer = "idl"
	// JSONPatchLayer documents hold an RFC 6902 operation list applied to
	// the combined tree at their position in the fold.
	JSONPatchLayer = "json-patch"
)

// Document is one input of the merge: a node tree plus where it came from.
// Documents are never modified once built.
type Document struct {
	Tree      *ir.Node
	LayerType string
	Source    string
	// Rank orders documents in the fold; later ranks override earlier
	// ones. Documents with equal rank keep their input order.
	Rank int
}

// NewDocument builds a document from a copy of tree. Nodes of the copy
// without an origin are attributed to source, and every origin is stamped
// with layerType so later stages know which kind of layer contributed a
// key.
func NewDocument(tree *ir.Node, layerType, source string) *Document {
	if layerType == "" {
		layerType = IDLLayer
	}
	t := tree.Clone()
	t.Parent = nil
	t.SetOrigins(&ir.Origin{Source: source})
	t.StampLayerType(layerType)
	return &Document{
		Tree:      t,
		LayerType: layerType,
		Source:    source,
	}
}

// Ranked assigns ranks to docs in slice order and returns docs.
func Ranked(docs ...*Document) []*Document {
	for i, d := range docs {
		d.Rank = i
	}
	return docs
}
