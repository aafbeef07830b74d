package libdiff

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/signadot/idlayer/diag"
	"github.com/signadot/idlayer/encode"
	"github.com/signadot/idlayer/layer"
)

// Contribution is what one document changed in the combined tree, as a
// line diff of the tree encoded before and after folding it in.
type Contribution struct {
	Source    string
	LayerType string
	Rank      int
	Lines     []Line
}

// Layers folds docs one at a time in rank order and returns the
// contribution of each. The merge diagnostics are those of the complete
// fold.
func Layers(docs []*layer.Document, opts ...layer.MergeOpt) ([]Contribution, []diag.Diagnostic, error) {
	ordered := slices.Clone(docs)
	slices.SortStableFunc(ordered, func(a, b *layer.Document) int {
		return cmp.Compare(a.Rank, b.Rank)
	})
	cfg := layer.NewMergeConfig(opts...)
	var (
		res  []Contribution
		ds   []diag.Diagnostic
		prev string
	)
	for i, doc := range ordered {
		bag := diag.NewBag()
		tree := layer.Fold(ordered[:i+1], cfg, bag)
		cur, err := encode.YAMLString(tree)
		if err != nil {
			return nil, nil, fmt.Errorf("could not encode tree after %s: %w", doc.Source, err)
		}
		res = append(res, Contribution{
			Source:    doc.Source,
			LayerType: doc.LayerType,
			Rank:      doc.Rank,
			Lines:     Lines(prev, cur),
		})
		prev = cur
		ds = bag.Items()
	}
	return res, ds, nil
}
