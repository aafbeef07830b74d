package libdiff

import (
	"fmt"
	"io"

	"github.com/signadot/idlayer/encode"
)

// Write prints each contribution as a header followed by its changed
// lines with up to context unchanged lines around them. colors may be
// nil.
func Write(w io.Writer, cs []Contribution, context int, colors *encode.Colors) error {
	for i := range cs {
		c := &cs[i]
		ins, del := Stat(c.Lines)
		_, err := fmt.Fprintln(w, colors.Color(encode.LocationColor)("@@ %s (%s) +%d -%d", c.Source, c.LayerType, ins, del))
		if err != nil {
			return err
		}
		for _, h := range hunks(c.Lines, context) {
			if h.skipped != 0 {
				if _, err := fmt.Fprintln(w, colors.Color(encode.NoteColor)("  ... %d unchanged", h.skipped)); err != nil {
					return err
				}
			}
			for _, l := range h.lines {
				attr := encode.ColorAttr(-1)
				switch l.Op {
				case Insert:
					attr = encode.InsertColor
				case Delete:
					attr = encode.DeleteColor
				}
				if _, err := fmt.Fprintln(w, colors.Color(attr)("%s", l)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

type hunk struct {
	// skipped counts the unchanged lines elided before lines.
	skipped int
	lines   []Line
}

// hunks groups the changed lines of ls with their context. Unchanged
// lines further than context from any change are dropped.
func hunks(ls []Line, context int) []hunk {
	keep := make([]bool, len(ls))
	for i, l := range ls {
		if l.Op == Equal {
			continue
		}
		for j := max(0, i-context); j <= min(len(ls)-1, i+context); j++ {
			keep[j] = true
		}
	}
	var (
		res     []hunk
		cur     *hunk
		skipped int
	)
	for i, l := range ls {
		if !keep[i] {
			skipped++
			cur = nil
			continue
		}
		if cur == nil {
			res = append(res, hunk{skipped: skipped})
			cur = &res[len(res)-1]
			skipped = 0
		}
		cur.lines = append(cur.lines, l)
	}
	return res
}
