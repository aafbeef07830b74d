package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) String() string {
	switch o {
	case Equal:
		return " "
	case Insert:
		return "+"
	case Delete:
		return "-"
	}
	return "?"
}

// Line is one line of a line diff, without its trailing newline.
type Line struct {
	Op   Op
	Text string
}

func (l Line) String() string {
	return l.Op.String() + " " + l.Text
}

// Lines diffs from and to line by line. Each line of the inputs appears
// exactly once in the result, deletions before insertions where lines
// were replaced.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	var res []Line
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		default:
			op = Equal
		}
		for _, text := range splitLines(d.Text) {
			res = append(res, Line{Op: op, Text: text})
		}
	}
	return res
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// Stat counts the inserted and deleted lines of ls.
func Stat(ls []Line) (inserted, deleted int) {
	for _, l := range ls {
		switch l.Op {
		case Insert:
			inserted++
		case Delete:
			deleted++
		}
	}
	return
}

// Changed returns true if ls has any insertion or deletion.
func Changed(ls []Line) bool {
	ins, del := Stat(ls)
	return ins+del != 0
}
