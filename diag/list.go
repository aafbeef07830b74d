package diag

import (
	"fmt"
	"strings"
)

// List is an error wrapping the diagnostics of a failed run.
type List []Diagnostic

// Error returns a compact summary of the fatal diagnostics.
func (l List) Error() string {
	var errs []Diagnostic
	for _, d := range l {
		if d.Fatal() {
			errs = append(errs, d)
		}
	}
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].String()
	}
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "%d errors:", len(errs))
	for _, d := range errs {
		buf.WriteString("\n\t")
		buf.WriteString(d.String())
	}
	return buf.String()
}
