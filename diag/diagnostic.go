package diag

import (
	"fmt"
	"strings"

	"github.com/signadot/idlayer/ir"
)

type Diagnostic struct {
	Severity Severity
	Category Category
	Message  string
	// Path locates the diagnostic within the merged tree or model, such as
	// "$.namespaces[comfort].typedefs[movement_t]".
	Path string
	// Origin is the source location the diagnostic is attached to.
	Origin *ir.Origin
	// Related lists further source locations, such as the other
	// definition of a duplicated name.
	Related []*ir.Origin
}

func (d Diagnostic) Fatal() bool {
	return d.Severity >= SevError
}

// Source returns the source identity of the diagnostic, or "" if it has
// no origin.
func (d Diagnostic) Source() string {
	if d.Origin == nil {
		return ""
	}
	return d.Origin.Source
}

func (d Diagnostic) String() string {
	buf := &strings.Builder{}
	if d.Origin != nil {
		buf.WriteString(d.Origin.String())
		buf.WriteString(": ")
	}
	fmt.Fprintf(buf, "%s[%s]", d.Severity, d.Category)
	if d.Path != "" {
		buf.WriteString(" ")
		buf.WriteString(d.Path)
	}
	buf.WriteString(": ")
	buf.WriteString(d.Message)
	for _, r := range d.Related {
		buf.WriteString(" (see ")
		buf.WriteString(r.String())
		buf.WriteString(")")
	}
	return buf.String()
}

func Errorf(cat Category, origin *ir.Origin, path, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: SevError,
		Category: cat,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
		Origin:   origin,
	}
}

func Warnf(cat Category, origin *ir.Origin, path, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: SevWarning,
		Category: cat,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
		Origin:   origin,
	}
}

// WithRelated returns d with extra related locations.
func (d Diagnostic) WithRelated(os ...*ir.Origin) Diagnostic {
	for _, o := range os {
		if o != nil {
			d.Related = append(d.Related, o)
		}
	}
	return d
}
