package encode

import (
	"fmt"
	"io"

	"github.com/signadot/idlayer/diag"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	LocationColor ColorAttr = iota
	ErrorColor
	WarningColor
	PathColor
	NoteColor
	InsertColor
	DeleteColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorAttr]func(string, ...any) string{},
	}
	colors.Map[LocationColor] = color.New(color.Bold).SprintfFunc()
	colors.Map[ErrorColor] = color.New(color.FgRed, color.Bold).SprintfFunc()
	colors.Map[WarningColor] = color.New(color.FgYellow, color.Bold).SprintfFunc()
	colors.Map[PathColor] = color.CyanString
	colors.Map[NoteColor] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[InsertColor] = color.GreenString
	colors.Map[DeleteColor] = color.RedString
	return colors
}

func colorDefault(f string, args ...any) string {
	return fmt.Sprintf(f, args...)
}

func (c *Colors) Color(a ColorAttr) func(string, ...any) string {
	if c == nil {
		return colorDefault
	}
	f, ok := c.Map[a]
	if !ok {
		return c.Default
	}
	return f
}

// Diagnostics writes one line per diagnostic followed by a summary line.
// colors may be nil.
func Diagnostics(w io.Writer, ds []diag.Diagnostic, colors *Colors) error {
	nErr, nWarn := 0, 0
	for i := range ds {
		d := &ds[i]
		sevColor := WarningColor
		if d.Fatal() {
			sevColor = ErrorColor
			nErr++
		} else {
			nWarn++
		}
		line := ""
		if d.Origin != nil {
			line += colors.Color(LocationColor)("%s", d.Origin) + ": "
		}
		line += colors.Color(sevColor)("%s[%s]", d.Severity, d.Category)
		if d.Path != "" {
			line += " " + colors.Color(PathColor)("%s", d.Path)
		}
		line += ": " + d.Message
		for _, r := range d.Related {
			line += colors.Color(NoteColor)(" (see %s)", r)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(ds) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "%d error(s), %d warning(s)\n", nErr, nWarn)
	return err
}
