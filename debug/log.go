package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/idlayer/encode"
	"github.com/signadot/idlayer/ir"
)

// Logf writes a debug line to stderr. Node arguments are rendered as
// YAML and maps and slices as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			s, err := encode.YAMLString(x)
			if err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
				continue
			}
			args[i] = s
		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
