package layer

import "runtime"

// RemovalPolicy decides whether later layers may delete elements of
// earlier ones.
type RemovalPolicy int

const (
	// RemovalNone is append and merge only. Removal markers are ignored
	// with a warning.
	RemovalNone RemovalPolicy = iota
	// RemovalMarker lets a later layer delete a named element with
	// `$remove: true` and a field by setting it to null.
	RemovalMarker
)

func (p RemovalPolicy) String() string {
	switch p {
	case RemovalNone:
		return "none"
	case RemovalMarker:
		return "marker"
	}
	return "<unknown removal policy>"
}

// RemoveKey is the element key marking an element for removal.
const RemoveKey = "$remove"

const DefaultMaxDepth = 256

// DefaultNamedLists are the list fields whose elements are matched by name.
var DefaultNamedLists = []string{
	"namespaces",
	"datatypes",
	"typedefs",
	"structs",
	"enumerations",
	"methods",
	"events",
	"properties",
	"members",
	"options",
	"in",
	"out",
	"input",
	"output",
	"errors",
	"returns",
}

// DefaultTypeKeys are the scalar fields that define a type. Overriding one
// with a different value is a conflict under strict merging.
var DefaultTypeKeys = []string{"datatype", "arraysize"}

type MergeConfig struct {
	Strict     bool
	MaxDepth   int
	Removal    RemovalPolicy
	Jobs       int
	NamedLists map[string]bool
	TypeKeys   map[string]bool
}

type MergeOpt func(*MergeConfig)

// Strict makes overriding a type defining key a MergeConflict warning.
func Strict(v bool) MergeOpt {
	return func(c *MergeConfig) { c.Strict = v }
}

// MaxDepth bounds the nesting depth the merge will descend.
func MaxDepth(n int) MergeOpt {
	return func(c *MergeConfig) { c.MaxDepth = n }
}

func Removal(p RemovalPolicy) MergeOpt {
	return func(c *MergeConfig) { c.Removal = p }
}

// Jobs bounds how many top level namespaces merge concurrently.
func Jobs(n int) MergeOpt {
	return func(c *MergeConfig) { c.Jobs = n }
}

// NamedLists adds list fields whose elements are matched by name.
func NamedLists(fields ...string) MergeOpt {
	return func(c *MergeConfig) {
		for _, f := range fields {
			c.NamedLists[f] = true
		}
	}
}

// TypeKeys adds scalar fields checked under strict merging.
func TypeKeys(fields ...string) MergeOpt {
	return func(c *MergeConfig) {
		for _, f := range fields {
			c.TypeKeys[f] = true
		}
	}
}

func NewMergeConfig(opts ...MergeOpt) *MergeConfig {
	cfg := &MergeConfig{
		MaxDepth:   DefaultMaxDepth,
		Jobs:       runtime.GOMAXPROCS(0),
		NamedLists: map[string]bool{},
		TypeKeys:   map[string]bool{},
	}
	for _, f := range DefaultNamedLists {
		cfg.NamedLists[f] = true
	}
	for _, f := range DefaultTypeKeys {
		cfg.TypeKeys[f] = true
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}
	return cfg
}
