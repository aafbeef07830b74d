package encode

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadFormat = errors.New("bad format")

type Format int

const (
	YAMLFormat Format = iota
	JSONFormat
)

func (f Format) String() string {
	switch f {
	case YAMLFormat:
		return "yaml"
	case JSONFormat:
		return "json"
	}
	return "<unknown format>"
}

func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(v) {
	case "y", "yaml":
		return YAMLFormat, nil
	case "j", "json":
		return JSONFormat, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

type EncodeConfig struct {
	Format Format
}

type EncodeOption func(*EncodeConfig)

func EncodeFormat(f Format) EncodeOption {
	return func(c *EncodeConfig) { c.Format = f }
}
