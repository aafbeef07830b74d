package typeexpr

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxArraySize bounds fixed array sizes, whether written in brackets or
// given separately.
const MaxArraySize = 1<<31 - 1

var (
	ErrSyntax    = errors.New("type expression syntax error")
	ErrArraySize = errors.New("array size must be a positive integer")
)

// SyntaxError locates a parse failure in the input. It unwraps to
// ErrSyntax, or ErrArraySize for a bad fixed array size.
type SyntaxError struct {
	Input  string
	Offset int
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%q at offset %d: %s", e.Input, e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Parse parses a type expression such as "uint8[10]", "map<string,pos_t>"
// or "seats.position_t".
func Parse(s string) (*Expr, error) {
	p := &parser{input: s}
	p.space()
	if p.eof() {
		return nil, p.errorf("empty type expression")
	}
	e, err := p.typ()
	if err != nil {
		return nil, err
	}
	p.space()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.input[p.pos:])
	}
	return e, nil
}

// MustParse is Parse for known good input, it panics on error.
func MustParse(s string) *Expr {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Input: p.input, Offset: p.pos, Msg: fmt.Sprintf(format, args...), Err: ErrSyntax}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) space() {
	for !p.eof() {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) expect(c byte) error {
	p.space()
	if p.peek() != c {
		if p.eof() {
			return p.errorf("expected %q, got end of input", c)
		}
		return p.errorf("expected %q, got %q", c, p.peek())
	}
	p.pos++
	return nil
}

// typ := base ( '[' size? ']' )*
func (p *parser) typ() (*Expr, error) {
	e, err := p.base()
	if err != nil {
		return nil, err
	}
	for {
		p.space()
		if p.peek() != '[' {
			return e, nil
		}
		p.pos++
		p.space()
		size := 0
		if !p.eof() && p.peek() != ']' {
			size, err = p.size()
			if err != nil {
				return nil, err
			}
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		e = ArrayOf(e, size)
	}
}

func (p *parser) size() (int, error) {
	start := p.pos
	if p.peek() == '-' || p.peek() == '+' {
		p.pos++
	}
	for isDigit(p.peek()) {
		p.pos++
	}
	lit := p.input[start:p.pos]
	// ParseUint rejects a sign
	n, err := strconv.ParseUint(lit, 10, 64)
	if err != nil || n == 0 || n > MaxArraySize {
		p.pos = start
		return 0, &SyntaxError{Input: p.input, Offset: start, Msg: fmt.Sprintf("bad array size %q", lit), Err: ErrArraySize}
	}
	return int(n), nil
}

// base := 'opaque' | primitive | ('map'|'set'|'variant') '<' list '>' | name
func (p *parser) base() (*Expr, error) {
	p.space()
	start := p.pos
	name, err := p.name()
	if err != nil {
		return nil, err
	}
	switch {
	case name == "opaque":
		return &Expr{Kind: Opaque}, nil
	case IsPrimitive(name):
		return &Expr{Kind: Primitive, Name: name}, nil
	}
	var kind Kind
	switch name {
	case "map":
		kind = Map
	case "set":
		kind = Set
	case "variant":
		kind = Variant
	default:
		return &Expr{Kind: Ref, Name: name}, nil
	}
	p.space()
	if p.peek() != '<' {
		// a definition may be called map or set
		return &Expr{Kind: Ref, Name: name}, nil
	}
	p.pos++
	args, err := p.list()
	if err != nil {
		return nil, err
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	switch {
	case kind == Map && len(args) != 2:
		p.pos = start
		return nil, p.errorf("map takes 2 types, got %d", len(args))
	case kind == Set && len(args) != 1:
		p.pos = start
		return nil, p.errorf("set takes 1 type, got %d", len(args))
	}
	return &Expr{Kind: kind, Args: args}, nil
}

func (p *parser) list() ([]*Expr, error) {
	var res []*Expr
	for {
		e, err := p.typ()
		if err != nil {
			return nil, err
		}
		res = append(res, e)
		p.space()
		if p.peek() != ',' {
			return res, nil
		}
		p.pos++
	}
}

// name := ident ( '.' ident )*
func (p *parser) name() (string, error) {
	start := p.pos
	for {
		if !isIdentStart(p.peek()) {
			if p.eof() {
				return "", p.errorf("expected type name, got end of input")
			}
			return "", p.errorf("expected type name, got %q", p.peek())
		}
		for isIdent(p.peek()) {
			p.pos++
		}
		if p.peek() != '.' {
			return p.input[start:p.pos], nil
		}
		p.pos++
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdent(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
