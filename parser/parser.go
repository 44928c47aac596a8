package parser

import (
	vpack "github.com/arangodb/go-velocypack"
)

// Parser drives a Builder from a JSON byte stream. It holds no intermediate
// tree; every value is written to the Builder as soon as it is recognized.
type Parser struct {
	s    *scanner
	opts *vpack.Options
}

// New returns a Parser over data using DefaultOptions.
func New(data []byte) *Parser {
	return NewWithOptions(data, vpack.DefaultOptions())
}

// NewWithOptions returns a Parser over data using opts for the Builder it
// drives.
func NewWithOptions(data []byte, opts *vpack.Options) *Parser {
	if opts == nil {
		opts = vpack.DefaultOptions()
	}
	return &Parser{s: newScanner(data), opts: opts}
}

// Parse reads exactly one JSON value, plus optional surrounding
// whitespace, and returns it as a Slice over a freshly built Buffer. It
// fails with ParseError if trailing non-whitespace content follows the
// value.
func Parse(data []byte) (vpack.Slice, error) {
	return NewWithOptions(data, vpack.DefaultOptions()).Parse()
}

// ParseWithOptions is Parse with explicit Options.
func ParseWithOptions(data []byte, opts *vpack.Options) (vpack.Slice, error) {
	return NewWithOptions(data, opts).Parse()
}

func (p *Parser) Parse() (vpack.Slice, error) {
	b := vpack.NewBuilderWithOptions(p.opts)
	p.s.skipWhitespace()
	if err := p.parseValue(b); err != nil {
		return vpack.Slice{}, err
	}
	p.s.skipWhitespace()
	if !p.s.eof() {
		return vpack.Slice{}, p.s.parseErr("trailing content after JSON value")
	}
	return b.Slice(), nil
}

// parseValue parses one JSON value and adds it to b, whichever slot b is
// currently expecting (top-level, array element, or - via AddKey having
// already run - an object member's value).
func (p *Parser) parseValue(b *vpack.Builder) error {
	p.s.skipWhitespace()
	if p.s.eof() {
		return p.s.parseErr("unexpected end of input")
	}
	switch c := p.s.peek(); {
	case c == '{':
		return p.parseObject(b)
	case c == '[':
		return p.parseArray(b)
	case c == '"':
		str, err := p.s.scanString()
		if err != nil {
			return err
		}
		return b.Add(vpack.NewStringValue(str))
	case c == 't':
		if err := p.s.scanLiteral("true"); err != nil {
			return err
		}
		return b.Add(vpack.NewBoolValue(true))
	case c == 'f':
		if err := p.s.scanLiteral("false"); err != nil {
			return err
		}
		return b.Add(vpack.NewBoolValue(false))
	case c == 'n':
		if err := p.s.scanLiteral("null"); err != nil {
			return err
		}
		return b.Add(vpack.NewNullValue())
	case c == '-' || isDigit(c):
		n, err := p.s.scanNumber()
		if err != nil {
			return err
		}
		switch {
		case n.isInt:
			return b.Add(vpack.NewIntValue(n.i))
		case n.isUint:
			return b.Add(vpack.NewUIntValue(n.u))
		default:
			return b.Add(vpack.NewDoubleValue(n.f))
		}
	default:
		return p.s.parseErr("unexpected character")
	}
}

func (p *Parser) parseArray(b *vpack.Builder) error {
	p.s.advance() // '['
	if err := b.OpenArray(false); err != nil {
		return err
	}
	p.s.skipWhitespace()
	if p.s.peek() == ']' {
		p.s.advance()
		return b.Close()
	}
	for {
		if err := p.parseValue(b); err != nil {
			return err
		}
		p.s.skipWhitespace()
		switch p.s.peek() {
		case ',':
			p.s.advance()
			p.s.skipWhitespace()
		case ']':
			p.s.advance()
			return b.Close()
		default:
			return p.s.parseErr("expected ',' or ']' in array")
		}
	}
}

func (p *Parser) parseObject(b *vpack.Builder) error {
	p.s.advance() // '{'
	if err := b.OpenObject(nil, false); err != nil {
		return err
	}
	p.s.skipWhitespace()
	if p.s.peek() == '}' {
		p.s.advance()
		return b.Close()
	}
	for {
		p.s.skipWhitespace()
		if p.s.peek() != '"' {
			return p.s.errAt(vpack.ErrExpectingAttributeName, "expected '\"' to start an attribute name")
		}
		key, err := p.s.scanString()
		if err != nil {
			return err
		}
		p.s.skipWhitespace()
		if err := p.s.expect(':'); err != nil {
			return err
		}
		if err := b.AddKey(key); err != nil {
			return err
		}
		if err := p.parseValue(b); err != nil {
			return err
		}
		p.s.skipWhitespace()
		switch p.s.peek() {
		case ',':
			p.s.advance()
		case '}':
			p.s.advance()
			return b.Close()
		default:
			return p.s.parseErr("expected ',' or '}' in object")
		}
	}
}
