// Package parser turns a UTF-8 JSON byte stream into a VPack value by
// driving a Builder through a recursive-descent parse. It never builds an
// intermediate tree; every JSON value is written straight into the Builder
// as it is recognized.
package parser

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	vpack "github.com/arangodb/go-velocypack"
)

// scanner is the byte-level half of the parser: whitespace skipping,
// character lookahead, and the two variable-length token bodies (string,
// number) that need more than one byte of lookahead. It tracks 1-based
// line/column purely for error reporting.
type scanner struct {
	data []byte
	pos  int
	line int
	col  int
}

func newScanner(data []byte) *scanner {
	return &scanner{data: data, line: 1, col: 1}
}

func (s *scanner) eof() bool { return s.pos >= len(s.data) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.data[s.pos]
}

func (s *scanner) peekAt(n int) byte {
	if s.pos+n >= len(s.data) {
		return 0
	}
	return s.data[s.pos+n]
}

func (s *scanner) advance() byte {
	c := s.data[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func (s *scanner) skipWhitespace() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r':
			s.advance()
		default:
			return
		}
	}
}

func (s *scanner) parseErr(detail string) error {
	return vpack.NewParseError(vpack.ErrParseError, s.line, s.col, detail)
}

func (s *scanner) errAt(kind vpack.ErrorKind, detail string) error {
	return vpack.NewParseError(kind, s.line, s.col, detail)
}

// expect consumes c or fails with ParseError.
func (s *scanner) expect(c byte) error {
	if s.eof() || s.peek() != c {
		return s.parseErr("expected '" + string(c) + "'")
	}
	s.advance()
	return nil
}

// scanLiteral consumes lit verbatim (used for true/false/null) or fails.
func (s *scanner) scanLiteral(lit string) error {
	for i := 0; i < len(lit); i++ {
		if s.eof() || s.peek() != lit[i] {
			return s.parseErr("invalid literal, expected " + lit)
		}
		s.advance()
	}
	return nil
}

// scanString consumes a JSON string, including its surrounding quotes, and
// returns the decoded value. Control characters (< 0x20) are rejected
// unescaped, per RFC 8259; \uXXXX escapes are decoded to UTF-8, resolving
// surrogate pairs.
func (s *scanner) scanString() (string, error) {
	if err := s.expect('"'); err != nil {
		return "", err
	}
	var buf []byte
	for {
		if s.eof() {
			return "", s.parseErr("unterminated string")
		}
		c := s.peek()
		switch {
		case c == '"':
			s.advance()
			return string(buf), nil
		case c == '\\':
			s.advance()
			r, err := s.scanEscape()
			if err != nil {
				return "", err
			}
			buf = utf8.AppendRune(buf, r)
		case c < 0x20:
			return "", s.errAt(vpack.ErrUnexpectedControlCharacter, "unescaped control character in string")
		default:
			r, size := utf8.DecodeRune(s.data[s.pos:])
			if r == utf8.RuneError && size <= 1 {
				return "", s.errAt(vpack.ErrInvalidUtf8Sequence, "invalid UTF-8 sequence in string")
			}
			for i := 0; i < size; i++ {
				s.advance()
			}
			buf = append(buf, s.data[s.pos-size:s.pos]...)
		}
	}
}

func (s *scanner) scanEscape() (rune, error) {
	if s.eof() {
		return 0, s.parseErr("unterminated escape sequence")
	}
	c := s.advance()
	switch c {
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case '/':
		return '/', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		r1, err := s.scanHex4()
		if err != nil {
			return 0, err
		}
		if utf16.IsSurrogate(rune(r1)) {
			if s.peek() != '\\' || s.peekAt(1) != 'u' {
				return 0, s.errAt(vpack.ErrInvalidUtf8Sequence, "unpaired surrogate escape")
			}
			s.advance()
			s.advance()
			r2, err := s.scanHex4()
			if err != nil {
				return 0, err
			}
			combined := utf16.DecodeRune(rune(r1), rune(r2))
			if combined == utf8.RuneError {
				return 0, s.errAt(vpack.ErrInvalidUtf8Sequence, "invalid surrogate pair")
			}
			return combined, nil
		}
		return rune(r1), nil
	default:
		return 0, s.parseErr("invalid escape character")
	}
}

func (s *scanner) scanHex4() (uint16, error) {
	var v uint16
	for i := 0; i < 4; i++ {
		if s.eof() {
			return 0, s.parseErr("unterminated \\u escape")
		}
		c := s.advance()
		var d uint16
		switch {
		case c >= '0' && c <= '9':
			d = uint16(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint16(c-'A') + 10
		default:
			return 0, s.parseErr("invalid hex digit in \\u escape")
		}
		v = v<<4 | d
	}
	return v, nil
}

// number is the result of scanNumber: an exact int64 (isInt true), an exact
// uint64 for integers above math.MaxInt64 (isUint true), or a float64
// fallback for integers beyond uint64 and for anything that carries a
// fraction/exponent.
type number struct {
	i      int64
	u      uint64
	f      float64
	isInt  bool
	isUint bool
}

// scanNumber consumes a JSON number per RFC 8259's grammar and classifies
// it: integers that fit in int64 stay Int, larger integers that fit in
// uint64 become UInt, everything else (fractions, exponents, or overflow
// past uint64) becomes Double.
func (s *scanner) scanNumber() (number, error) {
	start := s.pos
	if s.peek() == '-' {
		s.advance()
	}
	if s.eof() || !isDigit(s.peek()) {
		return number{}, s.parseErr("invalid number")
	}
	if s.peek() == '0' {
		s.advance()
	} else {
		for !s.eof() && isDigit(s.peek()) {
			s.advance()
		}
	}
	isFloat := false
	if s.peek() == '.' {
		isFloat = true
		s.advance()
		if !isDigit(s.peek()) {
			return number{}, s.parseErr("invalid number: missing digits after decimal point")
		}
		for !s.eof() && isDigit(s.peek()) {
			s.advance()
		}
	}
	if s.peek() == 'e' || s.peek() == 'E' {
		isFloat = true
		s.advance()
		if s.peek() == '+' || s.peek() == '-' {
			s.advance()
		}
		if !isDigit(s.peek()) {
			return number{}, s.parseErr("invalid number: missing digits in exponent")
		}
		for !s.eof() && isDigit(s.peek()) {
			s.advance()
		}
	}
	lit := string(s.data[start:s.pos])
	if !isFloat {
		if iv, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return number{i: iv, isInt: true}, nil
		}
		if uv, err := strconv.ParseUint(lit, 10, 64); err == nil {
			return number{u: uv, isUint: true}, nil
		}
	}
	fv, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return number{}, s.errAt(vpack.ErrNumberOutOfRange, "number out of representable range")
	}
	return number{f: fv, isInt: false}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
