package velocypack

import (
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// ToJSON renders the value as canonical JSON text: no insignificant
// whitespace, object members emitted in the Slice's stored order (which
// for a sorted-layout object is lexicographic). Types with no JSON
// equivalent (UTCDate, MinKey, MaxKey, BCD, Tagged, External, Custom) are
// handled per Options.UnsupportedTypeBehavior.
func (s Slice) ToJSON() (string, error) {
	buf := getScratchBuffer()
	defer putScratchBuffer(buf)
	if err := s.writeJSON(buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s Slice) opt() *Options {
	if s.opts == nil {
		return DefaultOptions()
	}
	return s.opts
}

func (s Slice) writeJSON(w *Buffer) error {
	switch s.Type() {
	case Null:
		w.WriteString("null")
	case Bool:
		b, err := s.GetBool()
		if err != nil {
			return err
		}
		if b {
			w.WriteString("true")
		} else {
			w.WriteString("false")
		}
	case Int, SmallInt:
		v, err := s.GetInt()
		if err != nil {
			return err
		}
		w.WriteString(strconv.FormatInt(v, 10))
	case UInt:
		v, err := s.GetUInt()
		if err != nil {
			return err
		}
		w.WriteString(strconv.FormatUint(v, 10))
	case Double:
		v, err := s.GetDouble()
		if err != nil {
			return err
		}
		w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case String:
		str, err := s.GetString()
		if err != nil {
			return err
		}
		writeJSONString(w, str, s.opt())
	case Array:
		n, err := s.Length()
		if err != nil {
			return err
		}
		w.WriteByte('[')
		for i := 0; i < n; i++ {
			if i > 0 {
				w.WriteByte(',')
			}
			el, err := s.At(i)
			if err != nil {
				return err
			}
			if err := el.writeJSON(w); err != nil {
				return err
			}
		}
		w.WriteByte(']')
	case Object:
		n, err := s.Length()
		if err != nil {
			return err
		}
		w.WriteByte('{')
		for i := 0; i < n; i++ {
			if i > 0 {
				w.WriteByte(',')
			}
			name, err := s.KeyNameAt(i)
			if err != nil {
				return err
			}
			writeJSONString(w, name, s.opt())
			w.WriteByte(':')
			val, err := s.ValueAt(i)
			if err != nil {
				return err
			}
			if err := val.writeJSON(w); err != nil {
				return err
			}
		}
		w.WriteByte('}')
	default:
		return s.writeUnsupportedJSON(w)
	}
	return nil
}

// writeUnsupportedJSON handles the types with no direct JSON mapping,
// following Options.UnsupportedTypeBehavior.
func (s Slice) writeUnsupportedJSON(w *Buffer) error {
	switch s.opt().UnsupportedTypeBehavior {
	case NullOnUnsupported:
		w.WriteString("null")
		return nil
	case ConvertUnsupportedToString:
		writeJSONString(w, fmt.Sprintf("<%s>", s.Type()), s.opt())
		return nil
	default:
		return newError(ErrNoJsonEquivalent, s.Type().String()+" has no JSON representation")
	}
}

// writeJSONString writes s as a double-quoted JSON string literal,
// escaping control characters, the quote and backslash characters
// unconditionally, '/' when EscapeForwardSlashes is set, and non-ASCII
// runes as \uXXXX when EscapeUnicode is set.
func writeJSONString(w *Buffer, s string, opts *Options) {
	w.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			w.WriteString(`\"`)
		case r == '\\':
			w.WriteString(`\\`)
		case r == '/' && opts.EscapeForwardSlashes:
			w.WriteString(`\/`)
		case r == '\n':
			w.WriteString(`\n`)
		case r == '\r':
			w.WriteString(`\r`)
		case r == '\t':
			w.WriteString(`\t`)
		case r == '\b':
			w.WriteString(`\b`)
		case r == '\f':
			w.WriteString(`\f`)
		case r < 0x20:
			fmt.Fprintf(w, `\u%04x`, r)
		case r > 0x7f && opts.EscapeUnicode:
			writeEscapedRune(w, r)
		default:
			w.WriteRune(r)
		}
	}
	w.WriteByte('"')
}

func writeEscapedRune(w *Buffer, r rune) {
	if r <= 0xffff {
		fmt.Fprintf(w, `\u%04x`, r)
		return
	}
	r1, r2 := utf16.EncodeRune(r)
	if r1 == utf8.RuneError && r2 == utf8.RuneError {
		fmt.Fprintf(w, `�`)
		return
	}
	fmt.Fprintf(w, `\u%04x\u%04x`, r1, r2)
}
