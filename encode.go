package cfgkv

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrUnrepresentable is returned for values the text format cannot express:
// negative or non-finite numbers and text holding a single quote.
var ErrUnrepresentable = errors.New("value cannot be represented")

// representable reports why p cannot be written as a literal, if it cannot.
func representable(p Primitive) error {
	switch p.typ {
	case TypeInteger:
		if p.num < 0 {
			return fmt.Errorf("negative integer %d: %w", p.num, ErrUnrepresentable)
		}
	case TypeDecimal:
		if math.IsNaN(p.dec) || math.IsInf(p.dec, 0) || math.Signbit(p.dec) {
			return fmt.Errorf("decimal %v: %w", p.dec, ErrUnrepresentable)
		}
	case TypeText:
		if strings.IndexByte(p.text, '\'') >= 0 {
			return fmt.Errorf("text %q holds a single quote: %w", p.text, ErrUnrepresentable)
		}
	}
	return nil
}

// String renders p the way it is written in a document: integers in
// decimal, decimals in fixed notation and text in single quotes.
func (p Primitive) String() string {
	return string(p.appendTo(nil))
}

func (p Primitive) appendTo(b []byte) []byte {
	switch p.typ {
	case TypeInteger:
		return strconv.AppendInt(b, p.num, 10)
	case TypeDecimal:
		return appendDecimal(b, p.dec)
	default:
		b = append(b, '\'')
		b = append(b, p.text...)
		return append(b, '\'')
	}
}

// appendDecimal writes v without an exponent at the shortest precision that
// reads back to the same value, always keeping a '.' so that it reparses as
// a decimal.
func appendDecimal(b []byte, v float64) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, v, 'f', -1, 64)
	if bytes.IndexByte(b[start:], '.') < 0 {
		b = append(b, '.', '0')
	}
	return b
}

// String renders a as [v1,v2,...].
func (a Array) String() string {
	return string(a.appendTo(nil))
}

func (a Array) appendTo(b []byte) []byte {
	b = append(b, '[')
	for i, p := range a {
		if i > 0 {
			b = append(b, ',')
		}
		b = p.appendTo(b)
	}
	return append(b, ']')
}

func appendValue(b []byte, v Value) []byte {
	switch v := v.(type) {
	case Primitive:
		return v.appendTo(b)
	case Array:
		return v.appendTo(b)
	default:
		return b
	}
}

// ValidKey reports whether key can be written as an entry key.
func ValidKey(key string) bool {
	if key == "" || !isLetter(key[0]) {
		return false
	}
	for i := 1; i < len(key); i++ {
		if !isIdentByte(key[i]) {
			return false
		}
	}
	return true
}

func checkEntry(e Entry) error {
	if !ValidKey(e.Key) {
		return fmt.Errorf("key %q: %w", e.Key, ErrUnrepresentable)
	}
	switch v := e.Value.(type) {
	case Primitive:
		if err := representable(v); err != nil {
			return fmt.Errorf("entry %q: %w", e.Key, err)
		}
	case Array:
		for i, p := range v {
			if err := representable(p); err != nil {
				return fmt.Errorf("entry %q element %d: %w", e.Key, i, err)
			}
		}
	case nil:
		return fmt.Errorf("entry %q: nil value", e.Key)
	}
	return nil
}

// WriteTo serializes d as one "key = value;" line per entry. Comments,
// layout and numeric bases of the source are not preserved.
func (d Document) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var (
		total int64
		line  []byte
	)
	for _, e := range d {
		if err := checkEntry(e); err != nil {
			return total, err
		}
		line = append(line[:0], e.Key...)
		line = append(line, " = "...)
		line = appendValue(line, e.Value)
		line = append(line, ";\n"...)
		n, err := bw.Write(line)
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("write entry %q: %w", e.Key, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return total, fmt.Errorf("flush: %w", err)
	}
	return total, nil
}

// MarshalText returns the serialized document.
func (d Document) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalText parses text into d.
func (d *Document) UnmarshalText(text []byte) error {
	doc, err := Parse(text)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// String returns the serialized document. Entries that cannot be serialized
// are rendered anyway, so use WriteTo when that matters.
func (d Document) String() string {
	var b []byte
	for _, e := range d {
		b = append(b, e.Key...)
		b = append(b, " = "...)
		b = appendValue(b, e.Value)
		b = append(b, ";\n"...)
	}
	return string(b)
}
