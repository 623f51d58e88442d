// Package cfgkv parses, models and serializes a small line-oriented
// configuration language:
//
//	# comment
//	name    = 'server01';
//	port    = 0x1F90;
//	ratio   = 0.75;
//	mirrors = ['a', 'b'];
//
// Values are integers (decimal, 0x hex or 0-led octal), decimals and single
// quoted strings. An entry holds either one of those primitives or a flat
// array of them.
package cfgkv

import "fmt"

// Kind tags an entry's value as a single primitive or an array.
type Kind uint8

const (
	// KindPrimitive marks a single integer, decimal or text value.
	KindPrimitive Kind = iota + 1
	// KindArray marks a flat list of primitives.
	KindArray
)

// String returns the lower case name of k.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Type tags the payload of a Primitive.
type Type uint8

const (
	// TypeInteger is a signed 64-bit integer.
	TypeInteger Type = iota
	// TypeDecimal is a 64-bit floating point number.
	TypeDecimal
	// TypeText is the content of a single quoted string.
	TypeText
)

// String returns the lower case name of t.
func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeDecimal:
		return "decimal"
	case TypeText:
		return "text"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Value is the value of an entry. It is implemented by Primitive and Array
// only.
type Value interface {
	Kind() Kind
	isValue()
}

// Primitive is an integer, a decimal or a text value. Only the payload
// selected by Type is meaningful, which the constructors guarantee. The zero
// Primitive is the integer 0.
type Primitive struct {
	typ  Type
	num  int64
	dec  float64
	text string
}

// Integer returns an integer primitive.
func Integer(v int64) Primitive { return Primitive{typ: TypeInteger, num: v} }

// Decimal returns a decimal primitive.
func Decimal(v float64) Primitive { return Primitive{typ: TypeDecimal, dec: v} }

// Text returns a text primitive.
func Text(v string) Primitive { return Primitive{typ: TypeText, text: v} }

// Kind always returns KindPrimitive.
func (p Primitive) Kind() Kind { return KindPrimitive }

// Type reports which payload p carries.
func (p Primitive) Type() Type { return p.typ }

// Int returns the integer payload and whether p is an integer.
func (p Primitive) Int() (int64, bool) { return p.num, p.typ == TypeInteger }

// Float returns the decimal payload and whether p is a decimal.
func (p Primitive) Float() (float64, bool) { return p.dec, p.typ == TypeDecimal }

// Str returns the text payload and whether p is a text.
func (p Primitive) Str() (string, bool) { return p.text, p.typ == TypeText }

// Equal reports whether p and o have the same type and payload.
func (p Primitive) Equal(o Primitive) bool {
	if p.typ != o.typ {
		return false
	}
	switch p.typ {
	case TypeInteger:
		return p.num == o.num
	case TypeDecimal:
		return p.dec == o.dec
	default:
		return p.text == o.text
	}
}

func (Primitive) isValue() {}

// Array is an ordered list of primitives. Arrays never nest.
type Array []Primitive

// Kind always returns KindArray.
func (a Array) Kind() Kind { return KindArray }

// Len returns the number of elements.
func (a Array) Len() int { return len(a) }

// Element returns the i-th element. ok is false when i is out of range.
func (a Array) Element(i int) (p Primitive, ok bool) {
	if i < 0 || i >= len(a) {
		return Primitive{}, false
	}
	return a[i], true
}

func (Array) isValue() {}

// Entry is a single key = value assignment.
type Entry struct {
	Key   string
	Value Value
}

// Kind returns the kind of the entry's value, or 0 when the value is nil.
func (e Entry) Kind() Kind {
	if e.Value == nil {
		return 0
	}
	return e.Value.Kind()
}

// Document is the ordered list of entries of a configuration file. Keys are
// not required to be unique; lookups return the first match.
type Document []Entry
