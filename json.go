package cfgkv

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// EncodeJSON writes d to w as an indented JSON object whose members follow
// document order. Duplicate keys are written as they appear.
func EncodeJSON(w io.Writer, d Document) error {
	return json.MarshalWrite(w, d,
		jsontext.AllowDuplicateNames(true),
		jsontext.Multiline(true),
		jsontext.WithIndent("  "))
}

// DecodeJSON reads a flat JSON object into a Document. Members keep their
// order and duplicates are kept as separate entries.
func DecodeJSON(r io.Reader) (Document, error) {
	var d Document
	if err := json.UnmarshalRead(r, &d, jsontext.AllowDuplicateNames(true)); err != nil {
		return nil, err
	}
	return d, nil
}

// MarshalJSONTo writes d as a JSON object. Integers become JSON integers,
// decimals JSON numbers with a fraction, text JSON strings and arrays JSON
// arrays. Documents with duplicate keys need an encoder that allows duplicate
// names.
func (d Document) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return fmt.Errorf("write object open: %w", err)
	}
	for _, e := range d {
		if err := enc.WriteToken(jsontext.String(e.Key)); err != nil {
			return fmt.Errorf("write key %q: %w", e.Key, err)
		}
		if err := encodeValue(enc, e.Value); err != nil {
			return fmt.Errorf("write value for key %q: %w", e.Key, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return fmt.Errorf("write object close: %w", err)
	}
	return nil
}

func encodeValue(enc *jsontext.Encoder, v Value) error {
	switch v := v.(type) {
	case Primitive:
		return encodePrimitive(enc, v)
	case Array:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, p := range v {
			if err := encodePrimitive(enc, p); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	default:
		return fmt.Errorf("unsupported value %T", v)
	}
}

// encodePrimitive writes decimals with a fraction so that 2.0 reads back as a
// decimal rather than an integer.
func encodePrimitive(enc *jsontext.Encoder, p Primitive) error {
	switch p.typ {
	case TypeInteger:
		return enc.WriteToken(jsontext.Int(p.num))
	case TypeDecimal:
		if math.IsNaN(p.dec) || math.IsInf(p.dec, 0) {
			return fmt.Errorf("decimal %v: %w", p.dec, ErrUnrepresentable)
		}
		return enc.WriteValue(jsontext.Value(appendDecimal(nil, p.dec)))
	default:
		return enc.WriteToken(jsontext.String(p.text))
	}
}

// UnmarshalJSONFrom reads a JSON object whose members are strings, numbers
// or arrays of those. Integral numbers become integers, other numbers
// decimals. Values the text format cannot express are rejected.
func (d *Document) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	if k := dec.PeekKind(); k != '{' {
		return fmt.Errorf("expected object, got %v", k)
	}
	if _, err := dec.ReadToken(); err != nil { // '{'
		return fmt.Errorf("read object open: %w", err)
	}
	res := Document{}
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return fmt.Errorf("read object key: %w", err)
		}
		e := Entry{Key: tok.String()}
		if dec.PeekKind() == '[' {
			e.Value, err = decodeArray(dec)
		} else {
			e.Value, err = decodePrimitive(dec)
		}
		if err != nil {
			return fmt.Errorf("read object value for key %q: %w", e.Key, err)
		}
		if err := checkEntry(e); err != nil {
			return err
		}
		res = append(res, e)
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return fmt.Errorf("read object close: %w", err)
	}
	*d = res
	return nil
}

func decodePrimitive(dec *jsontext.Decoder) (Primitive, error) {
	kind := dec.PeekKind()
	switch kind {
	case '"', '0':
	default:
		return Primitive{}, fmt.Errorf("unsupported JSON kind %v", kind)
	}
	tok, err := dec.ReadToken()
	if err != nil {
		return Primitive{}, err
	}
	if kind == '"' {
		return Text(tok.String()), nil
	}
	raw := tok.String()
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Integer(n), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Primitive{}, fmt.Errorf("number %s: %w", raw, err)
	}
	return Decimal(f), nil
}

// decodeArray decodes a JSON array of scalars into an Array.
func decodeArray(dec *jsontext.Decoder) (Array, error) {
	if _, err := dec.ReadToken(); err != nil { // '['
		return nil, fmt.Errorf("read array open: %w", err)
	}
	arr := Array{}
	for dec.PeekKind() != ']' {
		p, err := decodePrimitive(dec)
		if err != nil {
			return nil, fmt.Errorf("read array element %d: %w", len(arr), err)
		}
		arr = append(arr, p)
	}
	if _, err := dec.ReadToken(); err != nil { // ']'
		return nil, fmt.Errorf("read array close: %w", err)
	}
	return arr, nil
}
