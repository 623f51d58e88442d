package cfgkv

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EncodeYAML writes d to w as a YAML mapping in document order. Arrays are
// written in flow style.
func EncodeYAML(w io.Writer, d Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// DecodeYAML reads a YAML mapping of scalars and scalar sequences into a
// Document.
func DecodeYAML(r io.Reader) (Document, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, err
	}
	return d, nil
}

// MarshalYAML returns d as a mapping node with explicitly tagged scalars so
// that text such as '42' stays a string.
func (d Document) MarshalYAML() (any, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range d {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key}
		var val *yaml.Node
		switch v := e.Value.(type) {
		case Primitive:
			n, err := scalarNode(v)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", e.Key, err)
			}
			val = n
		case Array:
			val = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
			for i, p := range v {
				n, err := scalarNode(p)
				if err != nil {
					return nil, fmt.Errorf("entry %q element %d: %w", e.Key, i, err)
				}
				val.Content = append(val.Content, n)
			}
		default:
			return nil, fmt.Errorf("entry %q: unsupported value %T", e.Key, e.Value)
		}
		m.Content = append(m.Content, key, val)
	}
	return m, nil
}

func scalarNode(p Primitive) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.ScalarNode}
	switch p.typ {
	case TypeInteger:
		n.Tag, n.Value = "!!int", strconv.FormatInt(p.num, 10)
	case TypeDecimal:
		if math.IsNaN(p.dec) || math.IsInf(p.dec, 0) {
			return nil, fmt.Errorf("decimal %v: %w", p.dec, ErrUnrepresentable)
		}
		n.Tag, n.Value = "!!float", string(appendDecimal(nil, p.dec))
	default:
		n.Tag, n.Value = "!!str", p.text
	}
	return n, nil
}

// UnmarshalYAML reads a mapping whose values are int, float or string
// scalars or sequences of them.
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	res := Document{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
		}
		e := Entry{Key: k.Value}
		switch v.Kind {
		case yaml.ScalarNode:
			p, err := yamlPrimitive(v)
			if err != nil {
				return fmt.Errorf("key %q: %w", e.Key, err)
			}
			e.Value = p
		case yaml.SequenceNode:
			arr := Array{}
			for j, item := range v.Content {
				p, err := yamlPrimitive(item)
				if err != nil {
					return fmt.Errorf("key %q element %d: %w", e.Key, j, err)
				}
				arr = append(arr, p)
			}
			e.Value = arr
		default:
			return fmt.Errorf("line %d: key %q: unsupported value", v.Line, e.Key)
		}
		if err := checkEntry(e); err != nil {
			return err
		}
		res = append(res, e)
	}
	*d = res
	return nil
}

func yamlPrimitive(n *yaml.Node) (Primitive, error) {
	if n.Kind != yaml.ScalarNode {
		return Primitive{}, fmt.Errorf("line %d: expected a scalar", n.Line)
	}
	switch n.ShortTag() {
	case "!!int":
		var v int64
		if err := n.Decode(&v); err != nil {
			return Primitive{}, err
		}
		return Integer(v), nil
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return Primitive{}, err
		}
		return Decimal(v), nil
	case "!!str":
		return Text(n.Value), nil
	default:
		return Primitive{}, fmt.Errorf("line %d: unsupported scalar %s", n.Line, n.ShortTag())
	}
}
