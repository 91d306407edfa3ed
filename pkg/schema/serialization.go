package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/expect/pkg/pattern"
	"gopkg.in/yaml.v3"
)

// Raw returns s in its document form (the inverse of Parse). Pattern nodes
// are written with the format they were declared with.
func (s Schema) Raw() any {
	if s == nil {
		return nil
	}
	return s.raw()
}

func (s Schema) raw() ordered {
	out := make(ordered, 0, len(s))
	for _, f := range s {
		props := ordered{}
		if f.Multiple() {
			types := make([]any, len(f.Types))
			for i, n := range f.Types {
				types[i] = rawNode(n)
			}
			props = append(props, member{Key: "types", Value: types})
		} else {
			props = append(props, member{Key: "type", Value: rawNode(f.Type)})
		}
		if f.Required {
			props = append(props, member{Key: "required", Value: true})
		}
		if !f.Size.IsZero() {
			props = append(props, member{Key: "size", Value: f.Size.Spec()})
		}
		out = append(out, member{Key: f.Key, Value: props})
	}
	return out
}

func rawNode(n Node) any {
	switch n := n.(type) {
	case PrimitiveNode:
		return string(n.Tag)
	case PatternNode:
		if IsPrimitive(n.Format) {
			// A bare tag would parse back as a primitive.
			return "(?:" + n.Format + ")"
		}
		return n.Format
	case ArrayNode:
		alts := make([]any, len(n.Alternatives))
		for i, alt := range n.Alternatives {
			alts[i] = rawNode(alt)
		}
		return alts
	case ObjectNode:
		return n.Schema.raw()
	}
	return nil
}

// MarshalJSON writes the schema document with fields in schema order.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, s.raw()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case ordered:
		buf.WriteByte('{')
		for i, kv := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(kv.Key)
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, kv.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("schema: %w", err)
		}
		buf.Write(data)
	}
	return nil
}

// UnmarshalJSON parses a schema document. Pattern formats are expanded
// against pattern.Default(); use ParseDocument for another registry.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if s == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}
	if string(bytes.TrimSpace(data)) == "null" {
		*s = nil
		return nil
	}
	parsed, err := ParseDocument(data, pattern.Default())
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML writes the schema document with fields in schema order.
func (s Schema) MarshalYAML() (any, error) {
	if s == nil {
		return nil, nil
	}
	return yamlNode(s.raw())
}

func yamlNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case ordered:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, kv := range t {
			val, err := yamlNode(kv.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Key}, val)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			val, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, val)
		}
		return n, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return n, nil
}

// UnmarshalYAML parses a schema document node. Pattern formats are expanded
// against pattern.Default().
func (s *Schema) UnmarshalYAML(n *yaml.Node) error {
	raw, err := fromYAML(n)
	if err != nil {
		return err
	}
	parsed, err := Parse(raw, pattern.Default())
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
