package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/aretw0/expect/pkg/pattern"
	"github.com/aretw0/expect/pkg/value"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// member is one key of a document mapping, in document order.
type member struct {
	Key   string
	Value any
}

// ordered is a mapping whose key order is significant.
type ordered []member

func (o ordered) toMap() map[string]any {
	m := make(map[string]any, len(o))
	for _, kv := range o {
		m[kv.Key] = kv.Value
	}
	return m
}

// fieldSpec is the raw form of a field schema.
type fieldSpec struct {
	Type        any    `mapstructure:"type"`
	Types       []any  `mapstructure:"types"`
	Required    bool   `mapstructure:"required"`
	Size        any    `mapstructure:"size"`
	Description string `mapstructure:"description"`
}

// Parse converts untyped schema data into a Schema.
//
// raw is a mapping from field key to field schema, where each field schema
// is a mapping with "type" or "types" and optional "required" and "size".
// A node is one of the primitive tags, a pattern format string (expanded
// through reg), a list of alternative nodes, or a nested mapping.
//
// Go maps carry no key order, so their fields are validated in sorted key
// order. Use ParseDocument to keep the order written in a YAML or JSON file.
// All malformed fields are reported together in an *AggregateError.
func Parse(raw any, reg *pattern.Registry) (Schema, error) {
	if raw == nil {
		return nil, nil
	}
	p := &parser{reg: reg}
	s := p.schema("", raw)
	if len(p.errs) > 0 {
		return nil, &AggregateError{Errors: p.errs}
	}
	return s, nil
}

// ParseDocument parses a YAML or JSON schema document, keeping its key order.
func ParseDocument(data []byte, reg *pattern.Registry) (Schema, error) {
	raw, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return Parse(raw, reg)
}

func decodeDocument(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		raw, err := fromJSON(dec)
		if err != nil {
			return nil, &SyntaxError{Format: "json", Err: err}
		}
		return raw, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, &SyntaxError{Format: "yaml", Err: err}
	}
	raw, err := fromYAML(&doc)
	if err != nil {
		return nil, &SyntaxError{Format: "yaml", Err: err}
	}
	return raw, nil
}

type parser struct {
	reg  *pattern.Registry
	errs []error
}

func (p *parser) fail(key, format string, args ...any) {
	p.errs = append(p.errs, &DefinitionError{Key: key, Reason: fmt.Sprintf(format, args...)})
}

func (p *parser) schema(prefix string, raw any) Schema {
	members, ok := asMapping(raw)
	if !ok {
		p.fail(prefix, "expected a mapping of fields, got %s", describeType(raw))
		return nil
	}

	s := make(Schema, 0, len(members))
	for _, kv := range members {
		key := joinKey(prefix, kv.Key)
		if f, ok := p.field(key, kv.Value); ok {
			f.Key = kv.Key
			s = append(s, f)
		}
	}
	return s
}

func (p *parser) field(key string, raw any) (Field, bool) {
	props, ok := asMapping(raw)
	if !ok {
		p.fail(key, "field schema must be a mapping, got %s", describeType(raw))
		return Field{}, false
	}

	var spec fieldSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &spec,
		ErrorUnused: true,
	})
	if err != nil {
		p.fail(key, "%v", err)
		return Field{}, false
	}
	m := props.toMap()
	if err := dec.Decode(m); err != nil {
		p.fail(key, "%v", err)
		return Field{}, false
	}

	size, err := sizeSpec(spec.Size)
	if err != nil {
		p.fail(key, "size: %v", err)
		return Field{}, false
	}
	f := Field{Required: spec.Required, Size: size}

	_, hasType := m["type"]
	_, hasTypes := m["types"]
	switch {
	case hasType:
		n, ok := p.node(key, spec.Type)
		if !ok {
			return Field{}, false
		}
		f.Type = n
	case hasTypes:
		f.Types = make([]Node, 0, len(spec.Types))
		for _, raw := range spec.Types {
			n, ok := p.node(key, raw)
			if !ok {
				return Field{}, false
			}
			f.Types = append(f.Types, n)
		}
	default:
		p.fail(key, `field schema needs "type" or "types"`)
		return Field{}, false
	}
	return f, true
}

// sizeSpec validates the shape of a raw size. Malformed range tokens are
// accepted and never match, so a bad token on an absent optional field has
// no effect.
func sizeSpec(raw any) (Size, error) {
	if raw == nil {
		return Size{}, nil
	}
	items := []any{raw}
	if value.Classify(raw) == value.Array {
		items, _ = value.Elements(raw)
	}
	for _, item := range items {
		switch value.Classify(item) {
		case value.Number, value.String:
		default:
			return Size{}, fmt.Errorf("unsupported size alternative of type %s", describeType(item))
		}
	}
	return SizeOf(raw), nil
}

func (p *parser) node(key string, raw any) (Node, bool) {
	if s, ok := raw.(string); ok {
		if IsPrimitive(s) {
			return PrimitiveNode{Tag: Primitive(s)}, true
		}
		n, err := Format(p.reg, s)
		if err != nil {
			p.fail(key, "pattern: %v", err)
			return nil, false
		}
		return n, true
	}
	// ordered is itself a slice, so mappings are matched before arrays.
	if _, ok := asMapping(raw); ok {
		before := len(p.errs)
		s := p.schema(key, raw)
		return ObjectNode{Schema: s}, len(p.errs) == before
	}
	if value.Classify(raw) == value.Array {
		items, _ := value.Elements(raw)
		alts := make([]Node, 0, len(items))
		for _, item := range items {
			n, ok := p.node(key, item)
			if !ok {
				return nil, false
			}
			alts = append(alts, n)
		}
		return ArrayNode{Alternatives: alts}, true
	}
	p.fail(key, "unrecognized schema node of type %s", describeType(raw))
	return nil, false
}

// asMapping returns the members of an ordered mapping or a string-keyed map
// (sorted by key).
func asMapping(raw any) (ordered, bool) {
	switch m := raw.(type) {
	case ordered:
		return m, true
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := make(ordered, len(keys))
		for i, k := range keys {
			out[i] = member{Key: k, Value: m[k]}
		}
		return out, true
	}
	if value.Classify(raw) != value.Object {
		return nil, false
	}
	keys := value.Keys(raw)
	out := make(ordered, len(keys))
	for i, k := range keys {
		v, _ := value.Field(raw, k)
		out[i] = member{Key: k, Value: v}
	}
	return out, true
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// fromYAML converts a YAML node tree into plain values, keeping mapping
// order as ordered.
func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.MappingNode:
		out := make(ordered, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			val, err := fromYAML(v)
			if err != nil {
				return nil, err
			}
			out = append(out, member{Key: k.Value, Value: val})
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
}

// fromJSON reads one JSON value from dec, keeping object order as ordered.
func fromJSON(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var out ordered
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, errors.New("object key is not a string")
				}
				val, err := fromJSON(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			if out == nil {
				out = ordered{}
			}
			return out, nil
		case '[':
			out := []any{}
			for dec.More() {
				val, err := fromJSON(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return out, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return int(i), nil
		}
		return t.Float64()
	}
	return tok, nil
}
