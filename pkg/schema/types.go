package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/expect/pkg/pattern"
)

// Node describes the expected shape of one value position.
// The set of implementations is closed: PrimitiveNode, PatternNode,
// ArrayNode and ObjectNode.
type Node interface {
	// Name returns a short human-readable description (e.g. "string", "[number|string]").
	Name() string
	node()
}

// Primitive is a primitive type tag.
type Primitive string

const (
	TagAny     Primitive = "any"
	TagNumber  Primitive = "number"
	TagString  Primitive = "string"
	TagBoolean Primitive = "boolean"
)

// IsPrimitive reports whether s is one of the primitive type tags.
func IsPrimitive(s string) bool {
	switch Primitive(s) {
	case TagAny, TagNumber, TagString, TagBoolean:
		return true
	}
	return false
}

// PrimitiveNode matches values whose runtime type name equals Tag.
// TagAny matches everything.
type PrimitiveNode struct {
	Tag Primitive
}

func (n PrimitiveNode) Name() string { return string(n.Tag) }
func (PrimitiveNode) node()          {}

// PatternNode matches strings against a compiled expression.
type PatternNode struct {
	// Format is the text the pattern was declared with, before expansion.
	Format string
	Regexp *regexp.Regexp
}

func (n PatternNode) Name() string {
	if n.Regexp == nil {
		return "pattern"
	}
	return "/" + n.Regexp.String() + "/"
}
func (PatternNode) node() {}

// ArrayNode matches arrays whose every element satisfies at least one alternative.
type ArrayNode struct {
	Alternatives []Node
}

func (n ArrayNode) Name() string {
	names := make([]string, len(n.Alternatives))
	for i, alt := range n.Alternatives {
		if alt == nil {
			names[i] = string(TagAny)
			continue
		}
		names[i] = alt.Name()
	}
	return "[" + strings.Join(names, "|") + "]"
}
func (ArrayNode) node() {}

// ObjectNode matches objects against a nested schema.
type ObjectNode struct {
	Schema Schema
}

func (n ObjectNode) Name() string {
	keys := make([]string, len(n.Schema))
	for i, f := range n.Schema {
		keys[i] = f.Key
	}
	return "{" + strings.Join(keys, ",") + "}"
}
func (ObjectNode) node() {}

// --- Factory Functions ---

// Any matches every value.
func Any() Node { return PrimitiveNode{Tag: TagAny} }

// Number matches numeric values.
func Number() Node { return PrimitiveNode{Tag: TagNumber} }

// String matches string values.
func String() Node { return PrimitiveNode{Tag: TagString} }

// Boolean matches boolean values.
func Boolean() Node { return PrimitiveNode{Tag: TagBoolean} }

// Pattern matches strings accepted by re. The source is already expanded,
// so its Format escapes every "<name>" to keep it literal when the schema is
// written out and parsed again.
func Pattern(re *regexp.Regexp) Node {
	if re == nil {
		return PatternNode{}
	}
	return PatternNode{Format: pattern.Escape(re.String()), Regexp: re}
}

// Format expands format against reg and compiles it into a pattern node.
func Format(reg *pattern.Registry, format string) (Node, error) {
	re, err := reg.Compile(format)
	if err != nil {
		return nil, err
	}
	return PatternNode{Format: format, Regexp: re}, nil
}

// MustFormat is like Format but panics on an invalid expression.
func MustFormat(reg *pattern.Registry, format string) Node {
	n, err := Format(reg, format)
	if err != nil {
		panic(err)
	}
	return n
}

// Array matches arrays whose elements satisfy one of alts. With no alts it
// still requires an array.
func Array(alts ...Node) Node {
	if alts == nil {
		alts = []Node{}
	}
	return ArrayNode{Alternatives: alts}
}

// Object matches objects that validate against s.
func Object(s Schema) Node { return ObjectNode{Schema: s} }

// Field is the schema of one object key.
//
// Exactly one of Type (single form) or Types (multiple form) should be set.
// In the multiple form the value must satisfy at least one listed node.
// A Types list with a single node behaves like Type: its failure keeps the
// inner cause instead of reporting TypesError.
type Field struct {
	Key      string
	Type     Node
	Types    []Node
	Required bool
	Size     Size
}

// Multiple reports whether f uses the multiple-types form.
func (f Field) Multiple() bool {
	return f.Type == nil && f.Types != nil
}

func (f Field) String() string {
	var b strings.Builder
	b.WriteString(f.Key)
	b.WriteString(": ")
	if f.Multiple() {
		names := make([]string, len(f.Types))
		for i, t := range f.Types {
			names[i] = nodeName(t)
		}
		b.WriteString(strings.Join(names, " | "))
	} else {
		b.WriteString(nodeName(f.Type))
	}
	if f.Required {
		b.WriteString(" (required)")
	}
	if !f.Size.IsZero() {
		fmt.Fprintf(&b, " size=%v", f.Size.Spec())
	}
	return b.String()
}

func nodeName(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Name()
}

// Schema is an ordered list of field schemas. Validation visits fields in
// this order, so the first failing field is deterministic.
//
// A nil Schema declares no constraints at all; an empty non-nil Schema
// still requires the value to be an object.
type Schema []Field

// Lookup returns the field schema for key.
func (s Schema) Lookup(key string) (Field, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Keys returns the declared field keys in order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}
	return keys
}
