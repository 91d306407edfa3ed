package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/expect/pkg/schema"
)

// GraphOverlay marks a validation failure on the graph.
type GraphOverlay struct {
	// FailurePath holds the field keys from the top-level field down to
	// the failing one, as returned by schema.Result.Keys.
	FailurePath []string
}

// OverlayFor builds an overlay from a failed result. It returns nil for a
// successful one.
func OverlayFor(res schema.Result) *GraphOverlay {
	if res.OK() {
		return nil
	}
	return &GraphOverlay{FailurePath: res.Keys()}
}

// GenerateMermaid produces a Mermaid flowchart of a schema's field tree.
// It applies semantic styling:
// - Root: ((Circle))
// - Required field: [[Subroutine]]
// - Pattern field: [/Parallelogram/]
// - Default: [Rectangle]
// Nested object fields hang off their parent; edges into array elements are
// labelled "[]" and edges into one of several alternatives "|".
func GenerateMermaid(name string, s schema.Schema, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	root := "root"
	sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", root, escapeLabel(name)))
	writeFields(&sb, root, "", s)

	if overlay != nil && len(overlay.FailurePath) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#fecaca,stroke:#b91c1c,stroke-width:4px,color:#000;\n")

		for i := range overlay.FailurePath {
			id := sanitizeMermaidID(strings.Join(overlay.FailurePath[:i+1], "."))
			class := "visited"
			if i == len(overlay.FailurePath)-1 {
				class = "failed"
			}
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", id, class))
		}
	}

	return sb.String()
}

func writeFields(sb *strings.Builder, parentID, prefix string, s schema.Schema) {
	for _, f := range s {
		fieldPath := f.Key
		if prefix != "" {
			fieldPath = prefix + "." + f.Key
		}
		id := sanitizeMermaidID(fieldPath)

		opener, closer := "[", "]"
		switch {
		case f.Required:
			opener, closer = "[[", "]]"
		case isPattern(f):
			opener, closer = "[/", "/]"
		}

		label := f.Key + ": " + typeLabel(f)
		if !f.Size.IsZero() {
			label += fmt.Sprintf(" <br/> size %v", f.Size.Spec())
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeLabel(label), closer))
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", parentID, id))

		for _, child := range nestedSchemas(f) {
			writeFields(sb, id, fieldPath, child)
		}
	}
}

func typeLabel(f schema.Field) string {
	if !f.Multiple() {
		if f.Type == nil {
			return "?"
		}
		if _, ok := f.Type.(schema.ObjectNode); ok {
			return "object"
		}
		return f.Type.Name()
	}
	names := make([]string, len(f.Types))
	for i, t := range f.Types {
		if _, ok := t.(schema.ObjectNode); ok {
			names[i] = "object"
			continue
		}
		names[i] = t.Name()
	}
	return strings.Join(names, " | ")
}

func isPattern(f schema.Field) bool {
	_, ok := f.Type.(schema.PatternNode)
	return ok
}

// nestedSchemas collects the object schemas reachable from f, directly or
// through array alternatives.
func nestedSchemas(f schema.Field) []schema.Schema {
	nodes := f.Types
	if f.Type != nil {
		nodes = []schema.Node{f.Type}
	}
	var out []schema.Schema
	for _, n := range nodes {
		out = append(out, objectSchemas(n)...)
	}
	return out
}

func objectSchemas(n schema.Node) []schema.Schema {
	switch t := n.(type) {
	case schema.ObjectNode:
		return []schema.Schema{t.Schema}
	case schema.ArrayNode:
		var out []schema.Schema
		for _, alt := range t.Alternatives {
			out = append(out, objectSchemas(alt)...)
		}
		return out
	}
	return nil
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return "f_" + s
}
