package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/expect/pkg/schema"
)

// ResultMarkdown describes a validation result as a markdown report. Failed
// results list every link of the cause chain from the top-level field down.
func ResultMarkdown(subject string, res schema.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", subject)

	if res.OK() {
		sb.WriteString("**OK**: the value satisfies the schema.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "**%s** at `%s`\n\n", res.Status, displayPath(res.Path()))
	fmt.Fprintf(&sb, "> %s\n\n", res.Reason())

	sb.WriteString("| Depth | Key | Status | Expected | Actual |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	depth := 0
	for cur := &res; cur != nil; cur = cur.Parent {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n",
			depth, cell(linkKey(cur)), cur.Status, cell(expected(cur)), cell(actual(cur)))
		depth++
	}
	return sb.String()
}

func displayPath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}

func linkKey(r *schema.Result) string {
	if r.Expect != nil && r.Expect.Key != "" {
		return r.Expect.Key
	}
	if r.Actual != nil {
		return r.Actual.Key
	}
	return ""
}

func expected(r *schema.Result) string {
	if r.Expect == nil {
		return ""
	}
	var parts []string
	if r.Expect.Type != "" {
		parts = append(parts, r.Expect.Type)
	}
	if r.Expect.Format != "" {
		parts = append(parts, "/"+r.Expect.Format+"/")
	}
	if r.Expect.Size != nil {
		parts = append(parts, fmt.Sprintf("size %v", r.Expect.Size))
	}
	return strings.Join(parts, " ")
}

func actual(r *schema.Result) string {
	if r.Actual == nil {
		return ""
	}
	var parts []string
	if r.Actual.Type != "" {
		parts = append(parts, r.Actual.Type)
	}
	if r.Actual.Value != nil {
		parts = append(parts, fmt.Sprintf("%v", r.Actual.Value))
	}
	if r.Actual.Length != nil {
		parts = append(parts, fmt.Sprintf("length %v", *r.Actual.Length))
	}
	return strings.Join(parts, " ")
}

// cell keeps table cells on one line.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
