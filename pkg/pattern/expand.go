package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholder matches "<name>" with an optional leading backslash escape.
var placeholder = regexp.MustCompile(`(\\)?<([^<>]+)>`)

// Expand replaces every "<name>" in format with the registered source for name.
// "\<name>" becomes the literal "<name>" and unknown names are kept verbatim.
// Substituted text is not scanned again.
func (r *Registry) Expand(format string) string {
	matches := placeholder.FindAllStringSubmatchIndex(format, -1)
	if len(matches) == 0 {
		return format
	}

	var b strings.Builder
	b.Grow(len(format))
	last := 0
	for _, m := range matches {
		b.WriteString(format[last:m[0]])
		last = m[1]

		name := format[m[4]:m[5]]
		if m[2] >= 0 {
			b.WriteString("<" + name + ">")
			continue
		}
		if src, ok := r.Lookup(name); ok {
			b.WriteString(src)
			continue
		}
		b.WriteString(format[m[0]:m[1]])
	}
	b.WriteString(format[last:])
	return b.String()
}

// Escape returns a format that Expand turns back into src: every "<name>"
// gets a leading backslash, so no placeholder is substituted.
func Escape(src string) string {
	return placeholder.ReplaceAllStringFunc(src, func(m string) string {
		return `\` + m
	})
}

// Compile expands format and compiles the result.
// Compiled expressions are stateless, so the result can be reused freely.
func (r *Registry) Compile(format string) (*regexp.Regexp, error) {
	expanded := r.Expand(format)
	re, err := regexp.Compile(expanded)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", format, err)
	}
	return re, nil
}

// MustCompile is like Compile but panics if the expanded text is invalid.
// It is meant for schemas declared as package-level variables.
func (r *Registry) MustCompile(format string) *regexp.Regexp {
	re, err := r.Compile(format)
	if err != nil {
		panic(err)
	}
	return re
}
