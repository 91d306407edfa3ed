package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Interactive terminals get an automatically detected light or dark style;
// anything else gets the plain "notty" style.
func NewRenderer(interactive bool) func(string) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if interactive {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
