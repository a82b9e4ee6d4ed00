package render

import (
	"slices"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/builder"
)

// DefaultTitle is the page heading used when RenderOptions.Title is empty.
const DefaultTitle = "Custom Survey"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the form set.
type RenderOptions struct {
	// Title overrides the page heading.
	Title string
	// Editor carries the pending block input so renderers can show the
	// editor controls next to the preview. Nil hides the editor panel.
	Editor *builder.EditorState
	// Notices are user-facing messages raised by the last interaction.
	Notices []string
	// Theme carries resolved theme tokens, partial overrides and asset URLs.
	Theme *ThemeConfig
}

// HeadingOrDefault returns the configured title or DefaultTitle.
func (o RenderOptions) HeadingOrDefault() string {
	if o.Title != "" {
		return o.Title
	}
	return DefaultTitle
}

// MergeNotices joins notice lists for display. Blank entries are dropped and
// a message repeated by consecutive commands is shown once.
func MergeNotices(existing []string, extras ...string) []string {
	var out []string
	for _, notice := range append(slices.Clone(existing), extras...) {
		notice = strings.TrimSpace(notice)
		if notice == "" || slices.Contains(out, notice) {
			continue
		}
		out = append(out, notice)
	}
	return out
}
