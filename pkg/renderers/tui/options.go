package tui

import (
	"io"

	"github.com/goliatone/go-formbuilder/pkg/builder"
)

// OutputFormat controls how the finished form set is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits indented JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits YAML.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatPrettyText emits a human-friendly outline.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional message prefixes applied by the editor loop.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithInfoWriter redirects the default driver's informational output.
func WithInfoWriter(w io.Writer) Option {
	return func(r *Renderer) {
		r.infoOut = w
	}
}

// WithSessionOptions forwards options to every editing session.
func WithSessionOptions(options ...builder.Option) Option {
	return func(r *Renderer) {
		r.sessionOptions = append(r.sessionOptions, options...)
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
