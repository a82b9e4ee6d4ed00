// Package formbuilder is the top-level entry point for authoring surveys:
// editing sessions, the renderers that draw them and the orchestrator that
// publishes finished forms.
package formbuilder

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/config"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/board"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

// FormSet aliases model.FormSet for callers that only import the root
// package.
type FormSet = model.FormSet

// Form aliases model.Form.
type Form = model.Form

// Block aliases model.Block.
type Block = model.Block

// RenderOptions describes per-request overrides such as the page title,
// editor state, notices and theme.
type RenderOptions = render.RenderOptions

// Config aliases config.Config.
type Config = config.Config

// NewSession starts an editing session.
func NewSession(options ...builder.Option) *builder.Session {
	return builder.NewSession(options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// LoadConfig reads a JSON or YAML configuration file.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// RegistryOptions configures the built-in renderers registered by
// NewRegistry.
type RegistryOptions struct {
	Vanilla []vanilla.Option
	TUI     []tui.Option
	Board   []board.Styles
}

// NewRegistry returns a registry holding the vanilla HTML, static board and
// interactive TUI renderers. "html" and "text" are registered as aliases of
// vanilla and board.
func NewRegistry(opts RegistryOptions) (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New(opts.Vanilla...)
	if err != nil {
		return nil, fmt.Errorf("formbuilder: vanilla renderer: %w", err)
	}
	if err := registry.Register(html, "html"); err != nil {
		return nil, err
	}
	if err := registry.Register(board.New(opts.Board...), "text"); err != nil {
		return nil, err
	}

	prompts, err := tui.New(opts.TUI...)
	if err != nil {
		return nil, fmt.Errorf("formbuilder: tui renderer: %w", err)
	}
	if err := registry.Register(prompts); err != nil {
		return nil, err
	}
	return registry, nil
}

// PreviewHTML renders set with the vanilla renderer. It is the simplest entry
// point for callers that just want an HTML page.
func PreviewHTML(ctx context.Context, set FormSet, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Preview(ctx, orchestrator.Request{
		Set:           set,
		Renderer:      "vanilla",
		RenderOptions: opts,
	})
}

// EmbeddedTemplates exposes the built-in vanilla templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the embedded stylesheet so applications can serve it.
//
// Typical mount:
//
//	mux.Handle("/formbuilder/",
//	  http.StripPrefix("/formbuilder/",
//	    http.FileServerFS(formbuilder.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
