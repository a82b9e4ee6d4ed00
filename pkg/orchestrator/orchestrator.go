package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

const defaultRendererName = "vanilla"

var (
	// ErrNothingToPublish is returned when no form in the set has blocks.
	ErrNothingToPublish = errors.New("orchestrator: no form has blocks to publish")
	// ErrNoLookup is returned by ValidateResponse when the submitter cannot
	// look definitions up.
	ErrNoLookup = errors.New("orchestrator: submitter does not support lookups")
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves theme/variant choices ahead of rendering.
func WithThemeSelector(selector render.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithDefaultTheme sets the theme and variant used when a request names none.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// WithSubmitter sets the forms storage collaborator used by Publish.
func WithSubmitter(submitter storage.Submitter) Option {
	return func(o *Orchestrator) {
		o.submitter = submitter
	}
}

// WithTransformer registers a Transformer that runs on a copy of the set
// before rendering and publishing.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger sets the logger used to trace publishing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator renders previews of a form set and publishes its forms. It
// applies sensible defaults (vanilla renderer, in-memory storage) while
// remaining open to dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	themeSelector   render.ThemeSelector
	defaultTheme    string
	defaultVariant  string
	submitter       storage.Submitter
	transformer     Transformer
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a form set to preview or publish.
type Request struct {
	Set model.FormSet

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	ThemeName    string
	ThemeVariant string

	// OnlyActive publishes only forms flagged with IsActive.
	OnlyActive bool

	RenderOptions render.RenderOptions
}

// Published pairs a stored definition with its form index and id.
type Published struct {
	FormIndex  int
	ID         string
	Definition storage.Definition
}

// Result is the outcome of Publish.
type Result struct {
	Published   []Published
	Skipped     []int
	Preview     []byte
	ContentType string
}

// Preview renders the set with the resolved renderer and theme.
func (o *Orchestrator) Preview(ctx context.Context, req Request) ([]byte, error) {
	set, renderer, err := o.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.render(ctx, renderer, set, req)
}

// Publish turns every form with blocks into a definition, submits it and
// renders a preview of the published set. Pseudo-forms and empty forms are
// reported in Result.Skipped.
func (o *Orchestrator) Publish(ctx context.Context, req Request) (Result, error) {
	set, renderer, err := o.prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}
	if o.submitter == nil {
		return Result{}, errors.New("orchestrator: submitter is nil")
	}

	var result Result
	for index, form := range set.Forms {
		if !publishable(form, req.OnlyActive) {
			result.Skipped = append(result.Skipped, index)
			o.logger.DebugContext(ctx, "skipping form", "form", index, "pseudo", !form.HasBlockList())
			continue
		}
		def, err := storage.NewDefinition(form)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: form %d: %w", index, err)
		}
		id, err := o.submitter.SubmitForm(ctx, def)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: submit form %d: %w", index, err)
		}
		o.logger.InfoContext(ctx, "form published", "form", index, "id", id, "blocks", len(def.Blocks))
		result.Published = append(result.Published, Published{FormIndex: index, ID: id, Definition: def})
	}
	if len(result.Published) == 0 {
		return Result{}, ErrNothingToPublish
	}

	preview, err := o.render(ctx, renderer, set, req)
	if err != nil {
		return Result{}, err
	}
	result.Preview = preview
	result.ContentType = renderer.ContentType()
	return result, nil
}

// ValidateResponse checks a respondent payload against the published form
// stored under id.
func (o *Orchestrator) ValidateResponse(ctx context.Context, id string, payload map[string]any) (validation.SchemaValidationResult, error) {
	getter, ok := o.submitter.(storage.Getter)
	if !ok {
		return validation.SchemaValidationResult{}, ErrNoLookup
	}
	record, err := getter.Get(ctx, id)
	if err != nil {
		return validation.SchemaValidationResult{}, fmt.Errorf("orchestrator: %w", err)
	}
	result, err := validation.ValidateSubmission(ctx, record.Definition.Form(), payload)
	if err != nil {
		return validation.SchemaValidationResult{}, fmt.Errorf("orchestrator: %w", err)
	}
	o.logger.DebugContext(ctx, "response validated", "id", id, "valid", result.Valid, "issues", len(result.Issues))
	return result, nil
}

func publishable(form model.Form, onlyActive bool) bool {
	if !form.HasBlockList() || len(form.Blocks) == 0 {
		return false
	}
	return !onlyActive || form.IsActive
}

func (o *Orchestrator) prepare(ctx context.Context, req Request) (model.FormSet, render.Renderer, error) {
	if ctx == nil {
		return model.FormSet{}, nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormSet{}, nil, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormSet{}, nil, err
	}

	set := req.Set.Clone()
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &set); err != nil {
			return model.FormSet{}, nil, fmt.Errorf("orchestrator: transform form set: %w", err)
		}
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return model.FormSet{}, nil, err
	}
	return set, renderer, nil
}

func (o *Orchestrator) render(ctx context.Context, renderer render.Renderer, set model.FormSet, req Request) ([]byte, error) {
	opts := req.RenderOptions
	if opts.Theme == nil {
		themeCfg, err := o.resolveTheme(req)
		if err != nil {
			return nil, err
		}
		opts.Theme = themeCfg
	}
	output, err := renderer.Render(ctx, set, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*render.ThemeConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	name, variant := req.ThemeName, req.ThemeVariant
	if name == "" {
		name = o.defaultTheme
	}
	if variant == "" {
		variant = o.defaultVariant
	}
	cfg, err := render.ResolveTheme(o.themeSelector, name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return cfg, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.submitter == nil {
		o.submitter = storage.NewMemoryStore()
	}
}
