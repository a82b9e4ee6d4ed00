package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

const (
	pageTemplate   = "templates/page.tmpl"
	editorTemplate = "templates/editor.tmpl"

	// AssetStylesheet is the theme asset key that replaces the inlined
	// stylesheet with a link.
	AssetStylesheet = "vanilla.stylesheet"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	widgets          *widgets.Registry
	stylesheetURL    string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithWidgetRegistry replaces the block to widget resolver.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithStylesheetURL links an external stylesheet instead of inlining the
// embedded one.
func WithStylesheetURL(url string) Option {
	return func(cfg *config) {
		cfg.stylesheetURL = strings.TrimSpace(url)
	}
}

// WithInlineStyles toggles inlining of the embedded stylesheet.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// Renderer produces an HTML preview of the form set with one block card per
// form and, when editor state is supplied, the block editor controls.
type Renderer struct {
	templates     rendertemplate.TemplateRenderer
	widgets       *widgets.Registry
	stylesheetURL string
	stylesheet    string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineStyles: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	out := &Renderer{
		templates:     renderer,
		widgets:       cfg.widgets,
		stylesheetURL: cfg.stylesheetURL,
	}
	if cfg.inlineStyles {
		out.stylesheet = defaultStylesheet()
	}
	return out, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the full preview page.
func (r *Renderer) Render(ctx context.Context, set model.FormSet, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("vanilla renderer: template renderer is nil")
	}

	forms := make([]map[string]any, 0, len(set.Forms))
	for formIndex, form := range set.Forms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blocks, err := r.renderBlocks(formIndex, form, options.Theme)
		if err != nil {
			return nil, err
		}
		hoisted := ""
		if form.Hoisted != nil {
			hoisted = sanitizeText(form.Hoisted.Name)
		}
		forms = append(forms, map[string]any{
			"index":    formIndex,
			"number":   formIndex + 1,
			"selected": formIndex == set.Active,
			"active":   form.IsActive,
			"pseudo":   !form.HasBlockList(),
			"hoisted":  hoisted,
			"blocks":   blocks,
		})
	}

	data := map[string]any{
		"title":         options.HeadingOrDefault(),
		"notices":       render.MergeNotices(options.Notices),
		"forms":         forms,
		"stylesheet":    r.stylesheet,
		"stylesheetURL": r.stylesheetURL,
	}
	if themeCfg := options.Theme; themeCfg != nil {
		data["theme"] = themeCfg.Theme
		data["variant"] = themeCfg.Variant
		data["themeStyle"] = themeCfg.CSSVarsStyle()
		if themeCfg.AssetURL != nil {
			if url := themeCfg.AssetURL(AssetStylesheet); url != "" {
				data["stylesheetURL"] = url
			}
		}
	}
	if options.Editor != nil {
		editor, err := r.templates.RenderTemplate(editorTemplate, map[string]any{
			"editor": editorView(*options.Editor),
		})
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: render editor: %w", err)
		}
		data["editor"] = editor
	}

	result, err := r.templates.RenderTemplate(pageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderBlocks(formIndex int, form model.Form, themeCfg *render.ThemeConfig) ([]string, error) {
	out := make([]string, 0, len(form.Blocks))
	for index, block := range form.Blocks {
		widget, ok := r.widgets.Resolve(block)
		if !ok {
			widget = widgets.WidgetInput
		}
		partial := themeCfg.Partial(widget)
		if partial == "" {
			partial = themeCfg.Partial(widgets.WidgetInput)
		}
		html, err := r.templates.RenderTemplate(partial, map[string]any{
			"block": blockView(formIndex, index, block),
		})
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: render block %d of form %d: %w", index, formIndex, err)
		}
		out = append(out, html)
	}
	return out, nil
}

func blockView(formIndex, index int, block model.Block) map[string]any {
	group := "button_" + strconv.Itoa(index)
	buttons := make([]map[string]any, 0, block.NumButtons)
	for n := 0; n < block.NumButtons; n++ {
		label := ""
		if n < len(block.ButtonNames) {
			label = block.ButtonNames[n]
		}
		buttons = append(buttons, map[string]any{
			"id":    group + "_" + strconv.Itoa(n),
			"label": sanitizeText(label),
		})
	}

	return map[string]any{
		"formIndex":   formIndex,
		"index":       index,
		"name":        sanitizeText(block.Name),
		"type":        string(block.Type),
		"isRequired":  block.IsRequired,
		"classes":     blockClasses(block.Type),
		"placeholder": "Enter " + string(block.Type) + " here",
		"group":       group,
		"buttons":     buttons,
		"options":     sanitizeAll(block.Options),
	}
}

func blockClasses(t model.BlockType) string {
	classes := []string{"draggable-block"}
	switch t {
	case model.BlockTypeButton:
		classes = append(classes, "button-block")
	case model.BlockTypeFormname:
		classes = append(classes, "formname-block")
	case model.BlockTypeCheckbox:
		classes = append(classes, "checkbox-block")
	case model.BlockTypeRadio:
		classes = append(classes, "radio-block")
	case model.BlockTypeDropdown:
		classes = append(classes, "dropdown-block")
	}
	return strings.Join(classes, " ")
}

func editorView(state builder.EditorState) map[string]any {
	types := make([]map[string]any, 0, len(model.BlockTypes()))
	for _, t := range model.BlockTypes() {
		types = append(types, map[string]any{
			"value":    string(t),
			"label":    t.Label(),
			"selected": t == state.Type,
		})
	}
	return map[string]any{
		"name":         sanitizeText(state.Name),
		"types":        types,
		"isRequired":   state.IsRequired,
		"showRequired": state.Type.HasRequiredFlag(),
		"showButtons":  state.Type.UsesButtons(),
		"showOptions":  state.Type.UsesOptions(),
		"numButtons":   state.NumButtons,
		"buttonNames":  sanitizeAll(state.ButtonNames),
		"options":      sanitizeAll(state.Options),
		"newOption":    sanitizeText(state.NewOption),
	}
}
