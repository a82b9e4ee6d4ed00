package tui

import (
	"context"
	"errors"
	"io"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Renderer implements render.Renderer as an interactive terminal editor.
// Rendering seeds an editing session from the given set, runs the prompt
// loop until the user finishes, and serializes the resulting set.
type Renderer struct {
	driver         PromptDriver
	outputFormat   OutputFormat
	infoOut        io.Writer
	sessionOptions []builder.Option
	theme          Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatPrettyText:
	default:
		return nil, ErrUnknownFormat
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.infoOut)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatYAML:
		return "application/yaml"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs the editor over set and returns the encoded result.
func (r *Renderer) Render(ctx context.Context, set model.FormSet, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session := r.NewSession(set)
	for _, notice := range render.MergeNotices(opts.Notices) {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+notice); err != nil {
			return nil, err
		}
	}

	final, err := r.Edit(ctx, session, opts.HeadingOrDefault())
	if err != nil {
		return nil, err
	}
	return Encode(final, r.outputFormat)
}

// NewSession builds an editing session that reports rejected input through
// the prompt driver. An empty set starts a blank session.
func (r *Renderer) NewSession(set model.FormSet) *builder.Session {
	notifier := builder.NotifierFunc(func(ctx context.Context, message string) {
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
	})
	options := []builder.Option{builder.WithNotifier(notifier)}
	if len(set.Forms) > 0 {
		options = append(options, builder.WithInitialState(set))
	}
	options = append(options, r.sessionOptions...)
	return builder.NewSession(options...)
}

// Edit runs the prompt loop over session until the user picks "Finish".
func (r *Renderer) Edit(ctx context.Context, session *builder.Session, title string) (model.FormSet, error) {
	if r.driver == nil {
		return model.FormSet{}, errors.New("tui: prompt driver is nil")
	}
	loop := &editLoop{
		driver:  r.driver,
		session: session,
		theme:   r.theme,
		title:   title,
	}
	if err := loop.run(ctx); err != nil {
		return model.FormSet{}, err
	}
	return session.Snapshot(), nil
}
