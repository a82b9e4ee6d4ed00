package board

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Renderer draws a static board of the form set. It is the non-interactive
// counterpart of Run, suitable for previews in pipelines and logs.
type Renderer struct {
	styles Styles
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a board renderer.
func New(styles ...Styles) *Renderer {
	r := &Renderer{styles: DefaultStyles()}
	if len(styles) > 0 {
		r.styles = styles[0]
	}
	return r
}

func (r *Renderer) Name() string {
	return "board"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render draws every form as a card with its blocks in order.
func (r *Renderer) Render(ctx context.Context, set model.FormSet, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := r.styles.Title.Render(options.HeadingOrDefault()) + "\n" + renderForms(set, r.styles, nil)
	for _, notice := range render.MergeNotices(options.Notices) {
		out += "\n" + r.styles.Notice.Render(notice)
	}
	return []byte(out + "\n"), nil
}

// Run starts an interactive board over set and returns the arrangement the
// user leaves it in.
func Run(ctx context.Context, set model.FormSet, options []Option, programOptions ...tea.ProgramOption) (model.FormSet, error) {
	if ctx == nil {
		return model.FormSet{}, errors.New("board: context is required")
	}
	options = append([]Option{WithContext(ctx)}, options...)
	m := NewModel(set, options...)

	programOptions = append([]tea.ProgramOption{tea.WithContext(ctx)}, programOptions...)
	final, err := tea.NewProgram(m, programOptions...).Run()
	if err != nil {
		return model.FormSet{}, fmt.Errorf("board: run program: %w", err)
	}
	finished, ok := final.(*Model)
	if !ok {
		return model.FormSet{}, fmt.Errorf("board: unexpected model %T", final)
	}
	return finished.Snapshot(), nil
}
