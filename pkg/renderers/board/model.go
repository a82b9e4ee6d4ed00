package board

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

const helpText = "←/→ form · ↑/↓ move · space pick · enter drop · esc cancel · a add form · x delete form · t toggle active · q quit"

// Option configures a Model.
type Option func(*Model)

// WithTitle overrides the board heading.
func WithTitle(title string) Option {
	return func(m *Model) {
		if strings.TrimSpace(title) != "" {
			m.title = title
		}
	}
}

// WithStyles replaces the default styles.
func WithStyles(styles Styles) Option {
	return func(m *Model) {
		m.styles = styles
	}
}

// WithSessionOptions forwards options to the editing session.
func WithSessionOptions(options ...builder.Option) Option {
	return func(m *Model) {
		m.sessionOptions = append(m.sessionOptions, options...)
	}
}

// WithContext sets the context passed to session commands.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// Model is a bubbletea model that arranges the blocks of each form. Picking
// a block starts a drag; moving the cursor hovers and reorders as a preview;
// enter drops and esc restores the order from before the pick.
type Model struct {
	ctx            context.Context
	session        *builder.Session
	sessionOptions []builder.Option
	styles         Styles
	title          string
	cursor         int
	pickedAt       int
	notice         string
	quitting       bool
}

var _ tea.Model = (*Model)(nil)

// NewModel builds a board over a copy of set.
func NewModel(set model.FormSet, options ...Option) *Model {
	m := &Model{
		ctx:    context.Background(),
		styles: DefaultStyles(),
		title:  "Custom Survey",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}

	notifier := builder.NotifierFunc(func(_ context.Context, message string) {
		m.notice = message
	})
	sessionOptions := []builder.Option{builder.WithNotifier(notifier)}
	if len(set.Forms) > 0 {
		sessionOptions = append(sessionOptions, builder.WithInitialState(set))
	}
	m.session = builder.NewSession(append(sessionOptions, m.sessionOptions...)...)
	return m
}

// Snapshot returns the current form set.
func (m *Model) Snapshot() model.FormSet {
	return m.session.Snapshot()
}

// Cursor returns the highlighted block index within the selected form.
func (m *Model) Cursor() int {
	return m.cursor
}

// Notice returns the last user-facing message.
func (m *Model) Notice() string {
	return m.notice
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.notice = ""

	switch key.String() {
	case "ctrl+c", "q":
		if m.session.Drag().Active() {
			m.dispatch(builder.CancelDrag())
		}
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "left", "h":
		m.switchForm(-1)
	case "right", "l":
		m.switchForm(1)
	case " ", "space":
		m.pick()
	case "enter":
		if m.session.Drag().Active() {
			m.dispatch(builder.Drop())
		}
	case "esc":
		m.cancel()
	case "a":
		if !m.session.Drag().Active() && m.dispatch(builder.AddForm()) {
			m.cursor = 0
		}
	case "t":
		m.toggleActive()
	case "x":
		if !m.session.Drag().Active() && m.session.FormSet().Len() > 0 {
			if m.dispatch(builder.DeleteForm(m.session.FormSet().Active())) {
				m.cursor = 0
			}
		}
	}
	return m, nil
}

func (m *Model) dispatch(cmd builder.Command) bool {
	return m.session.Dispatch(m.ctx, cmd) == nil
}

func (m *Model) activeForm() (model.Form, int, bool) {
	set := m.session.FormSet()
	index := set.Active()
	form, ok := set.Form(index)
	return form, index, ok
}

func (m *Model) moveCursor(delta int) {
	form, formIndex, ok := m.activeForm()
	if !ok || len(form.Blocks) == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= len(form.Blocks) {
		return
	}
	m.cursor = next
	if !m.session.Drag().Active() {
		return
	}
	m.dispatch(builder.Hover(builder.DropTarget{
		FormIndex: formIndex,
		Index:     next,
		Type:      form.Blocks[next].Type,
	}))
}

func (m *Model) switchForm(delta int) {
	if m.session.Drag().Active() {
		return
	}
	set := m.session.FormSet()
	next := set.Active() + delta
	if next < 0 || next >= set.Len() {
		return
	}
	if m.dispatch(builder.SelectForm(next)) {
		m.cursor = 0
	}
}

func (m *Model) pick() {
	if m.session.Drag().Active() {
		return
	}
	form, formIndex, ok := m.activeForm()
	if !ok || m.cursor >= len(form.Blocks) {
		return
	}
	if form.Blocks[m.cursor].Type == model.BlockTypeFormname {
		m.notice = "Formname blocks stay in place."
		return
	}
	if m.dispatch(builder.BeginDrag(formIndex, m.cursor)) {
		m.pickedAt = m.cursor
	}
}

func (m *Model) toggleActive() {
	if m.session.Drag().Active() {
		return
	}
	form, formIndex, ok := m.activeForm()
	if !ok {
		return
	}
	cmd := builder.ActivateForm(formIndex)
	if form.IsActive {
		cmd = builder.DeactivateForm(formIndex)
	}
	if !m.dispatch(cmd) {
		m.notice = "Activation flags are disabled."
	}
}

func (m *Model) cancel() {
	if !m.session.Drag().Active() {
		return
	}
	if m.dispatch(builder.CancelDrag()) {
		m.cursor = m.pickedAt
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteByte('\n')
	b.WriteString(renderForms(m.Snapshot(), m.styles, m.cursorState()))
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(helpText))
	return b.String()
}

type cursorState struct {
	form  int
	index int
	// dragged is the index of the block being dragged, -1 when idle
	dragged int
}

func (m *Model) cursorState() *cursorState {
	set := m.session.FormSet()
	if set.Len() == 0 {
		return nil
	}
	state := &cursorState{form: set.Active(), index: m.cursor, dragged: -1}
	if item, ok := m.session.Drag().Item(); ok {
		state.dragged = item.Index
	}
	return state
}

func renderForms(set model.FormSet, styles Styles, cursor *cursorState) string {
	if len(set.Forms) == 0 {
		return styles.Help.Render("No forms yet. Press a to add one.")
	}
	cards := make([]string, 0, len(set.Forms))
	for formIndex, form := range set.Forms {
		var lines []string
		heading := fmt.Sprintf("Form %d", formIndex+1)
		if form.IsActive {
			heading += " (active)"
		}
		lines = append(lines, heading)
		if form.Hoisted != nil {
			lines = append(lines, styles.Formname.Render(form.Hoisted.Name))
		}
		for index, block := range form.Blocks {
			inForm := cursor != nil && cursor.form == formIndex
			focused := inForm && cursor.index == index
			dragged := inForm && cursor.dragged == index
			lines = append(lines, renderBlock(block, styles, focused, dragged))
		}
		if form.HasBlockList() && len(form.Blocks) == 0 {
			lines = append(lines, styles.Help.Render("(no blocks)"))
		}

		style := styles.Form
		if formIndex == set.Active {
			style = styles.SelectedForm
		}
		cards = append(cards, style.Render(strings.Join(lines, "\n")))
	}
	return strings.Join(cards, "\n")
}

func renderBlock(block model.Block, styles Styles, focused, dragging bool) string {
	prefix := "  "
	if focused {
		prefix = "> "
	}
	if dragging {
		prefix = "≡ "
	}

	label := block.Name + " [" + block.Type.Label() + "]"
	if block.Type.UsesButtons() && len(block.ButtonNames) > 0 {
		label += " " + strings.Join(block.ButtonNames, " / ")
	}
	if block.Type.UsesOptions() && len(block.Options) > 0 {
		label += " {" + strings.Join(block.Options, ", ") + "}"
	}

	style := styles.Block
	switch {
	case dragging:
		style = styles.Dragging
	case focused:
		style = styles.Cursor
	case block.Type == model.BlockTypeFormname:
		style = styles.Formname
	}
	line := style.Render(prefix + label)
	if block.IsRequired {
		line += styles.Required.Render(" *")
	}
	return line
}
