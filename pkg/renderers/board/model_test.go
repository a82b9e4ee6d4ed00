package board

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

func seed() model.FormSet {
	return model.FormSet{Active: 0, Forms: []model.Form{
		{Blocks: []model.Block{
			{Name: "Title", Type: model.BlockTypeFormname},
			{Name: "A", Type: model.BlockTypeText},
			{Name: "B", Type: model.BlockTypeEmail, IsRequired: true},
			{Name: "C", Type: model.BlockTypeDate},
		}},
		{Blocks: []model.Block{{Name: "Other", Type: model.BlockTypeText}}},
	}}
}

func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, key := range keys {
		_, cmd = m.Update(key)
	}
	return cmd
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func blockNames(set model.FormSet, form int) []string {
	var out []string
	for _, block := range set.Forms[form].Blocks {
		out = append(out, block.Name)
	}
	return out
}

func TestModel_PickHoverDrop(t *testing.T) {
	m := NewModel(seed())

	press(m, keyDown, keySpace, keyDown, keyDown, keyEnter)

	if diff := cmp.Diff([]string{"Title", "B", "C", "A"}, blockNames(m.Snapshot(), 0)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if m.Cursor() != 3 {
		t.Fatalf("cursor should follow the dropped block, got %d", m.Cursor())
	}
}

func TestModel_EscRestoresOrder(t *testing.T) {
	m := NewModel(seed())

	press(m, keyDown, keyDown, keyDown, keySpace, keyUp, keyUp)
	if diff := cmp.Diff([]string{"Title", "C", "A", "B"}, blockNames(m.Snapshot(), 0)); diff != "" {
		t.Fatalf("preview mismatch (-want +got):\n%s", diff)
	}

	press(m, keyEsc)
	if diff := cmp.Diff([]string{"Title", "A", "B", "C"}, blockNames(m.Snapshot(), 0)); diff != "" {
		t.Fatalf("cancel mismatch (-want +got):\n%s", diff)
	}
	if m.Cursor() != 3 {
		t.Fatalf("cursor should return to the picked block, got %d", m.Cursor())
	}
}

func TestModel_FormnameIsNotDraggable(t *testing.T) {
	m := NewModel(seed())

	press(m, keySpace, keyDown)
	if m.Notice() != "" {
		t.Fatalf("notice should clear on the next key, got %q", m.Notice())
	}
	press(m, keyUp, keySpace)
	if m.Notice() == "" {
		t.Fatalf("expected a notice when picking a formname block")
	}
	if diff := cmp.Diff(seed(), m.Snapshot()); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
}

func TestModel_HoverOverFormnameKeepsOrder(t *testing.T) {
	m := NewModel(seed())

	// dragging A upwards lands on the formname slot which refuses the drop
	press(m, keyDown, keySpace, keyUp, keyEnter)
	if diff := cmp.Diff([]string{"Title", "A", "B", "C"}, blockNames(m.Snapshot(), 0)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_FormNavigationAndEditing(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	m := NewModel(seed(), WithSessionOptions(builder.WithLogger(logger)))

	press(m, keyRight)
	if m.Snapshot().Active != 1 {
		t.Fatalf("expected form 2 selected, got %d", m.Snapshot().Active)
	}
	press(m, keyRight)
	if m.Snapshot().Active != 1 {
		t.Fatalf("navigation past the last form must be ignored")
	}

	press(m, runes('a'))
	if got := m.Snapshot(); len(got.Forms) != 3 || got.Active != 2 {
		t.Fatalf("add form failed: %+v", got)
	}
	press(m, runes('x'), runes('x'))
	if got := m.Snapshot(); len(got.Forms) != 1 || got.Active != 0 {
		t.Fatalf("delete form failed: %+v", got)
	}
	if logs.Len() != 0 {
		t.Fatalf("unexpected error logs: %s", logs.String())
	}
}

func TestModel_ToggleActive(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	disabled := NewModel(seed(), WithSessionOptions(builder.WithLogger(logger)))
	press(disabled, runes('t'))
	if disabled.Snapshot().Forms[0].IsActive || disabled.Notice() != "Activation flags are disabled." {
		t.Fatalf("toggle must be rejected without activation flags: %q", disabled.Notice())
	}

	m := NewModel(seed(), WithSessionOptions(
		builder.WithLogger(logger),
		builder.WithFormSetOptions(builder.WithActivationFlags(true)),
	))
	press(m, runes('t'))
	if !m.Snapshot().Forms[0].IsActive {
		t.Fatalf("expected form 1 active")
	}
	if !strings.Contains(m.View(), "Form 1 (active)") {
		t.Fatalf("view should mark the active form:\n%s", m.View())
	}
	press(m, runes('t'))
	if m.Snapshot().Forms[0].IsActive {
		t.Fatalf("expected form 1 inactive after second toggle")
	}
}

func TestModel_QuitCancelsDrag(t *testing.T) {
	m := NewModel(seed())

	cmd := press(m, keyDown, keySpace, keyDown, runes('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if diff := cmp.Diff(seed(), m.Snapshot()); diff != "" {
		t.Fatalf("quit should abandon the drag (-want +got):\n%s", diff)
	}
	if m.View() != "" {
		t.Fatalf("view should be empty after quitting")
	}
}

func TestModel_View(t *testing.T) {
	m := NewModel(seed(), WithTitle("Arrange"))
	press(m, keyDown, keySpace)

	view := m.View()
	for _, fragment := range []string{"Arrange", "Form 1", "Form 2", "≡ A [Text]", "B [Email]", " *", "space pick"} {
		if !strings.Contains(view, fragment) {
			t.Fatalf("view missing %q\n%s", fragment, view)
		}
	}
}

func TestRenderer_Render(t *testing.T) {
	hoisted := model.Block{Name: "Heading", Type: model.BlockTypeFormname}
	set := model.FormSet{Active: 0, Forms: []model.Form{
		{Hoisted: &hoisted},
		model.NewForm(),
	}}

	out, err := New().Render(context.Background(), set, render.RenderOptions{Notices: []string{"saved"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)
	for _, fragment := range []string{"Custom Survey", "Heading", "(no blocks)", "saved"} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("output missing %q\n%s", fragment, text)
		}
	}
}
