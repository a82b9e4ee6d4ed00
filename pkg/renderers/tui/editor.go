package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Menu entries in display order.
const (
	ActionAddBlock   = "Add Block"
	ActionAddForm    = "Add Form"
	ActionSelectForm = "Select Form"
	ActionMoveBlock  = "Move Block"
	ActionDeleteForm = "Delete Form"
	ActionShowForms  = "Show Forms"
	ActionFinish     = "Finish"
)

var menu = []string{
	ActionAddBlock,
	ActionAddForm,
	ActionSelectForm,
	ActionMoveBlock,
	ActionDeleteForm,
	ActionShowForms,
	ActionFinish,
}

type editLoop struct {
	driver  PromptDriver
	session *builder.Session
	theme   Theme
	title   string
}

func (l *editLoop) run(ctx context.Context) error {
	for {
		choice, err := l.driver.Select(ctx, SelectConfig{
			Message: l.menuMessage(),
			Options: menu,
		})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(menu) {
			return fmt.Errorf("tui: invalid menu choice %d", choice)
		}

		switch menu[choice] {
		case ActionAddBlock:
			err = l.addBlock(ctx)
		case ActionAddForm:
			if l.dispatch(ctx, builder.AddForm()) {
				err = l.info(ctx, fmt.Sprintf("Form %d added.", l.session.FormSet().Len()))
			}
		case ActionSelectForm:
			err = l.selectForm(ctx)
		case ActionMoveBlock:
			err = l.moveBlock(ctx)
		case ActionDeleteForm:
			err = l.deleteForm(ctx)
		case ActionShowForms:
			err = l.driver.Info(ctx, strings.TrimRight(Pretty(l.session.Snapshot()), "\n"))
		case ActionFinish:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (l *editLoop) menuMessage() string {
	set := l.session.FormSet()
	if set.Len() == 0 {
		return l.title + " (no forms)"
	}
	return fmt.Sprintf("%s (form %d of %d)", l.title, set.Active()+1, set.Len())
}

// dispatch applies cmd. Rejected input has already been shown through the
// session notifier, so the loop only needs to know whether it applied.
func (l *editLoop) dispatch(ctx context.Context, cmd builder.Command) bool {
	return l.session.Dispatch(ctx, cmd) == nil
}

func (l *editLoop) info(ctx context.Context, msg string) error {
	return l.driver.Info(ctx, l.theme.InfoPrefix+msg)
}

func (l *editLoop) addBlock(ctx context.Context) error {
	name, err := l.driver.Input(ctx, InputConfig{
		Message: "Name for the Field:",
		Default: l.session.Editor().Snapshot().Name,
	})
	if err != nil {
		return err
	}
	l.dispatch(ctx, builder.SetField(builder.FieldName, name))

	types := model.BlockTypes()
	labels := make([]string, len(types))
	current := 0
	for i, t := range types {
		labels[i] = t.Label()
		if t == l.session.Editor().Snapshot().Type {
			current = i
		}
	}
	choice, err := l.driver.Select(ctx, SelectConfig{
		Message:      "Input Type:",
		Options:      labels,
		DefaultIndex: current,
	})
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(types) {
		return fmt.Errorf("tui: invalid block type choice %d", choice)
	}
	blockType := types[choice]
	l.dispatch(ctx, builder.SetField(builder.FieldType, string(blockType)))

	if blockType.UsesButtons() {
		if err := l.promptButtons(ctx); err != nil {
			return err
		}
	}
	if blockType.UsesOptions() {
		if err := l.promptOptions(ctx); err != nil {
			return err
		}
	}
	if blockType.HasRequiredFlag() {
		required, err := l.driver.Confirm(ctx, ConfirmConfig{Message: "Is Required?"})
		if err != nil {
			return err
		}
		l.dispatch(ctx, builder.SetField(builder.FieldRequired, strconv.FormatBool(required)))
	}

	if l.dispatch(ctx, builder.AddBlock()) {
		return l.info(ctx, fmt.Sprintf("%s block added.", blockType.Label()))
	}
	return nil
}

func (l *editLoop) promptButtons(ctx context.Context) error {
	for {
		count, err := l.driver.Input(ctx, InputConfig{
			Message: "Number of Buttons:",
			Default: strconv.Itoa(l.session.Editor().Snapshot().NumButtons),
		})
		if err != nil {
			return err
		}
		if l.dispatch(ctx, builder.SetField(builder.FieldNumButtons, count)) {
			break
		}
	}

	names := l.session.Editor().Snapshot().ButtonNames
	for i := range names {
		name, err := l.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("Button %d Name:", i+1),
			Default: names[i],
		})
		if err != nil {
			return err
		}
		l.dispatch(ctx, builder.SetButtonName(i, name))
	}
	return nil
}

func (l *editLoop) promptOptions(ctx context.Context) error {
	for {
		option, err := l.driver.Input(ctx, InputConfig{
			Message: "Add Option Name:",
			Help:    "Leave blank to stop adding options.",
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(option) == "" {
			break
		}
		l.dispatch(ctx, builder.SetField(builder.FieldNewOption, option))
		l.dispatch(ctx, builder.AddOption(""))
	}

	for {
		options := l.session.Editor().Snapshot().Options
		if len(options) == 0 {
			return nil
		}
		remove, err := l.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Remove an option? (%s)", strings.Join(options, ", ")),
		})
		if err != nil || !remove {
			return err
		}
		idx, err := l.driver.Select(ctx, SelectConfig{Message: "Option to remove:", Options: options})
		if err != nil {
			return err
		}
		l.dispatch(ctx, builder.RemoveOption(idx))
	}
}

func (l *editLoop) pickForm(ctx context.Context, message string) (int, bool, error) {
	set := l.session.FormSet()
	if set.Len() == 0 {
		return 0, false, l.info(ctx, builder.MessageNoActiveForm)
	}
	options := make([]string, set.Len())
	for i := range options {
		options[i] = fmt.Sprintf("Form %d", i+1)
		if form, ok := set.Form(i); ok && form.Title() != "" {
			options[i] += " - " + form.Title()
		}
	}
	idx, err := l.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      options,
		DefaultIndex: max(set.Active(), 0),
	})
	if err != nil {
		return 0, false, err
	}
	return idx, true, nil
}

func (l *editLoop) selectForm(ctx context.Context) error {
	idx, ok, err := l.pickForm(ctx, "Select Form:")
	if err != nil || !ok {
		return err
	}
	l.dispatch(ctx, builder.SelectForm(idx))
	return nil
}

func (l *editLoop) deleteForm(ctx context.Context) error {
	idx, ok, err := l.pickForm(ctx, "Delete Form:")
	if err != nil || !ok {
		return err
	}
	confirmed, err := l.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Delete Form %d?", idx+1),
	})
	if err != nil || !confirmed {
		return err
	}
	if l.dispatch(ctx, builder.DeleteForm(idx)) {
		return l.info(ctx, fmt.Sprintf("Form %d deleted.", idx+1))
	}
	return nil
}

// moveBlock reorders the selected form through the drag protocol, so the
// same rules apply as for pointer drags: formname blocks stay put.
func (l *editLoop) moveBlock(ctx context.Context) error {
	set := l.session.FormSet()
	formIndex := set.Active()
	form, ok := set.Form(formIndex)
	if !ok {
		return l.info(ctx, builder.MessageNoActiveForm)
	}

	var sources []int
	for i, block := range form.Blocks {
		if block.Type != model.BlockTypeFormname {
			sources = append(sources, i)
		}
	}
	if len(sources) == 0 || len(form.Blocks) < 2 {
		return l.info(ctx, fmt.Sprintf("Form %d has nothing to move.", formIndex+1))
	}

	pick, err := l.driver.Select(ctx, SelectConfig{
		Message: "Block to move:",
		Options: blockOptions(form.Blocks, sources),
	})
	if err != nil {
		return err
	}
	if pick < 0 || pick >= len(sources) {
		return fmt.Errorf("tui: invalid block choice %d", pick)
	}
	from := sources[pick]

	var targets []int
	for i, block := range form.Blocks {
		if builder.CanDrop(builder.DragItem{FormIndex: formIndex, Index: from}, builder.DropTarget{FormIndex: formIndex, Index: i, Type: block.Type}) {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return l.info(ctx, "No position accepts this block.")
	}
	pick, err = l.driver.Select(ctx, SelectConfig{
		Message: "Move to the position of:",
		Options: blockOptions(form.Blocks, targets),
	})
	if err != nil {
		return err
	}
	if pick < 0 || pick >= len(targets) {
		return fmt.Errorf("tui: invalid target choice %d", pick)
	}
	to := targets[pick]

	if !l.dispatch(ctx, builder.BeginDrag(formIndex, from)) {
		return nil
	}
	target := builder.DropTarget{FormIndex: formIndex, Index: to, Type: form.Blocks[to].Type}
	if !l.dispatch(ctx, builder.Hover(target)) {
		l.dispatch(ctx, builder.CancelDrag())
		return nil
	}
	l.dispatch(ctx, builder.Drop())
	return l.info(ctx, fmt.Sprintf("Moved block %d to position %d.", from+1, to+1))
}

func blockOptions(blocks []model.Block, indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = fmt.Sprintf("%d. %s", idx+1, blockLine(blocks[idx]))
	}
	return out
}
