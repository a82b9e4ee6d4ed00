package builder

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// EditorState is a read-only view of the editor fields, used by renderers.
type EditorState struct {
	Name        string          `json:"name"`
	Type        model.BlockType `json:"type"`
	IsRequired  bool            `json:"isRequired"`
	RequiredSet bool            `json:"requiredSet"`
	NumButtons  int             `json:"numButtons"`
	ButtonNames []string        `json:"buttonNames"`
	Options     []string        `json:"options"`
	NewOption   string          `json:"newOption"`
}

// BlockEditor holds the not-yet-committed input for one block. It never keeps
// a reference to blocks it has committed.
type BlockEditor struct {
	name        string
	blockType   model.BlockType
	isRequired  *bool
	numButtons  int
	buttonNames []string
	options     []string
	newOption   string
}

// NewBlockEditor returns an editor with default field values.
func NewBlockEditor() *BlockEditor {
	e := &BlockEditor{}
	e.Reset()
	return e
}

// Reset restores every field to its default.
func (e *BlockEditor) Reset() {
	required := false
	e.name = ""
	e.blockType = model.DefaultBlockType
	e.isRequired = &required
	e.numButtons = 0
	e.buttonNames = []string{}
	e.options = []string{}
	e.newOption = ""
}

// Snapshot copies the current field values.
func (e *BlockEditor) Snapshot() EditorState {
	state := EditorState{
		Name:        e.name,
		Type:        e.blockType,
		NumButtons:  e.numButtons,
		ButtonNames: append([]string{}, e.buttonNames...),
		Options:     append([]string{}, e.options...),
		NewOption:   e.newOption,
	}
	if e.isRequired != nil {
		state.RequiredSet = true
		state.IsRequired = *e.isRequired
	}
	return state
}

// SetName updates the block label.
func (e *BlockEditor) SetName(name string) {
	e.name = name
}

// SetType selects the block type. Values outside the closed set are rejected.
func (e *BlockEditor) SetType(raw string) error {
	t, ok := model.ParseBlockType(raw)
	if !ok {
		return newInputError("set type", ErrUnknownType, MessageUnknownType)
	}
	e.blockType = t
	return nil
}

// SetRequired records an explicit required choice.
func (e *BlockEditor) SetRequired(required bool) {
	e.isRequired = &required
}

// ClearRequired forgets the required choice, as if the selector were blank.
func (e *BlockEditor) ClearRequired() {
	e.isRequired = nil
}

// SetNumButtonsAndUpdateNames parses n and resizes the button names to match,
// keeping names at indices that survive and padding new slots with "".
func (e *BlockEditor) SetNumButtonsAndUpdateNames(n string) error {
	count, err := strconv.Atoi(strings.TrimSpace(n))
	if err != nil || count < 0 {
		return newInputError("set button count", ErrInvalidButtonCount, MessageInvalidButtonCount)
	}

	names := make([]string, count)
	copy(names, e.buttonNames)
	e.numButtons = count
	e.buttonNames = names
	return nil
}

// SetButtonName renames the button at index.
func (e *BlockEditor) SetButtonName(index int, name string) error {
	if index < 0 || index >= len(e.buttonNames) {
		return newInputError("set button name", ErrInvalidButtons, MessageButtonOutOfRange)
	}
	names := append([]string{}, e.buttonNames...)
	names[index] = name
	e.buttonNames = names
	return nil
}

// SetNewOption updates the pending dropdown option text.
func (e *BlockEditor) SetNewOption(text string) {
	e.newOption = text
}

// AddOption appends text when it is not blank. Blank input is ignored.
func (e *BlockEditor) AddOption(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	options := make([]string, 0, len(e.options)+1)
	options = append(options, e.options...)
	e.options = append(options, text)
	e.newOption = ""
	return true
}

// AddPendingOption appends the pending option text.
func (e *BlockEditor) AddPendingOption() bool {
	return e.AddOption(e.newOption)
}

// RemoveOption drops the option at index.
func (e *BlockEditor) RemoveOption(index int) error {
	if index < 0 || index >= len(e.options) {
		return newInternalError("remove option", "%w: option %d of %d", ErrIndexOutOfRange, index, len(e.options))
	}
	options := make([]string, 0, len(e.options)-1)
	options = append(options, e.options[:index]...)
	options = append(options, e.options[index+1:]...)
	e.options = options
	return nil
}

// CommitBlock validates the editor fields, appends the finished block to the
// active form of set and resets the editor. Nothing changes on failure.
func (e *BlockEditor) CommitBlock(set *FormSet) (model.Block, error) {
	const op = "add block"

	form, ok := set.activeForm()
	if !ok {
		return model.Block{}, newInputError(op, ErrNoActiveForm, MessageNoActiveForm)
	}
	if !form.HasBlockList() {
		return model.Block{}, newInternalError(op, "%w: form %d", ErrMissingBlockList, set.Active())
	}

	if strings.TrimSpace(e.name) == "" || strings.TrimSpace(string(e.blockType)) == "" ||
		(e.blockType.RequiresExplicitFlag() && e.isRequired == nil) {
		return model.Block{}, newInputError(op, ErrMissingFields, MessageMissingFields)
	}
	if !e.blockType.Valid() {
		return model.Block{}, newInputError(op, ErrUnknownType, MessageUnknownType)
	}

	if e.blockType == model.BlockTypeButton && form.HasButton() {
		return model.Block{}, newInputError(op, ErrDuplicateButton, MessageDuplicateButton)
	}

	if e.blockType.UsesButtons() {
		if e.numButtons <= 0 || hasBlank(e.buttonNames[:min(e.numButtons, len(e.buttonNames))]) {
			return model.Block{}, newInputError(op, ErrInvalidButtons, MessageInvalidButtons)
		}
	}

	if e.blockType.UsesOptions() && len(e.options) == 0 {
		return model.Block{}, newInputError(op, ErrEmptyOptions, MessageEmptyOptions)
	}

	block := model.Block{
		Name:        e.name,
		Type:        e.blockType,
		NumButtons:  e.numButtons,
		ButtonNames: append([]string{}, e.buttonNames[:min(e.numButtons, len(e.buttonNames))]...),
		Options:     append([]string{}, e.options...),
	}
	if e.isRequired != nil {
		block.IsRequired = *e.isRequired
	}

	set.appendBlock(block)
	e.Reset()
	return block.Clone(), nil
}

func hasBlank(values []string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			return true
		}
	}
	return false
}
