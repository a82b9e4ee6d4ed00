package builder

import "fmt"

// CommandKind enumerates the editor events a front end can dispatch.
type CommandKind string

const (
	CmdAddForm        CommandKind = "add-form"
	CmdDeleteForm     CommandKind = "delete-form"
	CmdSelectForm     CommandKind = "select-form"
	CmdActivateForm   CommandKind = "activate-form"
	CmdDeactivateForm CommandKind = "deactivate-form"
	CmdAddBlock       CommandKind = "add-block"
	CmdMoveBlock      CommandKind = "move-block"
	CmdSetField       CommandKind = "set-field"
	CmdAddOption      CommandKind = "add-option"
	CmdRemoveOption   CommandKind = "remove-option"
	CmdBeginDrag      CommandKind = "begin-drag"
	CmdHover          CommandKind = "hover"
	CmdDrop           CommandKind = "drop"
	CmdCancelDrag     CommandKind = "cancel-drag"
)

// Field names an editor input for CmdSetField.
type Field string

const (
	FieldName       Field = "name"
	FieldType       Field = "type"
	FieldRequired   Field = "required"
	FieldNumButtons Field = "numButtons"
	FieldButtonName Field = "buttonName"
	FieldNewOption  Field = "newOption"
)

// Command is one editor event. Only the members relevant to Kind are read.
//
//	Form       DeleteForm, SelectForm, ActivateForm, DeactivateForm, MoveBlock, BeginDrag
//	From, To   MoveBlock (From is also the dragged index for BeginDrag)
//	Field      SetField
//	Index      SetField(buttonName), RemoveOption
//	Value      SetField, AddOption (empty means the pending option)
//	Target     Hover
type Command struct {
	Kind   CommandKind
	Form   int
	From   int
	To     int
	Field  Field
	Index  int
	Value  string
	Target DropTarget
}

// AddForm builds a CmdAddForm command.
func AddForm() Command { return Command{Kind: CmdAddForm} }

// DeleteForm builds a CmdDeleteForm command.
func DeleteForm(index int) Command { return Command{Kind: CmdDeleteForm, Form: index} }

// SelectForm builds a CmdSelectForm command.
func SelectForm(index int) Command { return Command{Kind: CmdSelectForm, Form: index} }

// ActivateForm builds a CmdActivateForm command.
func ActivateForm(index int) Command { return Command{Kind: CmdActivateForm, Form: index} }

// DeactivateForm builds a CmdDeactivateForm command.
func DeactivateForm(index int) Command { return Command{Kind: CmdDeactivateForm, Form: index} }

// AddBlock builds a CmdAddBlock command.
func AddBlock() Command { return Command{Kind: CmdAddBlock} }

// MoveBlock builds a CmdMoveBlock command.
func MoveBlock(from, to, form int) Command {
	return Command{Kind: CmdMoveBlock, From: from, To: to, Form: form}
}

// SetField builds a CmdSetField command.
func SetField(field Field, value string) Command {
	return Command{Kind: CmdSetField, Field: field, Value: value}
}

// SetButtonName builds a CmdSetField command for one button label.
func SetButtonName(index int, value string) Command {
	return Command{Kind: CmdSetField, Field: FieldButtonName, Index: index, Value: value}
}

// AddOption builds a CmdAddOption command.
func AddOption(text string) Command { return Command{Kind: CmdAddOption, Value: text} }

// RemoveOption builds a CmdRemoveOption command.
func RemoveOption(index int) Command { return Command{Kind: CmdRemoveOption, Index: index} }

// BeginDrag builds a CmdBeginDrag command.
func BeginDrag(form, index int) Command {
	return Command{Kind: CmdBeginDrag, Form: form, From: index}
}

// Hover builds a CmdHover command.
func Hover(target DropTarget) Command { return Command{Kind: CmdHover, Target: target} }

// Drop builds a CmdDrop command.
func Drop() Command { return Command{Kind: CmdDrop} }

// CancelDrag builds a CmdCancelDrag command.
func CancelDrag() Command { return Command{Kind: CmdCancelDrag} }

func (c Command) String() string {
	switch c.Kind {
	case CmdSetField:
		return fmt.Sprintf("%s(%s)", c.Kind, c.Field)
	case CmdMoveBlock:
		return fmt.Sprintf("%s(%d->%d in %d)", c.Kind, c.From, c.To, c.Form)
	default:
		return string(c.Kind)
	}
}
