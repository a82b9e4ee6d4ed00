package model

import "strings"

// BlockType is the closed set of field kinds a survey block can take.
type BlockType string

const (
	BlockTypeFormname BlockType = "formname"
	BlockTypeText     BlockType = "text"
	BlockTypeDate     BlockType = "date"
	BlockTypeNumber   BlockType = "number"
	BlockTypeDropdown BlockType = "dropdown"
	BlockTypeRadio    BlockType = "radio"
	BlockTypeCheckbox BlockType = "checkbox"
	BlockTypeTextarea BlockType = "textarea"
	BlockTypeButton   BlockType = "button"
	BlockTypeEmail    BlockType = "email"
)

// DefaultBlockType is the type selected when the editor is reset.
const DefaultBlockType = BlockTypeText

var blockTypes = []BlockType{
	BlockTypeFormname,
	BlockTypeText,
	BlockTypeDate,
	BlockTypeNumber,
	BlockTypeDropdown,
	BlockTypeRadio,
	BlockTypeCheckbox,
	BlockTypeTextarea,
	BlockTypeButton,
	BlockTypeEmail,
}

var blockTypeLabels = map[BlockType]string{
	BlockTypeFormname: "Formname",
	BlockTypeText:     "Text",
	BlockTypeDate:     "Date",
	BlockTypeNumber:   "Number",
	BlockTypeDropdown: "Drop Down",
	BlockTypeRadio:    "Radio Button",
	BlockTypeCheckbox: "Check Box",
	BlockTypeTextarea: "Text Area",
	BlockTypeButton:   "Button",
	BlockTypeEmail:    "Email",
}

// BlockTypes returns the block types in selector order.
func BlockTypes() []BlockType {
	return append([]BlockType(nil), blockTypes...)
}

// ParseBlockType normalises raw input into a BlockType. The boolean reports
// whether the value belongs to the closed set.
func ParseBlockType(raw string) (BlockType, bool) {
	t := BlockType(strings.ToLower(strings.TrimSpace(raw)))
	return t, t.Valid()
}

// Valid reports whether t is one of the known block types.
func (t BlockType) Valid() bool {
	_, ok := blockTypeLabels[t]
	return ok
}

// Label returns the human readable name shown in the type selector.
func (t BlockType) Label() string {
	if label, ok := blockTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// HasRequiredFlag reports whether the editor exposes the "is required"
// selector for the type. Formname and button blocks never render a required
// marker, and option-driven blocks keep the default of false.
func (t BlockType) HasRequiredFlag() bool {
	switch t {
	case BlockTypeFormname, BlockTypeButton, BlockTypeRadio, BlockTypeCheckbox, BlockTypeDropdown:
		return false
	default:
		return t.Valid()
	}
}

// RequiresExplicitFlag reports whether committing a block of this type
// needs the required flag to have been chosen.
func (t BlockType) RequiresExplicitFlag() bool {
	return t != BlockTypeFormname && t != BlockTypeButton
}

// UsesButtons reports whether the type is configured through named buttons.
func (t BlockType) UsesButtons() bool {
	return t == BlockTypeRadio || t == BlockTypeCheckbox
}

// UsesOptions reports whether the type is configured through an option list.
func (t BlockType) UsesOptions() bool {
	return t == BlockTypeDropdown
}

// Block models one field definition inside a survey form. Tags keep the
// camelCase keys the browser editor emitted so definitions stay portable.
type Block struct {
	Name        string    `json:"name" yaml:"name"`
	Type        BlockType `json:"type" yaml:"type"`
	IsRequired  bool      `json:"isRequired" yaml:"isRequired"`
	NumButtons  int       `json:"numButtons" yaml:"numButtons"`
	ButtonNames []string  `json:"buttonNames" yaml:"buttonNames"`
	Options     []string  `json:"options" yaml:"options"`
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	out := b
	out.ButtonNames = cloneStrings(b.ButtonNames)
	out.Options = cloneStrings(b.Options)
	return out
}

// Form is an ordered list of blocks representing one survey.
//
// A nil Blocks slice means the form carries no block list at all. That only
// happens for pseudo-forms produced when a formname block is dragged: the
// removed block is kept in Hoisted and stands in for the form.
type Form struct {
	Blocks   []Block `json:"blocks" yaml:"blocks"`
	IsActive bool    `json:"isActive,omitempty" yaml:"isActive,omitempty"`
	Hoisted  *Block  `json:"hoisted,omitempty" yaml:"hoisted,omitempty"`
}

// NewForm returns an empty form with an allocated block list.
func NewForm() Form {
	return Form{Blocks: []Block{}}
}

// HasBlockList reports whether the form can hold blocks.
func (f Form) HasBlockList() bool {
	return f.Hoisted == nil && f.Blocks != nil
}

// HasButton reports whether the form already contains a button block.
func (f Form) HasButton() bool {
	for _, block := range f.Blocks {
		if block.Type == BlockTypeButton {
			return true
		}
	}
	return false
}

// Title returns the first formname label, or the hoisted block's name.
func (f Form) Title() string {
	if f.Hoisted != nil {
		return f.Hoisted.Name
	}
	for _, block := range f.Blocks {
		if block.Type == BlockTypeFormname {
			return block.Name
		}
	}
	return ""
}

// Clone returns a deep copy of the form, preserving nil-ness of Blocks.
func (f Form) Clone() Form {
	out := Form{IsActive: f.IsActive}
	if f.Blocks != nil {
		out.Blocks = make([]Block, len(f.Blocks))
		for i, block := range f.Blocks {
			out.Blocks[i] = block.Clone()
		}
	}
	if f.Hoisted != nil {
		hoisted := f.Hoisted.Clone()
		out.Hoisted = &hoisted
	}
	return out
}

// NoActiveForm marks a FormSet without a selected form.
const NoActiveForm = -1

// FormSet is an immutable snapshot of every form authored in a session.
type FormSet struct {
	Forms  []Form `json:"forms" yaml:"forms"`
	Active int    `json:"active" yaml:"active"`
}

// Clone returns a deep copy of the set.
func (s FormSet) Clone() FormSet {
	out := FormSet{Active: s.Active}
	if s.Forms != nil {
		out.Forms = make([]Form, len(s.Forms))
		for i, form := range s.Forms {
			out.Forms[i] = form.Clone()
		}
	}
	return out
}

// ActiveForm returns the selected form when the index is in range.
func (s FormSet) ActiveForm() (Form, bool) {
	if s.Active < 0 || s.Active >= len(s.Forms) {
		return Form{}, false
	}
	return s.Forms[s.Active], true
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}
