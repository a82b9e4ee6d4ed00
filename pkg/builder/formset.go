package builder

import (
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// FormSetOption configures a FormSet.
type FormSetOption func(*FormSet)

// WithActivationFlags exposes ActivateForm/DeactivateForm. The isActive flag
// has no effect on any other behaviour, so it stays off unless requested.
func WithActivationFlags(enabled bool) FormSetOption {
	return func(s *FormSet) {
		s.activationFlags = enabled
	}
}

// FormSet owns every form and block authored in a session. The active form is
// tracked by position.
type FormSet struct {
	forms           []model.Form
	active          int
	activationFlags bool
}

// NewFormSet returns an empty set with no active form.
func NewFormSet(options ...FormSetOption) *FormSet {
	s := &FormSet{active: model.NoActiveForm}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Len reports how many forms (including hoisted pseudo-forms) exist.
func (s *FormSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.forms)
}

// Active returns the active form index or model.NoActiveForm.
func (s *FormSet) Active() int {
	if s == nil {
		return model.NoActiveForm
	}
	return s.active
}

// Form returns a copy of the form at index.
func (s *FormSet) Form(index int) (model.Form, bool) {
	if s == nil || index < 0 || index >= len(s.forms) {
		return model.Form{}, false
	}
	return s.forms[index].Clone(), true
}

// Snapshot returns a deep copy of the current state.
func (s *FormSet) Snapshot() model.FormSet {
	if s == nil {
		return model.FormSet{Active: model.NoActiveForm}
	}
	return model.FormSet{Forms: s.forms, Active: s.active}.Clone()
}

// Restore replaces the current state with a snapshot.
func (s *FormSet) Restore(snapshot model.FormSet) {
	restored := snapshot.Clone()
	s.forms = restored.Forms
	s.active = restored.Active
}

// AddForm appends an empty form and makes it active.
func (s *FormSet) AddForm() int {
	s.forms = append(s.forms, model.NewForm())
	s.active = len(s.forms) - 1
	return s.active
}

// DeleteForm removes the form at index and selects the previous one. Deleting
// the last remaining form leaves the set without an active form.
func (s *FormSet) DeleteForm(index int) error {
	const op = "delete form"
	if index < 0 || index >= len(s.forms) {
		return newInternalError(op, "%w: form %d of %d", ErrIndexOutOfRange, index, len(s.forms))
	}

	forms := make([]model.Form, 0, len(s.forms)-1)
	forms = append(forms, s.forms[:index]...)
	forms = append(forms, s.forms[index+1:]...)
	s.forms = forms

	if len(s.forms) == 0 {
		s.active = model.NoActiveForm
		return nil
	}
	s.active = max(0, index-1)
	return nil
}

// SelectForm makes the form at index the target for new blocks.
func (s *FormSet) SelectForm(index int) error {
	if index < 0 || index >= len(s.forms) {
		return newInternalError("select form", "%w: form %d of %d", ErrIndexOutOfRange, index, len(s.forms))
	}
	s.active = index
	return nil
}

// ActivateForm sets the isActive flag on the form at index.
func (s *FormSet) ActivateForm(index int) error {
	return s.setActiveFlag("activate form", index, true)
}

// DeactivateForm clears the isActive flag on the form at index.
func (s *FormSet) DeactivateForm(index int) error {
	return s.setActiveFlag("deactivate form", index, false)
}

func (s *FormSet) setActiveFlag(op string, index int, value bool) error {
	if !s.activationFlags {
		return newInternalError(op, "%w", ErrActivationDisabled)
	}
	if index < 0 || index >= len(s.forms) {
		return newInternalError(op, "%w: form %d of %d", ErrIndexOutOfRange, index, len(s.forms))
	}
	s.forms[index].IsActive = value
	return nil
}

// MoveBlock removes the block at from in the form at formIndex and inserts it
// at to. A dragged formname block is not reinserted: it is prepended to the
// set as a pseudo-form instead. Every precondition is checked before any
// mutation, so a failed move leaves the set untouched.
func (s *FormSet) MoveBlock(from, to, formIndex int) error {
	const op = "move block"
	if formIndex < 0 || formIndex >= len(s.forms) {
		return newInternalError(op, "%w: form %d of %d", ErrIndexOutOfRange, formIndex, len(s.forms))
	}
	form := s.forms[formIndex]
	if !form.HasBlockList() {
		return newInternalError(op, "%w: form %d", ErrMissingBlockList, formIndex)
	}
	if from < 0 || from >= len(form.Blocks) {
		return newInternalError(op, "%w: block %d of %d", ErrIndexOutOfRange, from, len(form.Blocks))
	}
	if to < 0 {
		return newInternalError(op, "%w: target %d", ErrIndexOutOfRange, to)
	}
	dragged := form.Blocks[from]
	if !dragged.Type.Valid() {
		return newInternalError(op, "%w: %q", ErrUnrecognizedType, dragged.Type)
	}

	remaining := make([]model.Block, 0, len(form.Blocks))
	remaining = append(remaining, form.Blocks[:from]...)
	remaining = append(remaining, form.Blocks[from+1:]...)

	if dragged.Type == model.BlockTypeFormname {
		form.Blocks = remaining
		hoisted := dragged.Clone()
		forms := make([]model.Form, 0, len(s.forms)+1)
		forms = append(forms, model.Form{Hoisted: &hoisted})
		forms = append(forms, s.forms...)
		forms[formIndex+1] = form
		s.forms = forms
		return nil
	}

	// splice semantics: targets past the end append
	to = min(to, len(remaining))
	reordered := make([]model.Block, 0, len(form.Blocks))
	reordered = append(reordered, remaining[:to]...)
	reordered = append(reordered, dragged)
	reordered = append(reordered, remaining[to:]...)

	form.Blocks = reordered
	s.forms[formIndex] = form
	return nil
}

func (s *FormSet) appendBlock(block model.Block) {
	form := s.forms[s.active]
	blocks := make([]model.Block, 0, len(form.Blocks)+1)
	blocks = append(blocks, form.Blocks...)
	form.Blocks = append(blocks, block)
	s.forms[s.active] = form
}

func (s *FormSet) activeForm() (model.Form, bool) {
	if s == nil || s.active < 0 || s.active >= len(s.forms) {
		return model.Form{}, false
	}
	return s.forms[s.active], true
}
