package builder

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Session bundles the form set, the block editor and the drag state of one
// editing session. Every front end funnels events through Dispatch, which
// applies them one at a time. A Session is not safe for concurrent use.
type Session struct {
	set        *FormSet
	editor     *BlockEditor
	drag       *DragSession
	logger     *slog.Logger
	notifier   Notifier
	setOptions []FormSetOption
	seed       *model.FormSet
}

// NewSession constructs a Session applying any provided options.
func NewSession(options ...Option) *Session {
	s := &Session{logger: slog.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = logNotifier{logger: s.logger}
	}

	s.set = NewFormSet(s.setOptions...)
	if s.seed != nil {
		s.set.Restore(*s.seed)
	}
	s.editor = NewBlockEditor()
	s.drag = NewDragSession(s.set)
	return s
}

// FormSet exposes the owned form set.
func (s *Session) FormSet() *FormSet { return s.set }

// Editor exposes the block editor.
func (s *Session) Editor() *BlockEditor { return s.editor }

// Drag exposes the drag state.
func (s *Session) Drag() *DragSession { return s.drag }

// Snapshot returns a copy of the form set.
func (s *Session) Snapshot() model.FormSet { return s.set.Snapshot() }

// Dispatch applies cmd. Rejected input is reported to the notifier and
// returned as *InputError; invariant violations are logged and returned as
// *InternalError. In both cases the state is unchanged.
func (s *Session) Dispatch(ctx context.Context, cmd Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.apply(cmd)
	if err == nil {
		s.logger.DebugContext(ctx, "command applied",
			slog.String("command", cmd.String()),
			slog.Int("forms", s.set.Len()),
			slog.Int("active", s.set.Active()),
		)
		return nil
	}

	var inputErr *InputError
	if errors.As(err, &inputErr) {
		s.notifier.Notify(ctx, inputErr.Message)
		return err
	}

	s.logger.ErrorContext(ctx, "command aborted",
		slog.String("command", cmd.String()),
		slog.Any("error", err),
	)
	return err
}

// locksFormSet lists the commands that change the form set outside the drag
// protocol. They are refused while a drag is active because Cancel restores
// the order captured by Begin.
func locksFormSet(kind CommandKind) bool {
	switch kind {
	case CmdAddForm, CmdDeleteForm, CmdSelectForm, CmdActivateForm, CmdDeactivateForm, CmdAddBlock, CmdMoveBlock:
		return true
	}
	return false
}

func (s *Session) apply(cmd Command) error {
	if s.drag.Active() && locksFormSet(cmd.Kind) {
		return newInternalError(string(cmd.Kind), "%w", ErrDragInProgress)
	}
	switch cmd.Kind {
	case CmdAddForm:
		s.set.AddForm()
		return nil
	case CmdDeleteForm:
		return s.set.DeleteForm(cmd.Form)
	case CmdSelectForm:
		return s.set.SelectForm(cmd.Form)
	case CmdActivateForm:
		return s.set.ActivateForm(cmd.Form)
	case CmdDeactivateForm:
		return s.set.DeactivateForm(cmd.Form)
	case CmdAddBlock:
		_, err := s.editor.CommitBlock(s.set)
		return err
	case CmdMoveBlock:
		return s.set.MoveBlock(cmd.From, cmd.To, cmd.Form)
	case CmdSetField:
		return s.setField(cmd)
	case CmdAddOption:
		if cmd.Value == "" {
			s.editor.AddPendingOption()
			return nil
		}
		s.editor.AddOption(cmd.Value)
		return nil
	case CmdRemoveOption:
		return s.editor.RemoveOption(cmd.Index)
	case CmdBeginDrag:
		return s.drag.Begin(DragItem{FormIndex: cmd.Form, Index: cmd.From})
	case CmdHover:
		_, err := s.drag.Hover(cmd.Target)
		return err
	case CmdDrop:
		_, err := s.drag.Drop()
		return err
	case CmdCancelDrag:
		return s.drag.Cancel()
	default:
		return newInternalError("dispatch", "%w: %q", ErrUnknownCommand, cmd.Kind)
	}
}

func (s *Session) setField(cmd Command) error {
	switch cmd.Field {
	case FieldName:
		s.editor.SetName(cmd.Value)
	case FieldType:
		return s.editor.SetType(cmd.Value)
	case FieldRequired:
		if cmd.Value == "" {
			s.editor.ClearRequired()
			return nil
		}
		required, err := strconv.ParseBool(cmd.Value)
		if err != nil {
			return newInputError("set required", ErrMissingFields, MessageMissingFields)
		}
		s.editor.SetRequired(required)
	case FieldNumButtons:
		return s.editor.SetNumButtonsAndUpdateNames(cmd.Value)
	case FieldButtonName:
		return s.editor.SetButtonName(cmd.Index, cmd.Value)
	case FieldNewOption:
		s.editor.SetNewOption(cmd.Value)
	default:
		return newInternalError("set field", "%w: field %q", ErrUnknownCommand, cmd.Field)
	}
	return nil
}
