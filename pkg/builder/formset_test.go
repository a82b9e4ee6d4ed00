package builder

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func blocks(types ...model.BlockType) []model.Block {
	out := make([]model.Block, len(types))
	for i, typ := range types {
		out[i] = model.Block{Name: string(rune('A' + i)), Type: typ}
	}
	return out
}

func seededSet(forms ...[]model.Block) *FormSet {
	set := NewFormSet()
	snapshot := model.FormSet{Active: 0}
	for _, b := range forms {
		snapshot.Forms = append(snapshot.Forms, model.Form{Blocks: b})
	}
	set.Restore(snapshot)
	return set
}

func names(form model.Form) []string {
	out := make([]string, len(form.Blocks))
	for i, block := range form.Blocks {
		out[i] = block.Name
	}
	return out
}

func TestAddForm_SelectsNewForm(t *testing.T) {
	set := NewFormSet()
	if set.Active() != model.NoActiveForm {
		t.Fatalf("expected no active form, got %d", set.Active())
	}
	set.AddForm()
	set.AddForm()
	if set.Len() != 2 || set.Active() != 1 {
		t.Fatalf("unexpected state len=%d active=%d", set.Len(), set.Active())
	}
	form, _ := set.Form(1)
	if !form.HasBlockList() || len(form.Blocks) != 0 {
		t.Fatalf("new form must have an empty block list: %+v", form)
	}
}

func TestDeleteForm_ReselectsPrevious(t *testing.T) {
	set := NewFormSet()
	for i := 0; i < 3; i++ {
		set.AddForm()
	}

	if err := set.DeleteForm(2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if set.Active() != 1 {
		t.Fatalf("expected active 1, got %d", set.Active())
	}
	if err := set.DeleteForm(0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if set.Active() != 0 {
		t.Fatalf("expected active 0, got %d", set.Active())
	}
	if err := set.DeleteForm(0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if set.Len() != 0 || set.Active() != model.NoActiveForm {
		t.Fatalf("expected empty set, got len=%d active=%d", set.Len(), set.Active())
	}

	err := set.DeleteForm(0)
	if !errors.Is(err, ErrIndexOutOfRange) || !IsInternalError(err) {
		t.Fatalf("expected internal out-of-range error, got %v", err)
	}
}

func TestMoveBlock_Reorders(t *testing.T) {
	cases := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"first to last", 0, 2, []string{"B", "C", "A"}},
		{"last to first", 2, 0, []string{"C", "A", "B"}},
		{"adjacent", 1, 2, []string{"A", "C", "B"}},
		{"past the end appends", 0, 9, []string{"B", "C", "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := seededSet(blocks(model.BlockTypeText, model.BlockTypeEmail, model.BlockTypeNumber))
			if err := set.MoveBlock(tc.from, tc.to, 0); err != nil {
				t.Fatalf("move: %v", err)
			}
			form, _ := set.Form(0)
			if diff := cmp.Diff(tc.want, names(form)); diff != "" {
				t.Fatalf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMoveBlock_FormnameHoistsPseudoForm(t *testing.T) {
	set := seededSet(
		blocks(model.BlockTypeFormname, model.BlockTypeText, model.BlockTypeButton),
		blocks(model.BlockTypeText),
	)

	if err := set.MoveBlock(0, 2, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("expected a prepended form, got %d forms", set.Len())
	}

	pseudo, _ := set.Form(0)
	if pseudo.HasBlockList() || pseudo.Hoisted == nil || pseudo.Hoisted.Type != model.BlockTypeFormname {
		t.Fatalf("expected hoisted formname pseudo-form, got %+v", pseudo)
	}
	original, _ := set.Form(1)
	if diff := cmp.Diff([]string{"B", "C"}, names(original)); diff != "" {
		t.Fatalf("original form mismatch (-want +got):\n%s", diff)
	}
	if set.Active() != 0 {
		t.Fatalf("active index is positional and must not change, got %d", set.Active())
	}

	// the pseudo-form has no block list, so moving inside it aborts
	before := set.Snapshot()
	err := set.MoveBlock(0, 1, 0)
	if !errors.Is(err, ErrMissingBlockList) {
		t.Fatalf("expected ErrMissingBlockList, got %v", err)
	}
	if diff := cmp.Diff(before, set.Snapshot()); diff != "" {
		t.Fatalf("state changed on abort (-want +got):\n%s", diff)
	}
}

func TestMoveBlock_InvalidInputLeavesStateUnchanged(t *testing.T) {
	cases := []struct {
		name           string
		from, to, form int
		want           error
	}{
		{"form out of range", 0, 1, 3, ErrIndexOutOfRange},
		{"negative form", 0, 1, -1, ErrIndexOutOfRange},
		{"from out of range", 5, 0, 0, ErrIndexOutOfRange},
		{"negative target", 0, -1, 0, ErrIndexOutOfRange},
		{"unrecognized type", 2, 0, 0, ErrUnrecognizedType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bad := blocks(model.BlockTypeText, model.BlockTypeEmail)
			bad = append(bad, model.Block{Name: "X"})
			set := seededSet(bad)
			before := set.Snapshot()

			err := set.MoveBlock(tc.from, tc.to, tc.form)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if IsInputError(err) {
				t.Fatalf("reorder failures must not be user errors")
			}
			if diff := cmp.Diff(before, set.Snapshot()); diff != "" {
				t.Fatalf("state changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestActivationFlags(t *testing.T) {
	set := NewFormSet()
	set.AddForm()
	if err := set.ActivateForm(0); !errors.Is(err, ErrActivationDisabled) {
		t.Fatalf("expected ErrActivationDisabled, got %v", err)
	}

	set = NewFormSet(WithActivationFlags(true))
	set.AddForm()
	if err := set.ActivateForm(0); err != nil {
		t.Fatalf("activate: %v", err)
	}
	form, _ := set.Form(0)
	if !form.IsActive {
		t.Fatalf("expected isActive set")
	}
	if err := set.DeactivateForm(0); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	form, _ = set.Form(0)
	if form.IsActive {
		t.Fatalf("expected isActive cleared")
	}
}
