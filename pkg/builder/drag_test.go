package builder

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func TestCanDrop(t *testing.T) {
	cases := []struct {
		name   string
		item   DragItem
		target DropTarget
		want   bool
	}{
		{"same form different slot", DragItem{0, 0}, DropTarget{0, 2, model.BlockTypeText}, true},
		{"cross form", DragItem{0, 0}, DropTarget{1, 2, model.BlockTypeText}, false},
		{"own slot", DragItem{1, 1}, DropTarget{1, 1, model.BlockTypeText}, false},
		{"formname target", DragItem{0, 0}, DropTarget{0, 1, model.BlockTypeFormname}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanDrop(tc.item, tc.target); got != tc.want {
				t.Fatalf("CanDrop = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDragSession_HoverFollowsBlock(t *testing.T) {
	set := seededSet(blocks(model.BlockTypeText, model.BlockTypeEmail, model.BlockTypeDate, model.BlockTypeNumber))
	drag := NewDragSession(set)

	if err := drag.Begin(DragItem{FormIndex: 0, Index: 0}); err != nil {
		t.Fatalf("begin: %v", err)
	}
	// continuous hover over slots 1, 2, 3 walks A to the end
	for _, idx := range []int{1, 2, 3} {
		moved, err := drag.Hover(DropTarget{FormIndex: 0, Index: idx, Type: model.BlockTypeText})
		if err != nil || !moved {
			t.Fatalf("hover %d: moved=%v err=%v", idx, moved, err)
		}
	}
	// hovering the slot it now occupies is a no-op
	if moved, _ := drag.Hover(DropTarget{FormIndex: 0, Index: 3, Type: model.BlockTypeText}); moved {
		t.Fatalf("hover over own slot must not move")
	}

	form, err := drag.Drop()
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if diff := cmp.Diff([]string{"B", "C", "D", "A"}, names(form)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if drag.Active() {
		t.Fatalf("drag should be finished")
	}
}

func TestDragSession_CancelRestoresOrder(t *testing.T) {
	set := seededSet(blocks(model.BlockTypeText, model.BlockTypeEmail, model.BlockTypeDate))
	before := set.Snapshot()
	drag := NewDragSession(set)

	if err := drag.Begin(DragItem{FormIndex: 0, Index: 2}); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := drag.Hover(DropTarget{FormIndex: 0, Index: 0, Type: model.BlockTypeText}); err != nil {
		t.Fatalf("hover: %v", err)
	}
	if err := drag.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if diff := cmp.Diff(before, set.Snapshot()); diff != "" {
		t.Fatalf("cancel did not restore (-want +got):\n%s", diff)
	}
}

func TestDragSession_RejectsFormnameAndIdleCalls(t *testing.T) {
	set := seededSet(blocks(model.BlockTypeFormname, model.BlockTypeText))
	drag := NewDragSession(set)

	if err := drag.Begin(DragItem{FormIndex: 0, Index: 0}); !IsInternalError(err) {
		t.Fatalf("formname must not be draggable, got %v", err)
	}
	if _, err := drag.Hover(DropTarget{FormIndex: 0, Index: 1}); !errors.Is(err, ErrNoDrag) {
		t.Fatalf("expected ErrNoDrag, got %v", err)
	}
	if _, err := drag.Drop(); !errors.Is(err, ErrNoDrag) {
		t.Fatalf("expected ErrNoDrag, got %v", err)
	}
}

func TestDragSession_HoverReadsTargetType(t *testing.T) {
	set := seededSet(blocks(model.BlockTypeFormname, model.BlockTypeText))
	before := set.Snapshot()
	drag := NewDragSession(set)

	if err := drag.Begin(DragItem{FormIndex: 0, Index: 1}); err != nil {
		t.Fatalf("begin: %v", err)
	}
	// the caller leaves Type empty on the formname slot
	moved, err := drag.Hover(DropTarget{FormIndex: 0, Index: 0})
	if err != nil || moved {
		t.Fatalf("hover onto formname: moved=%v err=%v", moved, err)
	}
	if moved, err := drag.Hover(DropTarget{FormIndex: 0, Index: 5}); err != nil || moved {
		t.Fatalf("hover past the end: moved=%v err=%v", moved, err)
	}
	if _, err := drag.Drop(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if diff := cmp.Diff(before, set.Snapshot()); diff != "" {
		t.Fatalf("order changed (-want +got):\n%s", diff)
	}
}
