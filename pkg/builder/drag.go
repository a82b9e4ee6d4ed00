package builder

import (
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// DragItem identifies the block being dragged by its position.
type DragItem struct {
	FormIndex int `json:"formIndex"`
	Index     int `json:"index"`
}

// DropTarget identifies the block currently under the pointer.
type DropTarget struct {
	FormIndex int             `json:"formIndex"`
	Index     int             `json:"index"`
	Type      model.BlockType `json:"type"`
}

// CanDrop reports whether target accepts item. Drops across forms and drops
// onto the dragged block's own slot are refused, and formname blocks never
// take part in dragging.
func CanDrop(item DragItem, target DropTarget) bool {
	if target.Type == model.BlockTypeFormname {
		return false
	}
	return item.FormIndex == target.FormIndex && item.Index != target.Index
}

// DragSession tracks one in-flight drag. Hover reorders immediately
// (preview) and Drop makes the result final; Cancel rolls back to the order
// captured by Begin.
type DragSession struct {
	set      *FormSet
	item     DragItem
	origin   model.FormSet
	active   bool
	previews int
}

// NewDragSession binds a drag session to set.
func NewDragSession(set *FormSet) *DragSession {
	return &DragSession{set: set}
}

// Active reports whether a drag is in progress.
func (d *DragSession) Active() bool {
	return d != nil && d.active
}

// Item returns the dragged item with its current index.
func (d *DragSession) Item() (DragItem, bool) {
	if !d.Active() {
		return DragItem{}, false
	}
	return d.item, true
}

// Begin starts dragging item, superseding any unfinished drag. Formname
// blocks cannot be picked up.
func (d *DragSession) Begin(item DragItem) error {
	const op = "begin drag"
	form, ok := d.set.Form(item.FormIndex)
	if !ok {
		return newInternalError(op, "%w: form %d", ErrIndexOutOfRange, item.FormIndex)
	}
	if !form.HasBlockList() {
		return newInternalError(op, "%w: form %d", ErrMissingBlockList, item.FormIndex)
	}
	if item.Index < 0 || item.Index >= len(form.Blocks) {
		return newInternalError(op, "%w: block %d of %d", ErrIndexOutOfRange, item.Index, len(form.Blocks))
	}
	if form.Blocks[item.Index].Type == model.BlockTypeFormname {
		return newInternalError(op, "%w: formname blocks are not draggable", ErrUnrecognizedType)
	}

	d.item = item
	d.origin = d.set.Snapshot()
	d.active = true
	d.previews = 0
	return nil
}

// Hover is the preview phase. When target accepts the dragged item the block
// is moved to the target slot and the item follows it. It reports whether a
// move happened. The target type is read from the form set; the caller's
// Type is ignored.
func (d *DragSession) Hover(target DropTarget) (bool, error) {
	if !d.Active() {
		return false, newInternalError("hover", "%w", ErrNoDrag)
	}
	form, ok := d.set.Form(target.FormIndex)
	if !ok || target.Index < 0 || target.Index >= len(form.Blocks) {
		return false, nil
	}
	target.Type = form.Blocks[target.Index].Type
	if !CanDrop(d.item, target) {
		return false, nil
	}
	if err := d.set.MoveBlock(d.item.Index, target.Index, d.item.FormIndex); err != nil {
		return false, err
	}
	d.item.Index = target.Index
	d.previews++
	return true, nil
}

// Drop is the commit phase. The order produced by the last hover stays.
func (d *DragSession) Drop() (model.Form, error) {
	if !d.Active() {
		return model.Form{}, newInternalError("drop", "%w", ErrNoDrag)
	}
	d.active = false
	form, _ := d.set.Form(d.item.FormIndex)
	return form, nil
}

// Cancel abandons the drag and restores the order captured by Begin.
func (d *DragSession) Cancel() error {
	if !d.Active() {
		return newInternalError("cancel drag", "%w", ErrNoDrag)
	}
	d.active = false
	if d.previews > 0 {
		d.set.Restore(d.origin)
	}
	return nil
}
