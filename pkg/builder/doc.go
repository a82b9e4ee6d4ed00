// Package builder is the state machine behind the survey form editor.
//
// FormSet owns the ordered forms and their blocks, BlockEditor collects and
// validates the input for one new block, and DragSession implements the
// hover/drop reorder protocol on top of FormSet.MoveBlock. Session ties the
// three together behind a single Dispatch entry point so terminal, HTML and
// test front ends drive the same reducer.
//
// Two error classes are returned. *InputError carries a message meant for
// the user (missing fields, a second button, bad button counts, an empty
// dropdown). *InternalError marks a broken structural invariant, such as an
// out-of-range index or a form without a block list; Session logs those and
// never forwards them to the Notifier. Neither class leaves partial state.
package builder
