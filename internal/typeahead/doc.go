// Package typeahead implements the course search widget's state: the current
// query, the filtered result set, the highlighted row, and the scroll window
// of the result panel.
//
// It has no terminal or router dependency. Input arrives as discrete events
// ([Typeahead.SetQuery], [Typeahead.MoveNext], [Typeahead.MovePrev],
// [Typeahead.Confirm], [Typeahead.Hover], [Typeahead.Click]) and every event
// completes in the same order:
//
//  1. the result set is recomputed when the query changed
//  2. the cursor is reset or moved
//  3. the viewport is reconciled against the new cursor
//
// Navigation is handed to an injected [Navigator].
//
// # Cursor
//
// The cursor is -1 ([None]) or an index into the current results. Moving past
// either end wraps. Any query change resets it to [None]. A cursor that no
// longer fits the result set is treated as [None] before use.
//
// # Commit
//
// Confirm (keyboard) writes "<code> - <name>" into the query and does not
// navigate. Click (mouse) navigates to the course's route and leaves the
// query empty. The two paths differ on purpose and both are kept.
package typeahead
