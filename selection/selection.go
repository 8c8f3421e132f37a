// Package selection tracks which photos a bulk action applies to.
//
// A selection is either local (an explicit id set drawn from the visible
// page) or global (a standing "everything matching the current filter"
// flag), never both. Operations are pure: each returns a new State, which
// keeps the transitions testable without a UI attached.
package selection

// State is an immutable selection snapshot. The zero value is empty.
type State struct {
	ids    map[string]struct{}
	global bool
}

func (s State) withIDs(ids map[string]struct{}) State {
	return State{ids: ids}
}

// Global reports whether global scope is active.
func (s State) Global() bool { return s.global }

// Count returns the size of the local set. Zero while global scope is
// active: global scope never enumerates ids.
func (s State) Count() int { return len(s.ids) }

// Empty reports whether nothing at all is selected.
func (s State) Empty() bool { return !s.global && len(s.ids) == 0 }

// IsSelected reports whether the photo with this id is covered, either by
// global scope or by local membership.
func (s State) IsSelected(id string) bool {
	if s.global {
		return true
	}
	_, ok := s.ids[id]
	return ok
}

// IDs returns the local set as a slice. Nil in global scope.
func (s State) IDs() []string {
	if s.global || len(s.ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// ToggleItem flips local membership of one id. Ignored while global scope
// is active; leave global scope first.
func (s State) ToggleItem(id string) State {
	if s.global {
		return s
	}
	next := make(map[string]struct{}, len(s.ids)+1)
	for k := range s.ids {
		next[k] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return s.withIDs(next)
}

// TogglePage selects exactly the given page's ids, or clears the local
// set when the page is already fully selected. Always exits global scope.
func (s State) TogglePage(pageIDs []string) State {
	if !s.global && len(pageIDs) > 0 && s.allSelected(pageIDs) {
		return State{}
	}
	next := make(map[string]struct{}, len(pageIDs))
	for _, id := range pageIDs {
		next[id] = struct{}{}
	}
	return s.withIDs(next)
}

func (s State) allSelected(ids []string) bool {
	for _, id := range ids {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}

// ToggleGlobal flips global scope. Entering it drops the local set; the
// global flag is an instruction about the filter, not a snapshot of rows.
func (s State) ToggleGlobal() State {
	return State{global: !s.global}
}

// Reset clears everything. Call it on any day, filter or page change so a
// stale selection never applies to a new result set.
func (s State) Reset() State {
	return State{}
}
