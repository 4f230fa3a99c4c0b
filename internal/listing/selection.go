package listing

import "strings"

// Selection is a single-select control state: either nothing is selected
// or exactly one value is.
type Selection struct {
	value    string
	selected bool
}

// NoSelection returns the unselected state.
func NoSelection() Selection {
	return Selection{}
}

// Select returns a selection holding value. A blank value is treated as
// no selection.
func Select(value string) Selection {
	value = strings.TrimSpace(value)
	if value == "" {
		return NoSelection()
	}
	return Selection{value: value, selected: true}
}

// Value returns the selected value and whether anything is selected.
func (s Selection) Value() (string, bool) {
	return s.value, s.selected
}

// IsSelected reports whether a value is selected.
func (s Selection) IsSelected() bool {
	return s.selected
}

// Equal reports whether both selections select the same value, ignoring
// case.
func (s Selection) Equal(other Selection) bool {
	if s.selected != other.selected {
		return false
	}
	return !s.selected || fold(s.value) == fold(other.value)
}

// Toggle is the click transition of a category chip: clicking the
// selected value deselects it, clicking any other value selects that one.
func (s Selection) Toggle(value string) Selection {
	next := Select(value)
	if s.Equal(next) {
		return NoSelection()
	}
	return next
}

// String returns the selected value or an empty string.
func (s Selection) String() string {
	return s.value
}
