package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroValueIsEmpty(t *testing.T) {
	var s State
	assert.True(t, s.Empty())
	assert.False(t, s.Global())
	assert.False(t, s.IsSelected("a"))
}

func TestToggleItem(t *testing.T) {
	var s State
	s = s.ToggleItem("a")
	assert.True(t, s.IsSelected("a"))
	assert.Equal(t, 1, s.Count())

	s = s.ToggleItem("a")
	assert.False(t, s.IsSelected("a"))
	assert.True(t, s.Empty())
}

func TestToggleItem_IgnoredInGlobalScope(t *testing.T) {
	s := State{}.ToggleGlobal()
	s = s.ToggleItem("a")

	assert.True(t, s.Global())
	assert.Equal(t, 0, s.Count())
}

func TestToggleGlobal_ClearsLocalSet(t *testing.T) {
	s := State{}.ToggleItem("a").ToggleItem("b")
	assert.Equal(t, 2, s.Count())

	s = s.ToggleGlobal()
	assert.True(t, s.Global())
	assert.Equal(t, 0, s.Count())
	assert.Nil(t, s.IDs())

	// Global scope covers rows never toggled, including unfetched ones.
	assert.True(t, s.IsSelected("a"))
	assert.True(t, s.IsSelected("never-seen"))

	s = s.ToggleGlobal()
	assert.True(t, s.Empty())
	assert.False(t, s.IsSelected("a"))
}

func TestTogglePage_SelectsAndClears(t *testing.T) {
	page := []string{"a", "b", "c"}

	s := State{}.TogglePage(page)
	assert.Equal(t, 3, s.Count())
	for _, id := range page {
		assert.True(t, s.IsSelected(id))
	}

	// Page fully selected: toggling again clears.
	s = s.TogglePage(page)
	assert.True(t, s.Empty())
}

func TestTogglePage_PartialSelectionBecomesFullPage(t *testing.T) {
	page := []string{"a", "b", "c"}

	s := State{}.ToggleItem("a").TogglePage(page)
	assert.Equal(t, 3, s.Count())

	// An off-page leftover plus the full page: page is fully selected,
	// so the toggle clears everything.
	s = State{}.ToggleItem("z").TogglePage(page).ToggleItem("z").TogglePage(page)
	assert.True(t, s.Empty())
}

func TestTogglePage_ExitsGlobalScope(t *testing.T) {
	s := State{}.ToggleGlobal().TogglePage([]string{"a", "b"})

	assert.False(t, s.Global())
	assert.Equal(t, 2, s.Count())
	assert.False(t, s.IsSelected("c"))
}

func TestReset_ClearsEverything(t *testing.T) {
	assert.True(t, State{}.ToggleItem("a").Reset().Empty())
	assert.True(t, State{}.ToggleGlobal().Reset().Empty())
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	s := State{}.ToggleItem("a")
	_ = s.ToggleItem("b")
	_ = s.ToggleGlobal()

	assert.Equal(t, 1, s.Count())
	assert.True(t, s.IsSelected("a"))
	assert.False(t, s.Global())
}
