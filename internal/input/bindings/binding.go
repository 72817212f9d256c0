package bindings

import (
	"github.com/riftforge/keybind/internal/input/key"
)

// Binding associates a key chain with an action. BoundWith keeps the
// literal combination text the user typed, for display and saving. Index
// is a global strictly increasing insertion number: it is unique per
// accepted binding and never reused while the state lives.
type Binding struct {
	Chain     key.Chain
	Action    Action
	BoundWith string
	Index     int
}

// triggerLess is the trigger-priority order: a binding whose chain tail
// carries the Any wildcard sorts after one that does not, so literal
// modifier matches fire first. Same-priority ties break by ascending
// insertion index.
func triggerLess(a, b Binding) bool {
	aAny := a.Chain.Last().AnyMod()
	bAny := b.Chain.Last().AnyMod()
	if aAny == bAny {
		return a.Index < b.Index
	}
	return bAny
}

// indexLess is plain insertion order, used for the hotkey index and for
// saving: it reflects the order in which the user configured things.
func indexLess(a, b Binding) bool {
	return a.Index < b.Index
}
