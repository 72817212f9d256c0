package bindings

import (
	"github.com/riftforge/keybind/internal/input/key"
)

// filterByChain appends to out every binding from in whose stored chain
// fits the pressed chain, preserving order.
func filterByChain(out, in []Binding, pressed key.Chain) []Binding {
	for _, b := range in {
		if pressed.Fits(b.Chain) {
			out = append(out, b)
		}
	}
	return out
}

// mergeByTrigger appends the merge of a key-code-path list and a
// scan-code-path list to out, eliminating cross-table duplicates.
//
// Both inputs are ordered by insertion index and contain no duplicates
// themselves; a duplicate only arises when the same raw action line was
// bound through both tables. The list with the lower index keeps its entry:
// a candidate from b whose twin in a has a lower-or-equal index is dropped,
// while a strictly lower-indexed candidate evicts the a entry and joins the
// tail. The a window and the appended tail are then merged stably in
// trigger-priority order.
func mergeByTrigger(out, a, b []Binding) []Binding {
	if len(a) == 0 {
		return append(out, b...)
	}

	aBegin := len(out)
	out = append(out, a...)
	aEnd := len(out)

	if len(b) == 0 {
		return out
	}

	for _, cand := range b {
		add := true
		for i := aBegin; i < aEnd; i++ {
			if cand.Action.Line != out[i].Action.Line {
				continue
			}
			if cand.Index >= out[i].Index {
				add = false
			} else {
				out = append(out[:i], out[i+1:]...)
				aEnd--
			}
			break
		}
		if add {
			out = append(out, cand)
		}
	}

	return inplaceMerge(out, aBegin, aEnd)
}

// inplaceMerge stably merges the two adjacent sorted windows
// out[mid:len(out)] into out[begin:mid] by trigger priority.
func inplaceMerge(out []Binding, begin, mid int) []Binding {
	if mid <= begin || mid >= len(out) {
		return out
	}

	left := make([]Binding, mid-begin)
	copy(left, out[begin:mid])
	right := make([]Binding, len(out)-mid)
	copy(right, out[mid:])

	w := begin
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if triggerLess(right[j], left[i]) {
			out[w] = right[j]
			j++
		} else {
			out[w] = left[i]
			i++
		}
		w++
	}
	for ; i < len(left); i++ {
		out[w] = left[i]
		w++
	}
	for ; j < len(right); j++ {
		out[w] = right[j]
		w++
	}
	return out
}
