package bindings

import (
	"testing"

	"github.com/riftforge/keybind/internal/input/key"
)

func mkBind(line string, index int, anyTail bool) Binding {
	mods := key.ModNone
	if anyTail {
		mods = key.ModAny
	}
	return Binding{
		Chain:  key.Chain{{Code: 'a', Mods: mods, Source: key.SourceKeyCode}},
		Action: NewAction(line),
		Index:  index,
	}
}

func lines(binds []Binding) []string {
	out := make([]string, len(binds))
	for i, b := range binds {
		out[i] = b.Action.Line
	}
	return out
}

func TestFilterByChain(t *testing.T) {
	lit := key.Combination{Code: 'a', Mods: key.ModShift, Source: key.SourceKeyCode}
	wild := key.Combination{Code: 'a', Mods: key.ModAny, Source: key.SourceKeyCode}

	in := []Binding{
		{Chain: key.Chain{lit}, Action: NewAction("one"), Index: 1},
		{Chain: key.Chain{wild}, Action: NewAction("two"), Index: 2},
		{Chain: key.Chain{lit, lit}, Action: NewAction("three"), Index: 3},
	}

	pressed := key.Chain{{Code: 'a', Mods: key.ModShift, Source: key.SourceKeyCode}}
	got := filterByChain(nil, in, pressed)
	want := []string{"one", "two"}
	if len(got) != 2 || got[0].Action.Line != want[0] || got[1].Action.Line != want[1] {
		t.Errorf("filter = %v, want %v", lines(got), want)
	}
}

func TestMergeByTrigger(t *testing.T) {
	tests := []struct {
		name string
		a, b []Binding
		want []string
	}{
		{
			name: "empty a passes b through",
			b:    []Binding{mkBind("x", 1, false), mkBind("y", 2, false)},
			want: []string{"x", "y"},
		},
		{
			name: "empty b passes a through",
			a:    []Binding{mkBind("x", 1, false)},
			want: []string{"x"},
		},
		{
			name: "duplicate with higher index dropped",
			a:    []Binding{mkBind("x", 1, false)},
			b:    []Binding{mkBind("x", 2, false)},
			want: []string{"x"},
		},
		{
			name: "duplicate with lower index evicts",
			a:    []Binding{mkBind("x", 5, false), mkBind("y", 6, false)},
			b:    []Binding{mkBind("x", 2, false)},
			want: []string{"x", "y"},
		},
		{
			name: "interleave by index within same priority",
			a:    []Binding{mkBind("p", 1, false), mkBind("r", 3, false)},
			b:    []Binding{mkBind("q", 2, false)},
			want: []string{"p", "q", "r"},
		},
		{
			name: "literal tail beats wildcard tail regardless of index",
			a:    []Binding{mkBind("w", 1, true)},
			b:    []Binding{mkBind("l", 2, false)},
			want: []string{"l", "w"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeByTrigger(nil, tt.a, tt.b)
			if len(got) != len(tt.want) {
				t.Fatalf("merge = %v, want %v", lines(got), tt.want)
			}
			for i := range tt.want {
				if got[i].Action.Line != tt.want[i] {
					t.Fatalf("merge = %v, want %v", lines(got), tt.want)
				}
			}
		})
	}
}

func TestMergeByTriggerEvictionKeepsLowIndexOrder(t *testing.T) {
	// the evicted duplicate re-enters through the tail and the stable merge
	// places it by its (lower) index
	a := []Binding{mkBind("x", 4, false), mkBind("y", 5, false)}
	b := []Binding{mkBind("x", 2, false), mkBind("z", 6, false)}

	got := mergeByTrigger(nil, a, b)
	want := []string{"x", "y", "z"}
	if len(got) != 3 {
		t.Fatalf("merge = %v", lines(got))
	}
	for i := range want {
		if got[i].Action.Line != want[i] {
			t.Fatalf("merge = %v, want %v", lines(got), want)
		}
	}
	if got[0].Index != 2 {
		t.Errorf("kept duplicate Index = %d, want 2", got[0].Index)
	}
}

func TestTriggerLess(t *testing.T) {
	lit1 := mkBind("a", 1, false)
	lit2 := mkBind("b", 2, false)
	any1 := mkBind("c", 1, true)

	if !triggerLess(lit1, lit2) {
		t.Error("lower index should sort first at equal priority")
	}
	if triggerLess(lit2, lit1) {
		t.Error("higher index sorted first")
	}
	if !triggerLess(lit2, any1) {
		t.Error("literal should sort before wildcard")
	}
	if triggerLess(any1, lit2) {
		t.Error("wildcard sorted before literal")
	}
}
