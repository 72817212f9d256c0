package key

import "testing"

func TestModifierBits(t *testing.T) {
	m := ModNone.With(ModCtrl).With(ModShift)

	if !m.Has(ModCtrl) || !m.Has(ModShift) {
		t.Errorf("With: missing bits in %v", m)
	}
	if m.Has(ModAlt) || m.Has(ModAny) {
		t.Errorf("With: unexpected bits in %v", m)
	}
	if got := m.Without(ModShift); got != ModCtrl {
		t.Errorf("Without = %v, want ModCtrl", got)
	}
}

func TestModifierMasked(t *testing.T) {
	m := ModAny | ModCtrl
	if got := m.Masked(); got != ModCtrl {
		t.Errorf("Masked = %v, want ModCtrl", got)
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		m    Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModAlt | ModShift, "Alt+Shift"},
		{ModAny | ModCtrl, "Any+Ctrl"},
		{ModAny | ModAlt | ModCtrl | ModMeta | ModShift, "Any+Alt+Ctrl+Meta+Shift"},
	}

	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.m, got, tt.want)
		}
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"ctrl", ModCtrl},
		{"Control", ModCtrl},
		{"ALT", ModAlt},
		{"option", ModAlt},
		{"meta", ModMeta},
		{"cmd", ModMeta},
		{"shift", ModShift},
		{"any", ModAny},
		{"bogus", ModNone},
	}

	for _, tt := range tests {
		if got := ModifierFromName(tt.name); got != tt.want {
			t.Errorf("ModifierFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
