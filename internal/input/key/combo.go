package key

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrUnknownKey  = errors.New("unknown key name")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Source distinguishes the two key namespaces.
type Source uint8

const (
	// SourceKeyCode marks a layout-dependent logical key.
	SourceKeyCode Source = iota

	// SourceScanCode marks a physical key position.
	SourceScanCode
)

// Combination is one key press descriptor: a key identity, a modifier mask
// (possibly carrying the Any wildcard bit), and the namespace the identity
// lives in. It is comparable and serves directly as a binding-table key.
type Combination struct {
	Code   int
	Mods   Modifier
	Source Source
}

// AnyMod reports whether the combination carries the wildcard modifier bit.
func (c Combination) AnyMod() bool {
	return c.Mods.Has(ModAny)
}

// WithAnyMod returns the wildcard-modifier form of the combination.
// The concrete modifier bits are dropped: "Any+x" is one table key no
// matter which modifiers were typed alongside it.
func (c Combination) WithAnyMod() Combination {
	c.Mods = ModAny
	return c
}

// IsKeyCode reports whether the combination is keyed by layout key code.
func (c Combination) IsKeyCode() bool {
	return c.Source == SourceKeyCode
}

// Fits reports whether the stored combination c matches the pressed
// combination in. The key identity must match exactly; the modifier masks
// must be equal unless either side carries the wildcard bit.
func (c Combination) Fits(in Combination) bool {
	if c.Code != in.Code || c.Source != in.Source {
		return false
	}
	return c.AnyMod() || in.AnyMod() || c.Mods.Masked() == in.Mods.Masked()
}

// Registry resolves key names in both namespaces, including user-defined
// symbols. One Registry backs one binding state.
type Registry struct {
	keys  *CodeSet
	scans *CodeSet
}

// NewRegistry creates a registry with the default key and scan code tables.
func NewRegistry() *Registry {
	return &Registry{
		keys:  newCodeSet(defaultKeyCodes()),
		scans: newCodeSet(defaultScanCodes()),
	}
}

// KeyCodes returns the layout key-code namespace.
func (r *Registry) KeyCodes() *CodeSet { return r.keys }

// ScanCodes returns the physical scan-code namespace.
func (r *Registry) ScanCodes() *CodeSet { return r.scans }

// Reset drops user-defined symbols from both namespaces.
func (r *Registry) Reset() {
	r.keys.Reset()
	r.scans.Reset()
}

// ParseCombination parses a single combination like "Alt+Shift+a",
// "Any+sc_j", "Alt++" (literal plus key) or "0x2c" (hex key-code escape).
// Parsing is case-insensitive. Modifiers are read from the front; a name is
// only treated as a modifier when it is followed by '+', so "Any+ctrl" binds
// the control key itself under the wildcard.
func (r *Registry) ParseCombination(spec string) (Combination, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return Combination{}, ErrEmptySpec
	}

	var mods Modifier
	for {
		i := strings.IndexByte(s, '+')
		if i <= 0 {
			break
		}
		mod := ModifierFromName(s[:i])
		if mod == ModNone {
			break
		}
		mods = mods.With(mod)
		s = s[i+1:]
	}
	if s == "" {
		return Combination{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	if mods.Has(ModAny) {
		mods = ModAny
	}

	if strings.HasPrefix(s, "0x") {
		code, err := strconv.ParseInt(s[2:], 16, 32)
		if err != nil {
			return Combination{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
		}
		return Combination{Code: int(code), Mods: mods, Source: SourceKeyCode}, nil
	}

	if strings.HasPrefix(s, ScanPrefix) {
		code, ok := r.scans.Code(s)
		if !ok {
			return Combination{}, fmt.Errorf("%w: %q", ErrUnknownKey, spec)
		}
		return Combination{Code: code, Mods: mods, Source: SourceScanCode}, nil
	}

	code, ok := r.keys.Code(s)
	if !ok {
		return Combination{}, fmt.Errorf("%w: %q", ErrUnknownKey, spec)
	}
	return Combination{Code: code, Mods: mods, Source: SourceKeyCode}, nil
}

// Format renders a combination in its canonical parseable form.
func (r *Registry) Format(c Combination) string {
	var name string
	if c.IsKeyCode() {
		name = r.keys.Name(c.Code)
	} else {
		name = r.scans.Name(c.Code)
	}
	if mods := c.Mods.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}
