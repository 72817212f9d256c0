package key

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Symbol definition errors.
var (
	ErrBadSymbolName = errors.New("invalid key symbol name")
	ErrSymbolTaken   = errors.New("key symbol already defined")
)

// CodeSet maps key names to integer codes within one namespace (layout key
// codes or physical scan codes). A CodeSet carries an immutable default table
// plus user-defined symbols that can be cleared with Reset.
type CodeSet struct {
	defaults map[string]int
	userSyms map[string]int
	names    map[int]string
}

func newCodeSet(defaults map[string]int) *CodeSet {
	cs := &CodeSet{
		defaults: defaults,
		userSyms: make(map[string]int),
		names:    make(map[int]string, len(defaults)),
	}
	// Prefer the shortest name when several map to one code.
	for name, code := range defaults {
		if cur, ok := cs.names[code]; !ok || len(name) < len(cur) {
			cs.names[code] = name
		}
	}
	return cs
}

// Code returns the code for a key name, consulting user symbols first.
// The lookup is case-insensitive.
func (cs *CodeSet) Code(name string) (int, bool) {
	name = strings.ToLower(name)
	if code, ok := cs.userSyms[name]; ok {
		return code, true
	}
	code, ok := cs.defaults[name]
	return code, ok
}

// Name returns the canonical name for a code, or a hex escape like "0x2c"
// when the code has no name.
func (cs *CodeSet) Name(code int) string {
	if name, ok := cs.names[code]; ok {
		return name
	}
	return fmt.Sprintf("%#x", code)
}

// AddSymbol defines a user key symbol for a code. The name must be a
// lowercase identifier that does not collide with a default name, a
// modifier name, or a previously defined symbol.
func (cs *CodeSet) AddSymbol(name string, code int) error {
	name = strings.ToLower(name)
	if !validSymbolName(name) {
		return fmt.Errorf("%w: %q", ErrBadSymbolName, name)
	}
	if _, ok := cs.defaults[name]; ok {
		return fmt.Errorf("%w: %q", ErrSymbolTaken, name)
	}
	if _, ok := cs.userSyms[name]; ok {
		return fmt.Errorf("%w: %q", ErrSymbolTaken, name)
	}
	cs.userSyms[name] = code
	return nil
}

// Reset drops all user-defined symbols, restoring the default table.
func (cs *CodeSet) Reset() {
	clear(cs.userSyms)
}

// UserSymbol is a user-defined key symbol, used when saving bindings.
type UserSymbol struct {
	Name string
	Code int
}

// UserSymbols returns the user-defined symbols sorted by name.
func (cs *CodeSet) UserSymbols() []UserSymbol {
	syms := make([]UserSymbol, 0, len(cs.userSyms))
	for name, code := range cs.userSyms {
		syms = append(syms, UserSymbol{Name: name, Code: code})
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].Name < syms[j].Name })
	return syms
}

func validSymbolName(name string) bool {
	if name == "" {
		return false
	}
	if ModifierFromName(name) != ModNone {
		return false
	}
	digitsOnly := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
			digitsOnly = false
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return !digitsOnly
}

// Key codes are layout-dependent logical identifiers. Printable keys use
// their ASCII value, so the hex escape of "," is 0x2c. Named specials sit
// above the printable range; the generic modifier keys (either side) get
// synthetic codes so they can be bound as keys in their own right.
const (
	CodeNone      = -1
	codeBackspace = 8
	codeTab       = 9
	codeEnter     = 13
	codeEscape    = 27
	codeSpace     = 32
	codeDelete    = 127

	codeUp       = 273
	codeDown     = 274
	codeRight    = 275
	codeLeft     = 276
	codeInsert   = 277
	codeHome     = 278
	codeEnd      = 279
	codePageUp   = 280
	codePageDown = 281

	codeF1 = 282 // F2..F12 follow contiguously

	codeNumpadPlus  = 320
	codeNumpadMinus = 321

	codePause = 340

	codeShiftKey = 350
	codeCtrlKey  = 351
	codeAltKey   = 352
	codeMetaKey  = 353
)

func defaultKeyCodes() map[string]int {
	codes := map[string]int{
		"backspace": codeBackspace,
		"tab":       codeTab,
		"enter":     codeEnter,
		"return":    codeEnter,
		"esc":       codeEscape,
		"escape":    codeEscape,
		"space":     codeSpace,
		"delete":    codeDelete,

		"up":       codeUp,
		"down":     codeDown,
		"right":    codeRight,
		"left":     codeLeft,
		"insert":   codeInsert,
		"home":     codeHome,
		"end":      codeEnd,
		"pageup":   codePageUp,
		"pagedown": codePageDown,

		"numpad+": codeNumpadPlus,
		"numpad-": codeNumpadMinus,

		"pause": codePause,

		// modifier keys bound as plain keys ("Any+shift" -> movefast);
		// only a name followed by '+' is read as a modifier, so a bare
		// trailing "shift" resolves here
		"shift": codeShiftKey,
		"ctrl":  codeCtrlKey,
		"alt":   codeAltKey,
		"meta":  codeMetaKey,
	}
	for i := 0; i < 12; i++ {
		codes[fmt.Sprintf("f%d", i+1)] = codeF1 + i
	}
	// printable ASCII, named by the character itself; letters fold to lowercase
	for c := rune(33); c < 127; c++ {
		r := unicode.ToLower(c)
		if _, ok := codes[string(r)]; !ok {
			codes[string(r)] = int(r)
		}
	}
	return codes
}

// ScanPrefix marks a key name as a physical scan code ("sc_a").
const ScanPrefix = "sc_"

// Scan codes are physical positions, numbered per USB HID usage IDs.
func defaultScanCodes() map[string]int {
	codes := map[string]int{
		ScanPrefix + "enter":     40,
		ScanPrefix + "esc":       41,
		ScanPrefix + "backspace": 42,
		ScanPrefix + "tab":       43,
		ScanPrefix + "space":     44,
		ScanPrefix + "minus":     45,
		ScanPrefix + "equals":    46,
		ScanPrefix + "lbracket":  47,
		ScanPrefix + "rbracket":  48,
		ScanPrefix + "backslash": 49,
		ScanPrefix + "semicolon": 51,
		ScanPrefix + "quote":     52,
		ScanPrefix + "grave":     53,
		ScanPrefix + "comma":     54,
		ScanPrefix + "period":    55,
		ScanPrefix + "slash":     56,
	}
	for i := 0; i < 26; i++ {
		codes[ScanPrefix+string(rune('a'+i))] = 4 + i
	}
	for i := 0; i < 9; i++ {
		codes[ScanPrefix+string(rune('1'+i))] = 30 + i
	}
	codes[ScanPrefix+"0"] = 39
	for i := 0; i < 12; i++ {
		codes[fmt.Sprintf("%sf%d", ScanPrefix, i+1)] = 58 + i
	}
	return codes
}
