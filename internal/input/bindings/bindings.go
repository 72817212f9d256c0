package bindings

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/riftforge/keybind/internal/input/key"
)

// DefaultChainTimeout is the default maximum time the dispatcher keeps a
// multi-press chain alive between keystrokes. The timing itself is enforced
// by the dispatcher; this state only stores the configured value.
const DefaultChainTimeout = 750 * time.Millisecond

// keyMap is one binding table: trailing combination to ordered binding list.
type keyMap map[key.Combination][]Binding

// Bindings is the engine-wide key binding state: the two binding tables,
// the derived hotkey index, the key-name registry, and the insertion
// counter. All operations run on the engine's main thread; mutations and
// lookups never interleave.
type Bindings struct {
	reg *key.Registry

	codeBindings keyMap
	scanBindings keyMap

	// hotkeys is the derived reverse index, action identity to the literal
	// shortcut texts bound to it. Rebuilt, never hand-mutated.
	hotkeys map[string][]string

	bindingCount int
	fakeMetaKey  int
	chainTimeout time.Duration

	debug        bool
	buildHotkeys bool

	// loadStack holds the names of key files currently being loaded, to
	// reject cyclic inclusion.
	loadStack []string

	stateful map[string]struct{}

	logger   *log.Logger
	annotate func(Action) string
}

// New creates an empty binding state with the default key tables.
// No defaults are bound; call LoadDefaults for the stock set.
func New() *Bindings {
	b := &Bindings{
		reg:          key.NewRegistry(),
		codeBindings: make(keyMap, 32),
		scanBindings: make(keyMap, 32),
		hotkeys:      make(map[string][]string, 32),
		fakeMetaKey:  key.CodeNone,
		chainTimeout: DefaultChainTimeout,
		buildHotkeys: true,
		stateful:     make(map[string]struct{}, len(statefulCommands)),
		logger:       log.Default(),
	}
	for _, cmd := range statefulCommands {
		b.stateful[cmd] = struct{}{}
	}
	return b
}

// Registry returns the key-name registry backing this state.
func (b *Bindings) Registry() *key.Registry { return b.reg }

// SetLogger replaces the logger used for warnings and debug traces.
func (b *Bindings) SetLogger(logger *log.Logger) { b.logger = logger }

// SetAnnotator installs a hook that supplies a human comment for an action
// when its bindings are saved, or "" for none.
func (b *Bindings) SetAnnotator(fn func(Action) string) { b.annotate = fn }

// ChainTimeout returns the configured chain keystroke timeout.
func (b *Bindings) ChainTimeout() time.Duration { return b.chainTimeout }

// SetChainTimeout updates the chain keystroke timeout. Wired to the
// configuration layer's change notifications.
func (b *Bindings) SetChainTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	b.chainTimeout = d
}

// FakeMetaKey returns the key code standing in for the Meta modifier,
// or key.CodeNone when unset.
func (b *Bindings) FakeMetaKey() int { return b.fakeMetaKey }

// DebugEnabled reports whether keydebug tracing is on.
func (b *Bindings) DebugEnabled() bool { return b.debug }

func (b *Bindings) tableFor(ks key.Combination) keyMap {
	if ks.IsKeyCode() {
		return b.codeBindings
	}
	return b.scanBindings
}

// Bind parses keystr into a chain and line into an action and inserts the
// binding into the table selected by the chain tail's namespace. Binding an
// identical raw line to the same tail combination again is a no-op that
// consumes no index. Stateful commands have their tail forced to the
// wildcard-modifier form. Returns false, mutating nothing, when either
// parse fails.
func (b *Bindings) Bind(keystr, line string) bool {
	if b.debug {
		b.logger.Debug("bind", "index", b.bindingCount+1, "key", keystr, "line", line)
	}

	action := NewAction(line)
	if action.Command == "" {
		b.logger.Warn("bind: empty action", "line", line)
		return false
	}

	chain, err := b.reg.ParseChain(keystr)
	if err != nil {
		b.logger.Warn("bind: could not parse key", "key", keystr)
		return false
	}

	// Stateful commands must fire under any modifier combination.
	if _, ok := b.stateful[action.Command]; ok {
		chain[len(chain)-1] = chain[len(chain)-1].WithAnyMod()
	}

	tail := chain.Last()
	b.insert(b.tableFor(tail), tail, Binding{
		Chain:     chain,
		Action:    action,
		BoundWith: keystr,
	})
	b.rebuildHotkeys()
	return true
}

// insert appends a binding to the tail combination's list unless an entry
// with the identical raw line already sits there.
func (b *Bindings) insert(table keyMap, tail key.Combination, bind Binding) {
	list := table[tail]
	for _, existing := range list {
		if existing.Action.Line == bind.Action.Line {
			return
		}
	}
	b.bindingCount++
	bind.Index = b.bindingCount
	table[tail] = append(list, bind)
}

// Unbind removes every binding under the exact combination whose action
// command matches. Chains are not accepted here, only single trailing
// combinations. Returns whether anything was removed.
func (b *Bindings) Unbind(keystr, command string) bool {
	ks, err := b.reg.ParseCombination(keystr)
	if err != nil {
		b.logger.Warn("unbind: could not parse key", "key", keystr)
		return false
	}
	if b.debug {
		b.logger.Debug("unbind", "key", keystr, "command", command)
	}

	table := b.tableFor(ks)
	list, ok := table[ks]
	if !ok {
		return false
	}

	list, removed := removeCommand(list, command)
	if len(list) == 0 {
		delete(table, ks)
	} else {
		table[ks] = list
	}
	if removed {
		b.rebuildHotkeys()
	}
	return removed
}

// UnbindKeyset removes the table entry for the exact combination wholesale.
func (b *Bindings) UnbindKeyset(keystr string) bool {
	ks, err := b.reg.ParseCombination(keystr)
	if err != nil {
		b.logger.Warn("unbindkeyset: could not parse key", "key", keystr)
		return false
	}
	if b.debug {
		b.logger.Debug("unbindkeyset", "key", keystr)
	}

	table := b.tableFor(ks)
	if _, ok := table[ks]; !ok {
		return false
	}
	delete(table, ks)
	b.rebuildHotkeys()
	return true
}

// UnbindAction removes every binding with the given command from both
// tables, dropping combination entries that become empty.
func (b *Bindings) UnbindAction(command string) bool {
	if b.debug {
		b.logger.Debug("unbindaction", "command", command)
	}
	removedCode := removeActionFromTable(b.codeBindings, command)
	removedScan := removeActionFromTable(b.scanBindings, command)
	if removedCode || removedScan {
		b.rebuildHotkeys()
		return true
	}
	return false
}

func removeActionFromTable(table keyMap, command string) bool {
	success := false
	for ks, list := range table {
		list, removed := removeCommand(list, command)
		if !removed {
			continue
		}
		success = true
		if len(list) == 0 {
			delete(table, ks)
		} else {
			table[ks] = list
		}
	}
	return success
}

// removeCommand filters a binding list in place, dropping entries whose
// action command matches. Relative order of survivors is preserved.
func removeCommand(list []Binding, command string) ([]Binding, bool) {
	kept := list[:0]
	removed := false
	for _, bind := range list {
		if bind.Action.Command == command {
			removed = true
			continue
		}
		kept = append(kept, bind)
	}
	return kept, removed
}

// UnbindAll empties both tables, drops user key symbols, and resets the
// insertion counter. One mandatory fallback binding (enter -> chat) is
// re-established at the reserved index 0, so the UI is never left without
// usable input and the next accepted Bind receives index 1.
func (b *Bindings) UnbindAll() {
	clear(b.codeBindings)
	clear(b.scanBindings)
	b.reg.Reset()
	b.bindingCount = 0

	chain, err := b.reg.ParseChain(fallbackKey)
	if err == nil {
		tail := chain.Last()
		b.codeBindings[tail] = append(b.codeBindings[tail], Binding{
			Chain:     chain,
			Action:    NewAction(fallbackAction),
			BoundWith: fallbackKey,
		})
	}

	if b.debug {
		b.logger.Debug("unbindall")
	}
	b.rebuildHotkeys()
}

// SetFakeMetaKey assigns a key code that doubles as the Meta modifier, or
// clears the assignment when keystr is "none". Scan codes are rejected.
func (b *Bindings) SetFakeMetaKey(keystr string) bool {
	if strings.EqualFold(keystr, "none") {
		b.fakeMetaKey = key.CodeNone
		return true
	}
	ks, err := b.reg.ParseCombination(keystr)
	if err != nil {
		b.logger.Warn("fakemeta: could not parse key", "key", keystr)
		return false
	}
	if !ks.IsKeyCode() {
		b.logger.Warn("fakemeta: cannot assign to a scan code", "key", keystr)
		return false
	}
	b.fakeMetaKey = ks.Code
	return true
}

// DefineKeySymbol registers a user key alias for whatever code the value
// string parses to, in that code's namespace. Aliases for scan codes must
// carry the scan prefix so they remain parseable.
func (b *Bindings) DefineKeySymbol(name, value string) bool {
	ks, err := b.reg.ParseCombination(value)
	if err != nil {
		b.logger.Warn("keysym: could not parse key", "key", value)
		return false
	}

	var set *key.CodeSet
	if ks.IsKeyCode() {
		set = b.reg.KeyCodes()
	} else {
		if !strings.HasPrefix(strings.ToLower(name), key.ScanPrefix) {
			b.logger.Warn("keysym: scan code symbols need the sc_ prefix", "name", name)
			return false
		}
		set = b.reg.ScanCodes()
	}
	if err := set.AddSymbol(name, ks.Code); err != nil {
		b.logger.Warn("keysym: could not add symbol", "name", name)
		return false
	}
	return true
}

// BindingList returns the ordered binding list registered under the exact
// combination, or nil if absent. With forceAny the lookup targets the
// wildcard-modifier form of the combination instead of the literal one.
func (b *Bindings) BindingList(ks key.Combination, forceAny bool) []Binding {
	if ks.Code < 0 {
		return nil
	}
	if forceAny {
		ks = ks.WithAnyMod()
	}
	return b.tableFor(ks)[ks]
}

// LookupChain resolves the pressed chain against the single table selected
// by its tail, literal-modifier entries first and wildcard entries after
// (skipped when the tail itself is already a wildcard).
func (b *Bindings) LookupChain(pressed key.Chain) []Binding {
	if len(pressed) == 0 {
		return nil
	}
	out := filterByChain(nil, b.BindingList(pressed.Last(), false), pressed)
	if !pressed.Last().AnyMod() {
		out = filterByChain(out, b.BindingList(pressed.Last(), true), pressed)
	}
	return out
}

// BindingsFor resolves a pressed key-code chain and the parallel scan-code
// chain into one ordered, duplicate-free binding list. The literal-modifier
// lookups of both tables are merged first, then the wildcard lookups, and
// the wildcard partial list follows the literal one.
func (b *Bindings) BindingsFor(codeChain, scanChain key.Chain) []Binding {
	var merged, kList, sList []Binding

	if len(codeChain) > 0 && !codeChain.Last().AnyMod() {
		kList = filterByChain(nil, b.BindingList(codeChain.Last(), false), codeChain)
	}
	if len(scanChain) > 0 && !scanChain.Last().AnyMod() {
		sList = filterByChain(nil, b.BindingList(scanChain.Last(), false), scanChain)
	}
	merged = mergeByTrigger(merged, kList, sList)

	kList, sList = nil, nil
	if len(codeChain) > 0 {
		kList = filterByChain(nil, b.BindingList(codeChain.Last(), true), codeChain)
	}
	if len(scanChain) > 0 {
		sList = filterByChain(nil, b.BindingList(scanChain.Last(), true), scanChain)
	}
	merged = mergeByTrigger(merged, kList, sList)

	if b.debug {
		b.debugList(codeChain, scanChain, merged)
	}
	return merged
}

// Resolve returns the ordered actions triggered by the pressed chains.
func (b *Bindings) Resolve(codeChain, scanChain key.Chain) []Action {
	matched := b.BindingsFor(codeChain, scanChain)
	actions := make([]Action, len(matched))
	for i, bind := range matched {
		actions[i] = bind.Action
	}
	return actions
}

// ResolveKey resolves a single press seen under both identities.
func (b *Bindings) ResolveKey(keyCode, scanCode int, mods key.Modifier) []Action {
	codeChain := key.Chain{{Code: keyCode, Mods: mods, Source: key.SourceKeyCode}}
	scanChain := key.Chain{{Code: scanCode, Mods: mods, Source: key.SourceScanCode}}
	return b.Resolve(codeChain, scanChain)
}

// AllBindings returns every binding from both tables, ordered by ascending
// insertion index.
func (b *Bindings) AllBindings() []Binding {
	merged := make([]Binding, 0, len(b.hotkeys)+1)
	for _, list := range b.codeBindings {
		merged = append(merged, list...)
	}
	for _, list := range b.scanBindings {
		merged = append(merged, list...)
	}
	sort.Slice(merged, func(i, j int) bool { return indexLess(merged[i], merged[j]) })
	return merged
}

// BuildHotkeyMap recomputes the reverse index from scratch. Entries are
// ordered by insertion index, reflecting the order the user configured
// things, not trigger priority.
func (b *Bindings) BuildHotkeyMap() {
	if b.debug {
		b.logger.Debug("rebuilding hotkey map")
	}
	clear(b.hotkeys)
	for _, bind := range b.AllBindings() {
		id := bind.Action.Identity()
		b.hotkeys[id] = append(b.hotkeys[id], bind.BoundWith)
	}
}

// HotkeysFor returns the literal shortcut texts bound to an action
// identity ("command" or "command extra"), in configuration order.
func (b *Bindings) HotkeysFor(action string) []string {
	return b.hotkeys[action]
}

// rebuildHotkeys rebuilds the reverse index unless a bulk operation has
// suspended rebuilding.
func (b *Bindings) rebuildHotkeys() {
	if b.buildHotkeys {
		b.BuildHotkeyMap()
	}
}

// suspendHotkeyRebuild turns off per-mutation index rebuilding and returns
// a restore func that re-enables it and rebuilds once.
func (b *Bindings) suspendHotkeyRebuild() func() {
	prev := b.buildHotkeys
	b.buildHotkeys = false
	return func() {
		b.buildHotkeys = prev
		b.rebuildHotkeys()
	}
}

func (b *Bindings) debugList(codeChain, scanChain key.Chain, list []Binding) {
	b.logger.Debug("resolved binding list",
		"codeChain", b.reg.FormatChain(codeChain),
		"scanChain", b.reg.FormatChain(scanChain),
		"count", len(list))
	for i, bind := range list {
		b.logger.Debug("  entry",
			"n", i+1,
			"action", bind.Action.Command,
			"rawline", bind.Action.Line,
			"shortcut", bind.BoundWith,
			"index", bind.Index)
	}
}
