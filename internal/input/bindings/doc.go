// Package bindings implements the engine's user-configurable key binding
// state: two binding tables (one keyed by layout key codes, one by physical
// scan codes), chain-suffix matching, duplicate-eliminating merge of the
// two resolution paths, and a derived hotkey reverse index.
//
// # Resolution
//
// A raw press is visible under both a key code and a scan code. Each table
// is consulted for the literal modifier mask and for the Any wildcard form;
// the per-table results are merged so that an action bound through both
// paths triggers once, and literal-modifier bindings outrank wildcard ones.
//
// # Mutation
//
// Bind, Unbind, UnbindKeyset, UnbindAction, and UnbindAll maintain both
// tables and rebuild the hotkey index after each change; bulk operations
// (file loads, defaults) rebuild once at the end. Everything runs on the
// engine's main thread, so the state carries no locks.
//
// # Bind files
//
// ExecuteCommand and Load speak the uikeys.txt directive format: bind,
// unbind, unbindaction, unbindkeyset, unbindall, fakemeta, keysym, keyload,
// keyreload, keydebug, keydefaults. Loads nest; cyclic inclusion is
// detected and rejected.
package bindings
