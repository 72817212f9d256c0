// Package input assembles raw key presses into candidate chains and feeds
// them to the binding tables. The bindings state stores the chain timeout;
// this package is the collaborator that applies it, using timestamps the
// caller supplies, so nothing here runs a timer or a goroutine.
package input

import (
	"time"

	"github.com/riftforge/keybind/internal/input/bindings"
	"github.com/riftforge/keybind/internal/input/key"
)

// maxChainLength bounds the press history. Stored chains are short; anything
// beyond this can never be a matching suffix.
const maxChainLength = 16

// Sequencer accumulates key presses into parallel key-code and scan-code
// chains and resolves each press against the binding tables. It also tracks
// which keys are currently held so the configured fake meta key can stand in
// for the Meta modifier.
//
// Like the bindings state it drives, a Sequencer is single-threaded: calls
// are expected from the engine's input loop only.
type Sequencer struct {
	bind *bindings.Bindings

	codeChain key.Chain
	scanChain key.Chain
	held      map[int]bool
	last      time.Time
}

// NewSequencer creates a sequencer resolving against b.
func NewSequencer(b *bindings.Bindings) *Sequencer {
	return &Sequencer{
		bind: b,
		held: make(map[int]bool),
	}
}

// KeyPressed records one key press at the given time and returns the actions
// it resolves to, in trigger-priority order. A press arriving later than the
// chain timeout after the previous one starts a new chain. scanCode may be
// key.CodeNone when the physical position is unknown; the press still takes
// part in key-code matching.
func (s *Sequencer) KeyPressed(keyCode, scanCode int, mods key.Modifier, at time.Time) []bindings.Action {
	if !s.last.IsZero() && at.Sub(s.last) > s.bind.ChainTimeout() {
		s.codeChain = s.codeChain[:0]
		s.scanChain = s.scanChain[:0]
	}
	s.last = at

	if fake := s.bind.FakeMetaKey(); fake != key.CodeNone && s.held[fake] {
		mods = mods.With(key.ModMeta)
	}
	s.held[keyCode] = true

	s.codeChain = append(s.codeChain, key.Combination{
		Code:   keyCode,
		Mods:   mods,
		Source: key.SourceKeyCode,
	})
	s.scanChain = append(s.scanChain, key.Combination{
		Code:   scanCode,
		Mods:   mods,
		Source: key.SourceScanCode,
	})
	if len(s.codeChain) > maxChainLength {
		s.codeChain = s.codeChain[1:]
		s.scanChain = s.scanChain[1:]
	}

	return s.bind.Resolve(s.codeChain, s.scanChain)
}

// KeyReleased records a key release. Releases never terminate a chain; they
// only update the held set consulted for the fake meta key.
func (s *Sequencer) KeyReleased(keyCode int) {
	delete(s.held, keyCode)
}

// Reset clears the press history and the held set.
func (s *Sequencer) Reset() {
	s.codeChain = s.codeChain[:0]
	s.scanChain = s.scanChain[:0]
	clear(s.held)
	s.last = time.Time{}
}

// Pending returns copies of the accumulated chains.
func (s *Sequencer) Pending() (codeChain, scanChain key.Chain) {
	return s.codeChain.Clone(), s.scanChain.Clone()
}
