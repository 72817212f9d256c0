package input

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/riftforge/keybind/internal/input/bindings"
	"github.com/riftforge/keybind/internal/input/key"
)

func newTestSequencer(t *testing.T) (*Sequencer, *bindings.Bindings) {
	t.Helper()
	b := bindings.New()
	b.SetLogger(log.New(io.Discard))
	return NewSequencer(b), b
}

func keyCodeOf(t *testing.T, b *bindings.Bindings, name string) int {
	t.Helper()
	ks, err := b.Registry().ParseCombination(name)
	if err != nil {
		t.Fatalf("ParseCombination(%q) error: %v", name, err)
	}
	return ks.Code
}

func TestKeyPressedResolves(t *testing.T) {
	s, b := newTestSequencer(t)
	b.Bind("Shift+a", "attack")

	got := s.KeyPressed(keyCodeOf(t, b, "a"), 4, key.ModShift, time.Now())
	if len(got) != 1 || got[0].Command != "attack" {
		t.Fatalf("resolved = %+v", got)
	}
}

func TestChainWithinTimeout(t *testing.T) {
	s, b := newTestSequencer(t)
	b.Bind("Alt+ctrl+a,Alt+ctrl+a", "chatswitchally")

	aCode := keyCodeOf(t, b, "a")
	mods := key.ModAlt | key.ModCtrl
	t0 := time.Now()

	if got := s.KeyPressed(aCode, 4, mods, t0); len(got) != 0 {
		t.Fatalf("first press resolved = %+v", got)
	}
	got := s.KeyPressed(aCode, 4, mods, t0.Add(b.ChainTimeout()/2))
	if len(got) != 1 || got[0].Command != "chatswitchally" {
		t.Fatalf("second press resolved = %+v", got)
	}
}

func TestChainExpiresAfterTimeout(t *testing.T) {
	s, b := newTestSequencer(t)
	b.Bind("Alt+ctrl+a,Alt+ctrl+a", "chatswitchally")

	aCode := keyCodeOf(t, b, "a")
	mods := key.ModAlt | key.ModCtrl
	t0 := time.Now()

	s.KeyPressed(aCode, 4, mods, t0)
	got := s.KeyPressed(aCode, 4, mods, t0.Add(b.ChainTimeout()+time.Millisecond))
	if len(got) != 0 {
		t.Fatalf("expired chain still resolved = %+v", got)
	}

	codeChain, scanChain := s.Pending()
	if len(codeChain) != 1 || len(scanChain) != 1 {
		t.Errorf("pending after expiry = %d/%d elements", len(codeChain), len(scanChain))
	}
}

func TestScanCodeResolution(t *testing.T) {
	s, b := newTestSequencer(t)
	b.Bind("sc_a", "attack")

	// the scan table matches by physical position, whatever the key code says
	got := s.KeyPressed(keyCodeOf(t, b, "q"), 4, key.ModNone, time.Now())
	if len(got) != 1 || got[0].Command != "attack" {
		t.Fatalf("resolved = %+v", got)
	}

	// an unknown position still resolves through the key-code table
	b.Bind("q", "stop")
	s.Reset()
	got = s.KeyPressed(keyCodeOf(t, b, "q"), key.CodeNone, key.ModNone, time.Now())
	if len(got) != 1 || got[0].Command != "stop" {
		t.Fatalf("resolved = %+v", got)
	}
}

func TestFakeMetaKeyHeld(t *testing.T) {
	s, b := newTestSequencer(t)
	b.SetFakeMetaKey("space")
	b.Bind("Meta+b", "sharedialog")

	spaceCode := keyCodeOf(t, b, "space")
	bCode := keyCodeOf(t, b, "b")
	t0 := time.Now()

	// without the fake meta held, no Meta modifier
	if got := s.KeyPressed(bCode, 5, key.ModNone, t0); len(got) != 0 {
		t.Fatalf("resolved without meta = %+v", got)
	}

	s.KeyPressed(spaceCode, 44, key.ModNone, t0.Add(time.Millisecond))
	got := s.KeyPressed(bCode, 5, key.ModNone, t0.Add(2*time.Millisecond))
	if len(got) != 1 || got[0].Command != "sharedialog" {
		t.Fatalf("resolved with fake meta held = %+v", got)
	}

	s.KeyReleased(spaceCode)
	s.Reset()
	if got := s.KeyPressed(bCode, 5, key.ModNone, t0.Add(3*time.Millisecond)); len(got) != 0 {
		t.Fatalf("resolved after release = %+v", got)
	}
}

func TestPressHistoryBounded(t *testing.T) {
	s, b := newTestSequencer(t)
	b.SetChainTimeout(time.Hour)

	aCode := keyCodeOf(t, b, "a")
	t0 := time.Now()
	for i := 0; i < maxChainLength*2; i++ {
		s.KeyPressed(aCode, 4, key.ModNone, t0.Add(time.Duration(i)*time.Millisecond))
	}

	codeChain, scanChain := s.Pending()
	if len(codeChain) != maxChainLength || len(scanChain) != maxChainLength {
		t.Errorf("pending = %d/%d elements, want %d", len(codeChain), len(scanChain), maxChainLength)
	}
}
