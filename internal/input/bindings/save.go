package bindings

import (
	"fmt"
	"io"
	"os"
)

// BoundKey is one serialized binding: the literal combination text and the
// raw action line, in insertion-index order.
type BoundKey struct {
	BoundWith string
	Line      string
}

// Serialize returns the current bindings as (display text, raw line) pairs
// ordered by ascending insertion index. Replaying unbindall followed by a
// bind of each pair reproduces an equivalent binding set.
func (b *Bindings) Serialize() []BoundKey {
	all := b.AllBindings()
	out := make([]BoundKey, len(all))
	for i, bind := range all {
		out[i] = BoundKey{BoundWith: bind.BoundWith, Line: bind.Action.Line}
	}
	return out
}

// Save writes the current bindings to a file in bind-file format.
func (b *Bindings) Save(filename string) bool {
	f, err := os.Create(filename)
	if err != nil {
		b.logger.Warn("could not save keys file", "file", filename, "err", err)
		return false
	}
	defer f.Close()

	if err := b.SaveWriter(f); err != nil {
		b.logger.Warn("could not save keys file", "file", filename, "err", err)
		return false
	}
	return true
}

// Print writes the current bindings to stdout.
func (b *Bindings) Print() {
	_ = b.SaveWriter(os.Stdout)
}

// SaveWriter writes the bindings in replayable bind-file format: a header
// clearing the defaults, user key symbols, the fake meta key if one is set,
// then one bind line per binding in insertion order. The annotator hook, if
// any, supplies trailing comments for actions that name known entities.
func (b *Bindings) SaveWriter(w io.Writer) error {
	ew := &errWriter{w: w}

	ew.printf("\n")
	ew.printf("unbindall          // clear the defaults\n")
	ew.printf("unbind %s %s  // clear the defaults\n", fallbackKey, fallbackAction)
	ew.printf("\n")

	for _, sym := range b.reg.KeyCodes().UserSymbols() {
		ew.printf("keysym %-10s %s\n", sym.Name, b.reg.KeyCodes().Name(sym.Code))
	}
	for _, sym := range b.reg.ScanCodes().UserSymbols() {
		ew.printf("keysym %-10s %s\n", sym.Name, b.reg.ScanCodes().Name(sym.Code))
	}

	if b.fakeMetaKey >= 0 {
		ew.printf("fakemeta  %s\n\n", b.reg.KeyCodes().Name(b.fakeMetaKey))
	}

	for _, bind := range b.AllBindings() {
		var comment string
		if b.annotate != nil {
			comment = b.annotate(bind.Action)
		}
		if comment == "" {
			ew.printf("bind %18s  %s\n", bind.BoundWith, bind.Action.Line)
		} else {
			ew.printf("bind %18s  %-20s// %s\n", bind.BoundWith, bind.Action.Line, comment)
		}
	}

	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
