package bindings

import (
	"bufio"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// DefaultFilename is the conventional user key bindings file.
const DefaultFilename = "uikeys.txt"

// splitFields tokenizes a line into at most max whitespace-separated
// fields. The final field is greedy: it keeps embedded whitespace.
func splitFields(line string, max int) []string {
	var out []string
	s := strings.TrimSpace(line)
	for s != "" && len(out) < max-1 {
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			break
		}
		out = append(out, s[:i])
		s = strings.TrimLeftFunc(s[i:], unicode.IsSpace)
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}

// cleanLine strips a trailing // comment and surrounding whitespace.
func cleanLine(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// ExecuteCommand runs one bind-file directive line. Unknown directives and
// directives whose mutator reports failure return false; nothing is thrown
// and partial effects of earlier lines are retained.
func (b *Bindings) ExecuteCommand(line string) bool {
	words := splitFields(line, 3)
	if len(words) == 0 {
		return false
	}

	switch strings.ToLower(words[0]) {
	case "keydebug":
		if len(words) == 1 {
			b.debug = !b.debug
		} else {
			v, _ := strconv.Atoi(words[1])
			b.debug = v != 0
		}
		return true

	case "keyload":
		filename := DefaultFilename
		if len(words) > 1 {
			filename = words[1]
		}
		if b.debug {
			b.logger.Debug("keyload", "line", line)
		}
		// Bare keyload predates keydefaults; keep its old meaning.
		if len(b.loadStack) == 0 && len(words) == 1 {
			b.LoadDefaults()
		}
		return b.Load(filename)

	case "keyreload":
		filename := DefaultFilename
		if len(words) > 1 {
			filename = words[1]
		}
		if b.debug {
			b.logger.Debug("keyreload", "line", line)
		}
		b.ExecuteCommand("unbindall")
		b.ExecuteCommand("unbind enter chat")
		if len(b.loadStack) == 0 && len(words) == 1 {
			b.LoadDefaults()
		}
		return b.Load(filename)

	case "keydefaults":
		b.LoadDefaults()
		return true

	case "fakemeta":
		return len(words) > 1 && b.SetFakeMetaKey(words[1])

	case "keysym":
		return len(words) > 2 && b.DefineKeySymbol(words[1], words[2])

	case "bind":
		return len(words) > 2 && b.Bind(words[1], words[2])

	case "unbind":
		return len(words) > 2 && b.Unbind(words[1], words[2])

	case "unbindaction":
		return len(words) > 1 && b.UnbindAction(words[1])

	case "unbindkeyset":
		return len(words) > 1 && b.UnbindKeyset(words[1])

	case "unbindall":
		b.UnbindAll()
		return true
	}

	return false
}

// Load reads a bind file and executes every directive in it. A file that is
// already on the load stack is rejected: effects of lines executed before
// the cyclic reference are retained, nothing recurses.
func (b *Bindings) Load(filename string) bool {
	if slices.Contains(b.loadStack, filename) {
		b.logger.Warn("cyclic keys file inclusion",
			"file", filename,
			"stack", strings.Join(b.loadStack, " -> "))
		return false
	}

	f, err := os.Open(filename)
	if err != nil {
		b.logger.Warn("could not open keys file", "file", filename, "err", err)
		return false
	}
	defer f.Close()

	return b.load(filename, f)
}

// LoadReader is Load over an arbitrary reader, registered on the load
// stack under the given name.
func (b *Bindings) LoadReader(name string, r io.Reader) bool {
	if slices.Contains(b.loadStack, name) {
		b.logger.Warn("cyclic keys file inclusion",
			"file", name,
			"stack", strings.Join(b.loadStack, " -> "))
		return false
	}
	return b.load(name, r)
}

func (b *Bindings) load(name string, r io.Reader) bool {
	if b.debug {
		b.logger.Debug("loading keys file", "file", name, "stack", strings.Join(b.loadStack, " -> "))
	}

	b.loadStack = append(b.loadStack, name)
	restore := b.suspendHotkeyRebuild()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := cleanLine(scanner.Text())
		if line == "" {
			continue
		}
		b.ExecuteCommand(line)
	}

	b.loadStack = b.loadStack[:len(b.loadStack)-1]
	restore()
	return true
}
