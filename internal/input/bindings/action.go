package bindings

import "strings"

// Action is the command side of a binding: a lowercase command verb, an
// optional argument string, and the original unprocessed text. The raw line
// is what display and keysave round-tripping preserve; it is also the
// identity used for duplicate elimination across the two binding tables.
type Action struct {
	// Command is the lowercased first word of the line.
	Command string

	// Extra is everything after the command, whitespace preserved.
	Extra string

	// Line is the unprocessed text as the user typed it.
	Line string
}

// NewAction parses a raw action line. A line with no words yields an Action
// with an empty Command, which no mutator accepts.
func NewAction(line string) Action {
	a := Action{Line: line}
	words := splitFields(line, 2)
	if len(words) > 0 {
		a.Command = strings.ToLower(words[0])
	}
	if len(words) > 1 {
		a.Extra = words[1]
	}
	return a
}

// Identity returns the hotkey-index key for the action: the command,
// plus a single space and the argument when one is present.
func (a Action) Identity() string {
	if a.Extra == "" {
		return a.Command
	}
	return a.Command + " " + a.Extra
}
