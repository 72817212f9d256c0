package key

import (
	"fmt"
	"strings"
)

// Chain is an ordered, non-empty sequence of combinations read left to
// right as the presses required to trigger a binding. The last element is
// the binding-table lookup key; earlier elements are matched against the
// caller's press history.
type Chain []Combination

// Last returns the trailing combination. Chains are non-empty once parsed;
// Last on an empty chain returns the zero Combination.
func (c Chain) Last() Combination {
	if len(c) == 0 {
		return Combination{}
	}
	return c[len(c)-1]
}

// Fits reports whether the stored chain matches the tail of the pressed
// chain c. The comparison is right-aligned: stored[len-1] against c[len-1]
// and so on backward, each element matched with the wildcard-modifier rule.
// A stored chain longer than the pressed chain never fits.
func (c Chain) Fits(stored Chain) bool {
	if len(stored) == 0 || len(stored) > len(c) {
		return false
	}
	for i := 1; i <= len(stored); i++ {
		if !stored[len(stored)-i].Fits(c[len(c)-i]) {
			return false
		}
	}
	return true
}

// Equals reports whether two chains are element-wise identical.
func (c Chain) Equals(other Chain) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the chain.
func (c Chain) Clone() Chain {
	out := make(Chain, len(c))
	copy(out, c)
	return out
}

// Format renders the chain in its canonical parseable form.
func (r *Registry) FormatChain(c Chain) string {
	parts := make([]string, len(c))
	for i, ks := range c {
		parts[i] = r.Format(ks)
	}
	return strings.Join(parts, ",")
}

// parseSingleChain splits on every comma and parses each element.
func (r *Registry) parseSingleChain(spec string) (Chain, error) {
	parts := strings.Split(spec, ",")
	chain := make(Chain, 0, len(parts))
	for _, part := range parts {
		ks, err := r.ParseCombination(part)
		if err != nil {
			return nil, err
		}
		chain = append(chain, ks)
	}
	return chain, nil
}

// ParseChain parses a chain specification like "Alt+ctrl+a,Alt+ctrl+a".
//
// The separator character may itself be bound as a key ("Any+,"), so a
// failed parse is retried with individual commas rewritten to their hex
// key-code escape. Candidate positions are searched backward from the end
// of the string with an explicit work stack; ",,," ends up parsed as
// "0x2c,0x2c", a two-element chain of comma presses.
func (r *Registry) ParseChain(spec string) (Chain, error) {
	commaCode, _ := r.keys.Code(",")

	type attempt struct {
		s   string
		pos int // rightmost comma index still eligible for rewriting
	}
	stack := []attempt{{s: spec, pos: len(spec) - 1}}

	for len(stack) > 0 {
		at := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if chain, err := r.parseSingleChain(at.s); err == nil {
			return chain, nil
		}

		cpos := -1
		if at.pos >= 0 && at.pos < len(at.s) {
			cpos = strings.LastIndexByte(at.s[:at.pos+1], ',')
		}
		if cpos < 0 {
			continue
		}

		// Depth-first: try leaving this comma as a separator and rewriting
		// an earlier one before rewriting this one.
		rewritten := at.s[:cpos] + fmt.Sprintf("%#x", commaCode) + at.s[cpos+1:]
		stack = append(stack, attempt{s: rewritten, pos: cpos})
		if cpos > 0 {
			stack = append(stack, attempt{s: at.s, pos: cpos - 1})
		}
	}

	return nil, fmt.Errorf("%w: chain %q", ErrInvalidSpec, spec)
}
