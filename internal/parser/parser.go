// Package parser turns formula text into an sl.Formula.
//
// The grammar is the fully parenthesized surface syntax of sentential
// logic: single uppercase letters for atoms, ~ for negation, and
// parenthesized binary formulas using &, v, -> and <->. A top-level
// formula may omit its outer parentheses; the parser retries once with
// the whole input wrapped in ( ) before giving up.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/sequitur/internal/sl"
)

// ParseError reports that an input could not be parsed as a formula.
// It is the only error kind this package returns.
type ParseError struct {
	// Input is the original text handed to Parse.
	Input string

	// Message describes the first failure encountered.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Message)
}

// IsParseError returns true if the error is a ParseError.
// Uses errors.As to handle wrapped errors.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Parse parses formula text into a Formula.
//
// Whitespace is stripped and the text is NFC-normalized before scanning.
// If the bare text does not parse, Parse retries once with the whole
// input wrapped in a single pair of parentheses, which lets top-level
// formulas like "A -> B" succeed without explicit outer brackets.
//
// On failure the returned error is a *ParseError describing the first
// reason the unwrapped parse failed.
func Parse(text string) (sl.Formula, error) {
	s := strings.Join(strings.Fields(norm.NFC.String(text)), "")

	f, reason := parse(s)
	if reason == "" {
		return f, nil
	}

	// Outer-paren retry: un-parenthesized top-level binary formulas.
	if wrapped, wrapReason := parse("(" + s + ")"); wrapReason == "" {
		return wrapped, nil
	}

	return nil, &ParseError{Input: text, Message: reason}
}

// parse is the recursive worker. It returns the parsed formula and an
// empty reason on success, or a non-empty reason on failure. Reasons
// describe the failing fragment so the top-level error is actionable.
func parse(s string) (sl.Formula, string) {
	if s == "" {
		return nil, "empty formula"
	}

	// Atom: exactly one character, which must be an uppercase letter.
	if len(s) == 1 {
		c := s[0]
		if c < 'A' || c > 'Z' {
			return nil, fmt.Sprintf("%q is not an uppercase sentence letter", string(c))
		}
		return sl.Atom{Letter: c}, ""
	}

	// Negation: ~ followed by a formula.
	if s[0] == '~' {
		operand, reason := parse(s[1:])
		if reason != "" {
			return nil, reason
		}
		return sl.Negation{Operand: operand}, ""
	}

	// Binary: parenthesized, with the main connective found by a
	// left-to-right scan of the interior at bracket depth 0. The scan
	// commits to the first connective character it sees; for
	// well-formed input there is exactly one at depth 0.
	if s[0] == '(' && s[len(s)-1] == ')' {
		return parseBinary(s[1 : len(s)-1])
	}

	return nil, fmt.Sprintf("%q is not a formula", s)
}

func parseBinary(inner string) (sl.Formula, string) {
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch c := inner[i]; {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0:
			switch c {
			case '&', 'v':
				op := sl.OpAnd
				if c == 'v' {
					op = sl.OpOr
				}
				return parseSides(op, inner[:i], inner[i+1:])
			case '-':
				if i+1 >= len(inner) || inner[i+1] != '>' {
					return nil, fmt.Sprintf("incomplete conditional arrow in %q", inner)
				}
				return parseSides(sl.OpImplies, inner[:i], inner[i+2:])
			case '<':
				if i+3 > len(inner) || inner[i+1:i+3] != "->" {
					return nil, fmt.Sprintf("incomplete biconditional arrow in %q", inner)
				}
				return parseSides(sl.OpIff, inner[:i], inner[i+3:])
			}
		}
	}
	return nil, fmt.Sprintf("no connective at bracket depth 0 in %q", inner)
}

func parseSides(op sl.Op, lhs, rhs string) (sl.Formula, string) {
	left, reason := parse(lhs)
	if reason != "" {
		return nil, reason
	}
	right, reason := parse(rhs)
	if reason != "" {
		return nil, reason
	}
	return sl.Binary{Op: op, Left: left, Right: right}, ""
}
