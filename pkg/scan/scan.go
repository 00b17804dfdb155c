// Package scan implements the character-level scanner shared by the
// formatting engine. It tracks bracket nesting depth and string-literal
// state so that property delimiting, parameter splitting and signature
// parsing all rely on one mechanism instead of ad hoc patterns.
package scan

import "strings"

// Pairs selects which bracket kinds contribute to nesting depth.
type Pairs uint8

const (
	Parens Pairs = 1 << iota
	Braces
	Squares
	Angles
)

// Blocks covers the bracket kinds that delimit structural nesting in
// declaration bodies. Angles are opt-in because "<" is only a bracket in
// type positions.
const Blocks = Parens | Braces | Squares

// All additionally tracks generic brackets.
const All = Blocks | Angles

// Tracker accumulates bracket depth, string-literal state and comment
// state over a stream of characters. State carries across Feed calls, so a
// single Tracker can walk a multi-line construct. Callers feeding one line
// at a time must call EndLine between lines so line comments terminate.
type Tracker struct {
	pairs   Pairs
	depth   int
	quote   byte // active string delimiter, 0 when outside string literals
	escaped bool

	slash        bool // pending "/" that may open a comment
	star         bool // pending "*" that may close a block comment
	lineComment  bool
	blockComment bool
}

// NewTracker returns a Tracker counting the given bracket kinds.
func NewTracker(pairs Pairs) *Tracker {
	return &Tracker{pairs: pairs}
}

// Reset clears all accumulated state.
func (t *Tracker) Reset() {
	t.depth = 0
	t.quote = 0
	t.escaped = false
	t.slash = false
	t.star = false
	t.lineComment = false
	t.blockComment = false
}

// EndLine marks a line boundary. Line comments never continue onto the
// next line; block comments do.
func (t *Tracker) EndLine() {
	t.lineComment = false
	t.slash = false
}

// FeedByte advances the tracker by one character. Comment text contributes
// nothing to depth or string state, so an apostrophe or stray bracket in a
// comment cannot derail the scan.
func (t *Tracker) FeedByte(c byte) {
	if t.lineComment {
		if c == '\n' {
			t.lineComment = false
		}
		return
	}
	if t.blockComment {
		if t.star && c == '/' {
			t.blockComment = false
		}
		t.star = c == '*'
		return
	}
	if t.quote != 0 {
		switch {
		case t.escaped:
			t.escaped = false
		case c == '\\':
			t.escaped = true
		case c == t.quote:
			t.quote = 0
		}
		return
	}
	if t.slash {
		t.slash = false
		switch c {
		case '/':
			t.lineComment = true
			return
		case '*':
			t.blockComment = true
			t.star = false
			return
		}
	}
	switch c {
	case '/':
		t.slash = true
	case '\'', '"', '`':
		t.quote = c
	case '(':
		if t.pairs&Parens != 0 {
			t.depth++
		}
	case ')':
		if t.pairs&Parens != 0 {
			t.depth--
		}
	case '{':
		if t.pairs&Braces != 0 {
			t.depth++
		}
	case '}':
		if t.pairs&Braces != 0 {
			t.depth--
		}
	case '[':
		if t.pairs&Squares != 0 {
			t.depth++
		}
	case ']':
		if t.pairs&Squares != 0 {
			t.depth--
		}
	case '<':
		if t.pairs&Angles != 0 {
			t.depth++
		}
	case '>':
		if t.pairs&Angles != 0 && t.depth > 0 {
			t.depth--
		}
	}
}

// Feed advances the tracker over a string.
func (t *Tracker) Feed(s string) {
	for i := 0; i < len(s); i++ {
		t.FeedByte(s[i])
	}
}

// Depth reports the current nesting depth.
func (t *Tracker) Depth() int {
	return t.depth
}

// InString reports whether the tracker is inside a string literal.
func (t *Tracker) InString() bool {
	return t.quote != 0
}

// InComment reports whether the tracker is inside a line or block comment.
func (t *Tracker) InComment() bool {
	return t.lineComment || t.blockComment
}

// SplitTop splits s on sep occurrences at depth zero outside string
// literals. The separator bytes are not included in the parts.
func SplitTop(s string, sep byte, pairs Pairs) []string {
	t := NewTracker(pairs)
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == sep && t.Depth() == 0 && !t.InString() && !t.InComment() {
			parts = append(parts, s[start:i])
			start = i + 1
			continue
		}
		t.FeedByte(c)
	}
	return append(parts, s[start:])
}

// IndexTop returns the index of the first occurrence of b at depth zero
// outside string literals, or -1.
func IndexTop(s string, b byte, pairs Pairs) int {
	t := NewTracker(pairs)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == b && t.Depth() == 0 && !t.InString() && !t.InComment() {
			return i
		}
		t.FeedByte(c)
	}
	return -1
}

// Balanced returns the indexes of the first open bracket outside string
// literals and its matching close, or (-1, -1) when no balanced pair
// exists.
func Balanced(s string, open, close byte) (int, int) {
	t := NewTracker(0)
	start := -1
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !t.InString() && !t.InComment() {
			switch c {
			case open:
				if start == -1 {
					start = i
				}
				depth++
			case close:
				if start != -1 {
					depth--
					if depth == 0 {
						return start, i
					}
				}
			}
		}
		t.FeedByte(c)
	}
	return -1, -1
}

// Flatten collapses runs of whitespace outside string literals into single
// spaces and trims the result. String literal contents are preserved
// verbatim.
func Flatten(s string) string {
	t := NewTracker(0)
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !t.InString() && (c == ' ' || c == '\t' || c == '\n' || c == '\r') {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteByte(c)
		t.FeedByte(c)
	}
	return b.String()
}
