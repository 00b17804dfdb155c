package scan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitTop(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name  string
		input string
		sep   byte
		pairs Pairs
		want  []string
	}{
		{"flat list", "a, b, c", ',', All, []string{"a", " b", " c"}},
		{"comma inside parens", "a(1, 2), b", ',', All, []string{"a(1, 2)", " b"}},
		{"comma inside braces", "x: { a: 1, b: 2 }, y", ',', All, []string{"x: { a: 1, b: 2 }", " y"}},
		{"comma inside generics", "map: Record<string, number>, id", ',', All, []string{"map: Record<string, number>", " id"}},
		{"comma inside string", `label: "a, b", id`, ',', All, []string{`label: "a, b"`, " id"}},
		{"no separator", "abc", ',', All, []string{"abc"}},
		{"pipe union", "A | B | C", '|', All, []string{"A ", " B ", " C"}},
		{"empty input", "", ',', All, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, SplitTop(tt.input, tt.sep, tt.pairs), "SplitTop(%q)", tt.input)
		})
	}
}

func TestIndexTop(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name  string
		input string
		b     byte
		pairs Pairs
		want  int
	}{
		{"plain colon", "name: string", ':', All, 4},
		{"colon inside brackets skipped", "[key: string]: any", ':', All, 13},
		{"colon inside generics skipped", "x<A: B>: y", ':', All, 7},
		{"colon inside string skipped", `a "x:y" : z`, ':', All, 8},
		{"absent", "name string", ':', All, -1},
		{"colon inside line comment skipped", "a // : b", ':', All, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, IndexTop(tt.input, tt.b, tt.pairs), "IndexTop(%q)", tt.input)
		})
	}
}

func TestBalanced(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name        string
		input       string
		open, close byte
		wantOpen    int
		wantClose   int
	}{
		{"simple pair", "f(x)", '(', ')', 1, 3},
		{"nested pair", "f(g(x), y)", '(', ')', 1, 9},
		{"braces", "a { b { c } } d", '{', '}', 2, 12},
		{"bracket inside string ignored", `f("(" , x)`, '(', ')', 1, 9},
		{"bracket inside comment ignored", "( /* ) */ )", '(', ')', 0, 10},
		{"unbalanced", "f(x", '(', ')', -1, -1},
		{"absent", "abc", '(', ')', -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOpen, gotClose := Balanced(tt.input, tt.open, tt.close)
			req.Equal(tt.wantOpen, gotOpen, "Balanced(%q) open", tt.input)
			req.Equal(tt.wantClose, gotClose, "Balanced(%q) close", tt.input)
		})
	}
}

func TestFlatten(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses runs", "a   b\t\tc", "a b c"},
		{"collapses newlines", "import {\n  a,\n  b\n} from 'x';", "import { a, b } from 'x';"},
		{"trims edges", "  a b  ", "a b"},
		{"preserves string contents", `a "x   y" b`, `a "x   y" b`},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, Flatten(tt.input), "Flatten(%q)", tt.input)
		})
	}
}

func TestTrackerStringState(t *testing.T) {
	req := require.New(t)

	t.Run("escaped quote stays inside string", func(t *testing.T) {
		tr := NewTracker(Blocks)
		tr.Feed(`"a\"b`)
		req.True(tr.InString())
		tr.Feed(`"`)
		req.False(tr.InString())
	})

	t.Run("brackets inside strings do not count", func(t *testing.T) {
		tr := NewTracker(Blocks)
		tr.Feed(`f("({[")`)
		req.Equal(0, tr.Depth())
	})

	t.Run("state carries across feeds", func(t *testing.T) {
		tr := NewTracker(Blocks)
		tr.Feed("interface X {")
		req.Equal(1, tr.Depth())
		tr.Feed("  a: string;")
		req.Equal(1, tr.Depth())
		tr.Feed("}")
		req.Equal(0, tr.Depth())
	})

	t.Run("apostrophe in a line comment does not open a string", func(t *testing.T) {
		tr := NewTracker(Blocks)
		tr.Feed(`// don't panic`)
		req.False(tr.InString())
		req.True(tr.InComment())
		tr.EndLine()
		req.False(tr.InComment())
		tr.Feed("{")
		req.Equal(1, tr.Depth())
	})

	t.Run("block comment spans feeds and hides brackets", func(t *testing.T) {
		tr := NewTracker(Blocks)
		tr.Feed("/* it's (")
		tr.EndLine()
		req.True(tr.InComment())
		tr.Feed("*/ (")
		req.False(tr.InComment())
		req.Equal(1, tr.Depth())
	})

	t.Run("division slash does not start a comment", func(t *testing.T) {
		tr := NewTracker(Blocks)
		tr.Feed("a / b / c")
		req.False(tr.InComment())
		req.Equal(0, tr.Depth())
	})

	t.Run("reset clears state", func(t *testing.T) {
		tr := NewTracker(Blocks)
		tr.Feed(`{ "`)
		tr.Reset()
		req.Equal(0, tr.Depth())
		req.False(tr.InString())
	})
}
