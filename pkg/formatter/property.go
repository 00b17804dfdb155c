package formatter

import (
	"strings"

	"github.com/sujan-s/seri-sei/pkg/scan"
)

// property is one member of a declaration body: a contiguous run of raw
// source lines whose bracket depth returns to zero on a terminator line.
// Property order is preserved through formatting; only whitespace and
// internal punctuation change.
type property struct {
	lines    []string // raw source lines, original indentation intact
	key      string   // identifier or [computed] key; empty for anonymous call signatures
	optional bool
	method   bool
	comment  bool
	parsed   bool // first line matched the key/optional/colon pattern
}

// parseHead classifies a property from its first line. A property is a
// method when a parenthesis follows the identifier ahead of any colon;
// otherwise it is a plain key:value member with an optional trailing "?"
// between the key and the colon. Lines matching neither pattern are left
// unparsed and pass through re-indented.
func parseHead(p *property) {
	trim := strings.TrimSpace(p.lines[0])
	if strings.HasPrefix(trim, "//") || strings.HasPrefix(trim, "/*") || strings.HasPrefix(trim, "*") {
		p.comment = true
		return
	}

	colon := scan.IndexTop(trim, ':', scan.All)
	paren := scan.IndexTop(trim, '(', scan.All)

	if paren >= 0 && (colon < 0 || paren < colon) {
		pre := strings.TrimSpace(trim[:paren])
		if strings.HasSuffix(pre, "?") {
			p.optional = true
			pre = strings.TrimSpace(strings.TrimSuffix(pre, "?"))
		}
		if g := scan.IndexTop(pre, '<', scan.Blocks); g >= 0 {
			pre = strings.TrimSpace(pre[:g])
		}
		p.key = pre
		p.method = true
		p.parsed = true
		return
	}

	if colon >= 0 {
		pre := strings.TrimSpace(trim[:colon])
		if strings.HasSuffix(pre, "?") {
			p.optional = true
			pre = strings.TrimSpace(strings.TrimSuffix(pre, "?"))
		}
		if pre != "" {
			p.key = pre
			p.parsed = true
		}
	}
}

// expandLines splits any line carrying multiple ";"-terminated properties
// at depth zero into one line per property, preserving the leading
// indentation of the source line for each fragment.
func expandLines(lines []string) []string {
	var out []string
	t := scan.NewTracker(scan.Blocks)
	for _, line := range lines {
		lead := leadingWhitespace(line)
		var segs []string
		start := 0
		for i := 0; i < len(line); i++ {
			t.FeedByte(line[i])
			if line[i] == ';' && t.Depth() == 0 && !t.InString() && !t.InComment() {
				segs = append(segs, line[start:i+1])
				start = i + 1
			}
		}
		t.EndLine()
		if rest := strings.TrimSpace(line[start:]); rest != "" || len(segs) == 0 {
			segs = append(segs, line[start:])
		}
		if len(segs) == 1 {
			out = append(out, line)
			continue
		}
		for _, seg := range segs {
			if trimmed := strings.TrimSpace(seg); trimmed != "" {
				out = append(out, lead+trimmed)
			}
		}
	}
	return out
}

// delimitProperties walks expanded lines accumulating bracket depth and
// cuts a property wherever depth returns to zero on a line ending in ";",
// "}" or ",". Lines without a terminator still end a property when they do
// not continue into the next line, so terminator-less members survive.
func delimitProperties(lines []string) []property {
	var props []property
	var cur []string
	t := scan.NewTracker(scan.Blocks)

	flush := func() {
		if len(cur) == 0 {
			return
		}
		p := property{lines: cur}
		parseHead(&p)
		props = append(props, p)
		cur = nil
	}

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}

		if len(cur) == 0 && strings.HasPrefix(trimmed, "//") {
			props = append(props, property{lines: []string{lines[i]}, comment: true})
			continue
		}
		if len(cur) == 0 && strings.HasPrefix(trimmed, "/*") {
			block := []string{lines[i]}
			for !strings.Contains(block[len(block)-1], "*/") && i+1 < len(lines) {
				i++
				block = append(block, lines[i])
			}
			props = append(props, property{lines: block, comment: true})
			continue
		}

		cur = append(cur, lines[i])
		t.Feed(lines[i])
		t.EndLine()
		if t.Depth() > 0 || t.InString() || t.InComment() {
			continue
		}
		if hasTerminator(trimmed) {
			flush()
			continue
		}
		if !continuesOnward(trimmed) && !nextLineContinues(lines, i) {
			flush()
		}
	}
	flush()
	return props
}

func hasTerminator(trimmed string) bool {
	switch trimmed[len(trimmed)-1] {
	case ';', ',', '}':
		return true
	}
	return false
}

// continuesOnward reports whether a depth-zero line ends mid-construct.
func continuesOnward(trimmed string) bool {
	switch trimmed[len(trimmed)-1] {
	case '|', '&', '=', ':', '(', '[', '{', '<', '.', '+', '?':
		return true
	}
	return strings.HasSuffix(trimmed, "=>") || strings.HasSuffix(trimmed, "extends")
}

// nextLineContinues reports whether the following non-blank line opens
// with a token that belongs to the current construct.
func nextLineContinues(lines []string, i int) bool {
	for j := i + 1; j < len(lines); j++ {
		next := strings.TrimSpace(lines[j])
		if next == "" {
			continue
		}
		switch next[0] {
		case '|', '&', '.', '?', ')', ']', '}':
			return true
		}
		return false
	}
	return false
}

// leadingWhitespace returns the run of spaces and tabs opening a line.
func leadingWhitespace(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}

// reindentLines strips the common leading whitespace of a property's lines
// and re-bases them on the target indentation. Content is otherwise left
// untouched.
func reindentLines(lines []string, indent string) []string {
	common := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := leadingWhitespace(line)
		if first || len(lead) < len(common) {
			common = lead
			first = false
		}
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		out = append(out, indent+strings.TrimPrefix(line, common))
	}
	return out
}
