package formatter

import (
	"strings"

	"github.com/sujan-s/seri-sei/pkg/scan"
)

// formatAlias formats a brace-less type alias declaration. A right-hand
// side carrying two or more top-level union variants expands one variant
// per line; a single-variant alias collapses onto one normalized line.
func (f *formatter) formatAlias(lines []string, indent string) []string {
	flat := scan.Flatten(strings.Join(lines, " "))
	eq := assignIndex(flat)
	if eq < 0 {
		return reindentLines(lines, indent)
	}

	head := strings.TrimSpace(flat[:eq+1])
	rhs := strings.TrimSpace(flat[eq+1:])
	rhs = strings.TrimSpace(strings.TrimSuffix(rhs, ";"))

	var variants []string
	for _, v := range scan.SplitTop(rhs, '|', scan.All) {
		if v = strings.TrimSpace(v); v != "" {
			variants = append(variants, v)
		}
	}

	if len(variants) <= 1 {
		return []string{indent + head + " " + terminate(rhs)}
	}

	out := []string{indent + head}
	for i, v := range variants {
		line := indent + f.unit + "| " + v
		if i == len(variants)-1 {
			line += ";"
		}
		out = append(out, line)
	}
	return out
}

// assignIndex finds a declaration's top-level "=", skipping arrow and
// comparison forms.
func assignIndex(s string) int {
	t := scan.NewTracker(scan.Blocks)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '=' && t.Depth() == 0 && !t.InString() {
			var prev, next byte
			if i > 0 {
				prev = s[i-1]
			}
			if i+1 < len(s) {
				next = s[i+1]
			}
			if next != '>' && next != '=' && prev != '=' && prev != '!' && prev != '<' && prev != '>' {
				return i
			}
		}
		t.FeedByte(c)
	}
	return -1
}

// isTypeAlias reports whether a flattened declaration opens with the
// "type" keyword, allowing for export and declare modifiers.
func isTypeAlias(flat string) bool {
	fields := strings.Fields(flat)
	for _, tok := range fields {
		switch tok {
		case "export", "declare", "default":
			continue
		case "type":
			return true
		default:
			return false
		}
	}
	return false
}
