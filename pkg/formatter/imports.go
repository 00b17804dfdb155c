package formatter

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/sujan-s/seri-sei/pkg/config"
	"github.com/sujan-s/seri-sei/pkg/scan"
)

// importStatement keeps the opaque source text of one import plus its
// normalized single-line form. The normalized form is used for matching,
// sorting and width checks only; output emits the original text unless a
// reflow is triggered.
type importStatement struct {
	text string
	flat string
}

// formatImports renders the grouped, labeled, blank-line-separated import
// block from the raw statement texts handed over by the locator.
func (f *formatter) formatImports(stmts []string) []string {
	var parsed []importStatement
	seen := make(map[string]bool)
	for _, s := range stmts {
		flat := scan.Flatten(s)
		if flat == "" || seen[flat] {
			continue
		}
		seen[flat] = true
		parsed = append(parsed, importStatement{text: s, flat: flat})
	}

	// First configured group whose predicate matches wins; the trailing
	// catch-all guarantees every statement lands somewhere.
	buckets := make([][]importStatement, len(f.cfg.Groups))
	for _, st := range parsed {
		for gi, g := range f.cfg.Groups {
			if matchGroup(g, st.flat) {
				buckets[gi] = append(buckets[gi], st)
				break
			}
		}
	}

	var out []string
	for gi, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].flat < bucket[j].flat })
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, f.groupHeader(f.cfg.Groups[gi].Label))
		for _, st := range bucket {
			out = append(out, f.renderImport(st)...)
		}
	}
	return out
}

func matchGroup(g config.Group, flat string) bool {
	if g.CatchAll() {
		return true
	}
	for _, m := range g.Matchers {
		if matcherApplies(m, flat) {
			return true
		}
	}
	return false
}

// matcherApplies evaluates one configured matcher against a statement's
// normalized form. Quoted matchers require verbatim containment; path and
// extension matchers match by substring; bare package names require a
// quote-delimited module token so a short name cannot match inside a
// longer one.
func matcherApplies(m, flat string) bool {
	if len(m) >= 2 && (m[0] == '"' || m[0] == '\'') && m[len(m)-1] == m[0] {
		return strings.Contains(flat, m)
	}
	if strings.HasSuffix(m, "/") || strings.HasPrefix(m, ".") {
		return strings.Contains(flat, m)
	}
	return strings.Contains(flat, `"`+m+`"`) ||
		strings.Contains(flat, "'"+m+"'") ||
		strings.Contains(flat, `"`+m+`/`) ||
		strings.Contains(flat, "'"+m+"/")
}

// groupHeader renders a group's comment header, right-padded with the
// configured fill character to the configured column width. A label that
// alone reaches the width is returned unpadded.
func (f *formatter) groupHeader(label string) string {
	head := "// " + label + " "
	width := runewidth.StringWidth(head)
	if width >= f.cfg.ColumnWidth-1 {
		return strings.TrimRight(head, " ")
	}
	return head + strings.Repeat(f.cfg.HeaderChar, f.cfg.ColumnWidth-width)
}

func (f *formatter) renderImport(st importStatement) []string {
	if runewidth.StringWidth(st.flat) > f.cfg.ColumnWidth {
		if lines := f.reflowImport(st.flat); lines != nil {
			return lines
		}
	}
	lines := strings.Split(st.text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return lines
}

// reflowImport rewrites an over-wide statement into one-name-per-line
// multi-import form. Side-effect-only and default-only imports carry no
// braced name list and are never reflowed.
func (f *formatter) reflowImport(flat string) []string {
	open, close := scan.Balanced(flat, '{', '}')
	if open < 0 {
		return nil
	}
	head := strings.TrimSpace(flat[:open])
	tail := strings.TrimSpace(flat[close+1:])
	if !strings.HasPrefix(head, "import") || !strings.HasPrefix(tail, "from") {
		return nil
	}
	if !strings.HasSuffix(tail, ";") {
		tail += ";"
	}

	out := []string{head + " {"}
	for _, name := range scan.SplitTop(flat[open+1:close], ',', scan.All) {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, f.unit+name+",")
		}
	}
	return append(out, "} "+tail)
}
