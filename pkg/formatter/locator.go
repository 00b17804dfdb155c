package formatter

import (
	"regexp"
	"strings"

	"github.com/sujan-s/seri-sei/pkg/scan"
)

// region is an inclusive line range over the original line array. A zero
// region (end < start) marks absence.
type region struct {
	start, end int
}

var (
	importStart = regexp.MustCompile(`^import[\s({'"]`)
	declHead    = regexp.MustCompile(`^(?:export\s+)?(?:declare\s+)?(?:default\s+)?(?:interface|type)\s+[A-Za-z_$]`)
)

// locateImports isolates the leading import block: the raw statement
// texts and the line region they occupy. Previously generated group
// headers and blank lines inside the block are absorbed into the region
// so they are not duplicated; other comments end the block. A file whose
// leading code is not an import has no import region.
func (f *formatter) locateImports(lines []string) ([]string, region) {
	none := region{0, -1}

	start := -1
	i := 0
scanStart:
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case trimmed == "":
			i++
		case f.isGeneratedHeader(trimmed):
			if start == -1 {
				start = i
			}
			i++
		case strings.HasPrefix(trimmed, "//"):
			start = -1
			i++
		case strings.HasPrefix(trimmed, "/*"):
			start = -1
			for i < len(lines) && !strings.Contains(lines[i], "*/") {
				i++
			}
			i++
		case importStart.MatchString(trimmed):
			if start == -1 {
				start = i
			}
			break scanStart
		default:
			return nil, none
		}
	}
	if i >= len(lines) {
		return nil, none
	}

	var stmts []string
	end := i
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || f.isGeneratedHeader(trimmed) {
			i++
			continue
		}
		if !importStart.MatchString(trimmed) {
			break
		}

		t := scan.NewTracker(scan.Blocks)
		stmtStart := i
		for {
			t.Feed(lines[i])
			t.EndLine()
			if t.Depth() <= 0 && !t.InString() && importComplete(strings.TrimSpace(lines[i])) {
				break
			}
			if i+1 >= len(lines) {
				break
			}
			i++
		}
		stmts = append(stmts, strings.Join(lines[stmtStart:i+1], "\n"))
		end = i
		i++
	}

	return stmts, region{start, end}
}

// importComplete reports whether a depth-zero line terminates an import
// statement. Imports may omit the semicolon, so a closing module quote
// also completes one.
func importComplete(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case ';', '"', '\'':
		return true
	}
	return false
}

// isGeneratedHeader recognizes a group header emitted by a previous run:
// a line comment carrying a run of the configured fill character, or the
// unpadded form a near-width label produces (a comment whose text is
// exactly a configured group label).
func (f *formatter) isGeneratedHeader(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "//") {
		return false
	}
	if strings.Contains(trimmed, strings.Repeat(f.cfg.HeaderChar, 4)) {
		return true
	}
	text := strings.TrimSpace(strings.TrimPrefix(trimmed, "//"))
	for _, g := range f.cfg.Groups {
		if text == g.Label {
			return true
		}
	}
	return false
}

// locateDeclarations finds top-level type and interface declarations from
// the given line onward. A declaration whose body never closes is not
// reported and stays untouched.
func locateDeclarations(lines []string, from int) []region {
	var regions []region
	if from < 0 {
		from = 0
	}

	i := from
	for i < len(lines) {
		if !declHead.MatchString(lines[i]) {
			i++
			continue
		}

		t := scan.NewTracker(scan.Blocks)
		sawBrace := false
		end := -1
		for j := i; j < len(lines); j++ {
			t.Feed(lines[j])
			t.EndLine()
			if scan.IndexTop(lines[j], '{', 0) >= 0 {
				sawBrace = true
			}
			trimmed := strings.TrimSpace(lines[j])
			if trimmed == "" || t.Depth() > 0 || t.InString() || t.InComment() {
				continue
			}
			last := trimmed[len(trimmed)-1]
			if last == ';' || (sawBrace && last == '}') {
				end = j
				break
			}
		}
		if end == -1 {
			i++
			continue
		}
		regions = append(regions, region{i, end})
		i = end + 1
	}
	return regions
}
