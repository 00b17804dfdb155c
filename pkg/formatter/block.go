package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/sujan-s/seri-sei/pkg/scan"
)

// formatDeclaration rewrites one located type or interface declaration.
// Declarations without a top-level brace, and braced aliases whose
// right-hand side is a union, route to the alias formatter. A body whose
// closing brace cannot be found is returned untouched.
func (f *formatter) formatDeclaration(lines []string) []string {
	indent := leadingWhitespace(lines[0])

	flat := scan.Flatten(strings.Join(lines, " "))
	if eq := assignIndex(flat); eq >= 0 && isTypeAlias(flat) {
		rhs := flat[eq+1:]
		pipe := scan.IndexTop(rhs, '|', scan.Blocks)
		brace := scan.IndexTop(rhs, '{', scan.Blocks)
		if brace < 0 || (pipe >= 0 && pipe < brace) {
			return f.formatAlias(lines, indent)
		}
	}

	head, content, tail, ok := splitNested(lines)
	if !ok {
		return lines
	}

	out := []string{indent + scan.Flatten(head) + " {"}
	out = append(out, f.formatBlockContent(content, indent)...)
	out = append(out, indent+"}"+strings.TrimSpace(tail))
	return out
}

// formatBlockContent formats the raw lines strictly between one
// declaration's braces (or, recursively, one nested object's braces).
// indent is the indentation of the enclosing line; members are emitted one
// unit deeper.
func (f *formatter) formatBlockContent(lines []string, indent string) []string {
	props := delimitProperties(expandLines(lines))
	inner := indent + f.unit

	// Alignment is block-local: only direct children participate.
	maxKey := 0
	hasOptional := false
	for _, p := range props {
		if p.comment || !p.parsed {
			continue
		}
		if w := runewidth.StringWidth(p.key); w > maxKey {
			maxKey = w
		}
		if p.optional {
			hasOptional = true
		}
	}

	var out []string
	for i, p := range props {
		switch {
		case p.comment:
			for _, line := range p.lines {
				out = append(out, inner+strings.TrimSpace(line))
			}
		case !p.parsed:
			out = append(out, reindentLines(p.lines, inner)...)
		case p.method:
			if i > 0 {
				out = append(out, "")
			}
			prefix := methodPrefix(p, maxKey, hasOptional)
			if f.cfg.ExpandMethods {
				out = append(out, f.formatMethod(p, inner, prefix)...)
			} else {
				out = append(out, f.flatMethodLine(p, inner, prefix))
			}
		case len(p.lines) == 1:
			out = append(out, f.formatSingleLine(p, inner, maxKey, hasOptional))
		default:
			out = append(out, f.formatMultiLine(p, inner, maxKey, hasOptional)...)
		}
	}
	return out
}

// keyColumn renders the aligned key, the optional-marker column and the
// colon separator. When any sibling is optional every member carries the
// marker column, so the colon lands on the same column across the block.
func keyColumn(key string, optional bool, maxKey int, hasOptional bool) string {
	col := runewidth.FillRight(key, maxKey)
	if !hasOptional {
		return col + " : "
	}
	marker := " "
	if optional {
		marker = "?"
	}
	return col + " " + marker + " : "
}

// methodPrefix renders the aligned key and optional-marker column for a
// call-signature member, without the separator.
func methodPrefix(p property, maxKey int, hasOptional bool) string {
	col := runewidth.FillRight(p.key, maxKey)
	if !hasOptional {
		return col
	}
	marker := " "
	if p.optional {
		marker = "?"
	}
	return col + " " + marker
}

func (f *formatter) formatSingleLine(p property, inner string, maxKey int, hasOptional bool) string {
	trim := strings.TrimSpace(p.lines[0])
	colon := scan.IndexTop(trim, ':', scan.All)
	value := strings.TrimSpace(trim[colon+1:])
	return inner + keyColumn(p.key, p.optional, maxKey, hasOptional) + terminate(value)
}

// formatMultiLine handles plain members spanning several lines. A nested
// object type recurses through the block formatter one indent deeper;
// anything else is re-joined onto a single line.
func (f *formatter) formatMultiLine(p property, inner string, maxKey int, hasOptional bool) []string {
	head, content, tail, ok := splitNested(p.lines)
	if !ok {
		return f.formatWrapped(p, inner, maxKey, hasOptional)
	}

	flatHead := scan.Flatten(head)
	colon := scan.IndexTop(flatHead, ':', scan.All)
	if colon < 0 {
		return reindentLines(p.lines, inner)
	}
	valuePrefix := strings.TrimSpace(flatHead[colon+1:])

	out := []string{inner + keyColumn(p.key, p.optional, maxKey, hasOptional) + valuePrefix + "{"}
	out = append(out, f.formatBlockContent(content, inner)...)
	out = append(out, inner+"}"+terminateSuffix(tail))
	return out
}

// formatWrapped joins a wrapped multi-line value (a broken union type or
// similar) back onto one aligned line.
func (f *formatter) formatWrapped(p property, inner string, maxKey int, hasOptional bool) []string {
	flat := scan.Flatten(strings.Join(p.lines, " "))
	colon := scan.IndexTop(flat, ':', scan.All)
	if colon < 0 {
		return reindentLines(p.lines, inner)
	}
	value := strings.TrimSpace(flat[colon+1:])
	return []string{inner + keyColumn(p.key, p.optional, maxKey, hasOptional) + terminate(value)}
}

// splitNested carves a multi-line construct into the text before its first
// top-level brace, the lines inside the brace pair, and the text after the
// closing brace. ok is false when no balanced brace pair exists.
func splitNested(lines []string) (head string, content []string, tail string, ok bool) {
	t := scan.NewTracker(scan.Blocks)
	openLine, openCol := -1, -1

scanOpen:
	for li := 0; li < len(lines); li++ {
		line := lines[li]
		for i := 0; i < len(line); i++ {
			if line[i] == '{' && t.Depth() == 0 && !t.InString() && !t.InComment() {
				openLine, openCol = li, i
				break scanOpen
			}
			t.FeedByte(line[i])
		}
		t.EndLine()
	}
	if openLine == -1 {
		return "", nil, "", false
	}

	closeLine, closeCol := -1, -1
	col := openCol
scanClose:
	for li := openLine; li < len(lines); li++ {
		line := lines[li]
		for i := col; i < len(line); i++ {
			t.FeedByte(line[i])
			if line[i] == '}' && t.Depth() == 0 && !t.InString() && !t.InComment() {
				closeLine, closeCol = li, i
				break scanClose
			}
		}
		t.EndLine()
		col = 0
	}
	if closeLine == -1 {
		return "", nil, "", false
	}

	var headParts []string
	headParts = append(headParts, lines[:openLine]...)
	headParts = append(headParts, lines[openLine][:openCol])
	head = strings.Join(headParts, " ")

	if openLine == closeLine {
		if frag := lines[openLine][openCol+1 : closeCol]; strings.TrimSpace(frag) != "" {
			content = append(content, frag)
		}
	} else {
		if frag := lines[openLine][openCol+1:]; strings.TrimSpace(frag) != "" {
			content = append(content, frag)
		}
		content = append(content, lines[openLine+1:closeLine]...)
		if frag := lines[closeLine][:closeCol]; strings.TrimSpace(frag) != "" {
			content = append(content, frag)
		}
	}

	var tailParts []string
	tailParts = append(tailParts, lines[closeLine][closeCol+1:])
	tailParts = append(tailParts, lines[closeLine+1:]...)
	tail = strings.TrimSpace(strings.Join(tailParts, " "))
	return head, content, tail, true
}

// terminate normalizes a single-line value's terminator to ";".
func terminate(value string) string {
	value = strings.TrimRight(value, " \t")
	value = strings.TrimSuffix(value, ",")
	value = strings.TrimSuffix(value, ";")
	return value + ";"
}

// terminateSuffix normalizes the text after a nested object's closing
// brace (array markers, terminators) to end in ";".
func terminateSuffix(tail string) string {
	tail = strings.TrimSpace(tail)
	tail = strings.TrimSuffix(tail, ",")
	tail = strings.TrimSuffix(tail, ";")
	return tail + ";"
}
