package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/sujan-s/seri-sei/pkg/scan"
)

// signature is one call-signature member, reconstructed from its joined
// and whitespace-normalized source text.
type signature struct {
	generics string // "<T, U>" including brackets, empty when absent
	params   []parameter
	ret      string
}

// parameter is one entry of a signature's parameter list, parsed at the
// first depth-zero, non-string colon.
type parameter struct {
	name     string
	optional bool
	typ      string
}

// formatMethod renders one call-signature property in canonical
// multi-line form:
//
//	key (
//	    param : type,
//	): ReturnType;
//
// prefix carries the aligned key and optional-marker column rendered by
// the block formatter. Signatures with unmatched parentheses or a missing
// return-type colon fall back to the minimally re-indented original lines.
func (f *formatter) formatMethod(p property, indent, prefix string) []string {
	flat := scan.Flatten(strings.Join(p.lines, " "))
	sig, ok := parseSignature(flat)
	if !ok {
		return reindentLines(p.lines, indent)
	}

	out := []string{indent + prefix + sig.generics + " ("}

	maxName := 0
	anyOptional := false
	for _, prm := range sig.params {
		if w := runewidth.StringWidth(prm.name); w > maxName {
			maxName = w
		}
		if prm.optional {
			anyOptional = true
		}
	}

	paramIndent := indent + f.unit
	for i, prm := range sig.params {
		last := i == len(sig.params)-1
		base := runewidth.FillRight(prm.name, maxName)
		if anyOptional {
			marker := " "
			if prm.optional {
				marker = "?"
			}
			base += " " + marker
		}
		switch {
		case prm.typ == "":
			out = append(out, paramIndent+withComma(strings.TrimRight(base, " "), last))
		case scan.IndexTop(prm.typ, '{', scan.Parens|scan.Squares|scan.Angles) >= 0:
			out = append(out, f.expandInlineObject(prm.typ, base, paramIndent, last)...)
		default:
			out = append(out, paramIndent+withComma(base+" : "+prm.typ, last))
		}
	}

	out = append(out, indent+"): "+sig.ret+";")
	return out
}

// flatMethodLine renders a call signature on a single aligned line, used
// when method expansion is disabled.
func (f *formatter) flatMethodLine(p property, indent, prefix string) string {
	flat := scan.Flatten(strings.Join(p.lines, " "))
	open, _ := scan.Balanced(flat, '(', ')')
	if open < 0 {
		return indent + terminate(flat)
	}
	return indent + prefix + " " + terminate(flat[open:])
}

// parseSignature reconstructs a signature from its single-line form. The
// parameter list is the outermost balanced parenthesis pair; everything
// after the closing parenthesis and its colon is the return type, emitted
// as opaque text.
func parseSignature(flat string) (signature, bool) {
	var sig signature

	open, close := scan.Balanced(flat, '(', ')')
	if open < 0 {
		return sig, false
	}
	if g := strings.Index(flat[:open], "<"); g >= 0 {
		sig.generics = strings.TrimSpace(flat[g:open])
	}

	after := strings.TrimSpace(flat[close+1:])
	if !strings.HasPrefix(after, ":") {
		return sig, false
	}
	ret := strings.TrimSpace(after[1:])
	ret = strings.TrimSuffix(ret, ";")
	ret = strings.TrimSuffix(ret, ",")
	ret = strings.TrimSpace(ret)
	if ret == "" {
		return sig, false
	}
	sig.ret = ret

	for _, part := range scan.SplitTop(flat[open+1:close], ',', scan.All) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sig.params = append(sig.params, parseParameter(part))
	}
	return sig, true
}

func parseParameter(part string) parameter {
	colon := scan.IndexTop(part, ':', scan.All)
	if colon < 0 {
		return parameter{name: part}
	}
	prm := parameter{
		name: strings.TrimSpace(part[:colon]),
		typ:  strings.TrimSpace(part[colon+1:]),
	}
	if strings.HasSuffix(prm.name, "?") {
		prm.optional = true
		prm.name = strings.TrimSpace(strings.TrimSuffix(prm.name, "?"))
	}
	return prm
}

// expandInlineObject expands a parameter whose type carries an inline
// object literal: the pre-brace prefix opens the brace, inner properties
// land on their own aligned lines, and the closing line carries any
// trailing array or union suffix plus a comma when parameters follow.
func (f *formatter) expandInlineObject(typ, base, paramIndent string, last bool) []string {
	open, close := scan.Balanced(typ, '{', '}')
	if open < 0 {
		return []string{paramIndent + withComma(base+" : "+typ, last)}
	}
	pre := strings.TrimSpace(typ[:open])
	suffix := strings.TrimSpace(typ[close+1:])

	type entry struct{ key, value string }
	var entries []entry
	maxInner := 0
	for _, seg := range scan.SplitTop(typ[open+1:close], ';', scan.All) {
		for _, raw := range scan.SplitTop(seg, ',', scan.All) {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			colon := scan.IndexTop(raw, ':', scan.All)
			if colon < 0 {
				entries = append(entries, entry{key: raw})
				continue
			}
			e := entry{
				key:   strings.TrimSpace(raw[:colon]),
				value: strings.TrimSpace(raw[colon+1:]),
			}
			if w := runewidth.StringWidth(e.key); w > maxInner {
				maxInner = w
			}
			entries = append(entries, e)
		}
	}

	out := []string{paramIndent + base + " : " + pre + "{"}
	innerIndent := paramIndent + f.unit
	for _, e := range entries {
		if e.value == "" {
			out = append(out, innerIndent+e.key+";")
			continue
		}
		out = append(out, innerIndent+runewidth.FillRight(e.key, maxInner)+" : "+e.value+";")
	}
	out = append(out, paramIndent+withComma("}"+suffix, last))
	return out
}

func withComma(line string, last bool) string {
	if last {
		return line
	}
	return line + ","
}
