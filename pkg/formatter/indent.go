package formatter

import "strings"

// indentStyle is the inferred indentation of a source file. It feeds the
// formatter only when configuration has not set indentation explicitly.
type indentStyle struct {
	tabs bool
	size int
}

func (s indentStyle) unit() string {
	if s.tabs {
		return "\t"
	}
	return strings.Repeat(" ", s.size)
}

// detectIndent infers tab-vs-space and width from raw source. Tabs win on
// a majority of indented lines. For spaces, the greatest common divisor of
// the observed indentation runs (sizes above 8 are ignored) gives the base
// unit, falling back to the minimum observed run when the divisor
// collapses to 1, and clamping to one of {2, 3, 4, 8} with a default of 4.
func detectIndent(src string) indentStyle {
	tabLines, spaceLines := 0, 0
	var runs []int

	for _, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch line[0] {
		case '\t':
			tabLines++
		case ' ':
			spaceLines++
			n := 0
			for n < len(line) && line[n] == ' ' {
				n++
			}
			if n <= 8 {
				runs = append(runs, n)
			}
		}
	}

	if tabLines > spaceLines && tabLines > 0 {
		return indentStyle{tabs: true, size: 1}
	}
	if len(runs) == 0 {
		return indentStyle{size: 4}
	}

	g := 0
	min := 9
	for _, r := range runs {
		g = gcd(g, r)
		if r < min {
			min = r
		}
	}
	size := g
	if size <= 1 {
		size = min
	}
	switch size {
	case 2, 3, 4, 8:
	default:
		size = 4
	}
	return indentStyle{size: size}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
