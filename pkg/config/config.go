// Package config defines the formatting configuration and loads it from a
// project-local .seriseirc file.
package config

import "strings"

// FileName is the configuration file searched for from a source file's
// directory up to the project root.
const FileName = ".seriseirc"

// Group is a named bucket of import statements selected by literal
// matchers. An empty matcher set matches unconditionally.
type Group struct {
	Label    string
	Matchers []string
}

// CatchAll reports whether the group matches every import statement.
func (g Group) CatchAll() bool {
	return len(g.Matchers) == 0
}

// Config holds all formatter settings.
type Config struct {
	HeaderChar    string  // fill character for group header lines
	ColumnWidth   int     // target column width for headers and reflow
	IndentType    string  // "space" or "tab"
	IndentSize    int     // spaces per indent level when IndentType is "space"
	ExpandMethods bool    // always expand call signatures to multi-line form
	Groups        []Group // ordered; the last group is the catch-all

	// IndentExplicit is true when the configuration file set the
	// indentation; otherwise the indent style detector decides.
	IndentExplicit bool
}

// Default returns a Config with the stock settings and a lone catch-all
// group.
func Default() *Config {
	return &Config{
		HeaderChar:    "=",
		ColumnWidth:   100,
		IndentType:    "space",
		IndentSize:    4,
		ExpandMethods: true,
		Groups:        []Group{{Label: "OTHER"}},
	}
}

// IndentUnit returns the string written per indent level.
func (c *Config) IndentUnit() string {
	if c.IndentType == "tab" {
		return "\t"
	}
	return strings.Repeat(" ", c.IndentSize)
}
