package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/sujan-s/seri-sei/pkg/errors"
	"github.com/sujan-s/seri-sei/pkg/scan"
	"github.com/sujan-s/seri-sei/pkg/utils"
)

// Load reads the configuration file at path and merges it over the
// defaults.
func Load(path string) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadConfig, err)
	}

	cfg := Default()
	root := file.Section(ini.DefaultSection)

	if key, err := root.GetKey("headerChar"); err == nil {
		if v := unquote(key.String()); v != "" {
			cfg.HeaderChar = string([]rune(v)[0])
		}
	}
	if key, err := root.GetKey("columnWidth"); err == nil {
		if v, err := key.Int(); err == nil && v > 0 {
			cfg.ColumnWidth = v
		}
	}
	if key, err := root.GetKey("indentType"); err == nil {
		switch strings.ToLower(key.String()) {
		case "tab", "tabs":
			cfg.IndentType = "tab"
			cfg.IndentExplicit = true
		case "space", "spaces":
			cfg.IndentType = "space"
			cfg.IndentExplicit = true
		}
	}
	if key, err := root.GetKey("indentSize"); err == nil {
		if v, err := key.Int(); err == nil && v > 0 && v <= 8 {
			cfg.IndentSize = v
			cfg.IndentExplicit = true
		}
	}
	if key, err := root.GetKey("expandMethods"); err == nil {
		if v, err := key.Bool(); err == nil {
			cfg.ExpandMethods = v
		}
	}

	if groups, err := file.GetSection("groups"); err == nil {
		cfg.Groups = parseGroups(groups)
	}

	return cfg, nil
}

// Resolve locates the nearest configuration file for the given source
// file, walking parent directories up to the project root. Absence of a
// configuration file is not an error; the defaults apply.
func Resolve(sourcePath string) (*Config, error) {
	absPath, err := filepath.Abs(sourcePath)
	if err != nil {
		return Default(), nil
	}

	stop := ""
	if root, ok := utils.FindProjectRoot(absPath); ok {
		stop = root
	}

	dir := filepath.Dir(absPath)
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
		if dir == stop {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return Default(), nil
}

// parseGroups reads the ordered [groups] section. Each key defines one
// group: `LABEL = matcher1, matcher2, "quoted matcher"`. A trailing
// catch-all group is appended when the configured list lacks one.
func parseGroups(section *ini.Section) []Group {
	var groups []Group
	for _, key := range section.Keys() {
		group := Group{Label: key.Name()}
		for _, raw := range scan.SplitTop(key.Value(), ',', 0) {
			if matcher := strings.TrimSpace(raw); matcher != "" {
				group.Matchers = append(group.Matchers, matcher)
			}
		}
		groups = append(groups, group)
	}
	if len(groups) == 0 || !groups[len(groups)-1].CatchAll() {
		groups = append(groups, Group{Label: "OTHER"})
	}
	return groups
}

// unquote strips one level of surrounding quotes from a config value.
func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
