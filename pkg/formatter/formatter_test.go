package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sujan-s/seri-sei/pkg/config"
)

// newTestFormatter builds a formatter with a resolved configuration, the
// way ProcessFile would before handing a file to FormatSource.
func newTestFormatter(cfg *config.Config) *formatter {
	if cfg == nil {
		cfg = config.Default()
	}
	f := New(FormatterConfig{Config: cfg})
	f.cfg = cfg
	f.unit = cfg.IndentUnit()
	return f
}

func groupedConfig(width int) *config.Config {
	cfg := config.Default()
	cfg.ColumnWidth = width
	cfg.Groups = []config.Group{
		{Label: "EXTERNAL", Matchers: []string{"react"}},
		{Label: "OTHER"},
	}
	return cfg
}

func TestFormatSource(t *testing.T) {
	req := require.New(t)

	t.Run("imports and declaration", func(t *testing.T) {
		f := newTestFormatter(groupedConfig(30))
		src := strings.Join([]string{
			`import axios from "axios";`,
			`import React from "react";`,
			``,
			`interface User {`,
			`    name: string;`,
			`    isActive?: boolean;`,
			`}`,
			``,
			`const x = 1;`,
			``,
		}, "\n")

		want := strings.Join([]string{
			"// EXTERNAL " + strings.Repeat("=", 18),
			`import React from "react";`,
			``,
			"// OTHER " + strings.Repeat("=", 21),
			`import axios from "axios";`,
			``,
			`interface User {`,
			`    name       : string;`,
			`    isActive ? : boolean;`,
			`}`,
			``,
			`const x = 1;`,
			``,
		}, "\n")
		req.Equal(want, f.FormatSource(src))
	})

	t.Run("idempotent", func(t *testing.T) {
		f := newTestFormatter(groupedConfig(30))
		src := strings.Join([]string{
			`import axios from "axios";`,
			`import React from "react";`,
			``,
			`interface User {`,
			`    name: string;`,
			`    isActive?: boolean;`,
			`}`,
			``,
			`const x = 1;`,
			``,
		}, "\n")

		once := f.FormatSource(src)
		req.Equal(once, newTestFormatter(groupedConfig(30)).FormatSource(once))
	})

	t.Run("import-only file keeps its trailing newline", func(t *testing.T) {
		f := newTestFormatter(groupedConfig(30))
		src := `import axios from "axios";` + "\n"
		want := "// OTHER " + strings.Repeat("=", 21) + "\n" +
			`import axios from "axios";` + "\n"
		req.Equal(want, f.FormatSource(src))
	})

	t.Run("blank-only tail after imports is preserved", func(t *testing.T) {
		f := newTestFormatter(groupedConfig(30))
		src := `import axios from "axios";` + "\n\n\n"
		want := "// OTHER " + strings.Repeat("=", 21) + "\n" +
			`import axios from "axios";` + "\n\n\n"
		req.Equal(want, f.FormatSource(src))
	})

	t.Run("small column widths stay idempotent", func(t *testing.T) {
		src := strings.Join([]string{
			`import React from "react";`,
			``,
			`const x = 1;`,
			``,
		}, "\n")

		once := newTestFormatter(groupedConfig(10)).FormatSource(src)
		req.True(strings.HasPrefix(once, "// EXTERNAL\n"), "expected an unpadded header in %q", once)
		req.Equal(once, newTestFormatter(groupedConfig(10)).FormatSource(once))
	})

	t.Run("no imports and no declarations is a byte-identical no-op", func(t *testing.T) {
		f := newTestFormatter(nil)
		src := "const x = 1;\n\nfunction main() {\n    return x;\n}\n"
		req.Equal(src, f.FormatSource(src))
	})

	t.Run("crlf line endings survive", func(t *testing.T) {
		f := newTestFormatter(nil)
		src := "interface A {\r\n    a: string;\r\n}\r\n"
		got := f.FormatSource(src)
		req.Equal("interface A {\r\n    a : string;\r\n}\r\n", got)
	})

	t.Run("explicit tab indentation", func(t *testing.T) {
		cfg := config.Default()
		cfg.IndentType = "tab"
		cfg.IndentExplicit = true
		f := newTestFormatter(cfg)
		src := "interface A {\n    a: string;\n}\n"
		req.Equal("interface A {\n\ta : string;\n}\n", f.FormatSource(src))
	})

	t.Run("detected two-space indentation", func(t *testing.T) {
		f := newTestFormatter(nil)
		src := "interface A {\n  a: string;\n  bb: string;\n}\n"
		req.Equal("interface A {\n  a  : string;\n  bb : string;\n}\n", f.FormatSource(src))
	})
}

func TestProcessFile(t *testing.T) {
	req := require.New(t)

	t.Run("write rewrites the file in place", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "user.ts")
		src := "interface User {\n    name: string;\n    isActive?: boolean;\n}\n"
		req.NoError(os.WriteFile(path, []byte(src), 0644))

		f := New(FormatterConfig{Path: path, Config: config.Default(), Write: true})
		changed, err := f.ProcessFile(path, false)
		req.NoError(err)
		req.True(changed)

		got, err := os.ReadFile(path)
		req.NoError(err)
		req.Equal("interface User {\n    name       : string;\n    isActive ? : boolean;\n}\n", string(got))
	})

	t.Run("already formatted file is untouched", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "point.ts")
		src := "interface Point {\n    x : number;\n    y : number;\n}\n"
		req.NoError(os.WriteFile(path, []byte(src), 0644))

		f := New(FormatterConfig{Path: path, Config: config.Default(), Write: true})
		changed, err := f.ProcessFile(path, false)
		req.NoError(err)
		req.False(changed)
	})

	t.Run("missing file", func(t *testing.T) {
		f := New(FormatterConfig{Config: config.Default()})
		_, err := f.ProcessFile(filepath.Join(t.TempDir(), "absent.ts"), false)
		req.Error(err)
	})
}

func TestProcessPathStdoutMode(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "user.ts")
	src := "interface User {\n    name: string;\n}\n"
	req.NoError(os.WriteFile(path, []byte(src), 0644))

	f := New(FormatterConfig{Path: path, Config: config.Default(), Stdout: true})
	req.NoError(f.ProcessPath(path))

	// stdout mode never touches the file
	got, err := os.ReadFile(path)
	req.NoError(err)
	req.Equal(src, string(got))
}

func TestProcessPathCheckMode(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "user.ts")
	src := "interface User {\n    name: string;\n}\n"
	req.NoError(os.WriteFile(path, []byte(src), 0644))

	f := New(FormatterConfig{Path: path, Config: config.Default(), Check: true})
	req.Error(f.ProcessPath(path))

	// check mode never writes
	got, err := os.ReadFile(path)
	req.NoError(err)
	req.Equal(src, string(got))
}
