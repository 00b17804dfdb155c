package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsSourceFile(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		filename string
		want     bool
	}{
		{"app.ts", true},
		{"App.tsx", true},
		{"index.js", true},
		{"widget.jsx", true},
		{"COMPONENT.TSX", true},
		{"main.go", false},
		{"styles.css", false},
		{"README.md", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			req.Equal(tt.want, IsSourceFile(tt.filename))
		})
	}
}

func TestFindSourceFiles(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()

	mkfile := func(parts ...string) {
		path := filepath.Join(append([]string{root}, parts...)...)
		req.NoError(os.MkdirAll(filepath.Dir(path), 0755))
		req.NoError(os.WriteFile(path, []byte("const x = 1;\n"), 0644))
	}

	mkfile("app.ts")
	mkfile("src", "components", "Card.tsx")
	mkfile("src", "notes.md")
	mkfile("node_modules", "dep", "index.js")
	mkfile("dist", "bundle.js")
	mkfile(".cache", "tmp.ts")

	files, err := FindSourceFiles(root)
	req.NoError(err)
	req.ElementsMatch([]string{
		filepath.Join(root, "app.ts"),
		filepath.Join(root, "src", "components", "Card.tsx"),
	}, files)
}

func TestIsDirectory(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "a.ts")
	req.NoError(os.WriteFile(file, []byte("x"), 0644))

	isDir, err := IsDirectory(dir)
	req.NoError(err)
	req.True(isDir)

	isDir, err = IsDirectory(file)
	req.NoError(err)
	req.False(isDir)

	_, err = IsDirectory(filepath.Join(dir, "missing"))
	req.Error(err)
}

func TestWriteFileAtomic(t *testing.T) {
	req := require.New(t)

	t.Run("creates a new file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.ts")
		req.NoError(WriteFileAtomic(path, []byte("const a = 1;\n"), 0644))

		got, err := os.ReadFile(path)
		req.NoError(err)
		req.Equal("const a = 1;\n", string(got))
	})

	t.Run("replaces an existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.ts")
		req.NoError(os.WriteFile(path, []byte("old"), 0644))
		req.NoError(WriteFileAtomic(path, []byte("new"), 0644))

		got, err := os.ReadFile(path)
		req.NoError(err)
		req.Equal("new", string(got))
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		dir := t.TempDir()
		req.NoError(WriteFileAtomic(filepath.Join(dir, "out.ts"), []byte("x"), 0644))

		entries, err := os.ReadDir(dir)
		req.NoError(err)
		req.Len(entries, 1)
		req.Equal("out.ts", entries[0].Name())
	})
}

func TestFindProjectRoot(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name   string
		marker string
	}{
		{"git directory", ".git"},
		{"package manifest", "package.json"},
		{"typescript config", "tsconfig.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.marker == ".git" {
				req.NoError(os.MkdirAll(filepath.Join(root, tt.marker), 0755))
			} else {
				req.NoError(os.WriteFile(filepath.Join(root, tt.marker), []byte("{}"), 0644))
			}
			nested := filepath.Join(root, "src", "deep")
			req.NoError(os.MkdirAll(nested, 0755))
			file := filepath.Join(nested, "a.ts")
			req.NoError(os.WriteFile(file, []byte("x"), 0644))

			got, ok := FindProjectRoot(file)
			req.True(ok)
			req.Equal(root, got)
		})
	}

	t.Run("nearest marker wins", func(t *testing.T) {
		root := t.TempDir()
		req.NoError(os.WriteFile(filepath.Join(root, "package.json"), []byte("{}"), 0644))
		sub := filepath.Join(root, "packages", "ui")
		req.NoError(os.MkdirAll(sub, 0755))
		req.NoError(os.WriteFile(filepath.Join(sub, "package.json"), []byte("{}"), 0644))

		file := filepath.Join(sub, "Button.tsx")
		req.NoError(os.WriteFile(file, []byte("x"), 0644))

		got, ok := FindProjectRoot(file)
		req.True(ok)
		req.Equal(sub, got)
	})
}
