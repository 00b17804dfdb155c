package formatter

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/sujan-s/seri-sei/pkg/config"
	"github.com/sujan-s/seri-sei/pkg/errors"
	"github.com/sujan-s/seri-sei/pkg/utils"
)

type FormatterConfig struct {
	Path   string         // file or directory to process
	Config *config.Config // resolved configuration; nil resolves per file
	Write  bool           // rewrite files in place when formatting differs
	Check  bool           // report files that would change without writing
	Stdout bool           // print the formatted result instead of writing
}

// formatter drives the import-grouping and declaration-formatting engine
// over one file at a time. It holds per-file state and is not safe for
// concurrent use; directory processing clones one per worker.
type formatter struct {
	config FormatterConfig
	cfg    *config.Config // active per-file configuration
	unit   string         // active indent unit
}

// New creates a new formatter with the specified configuration
func New(cfg FormatterConfig) *formatter {
	return &formatter{config: cfg}
}

// FormatSource formats one file's text: the leading import block is
// regrouped and each top-level type or interface declaration is rewritten,
// with the unmodified remainder spliced back around them. A file with
// neither imports nor declarations is returned byte-identical.
func (f *formatter) FormatSource(src string) string {
	if f.cfg == nil {
		f.cfg = config.Default()
	}

	crlf := strings.Contains(src, "\r\n")
	normalized := src
	if crlf {
		normalized = strings.ReplaceAll(src, "\r\n", "\n")
	}
	lines := strings.Split(normalized, "\n")

	if f.cfg.IndentExplicit {
		f.unit = f.cfg.IndentUnit()
	} else {
		f.unit = detectIndent(normalized).unit()
	}

	stmts, imp := f.locateImports(lines)
	regions := locateDeclarations(lines, imp.end+1)
	if len(stmts) == 0 && len(regions) == 0 {
		return src
	}

	var out []string
	out = append(out, lines[:imp.start]...)
	next := imp.start
	if len(stmts) > 0 {
		out = append(out, f.formatImports(stmts)...)
		next = imp.end + 1
		rest := next
		for rest < len(lines) && strings.TrimSpace(lines[rest]) == "" {
			rest++
		}
		// Exactly one blank line before following code; a blank-only tail
		// is kept as written so the file's final newline survives.
		if rest < len(lines) {
			out = append(out, "")
			next = rest
		}
	}
	for _, r := range regions {
		if r.start < next {
			continue
		}
		out = append(out, lines[next:r.start]...)
		out = append(out, f.formatDeclaration(lines[r.start:r.end+1])...)
		next = r.end + 1
	}
	out = append(out, lines[next:]...)

	result := strings.Join(out, "\n")
	if crlf {
		result = strings.ReplaceAll(result, "\n", "\r\n")
	}
	return result
}

// resolveConfig picks the active configuration for a file: an explicit
// config wins, otherwise the nearest .seriseirc is resolved.
func (f *formatter) resolveConfig(path string) error {
	if f.config.Config != nil {
		f.cfg = f.config.Config
		return nil
	}
	cfg, err := config.Resolve(path)
	if err != nil {
		return err
	}
	f.cfg = cfg
	return nil
}

// ProcessFile formats one source file. toStdout prints the formatted text
// instead of reporting; the returned flag says whether formatting changed
// anything.
func (f *formatter) ProcessFile(path string, toStdout bool) (bool, error) {
	if err := f.resolveConfig(path); err != nil {
		return false, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
	}

	output := f.FormatSource(string(src))
	changed := output != string(src)
	slog.Debug("formatted file", "path", path, "changed", changed)

	if toStdout {
		fmt.Print(output)
		return changed, nil
	}
	if f.config.Write && changed {
		if err := utils.WriteFileAtomic(path, []byte(output), 0644); err != nil {
			return changed, fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
	}
	return changed, nil
}

// ProcessFiles formats multiple source files, fanning out across workers.
// Per-file errors are counted and reported, never fatal to the batch.
func (f *formatter) ProcessFiles(paths []string) error {
	var (
		mu        sync.Mutex
		processed int
		changed   int
		failed    int
	)

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range paths {
		path := path
		g.Go(func() error {
			worker := New(f.config)
			fileChanged, err := worker.ProcessFile(path, false)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				fmt.Printf(errors.InfoMsgErrorProcessing+"\n", path, err)
				return nil
			}
			processed++
			if fileChanged {
				changed++
				switch {
				case f.config.Write:
					color.Green(errors.InfoMsgProcessedFile, path)
				case f.config.Check:
					color.Yellow(errors.InfoMsgNeedsFormatting, path)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	fmt.Printf(errors.InfoMsgProcessedCount, processed)
	if failed > 0 {
		fmt.Printf(errors.InfoMsgErrorCount, failed)
	}
	fmt.Println()

	if failed > 0 {
		return fmt.Errorf(errors.ErrMsgFilesFailedToProcess, failed)
	}
	if f.config.Check && changed > 0 {
		return fmt.Errorf(errors.ErrMsgFilesNeedFormatting, changed)
	}
	return nil
}

// ProcessPath processes a file or directory path
func (f *formatter) ProcessPath(path string) error {
	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		toStdout := f.config.Stdout || (!f.config.Write && !f.config.Check)
		changed, err := f.ProcessFile(path, toStdout)
		if err != nil {
			return err
		}
		if changed && f.config.Write {
			color.Green(errors.InfoMsgProcessedFile, path)
		}
		if changed && f.config.Check {
			color.Yellow(errors.InfoMsgNeedsFormatting, path)
			return fmt.Errorf(errors.ErrMsgFilesNeedFormatting, 1)
		}
		return nil
	}

	if !f.config.Write && !f.config.Check {
		color.Yellow(errors.WarnMsgProcessingDirWithoutWrite)
		fmt.Println(errors.InfoMsgUseWriteFlag)
		fmt.Println()
	}

	files, err := utils.FindSourceFiles(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindSourceFiles, err)
	}
	if len(files) == 0 {
		fmt.Printf(errors.InfoMsgNoSourceFilesFound+"\n", path)
		return nil
	}

	fmt.Printf(errors.InfoMsgFoundSourceFiles+"\n\n", len(files), path)
	return f.ProcessFiles(files)
}
