package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sujan-s/seri-sei/pkg/config"
	"github.com/sujan-s/seri-sei/pkg/errors"
	"github.com/sujan-s/seri-sei/pkg/formatter"
	"github.com/sujan-s/seri-sei/pkg/version"
)

const (
	UseDescription   = "seri-sei [flags] PATH"
	ShortDescription = "seri-sei - A pretty-printer for import blocks and type declarations"
	LongDescription  = `seri-sei is a command-line tool that rewrites two regions of a source file
into a canonical layout:

1. The leading block of import statements, grouped under labeled headers
   and sorted within each group
2. Type and interface declarations, whose members are vertically aligned
   and whose call signatures are expanded to a fixed multi-line shape

Groups, header fill character, column width and indentation are read from
a project-local .seriseirc file; sensible defaults apply without one.

PATH can be either a single source file or a directory. When a directory
is specified, all source files in the directory and subdirectories will be
processed recursively.`
)

var (
	configPath  string
	write       bool
	check       bool
	toStdout    bool
	debugLog    bool
	showVersion bool
	versionStr  string
)

var rootCmd = &cobra.Command{
	Use:          UseDescription,
	Short:        ShortDescription,
	Long:         LongDescription,
	Args:         validateArgs,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a .seriseirc configuration file (overrides the project-root search)")
	rootCmd.PersistentFlags().BoolVar(&write, "write", false, "Rewrite files in place instead of printing to stdout")
	rootCmd.PersistentFlags().BoolVar(&check, "check", false, "Exit non-zero when files would change, without writing")
	rootCmd.PersistentFlags().BoolVar(&toStdout, "stdout", false, "Print the formatted result to stdout instead of writing")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	rootCmd.MarkFlagsMutuallyExclusive("stdout", "write")
	rootCmd.MarkFlagsMutuallyExclusive("stdout", "check")
}

func validateArgs(cmd *cobra.Command, args []string) error {
	// If version flag is set, we don't need file arguments
	if showVersion {
		return nil
	}
	return cobra.ExactArgs(1)(cmd, args)
}

func run(cmd *cobra.Command, args []string) error {
	// Handle version flag
	if showVersion {
		info := version.Get()
		if info.Version == "dev" && versionStr != "" {
			info.Version = versionStr
		}
		fmt.Println(info.String())
		return nil
	}

	level := slog.LevelInfo
	if debugLog {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf(errors.ErrMsgPathDoesNotExist, path)
	}

	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	f := formatter.New(formatter.FormatterConfig{
		Path:   path,
		Config: cfg,
		Write:  write,
		Check:  check,
		Stdout: toStdout,
	})
	return f.ProcessPath(path)
}

func Execute(version string) error {
	versionStr = version
	return rootCmd.Execute()
}
