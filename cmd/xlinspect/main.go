// Package main provides the CLI entry point for xlinspect.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/xlinspect/pkg/xlinspect"
	"github.com/ukaji3/xlinspect/pkg/xlinspect/models"
	"github.com/ukaji3/xlinspect/pkg/xlinspect/output"
)

// DefaultWorkbook is analyzed when no path is given. It is resolved
// relative to the directory of the executable.
const DefaultWorkbook = "Stash Auto Lookup.xlsx"

type cliOptions struct {
	outputPath string
	sheetsDir  string
	mode       string
	falsy      bool
	verbose    bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "xlinspect [input.xlsx]",
		Short: "Summarize the structure of an Excel workbook",
		Long: `xlinspect reports sheet names, headers, formulas and sample rows
of an Excel workbook as JSON.

Without an argument it analyzes "` + DefaultWorkbook + `" next to the executable.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args, stdout, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&opts.sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	rootCmd.Flags().StringVar(&opts.mode, "mode", string(xlinspect.ModeStandard), "Formula detail: standard, verbose")
	rootCmd.Flags().BoolVar(&opts.falsy, "falsy", false, "Treat 0 and FALSE cells as empty")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	return rootCmd
}

func run(opts *cliOptions, args []string, stdout, stderr io.Writer) error {
	inputPath, err := resolveInput(args)
	if err != nil {
		return err
	}

	mode, err := xlinspect.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	logger := newLogger(opts.verbose, stderr)
	defer logger.Sync()

	analyzeOpts := xlinspect.DefaultOptions()
	analyzeOpts.Mode = mode
	analyzeOpts.Logger = logger
	if opts.falsy {
		analyzeOpts.EmptyPolicy = xlinspect.EmptyFalsy
	}

	result, err := xlinspect.Analyze(inputPath, analyzeOpts)
	if err != nil {
		return err
	}

	jsonData, err := output.ToJSON(result)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	var files []outputFile
	if opts.sheetsDir != "" {
		if files, err = sheetFiles(result, opts.sheetsDir); err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	}
	if opts.outputPath != "" {
		files = append(files, outputFile{path: opts.outputPath, data: jsonData})
	}

	if opts.outputPath == "" && opts.sheetsDir == "" {
		if _, err := stdout.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if opts.sheetsDir != "" {
		if err := os.MkdirAll(opts.sheetsDir, 0755); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}
	if err := writeFiles(files); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, file := range files {
		logger.Debug("output written", zap.String("file", file.path))
	}
	return nil
}

// resolveInput returns the positional path, or DefaultWorkbook next to the
// executable when none is given.
func resolveInput(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("cannot locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), DefaultWorkbook), nil
}

// newLogger returns a development console logger on stderr, or a no-op
// logger when verbose is off. Logs never go to stdout.
func newLogger(verbose bool, stderr io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(stderr), zapcore.DebugLevel)
	return zap.New(core)
}

type outputFile struct {
	path string
	data []byte
}

// sheetFiles serializes every sheet to <dir>/<sheet name>.json.
func sheetFiles(result *models.AnalysisResult, dir string) ([]outputFile, error) {
	files := make([]outputFile, 0, len(result.Sheets))
	for _, entry := range result.Sheets {
		jsonData, err := output.SheetToJSON(&entry.Summary)
		if err != nil {
			return nil, err
		}
		files = append(files, outputFile{
			path: filepath.Join(dir, entry.Name+".json"),
			data: jsonData,
		})
	}
	return files, nil
}

// writeFiles writes all files or none: on failure the files already
// written by this call are removed.
func writeFiles(files []outputFile) error {
	for i, file := range files {
		if err := os.WriteFile(file.path, file.data, 0644); err != nil {
			for _, written := range files[:i] {
				os.Remove(written.path)
			}
			return err
		}
	}
	return nil
}
