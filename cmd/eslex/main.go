package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/eslex/internal/cliutil"
	"github.com/aledsdavies/eslex/internal/config"
	"github.com/aledsdavies/eslex/internal/plugin"
	"github.com/aledsdavies/eslex/internal/prettyerr"
	"github.com/aledsdavies/eslex/internal/scanner"
)

// version is overridable at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		format   string
		debug    bool
		useColor bool
		noColor  bool
		pluginPath string
	)

	cfg, cfgErr := config.Load(".")

	rootCmd := &cobra.Command{
		Use:           "eslex",
		Short:         "Scan ECMAScript source for import/export syntax",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	scanCmd := &cobra.Command{
		Use:   "scan <file>...",
		Short: "Scan one or more files and print their import/export sites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliutil.NewLogger(debug)

			effectiveFormat := format
			if !cmd.Flags().Changed("format") && cfg.Format != "" {
				effectiveFormat = cfg.Format
			}
			if effectiveFormat != "text" && effectiveFormat != "json" {
				err := fmt.Errorf("unsupported format %q", effectiveFormat)
				logger.WithError(err).Error("validating flags")
				return exitError{code: cliutil.ExitInvalidArguments, err: err}
			}
			effectiveColor := useColor && !noColor
			if !cmd.Flags().Changed("color") && !noColor && cfg.Color != nil {
				effectiveColor = *cfg.Color
			}
			effectivePlugin := pluginPath
			if effectivePlugin == "" {
				effectivePlugin = cfg.Plugin
			}

			scans := scanFiles(args)

			var out strings.Builder
			for _, sc := range scans {
				if sc.ioErr != nil {
					fmt.Fprint(cmd.OutOrStdout(), out.String())
					logger.WithError(sc.ioErr).Error("reading input file")
					return exitError{code: cliutil.ExitIOError, err: sc.ioErr}
				}
				if sc.parseErr != nil {
					fmt.Fprint(cmd.OutOrStdout(), out.String())
					fmt.Fprint(os.Stderr, prettyerr.Error(sc.src, sc.parseErr))
					return exitError{code: cliutil.ExitScanError, err: sc.parseErr}
				}

				if debug {
					logger.Debug(repr.String(sc.result))
				}

				rendered, err := renderResult(cmd.Context(), sc.result, effectiveFormat, effectiveColor, effectivePlugin)
				if err != nil {
					fmt.Fprint(cmd.OutOrStdout(), out.String())
					logger.WithError(err).Error("rendering result")
					return exitError{code: cliutil.ExitPluginError, err: err}
				}
				if len(scans) > 1 {
					out.WriteString(sc.path + ":\n")
				}
				out.WriteString(rendered)
			}
			fmt.Fprint(cmd.OutOrStdout(), out.String())
			return nil
		},
	}
	scanCmd.Flags().StringVar(&format, "format", "text", "output format: text|json")
	scanCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging and struct dumps")
	scanCmd.Flags().BoolVar(&useColor, "color", true, "use ANSI color in text output")
	scanCmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI color in text output")
	scanCmd.Flags().StringVar(&pluginPath, "plugin", "", "optional WASM module to post-process the scan result")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the eslex build version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}

	rootCmd.AddCommand(scanCmd, versionCmd)
	rootCmd.SetArgs(args)

	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "warning: reading %s: %v\n", config.FileName, cfgErr)
	}

	if err := rootCmd.Execute(); err != nil {
		var ee exitError
		if asExitError(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.err)
			return ee.code
		}
		fmt.Fprintln(os.Stderr, err)
		return cliutil.ExitInvalidArguments
	}
	return cliutil.ExitSuccess
}

// fileScan is one file's read-and-parse outcome.
type fileScan struct {
	path     string
	src      []byte
	result   scanner.ScanResult
	parseErr *scanner.ParseError
	ioErr    error
}

// scanFiles reads and parses paths concurrently, bounded by
// GOMAXPROCS, and returns their outcomes in the same order as paths.
// Each goroutine only ever writes its own index, so no synchronization
// beyond the bounding semaphore and the closing WaitGroup is needed.
func scanFiles(paths []string) []fileScan {
	results := make([]fileScan, len(paths))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			src, err := os.ReadFile(path)
			if err != nil {
				results[i] = fileScan{path: path, ioErr: err}
				return
			}
			result, parseErr := scanner.Parse(src)
			results[i] = fileScan{path: path, src: src, result: result, parseErr: parseErr}
		}(i, path)
	}

	wg.Wait()
	return results
}

// exitError pairs an error with the process exit code it should
// produce, so RunE can return ordinary errors while main still reports
// the right code per §4.6.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string { return e.err.Error() }

func asExitError(err error, out *exitError) bool {
	if ee, ok := err.(exitError); ok {
		*out = ee
		return true
	}
	return false
}

// renderResult formats a scan result as text or JSON, running it
// through the optional WASM plugin first when one is configured.
func renderResult(ctx context.Context, result scanner.ScanResult, format string, useColor bool, pluginPath string) (string, error) {
	encoded, err := json.Marshal(toJSONResult(result))
	if err != nil {
		return "", err
	}

	if pluginPath != "" {
		out, err := plugin.Run(ctx, pluginPath, encoded)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	// format is validated by the caller before scanning begins; only
	// "text" and "json" ever reach this point.
	if format == "json" {
		return string(encoded) + "\n", nil
	}
	return renderText(result, useColor), nil
}

// jsonImport is the wire shape for one import record, tagging its kind
// since ImportRecord has no exported fields in common.
type jsonImport struct {
	Kind               string `json:"kind"`
	StatementStart     int    `json:"statementStart,omitempty"`
	SpecifierStart     int    `json:"specifierStart,omitempty"`
	SpecifierEnd       int    `json:"specifierEnd,omitempty"`
	StatementEnd       int    `json:"statementEnd,omitempty"`
	SpecifierExprStart int    `json:"specifierExprStart,omitempty"`
	SpecifierExprEnd   int    `json:"specifierExprEnd,omitempty"`
	Start              int    `json:"start,omitempty"`
	End                int    `json:"end,omitempty"`
}

type jsonResult struct {
	Imports []jsonImport    `json:"imports"`
	Exports []scanner.Export `json:"exports"`
}

func toJSONResult(result scanner.ScanResult) jsonResult {
	out := jsonResult{Exports: result.Exports}
	for _, rec := range result.Imports {
		switch v := rec.(type) {
		case scanner.StaticImport:
			out.Imports = append(out.Imports, jsonImport{
				Kind:           "static",
				StatementStart: v.StatementStart,
				SpecifierStart: v.SpecifierStart,
				SpecifierEnd:   v.SpecifierEnd,
				StatementEnd:   v.StatementEnd,
			})
		case *scanner.DynamicImport:
			out.Imports = append(out.Imports, jsonImport{
				Kind:               "dynamic",
				StatementStart:     v.StatementStart,
				SpecifierExprStart: v.SpecifierExprStart,
				SpecifierExprEnd:   v.SpecifierExprEnd,
			})
		case scanner.MetaImport:
			out.Imports = append(out.Imports, jsonImport{
				Kind:           "meta",
				StatementStart: v.StatementStart,
				Start:          v.Start,
				End:            v.End,
				StatementEnd:   v.StatementEnd,
			})
		}
	}
	return out
}

func renderText(result scanner.ScanResult, useColor bool) string {
	var b []byte
	for _, rec := range result.Imports {
		switch v := rec.(type) {
		case scanner.StaticImport:
			b = appendLine(b, "import", v.StatementStart, v.StatementEnd, useColor)
		case *scanner.DynamicImport:
			b = appendLine(b, "import()", v.StatementStart, v.SpecifierExprEnd+1, useColor)
		case scanner.MetaImport:
			b = appendLine(b, "import.meta", v.StatementStart, v.StatementEnd, useColor)
		}
	}
	for _, exp := range result.Exports {
		b = appendLine(b, "export", exp.NameStart, exp.NameEnd, useColor)
	}
	return string(b)
}

func appendLine(b []byte, kind string, start, end int, useColor bool) []byte {
	label := kind
	if useColor {
		label = "\x1b[36m" + kind + "\x1b[0m"
	}
	return append(b, []byte(fmt.Sprintf("%s %d..%d\n", label, start, end))...)
}
