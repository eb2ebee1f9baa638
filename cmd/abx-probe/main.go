// Command abx-probe prints the sample rate and bit depth or bitrate of audio
// files, the way an A/B/X comparison lists its tracks.
//
// Usage:
//
//	abx-probe [-verify] [-json] [-j N] [-v] files...
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/simonhull/abxmeta"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// fileReport is one line of output, or one element of the JSON array.
type fileReport struct {
	Path       string   `json:"path"`
	Format     string   `json:"format,omitempty"`
	Container  string   `json:"container,omitempty"`
	SampleRate uint32   `json:"sample_rate_hz,omitempty"`
	BitDepth   uint16   `json:"bit_depth,omitempty"`
	Bitrate    uint32   `json:"bitrate_kbps,omitempty"`
	Display    string   `json:"display,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Mismatch   string   `json:"verify_mismatch,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("abx-probe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verify := fs.Bool("verify", false, "cross-check WAV headers against a chunk-walking decoder")
	asJSON := fs.Bool("json", false, "print results as JSON")
	jobs := fs.Int("j", runtime.NumCPU(), "number of files read in parallel")
	verbose := fs.Bool("v", false, "log debug output to stderr")
	version := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: abx-probe [-verify] [-json] [-j N] [-v] files...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *version {
		info := abxmeta.GetVersionInfo()
		commit := info.GitCommit
		if info.Modified {
			commit += "-dirty"
		}
		fmt.Fprintf(stdout, "abx-probe %s (commit %s, built %s, %s)\n", info.Version, commit, info.BuildTime, info.GoVersion)
		return 0
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := abxmeta.InspectMany(ctx, fs.Args(),
		abxmeta.WithLogger(logger),
		abxmeta.WithConcurrency(*jobs),
	)
	if err != nil {
		fmt.Fprintf(stderr, "abx-probe: %v\n", err)
		return 1
	}

	reports := make([]fileReport, len(results))
	for i, r := range results {
		reports[i] = report(r)
		if *verify && r.Err == nil && r.Header.Format == abxmeta.FormatWAV {
			if msg, err := verifyWAV(r.Path, r.Header); err != nil {
				logger.Warn("verify failed", slog.String("path", r.Path), slog.Any("error", err))
			} else {
				reports[i].Mismatch = msg
			}
		}
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			fmt.Fprintf(stderr, "abx-probe: %v\n", err)
			return 1
		}
		return 0
	}

	for _, rep := range reports {
		printReport(stdout, rep)
	}
	return 0
}

func report(r abxmeta.Result) fileReport {
	rep := fileReport{Path: r.Path}
	if r.Err != nil {
		rep.Error = describe(r.Err)
		return rep
	}

	h := r.Header
	rep.Format = h.Format.String()
	rep.Container = h.Container
	rep.SampleRate = h.SampleRate
	rep.BitDepth = h.BitDepth
	rep.Bitrate = h.Bitrate
	rep.Display = h.Display().String()
	for _, w := range h.Warnings {
		rep.Warnings = append(rep.Warnings, w.String())
	}
	if note := extensionNote(r.Path, h.Format); note != "" {
		rep.Warnings = append(rep.Warnings, note)
	}
	return rep
}

// extensionNote flags WAV or FLAC content behind a foreign extension.
func extensionNote(path string, format abxmeta.Format) string {
	exts := format.Extensions()
	ext := strings.ToLower(filepath.Ext(path))
	if len(exts) == 0 || ext == "" || slices.Contains(exts, ext) {
		return ""
	}
	return fmt.Sprintf("extension %s does not match %s content", ext, format)
}

// describe shortens the common failures to what a listener needs to know.
func describe(err error) string {
	var unavailable *abxmeta.StreamUnavailableError
	switch {
	case errors.As(err, &unavailable):
		return "cannot open: " + unavailable.Err.Error()
	case errors.Is(err, abxmeta.ErrTruncatedHeader):
		return "truncated header: " + err.Error()
	default:
		return err.Error()
	}
}

func printReport(w io.Writer, rep fileReport) {
	if rep.Error != "" {
		fmt.Fprintf(w, "%s: error: %s\n", rep.Path, rep.Error)
		return
	}

	fmt.Fprintf(w, "%s: %s\n", rep.Path, rep.Display)
	for _, warning := range rep.Warnings {
		fmt.Fprintf(w, "    warning: %s\n", warning)
	}
	if rep.Mismatch != "" {
		fmt.Fprintf(w, "    verify: %s\n", rep.Mismatch)
	}
}
