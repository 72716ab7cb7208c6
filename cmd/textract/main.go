// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/gabriel-vasile/mimetype"

	textract "github.com/nicholasgasior/textract-go"
)

var version = "dev"

func main() {
	var (
		output         string
		extension      string
		mimeType       string
		configPath     string
		tesseractLang  string
		preserve       bool
		preserveMulti  bool
		includeAltText bool
		nativePDF      bool
		check          bool
		verbose        bool
		showVersion    bool
	)

	flag.StringVar(&output, "o", "", "Output file (default: stdout)")
	flag.StringVar(&output, "output", "", "Output file (default: stdout)")
	flag.StringVar(&extension, "x", "", "File extension hint (for stdin input)")
	flag.StringVar(&extension, "extension", "", "File extension hint (for stdin input)")
	flag.StringVar(&mimeType, "m", "", "MIME type of the input")
	flag.StringVar(&mimeType, "mime-type", "", "MIME type of the input")
	flag.StringVar(&configPath, "config", "", "YAML or JSON options file")
	flag.StringVar(&tesseractLang, "tesseract-lang", "", "Language passed to tesseract")
	flag.BoolVar(&preserve, "preserve-line-breaks", true, "Keep line breaks in the output")
	flag.BoolVar(&preserveMulti, "preserve-only-multiple-line-breaks", false, "Keep only runs of two or more line breaks")
	flag.BoolVar(&includeAltText, "include-alt-text", false, "Include image alt text when extracting HTML")
	flag.BoolVar(&nativePDF, "native-pdf", false, "Extract PDFs in process instead of with pdftotext")
	flag.BoolVar(&check, "check", false, "Report which extractors can run and exit")
	flag.BoolVar(&verbose, "verbose", false, "Log extractor activity to stderr")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: textract [flags] [source]\n\n")
		fmt.Fprintf(os.Stderr, "Extract plain text from documents.\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  source    File path, URL or - for stdin (reads stdin if omitted)\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("textract %s\n", version)
		os.Exit(0)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := &textract.Options{}
	if configPath != "" {
		loaded, err := textract.LoadOptions(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts = loaded
	}
	applyFlags(opts, configPath != "", map[string]any{
		"preserve-line-breaks":               preserve,
		"preserve-only-multiple-line-breaks": preserveMulti,
		"include-alt-text":                   includeAltText,
		"tesseract-lang":                     tesseractLang,
	})

	topts := []textract.Option{textract.WithLogger(logger)}
	if nativePDF {
		topts = append(topts, textract.WithNativePDF())
	}
	t, err := textract.New(topts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if check {
		if err := printStatus(ctx, os.Stdout, t, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	text, err := extract(ctx, t, flag.Args(), mimeType, extension, opts)
	if code := finish(os.Stdout, os.Stderr, output, text, err); code != 0 {
		os.Exit(code)
	}
}

// finish writes the extracted text and reports err. A cleanup failure
// still gets its text written before it is reported.
func finish(stdout, stderr io.Writer, output, text string, err error) int {
	var cleanup *textract.CleanupError
	if err != nil && !errors.As(err, &cleanup) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if writeErr := writeText(stdout, output, text); writeErr != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", writeErr)
		return 1
	}
	if cleanup != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func writeText(stdout io.Writer, output, text string) error {
	if output == "" {
		_, err := fmt.Fprintln(stdout, text)
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(output, []byte(text+"\n"), 0o644)
}

// applyFlags copies flag values into opts. With a config file loaded only
// flags given on the command line override it.
func applyFlags(opts *textract.Options, fromConfig bool, values map[string]any) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	use := func(name string) bool { return !fromConfig || set[name] }
	if use("preserve-line-breaks") {
		opts.PreserveLineBreaks = values["preserve-line-breaks"].(bool)
	}
	if use("preserve-only-multiple-line-breaks") {
		opts.PreserveOnlyMultipleLineBreaks = values["preserve-only-multiple-line-breaks"].(bool)
	}
	if use("include-alt-text") {
		opts.IncludeAltText = values["include-alt-text"].(bool)
	}
	if lang := values["tesseract-lang"].(string); lang != "" {
		opts.Tesseract.Lang = lang
	}
}

func extract(ctx context.Context, t *textract.Textract, args []string, mimeType, extension string, opts *textract.Options) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		source := args[0]
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			return t.FromURL(ctx, source, opts)
		}
		if mimeType != "" {
			return t.Extract(ctx, mimeType, textract.FilePath(source), opts)
		}
		return t.FromFile(ctx, source, opts)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if mimeType == "" && extension != "" {
		extension = strings.ToLower(extension)
		if !strings.HasPrefix(extension, ".") {
			extension = "." + extension
		}
		mimeType = textract.TypeByExtension("stdin" + extension)
	}
	if mimeType == "" {
		mimeType, _, _ = strings.Cut(mimetype.Detect(data).String(), ";")
	}
	return t.Extract(ctx, mimeType, textract.Buffer(data).WithName("stdin"), opts)
}

func printStatus(ctx context.Context, w io.Writer, t *textract.Textract, opts *textract.Options) error {
	statuses, err := t.ProbeAll(ctx, opts)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EXTRACTOR\tCAPABLE\tTYPES\tREASON")
	for _, s := range statuses {
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\n", s.Extractor, s.Capable, strings.Join(s.Types, ", "), s.Reason)
	}
	return tw.Flush()
}
