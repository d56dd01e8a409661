// spsconv converts a manuscript file to SciELO SPS 1.9 JATS XML plus a
// quality report, writing both next to the input (or into -out).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scigraf/jatsgen/convert"
	"github.com/scigraf/jatsgen/extract"
	"github.com/scigraf/jatsgen/structure"
)

func main() {
	configPath := flag.String("config", "", "journal configuration YAML (missing fields are auto-filled)")
	outDir := flag.String("out", "", "output directory (default: alongside the input file)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `spsconv — manuscript to SciELO JATS XML converter

usage:
  spsconv [-config journal.yaml] [-out dir] <file.docx|odt|txt|html>

Writes <basename>.xml and QA_Report_<basename>.md. Structuring uses the
OpenAI API when OPENAI_API_KEY is set, a heading heuristic otherwise.
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	lvl := slog.LevelWarn
	if *verbose {
		lvl = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	var structurer structure.Structurer
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		structurer = structure.NewOpenAI(key)
	} else {
		structurer = structure.Heuristic{}
		fmt.Fprintln(os.Stderr, "OPENAI_API_KEY not set: using heading heuristic")
	}

	opts := []convert.Option{convert.WithLogger(logger)}
	if *configPath != "" {
		opts = append(opts, convert.WithJournalConfig(*configPath))
	}
	svc := convert.New(extract.New(extract.Config{Logger: logger}), structurer, opts...)
	defer svc.Close()

	result, err := svc.ConvertFile(context.Background(), inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conversion failed: %v\n", err)
		os.Exit(1)
	}

	dir := *outDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	xmlPath := filepath.Join(dir, result.XMLFilename())
	reportPath := filepath.Join(dir, result.ReportFilename())
	if err := os.WriteFile(xmlPath, []byte(result.XML), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write xml: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(reportPath, []byte(result.Report), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write report: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("XML:    %s\n", xmlPath)
	fmt.Printf("Report: %s\n", reportPath)
	fmt.Printf("Score:  %d/100 (%s)\n", result.Score, result.Tier)
}
