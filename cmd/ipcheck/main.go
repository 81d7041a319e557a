// Command ipcheck validates E-ARK information packages: zip/tar/tar.gz
// archives, already-unpacked package directories, or a standalone
// METS.xml file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mattn/go-runewidth"

	"github.com/eark-validator/ipvalidator/archive"
	"github.com/eark-validator/ipvalidator/config"
	"github.com/eark-validator/ipvalidator/ipvlog"
	"github.com/eark-validator/ipvalidator/report"
	"github.com/eark-validator/ipvalidator/schematron"
	"github.com/eark-validator/ipvalidator/validate"
)

// Exit codes, named directly after the CLI contract: 0 success, 1 a
// given path does not exist, 2 a given path is neither a recognised
// archive nor an XML file, 3 reserved for malformed test-case XML.
const (
	exitOK               = 0
	exitNotExist         = 1
	exitUnsupportedFmt   = 2
	exitMalformedFixture = 3
)

func main() {
	var (
		recurse   = flag.Bool("recurse", false, "Expand FILES as doublestar glob patterns")
		checksum  = flag.Bool("checksum", false, "Include checksum reconciliation (on by default; flag kept for CLI parity)")
		verbose   = flag.Bool("verbose", false, "Print a human-readable finding table instead of JSON")
		structure = flag.Bool("structure", false, "Restrict validation to the structure check")
		help      = flag.Bool("help", false, "Show usage information")
	)
	flag.Parse()

	if *help {
		printUsage()
		os.Exit(exitOK)
	}
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: no input files given\n\n")
		printUsage()
		os.Exit(exitNotExist)
	}
	_ = checksum // reconciliation always runs when metadata is checked; flag kept for contract parity

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.SchematronResourceDir != "" {
		if err := schematron.UseResourceDir(cfg.SchematronResourceDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading schematron_resource_dir: %v\n", err)
			os.Exit(1)
		}
	}

	logger := ipvlog.Noop()
	if *verbose {
		logger = ipvlog.New(ipvlog.Options{Verbose: true})
	}
	defer func() { _ = logger.Sync() }()

	paths, err := expandInputs(flag.Args(), *recurse)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitNotExist)
	}

	exitCode := exitOK
	for _, path := range paths {
		code, rep := validateOne(path, !*structure, logger, cfg)
		if code != exitOK && exitCode == exitOK {
			exitCode = code
		}
		if rep != nil {
			printReport(*rep, *verbose)
		}
	}
	os.Exit(exitCode)
}

// expandInputs resolves the FILES… argument list. With --recurse each
// argument is treated as a doublestar glob pattern; without it, the
// arguments are used literally.
func expandInputs(args []string, recurse bool) ([]string, error) {
	if !recurse {
		return args, nil
	}
	var out []string
	for _, pattern := range args {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
		out = append(out, matches...)
	}
	return out, nil
}

// validateOne classifies path against the CLI's input contract and, if
// acceptable, runs the validator. It returns the exit code this path
// contributes (0 unless the path itself was unusable) and the produced
// report, which is nil only when the path failed classification or the
// run was cancelled.
func validateOne(path string, checkMetadata bool, logger *ipvlog.Logger, cfg config.Config) (int, *report.ValidationReport) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %s is not an existing file or directory\n", path)
		return exitNotExist, nil
	}
	if !info.IsDir() {
		_, isArchive := archive.Detect(path)
		isXML := strings.EqualFold(fileExt(path), ".xml")
		if !isArchive && !isXML {
			fmt.Fprintf(os.Stderr, "Error: %s must be a zip/tar archive or an XML METS file\n", path)
			return exitUnsupportedFmt, nil
		}
	}

	r, err := validate.Run(path, validate.Options{
		CheckMetadata:      checkMetadata,
		Logger:             logger,
		ChecksumAlgorithms: cfg.ChecksumAlgorithms,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
		return exitNotExist, nil
	}
	return exitOK, &r
}

func fileExt(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return ""
	}
	return path[idx:]
}

func printReport(r report.ValidationReport, verbose bool) {
	if !verbose {
		printJSON(r)
		return
	}
	printTable(r)
}

func printJSON(r report.ValidationReport) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: encoding report: %v\n", err)
		return
	}
	fmt.Println(string(b))
}

// printTable renders a plain-text finding table, padding the rule-id
// column with display-width rather than byte length so wide rule ids
// and narrow ones still line up.
func printTable(r report.ValidationReport) {
	fmt.Printf("%s  (%s)\n", r.Package.Details.Name, r.Structure.Status)

	rows := append([]report.TestResult{}, r.Structure.Messages...)
	if r.Metadata != nil {
		rows = append(rows, r.Metadata.SchemaResults.Messages...)
		rows = append(rows, r.Metadata.SchematronResults.Messages...)
	}
	if len(rows) == 0 {
		fmt.Println("  no findings")
		return
	}

	idWidth := 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row.RuleID); w > idWidth {
			idWidth = w
		}
	}
	for _, row := range rows {
		pad := idWidth - runewidth.StringWidth(row.RuleID)
		fmt.Printf("  %s%s  %-5s  %s: %s\n", row.RuleID, strings.Repeat(" ", pad), row.Severity, row.Location, row.Message)
	}
}

func printUsage() {
	fmt.Println(`ip-check - E-ARK information package validator

Usage:
  ip-check [options] FILES...

Options:
  --recurse     Expand FILES as doublestar glob patterns (e.g. packages/**/*.zip)
  --checksum    Include checksum reconciliation (default; kept for CLI parity)
  --verbose     Print a human-readable finding table instead of JSON
  --structure   Restrict validation to the structure check
  --help        Show this help message

Exit codes:
  0  every input validated (the report may still show findings)
  1  a given path does not exist
  2  a given path is neither a recognised archive nor an XML file
  3  reserved for malformed test-case XML

Examples:
  ip-check package.zip
  ip-check --verbose --structure unpacked-package/
  ip-check --recurse "packages/**/*.zip"`)
}
