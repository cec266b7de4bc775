// Command gradereport turns a roster file and a course score file into a
// final grade report.
//
//	gradereport -roster NameFile.txt -scores CourseFile.txt -out FinalGrades.txt
//
// Exit codes: 0 success, 1 fatal error, 2 usage error.
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
	"strings"
	"syscall"
	"text/tabwriter"

	"gradecli/internal/config"
	"gradecli/internal/exporter"
	"gradecli/internal/infrastructure"
	"gradecli/internal/operations"
	"gradecli/pkg/contracts"
	"gradecli/pkg/contracts/domain"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// options holds the parsed command line.
type options struct {
	configFile string
	roster     string
	scores     string
	out        string
	format     string
	atomic     bool
	print      bool
	view       string
	logLevel   string
	version    bool

	// set records which flags were given explicitly
	set map[string]bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("gradereport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configFile, "config", "", "YAML config file (defaults to $GRADES_CONFIG or gradecli.yaml)")
	fs.StringVar(&opts.roster, "roster", "", "roster file: one \"id, name\" per line (default from config)")
	fs.StringVar(&opts.scores, "scores", "", "score file: \"id, course, test1, test2, test3, final\" per line (default from config)")
	fs.StringVar(&opts.out, "out", "", "report output path (default from config)")
	fs.StringVar(&opts.format, "format", "", "report format: "+strings.Join(config.ReportFormats, "|"))
	fs.BoolVar(&opts.atomic, "atomic", true, "write through a temp file and rename")
	fs.BoolVar(&opts.print, "print", false, "print the report as a table instead of writing it")
	fs.StringVar(&opts.view, "view", "", "print an existing report file as a table and exit")
	fs.StringVar(&opts.logLevel, "log-level", "error", "log level: debug|info|warn|error")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: gradereport [flags]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.format != "" && !config.IsReportFormat(opts.format) {
		return nil, fmt.Errorf("unsupported report format %q (want one of %s)", opts.format, strings.Join(config.ReportFormats, ", "))
	}

	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// request starts from the configured report settings and applies the
// flags that were given. Flag paths stay relative to the working directory.
func (o *options) request(cfg config.ReportConfig) operations.Request {
	req := operations.RequestFromConfig(cfg)
	if o.set["roster"] {
		req.RosterPath = o.roster
	}
	if o.set["scores"] {
		req.ScoresPath = o.scores
	}
	if o.set["out"] {
		req.OutputPath = o.out
	}
	if o.set["format"] {
		req.Format = o.format
	}
	if o.set["atomic"] {
		req.Atomic = o.atomic
	}
	return req
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return exitOK
	}

	if opts.view != "" {
		return view(opts.view, stdout, stderr)
	}

	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: config error: %v\n", err)
		return exitError
	}

	logger, err := newLogger(cfg.Logging, opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: config error: %v\n", err)
		return exitError
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, contracts.Version, stderr, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: config error: %v\n", err)
		return exitError
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	pipeline, err := operations.NewPipeline(providers, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", operations.DescribeError(err))
		return exitError
	}

	req := opts.request(cfg.Report)

	if opts.print {
		report, err := pipeline.Preview(ctx, req)
		if err != nil {
			return fail(stderr, err)
		}
		printWarnings(stdout, report.Warnings)
		if err := printReport(stdout, report.Rows); err != nil {
			return fail(stderr, err)
		}
		return exitOK
	}

	res, err := pipeline.Run(ctx, req)
	if err != nil {
		return fail(stderr, err)
	}

	printWarnings(stdout, res.Warnings)
	fmt.Fprintf(stdout, "Processing complete. Output written to %s\n", res.OutputPath)
	fmt.Fprintf(stdout, "Rows written: %d, skipped: %d\n", res.RowsWritten, res.SkippedRows)
	return exitOK
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// newLogger keeps stderr quiet by default: only errors are logged unless
// -log-level says otherwise. File sinks from config are honoured.
func newLogger(cfg config.LoggingConfig, opts *options, stderr io.Writer) (*slog.Logger, error) {
	level := opts.logLevel
	switch strings.ToLower(cfg.Output) {
	case "file", "both":
		cfg.Level = level
		return infrastructure.InitializeLogger(cfg)
	default:
		return infrastructure.NewJSONLogger(stderr, level), nil
	}
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %s\n", operations.DescribeError(err))
	return exitError
}

func printWarnings(w io.Writer, warnings []domain.Warning) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning.Message)
	}
}

func printReport(w io.Writer, rows []domain.ReportRow) error {
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, exporter.RowFields(row))
	}
	return printTable(w, exporter.Header, table)
}

func view(path string, stdout, stderr io.Writer) int {
	table, err := exporter.ReadReportFile(path)
	if err != nil {
		return fail(stderr, err)
	}
	if err := printTable(stdout, table.Header, table.Rows); err != nil {
		return fail(stderr, err)
	}
	return exitOK
}

func printTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
