package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/japaniel/lexisent/pkg/config"
	"github.com/japaniel/lexisent/pkg/corpus"
	"github.com/japaniel/lexisent/pkg/lexicon"
	"github.com/japaniel/lexisent/pkg/logger"
	"github.com/japaniel/lexisent/pkg/metrics"
	"github.com/japaniel/lexisent/pkg/output"
	"github.com/japaniel/lexisent/pkg/sentiment"
)

const usage = `Usage: lexisent [flags] <input>

Scores documents with the Janis-Fadner coefficient of imbalance over a
positive/negative word list. <input> is a URL, a directory of .txt files or a
headerless one-column CSV file.

Flags:
`

type options struct {
	configPath  string
	wordlist    string
	outputPath  string
	dbPath      string
	metricsFile string
	encoding    string
	logLevel    string
	workers     int
	meta        bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&opts.wordlist, "w", "", "Lexicon CSV with token and sentiment columns (default MPQA.csv, else the built-in list)")
	flag.StringVar(&opts.wordlist, "wordlist", "", "Alias for -w")
	flag.StringVar(&opts.outputPath, "o", config.DefaultOutputPath, "Output CSV path")
	flag.StringVar(&opts.outputPath, "output", config.DefaultOutputPath, "Alias for -o")
	flag.StringVar(&opts.dbPath, "db", "", "Also archive the run in this SQLite database")
	flag.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	flag.StringVar(&opts.encoding, "encoding", corpus.EncodingLatin1, "Input encoding: latin1, utf-8 or auto")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flag.IntVar(&opts.workers, "workers", 0, "Worker goroutines (0 means one per CPU)")
	flag.BoolVar(&opts.meta, "meta", false, "Add ID, Date, Positive and Negative columns to the output")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(cfg, opts, setFlags())
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, input); err != nil {
		cancel()
		// slog now owns the log package's output, so fatal errors bypass it.
		fmt.Fprintf(os.Stderr, "lexisent: %s\n", describe(err))
		os.Exit(1)
	}
}

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyFlags lets explicitly set flags win over the config file and environment.
func applyFlags(cfg *config.Config, opts options, set map[string]bool) {
	if set["w"] || set["wordlist"] {
		cfg.Lexicon.Path = opts.wordlist
	}
	if set["o"] || set["output"] {
		cfg.Output.Path = opts.outputPath
	}
	if set["db"] {
		cfg.Output.Database = opts.dbPath
	}
	if set["metrics-file"] {
		cfg.Metrics.File = opts.metricsFile
	}
	if set["encoding"] {
		cfg.Input.Encoding = opts.encoding
	}
	if set["log-level"] {
		cfg.Logging.Level = opts.logLevel
	}
	if set["workers"] {
		cfg.Analysis.Workers = opts.workers
	}
	if set["meta"] {
		cfg.Output.Metadata = opts.meta
	}
}

// describe prefixes typed failures so the user can tell bad input from a bad
// word list.
func describe(err error) string {
	var inErr *corpus.InputError
	var encErr *corpus.EncodingError
	var schemaErr *lexicon.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return "Invalid lexicon: " + err.Error()
	case errors.As(err, &encErr):
		return "Failed to decode input: " + err.Error()
	case errors.As(err, &inErr):
		return "Invalid input: " + err.Error()
	case errors.Is(err, context.Canceled):
		return "Interrupted"
	default:
		return err.Error()
	}
}

// loadLexicon uses the configured path, then MPQA.csv in the working
// directory, then the built-in list.
func loadLexicon(path string) (*lexicon.Lexicon, string, error) {
	if path != "" {
		lex, err := lexicon.Load(path)
		return lex, path, err
	}
	if _, err := os.Stat(config.DefaultLexiconPath); err == nil {
		lex, err := lexicon.Load(config.DefaultLexiconPath)
		return lex, config.DefaultLexiconPath, err
	}
	slog.Warn("no lexicon configured and MPQA.csv not found, using built-in word list")
	return lexicon.Default(), "builtin", nil
}

func run(ctx context.Context, cfg *config.Config, input string) error {
	start := time.Now()
	runLog := logger.WithComponent("cli")

	enc, err := corpus.ParseEncoding(cfg.Input.Encoding)
	if err != nil {
		return err
	}

	lex, lexName, err := loadLexicon(cfg.Lexicon.Path)
	if err != nil {
		return err
	}
	fmt.Printf("Lexicon %s: %d positive, %d negative tokens\n", lexName, len(lex.Positive), len(lex.Negative))

	ingestor := corpus.NewIngestor()
	ingestor.Encoding = enc
	ingestor.Logger = logger.WithComponent("corpus")
	if cfg.Analysis.Workers > 0 {
		ingestor.Workers = cfg.Analysis.Workers
	}
	docs, err := ingestor.Load(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d documents from %s\n", len(docs), input)

	analyzer := sentiment.NewAnalyzer(lex)
	analyzer.Logger = logger.WithComponent("sentiment")
	if cfg.Analysis.Workers > 0 {
		analyzer.Workers = cfg.Analysis.Workers
	}
	analyzer.OnProgress = func(cur, total int) {
		fmt.Printf("Scored %d/%d documents\n", cur, total)
	}
	results, err := analyzer.Analyze(ctx, docs)
	if err != nil {
		return err
	}

	if err := output.WriteCSVFile(cfg.Output.Path, results, cfg.Output.Metadata); err != nil {
		return err
	}
	sum := sentiment.Summarize(results)

	if cfg.Output.Database != "" {
		archive, err := output.OpenArchive(cfg.Output.Database, output.ArchiveOptions{
			Input:          input,
			Lexicon:        lexName,
			PositiveTokens: len(lex.Positive),
			NegativeTokens: len(lex.Negative),
			StartedAt:      start,
			Logger:         logger.WithComponent("archive"),
		})
		if err != nil {
			return err
		}
		if err := archive.Write(results); err != nil {
			_ = archive.Finish(sum, time.Now())
			return fmt.Errorf("archive scores: %w", err)
		}
		if err := archive.Finish(sum, time.Now()); err != nil {
			return fmt.Errorf("archive scores: %w", err)
		}
		fmt.Printf("Archived run %d in %s\n", archive.RunID(), cfg.Output.Database)
	}

	if cfg.Metrics.File != "" {
		m := metrics.New()
		m.ObserveLexicon(lex)
		m.ObserveResults(results)
		end := time.Now()
		m.Finish(end.Sub(start), end)
		if err := m.WriteTextfile(cfg.Metrics.File); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	runLog.Info("run complete",
		"documents", sum.Documents,
		"positive", sum.Positive,
		"negative", sum.Negative,
		"neutral", sum.Neutral,
		"mean", sum.Mean,
		"stddev", sum.StdDev,
		"min", sum.Min,
		"max", sum.Max,
		"elapsed", time.Since(start),
	)
	fmt.Printf("Wrote %d sentiment scores to %s\n", len(results), cfg.Output.Path)
	return nil
}
