package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/orayew2002/rast-words/config"
	"github.com/orayew2002/rast-words/domain"
	"github.com/orayew2002/rast-words/logger"
	"github.com/orayew2002/rast-words/processor"
	"github.com/orayew2002/rast-words/sink"
	"github.com/orayew2002/rast-words/template"
	"github.com/orayew2002/rast-words/words"
	"github.com/remiges-tech/logharbour/logharbour"
	"google.golang.org/api/option"
)

const publishTimeout = 30 * time.Second

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := logger.New(os.Stderr, cfg.Verbose)
	log.Info().LogActivity("Starting "+logger.AppName, map[string]any{"start": cfg.Start, "end": cfg.End})

	// Step 1: convert and print the sequence. Nothing below can affect it.
	rows := domain.Rows(cfg.Start, cfg.End)
	printRows(os.Stdout, rows)

	// Step 2: optional random spot checks.
	if cfg.Random > 0 {
		if err := printRandom(os.Stdout, cfg.Random); err != nil {
			log.Warn().LogActivity("Could not generate random samples", map[string]any{"error": err.Error()})
		}
	}

	// Step 3: publish to every configured destination.
	rng := sink.Range{Sheet: cfg.Sheet, Start: cfg.Start, End: cfg.End}
	failed := publish(ctx, log, cfg, rng, rows)

	log.Info().LogActivity(logger.AppName+" completed", map[string]any{
		"entries":        len(rows),
		"failed_targets": failed,
	})
}

// loadConfig layers flags over the environment over the config file over defaults.
func loadConfig() (config.Config, error) {
	def := config.Default()

	configPath := flag.String("config", "", "path to a JSON config file")
	start := flag.Int("start", def.Start, "first number to convert (-999999 to 999999)")
	end := flag.Int("end", def.End, "last number to convert, inclusive (-999999 to 999999)")
	sheet := flag.String("sheet", def.Sheet, "target sheet name")
	output := flag.String("output", "", "path of the local .xlsx workbook to write")
	tpl := flag.String("template", "", "path of an .xlsx template containing {{sequence}}")
	spreadsheetID := flag.String("spreadsheet-id", "", "Google spreadsheet id (env "+config.EnvSpreadsheetID+")")
	credentials := flag.String("credentials", "", "service account JSON file (env "+config.EnvCredentials+")")
	clearRange := flag.Bool("clear", false, "clear the target range in Google Sheets before writing")
	random := flag.Int("random", 0, "also print this many random numbers in words")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	s3Endpoint := flag.String("s3-endpoint", "", "S3-compatible endpoint for uploading the workbook")
	s3Bucket := flag.String("s3-bucket", "", "bucket for the uploaded workbook")
	s3Object := flag.String("s3-object", def.ObjectStore.Object, "object key for the uploaded workbook")
	s3Secure := flag.Bool("s3-secure", def.ObjectStore.Secure, "use TLS for the object store")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(os.LookupEnv)

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "start":
			cfg.Start = *start
		case "end":
			cfg.End = *end
		case "sheet":
			cfg.Sheet = *sheet
		case "output":
			cfg.Output = *output
		case "template":
			cfg.Template = *tpl
		case "spreadsheet-id":
			cfg.SpreadsheetID = *spreadsheetID
		case "credentials":
			cfg.CredentialsFile = *credentials
		case "clear":
			cfg.Clear = *clearRange
		case "random":
			cfg.Random = *random
		case "verbose":
			cfg.Verbose = *verbose
		case "s3-endpoint":
			cfg.ObjectStore.Endpoint = *s3Endpoint
		case "s3-bucket":
			cfg.ObjectStore.Bucket = *s3Bucket
		case "s3-object":
			cfg.ObjectStore.Object = *s3Object
		case "s3-secure":
			cfg.ObjectStore.Secure = *s3Secure
		}
	})

	return cfg, cfg.Validate()
}

func printRows(w io.Writer, rows []domain.Row) {
	fmt.Fprintln(w, "Numbers in words:")
	for i, r := range rows {
		fmt.Fprintf(w, "%d: %s\n", i+1, r.Words)
	}
}

func printRandom(w io.Writer, n int) error {
	nums, err := domain.RandomNumbers(n)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Random samples:")
	for _, num := range nums {
		fmt.Fprintf(w, "%d: %s\n", num, words.For(num))
	}
	return nil
}

// publish writes rows to the local workbook or template, Google Sheets and the
// object store, in that order. Failures are logged and counted, never fatal.
func publish(ctx context.Context, log *logharbour.Logger, cfg config.Config, rng sink.Range, rows []domain.Row) int {
	failed := 0
	warn := func(target string, err error) {
		failed++
		log.Warn().LogActivity("Could not update "+target, map[string]any{"error": err.Error()})
		log.Info().LogActivity("Continuing with local execution only", nil)
	}

	switch {
	case cfg.Template != "":
		if err := stepTemplate(log, cfg, rows); err != nil {
			warn("template", err)
		}
	case cfg.Output != "":
		if err := sink.NewWorkbook(cfg.Output, log).Persist(ctx, rng, rows); err != nil {
			warn("workbook", err)
		}
	}

	if cfg.SheetsEnabled() {
		if err := stepSheets(ctx, log, cfg, rng, rows); err != nil {
			warn("spreadsheet", err)
		}
	} else {
		log.Info().LogActivity("No spreadsheet configuration found. Running in local mode only.", nil)
	}

	if cfg.ObjectStoreEnabled() {
		if err := stepObjectStore(ctx, log, cfg, rng, rows); err != nil {
			warn("object store", err)
		}
	}

	return failed
}

func stepTemplate(log *logharbour.Logger, cfg config.Config, rows []domain.Row) error {
	registry := template.New()
	template.RegisterDefaults(registry, cfg.Start, cfg.End, rows)

	p := processor.New(registry, log)
	if _, err := p.ProcessFile(cfg.Template, cfg.Output); err != nil {
		return err
	}

	log.Info().LogActivity("Template processed", map[string]any{
		"template":     cfg.Template,
		"output":       cfg.Output,
		"placeholders": p.Expanded(),
	})
	return nil
}

func stepSheets(ctx context.Context, log *logharbour.Logger, cfg config.Config, rng sink.Range, rows []domain.Row) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	gs, err := sink.NewGoogleSheets(ctx, cfg.SpreadsheetID, log, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return err
	}

	if err := gs.Ping(ctx); err != nil {
		return err
	}

	if cfg.Clear {
		if err := gs.Clear(ctx, rng.A1()); err != nil {
			return err
		}
	}

	return gs.Persist(ctx, rng, rows)
}

func stepObjectStore(ctx context.Context, log *logharbour.Logger, cfg config.Config, rng sink.Range, rows []domain.Row) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	oc := cfg.ObjectStore
	store, err := sink.NewMinioStore(oc.Endpoint, oc.AccessKey, oc.SecretKey, oc.Secure)
	if err != nil {
		return err
	}

	return sink.NewObject(store, oc.Bucket, oc.Object, log).Persist(ctx, rng, rows)
}
