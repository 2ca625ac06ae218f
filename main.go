package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/liguoqinjim/china-bean-importers/internal/api"
	"github.com/liguoqinjim/china-bean-importers/internal/config"
	"github.com/liguoqinjim/china-bean-importers/internal/importer"
	"github.com/liguoqinjim/china-bean-importers/internal/logger"
	"github.com/liguoqinjim/china-bean-importers/internal/models"
	"github.com/liguoqinjim/china-bean-importers/internal/rowsource"
	"github.com/liguoqinjim/china-bean-importers/internal/writer"
)

const version = "1.0.0"

func main() {
	configFlag := flag.String("config", "config.yaml", "Path to the importer configuration YAML")
	kindFlag := flag.String("kind", "cmb_debit_card", "Statement kind: cmb_debit_card")
	ownerFlag := flag.String("owner", "", "Account holder display name from the statement header")
	cardFlag := flag.String("card", "", "Statement's own card number (full number or tail)")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .csv extension)")
	headerFlag := flag.Bool("header", true, "Include statement metadata header rows in CSV")
	addrFlag := flag.String("addr", "", "Run the HTTP API on this address instead of converting files")
	verboseFlag := flag.Bool("verbose", false, "Enable debug logging")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `china-bean-importers

Converts tokenized Chinese bank statement rows into balanced
double-entry transactions, classifying each row's counterparty to a
ledger account via configurable keyword rules.

Usage:
  china-bean-importers [flags] <rows.csv> [rows2.csv ...]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert one statement's rows
  china-bean-importers -config=config.yaml -owner=张三 -card=1234 rows.csv

  # Run the HTTP API
  china-bean-importers -config=config.yaml -addr=:8080

Row CSV format (one statement row per record):
  date,currency,amount,balance,summary,payee[,customer_summary]
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("china-bean-importers v%s\n", version)
		os.Exit(0)
	}

	log := logger.New(*verboseFlag)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if *addrFlag != "" {
		app := api.NewServer(cfg, log).App()
		log.Info().Str("addr", *addrFlag).Msg("starting HTTP API")
		if err := app.Listen(*addrFlag); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}
	if *ownerFlag == "" || *cardFlag == "" {
		log.Fatal().Msg("-owner and -card are required when converting files")
	}

	imp, err := importer.New(models.StatementKind(*kindFlag), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("unsupported statement kind")
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(imp, inputPath, *ownerFlag, *cardFlag, *outputFlag, *headerFlag); err != nil {
			log.Fatal().Err(err).Str("file", inputPath).Msg("conversion failed")
		}
	}
}

func processFile(imp importer.Importer, inputPath, owner, cardNumber, outputPath string, includeHeader bool) error {
	fmt.Printf("Processing: %s\n", inputPath)

	rows, err := rowsource.FromFile(inputPath)
	if err != nil {
		return err
	}
	fmt.Printf("  Read %d row(s)\n", len(rows))

	st, err := imp.Open(owner, cardNumber)
	if err != nil {
		return err
	}
	fmt.Printf("  Card account: %s\n", st.CardAccount())

	txns, warnings, err := st.Convert(rows)
	if err != nil {
		return err
	}
	fmt.Printf("  Synthesized %d transaction(s)\n", len(txns))
	if len(warnings) > 0 {
		fmt.Printf("  %d warning(s), see log\n", len(warnings))
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + ".transactions.csv"
	}

	w := &writer.CSVWriter{IncludeHeader: includeHeader}
	if err := w.WriteToFile(outPath, st.CardAccount(), txns); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Println("  Done.")
	return nil
}
