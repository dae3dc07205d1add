package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gompdf/invoicepdf"
	"github.com/gompdf/invoicepdf/internal/res"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var (
		inputFile  string
		outputFile string
		invoiceID  string
		store      string
		redisAddr  string
		verbose    bool
	)

	fs := flag.NewFlagSet("invoicepdf", flag.ContinueOnError)
	fs.StringVar(&inputFile, "input", "", "Input invoice JSON file path")
	fs.StringVar(&outputFile, "output", "", "Output PDF file path (default: suggested name next to the input)")
	fs.StringVar(&invoiceID, "id", "", "Invoice id to look up in -store instead of reading -input")
	fs.StringVar(&store, "store", ".", "Directory of <id>.json records, http(s) base URL or postgres:// DSN")
	fs.StringVar(&redisAddr, "redis", "", "Redis address for caching looked up records")
	fs.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if inputFile == "" && invoiceID == "" {
		fs.Usage()
		return fmt.Errorf("input file or invoice id is required")
	}

	log, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gen := invoicepdf.NewWith(invoicepdf.WithLogger(log))
	var doc *invoicepdf.Document
	if invoiceID != "" {
		ctx := context.Background()
		src, closeSource, serr := openSource(ctx, store, redisAddr, log)
		if serr != nil {
			return serr
		}
		defer closeSource()
		doc, err = gen.GenerateByID(ctx, src, invoiceID)
	} else {
		doc, err = generateFile(gen, inputFile)
	}
	if err != nil {
		log.Error("rendering failed", zap.String("input", inputFile), zap.String("id", invoiceID), zap.Error(err))
		return err
	}

	if outputFile == "" {
		dir := filepath.Dir(inputFile)
		if invoiceID != "" {
			dir = "."
		}
		outputFile = filepath.Join(dir, doc.Filename)
	}
	if err := os.WriteFile(outputFile, doc.Bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	log.Info("invoice written",
		zap.String("output", outputFile),
		zap.Int("pages", doc.Pages),
		zap.Int("bytes", len(doc.Bytes)),
	)
	if verbose {
		fmt.Fprintf(stdout, "Successfully rendered invoice %s to %s\n", doc.ID, outputFile)
	}
	return nil
}

// openSource selects the record store for -id lookups
func openSource(ctx context.Context, store, redisAddr string, log *zap.Logger) (invoicepdf.Source, func(), error) {
	var (
		src     invoicepdf.Source
		closers []func()
	)
	if strings.HasPrefix(store, "postgres://") || strings.HasPrefix(store, "postgresql://") {
		pg, closePool, err := res.OpenPGSource(ctx, store, log)
		if err != nil {
			return nil, nil, err
		}
		src = pg
		closers = append(closers, closePool)
	} else {
		src = res.NewLoader(store, log)
	}

	if redisAddr != "" {
		kv := res.NewRedisKV(&redis.Options{Addr: redisAddr})
		src = res.NewCachedSource(src, kv, 24*time.Hour, log)
		closers = append(closers, func() { _ = kv.Close() })
	}

	return src, func() {
		for _, c := range closers {
			c()
		}
	}, nil
}

// generateFile decodes an invoice JSON file and renders it
func generateFile(gen *invoicepdf.Generator, path string) (*invoicepdf.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice file: %w", err)
	}
	var inv invoicepdf.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to decode invoice: %w", err)
	}
	return gen.Generate(&inv)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
