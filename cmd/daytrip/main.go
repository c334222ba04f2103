package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"daytrip/internal/builder"
	"daytrip/internal/config"
	"daytrip/internal/ingest"
	"daytrip/internal/storage"
)

const usage = `usage: daytrip [YYYYMMDD | --all | --index]

  YYYYMMDD  build the summary for one date
  --all     build every date with raw data, then rebuild the catalog
  --index   rebuild only the catalog from existing summaries
  (no args) build the current date, then rebuild the catalog
`

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.InitSchema(ctx); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	b := &builder.Builder{
		Loader:  &ingest.Loader{Root: cfg.RawDataDir},
		Store:   store,
		Options: cfg.Pipeline,
	}

	if err := run(ctx, b, os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, b *builder.Builder, args []string) error {
	switch {
	case len(args) == 0:
		today := time.Now().Format("20060102")
		if _, err := b.BuildDate(ctx, today); err != nil {
			return err
		}
		return b.RebuildIndex(ctx)

	case args[0] == "--all":
		built, err := b.BuildAll(ctx)
		if err != nil {
			return err
		}
		log.Printf("built %d days", built)
		return b.RebuildIndex(ctx)

	case args[0] == "--index":
		return b.RebuildIndex(ctx)

	case len(args[0]) == 8 && args[0][0] != '-':
		_, err := b.BuildDate(ctx, args[0])
		return err

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unrecognized argument %q", args[0])
	}
}
