package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"wandr_ingest/internal/adapters/csvfile"
	"wandr_ingest/internal/adapters/observability"
	"wandr_ingest/internal/app"
	"wandr_ingest/internal/shared"
	mysqlrepo "wandr_ingest/internal/storage/mysql"
)

// Back-fill tool: ingests every CSV export in a directory, one transaction
// per file. Files are independent batches, so bounded concurrency is safe:
// cross-file entity races converge through the store's unique constraints
// and the duplicate-key upsert paths.
func main() {
	dir := flag.String("dir", "exports", "directory of CSV export files")
	dialect := flag.String("dialect", "", "dialect hint for every file (cloudbeds|zuzu), empty for generic")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("dir", *dir).
		Str("dialect", *dialect).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	imp := app.NewImportService(csvfile.New(), mysqlrepo.New(db), nil, cfg.DefaultYear)

	ents, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatal().Err(err).Msg("read export dir failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, e := range ents {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		path := filepath.Join(*dir, e.Name())

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := imp.ProcessFile(ctx, path, *dialect)
			if err != nil {
				log.Warn().Str("file", path).Err(err).Msg("ingest failed")
				return
			}
			log.Info().
				Str("file", path).
				Int("processed", res.ProcessedRows).
				Int("skipped", res.SkippedRows).
				Msg("ingest ok")
		}(path)
	}

	wg.Wait()
	log.Info().Msg("ingestion completed")
}
