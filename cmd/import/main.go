// import は表計算ファイル（.xlsx / .csv）からキャラクターを一括登録します。
//
//	go run ./cmd/import -file characters.xlsx
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"ranking_backend/internal/app/di"
	"ranking_backend/internal/feature/ranking/adapters/sheet"
	"ranking_backend/internal/platform/config"
	platformdb "ranking_backend/internal/platform/db"
	"ranking_backend/internal/platform/logger"
)

func main() {
	path := flag.String("file", "", "path to the .xlsx or .csv file")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall import timeout")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.New(cfg.LogLevel, cfg.LogFormat)

	rows, err := sheet.ReadFile(*path)
	if err != nil {
		slog.Error("failed to read file", "file", *path, "error", err)
		os.Exit(1)
	}

	dbCfg := cfg.Database()
	// テーブルがなければ作成する
	dbCfg.RunMigrations = true
	db, err := platformdb.Open(dbCfg)
	if err != nil {
		slog.Error("failed to open DB", "error", err)
		os.Exit(1)
	}
	defer func() { _ = platformdb.Close(db) }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := di.NewImportUsecase(db).Import(ctx, rows)
	if err != nil {
		slog.Error("import failed", "error", err, "imported", report.Imported)
		cancel()
		_ = platformdb.Close(db)
		os.Exit(1)
	}
	slog.Info("import ok", "file", *path, "read", report.Read, "imported", report.Imported, "skipped", report.Skipped)
}
