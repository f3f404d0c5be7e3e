package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/2beens/fitlog/internal/config"
	"github.com/2beens/fitlog/internal/db"
	"github.com/2beens/fitlog/internal/fitlog/backup"
	"github.com/2beens/fitlog/internal/fitlog/entries"
	"github.com/2beens/fitlog/internal/fitlog/types"
	"github.com/2beens/fitlog/pkg"

	log "github.com/sirupsen/logrus"
)

// standalone backup tool: dumps the store to a JSON file, or restores one.
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	mode := flag.String("mode", "dump", "dump or restore")
	filePath := flag.String("file", "fitlog-backup.json", "backup file path")
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: cfg.PostgresHost,
		DBPort: cfg.PostgresPort,
		DBName: cfg.PostgresDBName,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	// no notifier, nothing is subscribed in a one-shot run
	codec := backup.NewCodec(
		entries.NewRepo(dbPool, nil),
		types.NewRepo(dbPool, nil),
	)

	switch *mode {
	case "dump":
		if err := dump(ctx, codec, *filePath); err != nil {
			log.Fatalf("dump: %s", err)
		}
		log.Infof("store dumped to %s", *filePath)
	case "restore":
		result, err := restore(ctx, codec, *filePath)
		if err != nil {
			log.Fatalf("restore: %s", err)
		}
		log.Infof(
			"restored from %s: %d types, %d entries, %d skipped",
			*filePath, result.TypesRestored, result.EntriesRestored, result.EntriesSkipped,
		)
	default:
		log.Fatalf("unknown mode %q, use dump or restore", *mode)
	}
}

func dump(ctx context.Context, codec *backup.Codec, filePath string) error {
	backupFile, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}

	if err := codec.Dump(ctx, backupFile); err != nil {
		_ = backupFile.Close()
		return err
	}
	return backupFile.Close()
}

func restore(ctx context.Context, codec *backup.Codec, filePath string) (*backup.RestoreResult, error) {
	exists, err := pkg.PathExists(filePath, false)
	if err != nil {
		return nil, fmt.Errorf("check backup file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("backup file %s not found", filePath)
	}

	backupFile, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open backup file: %w", err)
	}
	defer func() {
		if err := backupFile.Close(); err != nil {
			log.Warnf("close backup file: %s", err)
		}
	}()

	return codec.Restore(ctx, backupFile)
}
