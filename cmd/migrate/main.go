package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"balance-ledger/config"
	pgStorage "balance-ledger/internal/adapter/storage/postgres"
	"balance-ledger/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: migration command is required")
		fmt.Fprintln(os.Stderr, "Usage: migrate [-config file] <up|down|status|redo|reset|version>")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := pgStorage.RunMigrations(ctx, cfg.Database.DSN(), args[0], log); err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("Migration failed")
	}

	log.Info().Str("command", args[0]).Msg("Migration finished")
}
