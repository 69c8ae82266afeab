package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/tuition-backend-go/internal/config"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/database"
)

func main() {
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string (defaults to the DB_* settings)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate [-dsn url] [up|down|status|reset]")
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	if *dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			fmt.Println("Error loading config:", err)
			os.Exit(1)
		}
		*dsn = cfg.DatabaseURL()
	}

	if err := database.Migrate(context.Background(), *dsn, command); err != nil {
		slog.Error("Migration failed", "command", command, "error", err)
		os.Exit(1)
	}
	slog.Info("Migration finished", "command", command)
}
