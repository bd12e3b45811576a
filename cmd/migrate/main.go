package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"umkm-reels/migrations"
	"umkm-reels/pkg/config"
	"umkm-reels/pkg/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		dir     = flag.String("dir", "migrations", "directory new migrations are written to (create only)")
		command = flag.String("command", "up", "migration command (up, down, reset, status, create)")
		name    = flag.String("name", "", "name for new migration (used with create command)")
	)
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Error("Failed to open database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := run(db, "postgres", *command, *dir, *name); err != nil {
		log.Error("Migration %s failed: %v", *command, err)
		os.Exit(1)
	}
	log.Info("Migration %s finished", *command)
}

// run executes a goose command. Schema changes are read from the embedded
// migrations; create writes a new file to dir on disk.
func run(db *sql.DB, dialect, command, dir, name string) error {
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if command == "create" {
		if name == "" {
			return fmt.Errorf("name is required for create command")
		}
		goose.SetBaseFS(nil)
		return goose.Create(db, dir, name, "sql")
	}

	var embedded fs.FS = migrations.FS
	goose.SetBaseFS(embedded)
	defer goose.SetBaseFS(nil)

	switch command {
	case "up":
		return goose.Up(db, ".")
	case "down":
		return goose.Down(db, ".")
	case "reset":
		return goose.Reset(db, ".")
	case "status":
		return goose.Status(db, ".")
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}
