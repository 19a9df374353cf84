package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SiteBooking/internal/config"
	"github.com/m04kA/SMC-SiteBooking/internal/infra/storage/migrator"
	"github.com/m04kA/SMC-SiteBooking/migrations"
	"github.com/m04kA/SMC-SiteBooking/pkg/logger"
)

const usage = `Usage: migrate [-config config.toml] <command>

Commands:
  up             применить все миграции
  down           откатить последнюю миграцию
  force VERSION  выставить версию без применения (после ошибки dirty)
  version        показать текущую версию
`

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	m, err := migrator.New(db, migrations.FS, log)
	if err != nil {
		log.Fatal("Failed to init migrator: %v", err)
	}
	defer m.Close()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "force":
		var version int
		if _, scanErr := fmt.Sscanf(flag.Arg(1), "%d", &version); scanErr != nil {
			log.Fatal("force: invalid version %q", flag.Arg(1))
		}
		err = m.Force(version)
	case "version":
		version, dirty, verErr := m.Version()
		if verErr != nil {
			log.Fatal("Failed to get version: %v", verErr)
		}
		log.Info("Current version: %d (dirty=%t)", version, dirty)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("Migration %s failed: %v", flag.Arg(0), err)
	}
}
