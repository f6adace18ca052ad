package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/migrations"
)

func main() {
	var (
		configPath = flag.String("config", "config.toml", "Path to config file")
		command    = flag.String("command", "up", "Command to run (up, down, version, force)")
		version    = flag.Int("version", -1, "Target version for force")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	m, err := migrations.New(cfg.Database.URL())
	if err != nil {
		log.Fatalf("Migration init failed: %v", err)
	}
	defer m.Close()

	switch *command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Migration up failed: %v", err)
		}
	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Migration down failed: %v", err)
		}
	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatalf("Get version failed: %v", err)
		}
		fmt.Printf("Version: %d, Dirty: %v\n", v, dirty)
	case "force":
		if *version < 0 {
			flag.Usage()
			os.Exit(1)
		}
		if err := m.Force(*version); err != nil {
			log.Fatalf("Force version failed: %v", err)
		}
	default:
		log.Fatalf("Unknown command: %s", *command)
	}

	log.Printf("Migration command %q completed", *command)
}
