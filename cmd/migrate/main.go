package main

import (
	"flag"
	"log"

	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/config"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/db/migration"
)

func main() {
	var (
		configPath    = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		migrationsDir = flag.String("dir", "", "directory containing migration files (defaults to bootstrap.migrations_dir)")
	)
	flag.Parse()

	action, err := migration.ParseAction(flag.Arg(0))
	if err != nil {
		log.Fatalf("invalid action: %v", err)
	}

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.Load(config.EffectivePath(*configPath))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dir := *migrationsDir
	if dir == "" {
		dir = cfg.Bootstrap.MigrationsDir
	}

	if err := migration.Run(action, dir, cfg.Database.DSN()); err != nil {
		log.Fatalf("migration %s failed: %v", action, err)
	}

	log.Printf("migration %s completed", action)
}
