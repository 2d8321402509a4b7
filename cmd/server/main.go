package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/seed"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/role"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/config"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/db/migration"
	pg "github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/db/postgres"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/i18n"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/otel"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/server"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.Load(config.EffectivePath(*configPath))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownTracing, err := otel.Setup(ctx, cfg.Tracing)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("failed to shutdown tracing: %v", err)
		}
	}()

	if cfg.Bootstrap.Migrate {
		if err := migration.Run(migration.ActionUp, cfg.Bootstrap.MigrationsDir, cfg.Database.DSN()); err != nil {
			log.Fatalf("failed to apply migrations: %v", err)
		}
		log.Printf("migrations applied from %s", cfg.Bootstrap.MigrationsDir)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)

	if cfg.Bootstrap.SeedFile != "" || cfg.Bootstrap.FakeEmployees > 0 {
		fixture, err := seed.LoadWithFakes(cfg.Bootstrap.SeedFile, cfg.Bootstrap.FakeEmployees, time.Now().UTC())
		if err != nil {
			log.Fatalf("failed to load seed data: %v", err)
		}
		if _, err := seed.NewSeeder(postgres.NewSeedRepository(dbPool), txManager).Run(ctx, fixture); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
	}

	salary, err := i18n.NewCurrencyFormatter(cfg.Locale.Language, cfg.Locale.Currency)
	if err != nil {
		log.Fatalf("failed to initialize salary formatter: %v", err)
	}

	employeeSvc := employee.NewService(postgres.NewEmployeeRepository(dbPool), nil, txManager, employee.WithSalaryFormatter(salary))
	roleSvc := role.NewService(postgres.NewRoleRepository(dbPool), txManager)

	g, gctx := errgroup.WithContext(ctx)
	if addr := cfg.Server.GRPCListenAddr; addr != "" {
		grpcServer := server.New(addr, employeeSvc, roleSvc)
		g.Go(func() error {
			log.Printf("gRPC server listening on %s", addr)
			return grpcServer.Run(gctx)
		})
	}
	if addr := cfg.Server.HTTPListenAddr; addr != "" {
		httpServer := server.NewHTTP(addr, cfg.Server.CORSAllowOrigins, employeeSvc, roleSvc)
		g.Go(func() error {
			log.Printf("HTTP server listening on %s", addr)
			return httpServer.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Printf("server stopped")
}
