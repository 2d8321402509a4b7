package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/seed"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/config"
	pg "github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/db/postgres"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	file       string
	extra      int
	count      int
}

// runFunc はフィクスチャを投入します。テストでは差し替えます。
type runFunc func(ctx context.Context, configPath string, f *seed.Fixture) (seed.Result, error)

func newRootCmd() *cobra.Command {
	return newRootCmdWithRunner(runSeed)
}

func newRootCmdWithRunner(run runFunc) *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:           "seed",
		Short:         "Populate empty careerpath tables with initial data.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")

	fixtures := &cobra.Command{
		Use:   "fixtures",
		Short: "Load a YAML fixture file, optionally extended with synthetic employees.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.extra < 0 {
				return errors.New("--fake must not be negative")
			}
			path := opts.file
			if path == "" {
				cfg, err := loadConfig(opts.configPath)
				if err != nil {
					return err
				}
				path = cfg.Bootstrap.SeedFile
			}
			if path == "" {
				return errors.New("no fixture file: pass --file or set bootstrap.seed_file")
			}

			f, err := seed.LoadWithFakes(path, opts.extra, time.Now().UTC())
			if err != nil {
				return err
			}
			return report(run(cmd.Context(), opts.configPath, f))
		},
	}
	fixtures.Flags().StringVarP(&opts.file, "file", "f", "", "fixture file (defaults to bootstrap.seed_file)")
	fixtures.Flags().IntVar(&opts.extra, "fake", 0, "number of synthetic employees to add")

	fake := &cobra.Command{
		Use:   "fake",
		Short: "Insert synthetic employees generated with gofakeit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.count <= 0 {
				return errors.New("--count must be positive")
			}
			f, err := seed.LoadWithFakes("", opts.count, time.Now().UTC())
			if err != nil {
				return err
			}
			return report(run(cmd.Context(), opts.configPath, f))
		},
	}
	fake.Flags().IntVarP(&opts.count, "count", "n", 20, "number of synthetic employees")

	root.AddCommand(fixtures, fake)
	return root
}

func loadConfig(flagValue string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	return config.Load(config.EffectivePath(flagValue))
}

func runSeed(ctx context.Context, configPath string, f *seed.Fixture) (seed.Result, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return seed.Result{}, err
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		return seed.Result{}, fmt.Errorf("initialize database pool: %w", err)
	}
	defer dbPool.Close()

	return seed.NewSeeder(postgres.NewSeedRepository(dbPool), pg.NewTransactionManager(dbPool)).Run(ctx, f)
}

func report(res seed.Result, err error) error {
	if err != nil {
		return err
	}
	if res == (seed.Result{}) {
		log.Printf("nothing seeded: tables already contain data")
	}
	return nil
}
