package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nadmax/etltimeline/internal/api"
	"github.com/nadmax/etltimeline/internal/config"
	"github.com/nadmax/etltimeline/internal/dashboard"
	"github.com/nadmax/etltimeline/internal/logger"
	"github.com/nadmax/etltimeline/internal/source"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	source     string
	variant    string
	csvPath    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "etltimeline",
		Short: "Interactive ETL execution timeline",
		Long: `etltimeline loads ETL run start/end times once at startup and serves an
interactive Gantt-style timeline with a case-insensitive name filter.

Examples:
  etltimeline                                   # Serve VisualDataTime.csv on 0.0.0.0:10000
  etltimeline --csv runs.csv --variant search   # Free-text search page
  etltimeline --source postgres                 # Read runs using TIMELINE_POSTGRES_DSN
  etltimeline names                             # Print distinct ETL names`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&opts.source, "source", "", "Data source: csv, postgres or redis")
	root.PersistentFlags().StringVar(&opts.csvPath, "csv", "", "CSV file path for the csv source")
	root.Flags().StringVar(&opts.variant, "variant", "", "Page variant: dropdown or search")

	root.AddCommand(newNamesCmd(opts), newSeedCmd(opts))
	return root
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil && cfg == nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = opts.source
	}
	if flags.Changed("csv") {
		cfg.CSVPath = opts.csvPath
	}
	if flags.Changed("variant") {
		cfg.Variant = opts.variant
	}

	return cfg, cfg.Validate()
}

func setup(cmd *cobra.Command, opts *options) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}

func runServe(cmd *cobra.Command, opts *options) error {
	cfg, log, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	variant, err := dashboard.LookupVariant(cfg.Variant)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, err := loadDataset(ctx, cfg, log)
	if err != nil {
		log.Error("failed to load dataset", zap.String("source", cfg.Source), zap.Error(err))
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewAPI(ds, variant, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", cfg.Addr()), zap.String("variant", variant.Name))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func newNamesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "Print the distinct ETL names of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ds, err := loadDataset(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}

			for _, name := range ds.DistinctNames() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.csv>",
		Short: "Append the rows of a CSV file to the Redis list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = file.Close() }()

			table, err := source.ReadCSV(file)
			if err != nil {
				return err
			}

			redisSrc, err := source.NewRedisSource(cmd.Context(), cfg.RedisAddr, cfg.RedisKey, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := redisSrc.Close(); err != nil {
					log.Warn("failed to close Redis client", zap.Error(err))
				}
			}()

			n, err := redisSrc.Seed(cmd.Context(), table)
			if err != nil {
				return err
			}

			log.Info("rows seeded", zap.String("key", cfg.RedisKey), zap.Int("rows", n))
			return nil
		},
	}
}
