package main

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/nadmax/etltimeline/internal/config"
	"github.com/nadmax/etltimeline/internal/metrics"
	"github.com/nadmax/etltimeline/internal/source"
	"github.com/nadmax/etltimeline/internal/timeline"
	"go.uber.org/zap"
)

// loadDataset opens the configured source, reads it once and records the
// outcome in the load metrics.
func loadDataset(ctx context.Context, cfg *config.Config, log *zap.Logger) (*timeline.Dataset, error) {
	start := time.Now()

	src, err := openSource(ctx, cfg, log)
	if err != nil {
		metrics.RecordLoadFailure(cfg.Source, "source")
		return nil, err
	}

	if closer, ok := src.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Warn("failed to close source", zap.String("source", cfg.Source), zap.Error(err))
			}
		}()
	}

	ds, err := source.LoadDataset(ctx, src)
	if err != nil {
		metrics.RecordLoadFailure(cfg.Source, failureKind(err))
		return nil, err
	}

	names := len(ds.DistinctNames())
	metrics.RecordDatasetLoaded(cfg.Source, ds.Len(), names, time.Since(start))
	log.Info("dataset loaded",
		zap.String("source", cfg.Source),
		zap.Int("records", ds.Len()),
		zap.Int("names", names),
		zap.Duration("duration", time.Since(start)),
	)

	return ds, nil
}

func openSource(ctx context.Context, cfg *config.Config, log *zap.Logger) (source.Source, error) {
	switch cfg.Source {
	case config.SourcePostgres:
		return source.NewPostgresSource(cfg.PostgresDSN, cfg.PostgresQuery, log)
	case config.SourceRedis:
		return source.NewRedisSource(ctx, cfg.RedisAddr, cfg.RedisKey, log)
	default:
		return source.NewCSVSource(cfg.CSVPath, log), nil
	}
}

func failureKind(err error) string {
	var perr *timeline.ParseError
	var merr *timeline.MissingColumnError

	switch {
	case errors.As(err, &perr):
		return "parse"
	case errors.As(err, &merr):
		return "missing_column"
	default:
		return "source"
	}
}
