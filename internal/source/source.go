// Package source provides the data-access layer that hands tabular ETL run
// data to the timeline dataset. Each source is read exactly once at startup.
package source

import (
	"context"
	"fmt"

	"github.com/nadmax/etltimeline/internal/timeline"
)

type Source interface {
	Load(ctx context.Context) (timeline.Table, error)
}

// LoadDataset reads the table from src and builds the dataset from it.
func LoadDataset(ctx context.Context, src Source) (*timeline.Dataset, error) {
	table, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load table: %w", err)
	}

	return timeline.FromTable(table)
}
