package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/nadmax/etltimeline/internal/timeline"
	"go.uber.org/zap"
)

const DefaultPostgresQuery = `
	SELECT etl AS "ETL", start_time AS "Start Time", end_time AS "End Time"
	FROM etl_runs
	ORDER BY id
`

type PostgresSource struct {
	db     *sql.DB
	query  string
	logger *zap.Logger
}

func NewPostgresSource(connectionString, query string, logger *zap.Logger) (*PostgresSource, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return newPostgresSource(db, query, logger), nil
}

func newPostgresSource(db *sql.DB, query string, logger *zap.Logger) *PostgresSource {
	if query == "" {
		query = DefaultPostgresQuery
	}

	return &PostgresSource{db: db, query: query, logger: logger}
}

// Load runs the configured query. Result column names become the table
// header and NULL cells become empty text.
func (s *PostgresSource) Load(ctx context.Context) (timeline.Table, error) {
	rows, err := s.db.QueryContext(ctx, s.query)
	if err != nil {
		return timeline.Table{}, fmt.Errorf("failed to query ETL runs: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Warn("failed to close rows", zap.Error(err))
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return timeline.Table{}, fmt.Errorf("failed to read result columns: %w", err)
	}

	table := timeline.Table{Columns: columns}
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return timeline.Table{}, fmt.Errorf("failed to scan ETL run: %w", err)
		}

		row := make([]string, len(columns))
		for i, cell := range cells {
			if cell.Valid {
				row[i] = cell.String
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return timeline.Table{}, err
	}

	s.logger.Debug("ETL runs loaded from PostgreSQL", zap.Int("rows", len(table.Rows)))
	return table, nil
}

func (s *PostgresSource) DB() *sql.DB {
	return s.db
}

func (s *PostgresSource) Close() error {
	return s.db.Close()
}
