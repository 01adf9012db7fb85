package source

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/nadmax/etltimeline/internal/timeline"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultRedisKey = "timeline:rows"

// RedisSource reads ETL runs from a Redis list. Each element is a JSON
// object mapping column name to cell text.
type RedisSource struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

func NewRedisSource(ctx context.Context, redisAddr, key string, logger *zap.Logger) (*RedisSource, error) {
	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if key == "" {
		key = DefaultRedisKey
	}

	return &RedisSource{
		client: client,
		key:    key,
		logger: logger,
	}, nil
}

func (s *RedisSource) Load(ctx context.Context) (timeline.Table, error) {
	elements, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return timeline.Table{}, fmt.Errorf("failed to read %s: %w", s.key, err)
	}

	if len(elements) == 0 {
		return timeline.Table{Columns: timeline.RequiredColumns}, nil
	}

	entries := make([]map[string]string, 0, len(elements))
	for i, element := range elements {
		var entry map[string]string
		if err := json.Unmarshal([]byte(element), &entry); err != nil {
			return timeline.Table{}, fmt.Errorf("failed to decode %s[%d]: %w", s.key, i, err)
		}
		entries = append(entries, entry)
	}

	columns := make([]string, 0, len(entries[0]))
	for col := range entries[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	table := timeline.Table{Columns: columns}
	for _, entry := range entries {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = entry[col]
		}
		table.Rows = append(table.Rows, row)
	}

	s.logger.Debug("ETL runs loaded from Redis", zap.String("key", s.key), zap.Int("rows", len(table.Rows)))
	return table, nil
}

// Seed appends every table row to the list, keyed by the table header.
func (s *RedisSource) Seed(ctx context.Context, table timeline.Table) (int, error) {
	if len(table.Rows) == 0 {
		return 0, nil
	}

	values := make([]any, 0, len(table.Rows))
	for _, row := range table.Rows {
		entry := make(map[string]string, len(table.Columns))
		for i, col := range table.Columns {
			if i < len(row) {
				entry[col] = row[i]
			}
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return 0, err
		}
		values = append(values, string(data))
	}

	if err := s.client.RPush(ctx, s.key, values...).Err(); err != nil {
		return 0, fmt.Errorf("failed to push rows to %s: %w", s.key, err)
	}

	return len(values), nil
}

func (s *RedisSource) Close() error {
	return s.client.Close()
}
