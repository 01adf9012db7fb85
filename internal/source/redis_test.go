package source

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nadmax/etltimeline/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*RedisSource, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	src, err := NewRedisSource(context.Background(), mr.Addr(), "", zap.NewNop())
	require.NoError(t, err)

	return src, mr
}

func TestNewRedisSource(t *testing.T) {
	src, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = src.Close() }()

	assert.NotNil(t, src.client)
	assert.Equal(t, DefaultRedisKey, src.key)
}

func TestNewRedisSource_InvalidAddress(t *testing.T) {
	_, err := NewRedisSource(context.Background(), "invalid:99999", "", zap.NewNop())
	assert.Error(t, err)
}

func TestRedisSource_EmptyList(t *testing.T) {
	src, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = src.Close() }()

	table, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, timeline.RequiredColumns, table.Columns)
	assert.Empty(t, table.Rows)

	ds, err := timeline.FromTable(table)
	require.NoError(t, err)
	assert.Empty(t, ds.All())
}

func TestRedisSource_SeedAndLoad(t *testing.T) {
	src, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = src.Close() }()

	ctx := context.Background()
	seeded := timeline.Table{
		Columns: timeline.RequiredColumns,
		Rows: [][]string{
			{"JobA", "09:00 AM", "10:30 AM"},
			{"jobB", "01:00 PM", "02:00 PM"},
			{"JOBA", "03:00 PM", "04:00 PM"},
		},
	}

	n, err := src.Seed(ctx, seeded)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	ds, err := LoadDataset(ctx, src)
	require.NoError(t, err)

	all := ds.All()
	require.Len(t, all, 3)
	assert.Equal(t, "JobA", all[0].Name)
	assert.Equal(t, "jobB", all[1].Name)
	assert.Equal(t, "JOBA", all[2].Name)
}

func TestRedisSource_SeedEmpty(t *testing.T) {
	src, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = src.Close() }()

	n, err := src.Seed(context.Background(), timeline.Table{Columns: timeline.RequiredColumns})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, mr.Exists(DefaultRedisKey))
}

func TestRedisSource_InvalidElement(t *testing.T) {
	src, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = src.Close() }()

	_, err := mr.Push(DefaultRedisKey, "not json")
	require.NoError(t, err)

	_, err = src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestRedisSource_MissingColumn(t *testing.T) {
	src, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = src.Close() }()

	_, err := mr.Push(DefaultRedisKey, `{"ETL":"JobA","Start Time":"09:00 AM"}`)
	require.NoError(t, err)

	_, err = LoadDataset(context.Background(), src)

	var merr *timeline.MissingColumnError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, timeline.ColumnEnd, merr.Column)
}

func TestRedisSource_WrongType(t *testing.T) {
	src, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = src.Close() }()

	require.NoError(t, mr.Set(DefaultRedisKey, "scalar"))

	_, err := src.Load(context.Background())
	assert.Error(t, err)
}
