package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nadmax/etltimeline/internal/timeline"
	"go.uber.org/zap"
)

const utf8BOM = "\uFEFF"

type CSVSource struct {
	path   string
	logger *zap.Logger
}

func NewCSVSource(path string, logger *zap.Logger) *CSVSource {
	return &CSVSource{path: path, logger: logger}
}

func (s *CSVSource) Load(_ context.Context) (timeline.Table, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return timeline.Table{}, fmt.Errorf("failed to open CSV file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			s.logger.Warn("failed to close CSV file", zap.String("path", s.path), zap.Error(err))
		}
	}()

	table, err := ReadCSV(file)
	if err != nil {
		return timeline.Table{}, err
	}

	s.logger.Debug("CSV loaded",
		zap.String("path", s.path),
		zap.Int("columns", len(table.Columns)),
		zap.Int("rows", len(table.Rows)),
	)

	return table, nil
}

// ReadCSV reads a header row followed by data rows. Rows shorter than the
// header are padded with empty cells.
func ReadCSV(r io.Reader) (timeline.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return timeline.Table{}, nil
	}
	if err != nil {
		return timeline.Table{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	table := timeline.Table{Columns: header}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return timeline.Table{}, fmt.Errorf("failed to read CSV row: %w", err)
		}

		for len(row) < len(header) {
			row = append(row, "")
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
