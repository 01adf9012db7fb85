package timeline

import (
	"errors"
	"slices"
	"sort"
	"strings"
)

// Table is tabular input as handed over by a data source: a header row
// followed by data rows of cell text.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Dataset is the loaded set of records. It is never modified after
// construction and is safe to share between request handlers.
type Dataset struct {
	records []Record
}

// New builds a dataset from raw rows. The first malformed time aborts the
// whole load.
func New(rows []RawRow) (*Dataset, error) {
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec, err := NewRecord(row)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Row = i
			}
			return nil, err
		}
		records = append(records, rec)
	}

	return &Dataset{records: records}, nil
}

// FromTable locates the required columns by header name and builds a dataset
// from the table rows.
func FromTable(table Table) (*Dataset, error) {
	index := make(map[string]int, len(table.Columns))
	for i, col := range table.Columns {
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}

	positions := make([]int, len(RequiredColumns))
	for i, col := range RequiredColumns {
		pos, ok := index[col]
		if !ok {
			return nil, &MissingColumnError{Column: col}
		}
		positions[i] = pos
	}

	cell := func(row []string, pos int) string {
		if pos < len(row) {
			return row[pos]
		}
		return ""
	}

	rows := make([]RawRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, RawRow{
			Name:  cell(row, positions[0]),
			Start: cell(row, positions[1]),
			End:   cell(row, positions[2]),
		})
	}

	return New(rows)
}

func (d *Dataset) Len() int {
	return len(d.records)
}

// All returns every record in load order.
func (d *Dataset) All() []Record {
	return slices.Clone(d.records)
}

// Filter returns, in load order, the records whose name contains query,
// ignoring case. An empty query matches everything.
func (d *Dataset) Filter(query string) []Record {
	if query == "" {
		return d.All()
	}

	needle := strings.ToLower(query)
	matched := make([]Record, 0)
	for _, rec := range d.records {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			matched = append(matched, rec)
		}
	}

	return matched
}

// DistinctNames returns the unique record names in ascending order.
func (d *Dataset) DistinctNames() []string {
	seen := make(map[string]struct{}, len(d.records))
	names := make([]string, 0)
	for _, rec := range d.records {
		if _, ok := seen[rec.Name]; ok {
			continue
		}
		seen[rec.Name] = struct{}{}
		names = append(names, rec.Name)
	}

	sort.Strings(names)
	return names
}
