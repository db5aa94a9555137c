// Package rowsource provides read access to the columnar dataset tables.
//
// The dataset is a directory of fixed-schema tables (see schema.go for the
// pinned column order of each). A Source returns the rows of one table as
// positional string tuples; all joining code accesses columns by index
// through the schema constants, mirroring how the dataset is published.
package rowsource

import (
	"context"
	"errors"
	"fmt"
)

// Row is one positional record of a table. Column order is significant and
// pinned per table in schema.go.
type Row []string

// Get returns the column at index i, or "" when the row is short. Short rows
// happen in older dataset snapshots where trailing columns were added later.
func (r Row) Get(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// ErrTableMissing is returned (wrapped) when a required table is not present
// in the dataset. Callers degrade to an empty view-model for the affected
// entity type rather than aborting the run.
var ErrTableMissing = errors.New("table missing")

// Source supplies the rows of dataset tables.
type Source interface {
	// ReadTable returns all rows of the named table in dataset order.
	ReadTable(ctx context.Context, table string) ([]Row, error)
}

// Writer extends a Source that can persist generated summary rows back into
// the dataset (used by the summarize command).
type Writer interface {
	WriteSummaries(ctx context.Context, rows []Row) error
}

// ReadAll fetches several tables from src and returns them keyed by table
// name. The first error wins; partial results are discarded.
func ReadAll(ctx context.Context, src Source, tables ...string) (map[string][]Row, error) {
	out := make(map[string][]Row, len(tables))
	for _, table := range tables {
		rows, err := src.ReadTable(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", table, err)
		}
		out[table] = rows
	}
	return out, nil
}
