package rowsource

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// DuckDBSource reads the published parquet tables through an in-memory
// DuckDB connection, one "SELECT * FROM read_parquet(...)" per table. All
// columns are scanned as nullable strings; SQL NULL becomes "".
type DuckDBSource struct {
	dir string
	db  *sql.DB
}

// NewDuckDBSource opens an in-memory DuckDB instance over the dataset
// directory. Close must be called when the run is done.
func NewDuckDBSource(dir string) (*DuckDBSource, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &DuckDBSource{dir: dir, db: db}, nil
}

// Close releases the DuckDB connection.
func (s *DuckDBSource) Close() error {
	return s.db.Close()
}

// tablePath returns the parquet file backing a table.
func (s *DuckDBSource) tablePath(table string) string {
	return filepath.Join(s.dir, table+".parquet")
}

// ReadTable returns all rows of the named table. A missing parquet file
// maps to ErrTableMissing so callers can fall back per entity type.
func (s *DuckDBSource) ReadTable(ctx context.Context, table string) ([]Row, error) {
	path := s.tablePath(table)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", table, ErrTableMissing)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM read_parquet(?)", path)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}

	var out []Row
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}

		row := make(Row, len(cols))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	return out, nil
}

// WriteSummaries appends generated summary rows to the summaries table,
// merging with the existing parquet file when one is present. The merged
// table is written to a temp file first so a failed run never truncates
// the existing summaries.
func (s *DuckDBSource) WriteSummaries(ctx context.Context, summaryRows []Row) error {
	if len(summaryRows) == 0 {
		return nil
	}

	if _, err := s.db.ExecContext(ctx,
		"CREATE OR REPLACE TEMP TABLE new_summaries (input_hash VARCHAR, task VARCHAR, summary VARCHAR)"); err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}

	for _, row := range summaryRows {
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO new_summaries VALUES (?, ?, ?)",
			row.Get(SummaryInputHash), row.Get(SummaryTask), row.Get(SummaryText)); err != nil {
			return fmt.Errorf("insert summary: %w", err)
		}
	}

	path := s.tablePath(TableSummaries)
	tmp := path + ".tmp"

	var copyStmt string
	if _, err := os.Stat(path); err == nil {
		copyStmt = fmt.Sprintf(
			"COPY (SELECT * FROM read_parquet('%s') UNION ALL SELECT * FROM new_summaries) TO '%s' (FORMAT PARQUET)",
			path, tmp)
	} else {
		copyStmt = fmt.Sprintf(
			"COPY (SELECT * FROM new_summaries) TO '%s' (FORMAT PARQUET)", tmp)
	}

	if _, err := s.db.ExecContext(ctx, copyStmt); err != nil {
		return fmt.Errorf("write summaries: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace summaries: %w", err)
	}

	return nil
}
