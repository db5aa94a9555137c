package rowsource

import (
	"context"
	"fmt"
	"sync"
)

// MemorySource is an in-memory Source backed by fixture tables. It is used
// by tests and by the joiner benchmarks; tables absent from the map behave
// exactly like missing dataset files.
type MemorySource struct {
	mu     sync.RWMutex
	tables map[string][]Row
}

// NewMemorySource creates a MemorySource over the given tables. The map may
// be nil; tables can be added later with SetTable.
func NewMemorySource(tables map[string][]Row) *MemorySource {
	if tables == nil {
		tables = make(map[string][]Row)
	}
	return &MemorySource{tables: tables}
}

// ReadTable returns the fixture rows for table, or ErrTableMissing.
func (s *MemorySource) ReadTable(ctx context.Context, table string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("%s: %w", table, ErrTableMissing)
	}

	out := make([]Row, len(rows))
	copy(out, rows)
	return out, nil
}

// SetTable replaces the rows of a fixture table.
func (s *MemorySource) SetTable(table string, rows []Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = rows
}

// WriteSummaries appends rows to the summaries fixture table, creating it
// when absent.
func (s *MemorySource) WriteSummaries(ctx context.Context, rows []Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[TableSummaries] = append(s.tables[TableSummaries], rows...)
	return nil
}
