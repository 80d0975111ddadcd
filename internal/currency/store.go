package currency

import "sync/atomic"

// Store holds the latest rate table. Readers always see a complete table.
type Store struct {
	table atomic.Pointer[Table]
}

func NewStore() *Store {
	return &Store{}
}

// Load returns the current table, or nil before the first successful fetch.
func (s *Store) Load() *Table {
	if s == nil {
		return nil
	}
	return s.table.Load()
}

func (s *Store) Swap(table *Table) *Table {
	return s.table.Swap(table)
}
