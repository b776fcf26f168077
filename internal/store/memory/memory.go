package memory

import (
	"time"

	"github.com/knadh/credkit/internal/store"
)

// Memory implements an in-process map Store.
type Memory struct {
	records map[string]store.Record
}

// New returns an empty memory store.
func New() *Memory {
	return &Memory{
		records: make(map[string]store.Record),
	}
}

// Set sets a record against a key. Last write wins.
func (m *Memory) Set(key string, r store.Record) error {
	m.records[key] = r
	return nil
}

// Get returns the record saved against a key.
func (m *Memory) Get(key string) (store.Record, error) {
	r, ok := m.records[key]
	if !ok {
		return r, store.ErrNotExist
	}
	return r, nil
}

// Delete deletes the record saved against a given key.
func (m *Memory) Delete(key string) error {
	delete(m.records, key)
	return nil
}

// DeleteExpired deletes all records that have expired at now.
func (m *Memory) DeleteExpired(now time.Time) (int, error) {
	n := 0
	for k, r := range m.records {
		if r.Expired(now) {
			delete(m.records, k)
			n++
		}
	}
	return n, nil
}

// Len returns the number of records in the store.
func (m *Memory) Len() int {
	return len(m.records)
}
