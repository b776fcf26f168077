package store

import (
	"errors"
	"time"
)

// ErrNotExist is thrown when an OTP (requested by key) does not exist.
var ErrNotExist = errors.New("the OTP does not exist")

// Record is an OTP stored against a key.
type Record struct {
	Code      string
	ExpiresAt time.Time
}

// Expired tells if the record has expired at now. A record is still
// valid at exactly its expiry time.
func (r Record) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Store represents a storage backend where OTP records are kept.
// Implementations are not required to be safe for concurrent use;
// the caller serialises access.
type Store interface {
	// Set sets a record against a key, replacing any existing one.
	Set(key string, r Record) error

	// Get returns a copy of the record saved against a key or ErrNotExist.
	Get(key string) (Record, error)

	// Delete deletes the record saved against a key.
	Delete(key string) error

	// DeleteExpired deletes every record that has expired at now and
	// returns the number deleted.
	DeleteExpired(now time.Time) (int, error)

	// Len returns the number of records held.
	Len() int
}
