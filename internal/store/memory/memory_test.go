package memory

import (
	"testing"
	"time"

	"github.com/knadh/credkit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now        = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mockKey    = "mykey"
	mockRecord = store.Record{
		Code:      "123456",
		ExpiresAt: now.Add(2 * time.Second),
	}
)

func setup(t *testing.T) *Memory {
	m := New()
	err := m.Set(mockKey, mockRecord)
	require.NoError(t, err, "Failed to set up test record")
	return m
}

func TestStoreSetGet(t *testing.T) {
	m := setup(t)

	r, err := m.Get(mockKey)
	assert.NoError(t, err, "Error getting record")
	assert.Equal(t, mockRecord, r, "Returned record doesn't match")

	_, err = m.Get("nokey")
	assert.Equal(t, store.ErrNotExist, err, "Record should not exist but it does")
}

func TestStoreOverwrite(t *testing.T) {
	m := setup(t)

	next := store.Record{Code: "654321", ExpiresAt: now.Add(time.Minute)}
	require.NoError(t, m.Set(mockKey, next))

	r, err := m.Get(mockKey)
	assert.NoError(t, err)
	assert.Equal(t, next, r, "Record wasn't overwritten")
	assert.Equal(t, 1, m.Len(), "Overwrite created a second record")
}

func TestStoreCopy(t *testing.T) {
	m := setup(t)

	r, _ := m.Get(mockKey)
	r.Code = "000000"

	r2, _ := m.Get(mockKey)
	assert.Equal(t, mockRecord.Code, r2.Code, "Stored record was mutated through a copy")
}

func TestStoreDelete(t *testing.T) {
	m := setup(t)

	err := m.Delete(mockKey)
	assert.NoError(t, err, "Error deleting record")

	_, err = m.Get(mockKey)
	assert.Equal(t, store.ErrNotExist, err, "Record should not exist but it does")

	assert.NoError(t, m.Delete(mockKey), "Deleting a missing record should be a no-op")
}

func TestStoreDeleteExpired(t *testing.T) {
	m := setup(t)
	require.NoError(t, m.Set("later", store.Record{Code: "1", ExpiresAt: now.Add(time.Hour)}))

	n, err := m.DeleteExpired(now.Add(2 * time.Second))
	assert.NoError(t, err)
	assert.Equal(t, 0, n, "Record at exact expiry shouldn't be deleted")

	n, err = m.DeleteExpired(now.Add(3 * time.Second))
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, m.Len())

	_, err = m.Get("later")
	assert.NoError(t, err, "Live record was deleted")
}
