package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordExpired(t *testing.T) {
	exp := time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC)
	r := Record{Code: "123456", ExpiresAt: exp}

	assert.False(t, r.Expired(exp.Add(-time.Second)))
	assert.False(t, r.Expired(exp), "record should be valid at its expiry instant")
	assert.True(t, r.Expired(exp.Add(time.Millisecond)))
}
