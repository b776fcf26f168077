package random

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failReader struct{}

func (failReader) Read(p []byte) (int, error) {
	return 0, errors.New("no entropy")
}

func TestBytes(t *testing.T) {
	b, err := New().Bytes(32)
	require.NoError(t, err)
	assert.Len(t, b, 32, "unexpected byte count")

	b, err = New().Bytes(0)
	require.NoError(t, err)
	assert.Empty(t, b, "zero bytes should be empty")

	b, err = New().Bytes(-4)
	require.NoError(t, err)
	assert.Empty(t, b, "negative count should be empty")
}

func TestBytesUnsupported(t *testing.T) {
	_, err := NewReader(failReader{}).Bytes(4)
	assert.ErrorIs(t, err, ErrUnsupportedEnvironment)

	// Short read.
	_, err = NewReader(bytes.NewReader([]byte{1, 2})).Bytes(4)
	assert.ErrorIs(t, err, ErrUnsupportedEnvironment)

	_, err = NewReader(nil).Bytes(1)
	assert.ErrorIs(t, err, ErrUnsupportedEnvironment)
}

func TestString(t *testing.T) {
	src := NewReader(bytes.NewReader([]byte{0, 1, 9, 10, 255}))

	// 255 % 10 = 5.
	s, err := String(src, 5, "0123456789")
	require.NoError(t, err)
	assert.Equal(t, "01905", s)

	_, err = String(New(), 4, "")
	assert.Error(t, err, "empty pool should fail")
}
