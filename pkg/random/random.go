// Package random provides the secure random byte source that every
// generator in credkit draws entropy from.
package random

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// ErrUnsupportedEnvironment is returned when no secure random source
// could produce the requested bytes.
var ErrUnsupportedEnvironment = errors.New("secure random number generation is not supported in this environment")

// Source produces cryptographically secure random bytes.
type Source interface {
	// Bytes returns n uniformly random bytes. n < 1 returns an empty slice.
	Bytes(n int) ([]byte, error)
}

// Reader is a Source backed by an io.Reader.
type Reader struct {
	r io.Reader
}

// New returns a Source bound to the operating system's CSPRNG.
func New() *Reader {
	return &Reader{r: rand.Reader}
}

// NewReader returns a Source that reads from r. r must be a secure
// source in production. Tests use it to feed known bytes.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Bytes returns n random bytes read from the underlying reader.
func (s *Reader) Bytes(n int) ([]byte, error) {
	if n < 1 {
		return []byte{}, nil
	}
	if s.r == nil {
		return nil, ErrUnsupportedEnvironment
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(s.r, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedEnvironment, err)
	}
	return b, nil
}

// String returns a string of length n with every character drawn from
// pool by reducing one random byte modulo len(pool). The reduction is
// slightly biased towards the head of the pool when len(pool) does not
// divide 256.
func String(src Source, n int, pool string) (string, error) {
	if len(pool) == 0 {
		return "", errors.New("empty character pool")
	}

	b, err := src.Bytes(n)
	if err != nil {
		return "", err
	}
	for k, v := range b {
		b[k] = pool[int(v)%len(pool)]
	}
	return string(b), nil
}
