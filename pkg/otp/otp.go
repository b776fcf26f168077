// Package otp issues and verifies short lived, single use numeric codes
// keyed by an arbitrary identifier (a user ID, an e-mail address etc.).
//
// A Manager keeps its codes in process memory. Expiry is checked lazily
// when a code is validated; records for codes that are never validated
// stay in memory until they are overwritten or Purge is called.
package otp

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/knadh/credkit/internal/store"
	"github.com/knadh/credkit/internal/store/memory"
	"github.com/knadh/credkit/pkg/clock"
	"github.com/knadh/credkit/pkg/models"
	"github.com/knadh/credkit/pkg/random"
	"github.com/zerodha/logf"
)

const (
	// DefaultTTL is the lifetime of a code created with Create.
	DefaultTTL = 300 * time.Second

	// DefaultCodeLength is the number of digits in a code.
	DefaultCodeLength = 6
)

var (
	// ErrInvalidKey is returned when the key is empty.
	ErrInvalidKey = errors.New("key is required")

	// ErrInvalidExpiry is returned when the TTL is not positive.
	ErrInvalidExpiry = errors.New("expiry time must be greater than 0")

	// ErrInvalidCode is returned when the code to validate is empty.
	ErrInvalidCode = errors.New("OTP is required for validation")

	// ErrInvalidCodeLength is returned when the configured code length is negative.
	ErrInvalidCodeLength = errors.New("OTP length must be greater than 0")
)

// Conf contains the Manager configuration. Zero values take the defaults.
type Conf struct {
	TTL        time.Duration `koanf:"ttl" json:"ttl"`
	CodeLength int           `koanf:"code_length" json:"code_length"`
}

// Manager creates and validates OTPs. It is safe for concurrent use.
type Manager struct {
	conf  Conf
	src   random.Source
	clock clock.Clock
	lo    *logf.Logger

	mu    sync.Mutex
	store store.Store
}

// Option configures a Manager.
type Option func(*Manager)

// WithRandom sets the random source codes are drawn from.
func WithRandom(src random.Source) Option {
	return func(m *Manager) { m.src = src }
}

// WithClock sets the clock expiry is computed and checked with.
func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithLogger enables debug logging of OTP lifecycle events.
// Codes are never logged.
func WithLogger(lo *logf.Logger) Option {
	return func(m *Manager) { m.lo = lo }
}

// WithStore sets the backing store. The Manager must be its only user.
func WithStore(s store.Store) Option {
	return func(m *Manager) { m.store = s }
}

// New returns a Manager with an empty in-memory store.
func New(c Conf, opts ...Option) (*Manager, error) {
	if c.TTL < 0 {
		return nil, ErrInvalidExpiry
	}
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
	if c.CodeLength < 0 {
		return nil, ErrInvalidCodeLength
	}
	if c.CodeLength == 0 {
		c.CodeLength = DefaultCodeLength
	}

	m := &Manager{
		conf:  c,
		src:   random.New(),
		clock: clock.New(),
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o(m)
	}
	if m.store == nil {
		m.store = memory.New()
	}

	return m, nil
}

// Create creates a code for key that is valid for the configured TTL.
func (m *Manager) Create(key string) (string, error) {
	return m.CreateWithTTL(key, m.conf.TTL)
}

// CreateWithTTL creates a code for key that is valid for ttl. Any
// existing code for the key is discarded. The returned code can't be
// retrieved again; delivering it is up to the caller.
func (m *Manager) CreateWithTTL(key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	if ttl <= 0 {
		return "", ErrInvalidExpiry
	}

	code, err := random.String(m.src, m.conf.CodeLength, models.NumChars)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	exp := m.clock.Now().Add(ttl)
	if err := m.store.Set(key, store.Record{Code: code, ExpiresAt: exp}); err != nil {
		return "", err
	}

	m.debug("otp created", "key", key, "expires_at", exp)
	return code, nil
}

// Validate checks code against the code stored for key. A matching,
// unexpired code is consumed and true is returned. An expired code is
// deleted. A wrong code leaves the stored code in place so that it can
// be retried until it expires.
func (m *Manager) Validate(key, code string) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}
	if code == "" {
		return false, ErrInvalidCode
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.store.Get(key)
	if err != nil {
		if err == store.ErrNotExist {
			return false, nil
		}
		return false, err
	}

	if r.Expired(m.clock.Now()) {
		if err := m.store.Delete(key); err != nil {
			return false, err
		}
		m.debug("otp expired", "key", key)
		return false, nil
	}

	if subtle.ConstantTimeCompare([]byte(r.Code), []byte(code)) != 1 {
		m.debug("otp mismatch", "key", key)
		return false, nil
	}

	if err := m.store.Delete(key); err != nil {
		return false, err
	}
	m.debug("otp consumed", "key", key)
	return true, nil
}

// Purge deletes every expired code and returns the number deleted.
func (m *Manager) Purge() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.store.DeleteExpired(m.clock.Now())
	if err != nil {
		return n, err
	}
	if n > 0 {
		m.debug("otp purged", "count", n)
	}
	return n, nil
}

// Len returns the number of codes held, including expired codes that
// haven't been reclaimed yet.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Len()
}

// TTL returns the TTL codes created with Create get.
func (m *Manager) TTL() time.Duration {
	return m.conf.TTL
}

func (m *Manager) debug(msg string, fields ...any) {
	if m.lo == nil {
		return
	}
	m.lo.Debug(msg, fields...)
}
