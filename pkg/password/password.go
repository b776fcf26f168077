// Package password generates random passwords from a policy.
package password

import (
	"errors"
	"strings"

	"github.com/knadh/credkit/pkg/models"
	"github.com/knadh/credkit/pkg/random"
)

var (
	// ErrInvalidLength is returned when the policy length is not positive.
	ErrInvalidLength = errors.New("password length must be greater than 0")

	// ErrEmptyCharacterPool is returned when the policy enables no
	// character class.
	ErrEmptyCharacterPool = errors.New("at least one character type must be included")
)

// Pool returns the characters a password generated with p is drawn
// from. Classes are always concatenated in the order uppercase,
// lowercase, numbers, special.
func Pool(p models.PasswordPolicy) string {
	var b strings.Builder
	if p.IncludeUppercase {
		b.WriteString(models.UpperChars)
	}
	if p.IncludeLowercase {
		b.WriteString(models.LowerChars)
	}
	if p.IncludeNumbers {
		b.WriteString(models.NumChars)
	}
	if p.IncludeSpecialCharacters {
		b.WriteString(models.SpecialChars)
	}
	return b.String()
}

// Generate returns a password of p.Length characters drawn from the
// policy's pool using src.
func Generate(src random.Source, p models.PasswordPolicy) (string, error) {
	if p.Length <= 0 {
		return "", ErrInvalidLength
	}

	pool := Pool(p)
	if pool == "" {
		return "", ErrEmptyCharacterPool
	}

	return random.String(src, p.Length, pool)
}
