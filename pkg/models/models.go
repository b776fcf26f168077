package models

// Character classes a password pool is built from, in pool order.
const (
	UpperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowerChars   = "abcdefghijklmnopqrstuvwxyz"
	NumChars     = "0123456789"
	SpecialChars = "!@#$%^&*()_+[]{}|;:,.<>?"
)

// PasswordPolicy describes the shape of a generated password.
type PasswordPolicy struct {
	Length                   int  `koanf:"length" json:"length" validate:"gt=0"`
	IncludeUppercase         bool `koanf:"uppercase" json:"uppercase"`
	IncludeLowercase         bool `koanf:"lowercase" json:"lowercase"`
	IncludeNumbers           bool `koanf:"numbers" json:"numbers"`
	IncludeSpecialCharacters bool `koanf:"special" json:"special"`
}

// DefaultPasswordPolicy returns a policy of the given length with every
// character class enabled.
func DefaultPasswordPolicy(length int) PasswordPolicy {
	return PasswordPolicy{
		Length:                   length,
		IncludeUppercase:         true,
		IncludeLowercase:         true,
		IncludeNumbers:           true,
		IncludeSpecialCharacters: true,
	}
}

// StrengthCriteria are the rules a password is scored against.
type StrengthCriteria struct {
	MinLength                int  `koanf:"min_length" json:"min_length" validate:"gt=0"`
	RequireUppercase         bool `koanf:"require_uppercase" json:"require_uppercase"`
	RequireLowercase         bool `koanf:"require_lowercase" json:"require_lowercase"`
	RequireNumbers           bool `koanf:"require_numbers" json:"require_numbers"`
	RequireSpecialCharacters bool `koanf:"require_special" json:"require_special"`
}

// MaxScore is the score a password that satisfies every rule in c gets.
func (c StrengthCriteria) MaxScore() int {
	n := 1
	for _, on := range []bool{c.RequireUppercase, c.RequireLowercase,
		c.RequireNumbers, c.RequireSpecialCharacters} {
		if on {
			n++
		}
	}
	return n
}

// StrengthResult is the outcome of scoring a password.
type StrengthResult struct {
	Score    int      `json:"score"`
	MaxScore int      `json:"max_score"`
	Messages []string `json:"messages"`
}

// OK tells if the password satisfied every rule.
func (r StrengthResult) OK() bool {
	return r.Score == r.MaxScore && len(r.Messages) == 0
}
