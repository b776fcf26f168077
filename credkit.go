// Package credkit bundles credential utilities backed by the operating
// system's secure random source: password generation, password strength
// scoring and one-time passcodes.
//
//	pw, err := credkit.GeneratePassword(models.DefaultPasswordPolicy(16))
//
//	res := credkit.CheckPasswordStrength(pw, models.StrengthCriteria{MinLength: 8, RequireNumbers: true})
//
//	m, err := credkit.NewOTPManager()
//	code, err := m.Create("user@example.com")
//	ok, err := m.Validate("user@example.com", code)
package credkit

import (
	"github.com/knadh/credkit/pkg/models"
	"github.com/knadh/credkit/pkg/otp"
	"github.com/knadh/credkit/pkg/password"
	"github.com/knadh/credkit/pkg/random"
	"github.com/knadh/credkit/pkg/strength"
)

// src is bound once to the OS CSPRNG. It holds no state.
var src = random.New()

// GeneratePassword generates a random password for p.
func GeneratePassword(p models.PasswordPolicy) (string, error) {
	return password.Generate(src, p)
}

// CheckPasswordStrength scores pw against c.
func CheckPasswordStrength(pw string, c models.StrengthCriteria) models.StrengthResult {
	return strength.Check(pw, c)
}

// NewOTPManager returns an OTP manager with a 300 second TTL and
// 6 digit codes.
func NewOTPManager(opts ...otp.Option) (*otp.Manager, error) {
	return otp.New(otp.Conf{}, opts...)
}
