// Package strength scores passwords against a set of rules.
package strength

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/knadh/credkit/pkg/models"
)

const (
	msgUpper   = "Password should include at least one uppercase letter."
	msgLower   = "Password should include at least one lowercase letter."
	msgNumber  = "Password should include at least one number."
	msgSpecial = "Password should include at least one special character."
)

type rule struct {
	enabled bool
	chars   string
	msg     string
}

// Check scores password against c. A password shorter than c.MinLength
// scores 0 and is not evaluated further. Otherwise it scores 1 for the
// length and 1 per satisfied rule, and every enabled rule it fails adds
// a message, in the order uppercase, lowercase, numbers, special.
func Check(password string, c models.StrengthCriteria) models.StrengthResult {
	out := models.StrengthResult{
		MaxScore: c.MaxScore(),
		Messages: []string{},
	}

	if utf8.RuneCountInString(password) < c.MinLength {
		out.Messages = append(out.Messages,
			fmt.Sprintf("Password should be at least %d characters long.", c.MinLength))
		return out
	}
	out.Score++

	rules := []rule{
		{c.RequireUppercase, models.UpperChars, msgUpper},
		{c.RequireLowercase, models.LowerChars, msgLower},
		{c.RequireNumbers, models.NumChars, msgNumber},
		{c.RequireSpecialCharacters, models.SpecialChars, msgSpecial},
	}
	for _, r := range rules {
		if !r.enabled {
			continue
		}

		if strings.ContainsAny(password, r.chars) {
			out.Score++
		} else {
			out.Messages = append(out.Messages, r.msg)
		}
	}

	return out
}
