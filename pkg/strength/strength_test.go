package strength

import (
	"testing"

	"github.com/knadh/credkit/pkg/models"
	"github.com/stretchr/testify/assert"
)

var allRules = models.StrengthCriteria{
	MinLength:                8,
	RequireUppercase:         true,
	RequireLowercase:         true,
	RequireNumbers:           true,
	RequireSpecialCharacters: true,
}

func TestCheckStrong(t *testing.T) {
	r := Check("P@ssword123", allRules)
	assert.Equal(t, 5, r.Score, "strong password should get full score")
	assert.Equal(t, 5, r.MaxScore)
	assert.Empty(t, r.Messages, "strong password shouldn't have messages")
	assert.True(t, r.OK())
}

func TestCheckUnmet(t *testing.T) {
	r := Check("password", allRules)
	assert.Less(t, r.Score, 5)
	assert.Equal(t, 2, r.Score, "length and lowercase should score")
	assert.Equal(t, []string{
		"Password should include at least one uppercase letter.",
		"Password should include at least one number.",
		"Password should include at least one special character.",
	}, r.Messages, "messages don't match or are out of order")
	assert.False(t, r.OK())
}

func TestCheckShortCircuit(t *testing.T) {
	r := Check("abc", models.StrengthCriteria{MinLength: 5, RequireLowercase: true})
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, []string{"Password should be at least 5 characters long."}, r.Messages)

	// Rules after the length check aren't evaluated.
	r = Check("ABC", allRules)
	assert.Equal(t, 0, r.Score)
	assert.Len(t, r.Messages, 1)
}

func TestCheckDisabledRules(t *testing.T) {
	c := models.StrengthCriteria{MinLength: 1}
	r := Check("x", c)
	assert.Equal(t, 1, r.Score)
	assert.Equal(t, 1, r.MaxScore)
	assert.NotNil(t, r.Messages)
	assert.Empty(t, r.Messages)

	r = Check("", models.StrengthCriteria{})
	assert.Equal(t, 1, r.Score, "zero min length accepts empty password")
}

func TestCheckOrder(t *testing.T) {
	r := Check("        ", allRules)
	assert.Equal(t, 1, r.Score)
	assert.Equal(t, []string{
		"Password should include at least one uppercase letter.",
		"Password should include at least one lowercase letter.",
		"Password should include at least one number.",
		"Password should include at least one special character.",
	}, r.Messages)
}

func TestCheckRunes(t *testing.T) {
	// 8 runes, more than 8 bytes.
	r := Check("pässwörd", models.StrengthCriteria{MinLength: 8})
	assert.Equal(t, 1, r.Score, "length should count characters, not bytes")

	r = Check("päss", models.StrengthCriteria{MinLength: 5})
	assert.Equal(t, 0, r.Score)
}
